// Package report renders month summaries and exports ledgers to CSV.
package report

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/gocarina/gocsv"
	"github.com/shopspring/decimal"
	"github.com/sirupsen/logrus"

	"lifequest/finance-engine/internal/models"
)

var log = logrus.New()

// SetLogger allows setting a custom logger for reporting.
func SetLogger(logger *logrus.Logger) {
	if logger != nil {
		log = logger
	}
}

// Summary is a render-ready view of one month's aggregates.
type Summary struct {
	Month            string
	Income           decimal.Decimal
	Expenses         decimal.Decimal
	Balance          decimal.Decimal
	SavingsRate      int64
	TransactionCount int
}

// MonthSummary builds the summary for one month of a finance document.
// A month with no record yields a zeroed summary.
func MonthSummary(state models.FinanceState, month string) Summary {
	record := state.Months[month]
	return Summary{
		Month:            month,
		Income:           record.Income,
		Expenses:         record.Expenses,
		Balance:          record.Balance,
		SavingsRate:      record.SavingsRate,
		TransactionCount: len(record.Transactions),
	}
}

// String renders the summary as a short human-readable block.
func (s Summary) String() string {
	return fmt.Sprintf("%s: income=%s expenses=%s balance=%s savings=%d%% transactions=%d",
		s.Month, s.Income.StringFixed(2), s.Expenses.StringFixed(2),
		s.Balance.StringFixed(2), s.SavingsRate, s.TransactionCount)
}

// ledgerRow is the CSV projection of a transaction.
type ledgerRow struct {
	ID          string `csv:"Id"`
	Date        string `csv:"Date"`
	Description string `csv:"Description"`
	Amount      string `csv:"Amount"`
	Category    string `csv:"Category"`
	Kind        string `csv:"Kind"`
	Month       string `csv:"Month"`
	Verified    bool   `csv:"Verified"`
}

// WriteLedgerCSV writes a month's transactions to a CSV file, creating the
// parent directory if needed.
func WriteLedgerCSV(record models.MonthlyRecord, csvFile string) error {
	log.WithFields(logrus.Fields{
		"file":  csvFile,
		"count": len(record.Transactions),
	}).Info("Writing ledger to CSV file")

	dir := filepath.Dir(csvFile)
	if err := os.MkdirAll(dir, 0750); err != nil {
		return fmt.Errorf("error creating directory: %w", err)
	}

	file, err := os.Create(csvFile)
	if err != nil {
		return fmt.Errorf("error creating CSV file: %w", err)
	}
	defer func() {
		if err := file.Close(); err != nil {
			log.WithError(err).Warn("Failed to close file")
		}
	}()

	rows := make([]ledgerRow, 0, len(record.Transactions))
	for _, tx := range record.Transactions {
		rows = append(rows, ledgerRow{
			ID:          tx.ID,
			Date:        tx.Date.Format("2006-01-02"),
			Description: tx.Description,
			Amount:      tx.Amount.StringFixed(2),
			Category:    tx.Category,
			Kind:        string(tx.Kind),
			Month:       tx.Month,
			Verified:    tx.Verified,
		})
	}

	if err := gocsv.MarshalFile(&rows, file); err != nil {
		return fmt.Errorf("error writing CSV file: %w", err)
	}

	return nil
}
