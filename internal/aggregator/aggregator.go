// Package aggregator derives monthly aggregates from a transaction ledger.
// It is the single aggregation routine in the engine; every mutation path
// must call through it so derived fields can never diverge.
package aggregator

import (
	"github.com/shopspring/decimal"

	"lifequest/finance-engine/internal/models"
)

var oneHundred = decimal.NewFromInt(100)

// Aggregate computes income, expenses, balance and savings rate for a
// transaction list. It is pure and total: a nil or empty input yields
// zeroed aggregates and an empty list, transactions with an unknown kind
// contribute nothing, and input ordering is preserved in the result.
func Aggregate(transactions []models.Transaction) models.MonthlyRecord {
	income := decimal.Zero
	expenses := decimal.Zero

	for _, tx := range transactions {
		switch {
		case tx.IsIncome():
			income = income.Add(tx.Amount)
		case tx.IsExpense():
			expenses = expenses.Add(tx.Amount)
		}
	}

	balance := income.Sub(expenses)

	return models.MonthlyRecord{
		Income:       income,
		Expenses:     expenses,
		Balance:      balance,
		SavingsRate:  SavingsRate(balance, income),
		Transactions: append([]models.Transaction{}, transactions...),
	}
}

// SavingsRate returns round(balance/income*100), or 0 when there is no
// income to relate the balance to.
func SavingsRate(balance, income decimal.Decimal) int64 {
	if !income.IsPositive() {
		return 0
	}
	return balance.Mul(oneHundred).Div(income).Round(0).IntPart()
}
