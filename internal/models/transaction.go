// Package models provides the data structures used throughout the engine.
package models

import (
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

// TransactionKind is the polarity of a transaction.
type TransactionKind string

const (
	KindIncome  TransactionKind = "income"
	KindExpense TransactionKind = "expense"
)

// IsValid returns true if the kind is one of the known polarities.
func (k TransactionKind) IsValid() bool {
	return k == KindIncome || k == KindExpense
}

// Transaction represents a single dated ledger entry. Identity is the ID
// field; once created only Amount and Verified may change.
type Transaction struct {
	ID          string          `json:"id" yaml:"id"`
	Date        time.Time       `json:"date" yaml:"date"`
	Description string          `json:"description" yaml:"description"`
	Amount      decimal.Decimal `json:"amount" yaml:"amount"`
	Category    string          `json:"category" yaml:"category"`
	Kind        TransactionKind `json:"kind" yaml:"kind"`
	Month       string          `json:"month" yaml:"month"`
	Verified    bool            `json:"verified" yaml:"verified"`
}

// IsIncome returns true if the transaction adds money to the ledger.
func (t Transaction) IsIncome() bool {
	return t.Kind == KindIncome
}

// IsExpense returns true if the transaction removes money from the ledger.
func (t Transaction) IsExpense() bool {
	return t.Kind == KindExpense
}

// ParseAmount parses a string amount to decimal.Decimal. It tolerates comma
// decimal separators, surrounding whitespace and apostrophe thousand
// separators. Unparseable input yields decimal.Zero rather than an error so
// malformed stored values degrade to zero instead of propagating a fault.
func ParseAmount(amountStr string) decimal.Decimal {
	amount := strings.TrimSpace(amountStr)
	amount = strings.ReplaceAll(amount, " ", "")
	amount = strings.ReplaceAll(amount, "'", "")
	amount = strings.ReplaceAll(amount, ",", ".")

	dec, err := decimal.NewFromString(amount)
	if err != nil {
		return decimal.Zero
	}
	return dec
}
