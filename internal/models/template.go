package models

import "github.com/shopspring/decimal"

// LineItem is one recurring income or expense entry of a budget template.
type LineItem struct {
	Description string          `json:"description" yaml:"description"`
	Amount      decimal.Decimal `json:"amount" yaml:"amount"`
	Category    string          `json:"category" yaml:"category"`
}

// BudgetTemplate is a named bundle of recurring line items. Income and
// Expenses snapshot the item sums at creation time; templates are immutable
// after creation, so the snapshots never drift.
type BudgetTemplate struct {
	ID           string          `json:"id" yaml:"id"`
	Name         string          `json:"name" yaml:"name"`
	Description  string          `json:"description,omitempty" yaml:"description,omitempty"`
	IncomeItems  []LineItem      `json:"incomeItems" yaml:"incomeItems"`
	ExpenseItems []LineItem      `json:"expenseItems" yaml:"expenseItems"`
	Income       decimal.Decimal `json:"income" yaml:"income"`
	Expenses     decimal.Decimal `json:"expenses" yaml:"expenses"`
}

// ItemsFor returns the line items matching the given polarity.
func (t BudgetTemplate) ItemsFor(kind TransactionKind) []LineItem {
	if kind == KindIncome {
		return t.IncomeItems
	}
	return t.ExpenseItems
}
