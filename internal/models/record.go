package models

import "github.com/shopspring/decimal"

// MonthlyRecord holds the ledger of one calendar month together with its
// derived aggregates. Income, Expenses, Balance and SavingsRate are always
// re-derived from Transactions in the same operation that mutates them;
// they are never written independently.
type MonthlyRecord struct {
	Income       decimal.Decimal `json:"income" yaml:"income"`
	Expenses     decimal.Decimal `json:"expenses" yaml:"expenses"`
	Balance      decimal.Decimal `json:"balance" yaml:"balance"`
	SavingsRate  int64           `json:"savingsRate" yaml:"savingsRate"`
	Transactions []Transaction   `json:"transactions" yaml:"transactions"`
}

// FindTransaction returns the index of the transaction with the given id,
// or -1 if it is not present.
func (r MonthlyRecord) FindTransaction(id string) int {
	for i, tx := range r.Transactions {
		if tx.ID == id {
			return i
		}
	}
	return -1
}

// MonthlyRecordSet maps a month key to its record. Before reconciliation
// several raw keys may alias the same calendar month; after reconciliation
// there is at most one entry per canonical month.
type MonthlyRecordSet map[string]MonthlyRecord

// FinanceState is the full persisted finance document for one user. The
// headline fields mirror the aggregates of the month named by SelectedMonth
// so the consuming dashboard can render them without touching the record
// set.
type FinanceState struct {
	Months       MonthlyRecordSet `json:"months" yaml:"months"`
	Templates    []BudgetTemplate `json:"templates,omitempty" yaml:"templates,omitempty"`
	Goals        []SavingsGoal    `json:"goals,omitempty" yaml:"goals,omitempty"`
	Achievements []string         `json:"achievements,omitempty" yaml:"achievements,omitempty"`
	Quests       map[string]int   `json:"quests,omitempty" yaml:"quests,omitempty"`
	Progression  ProgressionState `json:"progression" yaml:"progression"`

	SelectedMonth   string          `json:"selectedMonth,omitempty" yaml:"selectedMonth,omitempty"`
	Balance         decimal.Decimal `json:"balance" yaml:"balance"`
	MonthlyIncome   decimal.Decimal `json:"monthlyIncome" yaml:"monthlyIncome"`
	MonthlyExpenses decimal.Decimal `json:"monthlyExpenses" yaml:"monthlyExpenses"`
	SavingsRate     int64           `json:"savingsRate" yaml:"savingsRate"`
}

// NewFinanceState returns an empty state with initialized collections.
func NewFinanceState() FinanceState {
	return FinanceState{
		Months: MonthlyRecordSet{},
		Quests: map[string]int{},
	}
}

// EnsureInitialized replaces nil collections with empty ones so a state
// decoded from an older or partial document is safe to mutate.
func (s *FinanceState) EnsureInitialized() {
	if s.Months == nil {
		s.Months = MonthlyRecordSet{}
	}
	if s.Quests == nil {
		s.Quests = map[string]int{}
	}
}

// RefreshHeadline copies the aggregates of the given month into the
// top-level headline fields and records which month they mirror. A month
// with no record yields zeroes.
func (s *FinanceState) RefreshHeadline(month string) {
	rec := s.Months[month]
	s.SelectedMonth = month
	s.Balance = rec.Balance
	s.MonthlyIncome = rec.Income
	s.MonthlyExpenses = rec.Expenses
	s.SavingsRate = rec.SavingsRate
}

// HasAchievement returns true if the achievement id is already unlocked.
func (s FinanceState) HasAchievement(id string) bool {
	for _, a := range s.Achievements {
		if a == id {
			return true
		}
	}
	return false
}
