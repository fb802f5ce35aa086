package models

import (
	"encoding/json"
	"strconv"
	"strings"
	"time"

	"github.com/shopspring/decimal"
	"gopkg.in/yaml.v3"
)

// lenientDecimal decodes a stored monetary scalar through ParseAmount, so a
// malformed value degrades to zero instead of making the whole document
// unreadable.
type lenientDecimal decimal.Decimal

func (d *lenientDecimal) UnmarshalYAML(value *yaml.Node) error {
	*d = lenientDecimal(ParseAmount(value.Value))
	return nil
}

func (d *lenientDecimal) UnmarshalJSON(data []byte) error {
	raw := strings.Trim(strings.TrimSpace(string(data)), `"`)
	if raw == "null" {
		raw = ""
	}
	*d = lenientDecimal(ParseAmount(raw))
	return nil
}

func (d lenientDecimal) dec() decimal.Decimal { return decimal.Decimal(d) }

// lenientInt decodes a stored integer scalar, coercing malformed values to
// zero. The savings rate is re-derived on the next mutation anyway.
type lenientInt int64

func (i *lenientInt) UnmarshalYAML(value *yaml.Node) error {
	*i = lenientInt(parseInt(value.Value))
	return nil
}

func (i *lenientInt) UnmarshalJSON(data []byte) error {
	*i = lenientInt(parseInt(strings.Trim(string(data), `"`)))
	return nil
}

func parseInt(raw string) int64 {
	parsed, err := strconv.ParseInt(strings.TrimSpace(raw), 10, 64)
	if err != nil {
		return 0
	}
	return parsed
}

type transactionDoc struct {
	ID          string          `json:"id" yaml:"id"`
	Date        time.Time       `json:"date" yaml:"date"`
	Description string          `json:"description" yaml:"description"`
	Amount      lenientDecimal  `json:"amount" yaml:"amount"`
	Category    string          `json:"category" yaml:"category"`
	Kind        TransactionKind `json:"kind" yaml:"kind"`
	Month       string          `json:"month" yaml:"month"`
	Verified    bool            `json:"verified" yaml:"verified"`
}

func (d transactionDoc) model() Transaction {
	return Transaction{
		ID:          d.ID,
		Date:        d.Date,
		Description: d.Description,
		Amount:      d.Amount.dec(),
		Category:    d.Category,
		Kind:        d.Kind,
		Month:       d.Month,
		Verified:    d.Verified,
	}
}

func (t *Transaction) UnmarshalYAML(value *yaml.Node) error {
	var doc transactionDoc
	if err := value.Decode(&doc); err != nil {
		return err
	}
	*t = doc.model()
	return nil
}

func (t *Transaction) UnmarshalJSON(data []byte) error {
	var doc transactionDoc
	if err := json.Unmarshal(data, &doc); err != nil {
		return err
	}
	*t = doc.model()
	return nil
}

type monthlyRecordDoc struct {
	Income       lenientDecimal `json:"income" yaml:"income"`
	Expenses     lenientDecimal `json:"expenses" yaml:"expenses"`
	Balance      lenientDecimal `json:"balance" yaml:"balance"`
	SavingsRate  lenientInt     `json:"savingsRate" yaml:"savingsRate"`
	Transactions []Transaction  `json:"transactions" yaml:"transactions"`
}

func (d monthlyRecordDoc) model() MonthlyRecord {
	return MonthlyRecord{
		Income:       d.Income.dec(),
		Expenses:     d.Expenses.dec(),
		Balance:      d.Balance.dec(),
		SavingsRate:  int64(d.SavingsRate),
		Transactions: d.Transactions,
	}
}

func (r *MonthlyRecord) UnmarshalYAML(value *yaml.Node) error {
	var doc monthlyRecordDoc
	if err := value.Decode(&doc); err != nil {
		return err
	}
	*r = doc.model()
	return nil
}

func (r *MonthlyRecord) UnmarshalJSON(data []byte) error {
	var doc monthlyRecordDoc
	if err := json.Unmarshal(data, &doc); err != nil {
		return err
	}
	*r = doc.model()
	return nil
}

type lineItemDoc struct {
	Description string         `json:"description" yaml:"description"`
	Amount      lenientDecimal `json:"amount" yaml:"amount"`
	Category    string         `json:"category" yaml:"category"`
}

func (d lineItemDoc) model() LineItem {
	return LineItem{Description: d.Description, Amount: d.Amount.dec(), Category: d.Category}
}

func (l *LineItem) UnmarshalYAML(value *yaml.Node) error {
	var doc lineItemDoc
	if err := value.Decode(&doc); err != nil {
		return err
	}
	*l = doc.model()
	return nil
}

func (l *LineItem) UnmarshalJSON(data []byte) error {
	var doc lineItemDoc
	if err := json.Unmarshal(data, &doc); err != nil {
		return err
	}
	*l = doc.model()
	return nil
}

type budgetTemplateDoc struct {
	ID           string         `json:"id" yaml:"id"`
	Name         string         `json:"name" yaml:"name"`
	Description  string         `json:"description" yaml:"description"`
	IncomeItems  []LineItem     `json:"incomeItems" yaml:"incomeItems"`
	ExpenseItems []LineItem     `json:"expenseItems" yaml:"expenseItems"`
	Income       lenientDecimal `json:"income" yaml:"income"`
	Expenses     lenientDecimal `json:"expenses" yaml:"expenses"`
}

func (d budgetTemplateDoc) model() BudgetTemplate {
	return BudgetTemplate{
		ID:           d.ID,
		Name:         d.Name,
		Description:  d.Description,
		IncomeItems:  d.IncomeItems,
		ExpenseItems: d.ExpenseItems,
		Income:       d.Income.dec(),
		Expenses:     d.Expenses.dec(),
	}
}

func (t *BudgetTemplate) UnmarshalYAML(value *yaml.Node) error {
	var doc budgetTemplateDoc
	if err := value.Decode(&doc); err != nil {
		return err
	}
	*t = doc.model()
	return nil
}

func (t *BudgetTemplate) UnmarshalJSON(data []byte) error {
	var doc budgetTemplateDoc
	if err := json.Unmarshal(data, &doc); err != nil {
		return err
	}
	*t = doc.model()
	return nil
}

type savingsGoalDoc struct {
	ID       string         `json:"id" yaml:"id"`
	Name     string         `json:"name" yaml:"name"`
	Target   lenientDecimal `json:"target" yaml:"target"`
	Saved    lenientDecimal `json:"saved" yaml:"saved"`
	Deadline time.Time      `json:"deadline" yaml:"deadline"`
}

func (d savingsGoalDoc) model() SavingsGoal {
	return SavingsGoal{
		ID:       d.ID,
		Name:     d.Name,
		Target:   d.Target.dec(),
		Saved:    d.Saved.dec(),
		Deadline: d.Deadline,
	}
}

func (g *SavingsGoal) UnmarshalYAML(value *yaml.Node) error {
	var doc savingsGoalDoc
	if err := value.Decode(&doc); err != nil {
		return err
	}
	*g = doc.model()
	return nil
}

func (g *SavingsGoal) UnmarshalJSON(data []byte) error {
	var doc savingsGoalDoc
	if err := json.Unmarshal(data, &doc); err != nil {
		return err
	}
	*g = doc.model()
	return nil
}

type financeStateDoc struct {
	Months        MonthlyRecordSet `json:"months" yaml:"months"`
	Templates     []BudgetTemplate `json:"templates" yaml:"templates"`
	Goals         []SavingsGoal    `json:"goals" yaml:"goals"`
	Achievements  []string         `json:"achievements" yaml:"achievements"`
	Quests        map[string]int   `json:"quests" yaml:"quests"`
	Progression   ProgressionState `json:"progression" yaml:"progression"`
	SelectedMonth string           `json:"selectedMonth" yaml:"selectedMonth"`

	Balance         lenientDecimal `json:"balance" yaml:"balance"`
	MonthlyIncome   lenientDecimal `json:"monthlyIncome" yaml:"monthlyIncome"`
	MonthlyExpenses lenientDecimal `json:"monthlyExpenses" yaml:"monthlyExpenses"`
	SavingsRate     lenientInt     `json:"savingsRate" yaml:"savingsRate"`
}

func (d financeStateDoc) model() FinanceState {
	return FinanceState{
		Months:          d.Months,
		Templates:       d.Templates,
		Goals:           d.Goals,
		Achievements:    d.Achievements,
		Quests:          d.Quests,
		Progression:     d.Progression,
		SelectedMonth:   d.SelectedMonth,
		Balance:         d.Balance.dec(),
		MonthlyIncome:   d.MonthlyIncome.dec(),
		MonthlyExpenses: d.MonthlyExpenses.dec(),
		SavingsRate:     int64(d.SavingsRate),
	}
}

func (s *FinanceState) UnmarshalYAML(value *yaml.Node) error {
	var doc financeStateDoc
	if err := value.Decode(&doc); err != nil {
		return err
	}
	*s = doc.model()
	return nil
}

func (s *FinanceState) UnmarshalJSON(data []byte) error {
	var doc financeStateDoc
	if err := json.Unmarshal(data, &doc); err != nil {
		return err
	}
	*s = doc.model()
	return nil
}
