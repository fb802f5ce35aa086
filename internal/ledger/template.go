package ledger

import (
	"context"
	"fmt"
	"strings"

	"github.com/shopspring/decimal"
	"github.com/sirupsen/logrus"

	"lifequest/finance-engine/internal/aggregator"
	"lifequest/finance-engine/internal/engineerror"
	"lifequest/finance-engine/internal/models"
)

// CreateTemplate snapshots the active month's ledger into a named budget
// template. Line items are copies of the month's transactions and the
// income/expense sums are frozen at creation time.
func (s *Service) CreateTemplate(ctx context.Context, name, description string) (models.BudgetTemplate, error) {
	if strings.TrimSpace(name) == "" {
		return models.BudgetTemplate{}, &engineerror.ValidationError{Field: "name", Reason: "must not be empty"}
	}

	state, err := s.load(ctx)
	if err != nil {
		return models.BudgetTemplate{}, err
	}

	record := state.Months[s.month]

	template := models.BudgetTemplate{
		ID:           s.newID(),
		Name:         strings.TrimSpace(name),
		Description:  description,
		IncomeItems:  []models.LineItem{},
		ExpenseItems: []models.LineItem{},
		Income:       decimal.Zero,
		Expenses:     decimal.Zero,
	}

	for _, tx := range record.Transactions {
		item := models.LineItem{
			Description: tx.Description,
			Amount:      tx.Amount,
			Category:    tx.Category,
		}
		switch {
		case tx.IsIncome():
			template.IncomeItems = append(template.IncomeItems, item)
			template.Income = template.Income.Add(tx.Amount)
		case tx.IsExpense():
			template.ExpenseItems = append(template.ExpenseItems, item)
			template.Expenses = template.Expenses.Add(tx.Amount)
		}
	}

	state.Templates = append(state.Templates, template)

	log.WithFields(logrus.Fields{
		"user":     s.userKey,
		"template": template.Name,
		"income":   len(template.IncomeItems),
		"expenses": len(template.ExpenseItems),
	}).Info("Created budget template")

	return template, s.save(ctx, state)
}

// ApplyTemplate expands every line item of the matching polarity into a
// fresh transaction tagged to the active month, re-aggregates once for the
// whole batch and persists. A template with no matching items is a no-op
// with an informational signal.
func (s *Service) ApplyTemplate(ctx context.Context, templateID string, kind models.TransactionKind) (models.MonthlyRecord, error) {
	if !kind.IsValid() {
		return models.MonthlyRecord{}, &engineerror.ValidationError{Field: "kind", Reason: "must be income or expense"}
	}

	state, err := s.load(ctx)
	if err != nil {
		return models.MonthlyRecord{}, err
	}

	var template *models.BudgetTemplate
	for i := range state.Templates {
		if state.Templates[i].ID == templateID {
			template = &state.Templates[i]
			break
		}
	}
	if template == nil {
		s.notifier.Info(fmt.Sprintf("no template '%s', nothing to apply", templateID))
		return state.Months[s.month], nil
	}

	items := template.ItemsFor(kind)
	if len(items) == 0 {
		s.notifier.Info(fmt.Sprintf("template '%s' has no %s items to apply", template.Name, kind))
		return state.Months[s.month], nil
	}

	record := state.Months[s.month]
	batch := append([]models.Transaction{}, record.Transactions...)
	for _, item := range items {
		batch = append(batch, models.Transaction{
			ID:          s.newID(),
			Date:        s.now(),
			Description: item.Description,
			Amount:      item.Amount,
			Category:    item.Category,
			Kind:        kind,
			Month:       s.month,
		})
	}
	record = aggregator.Aggregate(batch)

	log.WithFields(logrus.Fields{
		"user":     s.userKey,
		"template": template.Name,
		"month":    s.month,
		"applied":  len(items),
	}).Info("Applied budget template")

	return record, s.persistMonth(ctx, state, record)
}
