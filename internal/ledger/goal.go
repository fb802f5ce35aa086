package ledger

import (
	"context"
	"strings"
	"time"

	"github.com/shopspring/decimal"
	"github.com/sirupsen/logrus"

	"lifequest/finance-engine/internal/engineerror"
	"lifequest/finance-engine/internal/models"
)

// AddGoal creates a savings goal with a zero saved amount.
func (s *Service) AddGoal(ctx context.Context, name string, target decimal.Decimal, deadline time.Time) (models.SavingsGoal, error) {
	if strings.TrimSpace(name) == "" {
		return models.SavingsGoal{}, &engineerror.ValidationError{Field: "name", Reason: "must not be empty"}
	}
	if !target.IsPositive() {
		return models.SavingsGoal{}, &engineerror.ValidationError{Field: "target", Reason: "must be greater than zero"}
	}

	state, err := s.load(ctx)
	if err != nil {
		return models.SavingsGoal{}, err
	}

	goal := models.SavingsGoal{
		ID:       s.newID(),
		Name:     strings.TrimSpace(name),
		Target:   target,
		Saved:    decimal.Zero,
		Deadline: deadline,
	}
	state.Goals = append(state.Goals, goal)

	log.WithFields(logrus.Fields{
		"user":   s.userKey,
		"goal":   goal.Name,
		"target": target.String(),
	}).Info("Created savings goal")

	return goal, s.save(ctx, state)
}

// ContributeToGoal adds to a goal's saved amount. Saved only ever grows;
// there is no withdrawal operation.
func (s *Service) ContributeToGoal(ctx context.Context, goalID string, amount decimal.Decimal) (models.SavingsGoal, error) {
	if !amount.IsPositive() {
		return models.SavingsGoal{}, &engineerror.ValidationError{Field: "amount", Reason: "must be greater than zero"}
	}

	state, err := s.load(ctx)
	if err != nil {
		return models.SavingsGoal{}, err
	}

	idx := -1
	for i := range state.Goals {
		if state.Goals[i].ID == goalID {
			idx = i
			break
		}
	}
	if idx < 0 {
		return models.SavingsGoal{}, &engineerror.NotFoundError{Entity: "goal", ID: goalID}
	}

	goals := append([]models.SavingsGoal{}, state.Goals...)
	goals[idx].Saved = goals[idx].Saved.Add(amount)
	state.Goals = goals

	if goals[idx].Completed() {
		s.notifier.Info("savings goal '" + goals[idx].Name + "' reached its target")
	}

	return goals[idx], s.save(ctx, state)
}
