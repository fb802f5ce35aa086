package ledger

import (
	"context"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"lifequest/finance-engine/internal/engineerror"
)

func TestGoalLifecycle(t *testing.T) {
	svc, _ := newTestService(t)
	ctx := context.Background()

	goal, err := svc.AddGoal(ctx, "Vacances", decimal.NewFromInt(1000), time.Date(2024, time.August, 1, 0, 0, 0, 0, time.UTC))
	require.NoError(t, err)
	assert.True(t, goal.Saved.IsZero())
	assert.False(t, goal.Completed())

	goal, err = svc.ContributeToGoal(ctx, goal.ID, decimal.NewFromInt(400))
	require.NoError(t, err)
	assert.True(t, decimal.NewFromInt(400).Equal(goal.Saved))
	assert.False(t, goal.Completed())

	goal, err = svc.ContributeToGoal(ctx, goal.ID, decimal.NewFromInt(600))
	require.NoError(t, err)
	assert.True(t, goal.Completed())
}

func TestGoalValidation(t *testing.T) {
	svc, _ := newTestService(t)
	ctx := context.Background()

	var validationErr *engineerror.ValidationError

	_, err := svc.AddGoal(ctx, "", decimal.NewFromInt(100), time.Time{})
	assert.ErrorAs(t, err, &validationErr)

	_, err = svc.AddGoal(ctx, "Vacances", decimal.Zero, time.Time{})
	assert.ErrorAs(t, err, &validationErr)

	_, err = svc.ContributeToGoal(ctx, "whatever", decimal.NewFromInt(-1))
	assert.ErrorAs(t, err, &validationErr)
}

func TestContributeToUnknownGoal(t *testing.T) {
	svc, _ := newTestService(t)
	_, err := svc.ContributeToGoal(context.Background(), "missing", decimal.NewFromInt(10))
	var notFound *engineerror.NotFoundError
	assert.ErrorAs(t, err, &notFound)
}
