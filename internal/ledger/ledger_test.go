package ledger

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"lifequest/finance-engine/internal/engineerror"
	"lifequest/finance-engine/internal/models"
	"lifequest/finance-engine/internal/store"
)

func newTestService(t *testing.T) (*Service, *store.Mock) {
	t.Helper()
	mock := store.NewMock()
	counter := 0
	svc := NewService(mock, "alice",
		WithMonth("Mars"),
		WithClock(func() time.Time { return time.Date(2024, time.March, 15, 10, 0, 0, 0, time.UTC) }),
		WithIDGenerator(func() string {
			counter++
			return fmt.Sprintf("tx-%d", counter)
		}),
	)
	return svc, mock
}

func TestAddDeleteScenario(t *testing.T) {
	svc, mock := newTestService(t)
	ctx := context.Background()

	record, err := svc.AddTransaction(ctx, "Salaire", decimal.NewFromInt(2000), "Salaire", models.KindIncome)
	require.NoError(t, err)

	record, err = svc.AddTransaction(ctx, "Loyer", decimal.NewFromInt(800), "Logement", models.KindExpense)
	require.NoError(t, err)

	assert.True(t, decimal.NewFromInt(2000).Equal(record.Income))
	assert.True(t, decimal.NewFromInt(800).Equal(record.Expenses))
	assert.True(t, decimal.NewFromInt(1200).Equal(record.Balance))
	assert.EqualValues(t, 60, record.SavingsRate)
	require.Len(t, record.Transactions, 2)

	loyerID := record.Transactions[1].ID
	record, err = svc.DeleteTransaction(ctx, loyerID)
	require.NoError(t, err)

	assert.True(t, decimal.NewFromInt(2000).Equal(record.Income))
	assert.True(t, record.Expenses.IsZero())
	assert.True(t, decimal.NewFromInt(2000).Equal(record.Balance))
	assert.EqualValues(t, 100, record.SavingsRate)
	assert.Len(t, record.Transactions, 1)

	// Headline aggregates follow the active month on every save.
	state, ok := mock.State("alice")
	require.True(t, ok)
	assert.Equal(t, "Mars", state.SelectedMonth)
	assert.True(t, decimal.NewFromInt(2000).Equal(state.Balance))
	assert.EqualValues(t, 100, state.SavingsRate)
}

func TestAddTransactionValidation(t *testing.T) {
	svc, mock := newTestService(t)
	ctx := context.Background()

	testCases := []struct {
		name        string
		description string
		amount      decimal.Decimal
		kind        models.TransactionKind
	}{
		{"EmptyDescription", "", decimal.NewFromInt(10), models.KindIncome},
		{"WhitespaceDescription", "   ", decimal.NewFromInt(10), models.KindIncome},
		{"ZeroAmount", "Café", decimal.Zero, models.KindExpense},
		{"NegativeAmount", "Café", decimal.NewFromInt(-5), models.KindExpense},
		{"UnknownKind", "Café", decimal.NewFromInt(5), "transfer"},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := svc.AddTransaction(ctx, tc.description, tc.amount, "", tc.kind)
			var validationErr *engineerror.ValidationError
			assert.ErrorAs(t, err, &validationErr)
		})
	}

	// Rejected mutations must not write anything.
	assert.Equal(t, 0, mock.Saves)
}

func TestTransactionFieldsSynthesized(t *testing.T) {
	svc, _ := newTestService(t)

	record, err := svc.AddTransaction(context.Background(), "  Salaire  ", decimal.NewFromInt(2000), "Salaire", models.KindIncome)
	require.NoError(t, err)
	require.Len(t, record.Transactions, 1)

	tx := record.Transactions[0]
	assert.Equal(t, "tx-1", tx.ID)
	assert.Equal(t, "Salaire", tx.Description)
	assert.Equal(t, "Mars", tx.Month)
	assert.Equal(t, time.Date(2024, time.March, 15, 10, 0, 0, 0, time.UTC), tx.Date)
	assert.False(t, tx.Verified)
}

func TestDeleteAbsentIDIsNoOp(t *testing.T) {
	svc, mock := newTestService(t)
	ctx := context.Background()

	_, err := svc.AddTransaction(ctx, "Salaire", decimal.NewFromInt(100), "", models.KindIncome)
	require.NoError(t, err)
	savesBefore := mock.Saves

	record, err := svc.DeleteTransaction(ctx, "does-not-exist")
	require.NoError(t, err)
	assert.Len(t, record.Transactions, 1)
	// A no-op delete still persists the (unchanged) record.
	assert.Equal(t, savesBefore+1, mock.Saves)
}

func TestEditTransactionAmount(t *testing.T) {
	svc, _ := newTestService(t)
	ctx := context.Background()

	record, err := svc.AddTransaction(ctx, "Salaire", decimal.NewFromInt(2000), "Salaire", models.KindIncome)
	require.NoError(t, err)
	id := record.Transactions[0].ID

	record, err = svc.EditTransactionAmount(ctx, id, decimal.NewFromInt(1500))
	require.NoError(t, err)

	assert.True(t, decimal.NewFromInt(1500).Equal(record.Income))
	assert.True(t, decimal.NewFromInt(1500).Equal(record.Transactions[0].Amount))
	assert.Equal(t, "Salaire", record.Transactions[0].Description)
}

func TestEditAbsentIDIsNoOp(t *testing.T) {
	svc, _ := newTestService(t)
	ctx := context.Background()

	_, err := svc.AddTransaction(ctx, "Salaire", decimal.NewFromInt(2000), "", models.KindIncome)
	require.NoError(t, err)

	record, err := svc.EditTransactionAmount(ctx, "missing", decimal.NewFromInt(1))
	require.NoError(t, err)
	assert.True(t, decimal.NewFromInt(2000).Equal(record.Income))
}

func TestToggleVerified(t *testing.T) {
	svc, _ := newTestService(t)
	ctx := context.Background()

	record, err := svc.AddTransaction(ctx, "Salaire", decimal.NewFromInt(2000), "", models.KindIncome)
	require.NoError(t, err)
	id := record.Transactions[0].ID

	record, err = svc.ToggleVerified(ctx, id)
	require.NoError(t, err)
	assert.True(t, record.Transactions[0].Verified)

	_, err = svc.ToggleVerified(ctx, "missing")
	var notFound *engineerror.NotFoundError
	assert.ErrorAs(t, err, &notFound)
}

func TestPersistenceErrorSurfaces(t *testing.T) {
	svc, mock := newTestService(t)
	mock.SaveErr = fmt.Errorf("disk full")

	_, err := svc.AddTransaction(context.Background(), "Salaire", decimal.NewFromInt(100), "", models.KindIncome)
	var persistenceErr *engineerror.PersistenceError
	require.ErrorAs(t, err, &persistenceErr)
	assert.Equal(t, "save", persistenceErr.Op)
}

func TestSelectMonthNormalizes(t *testing.T) {
	svc, _ := newTestService(t)
	assert.Equal(t, "Janvier", svc.SelectMonth("janv"))
	assert.Equal(t, "Janvier", svc.Month())
}

func TestSelectMonthEmptyFallsBackToCurrent(t *testing.T) {
	svc, mock := newTestService(t)
	ctx := context.Background()

	// Blank input must never leave the service pointed at an empty key,
	// which reconciliation would silently drop.
	assert.Equal(t, "Mars", svc.SelectMonth(""))
	assert.Equal(t, "Mars", svc.SelectMonth("   "))

	record, err := svc.AddTransaction(ctx, "Salaire", decimal.NewFromInt(100), "", models.KindIncome)
	require.NoError(t, err)
	assert.Equal(t, "Mars", record.Transactions[0].Month)

	state, ok := mock.State("alice")
	require.True(t, ok)
	_, hasEmptyKey := state.Months[""]
	assert.False(t, hasEmptyKey)
}
