package store

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"lifequest/finance-engine/internal/models"
)

func sampleState() models.FinanceState {
	state := models.NewFinanceState()
	state.Months["Mars"] = models.MonthlyRecord{
		Income:      decimal.NewFromInt(2000),
		Expenses:    decimal.NewFromInt(800),
		Balance:     decimal.NewFromInt(1200),
		SavingsRate: 60,
		Transactions: []models.Transaction{
			{
				ID:          "tx-1",
				Date:        time.Date(2024, time.March, 15, 0, 0, 0, 0, time.UTC),
				Description: "Salaire",
				Amount:      decimal.NewFromInt(2000),
				Category:    "Salaire",
				Kind:        models.KindIncome,
				Month:       "Mars",
			},
		},
	}
	state.Achievements = []string{"first-savings"}
	state.Quests["budget-week"] = 40
	state.Progression = models.ProgressionState{Level: 2, CurrentXP: 200, MaxXP: 225}
	state.RefreshHeadline("Mars")
	return state
}

func TestYAMLStoreRoundTrip(t *testing.T) {
	store := NewYAMLStore(t.TempDir())
	ctx := context.Background()
	want := sampleState()

	require.NoError(t, store.Save(ctx, "alice", want))

	got, err := store.Load(ctx, "alice")
	require.NoError(t, err)

	mars := got.Months["Mars"]
	require.Len(t, mars.Transactions, 1)
	assert.Equal(t, "Salaire", mars.Transactions[0].Description)
	assert.True(t, decimal.NewFromInt(2000).Equal(mars.Transactions[0].Amount))
	assert.True(t, decimal.NewFromInt(1200).Equal(mars.Balance))
	assert.EqualValues(t, 60, mars.SavingsRate)
	assert.Equal(t, []string{"first-savings"}, got.Achievements)
	assert.Equal(t, 40, got.Quests["budget-week"])
	assert.Equal(t, want.Progression, got.Progression)
	assert.True(t, want.Balance.Equal(got.Balance))
}

func TestYAMLStoreLoadMissing(t *testing.T) {
	store := NewYAMLStore(t.TempDir())
	_, err := store.Load(context.Background(), "nobody")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestYAMLStoreLoadCoercesMalformedAmounts(t *testing.T) {
	dir := t.TempDir()
	doc := `months:
  Mars:
    income: "not-a-number"
    expenses: "800"
    transactions:
      - id: tx-1
        description: Salaire
        amount: "abc"
        kind: income
        month: Mars
`
	require.NoError(t, os.WriteFile(filepath.Join(dir, "alice.yaml"), []byte(doc), 0644))

	store := NewYAMLStore(dir)
	state, err := store.Load(context.Background(), "alice")
	require.NoError(t, err, "a malformed amount must not make the document unreadable")

	mars := state.Months["Mars"]
	assert.True(t, mars.Income.IsZero())
	assert.True(t, decimal.NewFromInt(800).Equal(mars.Expenses))
	require.Len(t, mars.Transactions, 1)
	assert.True(t, mars.Transactions[0].Amount.IsZero())
	assert.Equal(t, "Salaire", mars.Transactions[0].Description)
}

func TestYAMLStoreLoadCorrupt(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "broken.yaml"), []byte("{not yaml: ["), 0644))

	store := NewYAMLStore(dir)
	_, err := store.Load(context.Background(), "broken")
	require.Error(t, err)
	assert.NotErrorIs(t, err, ErrNotFound)
}

func TestYAMLStoreSaveCreatesDirectory(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "nested", "data")
	store := NewYAMLStore(dir)

	require.NoError(t, store.Save(context.Background(), "alice", models.NewFinanceState()))

	_, err := os.Stat(filepath.Join(dir, "alice.yaml"))
	assert.NoError(t, err)
}

func TestYAMLStoreUserKeys(t *testing.T) {
	dir := t.TempDir()
	store := NewYAMLStore(dir)
	ctx := context.Background()

	require.NoError(t, store.Save(ctx, "bob", models.NewFinanceState()))
	require.NoError(t, store.Save(ctx, "alice", models.NewFinanceState()))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "notes.txt"), []byte("ignore"), 0644))

	keys, err := store.UserKeys(ctx)
	require.NoError(t, err)
	assert.Equal(t, []string{"alice", "bob"}, keys)
}

func TestYAMLStoreUserKeysMissingDirectory(t *testing.T) {
	store := NewYAMLStore(filepath.Join(t.TempDir(), "never-created"))
	keys, err := store.UserKeys(context.Background())
	require.NoError(t, err)
	assert.Empty(t, keys)
}
