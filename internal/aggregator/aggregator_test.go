package aggregator

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"

	"lifequest/finance-engine/internal/models"
)

func tx(id string, amount int64, kind models.TransactionKind) models.Transaction {
	return models.Transaction{
		ID:     id,
		Amount: decimal.NewFromInt(amount),
		Kind:   kind,
	}
}

func TestAggregateEmpty(t *testing.T) {
	for _, input := range [][]models.Transaction{nil, {}} {
		record := Aggregate(input)
		assert.True(t, record.Income.IsZero())
		assert.True(t, record.Expenses.IsZero())
		assert.True(t, record.Balance.IsZero())
		assert.EqualValues(t, 0, record.SavingsRate)
		assert.NotNil(t, record.Transactions)
		assert.Empty(t, record.Transactions)
	}
}

func TestAggregateTotals(t *testing.T) {
	record := Aggregate([]models.Transaction{
		tx("a", 100, models.KindIncome),
		tx("b", 40, models.KindExpense),
	})

	assert.True(t, decimal.NewFromInt(100).Equal(record.Income), "income = %s", record.Income)
	assert.True(t, decimal.NewFromInt(40).Equal(record.Expenses), "expenses = %s", record.Expenses)
	assert.True(t, decimal.NewFromInt(60).Equal(record.Balance), "balance = %s", record.Balance)
	assert.EqualValues(t, 60, record.SavingsRate)
}

func TestAggregateUnknownKindIgnored(t *testing.T) {
	record := Aggregate([]models.Transaction{
		tx("a", 100, models.KindIncome),
		{ID: "b", Amount: decimal.NewFromInt(999), Kind: "mystery"},
	})

	assert.True(t, decimal.NewFromInt(100).Equal(record.Income))
	assert.True(t, record.Expenses.IsZero())
	// The malformed transaction is still carried in the ledger.
	assert.Len(t, record.Transactions, 2)
}

func TestAggregatePreservesOrder(t *testing.T) {
	input := []models.Transaction{
		tx("first", 10, models.KindExpense),
		tx("second", 20, models.KindIncome),
		tx("third", 30, models.KindExpense),
	}

	record := Aggregate(input)

	assert.Len(t, record.Transactions, 3)
	for i, got := range record.Transactions {
		assert.Equal(t, input[i].ID, got.ID)
	}
}

func TestAggregateNegativeBalance(t *testing.T) {
	record := Aggregate([]models.Transaction{
		tx("a", 50, models.KindIncome),
		tx("b", 80, models.KindExpense),
	})

	assert.True(t, decimal.NewFromInt(-30).Equal(record.Balance))
	assert.EqualValues(t, -60, record.SavingsRate)
}

func TestSavingsRateRounding(t *testing.T) {
	testCases := []struct {
		name     string
		balance  string
		income   string
		expected int64
	}{
		{"NoIncome", "10", "0", 0},
		{"NegativeIncome", "10", "-5", 0},
		{"Exact", "60", "100", 60},
		{"RoundsUp", "1", "3", 33},
		{"RoundsHalf", "1", "8", 13},
		{"FullSavings", "100", "100", 100},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			balance := decimal.RequireFromString(tc.balance)
			income := decimal.RequireFromString(tc.income)
			assert.Equal(t, tc.expected, SavingsRate(balance, income))
		})
	}
}
