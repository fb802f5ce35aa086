package progression

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"

	"lifequest/finance-engine/internal/models"
)

func monthsWithBalances(balances ...int64) models.MonthlyRecordSet {
	set := models.MonthlyRecordSet{}
	keys := []string{"Janvier", "Février", "Mars", "Avril", "Mai", "Juin"}
	for i, balance := range balances {
		set[keys[i]] = models.MonthlyRecord{Balance: decimal.NewFromInt(balance)}
	}
	return set
}

func TestTotalSavingsIgnoresNegativeMonths(t *testing.T) {
	total := TotalSavings(monthsWithBalances(100, -50, 200, 0))
	assert.True(t, decimal.NewFromInt(300).Equal(total), "got %s", total)
}

func TestTotalSavingsEmpty(t *testing.T) {
	assert.True(t, TotalSavings(models.MonthlyRecordSet{}).IsZero())
	assert.True(t, TotalSavings(nil).IsZero())
}

func TestTotalXP(t *testing.T) {
	testCases := []struct {
		name         string
		savings      string
		achievements int
		expected     int64
	}{
		{"Zero", "0", 0, 0},
		{"SavingsOnly", "123.99", 0, 123},
		{"AchievementsOnly", "0", 3, 150},
		{"Both", "250.40", 2, 350},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			savings := decimal.RequireFromString(tc.savings)
			assert.Equal(t, tc.expected, TotalXP(savings, tc.achievements))
		})
	}
}

func TestLevelThreshold(t *testing.T) {
	assert.EqualValues(t, 100, LevelThreshold(1))
	assert.EqualValues(t, 150, LevelThreshold(2))
	assert.EqualValues(t, 225, LevelThreshold(3))
	assert.EqualValues(t, 337, LevelThreshold(4))
	assert.EqualValues(t, 506, LevelThreshold(5))
	// Degenerate input clamps to level 1.
	assert.EqualValues(t, 100, LevelThreshold(0))
}

func TestLevelForXP(t *testing.T) {
	testCases := []struct {
		xp       int64
		expected int
	}{
		{0, 1},
		{149, 1},
		{150, 2},
		{224, 2},
		{225, 3},
		{337, 4},
		{505, 4},
		{506, 5},
	}

	for _, tc := range testCases {
		assert.Equal(t, tc.expected, LevelForXP(tc.xp), "xp=%d", tc.xp)
	}
}

func TestComputeInvariant(t *testing.T) {
	// xp < xpThreshold must hold for any computed state.
	for _, savings := range []int64{0, 99, 150, 1000, 123456} {
		state := models.NewFinanceState()
		state.Months = monthsWithBalances(savings)
		computed := Compute(state)
		assert.Less(t, computed.CurrentXP, computed.MaxXP, "savings=%d", savings)
		if computed.Level > 1 {
			assert.GreaterOrEqual(t, computed.CurrentXP, LevelThreshold(computed.Level), "savings=%d", savings)
		}
	}
}
