// Package progression derives the leveling state from cumulative savings
// and unlocked achievements. Leveling is a pure recompute from scratch on
// every run, so the level can decrease when savings drop; only increases
// are signalled as level-ups.
package progression

import (
	"math"

	"github.com/shopspring/decimal"

	"lifequest/finance-engine/internal/models"
)

const (
	// xpPerAchievement is the XP awarded per completed achievement.
	xpPerAchievement = 50

	// baseThreshold is the XP threshold of level 1.
	baseThreshold = 100

	// thresholdGrowth is the geometric growth factor between levels.
	thresholdGrowth = 1.5
)

// TotalSavings sums the positive monthly balances across the record set.
// Months with a negative balance contribute zero; they never reduce the
// lifetime total.
func TotalSavings(set models.MonthlyRecordSet) decimal.Decimal {
	total := decimal.Zero
	for _, record := range set {
		if record.Balance.IsPositive() {
			total = total.Add(record.Balance)
		}
	}
	return total
}

// TotalXP converts savings and completed achievements into experience
// points: one XP per unit of currency saved (floor-rounded) plus a fixed
// award per achievement.
func TotalXP(savings decimal.Decimal, achievements int) int64 {
	xp := savings.Floor().IntPart()
	if xp < 0 {
		xp = 0
	}
	return xp + int64(achievements)*xpPerAchievement
}

// LevelThreshold returns the minimum XP required to hold the given level:
// floor(100 * 1.5^(level-1)).
func LevelThreshold(level int) int64 {
	if level < 1 {
		level = 1
	}
	return int64(math.Floor(baseThreshold * math.Pow(thresholdGrowth, float64(level-1))))
}

// LevelForXP resolves the highest level whose next threshold the XP has
// crossed, starting from level 1. Recomputing from scratch keeps the result
// correct when XP decreases.
func LevelForXP(xp int64) int {
	level := 1
	for xp >= LevelThreshold(level+1) {
		level++
	}
	return level
}

// Compute derives the full progression state for a finance document.
func Compute(state models.FinanceState) models.ProgressionState {
	savings := TotalSavings(state.Months)
	xp := TotalXP(savings, len(state.Achievements))
	level := LevelForXP(xp)
	return models.ProgressionState{
		Level:     level,
		CurrentXP: xp,
		MaxXP:     LevelThreshold(level + 1),
	}
}
