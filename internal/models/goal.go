package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// SavingsGoal tracks progress toward a savings target. Saved only ever
// grows through explicit contributions.
type SavingsGoal struct {
	ID       string          `json:"id" yaml:"id"`
	Name     string          `json:"name" yaml:"name"`
	Target   decimal.Decimal `json:"target" yaml:"target"`
	Saved    decimal.Decimal `json:"saved" yaml:"saved"`
	Deadline time.Time       `json:"deadline" yaml:"deadline"`
}

// Completed returns true once the saved amount has reached the target.
func (g SavingsGoal) Completed() bool {
	return g.Saved.GreaterThanOrEqual(g.Target)
}
