package models

// ProgressionState is the persisted leveling state. CurrentXP is always
// strictly below MaxXP; crossing MaxXP is resolved into a higher level
// before the state is written.
type ProgressionState struct {
	Level     int   `json:"level" yaml:"level"`
	CurrentXP int64 `json:"currentXP" yaml:"currentXP"`
	MaxXP     int64 `json:"maxXP" yaml:"maxXP"`
}
