// Package events carries the optional notification signals the engine may
// emit. Signals are informational; correctness of the stored state never
// depends on them being delivered.
package events

// Notifier receives engine events. Implementations drive UI notifications
// or sounds; the engine only calls them after the corresponding state has
// been computed.
type Notifier interface {
	// LevelUp fires when a recompute raises the level. Decreases are silent.
	LevelUp(oldLevel, newLevel int)

	// Info carries a user-visible informational message, e.g. a template
	// application that had nothing to do.
	Info(message string)
}

// Nop discards all events.
type Nop struct{}

func (Nop) LevelUp(oldLevel, newLevel int) {}

func (Nop) Info(message string) {}
