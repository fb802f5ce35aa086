package progression

import (
	"context"
	"errors"

	"github.com/sirupsen/logrus"

	"lifequest/finance-engine/internal/engineerror"
	"lifequest/finance-engine/internal/events"
	"lifequest/finance-engine/internal/models"
	"lifequest/finance-engine/internal/store"
)

var log = logrus.New()

// SetLogger allows setting a custom logger for the progression engine.
func SetLogger(logger *logrus.Logger) {
	if logger != nil {
		log = logger
	}
}

// Engine persists progression state transitions for one user and exposes
// the achievement/quest entry points that trigger XP recomputes.
type Engine struct {
	store    store.Store
	userKey  string
	notifier events.Notifier
}

// NewEngine creates a progression engine for one user key. A nil notifier
// discards events.
func NewEngine(st store.Store, userKey string, notifier events.Notifier) *Engine {
	if notifier == nil {
		notifier = events.Nop{}
	}
	return &Engine{store: st, userKey: userKey, notifier: notifier}
}

// Recompute derives the progression state from the stored document and
// persists it only when at least one field changed. A level increase fires
// the LevelUp event; the event is informational and the stored state does
// not depend on it.
func (e *Engine) Recompute(ctx context.Context) (models.ProgressionState, error) {
	state, err := e.loadState(ctx)
	if err != nil {
		return models.ProgressionState{}, err
	}
	return e.recomputeAndSave(ctx, state, false)
}

// NotifyAchievementUnlocked records a completed achievement and recomputes
// XP. Unlocking the same achievement twice is a no-op.
func (e *Engine) NotifyAchievementUnlocked(ctx context.Context, id string) (models.ProgressionState, error) {
	state, err := e.loadState(ctx)
	if err != nil {
		return models.ProgressionState{}, err
	}

	dirty := false
	if id != "" && !state.HasAchievement(id) {
		state.Achievements = append(state.Achievements, id)
		dirty = true
		log.WithFields(logrus.Fields{"user": e.userKey, "achievement": id}).Info("Achievement unlocked")
	}

	return e.recomputeAndSave(ctx, state, dirty)
}

// NotifyQuestProgress records quest progress (clamped to 0-100). A quest
// reaching 100 percent unlocks an achievement under the quest id so it
// feeds the same XP recompute path.
func (e *Engine) NotifyQuestProgress(ctx context.Context, id string, percent int) (models.ProgressionState, error) {
	if id == "" {
		return models.ProgressionState{}, &engineerror.ValidationError{Field: "quest id", Reason: "must not be empty"}
	}
	if percent < 0 {
		percent = 0
	}
	if percent > 100 {
		percent = 100
	}

	state, err := e.loadState(ctx)
	if err != nil {
		return models.ProgressionState{}, err
	}

	dirty := state.Quests[id] != percent
	state.Quests[id] = percent

	if percent >= 100 && !state.HasAchievement(id) {
		state.Achievements = append(state.Achievements, id)
		dirty = true
		log.WithFields(logrus.Fields{"user": e.userKey, "quest": id}).Info("Quest completed")
	}

	return e.recomputeAndSave(ctx, state, dirty)
}

func (e *Engine) loadState(ctx context.Context) (models.FinanceState, error) {
	state, err := e.store.Load(ctx, e.userKey)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return models.NewFinanceState(), nil
		}
		return models.FinanceState{}, &engineerror.PersistenceError{Op: "load", UserKey: e.userKey, Err: err}
	}
	state.EnsureInitialized()
	return state, nil
}

// recomputeAndSave installs the freshly computed progression state and
// writes the document when the progression or anything upstream (dirty)
// changed. Redundant writes are skipped.
func (e *Engine) recomputeAndSave(ctx context.Context, state models.FinanceState, dirty bool) (models.ProgressionState, error) {
	previous := state.Progression
	next := Compute(state)

	if next == previous && !dirty {
		return next, nil
	}

	if previous.Level > 0 && next.Level > previous.Level {
		log.WithFields(logrus.Fields{
			"user": e.userKey,
			"from": previous.Level,
			"to":   next.Level,
		}).Info("Level up")
		e.notifier.LevelUp(previous.Level, next.Level)
	}

	state.Progression = next
	if err := e.store.Save(ctx, e.userKey, state); err != nil {
		return next, &engineerror.PersistenceError{Op: "save", UserKey: e.userKey, Err: err}
	}
	return next, nil
}
