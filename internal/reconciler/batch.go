package reconciler

import (
	"context"
	"errors"
	"time"

	"golang.org/x/sync/errgroup"

	"lifequest/finance-engine/internal/logging"
	"lifequest/finance-engine/internal/monthkey"
	"lifequest/finance-engine/internal/store"
)

// DefaultWorkers bounds concurrent per-user reconciliations in a batch run.
const DefaultWorkers = 4

// ReconcileUser loads one user's document, reconciles its record set,
// refreshes the headline aggregates for the month the document last
// selected and writes the document back in a single save. A user with no
// document is nothing to do.
func ReconcileUser(ctx context.Context, st store.Store, userKey string, logger logging.Logger) error {
	state, err := st.Load(ctx, userKey)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			logger.Debug("No finance document, nothing to reconcile", logging.Field{Key: "user", Value: userKey})
			return nil
		}
		return err
	}
	state.EnsureInitialized()

	before := len(state.Months)
	state.Months = Reconcile(state.Months)

	// The selected month may itself have been an alias; normalize it so the
	// headline points at the record it merged into. A document that never
	// selected a month falls back to the current calendar month.
	headline := monthkey.Normalize(state.SelectedMonth)
	if headline == "" {
		headline = monthkey.ForTime(time.Now())
	}
	state.RefreshHeadline(headline)

	logger.Info("Reconciled monthly records",
		logging.Field{Key: "user", Value: userKey},
		logging.Field{Key: "raw_months", Value: before},
		logging.Field{Key: "canonical_months", Value: len(state.Months)})

	return st.Save(ctx, userKey, state)
}

// ReconcileUsers reconciles many users with bounded concurrency. Each user
// is an independent document, so per-user runs can proceed in parallel
// without violating the single-writer-per-month assumption.
func ReconcileUsers(ctx context.Context, st store.Store, userKeys []string, workers int, logger logging.Logger) error {
	if workers < 1 {
		workers = DefaultWorkers
	}

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(workers)

	for _, userKey := range userKeys {
		userKey := userKey
		g.Go(func() error {
			if err := ReconcileUser(ctx, st, userKey, logger); err != nil {
				logger.WithError(err).Error("Failed to reconcile user", logging.Field{Key: "user", Value: userKey})
				return err
			}
			return nil
		})
	}

	return g.Wait()
}
