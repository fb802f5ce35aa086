// Package watch contains the command that runs reconciliation on a
// schedule. Reconciliation is idempotent, so the loop is safe to run
// alongside normal ledger usage.
package watch

import (
	"context"
	"fmt"

	"github.com/robfig/cron"
	"github.com/spf13/cobra"

	"lifequest/finance-engine/cmd/root"
	"lifequest/finance-engine/internal/logging"
	"lifequest/finance-engine/internal/reconciler"
	"lifequest/finance-engine/internal/store"
)

var (
	schedule string

	// Cmd is the watch command
	Cmd = &cobra.Command{
		Use:   "watch",
		Short: "Periodically reconcile every stored user",
		RunE:  run,
	}
)

func init() {
	Cmd.Flags().StringVarP(&schedule, "schedule", "s", "", "Cron schedule (defaults to the configured one)")
}

func run(cmd *cobra.Command, args []string) error {
	st, err := root.OpenStore()
	if err != nil {
		return err
	}
	defer root.CloseStore(st)

	lister, ok := st.(store.Lister)
	if !ok {
		return fmt.Errorf("store backend cannot enumerate users")
	}

	spec := schedule
	if spec == "" {
		spec = root.Cfg.Reconcile.Schedule
	}

	logger := logging.NewLogrusAdapter(root.Log)
	job := func() {
		ctx := context.Background()
		userKeys, err := lister.UserKeys(ctx)
		if err != nil {
			logger.WithError(err).Error("Failed to list users")
			return
		}
		if err := reconciler.ReconcileUsers(ctx, st, userKeys, root.Cfg.Reconcile.Workers, logger); err != nil {
			logger.WithError(err).Error("Reconciliation run failed")
		}
	}

	// Run once immediately so a misconfigured schedule still reconciles.
	job()

	c := cron.New()
	if err := c.AddFunc(spec, job); err != nil {
		return fmt.Errorf("invalid schedule '%s': %w", spec, err)
	}

	root.Log.WithField("schedule", spec).Info("Watching for reconciliation runs")
	c.Run()
	return nil
}
