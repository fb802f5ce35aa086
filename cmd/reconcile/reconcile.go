// Package reconcile contains the command that normalizes and merges
// monthly records stored under inconsistent month labels.
package reconcile

import (
	"fmt"

	"github.com/spf13/cobra"

	"lifequest/finance-engine/cmd/root"
	"lifequest/finance-engine/internal/logging"
	"lifequest/finance-engine/internal/reconciler"
	"lifequest/finance-engine/internal/store"
)

var (
	all bool

	// Cmd is the reconcile command
	Cmd = &cobra.Command{
		Use:   "reconcile",
		Short: "Merge monthly records stored under aliased month keys",
		RunE:  run,
	}
)

func init() {
	Cmd.Flags().BoolVar(&all, "all", false, "Reconcile every stored user, not just --user")
}

func run(cmd *cobra.Command, args []string) error {
	st, err := root.OpenStore()
	if err != nil {
		return err
	}
	defer root.CloseStore(st)

	logger := logging.NewLogrusAdapter(root.Log)

	if !all {
		return reconciler.ReconcileUser(cmd.Context(), st, root.UserKey, logger)
	}

	lister, ok := st.(store.Lister)
	if !ok {
		return fmt.Errorf("store backend cannot enumerate users")
	}
	userKeys, err := lister.UserKeys(cmd.Context())
	if err != nil {
		return err
	}

	return reconciler.ReconcileUsers(cmd.Context(), st, userKeys, root.Cfg.Reconcile.Workers, logger)
}
