// Package report contains the command that prints a month summary and
// optionally exports the ledger to CSV.
package report

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"lifequest/finance-engine/cmd/root"
	"lifequest/finance-engine/internal/report"
	"lifequest/finance-engine/internal/store"
)

var (
	csvFile string

	// Cmd is the report command
	Cmd = &cobra.Command{
		Use:   "report",
		Short: "Print the active month's aggregates",
		RunE:  run,
	}
)

func init() {
	Cmd.Flags().StringVarP(&csvFile, "csv", "o", "", "Also export the month's ledger to this CSV file")
}

func run(cmd *cobra.Command, args []string) error {
	st, err := root.OpenStore()
	if err != nil {
		return err
	}
	defer root.CloseStore(st)

	svc := root.NewLedger(st)
	state, err := st.Load(cmd.Context(), root.UserKey)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			root.Log.Info("No finance document yet")
			return nil
		}
		return err
	}

	summary := report.MonthSummary(state, svc.Month())
	fmt.Println(summary.String())

	if csvFile != "" {
		if err := report.WriteLedgerCSV(state.Months[svc.Month()], csvFile); err != nil {
			return err
		}
	}
	return nil
}
