// Package add contains the command that appends a transaction to the
// active month's ledger.
package add

import (
	"fmt"
	"strings"

	"github.com/shopspring/decimal"
	"github.com/spf13/cobra"

	"lifequest/finance-engine/cmd/root"
	"lifequest/finance-engine/internal/models"
)

var (
	amount   string
	category string
	kind     string

	// Cmd is the add command
	Cmd = &cobra.Command{
		Use:   "add [description]",
		Short: "Add a transaction to the active month",
		Args:  cobra.MinimumNArgs(1),
		RunE:  run,
	}
)

func init() {
	Cmd.Flags().StringVarP(&amount, "amount", "a", "", "Transaction amount (required, positive)")
	Cmd.Flags().StringVarP(&category, "category", "c", "", "Transaction category")
	Cmd.Flags().StringVarP(&kind, "kind", "k", string(models.KindExpense), "Transaction kind: income or expense")
	_ = Cmd.MarkFlagRequired("amount")
}

func run(cmd *cobra.Command, args []string) error {
	value, err := decimal.NewFromString(strings.TrimSpace(amount))
	if err != nil {
		return fmt.Errorf("invalid amount '%s': %w", amount, err)
	}

	st, err := root.OpenStore()
	if err != nil {
		return err
	}
	defer root.CloseStore(st)

	svc := root.NewLedger(st)
	record, err := svc.AddTransaction(cmd.Context(), strings.Join(args, " "), value, category, models.TransactionKind(kind))
	if err != nil {
		return err
	}

	root.Log.WithField("month", svc.Month()).Infof("Ledger now holds %d transactions, balance %s",
		len(record.Transactions), record.Balance.StringFixed(2))
	return nil
}
