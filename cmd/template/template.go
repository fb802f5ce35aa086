// Package template contains the commands that create and apply budget
// templates.
package template

import (
	"fmt"

	"github.com/spf13/cobra"

	"lifequest/finance-engine/cmd/root"
	"lifequest/finance-engine/internal/models"
)

var (
	description string
	kind        string

	// Cmd is the template command group
	Cmd = &cobra.Command{
		Use:   "template",
		Short: "Create and apply budget templates",
	}

	createCmd = &cobra.Command{
		Use:   "create [name]",
		Short: "Snapshot the active month's ledger into a template",
		Args:  cobra.ExactArgs(1),
		RunE:  runCreate,
	}

	applyCmd = &cobra.Command{
		Use:   "apply [template-id]",
		Short: "Expand a template's line items into the active month",
		Args:  cobra.ExactArgs(1),
		RunE:  runApply,
	}
)

func init() {
	createCmd.Flags().StringVar(&description, "description", "", "Template description")
	applyCmd.Flags().StringVarP(&kind, "kind", "k", string(models.KindExpense), "Which line items to apply: income or expense")
	Cmd.AddCommand(createCmd)
	Cmd.AddCommand(applyCmd)
}

func runCreate(cmd *cobra.Command, args []string) error {
	st, err := root.OpenStore()
	if err != nil {
		return err
	}
	defer root.CloseStore(st)

	svc := root.NewLedger(st)
	template, err := svc.CreateTemplate(cmd.Context(), args[0], description)
	if err != nil {
		return err
	}

	fmt.Printf("created template %s (%s): %d income items, %d expense items\n",
		template.ID, template.Name, len(template.IncomeItems), len(template.ExpenseItems))
	return nil
}

func runApply(cmd *cobra.Command, args []string) error {
	st, err := root.OpenStore()
	if err != nil {
		return err
	}
	defer root.CloseStore(st)

	svc := root.NewLedger(st)
	record, err := svc.ApplyTemplate(cmd.Context(), args[0], models.TransactionKind(kind))
	if err != nil {
		return err
	}

	fmt.Printf("month %s: %d transactions, balance %s\n",
		svc.Month(), len(record.Transactions), record.Balance.StringFixed(2))
	return nil
}
