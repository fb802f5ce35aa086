// Package goal contains the commands around savings goals.
package goal

import (
	"fmt"
	"strings"
	"time"

	"github.com/shopspring/decimal"
	"github.com/spf13/cobra"

	"lifequest/finance-engine/cmd/root"
)

var (
	target   string
	deadline string
	amount   string

	// Cmd is the goal command group
	Cmd = &cobra.Command{
		Use:   "goal",
		Short: "Create savings goals and contribute to them",
	}

	addCmd = &cobra.Command{
		Use:   "add [name]",
		Short: "Create a savings goal",
		Args:  cobra.MinimumNArgs(1),
		RunE:  runAdd,
	}

	contributeCmd = &cobra.Command{
		Use:   "contribute [goal-id]",
		Short: "Add to a goal's saved amount",
		Args:  cobra.ExactArgs(1),
		RunE:  runContribute,
	}
)

func init() {
	addCmd.Flags().StringVarP(&target, "target", "t", "", "Target amount (required, positive)")
	addCmd.Flags().StringVar(&deadline, "deadline", "", "Deadline as YYYY-MM-DD")
	_ = addCmd.MarkFlagRequired("target")

	contributeCmd.Flags().StringVarP(&amount, "amount", "a", "", "Contribution amount (required, positive)")
	_ = contributeCmd.MarkFlagRequired("amount")

	Cmd.AddCommand(addCmd)
	Cmd.AddCommand(contributeCmd)
}

func runAdd(cmd *cobra.Command, args []string) error {
	targetValue, err := decimal.NewFromString(strings.TrimSpace(target))
	if err != nil {
		return fmt.Errorf("invalid target '%s': %w", target, err)
	}

	var due time.Time
	if deadline != "" {
		due, err = time.Parse("2006-01-02", deadline)
		if err != nil {
			return fmt.Errorf("invalid deadline '%s': %w", deadline, err)
		}
	}

	st, err := root.OpenStore()
	if err != nil {
		return err
	}
	defer root.CloseStore(st)

	svc := root.NewLedger(st)
	goal, err := svc.AddGoal(cmd.Context(), strings.Join(args, " "), targetValue, due)
	if err != nil {
		return err
	}

	fmt.Printf("created goal %s (%s), target %s\n", goal.ID, goal.Name, goal.Target.StringFixed(2))
	return nil
}

func runContribute(cmd *cobra.Command, args []string) error {
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
	goal, err := svc.ContributeToGoal(cmd.Context(), args[0], value)
	if err != nil {
		return err
	}

	status := "in progress"
	if goal.Completed() {
		status = "complete"
	}
	fmt.Printf("goal %s: %s / %s (%s)\n", goal.Name, goal.Saved.StringFixed(2), goal.Target.StringFixed(2), status)
	return nil
}
