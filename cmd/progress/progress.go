// Package progress contains the commands around the XP/level progression.
package progress

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"lifequest/finance-engine/cmd/root"
	"lifequest/finance-engine/internal/models"
	"lifequest/finance-engine/internal/progression"
)

// Cmd is the progress command group
var Cmd = &cobra.Command{
	Use:   "progress",
	Short: "Recompute and show the XP/level progression",
	RunE:  runShow,
}

var unlockCmd = &cobra.Command{
	Use:   "unlock [achievement-id]",
	Short: "Record an unlocked achievement and recompute XP",
	Args:  cobra.ExactArgs(1),
	RunE:  runUnlock,
}

var questCmd = &cobra.Command{
	Use:   "quest [quest-id] [percent]",
	Short: "Record quest progress; 100 percent unlocks an achievement",
	Args:  cobra.ExactArgs(2),
	RunE:  runQuest,
}

func init() {
	Cmd.AddCommand(unlockCmd)
	Cmd.AddCommand(questCmd)
}

func runShow(cmd *cobra.Command, args []string) error {
	engine, closeStore, err := newEngine()
	if err != nil {
		return err
	}
	defer closeStore()

	state, err := engine.Recompute(cmd.Context())
	if err != nil {
		return err
	}
	printState(state)
	return nil
}

func runUnlock(cmd *cobra.Command, args []string) error {
	engine, closeStore, err := newEngine()
	if err != nil {
		return err
	}
	defer closeStore()

	state, err := engine.NotifyAchievementUnlocked(cmd.Context(), args[0])
	if err != nil {
		return err
	}
	printState(state)
	return nil
}

func runQuest(cmd *cobra.Command, args []string) error {
	percent, err := strconv.Atoi(args[1])
	if err != nil {
		return fmt.Errorf("invalid percent '%s': %w", args[1], err)
	}

	engine, closeStore, err := newEngine()
	if err != nil {
		return err
	}
	defer closeStore()

	state, err := engine.NotifyQuestProgress(cmd.Context(), args[0], percent)
	if err != nil {
		return err
	}
	printState(state)
	return nil
}

func newEngine() (*progression.Engine, func(), error) {
	st, err := root.OpenStore()
	if err != nil {
		return nil, nil, err
	}
	return progression.NewEngine(st, root.UserKey, nil), func() { root.CloseStore(st) }, nil
}

func printState(state models.ProgressionState) {
	fmt.Printf("level %d, %d/%d XP\n", state.Level, state.CurrentXP, state.MaxXP)
}
