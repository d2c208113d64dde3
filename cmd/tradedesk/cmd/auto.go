package cmd

import (
	"errors"
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/rustyeddy/tradedesk/autotrade"
	"github.com/rustyeddy/tradedesk/guard"
	"github.com/rustyeddy/tradedesk/journal"
	"github.com/rustyeddy/tradedesk/pkg/id"
)

var autoCmd = &cobra.Command{
	Use:   "auto",
	Short: "Control the server-side automated trading routine",
	Long: `Inspect, toggle and trigger the backend's automated trading routine.

Subcommands:
  status  - Show whether automated trading is enabled
  toggle  - Flip the enabled flag
  run     - Trigger one trading pass (refused while disabled)

Examples:
  tradedesk auto status
  tradedesk auto toggle
  tradedesk auto run`,
}

var autoStatusCmd = &cobra.Command{
	Use:   "status",
	Short: "Show whether automated trading is enabled",
	Args:  cobra.NoArgs,
	RunE:  runAutoStatus,
}

var autoToggleCmd = &cobra.Command{
	Use:   "toggle",
	Short: "Flip the automated trading flag",
	Args:  cobra.NoArgs,
	RunE:  runAutoToggle,
}

var autoRunCmd = &cobra.Command{
	Use:   "run",
	Short: "Trigger one automated trading pass",
	Args:  cobra.NoArgs,
	RunE:  runAutoRun,
}

func init() {
	rootCmd.AddCommand(autoCmd)
	autoCmd.AddCommand(autoStatusCmd)
	autoCmd.AddCommand(autoToggleCmd)
	autoCmd.AddCommand(autoRunCmd)
}

func runAutoStatus(cmd *cobra.Command, args []string) error {
	a, err := newApp()
	if err != nil {
		return err
	}
	ctx := cmd.Context()

	if err := a.requireAccess(ctx, "/auto-trade", guard.Requirements{Login: true, Account: true}); err != nil {
		return err
	}

	enabled, err := a.auto.Load(ctx)
	if err != nil {
		return err
	}

	fmt.Printf("Automated trading: %s\n", onOff(enabled))
	return nil
}

func runAutoToggle(cmd *cobra.Command, args []string) error {
	a, err := newApp()
	if err != nil {
		return err
	}
	ctx := cmd.Context()

	if err := a.requireAccess(ctx, "/auto-trade", guard.Requirements{Login: true, Account: true}); err != nil {
		return err
	}

	// Each invocation is a fresh process, so seed the mirror before
	// flipping it.
	if _, err := a.auto.Load(ctx); err != nil {
		return err
	}

	enabled, err := a.auto.Toggle(ctx)
	if err != nil {
		return fmt.Errorf("toggle failed, still %s: %w", onOff(enabled), err)
	}

	fmt.Printf("Automated trading: %s\n", onOff(enabled))
	return nil
}

func runAutoRun(cmd *cobra.Command, args []string) error {
	a, err := newApp()
	if err != nil {
		return err
	}
	ctx := cmd.Context()

	if err := a.requireAccess(ctx, "/auto-trade", guard.Requirements{Login: true, Account: true}); err != nil {
		return err
	}

	if _, err := a.auto.Load(ctx); err != nil {
		return err
	}

	decisions, err := a.auto.RunOnce(ctx)
	if err != nil {
		if errors.Is(err, autotrade.ErrDisabled) {
			return fmt.Errorf("automated trading is OFF: run `tradedesk auto toggle` first")
		}
		return err
	}

	if len(decisions) == 0 {
		fmt.Println("Run finished with no decisions.")
		return nil
	}

	fmt.Printf("%-16s %-8s %8s %-6s %10s\n", "STOCK", "CODE", "SCORE", "ACTION", "REWARD")
	for _, d := range decisions {
		reward := "-"
		if d.Reward != nil {
			reward = fmt.Sprintf("%.4f", *d.Reward)
		}
		fmt.Printf("%-16s %-8s %8.4f %-6s %10s\n", d.Stock, d.Code, d.ActionScore, d.Action, reward)
	}

	if err := journalAutoRun(a, decisions); err != nil {
		fmt.Printf("warning: journal write failed: %v\n", err)
	}
	return nil
}

func journalAutoRun(a *app, decisions []autotrade.Decision) error {
	j, err := a.openJournal()
	if err != nil || j == nil {
		return err
	}
	defer j.Close()

	runID := id.New()
	now := time.Now().UTC()
	recs := make([]journal.AutoRunRecord, 0, len(decisions))
	for _, d := range decisions {
		recs = append(recs, journal.AutoRunRecord{
			ID:          id.New(),
			RunID:       runID,
			Time:        now,
			Stock:       d.Stock,
			Code:        d.Code,
			ActionScore: d.ActionScore,
			Action:      string(d.Action),
			Reward:      d.Reward,
		})
	}
	return j.RecordAutoRun(recs)
}
