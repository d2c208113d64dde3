package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/rustyeddy/tradedesk/guard"
)

var performanceCmd = &cobra.Command{
	Use:   "performance",
	Short: "Show account performance over a window",
	Long: `Fetch the backend's performance summary and valuation snapshots.

Example:
  tradedesk performance --days 90`,
	Args: cobra.NoArgs,
	RunE: runPerformance,
}

var performanceDays int

func init() {
	rootCmd.AddCommand(performanceCmd)

	performanceCmd.Flags().IntVarP(&performanceDays, "days", "d", 30, "window in days")
}

func runPerformance(cmd *cobra.Command, args []string) error {
	a, err := newApp()
	if err != nil {
		return err
	}
	ctx := cmd.Context()

	if err := a.requireAccess(ctx, "/performance", guard.Requirements{Login: true, Account: true}); err != nil {
		return err
	}

	perf, err := a.views.LoadPerformance(ctx, performanceDays)
	if err != nil {
		return fmt.Errorf("fetch performance: %w", err)
	}

	s := perf.Summary
	fmt.Printf("Last %d days:\n", performanceDays)
	fmt.Printf("  Start value:  %14.2f\n", s.StartValue)
	fmt.Printf("  End value:    %14.2f\n", s.EndValue)
	fmt.Printf("  Return:       %13.2f%%\n", s.TotalReturnPct)
	fmt.Printf("  Max drawdown: %13.2f%%\n", s.MaxDrawdownPct)
	fmt.Printf("  P&L sum:      %14.2f\n", s.PnLSum)

	if len(perf.Snapshots) == 0 {
		return nil
	}

	fmt.Printf("\n%-20s %14s %14s %14s\n", "TIME", "TOTAL VALUE", "CASH", "P&L")
	for _, snap := range perf.Snapshots {
		fmt.Printf("%-20s %14.2f %14.2f %14.2f\n",
			snap.Timestamp.Local().Format("2006-01-02 15:04:05"),
			snap.TotalValue, snap.Cash, snap.TotalPnL)
	}
	return nil
}
