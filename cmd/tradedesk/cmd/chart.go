package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/rustyeddy/tradedesk/guard"
	"github.com/rustyeddy/tradedesk/indicators"
)

var chartCmd = &cobra.Command{
	Use:   "chart <stock-code>",
	Short: "Show recent daily candles for a stock",
	Long: `Fetch recent daily candles and print them with the configured
moving-average overlays.

Example:
  tradedesk chart 005930 --limit 30`,
	Args: cobra.ExactArgs(1),
	RunE: runChart,
}

var chartLimit int

func init() {
	rootCmd.AddCommand(chartCmd)

	chartCmd.Flags().IntVarP(&chartLimit, "limit", "l", 0, "number of candles (default from config)")
}

func runChart(cmd *cobra.Command, args []string) error {
	a, err := newApp()
	if err != nil {
		return err
	}
	ctx := cmd.Context()

	if err := a.requireAccess(ctx, "/chart", guard.Requirements{Login: true, Account: true}); err != nil {
		return err
	}

	limit := chartLimit
	if limit <= 0 {
		limit = a.cfg.Chart.DefaultLimit
	}

	stockCode := args[0]
	candles, err := a.views.LoadChart(ctx, stockCode, limit)
	if err != nil {
		return fmt.Errorf("fetch chart: %w", err)
	}
	if len(candles) == 0 {
		fmt.Printf("No candles for %s.\n", stockCode)
		return nil
	}

	fmt.Printf("%-12s %10s %10s %10s %10s %12s\n", "DATE", "OPEN", "HIGH", "LOW", "CLOSE", "VOLUME")
	for _, c := range candles {
		fmt.Printf("%-12s %10.0f %10.0f %10.0f %10.0f %12.0f\n",
			c.Time.Format("2006-01-02"), c.Open, c.High, c.Low, c.Close, c.Volume)
	}

	fmt.Println()
	for _, w := range a.cfg.Chart.MAWindows {
		ma, err := indicators.MA(candles, w)
		if err != nil {
			fmt.Printf("MA(%d):  n/a (%v)\n", w, err)
			continue
		}
		fmt.Printf("MA(%d):  %.2f\n", w, ma)
	}
	return nil
}
