package cmd

import (
	"fmt"
	"sort"

	"github.com/spf13/cobra"

	"github.com/rustyeddy/tradedesk/guard"
)

var indicatorCmd = &cobra.Command{
	Use:   "indicator <stock-code>",
	Short: "Show server-computed indicators for a stock",
	Long: `Fetch the backend's indicator snapshot for a stock.

Indicators the backend could not compute (not enough history) print as n/a.

Example:
  tradedesk indicator 005930`,
	Args: cobra.ExactArgs(1),
	RunE: runIndicator,
}

func init() {
	rootCmd.AddCommand(indicatorCmd)
}

func runIndicator(cmd *cobra.Command, args []string) error {
	a, err := newApp()
	if err != nil {
		return err
	}
	ctx := cmd.Context()

	if err := a.requireAccess(ctx, "/indicator", guard.Requirements{Login: true, Account: true}); err != nil {
		return err
	}

	stockCode := args[0]
	vals, err := a.views.LoadIndicators(ctx, stockCode)
	if err != nil {
		return fmt.Errorf("fetch indicators: %w", err)
	}
	if len(vals) == 0 {
		fmt.Printf("No indicators for %s.\n", stockCode)
		return nil
	}

	names := make([]string, 0, len(vals))
	for name := range vals {
		names = append(names, name)
	}
	sort.Strings(names)

	for _, name := range names {
		if v := vals[name]; v != nil {
			fmt.Printf("%-16s %12.4f\n", name, *v)
		} else {
			fmt.Printf("%-16s %12s\n", name, "n/a")
		}
	}
	return nil
}
