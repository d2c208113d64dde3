package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/rustyeddy/tradedesk/backend"
	"github.com/rustyeddy/tradedesk/guard"
)

var historyCmd = &cobra.Command{
	Use:   "history",
	Short: "Show the backend's order history",
	Long: `List recent orders recorded by the backend, newest first.

Examples:
  tradedesk history
  tradedesk history --stock 005930 --limit 20`,
	Args: cobra.NoArgs,
	RunE: runHistory,
}

var (
	historyStock string
	historyLimit int
)

func init() {
	rootCmd.AddCommand(historyCmd)

	historyCmd.Flags().StringVarP(&historyStock, "stock", "s", "", "filter by stock code")
	historyCmd.Flags().IntVarP(&historyLimit, "limit", "l", 20, "maximum rows")
}

func runHistory(cmd *cobra.Command, args []string) error {
	a, err := newApp()
	if err != nil {
		return err
	}
	ctx := cmd.Context()

	if err := a.requireAccess(ctx, "/history", guard.Requirements{Login: true, Account: true}); err != nil {
		return err
	}

	recs, err := a.views.LoadHistory(ctx, historyStock, historyLimit)
	if err != nil {
		return fmt.Errorf("fetch history: %w", err)
	}
	if len(recs) == 0 {
		fmt.Println("No orders.")
		return nil
	}

	printHistory(recs)
	return nil
}

func printHistory(recs []backend.TradeRecord) {
	fmt.Printf("%-20s %-8s %-16s %-5s %6s %12s %14s %-8s\n",
		"TIME", "CODE", "NAME", "SIDE", "QTY", "PRICE", "AMOUNT", "STATUS")
	for _, r := range recs {
		fmt.Printf("%-20s %-8s %-16s %-5s %6d %12.2f %14.2f %-8s\n",
			r.CreatedAt.Local().Format("2006-01-02 15:04:05"),
			r.StockCode, r.StockName, r.Side, r.Quantity, r.OrderPrice, r.OrderAmount, r.Status)
	}
}
