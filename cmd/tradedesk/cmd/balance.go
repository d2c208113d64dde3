package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/rustyeddy/tradedesk/guard"
)

var balanceCmd = &cobra.Command{
	Use:   "balance",
	Short: "Show account balance and holdings",
	Args:  cobra.NoArgs,
	RunE:  runBalance,
}

func init() {
	rootCmd.AddCommand(balanceCmd)
}

func runBalance(cmd *cobra.Command, args []string) error {
	a, err := newApp()
	if err != nil {
		return err
	}
	ctx := cmd.Context()

	if err := a.requireAccess(ctx, "/balance", guard.Requirements{Login: true, Account: true}); err != nil {
		return err
	}

	bal, err := a.views.LoadBalance(ctx)
	if err != nil {
		return fmt.Errorf("fetch balance: %w", err)
	}

	if len(bal.Holdings) == 0 {
		fmt.Println("No holdings.")
	} else {
		fmt.Printf("%-8s %-16s %10s %12s %14s %14s %12s\n",
			"CODE", "NAME", "QTY", "AVG PRICE", "BUY AMOUNT", "EVAL AMOUNT", "P&L")
		for _, h := range bal.Holdings {
			fmt.Printf("%-8s %-16s %10.0f %12.2f %14.2f %14.2f %12.2f\n",
				h.StockCode, h.StockName, h.Quantity, h.AvgPrice, h.BuyAmount, h.EvalAmount, h.PnL)
		}
	}

	fmt.Println()
	fmt.Printf("Cash:       %14.2f\n", bal.Summary.Cash)
	fmt.Printf("Total eval: %14.2f\n", bal.Summary.TotalEval)
	fmt.Printf("Net assets: %14.2f\n", bal.Summary.NetAssets)
	return nil
}
