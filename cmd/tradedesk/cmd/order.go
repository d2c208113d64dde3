package cmd

import (
	"encoding/json"
	"fmt"
	"strconv"
	"time"

	"github.com/spf13/cobra"

	"github.com/rustyeddy/tradedesk/backend"
	"github.com/rustyeddy/tradedesk/guard"
	"github.com/rustyeddy/tradedesk/journal"
	"github.com/rustyeddy/tradedesk/pkg/id"
)

var orderCmd = &cobra.Command{
	Use:   "order <buy|sell> <stock-code> <quantity>",
	Short: "Place a manual market order",
	Long: `Submit a market order through the backend. The backend applies its
risk limits before forwarding to the provider.

Accepted orders are appended to the local journal when one is configured.

Examples:
  tradedesk order buy 005930 2
  tradedesk order sell 035420 1`,
	Args: cobra.ExactArgs(3),
	RunE: runOrder,
}

func init() {
	rootCmd.AddCommand(orderCmd)
}

func runOrder(cmd *cobra.Command, args []string) error {
	a, err := newApp()
	if err != nil {
		return err
	}
	ctx := cmd.Context()

	qty, err := strconv.Atoi(args[2])
	if err != nil {
		return fmt.Errorf("quantity must be a number, got %q", args[2])
	}

	if err := a.requireAccess(ctx, "/manual-trade", guard.Requirements{Login: true, Account: true}); err != nil {
		return err
	}

	req := backend.OrderRequest{
		Side:      args[0],
		StockCode: args[1],
		Quantity:  qty,
	}
	res, err := a.api.PlaceMarketOrder(ctx, req)
	if err != nil {
		return fmt.Errorf("place order: %w", err)
	}

	fill := parseFill(res.Response)
	fmt.Printf("Order %s: %s %d x %s\n", res.Status, req.Side, req.Quantity, req.StockCode)
	if fill.StockName != "" {
		fmt.Printf("  %s @ %.2f (amount %.2f)\n", fill.StockName, fill.Price, fill.Amount)
	}

	if err := journalOrder(a, req, res, fill); err != nil {
		// The order already went through; a journal failure must not read
		// like a trading failure.
		fmt.Printf("warning: journal write failed: %v\n", err)
	}

	if recs, err := a.views.LoadHistory(ctx, req.StockCode, 5); err == nil && len(recs) > 0 {
		fmt.Printf("\nRecent orders for %s:\n", req.StockCode)
		printHistory(recs)
	}
	return nil
}

// providerFill is the subset of the provider's order acknowledgement worth
// journaling. Fields the provider omits stay zero.
type providerFill struct {
	StockName string
	Price     float64
	Amount    float64
}

func parseFill(raw json.RawMessage) providerFill {
	var payload struct {
		Name   string `json:"prdt_name"`
		Price  string `json:"ord_unpr"`
		Qty    string `json:"ord_qty"`
		Amount string `json:"ord_amt"`
	}
	if err := json.Unmarshal(raw, &payload); err != nil {
		return providerFill{}
	}

	fill := providerFill{StockName: payload.Name}
	fill.Price, _ = strconv.ParseFloat(payload.Price, 64)
	fill.Amount, _ = strconv.ParseFloat(payload.Amount, 64)
	if fill.Amount == 0 && fill.Price > 0 {
		if qty, err := strconv.ParseFloat(payload.Qty, 64); err == nil {
			fill.Amount = fill.Price * qty
		}
	}
	return fill
}

func journalOrder(a *app, req backend.OrderRequest, res backend.OrderResult, fill providerFill) error {
	j, err := a.openJournal()
	if err != nil || j == nil {
		return err
	}
	defer j.Close()

	return j.RecordOrder(journal.OrderRecord{
		ID:          id.New(),
		Time:        time.Now().UTC(),
		StockCode:   req.StockCode,
		StockName:   fill.StockName,
		Side:        req.Side,
		Quantity:    req.Quantity,
		OrderPrice:  fill.Price,
		OrderAmount: fill.Amount,
		Status:      res.Status,
	})
}
