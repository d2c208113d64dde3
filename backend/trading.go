package backend

import (
	"context"
	"encoding/json"
	"fmt"
	"net/url"
	"strconv"
	"strings"
	"time"
)

// Order sides accepted by the backend.
const (
	SideBuy  = "BUY"
	SideSell = "SELL"
)

// OrderRequest is a manual market order.
type OrderRequest struct {
	StockCode string `json:"stock_code"`
	Quantity  int    `json:"quantity"`
	Side      string `json:"side"`
}

// OrderResult is the backend's order acknowledgement. Response carries the
// provider's raw payload for display and journaling.
type OrderResult struct {
	Status   string          `json:"status"`
	Response json.RawMessage `json:"response"`
}

// TradeRecord is one row of the backend's order history.
type TradeRecord struct {
	CreatedAt   time.Time `json:"created_at"`
	StockCode   string    `json:"stock_code"`
	StockName   string    `json:"stock_name"`
	Side        string    `json:"side"`
	Quantity    int       `json:"quantity"`
	OrderPrice  float64   `json:"order_price"`
	OrderAmount float64   `json:"order_amount"`
	Status      string    `json:"status"`
}

// PlaceMarketOrder submits a market order. Side must be BUY or SELL; the
// backend applies its own risk limits before forwarding to the provider.
func (c *Client) PlaceMarketOrder(ctx context.Context, req OrderRequest) (OrderResult, error) {
	req.Side = strings.ToUpper(req.Side)
	if req.Side != SideBuy && req.Side != SideSell {
		return OrderResult{}, fmt.Errorf("side must be BUY or SELL, got %q", req.Side)
	}
	if req.Quantity <= 0 {
		return OrderResult{}, fmt.Errorf("quantity must be positive, got %d", req.Quantity)
	}

	var res OrderResult
	if err := c.gw.Post(ctx, "/orders/market", nil, c.apiKeyHeader(), req, &res); err != nil {
		return OrderResult{}, err
	}
	return res, nil
}

// OrderHistory lists recent orders, optionally filtered by stock code.
func (c *Client) OrderHistory(ctx context.Context, stockCode string, limit int) ([]TradeRecord, error) {
	q := url.Values{}
	if stockCode != "" {
		q.Set("stock_code", stockCode)
	}
	if limit > 0 {
		q.Set("limit", strconv.Itoa(limit))
	}

	var recs []TradeRecord
	if err := c.gw.Get(ctx, "/orders/history", q, &recs); err != nil {
		return nil, err
	}
	return recs, nil
}
