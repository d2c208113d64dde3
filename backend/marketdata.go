package backend

import (
	"context"
	"net/url"
	"strconv"

	"github.com/rustyeddy/tradedesk/market"
)

type chartResponse struct {
	Candles []market.Candle `json:"candles"`
}

// Chart fetches up to limit daily candles for a stock.
func (c *Client) Chart(ctx context.Context, stockCode string, limit int) ([]market.Candle, error) {
	q := url.Values{}
	q.Set("stock_code", stockCode)
	if limit > 0 {
		q.Set("limit", strconv.Itoa(limit))
	}

	var res chartResponse
	if err := c.gw.Get(ctx, "/chart", q, &res); err != nil {
		return nil, err
	}
	return res.Candles, nil
}

// Indicators fetches the server-computed indicator values for a stock.
// An indicator the server could not compute comes back as null, hence the
// pointer values.
func (c *Client) Indicators(ctx context.Context, stockCode string) (map[string]*float64, error) {
	q := url.Values{}
	q.Set("stock_code", stockCode)

	var res map[string]*float64
	if err := c.gw.Get(ctx, "/indicator", q, &res); err != nil {
		return nil, err
	}
	return res, nil
}
