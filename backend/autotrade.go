package backend

import "context"

// AutoTradeDecision is one per-instrument model decision from an automated
// trading run. Action is the raw model score; classification into
// BUY/SELL/HOLD happens client-side (autotrade.Classify).
type AutoTradeDecision struct {
	Stock  string   `json:"stock"`
	Code   string   `json:"code"`
	Action float64  `json:"action"`
	Reward *float64 `json:"reward"`
}

type autoTradeConfig struct {
	Enabled bool `json:"enabled"`
}

// AutoTradeConfig reads the backend's "automated trading enabled" flag.
func (c *Client) AutoTradeConfig(ctx context.Context) (bool, error) {
	var cfg autoTradeConfig
	if err := c.gw.Get(ctx, "/auto-trade/config", nil, &cfg); err != nil {
		return false, err
	}
	return cfg.Enabled, nil
}

// SetAutoTradeConfig writes the backend's "automated trading enabled" flag.
func (c *Client) SetAutoTradeConfig(ctx context.Context, enabled bool) error {
	return c.gw.Put(ctx, "/auto-trade/config", nil, nil, autoTradeConfig{Enabled: enabled}, nil)
}

// RunAutoTrade triggers one automated trading pass on the backend and
// returns its per-instrument decisions.
func (c *Client) RunAutoTrade(ctx context.Context) ([]AutoTradeDecision, error) {
	var rows []AutoTradeDecision
	if err := c.gw.Post(ctx, "/trade/auto", nil, c.apiKeyHeader(), nil, &rows); err != nil {
		return nil, err
	}
	return rows, nil
}
