package backend

import (
	"context"
	"time"
)

// RiskRule is a per-stock (or "ALL") position limit stored on the backend.
// Nil limit fields mean "backend default applies".
type RiskRule struct {
	StockCode         string    `json:"stock_code"`
	MaxPositionShares *int      `json:"max_position_shares"`
	MaxWeightPct      *float64  `json:"max_weight_pct"`
	MaxDailyBuyAmount *float64  `json:"max_daily_buy_amount"`
	Active            bool      `json:"active"`
	CreatedAt         time.Time `json:"created_at"`
	UpdatedAt         time.Time `json:"updated_at"`
}

// RiskRuleUpdate is a partial update; only non-nil fields are changed.
type RiskRuleUpdate struct {
	MaxPositionShares *int     `json:"max_position_shares,omitempty"`
	MaxWeightPct      *float64 `json:"max_weight_pct,omitempty"`
	MaxDailyBuyAmount *float64 `json:"max_daily_buy_amount,omitempty"`
	Active            *bool    `json:"active,omitempty"`
}

// RiskRules lists all stored risk rules.
func (c *Client) RiskRules(ctx context.Context) ([]RiskRule, error) {
	var rules []RiskRule
	if err := c.gw.Get(ctx, "/settings/risk", nil, &rules); err != nil {
		return nil, err
	}
	return rules, nil
}

// SaveRiskRule upserts the rule for stockCode ("ALL" for the global rule).
func (c *Client) SaveRiskRule(ctx context.Context, stockCode string, upd RiskRuleUpdate) (RiskRule, error) {
	var rule RiskRule
	if err := c.gw.Put(ctx, "/settings/risk/"+stockCode, nil, c.apiKeyHeader(), upd, &rule); err != nil {
		return RiskRule{}, err
	}
	return rule, nil
}
