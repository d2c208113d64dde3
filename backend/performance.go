package backend

import (
	"context"
	"net/url"
	"strconv"
	"time"
)

// PerformanceSummary aggregates account performance over the queried window.
type PerformanceSummary struct {
	StartValue     float64 `json:"start_value"`
	EndValue       float64 `json:"end_value"`
	TotalReturnPct float64 `json:"total_return_pct"`
	MaxDrawdownPct float64 `json:"max_drawdown_pct"`
	PnLSum         float64 `json:"pnl_sum"`
}

// PerformanceSnapshot is one time-stamped portfolio valuation.
type PerformanceSnapshot struct {
	Timestamp       time.Time `json:"timestamp"`
	TotalValue      float64   `json:"total_value"`
	Cash            float64   `json:"cash"`
	TotalBuyAmount  float64   `json:"total_buy_amount"`
	TotalEvalAmount float64   `json:"total_eval_amount"`
	TotalPnL        float64   `json:"total_pnl"`
}

// Performance is the summary plus the ordered snapshot series.
type Performance struct {
	Summary   PerformanceSummary    `json:"summary"`
	Snapshots []PerformanceSnapshot `json:"snapshots"`
}

// Performance fetches account performance over the last windowDays days.
func (c *Client) Performance(ctx context.Context, windowDays int) (Performance, error) {
	q := url.Values{}
	if windowDays > 0 {
		q.Set("days", strconv.Itoa(windowDays))
	}

	var perf Performance
	if err := c.gw.Get(ctx, "/metrics/performance", q, &perf); err != nil {
		return Performance{}, err
	}
	return perf, nil
}
