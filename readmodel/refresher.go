package readmodel

import (
	"context"

	"github.com/rustyeddy/tradedesk/backend"
	"github.com/rustyeddy/tradedesk/market"
)

// API is the slice of the backend the refresher fetches from.
type API interface {
	Chart(ctx context.Context, stockCode string, limit int) ([]market.Candle, error)
	Indicators(ctx context.Context, stockCode string) (map[string]*float64, error)
	Balance(ctx context.Context) (backend.Balance, error)
	OrderHistory(ctx context.Context, stockCode string, limit int) ([]backend.TradeRecord, error)
	RiskRules(ctx context.Context) ([]backend.RiskRule, error)
	Performance(ctx context.Context, windowDays int) (backend.Performance, error)
}

// Refresher owns the console's refetched read models. Each model is an
// independent fetch-and-replace with no cross-model coordination and no
// polling; loads are triggered by user action or after a related mutation.
type Refresher struct {
	api API

	Candles     *Holder[[]market.Candle]
	Indicators  *Holder[map[string]*float64]
	Balance     *Holder[backend.Balance]
	History     *Holder[[]backend.TradeRecord]
	RiskRules   *Holder[[]backend.RiskRule]
	Performance *Holder[backend.Performance]
}

// New builds a refresher fenced on the given session epoch (typically
// session.Store.Epoch).
func New(api API, epoch func() uint64) *Refresher {
	return &Refresher{
		api:         api,
		Candles:     NewHolder[[]market.Candle](epoch),
		Indicators:  NewHolder[map[string]*float64](epoch),
		Balance:     NewHolder[backend.Balance](epoch),
		History:     NewHolder[[]backend.TradeRecord](epoch),
		RiskRules:   NewHolder[[]backend.RiskRule](epoch),
		Performance: NewHolder[backend.Performance](epoch),
	}
}

func (r *Refresher) LoadChart(ctx context.Context, stockCode string, limit int) ([]market.Candle, error) {
	return r.Candles.Load(ctx, func(ctx context.Context) ([]market.Candle, error) {
		return r.api.Chart(ctx, stockCode, limit)
	})
}

func (r *Refresher) LoadIndicators(ctx context.Context, stockCode string) (map[string]*float64, error) {
	return r.Indicators.Load(ctx, func(ctx context.Context) (map[string]*float64, error) {
		return r.api.Indicators(ctx, stockCode)
	})
}

func (r *Refresher) LoadBalance(ctx context.Context) (backend.Balance, error) {
	return r.Balance.Load(ctx, r.api.Balance)
}

func (r *Refresher) LoadHistory(ctx context.Context, stockCode string, limit int) ([]backend.TradeRecord, error) {
	return r.History.Load(ctx, func(ctx context.Context) ([]backend.TradeRecord, error) {
		return r.api.OrderHistory(ctx, stockCode, limit)
	})
}

func (r *Refresher) LoadRiskRules(ctx context.Context) ([]backend.RiskRule, error) {
	return r.RiskRules.Load(ctx, r.api.RiskRules)
}

func (r *Refresher) LoadPerformance(ctx context.Context, windowDays int) (backend.Performance, error) {
	return r.Performance.Load(ctx, func(ctx context.Context) (backend.Performance, error) {
		return r.api.Performance(ctx, windowDays)
	})
}
