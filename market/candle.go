package market

import "time"

// Candle represents one OHLC (Open, High, Low, Close) bar as served by the
// backend chart endpoint.
type Candle struct {
	Time   time.Time `json:"timestamp"`
	Open   float64   `json:"open"`
	High   float64   `json:"high"`
	Low    float64   `json:"low"`
	Close  float64   `json:"close"`
	Volume float64   `json:"volume"`
}
