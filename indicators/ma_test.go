package indicators

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/rustyeddy/tradedesk/market"
)

func candlesFromCloses(closes ...float64) []market.Candle {
	out := make([]market.Candle, len(closes))
	base := time.Date(2025, 6, 2, 9, 0, 0, 0, time.UTC)
	for i, c := range closes {
		out[i] = market.Candle{Time: base.Add(time.Duration(i) * time.Minute), Close: c}
	}
	return out
}

func TestMA(t *testing.T) {
	t.Parallel()

	candles := candlesFromCloses(1, 2, 3, 4, 5)

	ma, err := MA(candles, 5)
	assert.NoError(t, err)
	assert.InDelta(t, 3.0, ma, 1e-9)

	// Only the trailing window counts.
	ma, err = MA(candles, 2)
	assert.NoError(t, err)
	assert.InDelta(t, 4.5, ma, 1e-9)
}

func TestMAErrors(t *testing.T) {
	t.Parallel()

	candles := candlesFromCloses(1, 2, 3)

	_, err := MA(candles, 0)
	assert.Error(t, err)

	_, err = MA(candles, 4)
	assert.Error(t, err)
}

func TestEMA(t *testing.T) {
	t.Parallel()

	candles := candlesFromCloses(10, 10, 10, 10, 20)

	// Seed SMA over the first 4 candles is 10; one EMA step toward 20.
	ema, err := EMA(candles, 4)
	assert.NoError(t, err)
	assert.InDelta(t, 14.0, ema, 1e-9)

	_, err = EMA(candles, 6)
	assert.Error(t, err)
}
