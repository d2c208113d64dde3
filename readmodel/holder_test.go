package readmodel

import (
	"context"
	"errors"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rustyeddy/tradedesk/backend"
	"github.com/rustyeddy/tradedesk/market"
)

func TestLoadReplacesValue(t *testing.T) {
	t.Parallel()

	h := NewHolder[int](nil)

	_, ok := h.Value()
	assert.False(t, ok)

	v, err := h.Load(context.Background(), func(ctx context.Context) (int, error) { return 7, nil })
	require.NoError(t, err)
	assert.Equal(t, 7, v)

	v, err = h.Load(context.Background(), func(ctx context.Context) (int, error) { return 9, nil })
	require.NoError(t, err)
	assert.Equal(t, 9, v)

	got, ok := h.Value()
	assert.True(t, ok)
	assert.Equal(t, 9, got)
}

func TestFailedFetchKeepsPriorValue(t *testing.T) {
	t.Parallel()

	h := NewHolder[int](nil)

	_, err := h.Load(context.Background(), func(ctx context.Context) (int, error) { return 7, nil })
	require.NoError(t, err)

	v, err := h.Load(context.Background(), func(ctx context.Context) (int, error) {
		return 0, errors.New("backend down")
	})
	assert.Error(t, err)
	assert.Equal(t, 7, v, "a failed fetch must never clear displayed data")

	got, ok := h.Value()
	assert.True(t, ok)
	assert.Equal(t, 7, got)
}

// Two overlapping fetches: the slower, first-issued one must lose even if
// its response arrives last.
func TestSupersededFetchIsDiscarded(t *testing.T) {
	t.Parallel()

	h := NewHolder[int](nil)

	firstStarted := make(chan struct{})
	release := make(chan struct{})

	var wg sync.WaitGroup
	wg.Add(1)
	var firstVal int
	var firstErr error
	go func() {
		defer wg.Done()
		firstVal, firstErr = h.Load(context.Background(), func(ctx context.Context) (int, error) {
			close(firstStarted)
			<-release
			return 1, nil
		})
	}()

	<-firstStarted

	// Second fetch issued while the first is still in flight; it resolves
	// immediately and wins.
	v, err := h.Load(context.Background(), func(ctx context.Context) (int, error) { return 2, nil })
	require.NoError(t, err)
	assert.Equal(t, 2, v)

	close(release)
	wg.Wait()

	assert.ErrorIs(t, firstErr, ErrStaleResult)
	assert.Equal(t, 2, firstVal, "the discarded load reports the winning value")

	got, _ := h.Value()
	assert.Equal(t, 2, got)
}

// A result resolving after logout belongs to a dead session and is dropped.
func TestEpochChangeDiscardsResult(t *testing.T) {
	t.Parallel()

	var mu sync.Mutex
	epoch := uint64(1)
	h := NewHolder[string](func() uint64 {
		mu.Lock()
		defer mu.Unlock()
		return epoch
	})

	_, err := h.Load(context.Background(), func(ctx context.Context) (string, error) {
		mu.Lock()
		epoch++ // logout happens while the fetch is in flight
		mu.Unlock()
		return "secret", nil
	})
	assert.ErrorIs(t, err, ErrStaleResult)

	_, ok := h.Value()
	assert.False(t, ok, "no value from the old session may be installed")
}

type fakeAPI struct {
	candles []market.Candle
	chartN  int
}

func (f *fakeAPI) Chart(ctx context.Context, stockCode string, limit int) ([]market.Candle, error) {
	f.chartN++
	return f.candles, nil
}

func (f *fakeAPI) Indicators(ctx context.Context, stockCode string) (map[string]*float64, error) {
	return map[string]*float64{}, nil
}

func (f *fakeAPI) Balance(ctx context.Context) (backend.Balance, error) {
	return backend.Balance{}, nil
}

func (f *fakeAPI) OrderHistory(ctx context.Context, stockCode string, limit int) ([]backend.TradeRecord, error) {
	return nil, nil
}

func (f *fakeAPI) RiskRules(ctx context.Context) ([]backend.RiskRule, error) {
	return nil, nil
}

func (f *fakeAPI) Performance(ctx context.Context, windowDays int) (backend.Performance, error) {
	return backend.Performance{}, nil
}

func TestRefresherDelegates(t *testing.T) {
	t.Parallel()

	api := &fakeAPI{candles: []market.Candle{{Close: 1.5}}}
	r := New(api, nil)

	candles, err := r.LoadChart(context.Background(), "005930", 30)
	require.NoError(t, err)
	require.Len(t, candles, 1)
	assert.Equal(t, 1, api.chartN)

	held, ok := r.Candles.Value()
	assert.True(t, ok)
	assert.Len(t, held, 1)
}
