package autotrade

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"github.com/rs/zerolog"

	"github.com/rustyeddy/tradedesk/backend"
)

// ErrDisabled is the local refusal to run automated trading while the mirror
// says it is off. No network call is made; the backend enforces the same
// rule independently.
var ErrDisabled = errors.New("automated trading is disabled")

// API is the slice of the backend the control needs.
type API interface {
	AutoTradeConfig(ctx context.Context) (bool, error)
	SetAutoTradeConfig(ctx context.Context, enabled bool) error
	RunAutoTrade(ctx context.Context) ([]backend.AutoTradeDecision, error)
}

// Control owns the client-side mirror of the backend's "automated trading
// enabled" flag. Toggles are optimistic with rollback; after any toggle
// resolves the mirror equals the last backend-confirmed value. A sequence
// number fences overlapping calls so a late response cannot clobber a newer
// one.
type Control struct {
	mu      sync.Mutex
	api     API
	log     zerolog.Logger
	enabled bool
	seq     uint64
}

func New(api API, log zerolog.Logger) *Control {
	return &Control{
		api: api,
		log: log.With().Str("component", "autotrade").Logger(),
	}
}

// Load seeds the mirror from the backend. On failure the mirror defaults to
// disabled: a stale "enabled" reading would make the run trigger clickable
// when it should not be.
func (c *Control) Load(ctx context.Context) (bool, error) {
	ticket := c.nextTicket()

	enabled, err := c.api.AutoTradeConfig(ctx)

	c.mu.Lock()
	defer c.mu.Unlock()
	if ticket != c.seq {
		return c.enabled, nil // superseded by a newer load or toggle
	}
	if err != nil {
		c.enabled = false
		return false, fmt.Errorf("load auto-trade config: %w", err)
	}
	c.enabled = enabled
	return enabled, nil
}

// Enabled returns the mirrored flag.
func (c *Control) Enabled() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.enabled
}

// Toggle flips the mirror optimistically, then submits the desired value.
// On rejection the mirror is rolled back to the pre-toggle value. Returns
// the mirror value after resolution.
func (c *Control) Toggle(ctx context.Context) (bool, error) {
	c.mu.Lock()
	prev := c.enabled
	want := !prev
	c.enabled = want // optimistic: reflect intent before confirmation
	c.seq++
	ticket := c.seq
	c.mu.Unlock()

	if err := c.api.SetAutoTradeConfig(ctx, want); err != nil {
		c.mu.Lock()
		if ticket == c.seq {
			c.enabled = prev
		}
		cur := c.enabled
		c.mu.Unlock()
		c.log.Warn().Err(err).Bool("wanted", want).Msg("auto-trade toggle rolled back")
		return cur, fmt.Errorf("set auto-trade config: %w", err)
	}
	return want, nil
}

// RunOnce triggers one automated trading pass and classifies the returned
// decisions. Refused locally while the mirror is disabled.
func (c *Control) RunOnce(ctx context.Context) ([]Decision, error) {
	if !c.Enabled() {
		return nil, ErrDisabled
	}

	rows, err := c.api.RunAutoTrade(ctx)
	if err != nil {
		return nil, fmt.Errorf("auto-trade run: %w", err)
	}

	out := make([]Decision, 0, len(rows))
	for _, r := range rows {
		out = append(out, Decision{
			Stock:       r.Stock,
			Code:        r.Code,
			ActionScore: r.Action,
			Reward:      r.Reward,
			Action:      Classify(r.Action),
		})
	}
	return out, nil
}

func (c *Control) nextTicket() uint64 {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.seq++
	return c.seq
}
