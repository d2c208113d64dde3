package readmodel

import (
	"context"
	"errors"
	"sync"
)

// ErrStaleResult marks a fetch whose response arrived after it was
// superseded, either by a newer fetch of the same model or by a session
// change. The result was discarded; the held value is the newer one.
var ErrStaleResult = errors.New("stale read-model result discarded")

// Holder keeps the last successfully fetched value of one read model.
//
// A failed fetch never clears the prior value. Each fetch takes a ticket
// from a per-holder sequence and records the session epoch it started
// under; a result whose ticket or epoch is no longer current is discarded,
// so rapid refreshes cannot finish out of order and a response resolving
// after logout cannot leak into the next session.
type Holder[T any] struct {
	mu    sync.Mutex
	epoch func() uint64
	seq   uint64
	val   T
	set   bool
}

// NewHolder builds a holder. epoch is typically session.Store.Epoch; nil
// means no session fencing.
func NewHolder[T any](epoch func() uint64) *Holder[T] {
	if epoch == nil {
		epoch = func() uint64 { return 0 }
	}
	return &Holder[T]{epoch: epoch}
}

// Load runs fetch and installs its result if it is still the newest.
// On a fetch error the prior value is returned alongside the error.
func (h *Holder[T]) Load(ctx context.Context, fetch func(context.Context) (T, error)) (T, error) {
	h.mu.Lock()
	h.seq++
	ticket := h.seq
	started := h.epoch()
	h.mu.Unlock()

	v, err := fetch(ctx)

	h.mu.Lock()
	defer h.mu.Unlock()
	if err != nil {
		return h.val, err
	}
	if ticket != h.seq || started != h.epoch() {
		return h.val, ErrStaleResult
	}
	h.val = v
	h.set = true
	return v, nil
}

// Value returns the last installed value and whether one exists.
func (h *Holder[T]) Value() (T, bool) {
	h.mu.Lock()
	defer h.mu.Unlock()
	return h.val, h.set
}
