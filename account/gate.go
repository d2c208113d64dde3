package account

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"github.com/rustyeddy/tradedesk/backend"
	"github.com/rustyeddy/tradedesk/gateway"
	"github.com/rustyeddy/tradedesk/session"
)

// ErrStaleSession marks an account query rejected because the token is no
// longer valid. The gate has already cleared the session when this is
// returned; the caller only needs to send the user back to login.
var ErrStaleSession = errors.New("session is no longer valid, log in again")

// API is the slice of the backend the gate needs.
type API interface {
	AccountStatus(ctx context.Context) (backend.AccountStatus, error)
	SaveAccount(ctx context.Context, cfg backend.AccountConfig) (backend.AccountStatus, error)
}

// Gate derives whether the current session has a usable brokerage-account
// configuration. The backend is authoritative; the gate caches the last
// derived status and fails closed on any query error.
type Gate struct {
	mu     sync.Mutex
	api    API
	sess   *session.Store
	status backend.AccountStatus
}

func New(api API, sess *session.Store) *Gate {
	return &Gate{api: api, sess: sess}
}

// Refresh re-derives the account status from the backend. Safe to call
// redundantly. Any failure clears the cached status and the persisted
// advisory hint: a false "has account" is strictly worse than an extra
// round trip. An unauthorized rejection additionally clears the session
// (implicit logout) and comes back as ErrStaleSession.
func (g *Gate) Refresh(ctx context.Context) (backend.AccountStatus, error) {
	st, err := g.api.AccountStatus(ctx)
	if err != nil {
		g.setStatus(backend.AccountStatus{})
		g.sess.SetAccountHint(false)
		if gateway.IsUnauthorized(err) {
			g.sess.Clear()
			return backend.AccountStatus{}, fmt.Errorf("%w: %v", ErrStaleSession, err)
		}
		return backend.AccountStatus{}, fmt.Errorf("account status: %w", err)
	}

	if !st.HasConfig {
		// Masked fields are meaningless without a configuration.
		st = backend.AccountStatus{}
	}
	g.setStatus(st)
	g.sess.SetAccountHint(st.HasConfig)
	return st, nil
}

// Save submits a new account configuration. On failure the cached status is
// left untouched.
func (g *Gate) Save(ctx context.Context, cfg backend.AccountConfig) (backend.AccountStatus, error) {
	st, err := g.api.SaveAccount(ctx, cfg)
	if err != nil {
		return backend.AccountStatus{}, fmt.Errorf("save account: %w", err)
	}
	g.setStatus(st)
	g.sess.SetAccountHint(true)
	return st, nil
}

// HasAccount reports the last derived gate state.
func (g *Gate) HasAccount() bool {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.status.HasConfig
}

// Status returns the cached account status.
func (g *Gate) Status() backend.AccountStatus {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.status
}

func (g *Gate) setStatus(st backend.AccountStatus) {
	g.mu.Lock()
	g.status = st
	g.mu.Unlock()
}
