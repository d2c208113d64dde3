package session

import (
	"context"
	"sync"
)

// Keys used in the backing key-value store.
const (
	KeyToken       = "auth-token"
	KeyDisplayName = "display-name"
	KeyAccountHint = "has-account"
)

// Session is the authenticated identity of the current user: a bearer token
// plus the display name returned by the login endpoint.
type Session struct {
	Token       string
	DisplayName string
}

// Authenticated reports whether the session carries a token. No expiry is
// checked client-side; a dead token surfaces as a rejected backend call.
func (s Session) Authenticated() bool {
	return s.Token != ""
}

// KV is the persisted string store that keeps a session across restarts.
type KV interface {
	Get(key string) (string, bool)
	Set(key, value string) error
	Delete(key string) error
}

// Authenticator exchanges credentials for a session. Implemented by
// backend.Client.
type Authenticator interface {
	Login(ctx context.Context, username, password string) (Session, error)
}

// Store owns the current session. It is the only component that mutates the
// token; everything else reads it through Current or Token.
type Store struct {
	mu    sync.Mutex
	kv    KV
	cur   Session
	hint  bool
	epoch uint64
}

// Open builds a Store over kv, restoring any persisted session.
func Open(kv KV) *Store {
	s := &Store{kv: kv}
	if tok, ok := kv.Get(KeyToken); ok && tok != "" {
		s.cur.Token = tok
		if name, ok := kv.Get(KeyDisplayName); ok {
			s.cur.DisplayName = name
		}
	}
	if v, ok := kv.Get(KeyAccountHint); ok {
		s.hint = v == "true"
	}
	return s
}

// Login exchanges credentials through auth and installs the resulting
// session. On failure the store is left untouched and the error is returned
// as-is for inline display.
func (s *Store) Login(ctx context.Context, auth Authenticator, username, password string) (Session, error) {
	sess, err := auth.Login(ctx, username, password)
	if err != nil {
		return Session{}, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.cur = sess
	s.epoch++
	// Persistence is best-effort; an in-memory session still works.
	_ = s.kv.Set(KeyToken, sess.Token)
	_ = s.kv.Set(KeyDisplayName, sess.DisplayName)
	return sess, nil
}

// Logout clears the session and the advisory account hint. Purely local,
// always succeeds.
func (s *Store) Logout() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.clearLocked()
}

// Clear is the stale-session path: the backend rejected the token, so the
// session is dropped exactly as on logout.
func (s *Store) Clear() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.clearLocked()
}

func (s *Store) clearLocked() {
	s.cur = Session{}
	s.hint = false
	s.epoch++
	_ = s.kv.Delete(KeyToken)
	_ = s.kv.Delete(KeyDisplayName)
	_ = s.kv.Delete(KeyAccountHint)
}

// Current returns the cached session. Never blocks on the network.
func (s *Store) Current() Session {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.cur
}

// IsAuthenticated reports whether a token is present.
func (s *Store) IsAuthenticated() bool {
	return s.Current().Authenticated()
}

// Token implements gateway.TokenSource.
func (s *Store) Token() (string, bool) {
	cur := s.Current()
	return cur.Token, cur.Authenticated()
}

// Epoch is bumped on every login, logout and clear. Read-model results
// fetched under an older epoch are discarded on arrival.
func (s *Store) Epoch() uint64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.epoch
}

// SetAccountHint persists the advisory "has a registered account" marker.
// It is a display hint only; access decisions always re-derive the account
// state from the backend.
func (s *Store) SetAccountHint(v bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.hint = v
	if v {
		_ = s.kv.Set(KeyAccountHint, "true")
	} else {
		_ = s.kv.Delete(KeyAccountHint)
	}
}

// AccountHint returns the advisory marker.
func (s *Store) AccountHint() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.hint
}
