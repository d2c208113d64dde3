package account

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rustyeddy/tradedesk/backend"
	"github.com/rustyeddy/tradedesk/gateway"
	"github.com/rustyeddy/tradedesk/guard"
	"github.com/rustyeddy/tradedesk/session"
)

type fakeAPI struct {
	status  backend.AccountStatus
	getErr  error
	saveErr error
}

func (f *fakeAPI) AccountStatus(ctx context.Context) (backend.AccountStatus, error) {
	if f.getErr != nil {
		return backend.AccountStatus{}, f.getErr
	}
	return f.status, nil
}

func (f *fakeAPI) SaveAccount(ctx context.Context, cfg backend.AccountConfig) (backend.AccountStatus, error) {
	if f.saveErr != nil {
		return backend.AccountStatus{}, f.saveErr
	}
	f.status = backend.AccountStatus{
		HasConfig:       true,
		AccountNoMasked: "5012****01",
		AccountCode:     cfg.AccountCode,
		RealMode:        cfg.RealMode,
	}
	return f.status, nil
}

func newSession(t *testing.T) *session.Store {
	t.Helper()
	return session.Open(session.MapKV{})
}

func TestRefreshDerivesStatus(t *testing.T) {
	t.Parallel()

	sess := newSession(t)
	g := New(&fakeAPI{status: backend.AccountStatus{HasConfig: true, AccountNoMasked: "5012****01"}}, sess)

	st, err := g.Refresh(context.Background())
	require.NoError(t, err)
	assert.True(t, st.HasConfig)
	assert.True(t, g.HasAccount())
	assert.True(t, sess.AccountHint())
}

func TestRefreshFailureFailsClosed(t *testing.T) {
	t.Parallel()

	api := &fakeAPI{status: backend.AccountStatus{HasConfig: true}}
	sess := newSession(t)
	g := New(api, sess)

	_, err := g.Refresh(context.Background())
	require.NoError(t, err)
	require.True(t, g.HasAccount())

	// Any failure clears the cached positive, regardless of its cause.
	api.getErr = errors.New("backend down")
	_, err = g.Refresh(context.Background())
	assert.Error(t, err)
	assert.False(t, g.HasAccount())
	assert.False(t, sess.AccountHint())
}

func TestRefreshUnauthorizedClearsSession(t *testing.T) {
	t.Parallel()

	sess := newSession(t)
	seedSession(t, sess, "tok-dead")
	require.True(t, sess.IsAuthenticated())

	g := New(&fakeAPI{getErr: &gateway.Error{Status: http.StatusUnauthorized, Body: "token expired"}}, sess)

	_, err := g.Refresh(context.Background())
	assert.ErrorIs(t, err, ErrStaleSession)
	assert.False(t, g.HasAccount())
	assert.False(t, sess.IsAuthenticated(), "a rejected token is an implicit logout")
}

func TestRefreshStripsMaskedFieldsWithoutConfig(t *testing.T) {
	t.Parallel()

	// A backend answering has_config=false with leftover fields must not
	// leak them into the cache.
	g := New(&fakeAPI{status: backend.AccountStatus{HasConfig: false, AccountNoMasked: "1234****99"}}, newSession(t))

	st, err := g.Refresh(context.Background())
	require.NoError(t, err)
	assert.False(t, st.HasConfig)
	assert.Empty(t, st.AccountNoMasked)
	assert.Empty(t, g.Status().AccountNoMasked)
}

func TestSaveUpdatesCache(t *testing.T) {
	t.Parallel()

	sess := newSession(t)
	g := New(&fakeAPI{}, sess)

	st, err := g.Save(context.Background(), backend.AccountConfig{AccountNo: "50123456-01", AccountCode: "01"})
	require.NoError(t, err)
	assert.True(t, st.HasConfig)
	assert.True(t, g.HasAccount())
	assert.True(t, sess.AccountHint())
}

func TestSaveFailureLeavesCacheUntouched(t *testing.T) {
	t.Parallel()

	api := &fakeAPI{status: backend.AccountStatus{HasConfig: true}}
	g := New(api, newSession(t))
	_, err := g.Refresh(context.Background())
	require.NoError(t, err)

	api.saveErr = errors.New("validation failed")
	_, err = g.Save(context.Background(), backend.AccountConfig{})
	assert.Error(t, err)
	assert.True(t, g.HasAccount(), "failed save must not drop the previous status")
}

func seedSession(t *testing.T, sess *session.Store, token string) {
	t.Helper()

	_, err := sess.Login(context.Background(), authFunc(func(ctx context.Context, u, p string) (session.Session, error) {
		return session.Session{Token: token, DisplayName: u}, nil
	}), "u1", "p1")
	require.NoError(t, err)
}

type authFunc func(ctx context.Context, username, password string) (session.Session, error)

func (f authFunc) Login(ctx context.Context, username, password string) (session.Session, error) {
	return f(ctx, username, password)
}

// End-to-end: login, no account configured, the guard denies the manual
// trade screen and redirects to account setup; after a successful save the
// screen is authorized.
func TestLoginGateGuardFlow(t *testing.T) {
	t.Parallel()

	var hasConfig bool
	mux := http.NewServeMux()
	mux.HandleFunc("POST /login", func(w http.ResponseWriter, r *http.Request) {
		var creds map[string]string
		require.NoError(t, json.NewDecoder(r.Body).Decode(&creds))
		if creds["username"] != "u1" || creds["password"] != "p1" {
			w.WriteHeader(http.StatusUnauthorized)
			w.Write([]byte(`{"detail":"bad credentials"}`))
			return
		}
		json.NewEncoder(w).Encode(map[string]string{"token": "tok-e2e", "name": "유저일"})
	})
	mux.HandleFunc("GET /me/account", func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode(map[string]any{"has_config": hasConfig, "account_no_masked": "5012****01"})
	})
	mux.HandleFunc("PUT /me/account", func(w http.ResponseWriter, r *http.Request) {
		hasConfig = true
		json.NewEncoder(w).Encode(map[string]any{"account_no_masked": "5012****01", "account_code": "01", "real_mode": false})
	})

	srv := httptest.NewServer(mux)
	defer srv.Close()

	sess := session.Open(session.MapKV{})
	gw := &gateway.Client{BaseURL: srv.URL, Tokens: sess}
	api := backend.New(gw, "", zerolog.Nop())
	g := New(api, sess)

	// Scenario 1: valid login, no account config yet.
	got, err := sess.Login(context.Background(), api, "u1", "p1")
	require.NoError(t, err)
	assert.Equal(t, "tok-e2e", got.Token)

	st, err := g.Refresh(context.Background())
	require.NoError(t, err)
	assert.False(t, st.HasConfig)

	d := guard.Authorize("/manual-trade", guard.Requirements{Login: true, Account: true},
		guard.StateOf(sess.IsAuthenticated(), g.HasAccount()))
	assert.Equal(t, guard.RedirectAccountSetup, d.Action)
	assert.Equal(t, guard.AccountTarget, d.Target)

	// Scenario 2: account save flips the gate; the screen is authorized.
	_, err = g.Save(context.Background(), backend.AccountConfig{AccountNo: "50123456-01", AccountCode: "01"})
	require.NoError(t, err)

	d = guard.Authorize("/manual-trade", guard.Requirements{Login: true, Account: true},
		guard.StateOf(sess.IsAuthenticated(), g.HasAccount()))
	assert.Equal(t, guard.Proceed, d.Action)
	assert.Equal(t, "/manual-trade", d.Target)
}
