package gateway

import (
	"context"
	"net/http"
	"net/http/httptest"
	"net/url"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type staticToken string

func (s staticToken) Token() (string, bool) {
	return string(s), s != ""
}

func TestBearerTokenAttached(t *testing.T) {
	t.Parallel()

	var gotAuth string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotAuth = r.Header.Get("Authorization")
		w.Write([]byte(`{"ok":true}`))
	}))
	defer srv.Close()

	c := &Client{BaseURL: srv.URL, Tokens: staticToken("tok-1")}
	var out struct {
		OK bool `json:"ok"`
	}
	require.NoError(t, c.Get(context.Background(), "/me", nil, &out))
	assert.Equal(t, "Bearer tok-1", gotAuth)
	assert.True(t, out.OK)
}

func TestNoTokenNoHeader(t *testing.T) {
	t.Parallel()

	var hadAuth bool
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, hadAuth = r.Header["Authorization"]
		w.Write([]byte(`{}`))
	}))
	defer srv.Close()

	c := &Client{BaseURL: srv.URL, Tokens: staticToken("")}
	require.NoError(t, c.Get(context.Background(), "/login", nil, nil))
	assert.False(t, hadAuth)
}

func TestNon2xxBecomesError(t *testing.T) {
	t.Parallel()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
		w.Write([]byte(`{"detail":"boom"}`))
	}))
	defer srv.Close()

	c := &Client{BaseURL: srv.URL}
	err := c.Get(context.Background(), "/accounts/balance", nil, nil)
	require.Error(t, err)

	var ge *Error
	require.ErrorAs(t, err, &ge)
	assert.Equal(t, http.StatusInternalServerError, ge.Status)
	assert.Contains(t, ge.Body, "boom")
	assert.False(t, IsUnauthorized(err))
}

func TestIsUnauthorized(t *testing.T) {
	t.Parallel()

	assert.True(t, IsUnauthorized(&Error{Status: http.StatusUnauthorized}))
	assert.True(t, IsUnauthorized(&Error{Status: http.StatusForbidden}))
	assert.False(t, IsUnauthorized(&Error{Status: http.StatusInternalServerError}))
	assert.False(t, IsUnauthorized(assert.AnError))
}

func TestTransportFailureIsError(t *testing.T) {
	t.Parallel()

	// Nothing listens here.
	c := &Client{BaseURL: "http://127.0.0.1:1"}
	err := c.Get(context.Background(), "/chart", nil, nil)

	var ge *Error
	require.ErrorAs(t, err, &ge)
	assert.Zero(t, ge.Status)
	assert.NotEmpty(t, ge.Body)
}

func TestQueryAndBodyAndPut(t *testing.T) {
	t.Parallel()

	var gotMethod, gotQuery, gotBody string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotMethod = r.Method
		gotQuery = r.URL.RawQuery
		buf := make([]byte, r.ContentLength)
		r.Body.Read(buf)
		gotBody = string(buf)
		w.Write([]byte(`{}`))
	}))
	defer srv.Close()

	c := &Client{BaseURL: srv.URL}
	q := url.Values{}
	q.Set("token", "abc")
	body := map[string]bool{"enabled": true}
	require.NoError(t, c.Put(context.Background(), "/auto-trade/config", q, nil, body, nil))

	assert.Equal(t, http.MethodPut, gotMethod)
	assert.Equal(t, "token=abc", gotQuery)
	assert.JSONEq(t, `{"enabled":true}`, gotBody)
}
