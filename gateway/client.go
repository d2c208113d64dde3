package gateway

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"

	"github.com/rs/zerolog"
)

// TokenSource supplies the bearer token attached to outgoing requests.
// Implemented by session.Store.
type TokenSource interface {
	Token() (string, bool)
}

// Client is the single HTTP gateway to the trading backend. Every request
// carries the bearer token from Tokens when one exists. The client performs
// no retries and never inspects responses for session validity; that
// responsibility belongs to callers.
type Client struct {
	BaseURL string // e.g. http://127.0.0.1:8000
	HTTP    *http.Client
	Tokens  TokenSource
	Log     zerolog.Logger
}

// Error is a non-2xx response or a transport-level failure from the backend.
type Error struct {
	Status int // 0 when the request never produced a response
	Body   string
}

func (e *Error) Error() string {
	if e.Status == 0 {
		return fmt.Sprintf("backend request failed: %s", e.Body)
	}
	return fmt.Sprintf("backend http %d: %s", e.Status, e.Body)
}

// IsUnauthorized reports whether err is a backend rejection indicating the
// session token is no longer valid.
func IsUnauthorized(err error) bool {
	var ge *Error
	return errors.As(err, &ge) &&
		(ge.Status == http.StatusUnauthorized || ge.Status == http.StatusForbidden)
}

// Do issues one JSON request. A non-nil body is marshalled as JSON; a
// non-nil out receives the decoded response body.
func (c *Client) Do(ctx context.Context, method, path string, q url.Values, hdr http.Header, body, out any) error {
	u, err := url.Parse(c.BaseURL)
	if err != nil {
		return err
	}
	u.Path = path
	if q != nil {
		u.RawQuery = q.Encode()
	}

	var rd io.Reader
	if body != nil {
		b, err := json.Marshal(body)
		if err != nil {
			return err
		}
		rd = bytes.NewReader(b)
	}

	req, err := http.NewRequestWithContext(ctx, method, u.String(), rd)
	if err != nil {
		return err
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	for k, vs := range hdr {
		for _, v := range vs {
			req.Header.Add(k, v)
		}
	}
	if c.Tokens != nil {
		if tok, ok := c.Tokens.Token(); ok {
			req.Header.Set("Authorization", "Bearer "+tok)
		}
	}

	httpClient := c.HTTP
	if httpClient == nil {
		httpClient = http.DefaultClient
	}

	c.Log.Debug().Str("method", method).Str("path", path).Msg("backend request")

	resp, err := httpClient.Do(req)
	if err != nil {
		return &Error{Body: err.Error()}
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		b, _ := io.ReadAll(io.LimitReader(resp.Body, 64*1024))
		return &Error{Status: resp.StatusCode, Body: strings.TrimSpace(string(b))}
	}

	if out == nil {
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("decode %s %s: %w", method, path, err)
	}
	return nil
}

func (c *Client) Get(ctx context.Context, path string, q url.Values, out any) error {
	return c.Do(ctx, http.MethodGet, path, q, nil, nil, out)
}

func (c *Client) Post(ctx context.Context, path string, q url.Values, hdr http.Header, body, out any) error {
	return c.Do(ctx, http.MethodPost, path, q, hdr, body, out)
}

func (c *Client) Put(ctx context.Context, path string, q url.Values, hdr http.Header, body, out any) error {
	return c.Do(ctx, http.MethodPut, path, q, hdr, body, out)
}
