package backend

import (
	"net/http"
	"net/url"

	"github.com/rs/zerolog"

	"github.com/rustyeddy/tradedesk/gateway"
)

// Client binds the backend endpoints to typed methods over the gateway.
type Client struct {
	gw     *gateway.Client
	apiKey string
	log    zerolog.Logger
}

// New creates a backend client. apiKey is optional; when set it is sent as
// X-API-Key on the endpoints that the backend protects with it.
func New(gw *gateway.Client, apiKey string, log zerolog.Logger) *Client {
	return &Client{
		gw:     gw,
		apiKey: apiKey,
		log:    log.With().Str("client", "backend").Logger(),
	}
}

// tokenQuery builds the ?token= parameter the identity endpoints expect in
// addition to the bearer header.
func (c *Client) tokenQuery() url.Values {
	q := url.Values{}
	if c.gw.Tokens != nil {
		if tok, ok := c.gw.Tokens.Token(); ok {
			q.Set("token", tok)
		}
	}
	return q
}

func (c *Client) apiKeyHeader() http.Header {
	if c.apiKey == "" {
		return nil
	}
	h := http.Header{}
	h.Set("X-API-Key", c.apiKey)
	return h
}
