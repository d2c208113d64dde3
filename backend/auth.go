package backend

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"

	"github.com/rustyeddy/tradedesk/gateway"
	"github.com/rustyeddy/tradedesk/session"
)

// AuthError is a credential rejection from the backend, carrying the
// backend-provided message for inline display on the login form.
type AuthError struct {
	Message string
}

func (e *AuthError) Error() string {
	return e.Message
}

// User is the backend's view of an account holder.
type User struct {
	Username string `json:"username"`
	Name     string `json:"name"`
}

type credentials struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

type signupRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
	Name     string `json:"name"`
}

type loginResponse struct {
	Token string `json:"token"`
	Name  string `json:"name"`
}

// Signup registers a new user. No session is created; call Login after.
func (c *Client) Signup(ctx context.Context, username, password, name string) (User, error) {
	var u User
	err := c.gw.Post(ctx, "/signup", nil, nil, signupRequest{Username: username, Password: password, Name: name}, &u)
	if err != nil {
		return User{}, authOrRemote(err)
	}
	return u, nil
}

// Login exchanges credentials for a session token. Rejected credentials come
// back as *AuthError. Implements session.Authenticator.
func (c *Client) Login(ctx context.Context, username, password string) (session.Session, error) {
	var res loginResponse
	err := c.gw.Post(ctx, "/login", nil, nil, credentials{Username: username, Password: password}, &res)
	if err != nil {
		return session.Session{}, authOrRemote(err)
	}
	return session.Session{Token: res.Token, DisplayName: res.Name}, nil
}

// Me returns the identity behind the current token.
func (c *Client) Me(ctx context.Context) (User, error) {
	var u User
	if err := c.gw.Get(ctx, "/me", c.tokenQuery(), &u); err != nil {
		return User{}, err
	}
	return u, nil
}

// authOrRemote turns a 4xx rejection into an AuthError with the backend's
// message; anything else passes through as the gateway error.
func authOrRemote(err error) error {
	var ge *gateway.Error
	if !errors.As(err, &ge) {
		return err
	}
	switch ge.Status {
	case http.StatusBadRequest, http.StatusUnauthorized, http.StatusUnprocessableEntity, http.StatusConflict:
		return &AuthError{Message: detailMessage(ge)}
	}
	return err
}

// detailMessage extracts the backend's {"detail": "..."} payload, falling
// back to the raw body.
func detailMessage(ge *gateway.Error) string {
	var payload struct {
		Detail string `json:"detail"`
	}
	if err := json.Unmarshal([]byte(ge.Body), &payload); err == nil && payload.Detail != "" {
		return payload.Detail
	}
	if ge.Body != "" {
		return ge.Body
	}
	return ge.Error()
}
