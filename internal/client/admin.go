package client

import (
	"context"
	"errors"
	"net/http"

	"github.com/jaysperspective/JoshuaIsaiahart/internal/auth"
)

// Authenticate implements auth.Authenticator.
func (c *Client) Authenticate(ctx context.Context, password string) error {
	err := c.doJSON(ctx, http.MethodPost, "/api/admin/auth", nil, map[string]string{"password": password}, nil)
	var apiErr *APIError
	if !errors.As(err, &apiErr) {
		return err
	}
	switch {
	case apiErr.Status == http.StatusUnauthorized:
		return auth.ErrInvalidPassword
	case apiErr.Status == http.StatusInternalServerError && apiErr.Message == auth.MessageMisconfigured:
		return auth.ErrSecretNotConfigured
	default:
		return err
	}
}

// SessionStatus asks the server whether the session is still authenticated.
func (c *Client) SessionStatus(ctx context.Context) (bool, error) {
	var out struct {
		Authenticated bool `json:"authenticated"`
	}
	if err := c.doJSON(ctx, http.MethodGet, "/api/admin/session", nil, nil, &out); err != nil {
		return false, err
	}
	return out.Authenticated, nil
}

// Logout ends the server session and drops the cookie.
func (c *Client) Logout(ctx context.Context) error {
	err := c.doJSON(ctx, http.MethodPost, "/api/admin/logout", nil, nil, nil)
	c.SetSessionToken("")
	return err
}
