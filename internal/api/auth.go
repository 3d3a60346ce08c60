package api

import (
	"context"
	"errors"
	"net/http"

	"github.com/dharmasatrya/ticketkini/internal/models"
	"github.com/dharmasatrya/ticketkini/internal/ratelimit"
)

func (c *Client) Login(ctx context.Context, creds models.Credentials) (*models.Token, error) {
	return c.login(ctx, "/auth/login", creds)
}

func (c *Client) AdminLogin(ctx context.Context, creds models.Credentials) (*models.Token, error) {
	return c.login(ctx, "/auth/admin-login", creds)
}

func (c *Client) login(ctx context.Context, path string, creds models.Credentials) (*models.Token, error) {
	var token models.Token
	if err := c.do(ctx, ratelimit.GroupAuth, http.MethodPost, path, nil, creds, &token); err != nil {
		return nil, err
	}
	return &token, nil
}

func (c *Client) Me(ctx context.Context) (*models.User, error) {
	var user models.User
	if err := c.do(ctx, ratelimit.GroupAuth, http.MethodGet, "/auth/me", nil, nil, &user); err != nil {
		return nil, err
	}
	return &user, nil
}

// Logout tells the server the token is done with. Deployments without a
// logout endpoint answer 404, which counts as success.
func (c *Client) Logout(ctx context.Context) error {
	err := c.do(ctx, ratelimit.GroupAuth, http.MethodPost, "/auth/logout", nil, nil, nil)
	if errors.Is(err, ErrNotFound) {
		return nil
	}
	return err
}
