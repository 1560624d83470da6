package api

import (
	"context"
	"net/http"

	"github.com/Yugz29/DevNote/internal/model"
)

// Login authenticates with email+password and persists the session cookie.
func (c *Client) Login(ctx context.Context, email, password string) (model.User, error) {
	payload := map[string]string{"email": email, "password": password}
	var u model.User
	if err := c.do(ctx, http.MethodPost, "auth/login/", payload, &u); err != nil {
		return model.User{}, err
	}
	if err := c.saveSession(); err != nil {
		return u, err
	}
	return u, nil
}

type RegisterRequest struct {
	Email     string `json:"email"`
	Password  string `json:"password"`
	Password2 string `json:"password2"`
	FirstName string `json:"first_name"`
	LastName  string `json:"last_name"`
	Username  string `json:"username,omitempty"`
}

func (c *Client) Register(ctx context.Context, req RegisterRequest) (model.User, error) {
	var u model.User
	if err := c.do(ctx, http.MethodPost, "auth/register/", req, &u); err != nil {
		return model.User{}, err
	}
	return u, nil
}

// Logout ends the server session and drops the persisted cookie either way.
func (c *Client) Logout(ctx context.Context) error {
	err := c.do(ctx, http.MethodPost, "auth/logout/", nil, nil)
	c.clearSession()
	return err
}

// Me returns the authenticated user, or an auth error when the session is
// missing or expired.
func (c *Client) Me(ctx context.Context) (model.User, error) {
	var u model.User
	if err := c.do(ctx, http.MethodGet, "auth/me/", nil, &u); err != nil {
		return model.User{}, err
	}
	return u, nil
}
