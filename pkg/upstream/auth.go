package upstream

import (
	"context"
	"net/http"
)

// Login exchanges credentials for a bearer token.
func (c *Client) Login(ctx context.Context, creds Credentials) (*Token, error) {
	var token Token
	if err := c.do(ctx, "auth_login", http.MethodPost, "/auth/login", nil, creds, &token); err != nil {
		return nil, err
	}
	return &token, nil
}

// Register creates a new account.
func (c *Client) Register(ctx context.Context, input RegisterInput) (*User, error) {
	var user User
	if err := c.do(ctx, "auth_register", http.MethodPost, "/auth/register", nil, input, &user); err != nil {
		return nil, err
	}
	return &user, nil
}

// CurrentUser fetches the profile behind the session token.
func (c *Client) CurrentUser(ctx context.Context) (*User, error) {
	var user User
	if err := c.do(ctx, "auth_me", http.MethodGet, "/auth/me", nil, nil, &user); err != nil {
		return nil, err
	}
	return &user, nil
}
