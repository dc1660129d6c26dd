package tradeapi

import (
	"context"
	"net/http"
)

// Login exchanges credentials for a bearer token. It is the only call sent without one.
func (c *Client) Login(ctx context.Context, email, password string) (string, error) {
	data, err := doJSON[*TokenData](c, ctx, request{
		method: http.MethodPost,
		path:   "/auth/login",
		body:   LoginRequest{Email: email, Password: password},
	})
	if err != nil {
		return "", err
	}
	if data == nil || data.Token == "" {
		return "", Rejected("Login failed")
	}
	return data.Token, nil
}

// Me resolves the user behind the current token.
func (c *Client) Me(ctx context.Context) (*User, error) {
	return doJSON[*User](c, ctx, request{method: http.MethodGet, path: "/auth/me", auth: true})
}
