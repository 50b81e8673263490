package rest

import (
	"context"

	"github.com/supplyline/scm-console/internal/core/domain"
)

// Authenticator implements ports.Authenticator against the API's auth routes.
type Authenticator struct {
	client *Client
}

func NewAuthenticator(c *Client) *Authenticator {
	return &Authenticator{client: c}
}

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type loginResponse struct {
	Token string       `json:"token"`
	User  *domain.User `json:"user"`
}

func (a *Authenticator) Login(ctx context.Context, email, password string) (string, *domain.User, error) {
	var resp loginResponse
	err := a.client.doWithToken(ctx, "POST", "/auth/login", "", loginRequest{Email: email, Password: password}, &resp)
	if err != nil {
		return "", nil, err
	}
	return resp.Token, resp.User, nil
}

// Validate resolves a stored token back to its identity via /auth/me.
func (a *Authenticator) Validate(ctx context.Context, token string) (*domain.User, error) {
	var user domain.User
	if err := a.client.doWithToken(ctx, "GET", "/auth/me", token, nil, &user); err != nil {
		return nil, err
	}
	return &user, nil
}
