package api

import (
	"context"
	"net/http"

	"github.com/AnubisPsy/Mobile-SIVEC/internal/dto"
)

// Login exchanges credentials for a token + user record. It does not decide
// role eligibility; that belongs to the session manager.
func (c *Client) Login(ctx context.Context, loginInput, password string) (*dto.LoginData, error) {
	var data dto.LoginData
	req := dto.LoginRequest{LoginInput: loginInput, Password: password}
	if err := c.do(ctx, http.MethodPost, "/auth/login", req, &data); err != nil {
		return nil, err
	}
	return &data, nil
}

// VerificarToken asks the backend whether the stored token is still good.
// The client never judges expiry locally.
func (c *Client) VerificarToken(ctx context.Context) (*dto.VerificarData, error) {
	var data dto.VerificarData
	if err := c.do(ctx, http.MethodPost, "/auth/verificar", nil, &data); err != nil {
		return nil, err
	}
	return &data, nil
}

// Logout informs the backend the session ended. Callers treat failures as
// non-fatal; local logout must succeed regardless.
func (c *Client) Logout(ctx context.Context) error {
	return c.do(ctx, http.MethodPost, "/auth/logout", nil, nil)
}
