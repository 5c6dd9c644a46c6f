package upstream

import (
	"context"
	"net/http"

	"clarimed/models"
)

// LoginResponse carries the upstream session token.
type LoginResponse struct {
	Token string         `json:"token"`
	User  models.Profile `json:"user"`
}

// Login authenticates against the upstream API.
func (c *Client) Login(ctx context.Context, email, password string) (*LoginResponse, error) {
	body := map[string]string{"email": email, "password": password}
	var out LoginResponse
	if err := c.doJSON(ctx, http.MethodPost, "/auth/login", "", body, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// Logout invalidates the upstream session token.
func (c *Client) Logout(ctx context.Context, token string) error {
	return c.doJSON(ctx, http.MethodPost, "/auth/logout", token, nil, nil)
}

// RequestPasswordReset triggers the reset email.
func (c *Client) RequestPasswordReset(ctx context.Context, email string) error {
	body := map[string]string{"email": email}
	return c.doJSON(ctx, http.MethodPost, "/auth/password-reset/request", "", body, nil)
}

// ConfirmPasswordReset sets a new password using a deep-link token.
func (c *Client) ConfirmPasswordReset(ctx context.Context, token, newPassword string) error {
	body := map[string]string{"token": token, "new_password": newPassword}
	return c.doJSON(ctx, http.MethodPost, "/auth/password-reset/confirm", "", body, nil)
}

// ActivateB2B completes a B2B sub-account activation deep link.
func (c *Client) ActivateB2B(ctx context.Context, email, token string) error {
	body := map[string]string{"email": email, "token": token}
	return c.doJSON(ctx, http.MethodPost, "/auth/b2b/activate", "", body, nil)
}

// ListB2BAccounts returns the sub-accounts selectable by the current user.
func (c *Client) ListB2BAccounts(ctx context.Context, token string) ([]models.B2BAccount, error) {
	var out struct {
		Accounts []models.B2BAccount `json:"accounts"`
	}
	if err := c.doJSON(ctx, http.MethodGet, "/auth/b2b/accounts", token, nil, &out); err != nil {
		return nil, err
	}
	return out.Accounts, nil
}

// SelectB2BAccount switches the session to the given sub-account and
// returns the re-scoped session token.
func (c *Client) SelectB2BAccount(ctx context.Context, token, accountID string) (*LoginResponse, error) {
	body := map[string]string{"account_id": accountID}
	var out LoginResponse
	if err := c.doJSON(ctx, http.MethodPost, "/auth/b2b/select", token, body, &out); err != nil {
		return nil, err
	}
	return &out, nil
}
