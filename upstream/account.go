package upstream

import (
	"context"
	"net/http"

	"clarimed/models"
)

// Profile fetches the signed-in user's profile.
func (c *Client) Profile(ctx context.Context, token string) (*models.Profile, error) {
	var out models.Profile
	if err := c.doJSON(ctx, http.MethodGet, "/account/profile", token, nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// UpdateProfile persists profile edits upstream.
func (c *Client) UpdateProfile(ctx context.Context, token string, profile models.Profile) (*models.Profile, error) {
	var out models.Profile
	if err := c.doJSON(ctx, http.MethodPut, "/account/profile", token, profile, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// Subscription fetches the current subscription/entitlement state.
func (c *Client) Subscription(ctx context.Context, token string) (*models.Subscription, error) {
	var out models.Subscription
	if err := c.doJSON(ctx, http.MethodGet, "/billing/subscription", token, nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// CancelSubscription cancels at period end.
func (c *Client) CancelSubscription(ctx context.Context, token string) error {
	return c.doJSON(ctx, http.MethodPost, "/billing/subscription/cancel", token, nil, nil)
}

// Plans fetches the pricing catalog.
func (c *Client) Plans(ctx context.Context) ([]models.Plan, error) {
	var out struct {
		Plans []models.Plan `json:"plans"`
	}
	if err := c.doJSON(ctx, http.MethodGet, "/billing/plans", "", nil, &out); err != nil {
		return nil, err
	}
	return out.Plans, nil
}
