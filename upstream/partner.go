package upstream

import (
	"context"
	"net/http"

	"clarimed/models"
)

// ListPartnerKeys returns the partner console's key list.
func (c *Client) ListPartnerKeys(ctx context.Context, token string) ([]models.PartnerAPIKey, error) {
	var out struct {
		Keys []models.PartnerAPIKey `json:"keys"`
	}
	if err := c.doJSON(ctx, http.MethodGet, "/partner/keys", token, nil, &out); err != nil {
		return nil, err
	}
	return out.Keys, nil
}

// CreatePartnerKey provisions a new partner API key.
func (c *Client) CreatePartnerKey(ctx context.Context, token string, input models.PartnerAPIKeyInput) (*models.PartnerAPIKey, error) {
	var out models.PartnerAPIKey
	if err := c.doJSON(ctx, http.MethodPost, "/partner/keys", token, input, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// UpdatePartnerKey updates settings of an existing partner API key.
func (c *Client) UpdatePartnerKey(ctx context.Context, token, keyID string, input models.PartnerAPIKeyInput) (*models.PartnerAPIKey, error) {
	var out models.PartnerAPIKey
	if err := c.doJSON(ctx, http.MethodPut, "/partner/keys/"+keyID, token, input, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// DeletePartnerKey revokes a partner API key.
func (c *Client) DeletePartnerKey(ctx context.Context, token, keyID string) error {
	return c.doJSON(ctx, http.MethodDelete, "/partner/keys/"+keyID, token, nil, nil)
}
