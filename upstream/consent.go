package upstream

import (
	"context"
	"net/http"
	"net/url"

	"clarimed/models"
)

// ConsentRequirements fetches the consent catalog for the given language.
func (c *Client) ConsentRequirements(ctx context.Context, language string) (*models.ConsentCatalog, error) {
	path := "/consent/requirements?language=" + url.QueryEscape(language)
	var out models.ConsentCatalog
	if err := c.doJSON(ctx, http.MethodGet, path, "", nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}
