package consent

import (
	"context"
	"fmt"
	"testing"

	"clarimed/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type stubAPI struct {
	calls   int
	catalog models.ConsentCatalog
	err     error
}

func (s *stubAPI) ConsentRequirements(ctx context.Context, language string) (*models.ConsentCatalog, error) {
	s.calls++
	if s.err != nil {
		return nil, s.err
	}
	catalog := s.catalog
	return &catalog, nil
}

func TestCatalogWithoutCacheHitsUpstreamEveryTime(t *testing.T) {
	api := &stubAPI{catalog: models.ConsentCatalog{
		RequiredConsents: []string{"privacy_policy", "health_data"},
		OptionalConsents: []string{"marketing"},
	}}
	svc := &DefaultConsentService{API: api, Language: "it"}

	catalog, err := svc.Catalog(context.Background())
	require.NoError(t, err)
	assert.Equal(t, []string{"privacy_policy", "health_data"}, catalog.RequiredConsents)

	_, err = svc.Catalog(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 2, api.calls)
}

func TestRequiredConsents(t *testing.T) {
	api := &stubAPI{catalog: models.ConsentCatalog{RequiredConsents: []string{"privacy_policy"}}}
	svc := &DefaultConsentService{API: api}

	required, err := svc.RequiredConsents(context.Background())
	require.NoError(t, err)
	assert.Equal(t, []string{"privacy_policy"}, required)
}

func TestCatalogPropagatesUpstreamError(t *testing.T) {
	api := &stubAPI{err: fmt.Errorf("upstream down")}
	svc := &DefaultConsentService{API: api}

	_, err := svc.Catalog(context.Background())
	assert.Error(t, err)
}

func TestRefreshPropagatesUpstreamError(t *testing.T) {
	api := &stubAPI{err: fmt.Errorf("upstream down")}
	svc := &DefaultConsentService{API: api}

	assert.Error(t, svc.Refresh(context.Background()))
}
