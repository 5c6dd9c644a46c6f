// Package consent serves the server-supplied consent catalog and the
// required-consent gate used by the registration wizard.
package consent

import (
	"context"
	"encoding/json"

	"clarimed/models"
	"clarimed/utils"

	"github.com/go-redis/redis/v8"
	"go.uber.org/zap"
)

// API is the slice of the upstream client this service needs.
type API interface {
	ConsentRequirements(ctx context.Context, language string) (*models.ConsentCatalog, error)
}

type Service interface {
	Catalog(ctx context.Context) (*models.ConsentCatalog, error)
	RequiredConsents(ctx context.Context) ([]string, error)
	Refresh(ctx context.Context) error
}

// DefaultConsentService reads through a Redis-cached copy of the catalog.
// A nil Cache disables caching (used in tests).
type DefaultConsentService struct {
	API      API
	Cache    *redis.Client
	Language string
}

// Catalog returns the consent catalog, preferring the cached copy.
func (s *DefaultConsentService) Catalog(ctx context.Context) (*models.ConsentCatalog, error) {
	if s.Cache != nil {
		if data, err := s.Cache.Get(ctx, utils.ConsentCatalogKey).Result(); err == nil {
			var catalog models.ConsentCatalog
			if err := json.Unmarshal([]byte(data), &catalog); err == nil {
				return &catalog, nil
			}
		}
	}

	catalog, err := s.API.ConsentRequirements(ctx, s.Language)
	if err != nil {
		return nil, err
	}
	s.store(ctx, catalog)
	return catalog, nil
}

// RequiredConsents returns the identifiers that must all be granted before
// a registration may be submitted.
func (s *DefaultConsentService) RequiredConsents(ctx context.Context) ([]string, error) {
	catalog, err := s.Catalog(ctx)
	if err != nil {
		return nil, err
	}
	return catalog.RequiredConsents, nil
}

// Refresh re-fetches the catalog and replaces the cached copy. Called from
// the hourly cron schedule.
func (s *DefaultConsentService) Refresh(ctx context.Context) error {
	catalog, err := s.API.ConsentRequirements(ctx, s.Language)
	if err != nil {
		return err
	}
	s.store(ctx, catalog)
	return nil
}

func (s *DefaultConsentService) store(ctx context.Context, catalog *models.ConsentCatalog) {
	if s.Cache == nil {
		return
	}
	data, err := json.Marshal(catalog)
	if err != nil {
		return
	}
	if err := s.Cache.Set(ctx, utils.ConsentCatalogKey, data, utils.ConsentCatalogTTL).Err(); err != nil {
		utils.GetLogger().Warn("Failed to cache consent catalog", zap.Error(err))
	}
}
