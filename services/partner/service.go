// Package partner is the read-through console over the upstream partner
// API-key endpoints. Upstream state is authoritative; the only local state
// is a short-lived list cache per signed-in user.
package partner

import (
	"context"
	"encoding/json"

	"clarimed/models"
	"clarimed/upstream"
	"clarimed/utils"

	"github.com/go-redis/redis/v8"
	"go.uber.org/zap"
)

// API is the slice of the upstream client this service needs.
type API interface {
	ListPartnerKeys(ctx context.Context, token string) ([]models.PartnerAPIKey, error)
	CreatePartnerKey(ctx context.Context, token string, input models.PartnerAPIKeyInput) (*models.PartnerAPIKey, error)
	UpdatePartnerKey(ctx context.Context, token, keyID string, input models.PartnerAPIKeyInput) (*models.PartnerAPIKey, error)
	DeletePartnerKey(ctx context.Context, token, keyID string) error
}

type Service interface {
	List(ctx context.Context, token string) ([]models.PartnerAPIKey, error)
	Create(ctx context.Context, token string, input models.PartnerAPIKeyInput) (*models.PartnerAPIKey, error)
	Update(ctx context.Context, token, keyID string, input models.PartnerAPIKeyInput) (*models.PartnerAPIKey, error)
	Delete(ctx context.Context, token, keyID string) error
}

// DefaultPartnerService caches list views briefly and invalidates on any
// mutation. A nil Cache disables caching.
type DefaultPartnerService struct {
	API   API
	Cache *redis.Client
}

func cacheKey(token string) string {
	// The upstream token scopes the view; hashing keeps it out of Redis keys.
	return utils.PartnerKeyCachePrefix + utils.HashToken(token)
}

func (s *DefaultPartnerService) List(ctx context.Context, token string) ([]models.PartnerAPIKey, error) {
	if s.Cache != nil {
		if data, err := s.Cache.Get(ctx, cacheKey(token)).Result(); err == nil {
			var keys []models.PartnerAPIKey
			if err := json.Unmarshal([]byte(data), &keys); err == nil {
				return keys, nil
			}
		}
	}

	keys, err := s.API.ListPartnerKeys(ctx, token)
	if err != nil {
		return nil, err
	}

	if s.Cache != nil {
		if data, err := json.Marshal(keys); err == nil {
			if err := s.Cache.Set(ctx, cacheKey(token), data, utils.PartnerKeyCacheTTL).Err(); err != nil {
				utils.GetLogger().Warn("Failed to cache partner key list", zap.Error(err))
			}
		}
	}
	return keys, nil
}

func (s *DefaultPartnerService) Create(ctx context.Context, token string, input models.PartnerAPIKeyInput) (*models.PartnerAPIKey, error) {
	key, err := s.API.CreatePartnerKey(ctx, token, input)
	if err != nil {
		return nil, err
	}
	s.invalidate(ctx, token)
	return key, nil
}

func (s *DefaultPartnerService) Update(ctx context.Context, token, keyID string, input models.PartnerAPIKeyInput) (*models.PartnerAPIKey, error) {
	key, err := s.API.UpdatePartnerKey(ctx, token, keyID, input)
	if err != nil {
		return nil, err
	}
	s.invalidate(ctx, token)
	return key, nil
}

func (s *DefaultPartnerService) Delete(ctx context.Context, token, keyID string) error {
	if err := s.API.DeletePartnerKey(ctx, token, keyID); err != nil {
		return err
	}
	s.invalidate(ctx, token)
	return nil
}

func (s *DefaultPartnerService) invalidate(ctx context.Context, token string) {
	if s.Cache == nil {
		return
	}
	if err := s.Cache.Del(ctx, cacheKey(token)).Err(); err != nil {
		utils.GetLogger().Warn("Failed to invalidate partner key cache", zap.Error(err))
	}
}

var _ API = (*upstream.Client)(nil)
