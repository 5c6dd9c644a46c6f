// File: services/registration/session.go
package registration

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"clarimed/models"
	"clarimed/utils"

	"github.com/go-redis/redis/v8"
	"go.uber.org/zap"
)

// SessionStore persists wizard sessions between steps. Implemented on Redis
// in production; tests use the in-memory version below.
type SessionStore interface {
	Save(ctx context.Context, session models.RegistrationSession) error
	Get(ctx context.Context, sessionID string) (*models.RegistrationSession, error)
	Delete(ctx context.Context, sessionID string) error
}

// RedisSessionStore keeps wizard sessions in the wizard Redis DB with a TTL
// so abandoned flows expire on their own.
type RedisSessionStore struct {
	Client *redis.Client
	TTL    time.Duration
}

func NewRedisSessionStore(client *redis.Client) *RedisSessionStore {
	return &RedisSessionStore{Client: client, TTL: utils.WizardSessionTTL}
}

func (s *RedisSessionStore) Save(ctx context.Context, session models.RegistrationSession) error {
	session.LastUpdatedAt = time.Now()
	data, err := json.Marshal(session)
	if err != nil {
		utils.GetLogger().Error("Failed to marshal wizard session", zap.Error(err))
		return err
	}
	if err := s.Client.Set(ctx, utils.WizardSessionPrefix+session.ID, data, s.TTL).Err(); err != nil {
		utils.GetLogger().Error("Failed to save wizard session", zap.String("sessionID", session.ID), zap.Error(err))
		return err
	}
	return nil
}

func (s *RedisSessionStore) Get(ctx context.Context, sessionID string) (*models.RegistrationSession, error) {
	data, err := s.Client.Get(ctx, utils.WizardSessionPrefix+sessionID).Result()
	if err != nil {
		return nil, fmt.Errorf("wizard session not found or expired")
	}
	var session models.RegistrationSession
	if err := json.Unmarshal([]byte(data), &session); err != nil {
		return nil, fmt.Errorf("failed to unmarshal wizard session: %w", err)
	}
	return &session, nil
}

func (s *RedisSessionStore) Delete(ctx context.Context, sessionID string) error {
	return s.Client.Del(ctx, utils.WizardSessionPrefix+sessionID).Err()
}

// MemorySessionStore is the test double for SessionStore.
type MemorySessionStore struct {
	sessions map[string]models.RegistrationSession
}

func NewMemorySessionStore() *MemorySessionStore {
	return &MemorySessionStore{sessions: make(map[string]models.RegistrationSession)}
}

func (s *MemorySessionStore) Save(ctx context.Context, session models.RegistrationSession) error {
	session.LastUpdatedAt = time.Now()
	s.sessions[session.ID] = session
	return nil
}

func (s *MemorySessionStore) Get(ctx context.Context, sessionID string) (*models.RegistrationSession, error) {
	session, ok := s.sessions[sessionID]
	if !ok {
		return nil, fmt.Errorf("wizard session not found or expired")
	}
	return &session, nil
}

func (s *MemorySessionStore) Delete(ctx context.Context, sessionID string) error {
	delete(s.sessions, sessionID)
	return nil
}
