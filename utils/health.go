package utils

import (
	"context"
	"sync"
	"time"

	"github.com/go-redis/redis/v8"
)

// HealthStatus represents current status of external services.
type HealthStatus struct {
	Redis     []bool    `json:"redis"`
	Upstream  bool      `json:"upstream"`
	CheckedAt time.Time `json:"checkedAt"`
}

var (
	currentHealth HealthStatus
	healthMu      sync.RWMutex
)

// GetHealthStatus returns latest stored health snapshot.
func GetHealthStatus() HealthStatus {
	healthMu.RLock()
	defer healthMu.RUnlock()
	return currentHealth
}

// UpstreamPinger reports whether the upstream API answers its health endpoint.
type UpstreamPinger interface {
	Ping(ctx context.Context) error
}

// StartHealthMonitor performs periodic health checks and updates in-memory state.
func StartHealthMonitor(redisClients []*redis.Client, upstream UpstreamPinger) {
	go func() {
		ticker := time.NewTicker(60 * time.Second)
		defer ticker.Stop()

		for range ticker.C {
			ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)

			var redisHealth []bool
			for _, client := range redisClients {
				err := client.Ping(ctx).Err()
				redisHealth = append(redisHealth, err == nil)
			}

			upstreamOK := false
			if upstream != nil {
				upstreamOK = upstream.Ping(ctx) == nil
			}
			cancel()

			healthMu.Lock()
			currentHealth = HealthStatus{
				Redis:     redisHealth,
				Upstream:  upstreamOK,
				CheckedAt: time.Now(),
			}
			healthMu.Unlock()
		}
	}()
}
