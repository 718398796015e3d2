package persistence

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"github.com/spec-kit/painting-service/internal/config"
)

// Redis wraps the go-redis client that backs the login throttle. Unlike the
// optional Postgres pool, an unreachable Redis is a startup failure: the
// throttle must not silently degrade to unlimited login attempts.
type Redis struct {
	client *redis.Client
}

// NewRedis connects and verifies reachability before handing the client out.
func NewRedis(ctx context.Context, cfg config.RedisConfig, logger *zap.Logger) (*Redis, error) {
	client := redis.NewClient(&redis.Options{
		Addr:     cfg.Addr,
		Password: cfg.Password,
		DB:       cfg.DB,
	})

	pingCtx, cancel := context.WithTimeout(ctx, 2*time.Second)
	defer cancel()
	if err := client.Ping(pingCtx).Err(); err != nil {
		_ = client.Close()
		return nil, fmt.Errorf("connect redis: %w", err)
	}

	logger.Info("connected to redis; login throttle enabled", zap.String("addr", cfg.Addr))
	return &Redis{client: client}, nil
}

// Handle returns the underlying client for the limiter.
func (r *Redis) Handle() *redis.Client {
	if r == nil {
		return nil
	}
	return r.client
}

// Close closes the client.
func (r *Redis) Close() {
	if r != nil && r.client != nil {
		_ = r.client.Close()
	}
}

// Ping verifies Redis connectivity for readiness probes.
func (r *Redis) Ping(ctx context.Context) error {
	if r == nil || r.client == nil {
		return errors.New("redis client not configured")
	}
	return r.client.Ping(ctx).Err()
}
