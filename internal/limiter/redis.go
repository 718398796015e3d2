package limiter

import (
	"context"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/spec-kit/painting-service/internal/config"
)

type redisLimiter struct {
	client      *redis.Client
	maxFailures int64
	window      time.Duration
	blockFor    time.Duration
}

// NewRedisLimiter returns a Redis-backed limiter. Failures are counted in a
// rolling window; once the threshold is reached the (username, ip) pair is
// blocked for the configured duration.
func NewRedisLimiter(client *redis.Client, cfg config.ThrottleConfig) Limiter {
	return &redisLimiter{
		client:      client,
		maxFailures: int64(cfg.MaxFailures),
		window:      time.Duration(cfg.WindowMinutes) * time.Minute,
		blockFor:    time.Duration(cfg.BlockMinutes) * time.Minute,
	}
}

func (l *redisLimiter) Allow(ctx context.Context, username, ip string) (bool, time.Duration, error) {
	ttl, err := l.client.PTTL(ctx, blockKey(username, ip)).Result()
	if err != nil {
		return false, 0, err
	}
	if ttl > 0 {
		return false, ttl, nil
	}
	return true, 0, nil
}

func (l *redisLimiter) Failure(ctx context.Context, username, ip string) (bool, time.Duration, error) {
	key := failKey(username, ip)
	count, err := l.client.Incr(ctx, key).Result()
	if err != nil {
		return false, 0, err
	}
	if count == 1 {
		if err := l.client.Expire(ctx, key, l.window).Err(); err != nil {
			return false, 0, err
		}
	}
	if count < l.maxFailures {
		return false, 0, nil
	}

	pipe := l.client.TxPipeline()
	pipe.Set(ctx, blockKey(username, ip), "1", l.blockFor)
	pipe.Del(ctx, key)
	if _, err := pipe.Exec(ctx); err != nil {
		return false, 0, err
	}
	return true, l.blockFor, nil
}

func (l *redisLimiter) Success(ctx context.Context, username, ip string) error {
	return l.client.Del(ctx, failKey(username, ip), blockKey(username, ip)).Err()
}

func failKey(username, ip string) string {
	return "login:fail:" + username + ":" + ip
}

func blockKey(username, ip string) string {
	return "login:block:" + username + ":" + ip
}
