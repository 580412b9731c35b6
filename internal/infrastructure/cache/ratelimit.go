package cache

import (
	"context"
	"fmt"
	"time"
)

// FixedWindowLimiter counts requests per key in fixed windows backed by
// Redis, so limits hold across server instances.
type FixedWindowLimiter struct {
	client *RedisCache
}

func NewFixedWindowLimiter(client *RedisCache) *FixedWindowLimiter {
	return &FixedWindowLimiter{client: client}
}

func (l *FixedWindowLimiter) Allow(ctx context.Context, key string, limit int, window time.Duration) (bool, error) {
	bucket := fmt.Sprintf("ratelimit:%s:%d", key, time.Now().Unix()/int64(window.Seconds()))

	count, err := l.client.Incr(ctx, bucket)
	if err != nil {
		return false, err
	}
	if count == 1 {
		if err := l.client.Expire(ctx, bucket, window); err != nil {
			return false, err
		}
	}

	return count <= int64(limit), nil
}
