// Package ratelimit provides a Redis-backed fixed-window IP rate limiter for
// the credential endpoints.
package ratelimit

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

const (
	defaultLimit  = 10
	defaultWindow = 15 * time.Minute
)

// Limiter counts requests per IP and purpose in fixed windows. A Limiter
// with no Redis client allows everything, so deployments without Redis
// still work.
type Limiter struct {
	client *redis.Client
	limit  int64
	window time.Duration
}

func NewLimiter(client *redis.Client) *Limiter {
	return &Limiter{
		client: client,
		limit:  defaultLimit,
		window: defaultWindow,
	}
}

// Disabled returns a limiter that never blocks.
func Disabled() *Limiter {
	return &Limiter{}
}

// Allow records one request for the given ip and purpose and reports whether
// it is within the window's limit.
func (l *Limiter) Allow(ctx context.Context, ip, purpose string) (bool, error) {
	if l.client == nil {
		return true, nil
	}

	key := fmt.Sprintf("ratelimit:%s:%s", purpose, ip)

	count, err := l.client.Incr(ctx, key).Result()
	if err != nil {
		return false, fmt.Errorf("failed to increment rate limit counter: %w", err)
	}

	// First hit in the window starts its expiry clock.
	if count == 1 {
		if err := l.client.Expire(ctx, key, l.window).Err(); err != nil {
			return false, fmt.Errorf("failed to set rate limit window: %w", err)
		}
	}

	return count <= l.limit, nil
}
