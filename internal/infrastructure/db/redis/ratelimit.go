package redis

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

const rateLimitPrefix = "ratelimit:login:"

// RateLimiter counts attempts per key inside a fixed window backed by
// Redis. Key format: ratelimit:login:<key>.
type RateLimiter struct {
	client *redis.Client
	limit  int
	window time.Duration
}

func NewRateLimiter(client *redis.Client, limit int, window time.Duration) *RateLimiter {
	if limit <= 0 {
		limit = 5
	}
	if window <= 0 {
		window = time.Minute
	}
	return &RateLimiter{client: client, limit: limit, window: window}
}

// Allow records one attempt for key and reports whether it stayed within
// the limit. The window starts at the first attempt and is not extended by
// later ones.
func (r *RateLimiter) Allow(ctx context.Context, key string) (bool, error) {
	k := rateLimitPrefix + key

	n, err := r.client.Incr(ctx, k).Result()
	if err != nil {
		return false, fmt.Errorf("rate limit incr: %w", err)
	}
	if n == 1 {
		if err := r.client.Expire(ctx, k, r.window).Err(); err != nil {
			return false, fmt.Errorf("rate limit expire: %w", err)
		}
	}
	return n <= int64(r.limit), nil
}
