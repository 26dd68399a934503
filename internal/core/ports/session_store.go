package ports

import (
	"context"

	"github.com/pokeshop/storefront/internal/core/domain"
)

// SessionStore persists session state keyed by opaque session id with a
// sliding TTL. Get returns (nil, nil) when the id is unknown or expired.
type SessionStore interface {
	Get(ctx context.Context, id string) (*domain.Session, error)
	// Save writes the full session state and resets its TTL.
	Save(ctx context.Context, s *domain.Session) error
	Delete(ctx context.Context, id string) error
	// Touch extends the TTL without rewriting the value (rolling expiry).
	Touch(ctx context.Context, id string) error
}

// RateLimiter bounds attempts per key inside a fixed window.
type RateLimiter interface {
	// Allow records one attempt for key and reports whether it is within
	// the configured limit.
	Allow(ctx context.Context, key string) (bool, error)
}
