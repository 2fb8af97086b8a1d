package gateway

import (
	"context"
	"time"
)

// CachedResponse is what the idempotency store keeps per key.
type CachedResponse struct {
	StatusCode int
	Body       []byte
	Headers    map[string][]string
}

type IdempotencyRepository interface {
	// Get returns the cached response, or nil on a cache miss.
	Get(ctx context.Context, key string) (*CachedResponse, error)

	// Save stores the response with a TTL.
	Save(ctx context.Context, key string, response CachedResponse, ttl time.Duration) error

	// Lock marks key as in flight. It reports false when another request
	// already holds it. The lock expires after ttl.
	Lock(ctx context.Context, key string, ttl time.Duration) (bool, error)
	Unlock(ctx context.Context, key string) error
}
