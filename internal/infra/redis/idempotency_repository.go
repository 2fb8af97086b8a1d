package redis

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/Faisal-Javaid/napkin-dispenser/internal/gateway"
	"github.com/redis/go-redis/v9"
)

const (
	responsePrefix = "idempotency:response:"
	lockPrefix     = "idempotency:lock:"
)

// IdempotencyRepository keeps replayable responses and in-flight markers in Redis.
type IdempotencyRepository struct {
	client redis.Cmdable
}

func NewIdempotencyRepository(client redis.Cmdable) *IdempotencyRepository {
	return &IdempotencyRepository{client: client}
}

func (r *IdempotencyRepository) Get(ctx context.Context, key string) (*gateway.CachedResponse, error) {
	raw, err := r.client.Get(ctx, responsePrefix+key).Bytes()
	switch {
	case errors.Is(err, redis.Nil):
		return nil, nil
	case err != nil:
		return nil, fmt.Errorf("failed to get idempotency key %s: %w", key, err)
	}

	var resp gateway.CachedResponse
	if err := json.Unmarshal(raw, &resp); err != nil {
		return nil, fmt.Errorf("failed to decode cached response for %s: %w", key, err)
	}
	return &resp, nil
}

func (r *IdempotencyRepository) Save(ctx context.Context, key string, response gateway.CachedResponse, ttl time.Duration) error {
	raw, err := json.Marshal(response)
	if err != nil {
		return fmt.Errorf("failed to encode response: %w", err)
	}
	if err := r.client.Set(ctx, responsePrefix+key, raw, ttl).Err(); err != nil {
		return fmt.Errorf("failed to save idempotency key %s: %w", key, err)
	}
	return nil
}

// Lock relies on SET NX, so exactly one caller wins per key.
func (r *IdempotencyRepository) Lock(ctx context.Context, key string, ttl time.Duration) (bool, error) {
	ok, err := r.client.SetNX(ctx, lockPrefix+key, time.Now().UTC().Format(time.RFC3339Nano), ttl).Result()
	if err != nil {
		return false, fmt.Errorf("failed to lock idempotency key %s: %w", key, err)
	}
	return ok, nil
}

func (r *IdempotencyRepository) Unlock(ctx context.Context, key string) error {
	if err := r.client.Del(ctx, lockPrefix+key).Err(); err != nil {
		return fmt.Errorf("failed to unlock idempotency key %s: %w", key, err)
	}
	return nil
}
