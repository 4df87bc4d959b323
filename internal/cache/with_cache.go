package cache

import (
	"context"
	"time"
)

// WithCache wraps compute with read-through caching under key.
//
// On a hit compute is never called. On a miss compute runs; its error is
// returned unchanged and nothing is cached. A successful result is written
// best-effort and returned whether or not the write succeeded. Concurrent
// misses on the same key may each call compute.
func WithCache[T any](ctx context.Context, c Cache, key string, ttl time.Duration, compute func(ctx context.Context) (T, error)) (T, error) {
	if c != nil {
		if cached, ok := GetAs[T](ctx, c, key); ok {
			return cached, nil
		}
	}

	value, err := compute(ctx)
	if err != nil {
		var zero T
		return zero, err
	}

	if c != nil {
		c.Set(ctx, key, value, ttl)
	}
	return value, nil
}
