package cache

import (
	"context"
	"time"
)

// DefaultTTL is applied by Set when the caller passes a non-positive ttl
const DefaultTTL = time.Hour

// Cache defines the caching operations services depend on.
//
// Every method is fail-open: when the backing store is unreachable, or a
// value cannot be encoded or decoded, the call logs the failure and returns
// its zero result (miss, false, 0) instead of an error. Callers treat every
// failure as "not cached yet" and fall back to the system of record.
type Cache interface {
	// Get decodes the value stored under key into dest and reports whether it was found
	Get(ctx context.Context, key string, dest any) bool

	// Set encodes value and stores it with the given expiration
	Set(ctx context.Context, key string, value any, ttl time.Duration) bool

	// Delete removes a single key
	Delete(ctx context.Context, key string) bool

	// InvalidatePattern deletes every key in the namespace matching a glob
	// pattern and returns how many were removed
	InvalidatePattern(ctx context.Context, pattern string) int64

	// Exists checks if a key exists
	Exists(ctx context.Context, key string) bool

	// Expire resets the time-to-live of an existing key
	Expire(ctx context.Context, key string, ttl time.Duration) bool

	// Increment atomically adds by to an integer counter, creating it at 0 first.
	// The second result is false when the counter could not be updated.
	Increment(ctx context.Context, key string, by int64) (int64, bool)

	// IncrementWithTTL increments a counter and starts its expiry in the same
	// transaction. A counter that already has a TTL keeps it.
	IncrementWithTTL(ctx context.Context, key string, by int64, ttl time.Duration) (int64, bool)

	// SetHash stores value under field of the hash at key
	SetHash(ctx context.Context, key, field string, value any) bool

	// GetHash decodes field of the hash at key into dest
	GetHash(ctx context.Context, key, field string, dest any) bool

	// FlushAll wipes the entire backing store. Administrative use only.
	FlushAll(ctx context.Context) bool

	// IsConnected reports the live connection status
	IsConnected() bool

	// Close disconnects from the backing store
	Close() error
}

// GetAs is the typed form of Cache.Get
func GetAs[T any](ctx context.Context, c Cache, key string) (T, bool) {
	var v T
	if !c.Get(ctx, key, &v) {
		var zero T
		return zero, false
	}
	return v, true
}

// GetHashAs is the typed form of Cache.GetHash
func GetHashAs[T any](ctx context.Context, c Cache, key, field string) (T, bool) {
	var v T
	if !c.GetHash(ctx, key, field, &v) {
		var zero T
		return zero, false
	}
	return v, true
}
