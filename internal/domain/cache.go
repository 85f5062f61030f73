package domain

import (
	"context"
	"time"
)

// CacheError represents an error originating from the cache.
type CacheError string

func (e CacheError) Error() string {
	return string(e)
}

// ErrCacheMiss is returned when a key is not found in the cache.
const ErrCacheMiss = CacheError("cache: key not found")

// Cache defines the caching port. Implementations translate their own miss signal to ErrCacheMiss.
type Cache interface {
	Get(ctx context.Context, key string) (string, error)
	// Set stores value under key. A zero expiration keeps the item until deleted.
	Set(ctx context.Context, key string, value string, expiration time.Duration) error
	// Delete removes key. Deleting a missing key is not an error.
	Delete(ctx context.Context, key string) error
	Ping(ctx context.Context) error
}
