package cache

import (
	"context"
	"errors"
	"time"
)

// Cache defines the generic cache interface for all cache implementations
type Cache interface {
	// Get retrieves a value from cache by key
	Get(ctx context.Context, key string) ([]byte, error)

	// Set stores a value in cache with TTL
	Set(ctx context.Context, key string, value []byte, ttl time.Duration) error

	// GetMany retrieves several keys in one round trip. Missing keys are
	// absent from the result.
	GetMany(ctx context.Context, keys []string) (map[string][]byte, error)

	// SetMany stores several values with one TTL in one round trip
	SetMany(ctx context.Context, items map[string][]byte, ttl time.Duration) error

	// Delete removes a value from cache by key
	Delete(ctx context.Context, key string) error

	// Close closes the cache connection
	Close() error

	// Stats returns cache statistics
	Stats() CacheStats
}

// CacheStats provides cache performance statistics
type CacheStats struct {
	Hits     int64   `json:"hits"`
	Misses   int64   `json:"misses"`
	HitRatio float64 `json:"hit_ratio"`
	Keys     int64   `json:"keys"`
}

// Common cache errors
var (
	// ErrKeyNotFound is returned when a key is not found in cache
	ErrKeyNotFound = errors.New("key not found")

	// ErrCacheUnavailable is returned when cache backend is unavailable
	ErrCacheUnavailable = errors.New("cache unavailable")

	// ErrCacheDisabled is returned when cache is closed or disabled
	ErrCacheDisabled = errors.New("cache disabled")

	// ErrInvalidCacheType is returned when cache type is invalid
	ErrInvalidCacheType = errors.New("invalid cache type")
)

func hitRatio(hits, misses int64) float64 {
	total := hits + misses
	if total == 0 {
		return 0
	}
	return float64(hits) / float64(total)
}
