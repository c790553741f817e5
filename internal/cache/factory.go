package cache

import (
	"context"
	"fmt"
	"time"

	platformconfig "github.com/qolzam/telar/apps/feed/internal/platform/config"
)

// New creates the cache selected by configuration. It returns nil when
// caching is disabled.
func New(ctx context.Context, cfg platformconfig.CacheConfig) (Cache, error) {
	if !cfg.Enabled {
		return nil, nil
	}

	switch cfg.Backend {
	case platformconfig.CacheBackendMemory:
		return NewMemoryCache(time.Minute), nil
	case platformconfig.CacheBackendRedis:
		c, err := NewRedisCache(ctx, RedisOptions{
			Address:  cfg.Redis.Address,
			Password: cfg.Redis.Password,
			DB:       cfg.Redis.DB,
			PoolSize: cfg.Redis.PoolSize,
		})
		if err != nil {
			return nil, err
		}
		return c, nil
	default:
		return nil, fmt.Errorf("%w: %s", ErrInvalidCacheType, cfg.Backend)
	}
}
