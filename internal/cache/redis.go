package cache

import (
	"context"
	"errors"
	"fmt"
	"sync/atomic"
	"time"

	"github.com/go-redis/redis/v8"
)

// RedisOptions configures a RedisCache
type RedisOptions struct {
	Address  string
	Password string
	DB       int
	PoolSize int
}

// RedisCache implements Cache interface using Redis
type RedisCache struct {
	client redis.UniversalClient
	hits   int64
	misses int64
}

// NewRedisCache connects to Redis and verifies the connection
func NewRedisCache(ctx context.Context, opts RedisOptions) (*RedisCache, error) {
	client := redis.NewClient(&redis.Options{
		Addr:     opts.Address,
		Password: opts.Password,
		DB:       opts.DB,
		PoolSize: opts.PoolSize,
	})

	pingCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	if err := client.Ping(pingCtx).Err(); err != nil {
		client.Close()
		return nil, fmt.Errorf("%w: %v", ErrCacheUnavailable, err)
	}

	return NewRedisCacheFromClient(client), nil
}

// NewRedisCacheFromClient wraps an existing client
func NewRedisCacheFromClient(client redis.UniversalClient) *RedisCache {
	return &RedisCache{client: client}
}

// Client exposes the underlying client so other components can share the pool
func (r *RedisCache) Client() redis.UniversalClient {
	return r.client
}

// Get retrieves a value from Redis cache
func (r *RedisCache) Get(ctx context.Context, key string) ([]byte, error) {
	result, err := r.client.Get(ctx, key).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			atomic.AddInt64(&r.misses, 1)
			return nil, ErrKeyNotFound
		}
		return nil, fmt.Errorf("redis get error: %w", err)
	}

	atomic.AddInt64(&r.hits, 1)
	return result, nil
}

// Set stores a value in Redis cache with TTL
func (r *RedisCache) Set(ctx context.Context, key string, value []byte, ttl time.Duration) error {
	if err := r.client.Set(ctx, key, value, ttl).Err(); err != nil {
		return fmt.Errorf("redis set error: %w", err)
	}
	return nil
}

// GetMany retrieves keys with a single MGET
func (r *RedisCache) GetMany(ctx context.Context, keys []string) (map[string][]byte, error) {
	result := make(map[string][]byte, len(keys))
	if len(keys) == 0 {
		return result, nil
	}

	values, err := r.client.MGet(ctx, keys...).Result()
	if err != nil {
		return nil, fmt.Errorf("redis mget error: %w", err)
	}

	for i, value := range values {
		s, ok := value.(string)
		if !ok {
			atomic.AddInt64(&r.misses, 1)
			continue
		}
		atomic.AddInt64(&r.hits, 1)
		result[keys[i]] = []byte(s)
	}
	return result, nil
}

// SetMany stores items with one pipelined batch of SET commands
func (r *RedisCache) SetMany(ctx context.Context, items map[string][]byte, ttl time.Duration) error {
	if len(items) == 0 {
		return nil
	}

	_, err := r.client.Pipelined(ctx, func(pipe redis.Pipeliner) error {
		for key, value := range items {
			pipe.Set(ctx, key, value, ttl)
		}
		return nil
	})
	if err != nil {
		return fmt.Errorf("redis pipelined set error: %w", err)
	}
	return nil
}

// Delete removes a value from Redis cache
func (r *RedisCache) Delete(ctx context.Context, key string) error {
	if err := r.client.Del(ctx, key).Err(); err != nil {
		return fmt.Errorf("redis delete error: %w", err)
	}
	return nil
}

// Close closes the Redis connection
func (r *RedisCache) Close() error {
	if r.client != nil {
		return r.client.Close()
	}
	return nil
}

// Stats returns hit and miss counts observed by this process
func (r *RedisCache) Stats() CacheStats {
	hits := atomic.LoadInt64(&r.hits)
	misses := atomic.LoadInt64(&r.misses)

	stats := CacheStats{
		Hits:     hits,
		Misses:   misses,
		HitRatio: hitRatio(hits, misses),
	}

	ctx, cancel := context.WithTimeout(context.Background(), time.Second)
	defer cancel()
	if n, err := r.client.DBSize(ctx).Result(); err == nil {
		stats.Keys = n
	}
	return stats
}
