package cache

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"
	"time"
)

// cacheItem represents an item in the memory cache
type cacheItem struct {
	value      []byte
	expiration time.Time
}

// MemoryCache implements Cache interface using in-memory storage
type MemoryCache struct {
	items     map[string]*cacheItem
	mutex     sync.RWMutex
	hits      int64
	misses    int64
	now       func() time.Time
	done      chan struct{}
	closeOnce sync.Once
	closed    atomic.Bool
}

// NewMemoryCache creates a new in-memory cache. Expired items are removed
// lazily on Get and by a sweep every cleanupInterval.
func NewMemoryCache(cleanupInterval time.Duration) *MemoryCache {
	c := &MemoryCache{
		items: make(map[string]*cacheItem),
		now:   time.Now,
		done:  make(chan struct{}),
	}
	if cleanupInterval > 0 {
		go c.startCleanup(cleanupInterval)
	}
	return c
}

// Get retrieves a value from cache
func (c *MemoryCache) Get(ctx context.Context, key string) ([]byte, error) {
	if c.closed.Load() {
		return nil, ErrCacheDisabled
	}

	c.mutex.RLock()
	item, exists := c.items[key]
	c.mutex.RUnlock()

	if !exists || c.now().After(item.expiration) {
		atomic.AddInt64(&c.misses, 1)
		if exists {
			c.mutex.Lock()
			if current, ok := c.items[key]; ok && current == item {
				delete(c.items, key)
			}
			c.mutex.Unlock()
		}
		return nil, ErrKeyNotFound
	}

	atomic.AddInt64(&c.hits, 1)
	result := make([]byte, len(item.value))
	copy(result, item.value)
	return result, nil
}

// Set stores a value in cache with expiration
func (c *MemoryCache) Set(ctx context.Context, key string, value []byte, ttl time.Duration) error {
	if c.closed.Load() {
		return ErrCacheDisabled
	}

	valueCopy := make([]byte, len(value))
	copy(valueCopy, value)

	c.mutex.Lock()
	c.items[key] = &cacheItem{value: valueCopy, expiration: c.now().Add(ttl)}
	c.mutex.Unlock()
	return nil
}

// GetMany retrieves every present, unexpired key
func (c *MemoryCache) GetMany(ctx context.Context, keys []string) (map[string][]byte, error) {
	if c.closed.Load() {
		return nil, ErrCacheDisabled
	}

	result := make(map[string][]byte, len(keys))
	for _, key := range keys {
		value, err := c.Get(ctx, key)
		if err != nil {
			if errors.Is(err, ErrKeyNotFound) {
				continue
			}
			return nil, err
		}
		result[key] = value
	}
	return result, nil
}

// SetMany stores every item with the same expiration
func (c *MemoryCache) SetMany(ctx context.Context, items map[string][]byte, ttl time.Duration) error {
	for key, value := range items {
		if err := c.Set(ctx, key, value, ttl); err != nil {
			return err
		}
	}
	return nil
}

// Delete removes a value from cache
func (c *MemoryCache) Delete(ctx context.Context, key string) error {
	c.mutex.Lock()
	delete(c.items, key)
	c.mutex.Unlock()
	return nil
}

// Close stops the cleanup goroutine. Further calls return ErrCacheDisabled.
func (c *MemoryCache) Close() error {
	c.closeOnce.Do(func() {
		c.closed.Store(true)
		close(c.done)
	})
	return nil
}

// Stats returns cache statistics
func (c *MemoryCache) Stats() CacheStats {
	c.mutex.RLock()
	keys := int64(len(c.items))
	c.mutex.RUnlock()

	hits := atomic.LoadInt64(&c.hits)
	misses := atomic.LoadInt64(&c.misses)
	return CacheStats{
		Hits:     hits,
		Misses:   misses,
		HitRatio: hitRatio(hits, misses),
		Keys:     keys,
	}
}

func (c *MemoryCache) startCleanup(interval time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			c.removeExpired()
		case <-c.done:
			return
		}
	}
}

func (c *MemoryCache) removeExpired() {
	now := c.now()
	c.mutex.Lock()
	defer c.mutex.Unlock()
	for key, item := range c.items {
		if now.After(item.expiration) {
			delete(c.items, key)
		}
	}
}
