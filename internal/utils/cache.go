package utils

import (
	"sync"
	"time"
)

// CacheEntry represents a cached value with expiration
type CacheEntry[V any] struct {
	Value     V
	ExpiresAt time.Time
}

// IsExpired checks if the cache entry has expired
func (e *CacheEntry[V]) IsExpired(now time.Time) bool {
	return now.After(e.ExpiresAt)
}

// Cache is an in-memory cache with sliding TTL: every read extends the
// lifetime of the entry it returns.
type Cache[V any] struct {
	data       map[string]*CacheEntry[V]
	mutex      sync.Mutex
	defaultTTL time.Duration
	now        func() time.Time
	stop       chan struct{}
	stopOnce   sync.Once
}

// NewCache creates a new in-memory cache and starts its cleanup routine
func NewCache[V any](defaultTTL time.Duration) *Cache[V] {
	return newCache[V](defaultTTL, time.Now)
}

func newCache[V any](defaultTTL time.Duration, now func() time.Time) *Cache[V] {
	cache := &Cache[V]{
		data:       make(map[string]*CacheEntry[V]),
		defaultTTL: defaultTTL,
		now:        now,
		stop:       make(chan struct{}),
	}

	go cache.cleanupExpired(cleanupInterval(defaultTTL))

	return cache
}

func cleanupInterval(ttl time.Duration) time.Duration {
	if ttl <= 0 || ttl > 5*time.Minute {
		return 5 * time.Minute
	}
	return ttl
}

// Get retrieves a value from the cache
func (c *Cache[V]) Get(key string) (V, bool) {
	c.mutex.Lock()
	defer c.mutex.Unlock()

	return c.getLocked(key)
}

func (c *Cache[V]) getLocked(key string) (V, bool) {
	var zero V
	entry, exists := c.data[key]
	if !exists {
		return zero, false
	}

	now := c.now()
	if entry.IsExpired(now) {
		delete(c.data, key)
		return zero, false
	}

	entry.ExpiresAt = now.Add(c.defaultTTL)
	return entry.Value, true
}

// GetOrCreate returns the cached value for key, calling create to build and
// store one if there is none. create runs under the cache lock, so two
// callers never build the same key twice.
func (c *Cache[V]) GetOrCreate(key string, create func() V) V {
	c.mutex.Lock()
	defer c.mutex.Unlock()

	if v, ok := c.getLocked(key); ok {
		return v
	}

	v := create()
	c.data[key] = &CacheEntry[V]{Value: v, ExpiresAt: c.now().Add(c.defaultTTL)}
	return v
}

// Set stores a value in the cache with default TTL
func (c *Cache[V]) Set(key string, value V) {
	c.mutex.Lock()
	defer c.mutex.Unlock()

	c.data[key] = &CacheEntry[V]{Value: value, ExpiresAt: c.now().Add(c.defaultTTL)}
}

// Delete removes a value from the cache
func (c *Cache[V]) Delete(key string) {
	c.mutex.Lock()
	defer c.mutex.Unlock()

	delete(c.data, key)
}

// Size returns the number of items in the cache, expired or not
func (c *Cache[V]) Size() int {
	c.mutex.Lock()
	defer c.mutex.Unlock()

	return len(c.data)
}

// Close stops the cleanup routine
func (c *Cache[V]) Close() {
	c.stopOnce.Do(func() { close(c.stop) })
}

// Purge removes every expired entry
func (c *Cache[V]) Purge() {
	c.mutex.Lock()
	defer c.mutex.Unlock()

	now := c.now()
	for key, entry := range c.data {
		if entry.IsExpired(now) {
			delete(c.data, key)
		}
	}
}

func (c *Cache[V]) cleanupExpired(interval time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			c.Purge()
		case <-c.stop:
			return
		}
	}
}
