// Package cache provides the shared summary cache keyed by content
// fingerprint. The in-memory implementation combines a TTL map with a
// single-flight discipline so concurrent requests for the same fingerprint
// share one computation instead of issuing duplicate paid requests.
package cache

import (
	"context"
	"sync"
	"time"

	"golang.org/x/sync/singleflight"
)

// Cache is the swappable cache abstraction injected into the summarization
// client. Implementations must be safe for concurrent use.
type Cache interface {
	// GetOrCompute returns the cached value for key when a live entry exists;
	// otherwise it runs compute, stores the result for ttl on success, and
	// returns it. At most one compute runs per key at a time; concurrent
	// callers for the same key await its result. The second return reports a
	// cache hit. Failed computations are never stored.
	GetOrCompute(ctx context.Context, key string, ttl time.Duration, compute func(ctx context.Context) (string, error)) (string, bool, error)
}

type entry struct {
	value     string
	expiresAt time.Time
}

type memoryCache struct {
	mu      sync.Mutex
	entries map[string]entry
	group   singleflight.Group
	now     func() time.Time
}

// NewMemory creates an in-memory Cache. Expired entries are dropped lazily on
// lookup.
func NewMemory() Cache {
	return &memoryCache{
		entries: make(map[string]entry),
		now:     time.Now,
	}
}

func (c *memoryCache) lookup(key string) (string, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	e, ok := c.entries[key]
	if !ok {
		return "", false
	}
	if c.now().After(e.expiresAt) {
		delete(c.entries, key)
		return "", false
	}
	return e.value, true
}

func (c *memoryCache) store(key, value string, ttl time.Duration) {
	c.mu.Lock()
	c.entries[key] = entry{value: value, expiresAt: c.now().Add(ttl)}
	c.mu.Unlock()
}

// GetOrCompute implements Cache.
func (c *memoryCache) GetOrCompute(ctx context.Context, key string, ttl time.Duration, compute func(ctx context.Context) (string, error)) (string, bool, error) {
	if ttl <= 0 {
		v, err := compute(ctx)
		return v, false, err
	}

	if v, ok := c.lookup(key); ok {
		return v, true, nil
	}

	v, err, shared := c.group.Do(key, func() (interface{}, error) {
		// A previous flight may have filled the entry while we queued.
		if v, ok := c.lookup(key); ok {
			return v, nil
		}
		v, err := compute(ctx)
		if err != nil {
			return "", err
		}
		c.store(key, v, ttl)
		return v, nil
	})
	if err != nil {
		return "", false, err
	}
	return v.(string), shared, nil
}

// Nop returns a Cache that never stores anything. Every call computes.
func Nop() Cache {
	return nopCache{}
}

type nopCache struct{}

func (nopCache) GetOrCompute(ctx context.Context, key string, ttl time.Duration, compute func(ctx context.Context) (string, error)) (string, bool, error) {
	v, err := compute(ctx)
	return v, false, err
}
