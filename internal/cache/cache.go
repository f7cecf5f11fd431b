// internal/cache/cache.go
package cache

import (
	"context"
	"sync"
	"time"
)

type entry struct {
	value     interface{}
	expiresAt time.Time
}

// InMemoryCache is a TTL map with a background janitor. It backs single-use
// nonces and other short-lived per-instance state.
type InMemoryCache struct {
	mu          sync.RWMutex
	items       map[string]entry
	ttl         time.Duration
	cleanupFreq time.Duration
	done        chan struct{}
	once        sync.Once
}

func NewInMemoryCache(ttl, cleanupFreq time.Duration) *InMemoryCache {
	return &InMemoryCache{
		items:       make(map[string]entry),
		ttl:         ttl,
		cleanupFreq: cleanupFreq,
		done:        make(chan struct{}),
	}
}

func (c *InMemoryCache) Set(ctx context.Context, key string, value interface{}) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.items[key] = entry{value: value, expiresAt: time.Now().Add(c.ttl)}
}

func (c *InMemoryCache) Get(ctx context.Context, key string) (interface{}, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	e, ok := c.items[key]
	if !ok || time.Now().After(e.expiresAt) {
		return nil, false
	}
	return e.value, true
}

func (c *InMemoryCache) Delete(ctx context.Context, key string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	delete(c.items, key)
}

// StartCleanup launches the janitor goroutine.
func (c *InMemoryCache) StartCleanup(ctx context.Context) {
	ticker := time.NewTicker(c.cleanupFreq)
	go func() {
		defer ticker.Stop()
		for {
			select {
			case <-ticker.C:
				now := time.Now()
				c.mu.Lock()
				for k, e := range c.items {
					if now.After(e.expiresAt) {
						delete(c.items, k)
					}
				}
				c.mu.Unlock()
			case <-c.done:
				return
			case <-ctx.Done():
				return
			}
		}
	}()
}

// StopCleanup stops the janitor. Safe to call more than once.
func (c *InMemoryCache) StopCleanup() {
	c.once.Do(func() { close(c.done) })
}
