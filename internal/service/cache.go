// internal/service/cache.go
package service

import (
	"context"
	"time"

	"github.com/beatbookhq/beatbook/internal/cache"
	"github.com/beatbookhq/beatbook/internal/domain"
)

// CacheService wraps the in-memory TTL cache. Its main consumer is the
// single-use signup nonce flow.
type CacheService struct {
	cache *cache.InMemoryCache
}

// CacheConfig holds configuration for the cache service
type CacheConfig struct {
	TTL         time.Duration
	CleanupFreq time.Duration
}

// NewCacheService creates a new cache service
func NewCacheService(config CacheConfig) *CacheService {
	c := cache.NewInMemoryCache(config.TTL, config.CleanupFreq)
	c.StartCleanup(context.Background())

	return &CacheService{cache: c}
}

// Set stores a value in the cache
func (s *CacheService) Set(ctx context.Context, key string, value interface{}) error {
	if key == "" {
		return domain.ErrInvalidInput
	}
	s.cache.Set(ctx, key, value)
	return nil
}

// CheckNonce consumes a nonce: it reports whether the nonce exists and
// removes it, so a nonce can be spent at most once.
func (s *CacheService) CheckNonce(ctx context.Context, nonce string) (bool, error) {
	if nonce == "" {
		return false, domain.ErrInvalidInput
	}

	_, found := s.cache.Get(ctx, nonce)
	if !found {
		return false, nil
	}

	s.cache.Delete(ctx, nonce)
	return true, nil
}

// Delete removes a value from the cache
func (s *CacheService) Delete(ctx context.Context, key string) error {
	if key == "" {
		return domain.ErrInvalidInput
	}
	s.cache.Delete(ctx, key)
	return nil
}

// Close stops the cleanup routine
func (s *CacheService) Close() {
	s.cache.StopCleanup()
}
