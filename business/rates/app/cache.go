package app

import (
	"time"

	"github.com/patrickmn/go-cache"
	"golang.org/x/sync/singleflight"

	"github.com/ChiaviniK/ComexioCase/business/rates/domain"
)

// RateCache holds one ExchangeRate per pair for a fixed validity window.
// Reads are concurrent; a miss is filled by exactly one loader per key while
// other callers wait for and share its result.
type RateCache struct {
	store *cache.Cache
	group singleflight.Group
	ttl   time.Duration
}

// NewRateCache creates a cache whose entries expire after ttl. A ttl of zero
// disables storage but still collapses concurrent loads.
func NewRateCache(ttl time.Duration) *RateCache {
	cleanup := 2 * ttl
	if cleanup <= 0 {
		cleanup = time.Minute
	}
	return &RateCache{
		store: cache.New(ttl, cleanup),
		ttl:   ttl,
	}
}

// TTL returns the validity window.
func (c *RateCache) TTL() time.Duration {
	return c.ttl
}

// Get returns the cached rate for key if it has not expired.
func (c *RateCache) Get(key string) (domain.ExchangeRate, bool) {
	v, ok := c.store.Get(key)
	if !ok {
		return domain.ExchangeRate{}, false
	}
	return v.(domain.ExchangeRate), true
}

// GetOrLoad returns the cached rate or runs load once and caches its result.
// The bool reports a cache hit.
func (c *RateCache) GetOrLoad(key string, load func() domain.ExchangeRate) (domain.ExchangeRate, bool) {
	if r, ok := c.Get(key); ok {
		return r, true
	}

	v, _, _ := c.group.Do(key, func() (any, error) {
		// A caller that lost the race may arrive after the winner stored.
		if r, ok := c.Get(key); ok {
			return r, nil
		}
		r := load()
		if c.ttl > 0 {
			c.store.Set(key, r, c.ttl)
		}
		return r, nil
	})
	return v.(domain.ExchangeRate), false
}

// Invalidate drops the entry for key.
func (c *RateCache) Invalidate(key string) {
	c.store.Delete(key)
}
