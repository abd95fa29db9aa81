package poster

import (
	"fmt"
	"time"

	"github.com/dgraph-io/ristretto/v2"
)

// Cache stores resolved posters by movie id.
type Cache interface {
	Get(movieID int64) (Resolution, bool)
	Set(movieID int64, res Resolution)
}

// MemoryCache is a bounded in-process Cache with per-entry expiry, backed by ristretto.
type MemoryCache struct {
	cache *ristretto.Cache[int64, Resolution]
	ttl   time.Duration
}

// NewMemoryCache creates a cache holding at most maxEntries posters for ttl each.
func NewMemoryCache(maxEntries int64, ttl time.Duration) (*MemoryCache, error) {
	if maxEntries < 1 {
		return nil, fmt.Errorf("cache max entries must be positive, got %d", maxEntries)
	}

	c, err := ristretto.NewCache(&ristretto.Config[int64, Resolution]{
		NumCounters: maxEntries * 10,
		MaxCost:     maxEntries,
		BufferItems: 64,
	})
	if err != nil {
		return nil, fmt.Errorf("create poster cache: %w", err)
	}

	return &MemoryCache{cache: c, ttl: ttl}, nil
}

// Get returns the cached resolution for movieID, if present and not expired.
func (c *MemoryCache) Get(movieID int64) (Resolution, bool) {
	return c.cache.Get(movieID)
}

// Set stores res with a cost of one entry. The write is applied before Set returns.
func (c *MemoryCache) Set(movieID int64, res Resolution) {
	c.cache.SetWithTTL(movieID, res, 1, c.ttl)
	c.cache.Wait()
}

// Close releases the cache's background goroutines.
func (c *MemoryCache) Close() {
	c.cache.Close()
}
