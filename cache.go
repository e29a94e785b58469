package sentimen

import (
	"time"

	gocache "github.com/patrickmn/go-cache"
)

// Cache memoizes normalized text by the exact raw input.
type Cache interface {
	Get(key string) (string, bool)
	Set(key, value string)
}

// MemoryCache is an in-process Cache safe for concurrent use.
type MemoryCache struct {
	items *gocache.Cache
	ttl   time.Duration
}

// NewMemoryCache returns a cache whose entries expire after ttl. A ttl of
// zero or less keeps entries for the life of the process.
func NewMemoryCache(ttl time.Duration) *MemoryCache {
	if ttl <= 0 {
		return &MemoryCache{items: gocache.New(gocache.NoExpiration, 0), ttl: gocache.NoExpiration}
	}
	return &MemoryCache{items: gocache.New(ttl, 2*ttl), ttl: ttl}
}

// Get returns the cached value for key.
func (c *MemoryCache) Get(key string) (string, bool) {
	v, ok := c.items.Get(key)
	if !ok {
		return "", false
	}
	s, ok := v.(string)
	return s, ok
}

// Set stores value under key.
func (c *MemoryCache) Set(key, value string) {
	c.items.Set(key, value, c.ttl)
}

// Len returns the number of cached entries, expired ones included until
// they are cleaned up.
func (c *MemoryCache) Len() int {
	return c.items.ItemCount()
}

// Flush drops every entry.
func (c *MemoryCache) Flush() {
	c.items.Flush()
}
