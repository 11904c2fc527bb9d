package utils

import (
	"log"
	"time"

	lru "github.com/hashicorp/golang-lru/v2"
)

// pageEntry wraps cached render data with its expiry time.
type pageEntry struct {
	data      interface{}
	expiresAt time.Time
}

// PageCache holds rendered contribution pages for a short TTL so the
// unfiltered listing, the landing page of the site, does not hit the
// database on every request. Backed by an LRU so it stays bounded.
type PageCache struct {
	entries *lru.Cache[string, pageEntry]
}

var pageCache *PageCache

// Pages returns the process-wide page cache.
func Pages() *PageCache {
	if pageCache == nil {
		entries, err := lru.New[string, pageEntry](500)
		if err != nil {
			log.Fatalf("Failed to create page cache: %v", err)
		}
		pageCache = &PageCache{entries: entries}
	}
	return pageCache
}

// Put stores render data under key for the given TTL.
func (c *PageCache) Put(key string, data interface{}, ttl time.Duration) {
	c.entries.Add(key, pageEntry{
		data:      data,
		expiresAt: time.Now().Add(ttl),
	})
}

// Lookup returns the cached render data, or nil when absent or expired.
func (c *PageCache) Lookup(key string) interface{} {
	entry, ok := c.entries.Get(key)
	if !ok {
		return nil
	}

	if time.Now().After(entry.expiresAt) {
		c.entries.Remove(key)
		return nil
	}

	return entry.data
}
