package tenant

import (
	"context"
	"sync"
	"time"
)

const (
	DefaultCacheTTL        = 5 * time.Minute
	DefaultCacheMaxEntries = 1000
)

// Cache holds tenant records between requests.
type Cache interface {
	Get(ctx context.Context, clientID string) (*Record, bool)
	Set(ctx context.Context, clientID string, rec *Record)
}

type cacheEntry struct {
	rec       *Record
	expiresAt time.Time
}

// MemoryCache is an in-process Cache with a fixed TTL and entry bound.
// The clock is injected so expiry can be tested.
type MemoryCache struct {
	mu         sync.Mutex
	entries    map[string]cacheEntry
	ttl        time.Duration
	maxEntries int
	now        func() time.Time
}

func NewMemoryCache(ttl time.Duration, maxEntries int, now func() time.Time) *MemoryCache {
	if ttl <= 0 {
		ttl = DefaultCacheTTL
	}
	if maxEntries <= 0 {
		maxEntries = DefaultCacheMaxEntries
	}
	if now == nil {
		now = time.Now
	}
	return &MemoryCache{
		entries:    make(map[string]cacheEntry),
		ttl:        ttl,
		maxEntries: maxEntries,
		now:        now,
	}
}

func (c *MemoryCache) Get(_ context.Context, clientID string) (*Record, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	e, ok := c.entries[clientID]
	if !ok {
		return nil, false
	}
	if !c.now().Before(e.expiresAt) {
		delete(c.entries, clientID)
		return nil, false
	}
	return e.rec, true
}

func (c *MemoryCache) Set(_ context.Context, clientID string, rec *Record) {
	if rec == nil {
		return
	}
	c.mu.Lock()
	defer c.mu.Unlock()

	if _, exists := c.entries[clientID]; !exists && len(c.entries) >= c.maxEntries {
		c.sweepLocked()
		if len(c.entries) >= c.maxEntries {
			c.evictOldestLocked()
		}
	}
	c.entries[clientID] = cacheEntry{rec: rec, expiresAt: c.now().Add(c.ttl)}
}

// Sweep drops expired entries and returns how many were removed.
func (c *MemoryCache) Sweep() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.sweepLocked()
}

func (c *MemoryCache) Len() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.entries)
}

func (c *MemoryCache) sweepLocked() int {
	now := c.now()
	removed := 0
	for id, e := range c.entries {
		if !now.Before(e.expiresAt) {
			delete(c.entries, id)
			removed++
		}
	}
	return removed
}

func (c *MemoryCache) evictOldestLocked() {
	var (
		oldestID string
		oldestAt time.Time
	)
	for id, e := range c.entries {
		if oldestID == "" || e.expiresAt.Before(oldestAt) {
			oldestID, oldestAt = id, e.expiresAt
		}
	}
	delete(c.entries, oldestID)
}
