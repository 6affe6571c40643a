package cache

import (
	"sync"
	"time"

	"github.com/spems-app/spems_backend/internal/core/domain"
)

type entry struct {
	snapshot  domain.RateSnapshot
	expiresAt time.Time
}

// MemoryCache is an in-process TTL cache of rate snapshots keyed by base
// currency. Expiry is lazy: an expired entry stays in the map but Lookup
// treats it as absent until the next Store overwrites it. There is no
// background sweeper; the key space is bounded by the supported currency set.
type MemoryCache struct {
	mu      sync.RWMutex
	entries map[string]entry
	ttl     time.Duration
	now     func() time.Time
}

// NewMemoryCache creates a cache whose entries expire ttl after the
// snapshot's fetch timestamp.
func NewMemoryCache(ttl time.Duration) *MemoryCache {
	return &MemoryCache{
		entries: make(map[string]entry),
		ttl:     ttl,
		now:     time.Now,
	}
}

// NewMemoryCacheWithClock is like NewMemoryCache with an injected clock,
// used by tests to force expiry without sleeping.
func NewMemoryCacheWithClock(ttl time.Duration, now func() time.Time) *MemoryCache {
	c := NewMemoryCache(ttl)
	c.now = now
	return c
}

// Lookup returns the cached snapshot for base, or false if no entry exists
// or the entry has expired. It never blocks on I/O.
func (c *MemoryCache) Lookup(base string) (domain.RateSnapshot, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()

	e, ok := c.entries[base]
	if !ok {
		return domain.RateSnapshot{}, false
	}
	if !c.now().Before(e.expiresAt) {
		return domain.RateSnapshot{}, false
	}
	return e.snapshot, true
}

// Store replaces any existing entry for the snapshot's base currency.
// Last write wins; the expiry instant derives from the snapshot's own
// fetch timestamp, not the store time.
func (c *MemoryCache) Store(base string, snapshot domain.RateSnapshot) {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.entries[base] = entry{
		snapshot:  snapshot,
		expiresAt: snapshot.FetchedAt.Add(c.ttl),
	}
}
