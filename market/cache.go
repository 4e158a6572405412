package market

import (
	"sync"
	"time"

	"github.com/cespare/xxhash/v2"
	"github.com/customs-bot/customs"
)

// SnapshotCache is an in-memory TTL cache of market snapshots keyed by
// the hash of the normalized query URL. It coalesces repeated queries
// for the same vehicle within a short window; nothing is persisted.
type SnapshotCache struct {
	mu      sync.Mutex
	entries map[uint64]cacheEntry
	ttl     time.Duration
	now     func() time.Time
}

type cacheEntry struct {
	snapshot *customs.MarketSnapshot
	storedAt time.Time
}

// NewSnapshotCache creates a cache with the given entry TTL.
func NewSnapshotCache(ttl time.Duration) *SnapshotCache {
	return &SnapshotCache{
		entries: make(map[uint64]cacheEntry),
		ttl:     ttl,
		now:     time.Now,
	}
}

// Get returns the cached snapshot for the query URL, if fresh.
func (c *SnapshotCache) Get(queryURL string) (*customs.MarketSnapshot, bool) {
	key := xxhash.Sum64String(queryURL)

	c.mu.Lock()
	defer c.mu.Unlock()

	entry, ok := c.entries[key]
	if !ok {
		return nil, false
	}
	if c.now().Sub(entry.storedAt) > c.ttl {
		delete(c.entries, key)
		return nil, false
	}
	return entry.snapshot, true
}

// Put stores a snapshot for the query URL.
func (c *SnapshotCache) Put(queryURL string, snapshot *customs.MarketSnapshot) {
	key := xxhash.Sum64String(queryURL)

	c.mu.Lock()
	defer c.mu.Unlock()

	c.entries[key] = cacheEntry{snapshot: snapshot, storedAt: c.now()}
}
