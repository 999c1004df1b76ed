package weather

import (
	"context"
	"fmt"
	"sync"
	"time"
)

// DefaultCacheTTL is the freshness window for cached snapshots.
const DefaultCacheTTL = 10 * time.Minute

// Cache stores snapshots keyed by quantized coordinates.
type Cache interface {
	Get(ctx context.Context, key string) (Snapshot, bool, error)
	Put(ctx context.Context, key string, snapshot Snapshot) error
}

// CacheKey rounds both coordinates to two decimals (~1.1 km) so nearby points share an entry.
func CacheKey(lat, lon float64) string {
	return fmt.Sprintf("%.2f,%.2f", lat, lon)
}

// Fresh reports whether a snapshot fetched at fetchedAt is still inside the ttl window.
func Fresh(fetchedAt, now time.Time, ttl time.Duration) bool {
	if fetchedAt.IsZero() {
		return false
	}
	return now.Sub(fetchedAt) < ttl
}

// MemoryCache is the process-local cache. Keys are never swept; expired entries are
// dropped when read.
// TODO: bound the key space (LRU or periodic sweep) before running behind a public load balancer.
type MemoryCache struct {
	mu      sync.RWMutex
	entries map[string]Snapshot
	ttl     time.Duration
	now     func() time.Time
}

// NewMemoryCache constructs a cache with the given freshness window.
func NewMemoryCache(ttl time.Duration) *MemoryCache {
	if ttl <= 0 {
		ttl = DefaultCacheTTL
	}
	return &MemoryCache{
		entries: make(map[string]Snapshot),
		ttl:     ttl,
		now:     time.Now,
	}
}

// Get implements Cache.
func (c *MemoryCache) Get(_ context.Context, key string) (Snapshot, bool, error) {
	c.mu.RLock()
	snapshot, ok := c.entries[key]
	c.mu.RUnlock()
	if !ok {
		return Snapshot{}, false, nil
	}
	if !Fresh(snapshot.FetchedAt, c.now(), c.ttl) {
		c.mu.Lock()
		if current, still := c.entries[key]; still && current.FetchedAt.Equal(snapshot.FetchedAt) {
			delete(c.entries, key)
		}
		c.mu.Unlock()
		return Snapshot{}, false, nil
	}
	return snapshot, true, nil
}

// Put implements Cache.
func (c *MemoryCache) Put(_ context.Context, key string, snapshot Snapshot) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.entries[key] = snapshot
	return nil
}

// Len reports the number of stored keys, including expired ones not yet read.
func (c *MemoryCache) Len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.entries)
}

var _ Cache = (*MemoryCache)(nil)
