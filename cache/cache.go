// Package cache is the bounded TTL+LRU store of resolved registry names.
//
// One map and one mutex: every operation, including eviction and the stats
// scan, runs entirely under the same lock, so no caller can observe a
// half-applied put or eviction.
package cache

import (
	"sync"
	"time"

	"github.com/krisalay/mvr/engine"
	"github.com/krisalay/mvr/eviction"
	"github.com/krisalay/mvr/types"
)

// DefaultMaxSize is used when New is given a non-positive capacity.
const DefaultMaxSize = 1000

/*
Cache connects:
- entry storage
- eviction order
- expiration and clock (through the engine)
- metrics
*/
type Cache struct {
	mu sync.Mutex

	// entries holds every stored entry, expired or not.
	// Expired entries stay until a cleanup sweep, an overwrite or an eviction.
	entries map[string]*types.CacheEntry

	// eviction tracks use order for capacity eviction.
	eviction eviction.Policy

	// engine holds TTL, clock and metrics rules.
	engine *engine.CacheEngine

	maxSize int

	// hits and misses are global counters, reset by Clear.
	hits   uint64
	misses uint64
}

// New creates a cache holding at most maxSize entries.
func New(maxSize int, policy eviction.PolicyType, eng *engine.CacheEngine) *Cache {
	if maxSize <= 0 {
		maxSize = DefaultMaxSize
	}
	if eng == nil {
		eng = engine.NewCacheEngine(nil, nil, nil)
	}
	return &Cache{
		entries:  make(map[string]*types.CacheEntry),
		eviction: eviction.NewEvictionPolicy(policy),
		engine:   eng,
		maxSize:  maxSize,
	}
}

/*
Get returns the value stored under key.

BEHAVIOR:
---------
  - Absent or expired → ("", false). An expired entry is NOT deleted here.
  - Valid → the value; the entry becomes most recently used, its hit count
    and the global hit counter go up.
*/
func (c *Cache) Get(key string) (string, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	ent, ok := c.entries[key]
	if !ok || c.engine.IsExpired(ent) {
		c.misses++
		c.engine.Metrics.Miss()
		return "", false
	}

	c.hits++
	c.engine.OnRead(ent)
	c.eviction.OnGet(key)
	c.engine.Metrics.Hit()
	return ent.Value, true
}

/*
Put stores value under key, stamped with the current time.

BEHAVIOR:
---------
  - Existing key (expired or not): overwritten in place, becomes most recent.
  - New key with the cache at capacity: the least recently used entry is
    evicted first.
*/
func (c *Cache) Put(key, value string) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if _, exists := c.entries[key]; !exists && len(c.entries) >= c.maxSize {
		if victim := c.eviction.Evict(); victim != "" {
			delete(c.entries, victim)
			c.engine.Metrics.Eviction()
		}
	}

	ent := &types.CacheEntry{Key: key, Value: value}
	c.engine.OnWrite(ent)
	c.entries[key] = ent
	c.eviction.OnPut(key)
}

// Remove deletes key immediately. It reports whether the key was stored.
func (c *Cache) Remove(key string) bool {
	c.mu.Lock()
	defer c.mu.Unlock()

	if _, ok := c.entries[key]; !ok {
		return false
	}
	delete(c.entries, key)
	c.eviction.Remove(key)
	return true
}

/*
CleanupExpired removes every entry that is expired right now and returns
how many were removed. Surviving entries keep their recency order.
*/
func (c *Cache) CleanupExpired() int {
	c.mu.Lock()
	defer c.mu.Unlock()

	now := c.engine.Now()
	removed := 0
	for key, ent := range c.entries {
		if !c.engine.ExpiredAt(ent, now) {
			continue
		}
		delete(c.entries, key)
		c.eviction.Remove(key)
		c.engine.Metrics.Expire()
		removed++
	}
	return removed
}

// Clear drops every entry and resets the hit and miss counters.
func (c *Cache) Clear() {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.entries = make(map[string]*types.CacheEntry)
	c.eviction.Reset()
	c.hits = 0
	c.misses = 0
}

/*
TTL returns the remaining lifetime of key.

RETURN VALUES (Redis-compatible semantics):
-------------------------------------------
> 0   : duration remaining before expiration
-1    : key exists but never expires
-2    : key does not exist or is already expired
*/
func (c *Cache) TTL(key string) time.Duration {
	c.mu.Lock()
	defer c.mu.Unlock()

	ent, ok := c.entries[key]
	if !ok {
		return -2
	}
	now := c.engine.Now()
	if c.engine.ExpiredAt(ent, now) {
		return -2
	}
	if ent.ExpireAt.IsZero() {
		return -1
	}
	return ent.ExpireAt.Sub(now)
}

// Len is the number of stored entries, expired ones included.
func (c *Cache) Len() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.entries)
}

// MaxSize is the configured capacity.
func (c *Cache) MaxSize() int {
	return c.maxSize
}

// Stats takes a consistent snapshot. Expired entries are counted by scanning
// against the clock at call time.
func (c *Cache) Stats() Stats {
	c.mu.Lock()
	defer c.mu.Unlock()

	now := c.engine.Now()
	expired := 0
	for _, ent := range c.entries {
		if c.engine.ExpiredAt(ent, now) {
			expired++
		}
	}
	return Stats{
		TotalEntries:   len(c.entries),
		ExpiredEntries: expired,
		ValidEntries:   len(c.entries) - expired,
		TotalHits:      c.hits,
		TotalMisses:    c.misses,
		MaxSize:        c.maxSize,
	}
}
