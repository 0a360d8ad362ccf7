package engine

import (
	"time"

	"github.com/krisalay/mvr/expiration"
	"github.com/krisalay/mvr/types"
)

/*
CacheEngine is the policy layer of the cache.
It decides the behavior around entries, NOT where they are stored.

It decides:
- When an entry is expired (against the injected clock)
- How timestamps and hit counts change on reads and writes
- Which metrics are recorded

It does NOT:
- Store data
- Handle locking
- Decide eviction order
*/
type CacheEngine struct {

	// Expiration controls when an entry is considered stale.
	// If nil, entries never expire.
	Expiration expiration.Strategy

	// Clock is the time source for every timestamp and TTL decision.
	Clock types.Clock

	// Metrics receives hit/miss/eviction/expiry events.
	Metrics types.Metrics
}

/*
NewCacheEngine creates a CacheEngine.
A nil clock becomes the system clock and nil metrics become NoopMetrics,
so callers never nil-check either.
*/
func NewCacheEngine(exp expiration.Strategy, clock types.Clock, metrics types.Metrics) *CacheEngine {
	if clock == nil {
		clock = types.SystemClock{}
	}
	if metrics == nil {
		metrics = types.NoopMetrics{}
	}
	return &CacheEngine{
		Expiration: exp,
		Clock:      clock,
		Metrics:    metrics,
	}
}

// Now reads the engine's clock.
func (e *CacheEngine) Now() time.Time {
	return e.Clock.Now()
}

// IsExpired checks ent against the configured strategy at the current time.
func (e *CacheEngine) IsExpired(ent *types.CacheEntry) bool {
	return e.ExpiredAt(ent, e.Now())
}

// ExpiredAt is IsExpired against a fixed instant, so a scan over many
// entries judges all of them at the same time.
func (e *CacheEngine) ExpiredAt(ent *types.CacheEntry, now time.Time) bool {
	return e.Expiration != nil && e.Expiration.IsExpired(ent, now)
}

/*
OnRead is called every time the cache returns a valid entry.
It bumps the entry's hit count and access time and lets sliding
expiration strategies push the deadline forward.
*/
func (e *CacheEngine) OnRead(ent *types.CacheEntry) {
	now := e.Now()
	ent.HitCount++
	ent.LastAccessedAt = now
	if e.Expiration != nil {
		e.Expiration.OnAccess(ent, now)
	}
}

/*
OnWrite stamps a freshly written entry: insertion time, access time and
(through the strategy) its expiry deadline. Hit count starts at zero.
*/
func (e *CacheEngine) OnWrite(ent *types.CacheEntry) {
	now := e.Now()
	ent.InsertedAt = now
	ent.LastAccessedAt = now
	ent.HitCount = 0
	if e.Expiration != nil {
		e.Expiration.OnWrite(ent, now)
	}
}
