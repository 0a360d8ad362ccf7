package types

import "time"

// CacheEntry is one resolved name held by the cache.
// Timestamps are mutated in place under the cache lock.
type CacheEntry struct {
	Key            string
	Value          string
	InsertedAt     time.Time
	LastAccessedAt time.Time
	ExpireAt       time.Time // zero => never expires
	HitCount       uint64
}
