// This file defines how cache entries expire over time.

package expiration

import (
	"time"

	"github.com/krisalay/mvr/types"
)

/*
Strategy decides when a cache entry stops being valid.

Expiry is lazy: the cache asks IsExpired on every read and during a cleanup
sweep, and nothing is removed in the background.
*/
type Strategy interface {

	// IsExpired reports whether the entry is stale at now.
	IsExpired(*types.CacheEntry, time.Time) bool

	// OnAccess is called after a successful read.
	OnAccess(*types.CacheEntry, time.Time)

	// OnWrite is called when the entry is inserted or overwritten.
	OnWrite(*types.CacheEntry, time.Time)
}

// expired is shared by both strategies: an entry is stale once now has
// reached ExpireAt, i.e. valid iff age < ttl.
func expired(ent *types.CacheEntry, now time.Time) bool {
	return !ent.ExpireAt.IsZero() && !now.Before(ent.ExpireAt)
}
