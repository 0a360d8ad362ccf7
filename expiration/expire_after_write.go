package expiration

import (
	"time"

	"github.com/krisalay/mvr/types"
)

/*
ExpireAfterWrite gives every entry a fixed lifetime counted from its last
write. Reads never extend it. This is the resolver's default: a resolved
address is re-checked with the registry once TTL has passed, however hot it is.

A zero TTL disables expiry.
*/
type ExpireAfterWrite struct {
	TTL time.Duration
}

func (e *ExpireAfterWrite) IsExpired(ent *types.CacheEntry, now time.Time) bool {
	return expired(ent, now)
}

func (e *ExpireAfterWrite) OnAccess(*types.CacheEntry, time.Time) {}

func (e *ExpireAfterWrite) OnWrite(ent *types.CacheEntry, now time.Time) {
	ent.ExpireAt = time.Time{}
	if e.TTL > 0 {
		ent.ExpireAt = now.Add(e.TTL)
	}
}
