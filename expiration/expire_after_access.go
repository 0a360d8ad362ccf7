package expiration

import (
	"time"

	"github.com/krisalay/mvr/types"
)

/*
ExpireAfterAccess implements "sliding TTL": every read pushes the expiry
forward by TTL. As long as a name keeps getting resolved it stays cached;
if nobody touches it for TTL, it expires.
*/
type ExpireAfterAccess struct {
	TTL time.Duration
}

func (e *ExpireAfterAccess) IsExpired(ent *types.CacheEntry, now time.Time) bool {
	return expired(ent, now)
}

func (e *ExpireAfterAccess) OnAccess(ent *types.CacheEntry, now time.Time) {
	if e.TTL > 0 {
		ent.ExpireAt = now.Add(e.TTL)
	}
}

func (e *ExpireAfterAccess) OnWrite(ent *types.CacheEntry, now time.Time) {
	ent.ExpireAt = time.Time{}
	if e.TTL > 0 {
		ent.ExpireAt = now.Add(e.TTL)
	}
}
