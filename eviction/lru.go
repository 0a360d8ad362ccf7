// This file implements LRU eviction.

package eviction

// lru tracks keys by last use. Both reads and writes count as use.
type lru struct {
	order list
}

func newLRU() *lru {
	return &lru{order: newList()}
}

// OnGet marks k as most recently used.
func (l *lru) OnGet(k string) {
	if _, ok := l.order.nodes[k]; ok {
		l.order.touch(k)
	}
}

// OnPut marks k as most recently used, tracking it if new.
func (l *lru) OnPut(k string) { l.order.touch(k) }

// Evict drops the least recently used key.
func (l *lru) Evict() string { return l.order.popBack() }

func (l *lru) Remove(k string) { l.order.drop(k) }

func (l *lru) Reset() { l.order.reset() }

func (l *lru) Len() int { return l.order.len() }
