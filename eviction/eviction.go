package eviction

/*
This file defines how the cache decides which key to drop when it is full.
*/

/*
Policy is the interface every eviction strategy implements.

The cache calls these hooks while holding its own lock, so implementations
do not need any synchronization of their own.
*/
type Policy interface {

	// OnGet is called after a successful (non-expired) read of a key.
	// LRU moves the key to the most-recently-used position; FIFO ignores it.
	OnGet(string)

	// OnPut is called after a key is inserted or overwritten.
	// A put always counts as fresh use: an existing key is moved to the
	// newest position, a new key is tracked from there.
	OnPut(string)

	// Remove drops a key that left the cache for a reason other than eviction
	// (explicit remove, expiry sweep). It must not reorder the remaining keys.
	Remove(string)

	// Evict picks the victim, stops tracking it and returns it.
	// It returns "" when nothing is tracked.
	Evict() string

	// Reset forgets every key.
	Reset()

	// Len is the number of tracked keys.
	Len() int
}

// PolicyType is a simple identifier for supported eviction strategies.
type PolicyType string

const (
	// LRU (Least Recently Used): evicts the key that has gone longest without a
	// read or a write. Writes are stamped in order, so two keys can never tie.
	LRU PolicyType = "LRU"

	// FIFO (First In First Out): evicts the key with the oldest write,
	// regardless of reads.
	FIFO PolicyType = "FIFO"
)

// NewEvictionPolicy creates the policy for t. Unknown types fall back to LRU.
func NewEvictionPolicy(t PolicyType) Policy {
	switch t {
	case FIFO:
		return newFIFO()
	default:
		return newLRU()
	}
}
