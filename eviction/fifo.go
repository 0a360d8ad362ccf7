// This file implements FIFO eviction.

package eviction

// fifo tracks keys by write order only. Reads never change the order;
// overwriting a key re-queues it as the newest write.
type fifo struct {
	order list
}

func newFIFO() *fifo {
	return &fifo{order: newList()}
}

// OnGet is a no-op: FIFO ignores reads completely.
func (f *fifo) OnGet(string) {}

func (f *fifo) OnPut(k string) { f.order.touch(k) }

// Evict drops the key with the oldest write.
func (f *fifo) Evict() string { return f.order.popBack() }

func (f *fifo) Remove(k string) { f.order.drop(k) }

func (f *fifo) Reset() { f.order.reset() }

func (f *fifo) Len() int { return f.order.len() }
