package eviction_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/krisalay/mvr/eviction"
)

func TestLRUEvictsLeastRecentlyUsed(t *testing.T) {
	p := eviction.NewEvictionPolicy(eviction.LRU)
	p.OnPut("a")
	p.OnPut("b")
	p.OnPut("c")

	p.OnGet("a") // order (new → old): a c b

	assert.Equal(t, "b", p.Evict())
	assert.Equal(t, "c", p.Evict())
	assert.Equal(t, "a", p.Evict())
	assert.Equal(t, "", p.Evict())
}

func TestLRUPutRefreshesExistingKey(t *testing.T) {
	p := eviction.NewEvictionPolicy(eviction.LRU)
	p.OnPut("a")
	p.OnPut("b")
	p.OnPut("a")

	assert.Equal(t, 2, p.Len())
	assert.Equal(t, "b", p.Evict())
}

func TestLRUGetOnUntrackedKeyIsIgnored(t *testing.T) {
	p := eviction.NewEvictionPolicy(eviction.LRU)
	p.OnGet("ghost")
	assert.Equal(t, 0, p.Len())
}

func TestRemoveKeepsOrderOfOthers(t *testing.T) {
	p := eviction.NewEvictionPolicy(eviction.LRU)
	for _, k := range []string{"a", "b", "c", "d"} {
		p.OnPut(k)
	}
	p.Remove("b")
	p.Remove("missing")

	assert.Equal(t, 3, p.Len())
	assert.Equal(t, "a", p.Evict())
	assert.Equal(t, "c", p.Evict())
	assert.Equal(t, "d", p.Evict())
}

func TestFIFOIgnoresReads(t *testing.T) {
	p := eviction.NewEvictionPolicy(eviction.FIFO)
	p.OnPut("a")
	p.OnPut("b")
	p.OnGet("a")

	assert.Equal(t, "a", p.Evict())
	assert.Equal(t, "b", p.Evict())
}

func TestReset(t *testing.T) {
	for _, typ := range []eviction.PolicyType{eviction.LRU, eviction.FIFO} {
		p := eviction.NewEvictionPolicy(typ)
		p.OnPut("a")
		p.OnPut("b")
		p.Reset()
		assert.Equal(t, 0, p.Len(), typ)
		assert.Equal(t, "", p.Evict(), typ)
	}
}
