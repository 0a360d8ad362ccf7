package mvr

import (
	"github.com/krisalay/mvr/eviction"
	"github.com/krisalay/mvr/expiration"
	"github.com/krisalay/mvr/types"
)

// Option customizes a Resolver beyond what Config describes.
type Option func(*options)

type options struct {
	clock      types.Clock
	metrics    types.Metrics
	policy     eviction.PolicyType
	expiration expiration.Strategy
	coalesce   bool
}

func defaultOptions() *options {
	return &options{
		clock:   types.SystemClock{},
		metrics: types.NoopMetrics{},
		policy:  eviction.LRU,
	}
}

// WithClock sets the time source for TTL decisions and fetch timing.
func WithClock(c types.Clock) Option {
	return func(o *options) {
		if c != nil {
			o.clock = c
		}
	}
}

// WithMetrics sets the sink for cache and fetch events.
func WithMetrics(m types.Metrics) Option {
	return func(o *options) {
		if m != nil {
			o.metrics = m
		}
	}
}

// WithEvictionPolicy picks the capacity eviction order. Default LRU.
func WithEvictionPolicy(p eviction.PolicyType) Option {
	return func(o *options) {
		o.policy = p
	}
}

// WithExpiration replaces the default expire-after-write strategy.
// The strategy carries its own TTL; Config.CacheTTL is not applied to it.
func WithExpiration(s expiration.Strategy) Option {
	return func(o *options) {
		o.expiration = s
	}
}

/*
WithCoalescing makes concurrent misses on the same name share one fetch.

Off by default: every miss acquires its own slot and performs its own fetch.
When on, the waiters receive the result (or error) of the call that got there
first, including a failure caused by that caller's own context.
*/
func WithCoalescing(enabled bool) Option {
	return func(o *options) {
		o.coalesce = enabled
	}
}
