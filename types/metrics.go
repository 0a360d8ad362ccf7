package types

import "time"

// This file defines how the resolver reports what it is doing.

/*
Metrics is the set of events the cache and resolver emit.
Each method represents one event; implementations must be safe for concurrent use.
*/
type Metrics interface {

	// Hit is called when the cache returns a valid entry.
	Hit()

	// Miss is called when the cache has no valid entry for a key (absent or expired).
	Miss()

	// Eviction is called when a key is removed because the cache is at capacity.
	Eviction()

	// Expire is called for every entry removed by a cleanup sweep.
	Expire()

	// Fetch is called once per remote lookup with its outcome
	// (see Outcome) and how long the lookup took.
	Fetch(outcome string, d time.Duration)
}

/*
NoopMetrics ignores every event. It is the default so that the cache and
resolver never have to nil-check their metrics sink.
*/
type NoopMetrics struct{}

func (NoopMetrics) Hit()                        {}
func (NoopMetrics) Miss()                       {}
func (NoopMetrics) Eviction()                   {}
func (NoopMetrics) Expire()                     {}
func (NoopMetrics) Fetch(string, time.Duration) {}

// OutcomeSuccess labels a fetch that produced a value.
const OutcomeSuccess = "success"

// Outcome is the Fetch label for a lookup that ended with err:
// OutcomeSuccess, or the snake_case name of the error's Kind.
func Outcome(err error) string {
	if err == nil {
		return OutcomeSuccess
	}
	return KindOf(err).String()
}
