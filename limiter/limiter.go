// Package limiter bounds how many registry calls are in flight at once.
//
// Callers are never turned away because of load: Acquire waits until a slot
// frees up. The only way out of the wait is the caller's own context.
package limiter

import (
	"context"
	"sync"
	"sync/atomic"

	"golang.org/x/sync/semaphore"

	"github.com/krisalay/mvr/types"
)

// Limiter is a counting semaphore with an in-flight gauge.
type Limiter struct {
	sem      *semaphore.Weighted
	max      int
	inFlight atomic.Int64
}

// New creates a limiter admitting at most max concurrent holders.
// Values below 1 are raised to 1.
func New(max int) *Limiter {
	if max < 1 {
		max = 1
	}
	return &Limiter{
		sem: semaphore.NewWeighted(int64(max)),
		max: max,
	}
}

/*
Acquire blocks until a slot is free and returns the function that gives it back.

BEHAVIOR:
---------
  - release is safe to call more than once; only the first call frees the slot.
    Callers should `defer release()` right away so panics and early returns
    still free it.
  - If ctx ends while waiting, no slot is taken and the error is
    ConcurrencyExceeded wrapping ctx.Err().
*/
func (l *Limiter) Acquire(ctx context.Context) (release func(), err error) {
	if err := l.sem.Acquire(ctx, 1); err != nil {
		return func() {}, types.ConcurrencyExceeded(l.max, err)
	}
	l.inFlight.Add(1)

	var once sync.Once
	return func() {
		once.Do(func() {
			l.inFlight.Add(-1)
			l.sem.Release(1)
		})
	}, nil
}

// InFlight is the number of slots currently held.
func (l *Limiter) InFlight() int {
	return int(l.inFlight.Load())
}

// Max is the configured number of slots.
func (l *Limiter) Max() int {
	return l.max
}
