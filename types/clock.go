package types

import "time"

// Clock is the time source used for TTL decisions.
// Tests inject their own to move time forward deterministically.
type Clock interface {
	Now() time.Time
}

// SystemClock reads the wall clock (with Go's monotonic reading attached).
type SystemClock struct{}

func (SystemClock) Now() time.Time { return time.Now() }

// ClockFunc adapts a function to the Clock interface.
type ClockFunc func() time.Time

func (f ClockFunc) Now() time.Time { return f() }
