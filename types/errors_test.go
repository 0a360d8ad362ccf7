package types_test

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/krisalay/mvr/types"
)

func TestErrorMessages(t *testing.T) {
	tests := []struct {
		err  *types.Error
		want string
	}{
		{types.InvalidName("a/b"), `invalid name format: "a/b" (expected @namespace/package or @namespace/package::module::Type)`},
		{types.NotFound("@a/b"), `"@a/b" not found in registry`},
		{types.RateLimited(42 * time.Second), "rate limit exceeded, try again in 42 seconds"},
		{types.Timeout(30*time.Second, nil), "request timed out after 30 seconds"},
		{types.ServerError(503, "down"), "server error: 503 - down"},
		{types.Network(errors.New("refused")), "request failed: refused"},
		{types.ConfigError("timeout must be positive"), "invalid configuration: timeout must be positive"},
		{types.ConcurrencyExceeded(10, nil), "too many concurrent requests, maximum allowed: 10"},
	}

	for _, tt := range tests {
		t.Run(tt.err.Kind.String(), func(t *testing.T) {
			assert.Equal(t, tt.want, tt.err.Error())
		})
	}
}

func TestSentinelsMatchByKind(t *testing.T) {
	err := fmt.Errorf("resolving: %w", types.NotFound("@a/b"))

	assert.ErrorIs(t, err, types.ErrNotFound)
	assert.NotErrorIs(t, err, types.ErrInvalidName)
	assert.Equal(t, types.KindNotFound, types.KindOf(err))
	assert.Equal(t, types.KindUnknown, types.KindOf(errors.New("plain")))
}

func TestUnwrapReachesCause(t *testing.T) {
	err := types.Timeout(time.Second, context.DeadlineExceeded)
	assert.ErrorIs(t, err, context.DeadlineExceeded)
	assert.ErrorIs(t, err, types.ErrTimeout)

	cause := errors.New("bad duration")
	cfg := types.ConfigError("cacheTTL: %w", cause)
	assert.ErrorIs(t, cfg, cause)
	assert.Equal(t, "invalid configuration: cacheTTL: bad duration", cfg.Error())
}

func TestRetryability(t *testing.T) {
	retryable := []*types.Error{
		types.Network(errors.New("x")),
		types.Timeout(time.Second, nil),
		types.RateLimited(time.Second),
		types.ServerError(500, ""),
		types.ServerError(503, ""),
	}
	for _, err := range retryable {
		assert.True(t, err.IsRetryable(), err.Kind.String())
	}

	final := []*types.Error{
		types.InvalidName("x"),
		types.NotFound("x"),
		types.ConfigError("x"),
		types.ConcurrencyExceeded(1, nil),
		types.Serialization(errors.New("x")),
		types.CacheFailure(errors.New("x")),
		types.ServerError(400, ""),
	}
	for _, err := range final {
		assert.False(t, err.IsRetryable(), err.Kind.String())
	}

	assert.False(t, types.IsRetryable(errors.New("plain")))
}

func TestRetryDelay(t *testing.T) {
	d, ok := types.RetryDelay(types.RateLimited(7 * time.Second))
	assert.True(t, ok)
	assert.Equal(t, 7*time.Second, d)

	_, ok = types.RetryDelay(types.ServerError(503, ""))
	assert.False(t, ok)

	_, ok = types.RetryDelay(errors.New("plain"))
	assert.False(t, ok)
}

func TestClientErrors(t *testing.T) {
	assert.True(t, types.NotFound("x").IsClientError())
	assert.True(t, types.InvalidName("x").IsClientError())
	assert.True(t, types.ServerError(422, "").IsClientError())
	assert.False(t, types.ServerError(500, "").IsClientError())
	assert.False(t, types.Network(nil).IsClientError())
	assert.True(t, types.RateLimited(0).IsRateLimited())
}

func TestOutcome(t *testing.T) {
	assert.Equal(t, "success", types.Outcome(nil))
	assert.Equal(t, "not_found", types.Outcome(types.NotFound("@a/b")))
	assert.Equal(t, "rate_limited", types.Outcome(fmt.Errorf("wrapped: %w", types.RateLimited(time.Second))))
	assert.Equal(t, "unknown", types.Outcome(errors.New("plain")))
}
