package main

import (
	"context"
	"log/slog"
	"time"

	"github.com/cenkalti/backoff/v5"
	slogcontext "github.com/veqryn/slog-context"

	"github.com/krisalay/mvr/types"
)

/*
withRetry runs op until it succeeds, fails with a non-retryable error, or
has been tried retries+1 times.

The resolver never retries on its own; this is the caller-side policy it
leaves room for:
  - RateLimited waits exactly the server's Retry-After delay
  - other retryable kinds back off exponentially
  - everything else stops immediately
*/
func withRetry[T any](ctx context.Context, retries uint, op func() (T, error)) (T, error) {
	logger := slogcontext.FromCtx(ctx).With(slog.String("realm", "cli"))

	// backoff reports its own wrapper for RetryAfter; keep the classified error
	var last error
	v, err := backoff.Retry(ctx, func() (T, error) {
		v, err := op()
		last = err
		if err == nil {
			return v, nil
		}
		if !types.IsRetryable(err) {
			return v, backoff.Permanent(err)
		}
		if d, ok := types.RetryDelay(err); ok {
			return v, backoff.RetryAfter(int(d / time.Second))
		}
		return v, err
	},
		backoff.WithBackOff(backoff.NewExponentialBackOff()),
		backoff.WithMaxTries(retries+1),
		backoff.WithNotify(func(_ error, next time.Duration) {
			logger.WarnContext(ctx, "retrying", slog.String("kind", types.KindOf(last).String()),
				slog.Duration("in", next), slog.Any("error", last))
		}),
	)
	if err != nil && last != nil {
		return v, last
	}
	return v, err
}
