package types

import (
	"errors"
	"fmt"
	"time"
)

// Kind is the closed set of failure categories a resolution can end in.
type Kind int

const (
	KindUnknown Kind = iota
	KindInvalidName
	KindNotFound
	KindRateLimited
	KindTimeout
	KindServerError
	KindNetwork
	KindSerialization
	KindConfig
	KindCacheFailure
	KindConcurrencyExceeded
)

func (k Kind) String() string {
	switch k {
	case KindInvalidName:
		return "invalid_name"
	case KindNotFound:
		return "not_found"
	case KindRateLimited:
		return "rate_limited"
	case KindTimeout:
		return "timeout"
	case KindServerError:
		return "server_error"
	case KindNetwork:
		return "network"
	case KindSerialization:
		return "serialization"
	case KindConfig:
		return "config"
	case KindCacheFailure:
		return "cache_failure"
	case KindConcurrencyExceeded:
		return "concurrency_exceeded"
	default:
		return "unknown"
	}
}

/*
Error is the single error type returned by the resolver.

Kind selects the variant; only the payload fields of that variant are set:

	InvalidName          Name
	NotFound             Name
	RateLimited          RetryAfter
	Timeout              Timeout
	ServerError          StatusCode, Message
	ConcurrencyExceeded  MaxConcurrent
	Network, Serialization, Config, CacheFailure
	                     Err (and Message for Config)

Callers switch on Kind (or use errors.Is with the Err* sentinels below).
*/
type Error struct {
	Kind          Kind
	Name          string
	RetryAfter    time.Duration
	Timeout       time.Duration
	StatusCode    int
	Message       string
	MaxConcurrent int
	Err           error
}

// Sentinels for errors.Is. They match any *Error of the same Kind.
var (
	ErrInvalidName         = &Error{Kind: KindInvalidName}
	ErrNotFound            = &Error{Kind: KindNotFound}
	ErrRateLimited         = &Error{Kind: KindRateLimited}
	ErrTimeout             = &Error{Kind: KindTimeout}
	ErrServerError         = &Error{Kind: KindServerError}
	ErrNetwork             = &Error{Kind: KindNetwork}
	ErrSerialization       = &Error{Kind: KindSerialization}
	ErrConfig              = &Error{Kind: KindConfig}
	ErrCacheFailure        = &Error{Kind: KindCacheFailure}
	ErrConcurrencyExceeded = &Error{Kind: KindConcurrencyExceeded}
)

func InvalidName(name string) *Error {
	return &Error{Kind: KindInvalidName, Name: name}
}

func NotFound(name string) *Error {
	return &Error{Kind: KindNotFound, Name: name}
}

func RateLimited(retryAfter time.Duration) *Error {
	return &Error{Kind: KindRateLimited, RetryAfter: retryAfter}
}

func Timeout(timeout time.Duration, cause error) *Error {
	return &Error{Kind: KindTimeout, Timeout: timeout, Err: cause}
}

func ServerError(status int, message string) *Error {
	return &Error{Kind: KindServerError, StatusCode: status, Message: message}
}

func Network(cause error) *Error {
	return &Error{Kind: KindNetwork, Err: cause}
}

func Serialization(cause error) *Error {
	return &Error{Kind: KindSerialization, Err: cause}
}

func ConfigError(format string, args ...any) *Error {
	err := fmt.Errorf(format, args...)
	return &Error{Kind: KindConfig, Message: err.Error(), Err: errors.Unwrap(err)}
}

func CacheFailure(cause error) *Error {
	return &Error{Kind: KindCacheFailure, Err: cause}
}

func ConcurrencyExceeded(maxConcurrent int, cause error) *Error {
	return &Error{Kind: KindConcurrencyExceeded, MaxConcurrent: maxConcurrent, Err: cause}
}

func (e *Error) Error() string {
	switch e.Kind {
	case KindInvalidName:
		return fmt.Sprintf("invalid name format: %q (expected @namespace/package or @namespace/package::module::Type)", e.Name)
	case KindNotFound:
		return fmt.Sprintf("%q not found in registry", e.Name)
	case KindRateLimited:
		return fmt.Sprintf("rate limit exceeded, try again in %d seconds", int64(e.RetryAfter/time.Second))
	case KindTimeout:
		return fmt.Sprintf("request timed out after %d seconds", e.TimeoutSecs())
	case KindServerError:
		return fmt.Sprintf("server error: %d - %s", e.StatusCode, e.Message)
	case KindNetwork:
		return fmt.Sprintf("request failed: %v", e.Err)
	case KindSerialization:
		return fmt.Sprintf("failed to decode response: %v", e.Err)
	case KindConfig:
		return fmt.Sprintf("invalid configuration: %s", e.Message)
	case KindCacheFailure:
		return fmt.Sprintf("cache error: %v", e.Err)
	case KindConcurrencyExceeded:
		return fmt.Sprintf("too many concurrent requests, maximum allowed: %d", e.MaxConcurrent)
	default:
		if e.Err != nil {
			return e.Err.Error()
		}
		return "unknown resolver error"
	}
}

func (e *Error) Unwrap() error { return e.Err }

// Is reports whether target is an *Error of the same Kind.
func (e *Error) Is(target error) bool {
	t, ok := target.(*Error)
	return ok && t.Kind == e.Kind
}

// TimeoutSecs is the configured timeout in whole seconds.
func (e *Error) TimeoutSecs() int64 {
	return int64(e.Timeout / time.Second)
}

/*
IsRetryable reports whether trying the same request again may succeed.

	retryable:     Network, Timeout, RateLimited, ServerError (5xx)
	not retryable: InvalidName, NotFound, Config, ConcurrencyExceeded,
	               Serialization, CacheFailure, ServerError (non-5xx)
*/
func (e *Error) IsRetryable() bool {
	switch e.Kind {
	case KindNetwork, KindTimeout, KindRateLimited:
		return true
	case KindServerError:
		return e.StatusCode >= 500
	default:
		return false
	}
}

// RetryDelay returns the server-provided delay for RateLimited errors.
// Every other kind leaves backoff to the caller.
func (e *Error) RetryDelay() (time.Duration, bool) {
	if e.Kind != KindRateLimited {
		return 0, false
	}
	return e.RetryAfter, true
}

func (e *Error) IsRateLimited() bool { return e.Kind == KindRateLimited }

// IsClientError reports failures caused by the request itself.
func (e *Error) IsClientError() bool {
	switch e.Kind {
	case KindInvalidName, KindNotFound:
		return true
	case KindServerError:
		return e.StatusCode >= 400 && e.StatusCode < 500
	default:
		return false
	}
}

// KindOf extracts the Kind from any error chain; KindUnknown if none.
func KindOf(err error) Kind {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind
	}
	return KindUnknown
}

func IsRetryable(err error) bool {
	var e *Error
	return errors.As(err, &e) && e.IsRetryable()
}

func RetryDelay(err error) (time.Duration, bool) {
	var e *Error
	if !errors.As(err, &e) {
		return 0, false
	}
	return e.RetryDelay()
}
