// Package fetcher provides the net/http implementation of types.Fetcher.
//
// The resolver core never depends on this package; it only sees the Fetcher
// contract. Retries are deliberately absent here as well: the transport
// performs exactly one GET per call.
package fetcher

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"

	"github.com/krisalay/mvr/types"
)

const (
	defaultUserAgent = "mvr-go"

	// DefaultMaxBodySize caps how much of a response body is read.
	DefaultMaxBodySize int64 = 1 << 20
)

// HTTPFetcherOptions holds configuration for NewHTTPFetcher.
type HTTPFetcherOptions struct {
	client      *http.Client
	userAgent   string
	maxBodySize int64
}

// HTTPFetcherOption is a functional option for NewHTTPFetcher.
type HTTPFetcherOption func(*HTTPFetcherOptions)

// WithHTTPClient replaces the underlying client (and its transport).
func WithHTTPClient(c *http.Client) HTTPFetcherOption {
	return func(o *HTTPFetcherOptions) {
		o.client = c
	}
}

// WithUserAgent sets the User-Agent header for every request.
func WithUserAgent(userAgent string) HTTPFetcherOption {
	return func(o *HTTPFetcherOptions) {
		o.userAgent = userAgent
	}
}

// WithMaxBodySize bounds the bytes read from a response body.
func WithMaxBodySize(n int64) HTTPFetcherOption {
	return func(o *HTTPFetcherOptions) {
		o.maxBodySize = n
	}
}

// userAgentTransport wraps an http.RoundTripper and injects a User-Agent header.
type userAgentTransport struct {
	base      http.RoundTripper
	userAgent string
}

func (t *userAgentTransport) RoundTrip(req *http.Request) (*http.Response, error) {
	req = req.Clone(req.Context())
	req.Header.Set("User-Agent", t.userAgent)
	return t.base.RoundTrip(req)
}

// HTTPFetcher performs registry lookups over HTTP.
type HTTPFetcher struct {
	client      *http.Client
	maxBodySize int64
}

var _ types.Fetcher = (*HTTPFetcher)(nil)

// NewHTTPFetcher creates a fetcher with the given options applied.
//
// The client has no timeout of its own; the resolver bounds each call through
// the request context.
func NewHTTPFetcher(opts ...HTTPFetcherOption) *HTTPFetcher {
	options := &HTTPFetcherOptions{}
	for _, opt := range opts {
		opt(options)
	}

	base := http.DefaultTransport
	if options.client != nil && options.client.Transport != nil {
		base = options.client.Transport
	}

	userAgent := defaultUserAgent
	if options.userAgent != "" {
		userAgent = options.userAgent
	}

	client := &http.Client{}
	if options.client != nil {
		*client = *options.client
	}
	client.Transport = &userAgentTransport{base: base, userAgent: userAgent}

	maxBody := DefaultMaxBodySize
	if options.maxBodySize > 0 {
		maxBody = options.maxBodySize
	}

	return &HTTPFetcher{client: client, maxBodySize: maxBody}
}

// ErrBodyTooLarge is returned when a response body is longer than the
// configured maximum. The body is never truncated.
var ErrBodyTooLarge = errors.New("response body too large")

// Get issues a single GET and returns status, headers and body regardless of
// the status code. Only transport failures are returned as errors.
func (f *HTTPFetcher) Get(ctx context.Context, url string) (*types.Response, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, fmt.Errorf("building request for %s: %w", url, err)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := f.client.Do(req)
	if err != nil {
		return nil, err
	}
	defer func() {
		_ = resp.Body.Close()
	}()

	body, err := io.ReadAll(io.LimitReader(resp.Body, f.maxBodySize+1))
	if err != nil {
		return nil, fmt.Errorf("reading response body: %w", err)
	}
	if int64(len(body)) > f.maxBodySize {
		return nil, fmt.Errorf("%w: response body exceeds %d bytes", ErrBodyTooLarge, f.maxBodySize)
	}

	return &types.Response{
		StatusCode: resp.StatusCode,
		Header:     resp.Header.Clone(),
		Body:       body,
	}, nil
}
