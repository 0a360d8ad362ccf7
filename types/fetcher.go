package types

import (
	"context"
	"net/http"
)

// Response is what a Fetcher hands back for a completed round trip.
// A non-2xx status is NOT a transport error; it is classified later.
type Response struct {
	StatusCode int
	Header     http.Header
	Body       []byte
}

// Fetcher is the contract between the resolver and the registry service.
type Fetcher interface {

	/*
		Get performs a GET against url and returns the raw response.

		CONTRACT:
		---------
		- A returned error means the request never produced a response
		  (DNS, connection reset, deadline exceeded, ...)
		- Any HTTP status, including 404 and 5xx, is a Response, not an error
		- Implementations must honor ctx cancellation and deadlines

		The resolver calls Get at most once per cache miss per resolve call.
	*/
	Get(ctx context.Context, url string) (*Response, error)
}

// FetcherFunc adapts a plain function to the Fetcher interface.
type FetcherFunc func(ctx context.Context, url string) (*Response, error)

func (f FetcherFunc) Get(ctx context.Context, url string) (*Response, error) {
	return f(ctx, url)
}
