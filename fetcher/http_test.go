package fetcher_test

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/krisalay/mvr/fetcher"
)

func TestGetPassesThroughResponse(t *testing.T) {
	seen := make(chan *http.Request, 1)
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		seen <- r.Clone(context.Background())
		w.Header().Set("Retry-After", "12")
		w.WriteHeader(http.StatusTooManyRequests)
		_, _ = w.Write([]byte("slow down"))
	}))
	defer srv.Close()

	f := fetcher.NewHTTPFetcher(fetcher.WithUserAgent("mvr-test"))
	resp, err := f.Get(context.Background(), srv.URL+"/resolve/package/@suifrens/core")
	require.NoError(t, err)

	req := <-seen
	assert.Equal(t, "/resolve/package/@suifrens/core", req.URL.Path)
	assert.Equal(t, "application/json", req.Header.Get("Accept"))
	assert.Equal(t, "mvr-test", req.Header.Get("User-Agent"))

	assert.Equal(t, http.StatusTooManyRequests, resp.StatusCode)
	assert.Equal(t, "12", resp.Header.Get("Retry-After"))
	assert.Equal(t, "slow down", string(resp.Body))
}

func TestGetDefaultUserAgent(t *testing.T) {
	seen := make(chan string, 1)
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		seen <- r.Header.Get("User-Agent")
	}))
	defer srv.Close()

	_, err := fetcher.NewHTTPFetcher().Get(context.Background(), srv.URL)
	require.NoError(t, err)
	assert.Equal(t, "mvr-go", <-seen)
}

func TestGetRejectsOversizedBody(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(strings.Repeat("x", 100)))
	}))
	defer srv.Close()

	resp, err := fetcher.NewHTTPFetcher(fetcher.WithMaxBodySize(10)).Get(context.Background(), srv.URL)
	require.ErrorIs(t, err, fetcher.ErrBodyTooLarge)
	assert.Contains(t, err.Error(), "exceeds 10 bytes")
	assert.Nil(t, resp)
}

func TestGetAcceptsBodyAtLimit(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(strings.Repeat("x", 10)))
	}))
	defer srv.Close()

	resp, err := fetcher.NewHTTPFetcher(fetcher.WithMaxBodySize(10)).Get(context.Background(), srv.URL)
	require.NoError(t, err)
	assert.Len(t, resp.Body, 10)
}

func TestGetHonorsContextDeadline(t *testing.T) {
	release := make(chan struct{})
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		select {
		case <-release:
		case <-r.Context().Done():
		}
	}))
	defer srv.Close()
	defer close(release)

	ctx, cancel := context.WithTimeout(context.Background(), 20*time.Millisecond)
	defer cancel()

	_, err := fetcher.NewHTTPFetcher().Get(ctx, srv.URL)
	require.Error(t, err)
	assert.True(t, errors.Is(err, context.DeadlineExceeded))
}

func TestGetTransportError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(http.ResponseWriter, *http.Request) {}))
	url := srv.URL
	srv.Close()

	_, err := fetcher.NewHTTPFetcher().Get(context.Background(), url)
	assert.Error(t, err)
}

func TestCustomClientTransportIsKept(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(r.Header.Get("X-Trace")))
	}))
	defer srv.Close()

	client := &http.Client{Transport: roundTripFunc(func(r *http.Request) (*http.Response, error) {
		r = r.Clone(r.Context())
		r.Header.Set("X-Trace", "abc")
		return http.DefaultTransport.RoundTrip(r)
	})}

	resp, err := fetcher.NewHTTPFetcher(fetcher.WithHTTPClient(client)).Get(context.Background(), srv.URL)
	require.NoError(t, err)
	assert.Equal(t, "abc", string(resp.Body))
}

type roundTripFunc func(*http.Request) (*http.Response, error)

func (f roundTripFunc) RoundTrip(r *http.Request) (*http.Response, error) { return f(r) }
