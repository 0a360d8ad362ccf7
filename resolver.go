// Package mvr resolves Move Registry names (@namespace/package and
// @namespace/package::module::Type) into package addresses and full type
// signatures.
//
// A Resolver checks, in order: name syntax, static overrides, its TTL+LRU
// cache, and only then the registry service, through a bounded number of
// concurrent requests. It never retries. Failures come back as *types.Error
// and carry the hints (IsRetryable, RetryDelay) a caller needs to decide.
package mvr

import (
	"context"
	"log/slog"
	"net/url"
	"strings"

	slogcontext "github.com/veqryn/slog-context"
	"golang.org/x/sync/singleflight"

	"github.com/krisalay/mvr/api"
	"github.com/krisalay/mvr/cache"
	"github.com/krisalay/mvr/classify"
	"github.com/krisalay/mvr/engine"
	"github.com/krisalay/mvr/expiration"
	"github.com/krisalay/mvr/limiter"
	"github.com/krisalay/mvr/naming"
	"github.com/krisalay/mvr/overrides"
	"github.com/krisalay/mvr/types"
)

const (
	packageKeyPrefix = "pkg:"
	typeKeyPrefix    = "type:"
)

// PackageKey is the cache key for a package name.
func PackageKey(name string) string { return packageKeyPrefix + name }

// TypeKey is the cache key for a type name.
func TypeKey(name string) string { return typeKeyPrefix + name }

// lookup is everything that differs between package and type resolution.
type lookup struct {
	kind     string
	validate func(string) error
	override func(overrides.Overrides, string) (string, bool)
	key      func(string) string
	decode   func([]byte) (string, error)
}

var (
	packageLookup = &lookup{
		kind:     "package",
		validate: naming.ValidatePackageName,
		override: overrides.Overrides.Package,
		key:      PackageKey,
		decode:   classify.DecodePackage,
	}
	typeLookup = &lookup{
		kind:     "type",
		validate: naming.ValidateTypeName,
		override: overrides.Overrides.Type,
		key:      TypeKey,
		decode:   classify.DecodeType,
	}
)

/*
Resolver is safe for concurrent use. Its only shared mutable state is the
cache and the concurrency limiter; config and overrides are fixed at New.
*/
type Resolver struct {
	cfg        Config
	fetcher    types.Fetcher
	cache      *cache.Cache
	limiter    *limiter.Limiter
	classifier classify.Classifier
	clock      types.Clock
	metrics    types.Metrics

	// sf is only used when coalescing is enabled.
	coalesce bool
	sf       singleflight.Group
}

var _ api.Resolver = (*Resolver)(nil)

// New builds a Resolver. It fails with a ConfigError if cfg is invalid or
// fetcher is nil.
func New(cfg Config, fetcher types.Fetcher, opts ...Option) (*Resolver, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	if fetcher == nil {
		return nil, types.ConfigError("fetcher is required")
	}

	o := defaultOptions()
	for _, opt := range opts {
		opt(o)
	}
	exp := o.expiration
	if exp == nil {
		exp = &expiration.ExpireAfterWrite{TTL: cfg.CacheTTL}
	}

	// the resolver owns its overrides; later edits to the caller's maps are not seen
	cfg.Overrides = cfg.Overrides.Clone()

	eng := engine.NewCacheEngine(exp, o.clock, o.metrics)
	return &Resolver{
		cfg:        cfg,
		fetcher:    fetcher,
		cache:      cache.New(cfg.MaxCacheSize, o.policy, eng),
		limiter:    limiter.New(cfg.MaxConcurrentRequests),
		classifier: classify.Classifier{Timeout: cfg.Timeout, Now: o.clock.Now},
		clock:      o.clock,
		metrics:    o.metrics,
		coalesce:   o.coalesce,
	}, nil
}

func (r *Resolver) ResolvePackage(ctx context.Context, name string) (string, error) {
	return r.resolve(ctx, packageLookup, name)
}

func (r *Resolver) ResolveType(ctx context.Context, name string) (string, error) {
	return r.resolve(ctx, typeLookup, name)
}

func (r *Resolver) resolve(ctx context.Context, l *lookup, name string) (string, error) {
	if v, ok, err := r.local(ctx, l, name); err != nil || ok {
		return v, err
	}

	v, err := r.remote(ctx, l, name)
	if err != nil {
		return "", err
	}
	r.cache.Put(l.key(name), v)
	return v, nil
}

// local runs the synchronous states: validate, override, cache.
func (r *Resolver) local(ctx context.Context, l *lookup, name string) (string, bool, error) {
	log := logger(ctx, l, name)

	if err := l.validate(name); err != nil {
		log.DebugContext(ctx, "rejected name")
		return "", false, err
	}
	if v, ok := l.override(r.cfg.Overrides, name); ok {
		log.DebugContext(ctx, "resolved from override")
		return v, true, nil
	}
	if v, ok := r.cache.Get(l.key(name)); ok {
		log.DebugContext(ctx, "resolved from cache")
		return v, true, nil
	}
	return "", false, nil
}

// remote fetches name from the registry, sharing the call with concurrent
// callers when coalescing is on. It does not touch the cache.
func (r *Resolver) remote(ctx context.Context, l *lookup, name string) (string, error) {
	if !r.coalesce {
		return r.fetch(ctx, l, name)
	}
	v, err, shared := r.sf.Do(l.key(name), func() (any, error) {
		return r.fetch(ctx, l, name)
	})
	if shared {
		logger(ctx, l, name).DebugContext(ctx, "shared in-flight fetch")
	}
	if err != nil {
		return "", err
	}
	return v.(string), nil
}

/*
fetch performs one remote lookup.

	AcquireSlot → Fetch (bounded by cfg.Timeout) → Classify → ReleaseSlot

The slot is released by defer, so a panicking Fetcher cannot leak it.
*/
func (r *Resolver) fetch(ctx context.Context, l *lookup, name string) (value string, err error) {
	log := logger(ctx, l, name)
	start := r.clock.Now()
	defer func() {
		r.metrics.Fetch(types.Outcome(err), r.clock.Now().Sub(start))
	}()

	release, err := r.limiter.Acquire(ctx)
	if err != nil {
		log.DebugContext(ctx, "gave up waiting for a request slot", slog.Int("max", r.limiter.Max()))
		return "", err
	}
	defer release()

	fetchCtx, cancel := context.WithTimeout(ctx, r.cfg.Timeout)
	defer cancel()

	u := r.url(l, name)
	log.DebugContext(ctx, "fetching", slog.String("url", u))

	resp, ferr := r.fetcher.Get(fetchCtx, u)
	if err := r.classifier.Classify(name, resp, ferr); err != nil {
		log.DebugContext(ctx, "fetch failed", slog.String("kind", types.KindOf(err).String()), slog.Any("error", err))
		return "", err
	}

	value, err = l.decode(resp.Body)
	if err != nil {
		log.DebugContext(ctx, "undecodable response", slog.Any("error", err))
		return "", err
	}
	return value, nil
}

// url builds {endpoint}/resolve/{kind}/{name}. The name's "/" and "::" are
// kept literally; "@" is legal in a path segment.
func (r *Resolver) url(l *lookup, name string) string {
	endpoint := strings.TrimRight(r.cfg.EndpointURL, "/")
	return endpoint + "/resolve/" + l.kind + "/" + escapeName(name)
}

func escapeName(name string) string {
	parts := strings.Split(name, "/")
	for i, p := range parts {
		parts[i] = url.PathEscape(p)
	}
	return strings.Join(parts, "/")
}

//
// ================= CACHE MANAGEMENT =================
//

// ClearCache drops every cached entry and resets the hit and miss counters.
func (r *Resolver) ClearCache() {
	r.cache.Clear()
}

func (r *Resolver) CacheStats() cache.Stats {
	return r.cache.Stats()
}

// CleanupExpiredCache removes expired entries and returns how many went.
func (r *Resolver) CleanupExpiredCache() int {
	return r.cache.CleanupExpired()
}

// Config returns a copy of the configuration the resolver was built with.
func (r *Resolver) Config() Config {
	cfg := r.cfg
	cfg.Overrides = r.cfg.Overrides.Clone()
	return cfg
}

func logger(ctx context.Context, l *lookup, name string) *slog.Logger {
	return slogcontext.FromCtx(ctx).With(
		slog.String("realm", "mvr"),
		slog.String("kind", l.kind),
		slog.String("name", name),
	)
}
