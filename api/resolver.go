package api

import (
	"context"

	"github.com/krisalay/mvr/cache"
)

/*
Resolver defines the PUBLIC API of the name resolver.
It guarantees lookup order and error classification without exposing the
cache, the concurrency limiter or the transport behind it.
*/
type Resolver interface {

	/*
		ResolvePackage returns the on-chain address of a package name
		such as "@suifrens/core".

		BEHAVIOR:
		---------
		1. An invalid name fails with InvalidName before anything else runs.

		2. A name present in the overrides returns the override value.
		   The cache is neither read nor written and no remote call is made.

		3. A valid cached entry is returned and counted as a cache hit.

		4. Otherwise the caller waits for a request slot, the registry is
		   asked exactly once, and a successful answer is cached.

		No step retries. A failed remote call comes back as one classified
		*types.Error; use IsRetryable and RetryDelay to decide what to do.
	*/
	ResolvePackage(ctx context.Context, name string) (string, error)

	/*
		ResolveType returns the full type signature for a name such as
		"@suifrens/core::suifren::SuiFren". Same steps as ResolvePackage,
		with type overrides and type cache keys.
	*/
	ResolveType(ctx context.Context, name string) (string, error)

	/*
		ResolvePackages resolves many package names at once.

		BEHAVIOR:
		---------
		- Every name is validated and checked against overrides and the cache
		  first, in order. The first invalid name fails the whole call.
		- The remaining distinct names are fetched concurrently, bounded by
		  the same slot limit as single lookups.
		- Fail-fast: the first failed fetch cancels the rest and is returned
		  alone. No partial results are returned and nothing from the failed
		  batch is cached.
		- On success the map holds one entry per distinct input name.
	*/
	ResolvePackages(ctx context.Context, names []string) (map[string]string, error)

	// ResolveTypes is ResolvePackages for type names.
	ResolveTypes(ctx context.Context, names []string) (map[string]string, error)

	/*
		ResolveTarget rewrites a move-call target "@ns/pkg::module::function"
		into "<address>::module::function". Targets that do not start with
		"@" are returned unchanged.
	*/
	ResolveTarget(ctx context.Context, target string) (string, error)

	// ClearCache empties the cache and resets its hit counters.
	ClearCache()

	/*
		CacheStats returns a consistent snapshot of the cache.
		Expired entries are counted against the clock at call time;
		they stay in the cache until CleanupExpiredCache or eviction.
	*/
	CacheStats() cache.Stats

	// CleanupExpiredCache removes every expired entry and returns the count.
	CleanupExpiredCache() int
}
