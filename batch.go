package mvr

import (
	"context"
	"log/slog"

	slogcontext "github.com/veqryn/slog-context"
	"golang.org/x/sync/errgroup"
)

func (r *Resolver) ResolvePackages(ctx context.Context, names []string) (map[string]string, error) {
	return r.resolveMany(ctx, packageLookup, names)
}

func (r *Resolver) ResolveTypes(ctx context.Context, names []string) (map[string]string, error) {
	return r.resolveMany(ctx, typeLookup, names)
}

/*
resolveMany runs the local states for every name in order, then fetches the
distinct misses concurrently.

The first remote failure cancels the group's context and is the only error
returned. Values fetched by the other members are discarded, not cached.
*/
func (r *Resolver) resolveMany(ctx context.Context, l *lookup, names []string) (map[string]string, error) {
	results := make(map[string]string, len(names))
	var misses []string
	pending := make(map[string]struct{})

	for _, name := range names {
		v, ok, err := r.local(ctx, l, name)
		if err != nil {
			return nil, err
		}
		if ok {
			results[name] = v
			continue
		}
		if _, dup := pending[name]; !dup {
			pending[name] = struct{}{}
			misses = append(misses, name)
		}
	}
	if len(misses) == 0 {
		return results, nil
	}

	slogcontext.FromCtx(ctx).DebugContext(ctx, "fetching batch misses",
		slog.String("realm", "mvr"),
		slog.String("kind", l.kind),
		slog.Int("requested", len(names)),
		slog.Int("misses", len(misses)),
	)

	fetched := make([]string, len(misses))
	g, gctx := errgroup.WithContext(ctx)
	for i, name := range misses {
		g.Go(func() error {
			v, err := r.remote(gctx, l, name)
			if err != nil {
				return err
			}
			fetched[i] = v
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	for i, name := range misses {
		r.cache.Put(l.key(name), fetched[i])
		results[name] = fetched[i]
	}
	return results, nil
}
