package main

import (
	"context"
	"fmt"
	"io"

	"github.com/spf13/cobra"
	"sigs.k8s.io/yaml"

	"github.com/krisalay/mvr"
)

func newPackageCommand(opts *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:     "package NAME [NAME...]",
		Aliases: []string{"pkg"},
		Short:   "Resolve package names to on-chain addresses",
		Example: `  mvr package @suifrens/core
  mvr package @suifrens/core @suifrens/accessories --network mainnet`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			r, err := opts.resolver(cmd)
			if err != nil {
				return err
			}
			return resolveAndPrint(cmd, opts, args, r.ResolvePackage, r.ResolvePackages)
		},
	}
}

func newTypeCommand(opts *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "type NAME [NAME...]",
		Short: "Resolve type names to full type signatures",
		Example: `  mvr type @suifrens/core::suifren::SuiFren
  mvr type "@suifrens/core::suifren::SuiFren<0x2::sui::SUI>"`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			r, err := opts.resolver(cmd)
			if err != nil {
				return err
			}
			return resolveAndPrint(cmd, opts, args, r.ResolveType, r.ResolveTypes)
		},
	}
}

func newTargetCommand(opts *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "target TARGET",
		Short: "Rewrite @ns/pkg::module::function into address::module::function",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			r, err := opts.resolver(cmd)
			if err != nil {
				return err
			}
			ctx := cmd.Context()
			out, err := withRetry(ctx, opts.retries, func() (string, error) {
				return r.ResolveTarget(ctx, args[0])
			})
			if err != nil {
				return err
			}
			_, err = fmt.Fprintln(cmd.OutOrStdout(), out)
			return err
		},
	}
}

func newConfigCommand(opts *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "config",
		Short: "Print the effective resolver configuration",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := opts.config(cmd)
			if err != nil {
				return err
			}
			return printConfig(cmd.OutOrStdout(), cfg)
		},
	}
}

// A single name prints the bare value; several print "name value" lines
// in argument order, resolved as one fail-fast batch.
func resolveAndPrint(
	cmd *cobra.Command,
	opts *rootOptions,
	names []string,
	one func(context.Context, string) (string, error),
	many func(context.Context, []string) (map[string]string, error),
) error {
	ctx := cmd.Context()
	out := cmd.OutOrStdout()

	if len(names) == 1 {
		v, err := withRetry(ctx, opts.retries, func() (string, error) {
			return one(ctx, names[0])
		})
		if err != nil {
			return err
		}
		_, err = fmt.Fprintln(out, v)
		return err
	}

	res, err := withRetry(ctx, opts.retries, func() (map[string]string, error) {
		return many(ctx, names)
	})
	if err != nil {
		return err
	}
	printed := make(map[string]bool, len(res))
	for _, name := range names {
		if printed[name] {
			continue
		}
		printed[name] = true
		if _, err := fmt.Fprintf(out, "%s %s\n", name, res[name]); err != nil {
			return err
		}
	}
	return nil
}

func printConfig(w io.Writer, cfg mvr.Config) error {
	doc := map[string]any{
		"endpointURL":           cfg.EndpointURL,
		"cacheTTL":              cfg.CacheTTL.String(),
		"timeout":               cfg.Timeout.String(),
		"maxConcurrentRequests": cfg.MaxConcurrentRequests,
		"maxCacheSize":          cfg.MaxCacheSize,
	}
	if cfg.Overrides.Len() > 0 {
		doc["overrides"] = cfg.Overrides
	}
	data, err := yaml.Marshal(doc)
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}
	_, err = w.Write(data)
	return err
}
