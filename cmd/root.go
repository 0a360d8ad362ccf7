package main

import (
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/spf13/cobra"
	slogcontext "github.com/veqryn/slog-context"

	"github.com/krisalay/mvr"
	"github.com/krisalay/mvr/fetcher"
	"github.com/krisalay/mvr/overrides"
)

const (
	networkFlag       = "network"
	endpointFlag      = "endpoint"
	configFlag        = "config"
	overridesFlag     = "overrides"
	timeoutFlag       = "timeout"
	maxConcurrentFlag = "max-concurrent"
	retriesFlag       = "retries"
	logLevelFlag      = "log-level"

	userAgent = "mvr-cli"
)

type rootOptions struct {
	network       string
	endpoint      string
	configPath    string
	overridesPath string
	timeout       time.Duration
	maxConcurrent int
	retries       uint
	logLevel      string
}

func newRootCommand() *cobra.Command {
	opts := &rootOptions{}

	cmd := &cobra.Command{
		Use:   "mvr [sub-command]",
		Short: "Resolve Move Registry names to addresses and type signatures",
		Long: `mvr asks the Move Registry service for the on-chain address of a package
  name (@namespace/package) or the full signature of a type name
  (@namespace/package::module::Type). Static overrides from a file are
  answered locally without a network call.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return cmd.Help()
		},
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return setupLogging(cmd, opts.logLevel)
		},
		SilenceUsage: true,
	}

	f := cmd.PersistentFlags()
	f.StringVar(&opts.network, networkFlag, mvr.NetworkTestnet, `registry network preset ("mainnet" or "testnet")`)
	f.StringVar(&opts.endpoint, endpointFlag, "", "registry endpoint url, overriding the network preset")
	f.StringVar(&opts.configPath, configFlag, "", "YAML or JSON resolver config file")
	f.StringVar(&opts.overridesPath, overridesFlag, "", "YAML or JSON overrides file with packages and types sections")
	f.DurationVar(&opts.timeout, timeoutFlag, 0, `per-request timeout (e.g. "10s"), overriding the config`)
	f.IntVar(&opts.maxConcurrent, maxConcurrentFlag, 0, "maximum concurrent registry requests, overriding the config")
	f.UintVar(&opts.retries, retriesFlag, 3, "retries for retryable failures (0 disables retrying)")
	f.StringVar(&opts.logLevel, logLevelFlag, "warn", "log level: debug, info, warn or error")

	cmd.AddCommand(
		newPackageCommand(opts),
		newTypeCommand(opts),
		newTargetCommand(opts),
		newConfigCommand(opts),
	)
	return cmd
}

func setupLogging(cmd *cobra.Command, level string) error {
	var lvl slog.Level
	if err := lvl.UnmarshalText([]byte(strings.ToUpper(level))); err != nil {
		return fmt.Errorf("invalid --%s %q: %w", logLevelFlag, level, err)
	}
	h := slogcontext.NewHandler(slog.NewTextHandler(cmd.ErrOrStderr(), &slog.HandlerOptions{Level: lvl}), nil)
	logger := slog.New(h)
	cmd.SetContext(slogcontext.NewCtx(cmd.Context(), logger))
	return nil
}

// config merges, lowest priority first: network preset, config file, flags.
func (o *rootOptions) config(cmd *cobra.Command) (mvr.Config, error) {
	var (
		cfg mvr.Config
		err error
	)
	if o.configPath != "" {
		cfg, err = mvr.LoadConfigFile(o.configPath)
		if err != nil {
			return mvr.Config{}, err
		}
		if cmd.Flags().Changed(networkFlag) {
			preset, err := mvr.ConfigForNetwork(o.network)
			if err != nil {
				return mvr.Config{}, err
			}
			cfg = cfg.WithEndpoint(preset.EndpointURL)
		}
	} else {
		cfg, err = mvr.ConfigForNetwork(o.network)
		if err != nil {
			return mvr.Config{}, err
		}
	}

	if o.endpoint != "" {
		cfg = cfg.WithEndpoint(o.endpoint)
	}
	if o.timeout > 0 {
		cfg = cfg.WithTimeout(o.timeout)
	}
	if o.maxConcurrent > 0 {
		cfg = cfg.WithMaxConcurrentRequests(o.maxConcurrent)
	}
	if o.overridesPath != "" {
		ov, err := overrides.LoadFile(o.overridesPath)
		if err != nil {
			return mvr.Config{}, err
		}
		cfg = cfg.WithOverrides(ov)
	}
	return cfg, cfg.Validate()
}

func (o *rootOptions) resolver(cmd *cobra.Command) (*mvr.Resolver, error) {
	cfg, err := o.config(cmd)
	if err != nil {
		return nil, err
	}
	return mvr.New(cfg, fetcher.NewHTTPFetcher(fetcher.WithUserAgent(userAgent)))
}
