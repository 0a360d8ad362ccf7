package mvr

import (
	"os"
	"time"

	"sigs.k8s.io/yaml"

	"github.com/krisalay/mvr/overrides"
	"github.com/krisalay/mvr/types"
)

// fileConfig is the on-disk shape of a Config. Durations are Go duration
// strings ("90s", "1h"); omitted fields keep the network preset's value.
type fileConfig struct {
	Network               string               `json:"network,omitempty"`
	EndpointURL           string               `json:"endpointURL,omitempty"`
	CacheTTL              string               `json:"cacheTTL,omitempty"`
	Timeout               string               `json:"timeout,omitempty"`
	MaxConcurrentRequests *int                 `json:"maxConcurrentRequests,omitempty"`
	MaxCacheSize          *int                 `json:"maxCacheSize,omitempty"`
	Overrides             *overrides.Overrides `json:"overrides,omitempty"`
}

/*
ParseConfig reads a Config from YAML or JSON.

Example:

	network: mainnet
	cacheTTL: 30m
	timeout: 10s
	maxConcurrentRequests: 4
	overrides:
	  packages:
	    "@suifrens/core": "0xABC"

Unknown fields are rejected and the result is validated before it is returned.
*/
func ParseConfig(data []byte) (Config, error) {
	var fc fileConfig
	if err := yaml.UnmarshalStrict(data, &fc); err != nil {
		return Config{}, types.ConfigError("failed to parse config: %w", err)
	}

	cfg, err := ConfigForNetwork(fc.Network)
	if err != nil {
		return Config{}, err
	}
	if fc.EndpointURL != "" {
		cfg = cfg.WithEndpoint(fc.EndpointURL)
	}
	if fc.CacheTTL != "" {
		ttl, err := time.ParseDuration(fc.CacheTTL)
		if err != nil {
			return Config{}, types.ConfigError("cacheTTL: %w", err)
		}
		cfg = cfg.WithCacheTTL(ttl)
	}
	if fc.Timeout != "" {
		timeout, err := time.ParseDuration(fc.Timeout)
		if err != nil {
			return Config{}, types.ConfigError("timeout: %w", err)
		}
		cfg = cfg.WithTimeout(timeout)
	}
	if fc.MaxConcurrentRequests != nil {
		cfg = cfg.WithMaxConcurrentRequests(*fc.MaxConcurrentRequests)
	}
	if fc.MaxCacheSize != nil {
		cfg = cfg.WithMaxCacheSize(*fc.MaxCacheSize)
	}
	if fc.Overrides != nil {
		cfg = cfg.WithOverrides(*fc.Overrides)
	}

	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// LoadConfigFile reads and parses a config file.
func LoadConfigFile(path string) (Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Config{}, types.ConfigError("failed to read config file %s: %w", path, err)
	}
	return ParseConfig(data)
}
