package mvr

import (
	"net/url"
	"time"

	"github.com/krisalay/mvr/overrides"
	"github.com/krisalay/mvr/types"
)

const (
	MainnetEndpoint = "https://mainnet.mvr.mystenlabs.com"
	TestnetEndpoint = "https://testnet.mvr.mystenlabs.com"

	NetworkMainnet = "mainnet"
	NetworkTestnet = "testnet"

	DefaultCacheTTL              = time.Hour
	DefaultTimeout               = 30 * time.Second
	DefaultMaxConcurrentRequests = 10
	DefaultMaxCacheSize          = 1000
)

/*
Config is the construction-time snapshot a Resolver is built from.

Config is a plain value. The With* methods return a modified copy and never
touch the receiver, so a preset can be shared and specialized freely:

	cfg := mvr.MainnetConfig().WithTimeout(5 * time.Second)
*/
type Config struct {
	EndpointURL           string
	CacheTTL              time.Duration
	Timeout               time.Duration
	MaxConcurrentRequests int
	MaxCacheSize          int
	Overrides             overrides.Overrides
}

// DefaultConfig targets testnet.
func DefaultConfig() Config {
	return Config{
		EndpointURL:           TestnetEndpoint,
		CacheTTL:              DefaultCacheTTL,
		Timeout:               DefaultTimeout,
		MaxConcurrentRequests: DefaultMaxConcurrentRequests,
		MaxCacheSize:          DefaultMaxCacheSize,
	}
}

func MainnetConfig() Config {
	return DefaultConfig().WithEndpoint(MainnetEndpoint)
}

func TestnetConfig() Config {
	return DefaultConfig().WithEndpoint(TestnetEndpoint)
}

// ConfigForNetwork returns the preset for "mainnet" or "testnet".
// An empty network selects testnet.
func ConfigForNetwork(network string) (Config, error) {
	switch network {
	case NetworkMainnet:
		return MainnetConfig(), nil
	case NetworkTestnet, "":
		return TestnetConfig(), nil
	default:
		return Config{}, types.ConfigError("unknown network %q (expected %s or %s)", network, NetworkMainnet, NetworkTestnet)
	}
}

func (c Config) WithEndpoint(endpoint string) Config {
	c.EndpointURL = endpoint
	return c
}

func (c Config) WithCacheTTL(ttl time.Duration) Config {
	c.CacheTTL = ttl
	return c
}

func (c Config) WithTimeout(timeout time.Duration) Config {
	c.Timeout = timeout
	return c
}

func (c Config) WithMaxConcurrentRequests(n int) Config {
	c.MaxConcurrentRequests = n
	return c
}

func (c Config) WithMaxCacheSize(n int) Config {
	c.MaxCacheSize = n
	return c
}

// WithOverrides replaces the override set with a copy of o, so the returned
// Config never observes later edits to o's maps.
func (c Config) WithOverrides(o overrides.Overrides) Config {
	c.Overrides = o.Clone()
	return c
}

// Validate reports the first problem found as a ConfigError.
func (c Config) Validate() error {
	u, err := url.Parse(c.EndpointURL)
	if err != nil {
		return types.ConfigError("endpoint url %q: %w", c.EndpointURL, err)
	}
	if (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
		return types.ConfigError("endpoint url %q must be an absolute http(s) url", c.EndpointURL)
	}
	if c.CacheTTL <= 0 {
		return types.ConfigError("cache ttl must be positive, got %s", c.CacheTTL)
	}
	if c.Timeout <= 0 {
		return types.ConfigError("timeout must be positive, got %s", c.Timeout)
	}
	if c.MaxConcurrentRequests < 1 {
		return types.ConfigError("max concurrent requests must be at least 1, got %d", c.MaxConcurrentRequests)
	}
	if c.MaxCacheSize < 1 {
		return types.ConfigError("max cache size must be at least 1, got %d", c.MaxCacheSize)
	}
	return c.Overrides.Validate()
}
