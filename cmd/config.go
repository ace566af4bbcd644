package cmd

import (
	"encoding/json"
	"flag"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Config is the content of the optional configuration file. Every field
// mirrors a global flag.
type Config struct {
	WalletFile string `json:"wallet_file,omitempty" yaml:"wallet_file,omitempty"`
	Store      string `json:"store,omitempty" yaml:"store,omitempty"`
	SlotKey    string `json:"slot_key,omitempty" yaml:"slot_key,omitempty"`
	Currency   string `json:"currency,omitempty" yaml:"currency,omitempty"`
	FeedURL    string `json:"feed_url,omitempty" yaml:"feed_url,omitempty"`
	CacheTTL   string `json:"cache_ttl,omitempty" yaml:"cache_ttl,omitempty"` // e.g. "30s", "1m"
	APIKey     string `json:"coingecko_api_key,omitempty" yaml:"coingecko_api_key,omitempty"`
}

// LoadConfig loads configuration from a file (YAML, or JSON).
func LoadConfig(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read config file: %w", err)
	}

	cfg := &Config{}

	// Try YAML first, fall back to JSON
	if err := yaml.Unmarshal(data, cfg); err != nil {
		if jerr := json.Unmarshal(data, cfg); jerr != nil {
			return nil, fmt.Errorf("parse config %q (tried YAML and JSON): %w", path, err)
		}
	}
	return cfg, nil
}

// Apply sets the flags of fs that were not set explicitly on the command line.
func (c *Config) Apply(fs *flag.FlagSet) error {
	explicit := make(map[string]bool)
	fs.Visit(func(f *flag.Flag) { explicit[f.Name] = true })

	values := []struct{ name, value string }{
		{"wallet-file", c.WalletFile},
		{"store", c.Store},
		{"slot-key", c.SlotKey},
		{"currency", c.Currency},
		{"feed-url", c.FeedURL},
		{"cache-ttl", c.CacheTTL},
		{"coingecko-api-key", c.APIKey},
	}
	for _, v := range values {
		if v.value == "" || explicit[v.name] {
			continue
		}
		if err := fs.Set(v.name, v.value); err != nil {
			return fmt.Errorf("config: invalid %s %q: %w", v.name, v.value, err)
		}
	}
	return nil
}

// Configure applies the configuration file given by -config, if any, to the
// global flags. It must be called after flag.Parse.
func Configure() error {
	if *configFile == "" {
		return nil
	}
	cfg, err := LoadConfig(*configFile)
	if err != nil {
		return err
	}
	return cfg.Apply(flag.CommandLine)
}
