// Package config loads the scenario runner configuration file.
package config

import (
	"bytes"
	"io"
	"os"

	"github.com/ethereum/go-ethereum/common"
	"github.com/pkg/errors"
	"gopkg.in/yaml.v3"
)

// DevelopmentKey is the first well-known development account key. It funds
// the in-process chain when no keys are configured.
const DevelopmentKey = "0xac0974bec39a17e36ba4a6b4d238ff944bacb478cbed5efcae784d7bf4f2ff80"

// Config is the top-level configuration structure.
type Config struct {
	// Network names the deployment, e.g. "development" or "mainnet". Local
	// networks never contact block explorers.
	Network string `yaml:"network"`

	// RPCURL is the JSON-RPC endpoint. An empty URL runs an in-process chain.
	RPCURL string `yaml:"rpc_url,omitempty"`

	// Keys are hex private keys of the sending accounts.
	Keys []string `yaml:"keys,omitempty"`

	// Accounts maps aliases such as "Geoff" to addresses.
	Accounts map[string]string `yaml:"accounts,omitempty"`

	// DefaultFrom is the alias or address statements are sent from. It
	// defaults to the first key.
	DefaultFrom string `yaml:"default_from,omitempty"`

	Artifacts   string `yaml:"artifacts"`
	NetworksDir string `yaml:"networks_dir,omitempty"`
	DryRun      bool   `yaml:"dry_run,omitempty"`

	Etherscan EtherscanConfig `yaml:"etherscan,omitempty"`
	Log       LogConfig       `yaml:"log"`
}

// EtherscanConfig configures source verification.
type EtherscanConfig struct {
	APIKey     string `yaml:"api_key,omitempty"`
	URL        string `yaml:"url"`
	SourcesDir string `yaml:"sources_dir,omitempty"`
	Compiler   string `yaml:"compiler,omitempty"`
}

// LogConfig configures the logger.
type LogConfig struct {
	Level  string `yaml:"level"`
	Format string `yaml:"format"`
}

// DefaultConfig returns the default configuration settings.
func DefaultConfig() Config {
	return Config{
		Network:   "development",
		Keys:      []string{DevelopmentKey},
		Artifacts: "out",
		Etherscan: EtherscanConfig{
			URL: "https://api.etherscan.io/api",
		},
		Log: LogConfig{
			Level:  "info",
			Format: "text",
		},
	}
}

// Validate validates the configuration settings.
func (c *Config) Validate() error {
	if c.Network == "" {
		return errors.New("network is required")
	}
	if len(c.Keys) == 0 {
		return errors.New("at least one key is required")
	}
	for alias, addr := range c.Accounts {
		if !common.IsHexAddress(addr) {
			return errors.Errorf("account %s: invalid address %q", alias, addr)
		}
	}
	switch c.Log.Level {
	case "debug", "info", "warn", "error":
	default:
		return errors.Errorf("unknown log level: %s", c.Log.Level)
	}
	switch c.Log.Format {
	case "text", "json":
	default:
		return errors.Errorf("unknown log format: %s", c.Log.Format)
	}
	return nil
}

// Load reads the configuration file at path over the defaults. Environment
// variables in the file, written $VAR or ${VAR}, are substituted. An empty
// path yields the defaults.
func Load(path string) (Config, error) {
	cfg := DefaultConfig()
	if path == "" {
		return cfg, cfg.Validate()
	}

	raw, err := os.ReadFile(path)
	if err != nil {
		return cfg, errors.Wrapf(err, "unable to read config file '%s'", path)
	}
	return Parse(raw)
}

// Parse decodes a configuration document over the defaults. Unknown fields
// are rejected.
func Parse(raw []byte) (Config, error) {
	cfg := DefaultConfig()
	dec := yaml.NewDecoder(bytes.NewReader([]byte(os.ExpandEnv(string(raw)))))
	dec.KnownFields(true)
	if err := dec.Decode(&cfg); err != nil && err != io.EOF {
		return cfg, errors.Wrap(err, "failed to parse config")
	}
	if err := cfg.Validate(); err != nil {
		return cfg, errors.Wrap(err, "invalid config")
	}
	return cfg, nil
}
