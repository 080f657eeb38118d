// Package config provides configuration management for emptier.
package config

import (
	"os"
	"path/filepath"
	"strings"
	"time"

	"gopkg.in/yaml.v3"
)

// Config represents the application configuration.
type Config struct {
	Version  int            `yaml:"version"`
	Home     string         `yaml:"home"`
	Shell    ShellConfig    `yaml:"shell"`
	Networks NetworksConfig `yaml:"networks"`
	Indexer  IndexerConfig  `yaml:"indexer"`
	Prices   PricesConfig   `yaml:"prices"`
	Confirm  ConfirmConfig  `yaml:"confirm"`
	Output   OutputConfig   `yaml:"output"`
	Logging  LoggingConfig  `yaml:"logging"`
}

// ShellConfig holds the presentation preferences that survive between runs.
type ShellConfig struct {
	Network string `yaml:"network"`
	Theme   string `yaml:"theme"`
}

// NetworksConfig defines per-network RPC settings.
type NetworksConfig struct {
	Ethereum EVMNetworkConfig    `yaml:"ethereum"`
	BNB      EVMNetworkConfig    `yaml:"bnb"`
	Solana   SolanaNetworkConfig `yaml:"solana"`
}

// EVMNetworkConfig defines settings for an EVM-compatible network.
type EVMNetworkConfig struct {
	RPC      string `yaml:"rpc"`
	ChainID  int64  `yaml:"chain_id"`
	Explorer string `yaml:"explorer"`
}

// SolanaNetworkConfig defines Solana settings.
type SolanaNetworkConfig struct {
	RPC             string `yaml:"rpc"`
	Commitment      string `yaml:"commitment"`
	ReserveLamports uint64 `yaml:"reserve_lamports"`
	Explorer        string `yaml:"explorer"`
}

// IndexerConfig configures the token balance indexer.
type IndexerConfig struct {
	BaseURL       string        `yaml:"base_url"`
	APIKey        string        `yaml:"api_key"`
	DemoFallback  bool          `yaml:"demo_fallback"`
	RatePerSecond float64       `yaml:"rate_per_second"`
	Burst         int           `yaml:"burst"`
	Timeout       time.Duration `yaml:"timeout"`
}

// PricesConfig configures the fiat price lookup.
type PricesConfig struct {
	BaseURL string `yaml:"base_url"`
}

// ConfirmConfig controls how long transfers are polled for confirmation.
type ConfirmConfig struct {
	PollInterval time.Duration `yaml:"poll_interval"`
	Timeout      time.Duration `yaml:"timeout"`
}

// OutputConfig defines output formatting settings.
type OutputConfig struct {
	Color string `yaml:"color"`
}

// LoggingConfig defines logging settings.
type LoggingConfig struct {
	Level string `yaml:"level"`
	File  string `yaml:"file"`
}

// Load reads configuration from the specified file.
func Load(path string) (*Config, error) {
	// #nosec G304 -- config path comes from the home directory or a flag
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	cfg := Defaults()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, err
	}

	return cfg, nil
}

// LoadOrDefault reads path if it exists and falls back to defaults otherwise.
// Environment overrides are applied in both cases.
func LoadOrDefault(path string) (*Config, error) {
	cfg, err := Load(path)
	if os.IsNotExist(err) {
		cfg, err = Defaults(), nil
	}
	if err != nil {
		return nil, err
	}

	ApplyEnvironment(cfg)
	return cfg, nil
}

// Save writes configuration to the specified file.
func Save(cfg *Config, path string) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o700); err != nil {
		return err
	}

	data, err := yaml.Marshal(cfg)
	if err != nil {
		return err
	}

	return os.WriteFile(path, data, 0o600)
}

// Update applies fn to the configuration stored at path and writes it back.
// Environment overrides are not applied, so values that only come from the
// environment never reach the file. A missing file starts from defaults.
func Update(path string, fn func(*Config)) error {
	cfg, err := Load(path)
	if os.IsNotExist(err) {
		cfg, err = Defaults(), nil
	}
	if err != nil {
		return err
	}

	fn(cfg)
	return Save(cfg, path)
}

// Path returns the config file path inside home.
func Path(home string) string {
	return filepath.Join(home, "config.yaml")
}

// VaultPath returns the encrypted vault path inside home.
func VaultPath(home string) string {
	return filepath.Join(home, "wallet.vault")
}

// DefaultHome returns the default emptier home directory.
func DefaultHome() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ".emptier"
	}
	return filepath.Join(home, ".emptier")
}

// ExpandHome resolves a leading "~/" against the user's home directory.
func ExpandHome(path string) string {
	if !strings.HasPrefix(path, "~/") {
		return path
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return path
	}
	return filepath.Join(home, path[2:])
}

// HomeDir returns the resolved home directory of the configuration.
func (c *Config) HomeDir() string {
	return ExpandHome(c.Home)
}
