package config

import (
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
)

// Environment variable names.
const (
	EnvHome          = "EMPTIER_HOME"
	EnvNetwork       = "EMPTIER_NETWORK"
	EnvEthereumRPC   = "EMPTIER_ETH_RPC"
	EnvBNBRPC        = "EMPTIER_BNB_RPC"
	EnvSolanaRPC     = "EMPTIER_SOLANA_RPC"
	EnvIndexerAPIKey = "EMPTIER_INDEXER_API_KEY" // #nosec G101 -- variable name, not a credential
	EnvDemoFallback  = "EMPTIER_DEMO_FALLBACK"
	EnvLogLevel      = "EMPTIER_LOG_LEVEL"
	EnvNoColor       = "NO_COLOR"
)

// LoadDotEnv loads dir/.env into the process environment. A missing file is not an error.
// Variables that are already set win over the file.
func LoadDotEnv(dir string) error {
	fp := filepath.Join(dir, ".env")
	if _, err := os.Stat(fp); os.IsNotExist(err) {
		return nil
	}
	return godotenv.Load(fp)
}

// ApplyEnvironment applies environment variable overrides to the configuration.
func ApplyEnvironment(cfg *Config) {
	if v := os.Getenv(EnvHome); v != "" {
		cfg.Home = v
	}

	if v := os.Getenv(EnvNetwork); v != "" {
		cfg.Shell.Network = strings.ToLower(strings.TrimSpace(v))
	}

	if v := os.Getenv(EnvEthereumRPC); v != "" {
		cfg.Networks.Ethereum.RPC = strings.TrimSpace(v)
	}

	if v := os.Getenv(EnvBNBRPC); v != "" {
		cfg.Networks.BNB.RPC = strings.TrimSpace(v)
	}

	if v := os.Getenv(EnvSolanaRPC); v != "" {
		cfg.Networks.Solana.RPC = strings.TrimSpace(v)
	}

	if v := os.Getenv(EnvIndexerAPIKey); v != "" {
		cfg.Indexer.APIKey = strings.TrimSpace(v)
	}

	if v := os.Getenv(EnvDemoFallback); v != "" {
		cfg.Indexer.DemoFallback = parseBool(v)
	}

	if v := os.Getenv(EnvLogLevel); v != "" {
		cfg.Logging.Level = strings.ToLower(v)
	}

	if _, ok := os.LookupEnv(EnvNoColor); ok {
		cfg.Output.Color = "never"
	}
}

func parseBool(s string) bool {
	s = strings.ToLower(strings.TrimSpace(s))
	if s == "1" || s == "true" || s == "yes" || s == "on" {
		return true
	}
	b, _ := strconv.ParseBool(s)
	return b
}
