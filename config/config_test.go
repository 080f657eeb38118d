package config_test

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/chinmay1088/emptier/config"
)

func TestLoadSave_RoundTrip(t *testing.T) {
	t.Parallel()
	path := filepath.Join(t.TempDir(), "nested", "config.yaml")

	cfg := config.Defaults()
	cfg.Shell.Network = "solana"
	cfg.Shell.Theme = "light"
	cfg.Indexer.APIKey = "ckey_test"
	cfg.Confirm.PollInterval = 500 * time.Millisecond

	require.NoError(t, config.Save(cfg, path))

	info, err := os.Stat(path)
	require.NoError(t, err)
	assert.Equal(t, os.FileMode(0o600), info.Mode().Perm())

	loaded, err := config.Load(path)
	require.NoError(t, err)
	assert.Equal(t, "solana", loaded.Shell.Network)
	assert.Equal(t, "light", loaded.Shell.Theme)
	assert.Equal(t, "ckey_test", loaded.Indexer.APIKey)
	assert.Equal(t, 500*time.Millisecond, loaded.Confirm.PollInterval)
	assert.Equal(t, int64(56), loaded.Networks.BNB.ChainID)
}

func TestUpdate_KeepsFileValues(t *testing.T) {
	t.Parallel()
	path := filepath.Join(t.TempDir(), "config.yaml")

	cfg := config.Defaults()
	cfg.Indexer.APIKey = "ckey_file"
	require.NoError(t, config.Save(cfg, path))

	require.NoError(t, config.Update(path, func(c *config.Config) { c.Shell.Theme = "light" }))

	loaded, err := config.Load(path)
	require.NoError(t, err)
	assert.Equal(t, "light", loaded.Shell.Theme)
	assert.Equal(t, "ckey_file", loaded.Indexer.APIKey)
}

func TestUpdate_MissingFileStartsFromDefaults(t *testing.T) {
	t.Parallel()
	path := filepath.Join(t.TempDir(), "config.yaml")

	require.NoError(t, config.Update(path, func(c *config.Config) { c.Shell.Network = "solana" }))

	loaded, err := config.Load(path)
	require.NoError(t, err)
	assert.Equal(t, "solana", loaded.Shell.Network)
	assert.Equal(t, config.Defaults().Networks.Ethereum.RPC, loaded.Networks.Ethereum.RPC)
}

func TestLoad_PartialFileKeepsDefaults(t *testing.T) {
	t.Parallel()
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte("shell:\n  theme: light\n"), 0o600))

	cfg, err := config.Load(path)
	require.NoError(t, err)
	assert.Equal(t, "light", cfg.Shell.Theme)
	assert.Equal(t, "ethereum", cfg.Shell.Network)
	assert.Equal(t, config.DefaultSolanaRPC, cfg.Networks.Solana.RPC)
}

func TestLoad_InvalidYAML(t *testing.T) {
	t.Parallel()
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte("shell: [unterminated"), 0o600))

	_, err := config.Load(path)
	require.Error(t, err)
}

func TestLoadOrDefault_MissingFile(t *testing.T) {
	t.Parallel()

	cfg, err := config.LoadOrDefault(filepath.Join(t.TempDir(), "absent.yaml"))
	require.NoError(t, err)
	assert.Equal(t, 1, cfg.Version)
}

func TestDefaults(t *testing.T) {
	t.Parallel()
	cfg := config.Defaults()

	assert.Equal(t, "~/.emptier", cfg.Home)
	assert.Equal(t, "dark", cfg.Shell.Theme)
	assert.Equal(t, int64(1), cfg.Networks.Ethereum.ChainID)
	assert.Equal(t, int64(56), cfg.Networks.BNB.ChainID)
	assert.Equal(t, "https://bsc-dataseed.binance.org/", cfg.Networks.BNB.RPC)
	assert.Equal(t, "confirmed", cfg.Networks.Solana.Commitment)
	assert.Equal(t, uint64(10_000_000), cfg.Networks.Solana.ReserveLamports)
	assert.True(t, cfg.Indexer.DemoFallback)
	assert.Equal(t, "error", cfg.Logging.Level)
}

func TestPaths(t *testing.T) {
	t.Parallel()

	assert.Equal(t, filepath.Join("h", "config.yaml"), config.Path("h"))
	assert.Equal(t, filepath.Join("h", "wallet.vault"), config.VaultPath("h"))
	assert.Equal(t, "/abs/path", config.ExpandHome("/abs/path"))
	assert.False(t, strings.HasPrefix(config.ExpandHome("~/x"), "~"))
}
