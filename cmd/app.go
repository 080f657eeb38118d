package cmd

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/chinmay1088/emptier/chains"
	"github.com/chinmay1088/emptier/config"
	"github.com/chinmay1088/emptier/errs"
	"github.com/chinmay1088/emptier/shell"
	"github.com/chinmay1088/emptier/sweep"
	"github.com/chinmay1088/emptier/wallet"
)

var flags struct {
	home    string
	network string
	keypair string
	yes     bool
	verbose bool
}

// app is what every command runs against. It is built once per invocation.
var app struct {
	cfg     *config.Config
	logger  *config.Logger
	shell   *shell.Shell
	manager *wallet.Manager
}

func setup(cmd *cobra.Command, _ []string) error {
	home := flags.home
	if home == "" {
		home = os.Getenv(config.EnvHome)
	}
	if home == "" {
		home = config.DefaultHome()
	}
	home = config.ExpandHome(home)

	if err := config.LoadDotEnv(home); err != nil {
		return fmt.Errorf("failed to load .env: %w", err)
	}
	// .env in the working directory, if any, fills what the home one left unset
	if err := config.LoadDotEnv("."); err != nil {
		return fmt.Errorf("failed to load .env: %w", err)
	}

	cfgPath := config.Path(home)
	cfg, err := config.LoadOrDefault(cfgPath)
	if err != nil {
		return fmt.Errorf("failed to load config %s: %w", cfgPath, err)
	}
	cfg.Home = home
	if cfg.Logging.File == config.Defaults().Logging.File {
		cfg.Logging.File = filepath.Join(home, "emptier.log")
	}

	level := config.ParseLogLevel(cfg.Logging.Level)
	if flags.verbose {
		level = config.LogLevelDebug
	}
	logger, err := config.NewLogger(level, cfg.Logging.File)
	if err != nil {
		// logging is best effort
		logger = config.NullLogger()
	}

	switch cfg.Output.Color {
	case "never":
		color.NoColor = true
	case "always":
		color.NoColor = false
	}

	app.cfg = cfg
	app.logger = logger
	app.shell = shell.New(cfg, cfgPath, logger)
	app.manager = wallet.NewManager(config.VaultPath(home))

	logger.Debug("%s: home %s", cmd.CommandPath(), home)
	return nil
}

func teardown() {
	if app.manager != nil {
		app.manager.Lock()
	}
	if app.logger != nil {
		_ = app.logger.Close()
	}
}

func palette() shell.Palette {
	return app.shell.Theme().Palette()
}

// network resolves --network, falling back to the active network.
func network() (chains.Network, error) {
	if flags.network != "" {
		return chains.Lookup(flags.network)
	}
	return app.shell.Active()
}

// unlock asks for the vault password. Entering it is the approval to connect.
func unlock() error {
	if !app.manager.VaultExists() {
		return wallet.ErrNoWallet
	}
	if app.manager.IsUnlocked() {
		return nil
	}

	password, err := readPassword("Enter your wallet password: ")
	if err != nil {
		return err
	}
	return app.manager.Unlock(password)
}

// connect opens the orchestrator for the selected network, connects it and
// loads the holdings. A holdings failure is reported but not fatal.
func connect(ctx context.Context, onResult func(sweep.Result)) (*shell.Session, error) {
	n, err := network()
	if err != nil {
		return nil, err
	}

	opts := shell.OpenOptions{Network: n, OnResult: onResult}
	if n.Family == chains.FamilySolana && flags.keypair != "" {
		opts.KeypairFile = flags.keypair
	} else {
		if err := unlock(); err != nil {
			return nil, err
		}
		opts.Keys = app.manager
	}

	session, err := app.shell.Open(ctx, opts)
	if err != nil {
		return nil, err
	}

	fmt.Printf("🔌 Connecting to %s...\n", n.DisplayName)
	if err := session.Connect(ctx); err != nil {
		session.Close()
		return nil, err
	}

	if err := session.Refresh(ctx); err != nil {
		printWarning(err)
	}
	return session, nil
}

// printWarning reports a non-fatal error.
func printWarning(err error) {
	p := palette()
	p.Pending.Printf("⚠️  %v\n", err)
	if s := errs.SuggestionOf(err); s != "" {
		p.Muted.Printf("   💡 %s\n", s)
	}
}
