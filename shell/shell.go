// Package shell holds the presentation preferences (active network and theme)
// and builds the orchestrator for a network.
package shell

import (
	"context"
	"crypto/ecdsa"
	"fmt"

	"github.com/ethereum/go-ethereum/ethclient"
	"github.com/gagliardetto/solana-go"
	"github.com/gagliardetto/solana-go/rpc"

	"github.com/chinmay1088/emptier/api"
	"github.com/chinmay1088/emptier/chains"
	"github.com/chinmay1088/emptier/chains/evm"
	solchain "github.com/chinmay1088/emptier/chains/solana"
	"github.com/chinmay1088/emptier/config"
	"github.com/chinmay1088/emptier/errs"
	"github.com/chinmay1088/emptier/sweep"
)

// Keys supplies the signing keys for the local providers. *wallet.Manager satisfies it.
type Keys interface {
	EthereumKey() (*ecdsa.PrivateKey, error)
	SolanaKey() (solana.PrivateKey, error)
}

// EVMDialer opens the read backend for an RPC URL and returns a func that closes it.
type EVMDialer func(ctx context.Context, rpcURL string) (evm.Backend, func(), error)

// SolanaDialer opens a Solana RPC client.
type SolanaDialer func(rpcURL string) SolanaClient

// SolanaClient reads chain state and submits transactions.
type SolanaClient interface {
	solchain.RPC
	solchain.Sender
}

func dialEthclient(ctx context.Context, rpcURL string) (evm.Backend, func(), error) {
	client, err := ethclient.DialContext(ctx, rpcURL)
	if err != nil {
		return nil, nil, err
	}
	return client, client.Close, nil
}

func dialSolana(rpcURL string) SolanaClient {
	return rpc.New(rpcURL)
}

// Shell tracks the active network and theme and persists both to the config file.
type Shell struct {
	cfg        *config.Config
	path       string
	logger     *config.Logger
	dialEVM    EVMDialer
	dialSolana SolanaDialer
}

// New creates a Shell over cfg. Preference changes are saved to path; an empty path keeps them in memory.
func New(cfg *config.Config, path string, logger *config.Logger) *Shell {
	if logger == nil {
		logger = config.NullLogger()
	}
	return &Shell{
		cfg:        cfg,
		path:       path,
		logger:     logger,
		dialEVM:    dialEthclient,
		dialSolana: dialSolana,
	}
}

// WithDialers replaces the RPC dialers. Nil arguments keep the current dialer.
func (s *Shell) WithDialers(evmDial EVMDialer, solDial SolanaDialer) *Shell {
	if evmDial != nil {
		s.dialEVM = evmDial
	}
	if solDial != nil {
		s.dialSolana = solDial
	}
	return s
}

// Config returns the underlying configuration.
func (s *Shell) Config() *config.Config {
	return s.cfg
}

// Active returns the active network.
func (s *Shell) Active() (chains.Network, error) {
	return chains.Lookup(s.cfg.Shell.Network)
}

// Use makes name the active network.
func (s *Shell) Use(name string) (chains.Network, error) {
	network, err := chains.Lookup(name)
	if err != nil {
		return chains.Network{}, err
	}

	s.cfg.Shell.Network = network.Name
	if err := s.save(func(c *config.Config) { c.Shell.Network = network.Name }); err != nil {
		return chains.Network{}, err
	}
	return network, nil
}

// Theme returns the display theme, falling back to dark.
func (s *Shell) Theme() Theme {
	t, err := ParseTheme(s.cfg.Shell.Theme)
	if err != nil {
		return ThemeDark
	}
	return t
}

// SetTheme changes the display theme.
func (s *Shell) SetTheme(name string) (Theme, error) {
	t, err := ParseTheme(name)
	if err != nil {
		return "", err
	}

	s.cfg.Shell.Theme = string(t)
	if err := s.save(func(c *config.Config) { c.Shell.Theme = string(t) }); err != nil {
		return "", err
	}
	return t, nil
}

// ToggleTheme switches between light and dark.
func (s *Shell) ToggleTheme() (Theme, error) {
	if s.Theme() == ThemeDark {
		return s.SetTheme(string(ThemeLight))
	}
	return s.SetTheme(string(ThemeDark))
}

// save patches one preference into the config file. The in-memory config
// carries environment overrides and resolved paths, so it is never written whole.
func (s *Shell) save(patch func(*config.Config)) error {
	if s.path == "" {
		return nil
	}
	if err := config.Update(s.path, patch); err != nil {
		return fmt.Errorf("failed to save config: %w", err)
	}
	return nil
}

// OpenOptions selects what Open connects with.
type OpenOptions struct {
	Network chains.Network
	Keys    Keys
	// KeypairFile, if set, signs Solana transfers with a solana-keygen keypair instead of the vault key.
	KeypairFile string
	OnResult    func(sweep.Result)
}

// Session is an opened orchestrator and the resources behind it.
type Session struct {
	*sweep.Orchestrator
	release func()
}

// Close releases the RPC connections.
func (s *Session) Close() {
	s.Orchestrator.Disconnect()
	if s.release != nil {
		s.release()
	}
}

// Open builds the orchestrator for opts.Network, or the active network when unset.
func (s *Shell) Open(ctx context.Context, opts OpenOptions) (*Session, error) {
	network := opts.Network
	if network.Name == "" {
		active, err := s.Active()
		if err != nil {
			return nil, err
		}
		network = active
	}

	logger := s.logger.WithPrefix(network.Name)
	prices := api.NewPrices(s.apiClient(logger), s.cfg.Prices.BaseURL)

	var (
		chain   sweep.Chain
		release func()
		err     error
	)
	switch network.Family {
	case chains.FamilyEVM:
		chain, release, err = s.openEVM(ctx, network, opts, logger)
	case chains.FamilySolana:
		chain, err = s.openSolana(opts, logger)
	default:
		err = errs.WithDetails(errs.ErrUnknownNetwork, map[string]string{"network": network.Name})
	}
	if err != nil {
		return nil, err
	}

	orchestrator := sweep.New(sweep.Options{
		Chain:    chain,
		Prices:   prices,
		Logger:   logger,
		OnResult: opts.OnResult,
	})
	return &Session{Orchestrator: orchestrator, release: release}, nil
}

func (s *Shell) openEVM(ctx context.Context, network chains.Network, opts OpenOptions, logger *config.Logger) (sweep.Chain, func(), error) {
	netCfg := s.evmConfig(network)

	var (
		provider evm.Provider
		keyed    *evm.KeyedProvider
	)
	if opts.Keys != nil {
		key, err := opts.Keys.EthereumKey()
		if err != nil {
			return nil, nil, err
		}
		keyed = evm.NewKeyedProvider(key, nil).Register(netCfg.ChainID, netCfg.RPC)
		provider = keyed
	}

	backend, closeBackend, err := s.dialEVM(ctx, netCfg.RPC)
	if err != nil {
		err = errs.WithDetails(errs.Because(errs.ErrRPCUnavailable, err), map[string]string{"rpc": netCfg.RPC})
		return nil, nil, err
	}
	release := func() {
		if closeBackend != nil {
			closeBackend()
		}
		if keyed != nil {
			keyed.Close()
		}
	}

	indexer := api.NewIndexer(s.apiClient(logger), s.cfg.Indexer.BaseURL, s.cfg.Indexer.APIKey)

	network.ChainID = netCfg.ChainID
	driver := evm.NewDriver(evm.Options{
		Network:        network,
		Provider:       provider,
		Backend:        backend,
		Indexer:        indexer,
		RPCURL:         netCfg.RPC,
		Explorer:       netCfg.Explorer,
		DemoFallback:   s.cfg.Indexer.DemoFallback,
		PollInterval:   s.cfg.Confirm.PollInterval,
		ConfirmTimeout: s.cfg.Confirm.Timeout,
		Logger:         logger,
	})
	return driver, release, nil
}

func (s *Shell) openSolana(opts OpenOptions, logger *config.Logger) (sweep.Chain, error) {
	netCfg := s.cfg.Networks.Solana
	client := s.dialSolana(netCfg.RPC)
	commitment := rpc.CommitmentType(netCfg.Commitment)

	var provider solchain.Provider
	switch {
	case opts.KeypairFile != "":
		key, err := solchain.LoadKeygenFile(config.ExpandHome(opts.KeypairFile))
		if err != nil {
			return nil, errs.Because(errs.ErrProviderUnavailable, err)
		}
		provider = solchain.NewKeyedProvider(key, client, commitment)
	case opts.Keys != nil:
		key, err := opts.Keys.SolanaKey()
		if err != nil {
			return nil, err
		}
		provider = solchain.NewKeyedProvider(key, client, commitment)
	}

	return solchain.NewDriver(solchain.Options{
		Provider:        provider,
		RPC:             client,
		Commitment:      commitment,
		ReserveLamports: netCfg.ReserveLamports,
		Explorer:        netCfg.Explorer,
		PollInterval:    s.cfg.Confirm.PollInterval,
		ConfirmTimeout:  s.cfg.Confirm.Timeout,
		Logger:          logger,
	}), nil
}

func (s *Shell) evmConfig(network chains.Network) config.EVMNetworkConfig {
	var netCfg config.EVMNetworkConfig
	switch network.Name {
	case chains.BNB.Name:
		netCfg = s.cfg.Networks.BNB
	default:
		netCfg = s.cfg.Networks.Ethereum
	}
	if netCfg.ChainID == 0 {
		netCfg.ChainID = network.ChainID
	}
	return netCfg
}

func (s *Shell) apiClient(logger *config.Logger) *api.Client {
	return api.NewClient(api.Options{
		Timeout:       s.cfg.Indexer.Timeout,
		RatePerSecond: s.cfg.Indexer.RatePerSecond,
		Burst:         s.cfg.Indexer.Burst,
		Logger:        logger,
	})
}
