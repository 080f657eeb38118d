package evm

import (
	"context"
	"math/big"
	"strings"
	"time"

	"github.com/ethereum/go-ethereum"
	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/core/types"

	"github.com/chinmay1088/emptier/chains"
	"github.com/chinmay1088/emptier/errs"
)

// Backend is the read side of the chain RPC. *ethclient.Client satisfies it.
type Backend interface {
	BalanceAt(ctx context.Context, account common.Address, blockNumber *big.Int) (*big.Int, error)
	SuggestGasPrice(ctx context.Context) (*big.Int, error)
	CallContract(ctx context.Context, msg ethereum.CallMsg, blockNumber *big.Int) ([]byte, error)
	TransactionReceipt(ctx context.Context, txHash common.Hash) (*types.Receipt, error)
}

// Indexer lists the token balances of an address.
type Indexer interface {
	TokenBalances(ctx context.Context, chainID int64, address string) ([]chains.Holding, error)
}

// Logger is the logging surface the driver writes to.
type Logger interface {
	Debug(format string, args ...any)
	Error(format string, args ...any)
}

type nopLogger struct{}

func (nopLogger) Debug(string, ...any) {}
func (nopLogger) Error(string, ...any) {}

// Options configures a Driver.
type Options struct {
	Network        chains.Network
	Provider       Provider
	Backend        Backend
	Indexer        Indexer
	RPCURL         string
	Explorer       string
	DemoFallback   bool
	PollInterval   time.Duration
	ConfirmTimeout time.Duration
	Logger         Logger
}

// Driver sweeps one EVM network through a wallet provider.
type Driver struct {
	network        chains.Network
	provider       Provider
	backend        Backend
	indexer        Indexer
	params         ChainParams
	explorer       string
	demoFallback   bool
	pollInterval   time.Duration
	confirmTimeout time.Duration
	logger         Logger
}

// NewDriver creates a Driver.
func NewDriver(opts Options) *Driver {
	d := &Driver{
		network:        opts.Network,
		provider:       opts.Provider,
		backend:        opts.Backend,
		indexer:        opts.Indexer,
		params:         NewChainParams(opts.Network, opts.RPCURL, opts.Explorer),
		explorer:       opts.Explorer,
		demoFallback:   opts.DemoFallback,
		pollInterval:   opts.PollInterval,
		confirmTimeout: opts.ConfirmTimeout,
		logger:         opts.Logger,
	}
	if d.pollInterval <= 0 {
		d.pollInterval = 2 * time.Second
	}
	if d.logger == nil {
		d.logger = nopLogger{}
	}
	return d
}

// Network returns the network this driver serves.
func (d *Driver) Network() chains.Network {
	return d.network
}

// ValidAddress reports whether s is a well-formed destination.
func (d *Driver) ValidAddress(s string) bool {
	return IsValidAddress(s)
}

// Connect switches the provider to the driver's chain, adding the chain first if the
// provider does not know it, then asks for account access. It returns the first account.
func (d *Driver) Connect(ctx context.Context) (string, error) {
	if d.provider == nil {
		return "", errs.WithSuggestion(errs.ErrProviderUnavailable,
			"create a wallet with 'emptier init' or import one with 'emptier recovery-phrase import'")
	}

	chainID := big.NewInt(d.network.ChainID)
	if err := d.provider.SwitchChain(ctx, chainID); err != nil {
		if !IsUnrecognizedChain(err) {
			return "", d.connectError(errs.ErrNetworkSwitch, err)
		}

		d.logger.Debug("provider does not know chain %s, adding %s", d.params.ChainID, d.params.ChainName)
		if err := d.provider.AddChain(ctx, d.params); err != nil {
			return "", d.connectError(errs.ErrNetworkSwitch, err)
		}
		if err := d.provider.SwitchChain(ctx, chainID); err != nil {
			return "", d.connectError(errs.ErrNetworkSwitch, err)
		}
	}

	accounts, err := d.provider.RequestAccounts(ctx)
	if err != nil {
		return "", d.connectError(errs.ErrConnectRejected, err)
	}
	if len(accounts) == 0 {
		return "", errs.ErrConnectRejected
	}

	return accounts[0].Hex(), nil
}

func (d *Driver) connectError(sentinel *errs.Error, err error) error {
	if IsUserRejected(err) {
		sentinel = errs.ErrConnectRejected
	}
	d.logger.Error("connect to %s failed: %v", d.network.Name, err)
	return errs.Because(sentinel, err)
}

// NativeBalance returns the account balance in wei.
func (d *Driver) NativeBalance(ctx context.Context, account string) (*big.Int, error) {
	balance, err := d.backend.BalanceAt(ctx, common.HexToAddress(account), nil)
	if err != nil {
		return nil, errs.Because(errs.ErrRPCUnavailable, err)
	}
	return balance, nil
}

// ListHoldings asks the indexer for the account's tokens. When the indexer fails and the
// demo fallback is enabled, the fixed demonstration list is returned instead.
func (d *Driver) ListHoldings(ctx context.Context, account string) ([]chains.Holding, error) {
	var err error = errs.ErrIndexerUnavailable
	if d.indexer != nil {
		var holdings []chains.Holding
		holdings, err = d.indexer.TokenBalances(ctx, d.network.ChainID, account)
		if err == nil {
			return holdings, nil
		}
	}

	if !d.demoFallback {
		return nil, err
	}

	d.logger.Error("token indexer failed for %s on %s, showing demo tokens: %v", account, d.network.Name, err)
	return DemoHoldings(d.network), nil
}

// TransferNative sends the whole balance minus a fixed-gas fee to destination.
// gasPrice overrides the provider's suggestion when non-nil.
func (d *Driver) TransferNative(ctx context.Context, account, destination string, gasPrice *big.Int) (chains.Receipt, error) {
	to, err := ParseAddress(destination)
	if err != nil {
		return chains.Receipt{}, err
	}
	from := common.HexToAddress(account)

	balance, err := d.backend.BalanceAt(ctx, from, nil)
	if err != nil {
		return chains.Receipt{}, errs.Because(errs.ErrRPCUnavailable, err)
	}

	if gasPrice == nil {
		gasPrice, err = d.backend.SuggestGasPrice(ctx)
		if err != nil {
			return chains.Receipt{}, errs.Because(errs.ErrRPCUnavailable, err)
		}
	}

	amount, fee, err := SweepAmount(balance, gasPrice, NativeGasLimit)
	if err != nil {
		return chains.Receipt{}, err
	}

	d.logger.Debug("sweeping %s wei from %s to %s (gas price %s)", amount, from.Hex(), to.Hex(), gasPrice)
	hash, err := d.provider.SendTransaction(ctx, TxRequest{
		From:     from,
		To:       to,
		Value:    amount,
		Gas:      NativeGasLimit,
		GasPrice: gasPrice,
	})
	if err != nil {
		return chains.Receipt{}, errs.Because(errs.ErrTxRejected, err)
	}

	if err := d.confirm(ctx, hash); err != nil {
		return chains.Receipt{}, err
	}

	return chains.Receipt{TxID: hash.Hex(), Amount: amount, Fee: fee, URL: d.txURL(hash)}, nil
}

// TransferToken transfers the token's live on-chain balance to destination.
// The cached holding balance is never used as the amount.
func (d *Driver) TransferToken(ctx context.Context, account string, holding chains.Holding, destination string) (chains.Receipt, error) {
	to, err := ParseAddress(destination)
	if err != nil {
		return chains.Receipt{}, err
	}
	if !IsValidAddress(holding.ID) {
		return chains.Receipt{}, errs.WithDetails(errs.ErrUnknownAsset, map[string]string{"token": holding.ID})
	}
	token := common.HexToAddress(holding.ID)
	from := common.HexToAddress(account)

	balance, err := d.TokenBalance(ctx, token, from)
	if err != nil {
		return chains.Receipt{}, err
	}
	if balance.Sign() <= 0 {
		return chains.Receipt{}, errs.WithDetails(errs.ErrNothingToTransfer, map[string]string{"token": holding.Symbol})
	}

	data, err := PackTransfer(to, balance)
	if err != nil {
		return chains.Receipt{}, errs.Wrap(err, "encode transfer")
	}

	d.logger.Debug("transferring %s of %s (%s) to %s", balance, holding.Symbol, token.Hex(), to.Hex())
	hash, err := d.provider.SendTransaction(ctx, TxRequest{
		From:  from,
		To:    token,
		Value: big.NewInt(0),
		Data:  data,
	})
	if err != nil {
		return chains.Receipt{}, errs.Because(errs.ErrTxRejected, err)
	}

	if err := d.confirm(ctx, hash); err != nil {
		return chains.Receipt{}, err
	}

	return chains.Receipt{TxID: hash.Hex(), Amount: balance, URL: d.txURL(hash)}, nil
}

// TokenBalance reads balanceOf(owner) from the token contract.
func (d *Driver) TokenBalance(ctx context.Context, token, owner common.Address) (*big.Int, error) {
	data, err := PackBalanceOf(owner)
	if err != nil {
		return nil, errs.Wrap(err, "encode balanceOf")
	}

	out, err := d.backend.CallContract(ctx, ethereum.CallMsg{To: &token, Data: data}, nil)
	if err != nil {
		return nil, errs.Because(errs.ErrRPCUnavailable, err)
	}

	balance, err := UnpackBalanceOf(out)
	if err != nil {
		return nil, errs.Wrap(err, "token %s", token.Hex())
	}
	return balance, nil
}

func (d *Driver) confirm(ctx context.Context, hash common.Hash) error {
	receipt, err := d.waitMined(ctx, hash)
	if err != nil {
		return err
	}
	if receipt.Status != types.ReceiptStatusSuccessful {
		return errs.WithDetails(errs.ErrTxFailed, map[string]string{"tx": hash.Hex()})
	}
	return nil
}

func (d *Driver) txURL(hash common.Hash) string {
	if d.explorer == "" {
		return ""
	}
	return strings.TrimRight(d.explorer, "/") + "/tx/" + hash.Hex()
}
