package solana

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"math/big"
	"strings"
	"time"

	"github.com/gagliardetto/solana-go"
	"github.com/gagliardetto/solana-go/rpc"

	"github.com/chinmay1088/emptier/chains"
	"github.com/chinmay1088/emptier/errs"
)

// DefaultReserveLamports is left behind by a native sweep to cover fees (0.01 SOL).
const DefaultReserveLamports uint64 = 10_000_000

// RPC is the chain RPC surface the driver reads from. *rpc.Client satisfies it.
type RPC interface {
	GetBalance(ctx context.Context, account solana.PublicKey, commitment rpc.CommitmentType) (*rpc.GetBalanceResult, error)
	GetTokenAccountsByOwner(ctx context.Context, owner solana.PublicKey, conf *rpc.GetTokenAccountsConfig, opts *rpc.GetTokenAccountsOpts) (*rpc.GetTokenAccountsResult, error)
	GetTokenAccountBalance(ctx context.Context, account solana.PublicKey, commitment rpc.CommitmentType) (*rpc.GetTokenAccountBalanceResult, error)
	GetAccountInfoWithOpts(ctx context.Context, account solana.PublicKey, opts *rpc.GetAccountInfoOpts) (*rpc.GetAccountInfoResult, error)
	GetLatestBlockhash(ctx context.Context, commitment rpc.CommitmentType) (*rpc.GetLatestBlockhashResult, error)
	GetSignatureStatuses(ctx context.Context, searchTransactionHistory bool, transactionSignatures ...solana.Signature) (*rpc.GetSignatureStatusesResult, error)
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
	Provider        Provider
	RPC             RPC
	Commitment      rpc.CommitmentType
	ReserveLamports uint64
	Explorer        string
	PollInterval    time.Duration
	ConfirmTimeout  time.Duration
	Logger          Logger
}

// Driver sweeps Solana mainnet through a wallet provider.
type Driver struct {
	provider       Provider
	rpc            RPC
	commitment     rpc.CommitmentType
	reserve        uint64
	explorer       string
	pollInterval   time.Duration
	confirmTimeout time.Duration
	logger         Logger
}

// NewDriver creates a Driver.
func NewDriver(opts Options) *Driver {
	d := &Driver{
		provider:       opts.Provider,
		rpc:            opts.RPC,
		commitment:     opts.Commitment,
		reserve:        opts.ReserveLamports,
		explorer:       opts.Explorer,
		pollInterval:   opts.PollInterval,
		confirmTimeout: opts.ConfirmTimeout,
		logger:         opts.Logger,
	}
	if d.commitment == "" {
		d.commitment = rpc.CommitmentConfirmed
	}
	if d.reserve == 0 {
		d.reserve = DefaultReserveLamports
	}
	if d.pollInterval <= 0 {
		d.pollInterval = 2 * time.Second
	}
	if d.logger == nil {
		d.logger = nopLogger{}
	}
	return d
}

func (d *Driver) Network() chains.Network {
	return chains.Solana
}

func (d *Driver) ValidAddress(s string) bool {
	return IsValidAddress(s)
}

// Reserve returns the lamports a native sweep leaves behind.
func (d *Driver) Reserve() uint64 {
	return d.reserve
}

// Connect asks the provider for its public key.
func (d *Driver) Connect(ctx context.Context) (string, error) {
	if d.provider == nil {
		return "", errs.WithSuggestion(errs.ErrProviderUnavailable,
			"install a Solana wallet such as Phantom (https://phantom.app/), or create one with 'emptier init'")
	}

	pk, err := d.provider.Connect(ctx)
	if err != nil {
		d.logger.Error("connect to solana failed: %v", err)
		return "", errs.Because(errs.ErrConnectRejected, err)
	}
	return pk.String(), nil
}

// NativeBalance returns the account balance in lamports.
func (d *Driver) NativeBalance(ctx context.Context, account string) (*big.Int, error) {
	owner, err := solana.PublicKeyFromBase58(account)
	if err != nil {
		return nil, errs.Wrap(err, "account %s", account)
	}

	out, err := d.rpc.GetBalance(ctx, owner, d.commitment)
	if err != nil {
		return nil, errs.Because(errs.ErrRPCUnavailable, err)
	}
	return new(big.Int).SetUint64(out.Value), nil
}

type parsedTokenAccount struct {
	Parsed struct {
		Info struct {
			Mint        string            `json:"mint"`
			Owner       string            `json:"owner"`
			TokenAmount rpc.UiTokenAmount `json:"tokenAmount"`
		} `json:"info"`
		Type string `json:"type"`
	} `json:"parsed"`
}

// ListHoldings returns one holding per SPL token account owned by account,
// skipping empty ones. A holding is keyed by its mint. Further accounts for a
// mint already listed are keyed by their own address.
func (d *Driver) ListHoldings(ctx context.Context, account string) ([]chains.Holding, error) {
	owner, err := solana.PublicKeyFromBase58(account)
	if err != nil {
		return nil, errs.Wrap(err, "account %s", account)
	}

	programID := solana.TokenProgramID
	out, err := d.rpc.GetTokenAccountsByOwner(ctx, owner,
		&rpc.GetTokenAccountsConfig{ProgramId: &programID},
		&rpc.GetTokenAccountsOpts{Commitment: d.commitment, Encoding: solana.EncodingJSONParsed},
	)
	if err != nil {
		return nil, errs.Because(errs.ErrRPCUnavailable, err)
	}

	holdings := make([]chains.Holding, 0, len(out.Value))
	seen := make(map[string]bool, len(out.Value))
	for _, acc := range out.Value {
		if acc == nil || acc.Account.Data == nil {
			continue
		}

		var parsed parsedTokenAccount
		if err := json.Unmarshal(acc.Account.Data.GetRawJSON(), &parsed); err != nil {
			d.logger.Debug("skipping token account %s: %v", acc.Pubkey, err)
			continue
		}
		info := parsed.Parsed.Info

		balance, ok := new(big.Int).SetString(info.TokenAmount.Amount, 10)
		if !ok || balance.Sign() <= 0 {
			continue
		}

		id := info.Mint
		if seen[info.Mint] {
			id = acc.Pubkey.String()
			d.logger.Debug("mint %s has another token account %s", info.Mint, id)
		}
		seen[info.Mint] = true

		holdings = append(holdings, chains.Holding{
			ID:       id,
			Account:  acc.Pubkey.String(),
			Mint:     info.Mint,
			Symbol:   mintSymbol(info.Mint),
			Balance:  balance,
			Decimals: int32(info.TokenAmount.Decimals),
		})
	}
	return holdings, nil
}

func mintSymbol(mint string) string {
	if len(mint) > 4 {
		return mint[:4]
	}
	return mint
}

// TransferNative sends the balance minus the reserve to destination.
// Solana fees are fixed per signature, so fee overrides are ignored.
func (d *Driver) TransferNative(ctx context.Context, account, destination string, _ *big.Int) (chains.Receipt, error) {
	to, err := ParseAddress(destination)
	if err != nil {
		return chains.Receipt{}, err
	}
	from, err := solana.PublicKeyFromBase58(account)
	if err != nil {
		return chains.Receipt{}, errs.Wrap(err, "account %s", account)
	}

	out, err := d.rpc.GetBalance(ctx, from, d.commitment)
	if err != nil {
		return chains.Receipt{}, errs.Because(errs.ErrRPCUnavailable, err)
	}
	if out.Value <= d.reserve {
		return chains.Receipt{}, errs.WithDetails(errs.ErrNothingToTransfer, map[string]string{
			"balance": fmt.Sprint(out.Value),
			"reserve": fmt.Sprint(d.reserve),
		})
	}
	lamports := out.Value - d.reserve

	d.logger.Debug("sweeping %d lamports from %s to %s", lamports, from, to)
	sig, err := d.submit(ctx, NewTransaction(from).AddTransferInstruction(from, to, lamports))
	if err != nil {
		return chains.Receipt{}, err
	}

	return chains.Receipt{TxID: sig.String(), Amount: new(big.Int).SetUint64(lamports), URL: d.txURL(sig)}, nil
}

// TransferToken moves the full balance of the holding's token account to the
// destination's associated token account. When the source is not empty and that
// account does not exist, it is created first in its own confirmed transaction.
func (d *Driver) TransferToken(ctx context.Context, account string, holding chains.Holding, destination string) (chains.Receipt, error) {
	to, err := ParseAddress(destination)
	if err != nil {
		return chains.Receipt{}, err
	}
	owner, err := solana.PublicKeyFromBase58(account)
	if err != nil {
		return chains.Receipt{}, errs.Wrap(err, "account %s", account)
	}
	mintID := holding.Mint
	if mintID == "" {
		mintID = holding.ID
	}
	mint, err := solana.PublicKeyFromBase58(mintID)
	if err != nil {
		return chains.Receipt{}, errs.WithDetails(errs.ErrUnknownAsset, map[string]string{"token": holding.ID})
	}

	source, err := d.sourceAccount(owner, mint, holding.Account)
	if err != nil {
		return chains.Receipt{}, err
	}
	target, _, err := solana.FindAssociatedTokenAddress(to, mint)
	if err != nil {
		return chains.Receipt{}, errs.Wrap(err, "derive token account for %s", to)
	}

	balance, err := d.rpc.GetTokenAccountBalance(ctx, source, d.commitment)
	if err != nil {
		return chains.Receipt{}, errs.Because(errs.ErrRPCUnavailable, err)
	}
	amount, ok := new(big.Int).SetString(balance.Value.Amount, 10)
	if !ok || amount.Sign() <= 0 {
		return chains.Receipt{}, errs.WithDetails(errs.ErrNothingToTransfer, map[string]string{"token": holding.Symbol})
	}
	if !amount.IsUint64() {
		return chains.Receipt{}, errs.WithDetails(errs.ErrNothingToTransfer, map[string]string{"amount": amount.String()})
	}

	// the destination account is created only when there is something to move
	if err := d.ensureTokenAccount(ctx, owner, to, mint, target); err != nil {
		return chains.Receipt{}, err
	}

	d.logger.Debug("transferring %s of %s from %s to %s", amount, mint, source, target)
	sig, err := d.submit(ctx, NewTransaction(owner).AddTokenTransferInstruction(source, target, owner, amount.Uint64()))
	if err != nil {
		return chains.Receipt{}, err
	}

	return chains.Receipt{TxID: sig.String(), Amount: amount, URL: d.txURL(sig)}, nil
}

func (d *Driver) sourceAccount(owner, mint solana.PublicKey, account string) (solana.PublicKey, error) {
	if account != "" {
		pk, err := solana.PublicKeyFromBase58(account)
		if err != nil {
			return solana.PublicKey{}, errs.Wrap(err, "token account %s", account)
		}
		return pk, nil
	}
	pk, _, err := solana.FindAssociatedTokenAddress(owner, mint)
	if err != nil {
		return solana.PublicKey{}, errs.Wrap(err, "derive token account for %s", owner)
	}
	return pk, nil
}

func (d *Driver) ensureTokenAccount(ctx context.Context, payer, wallet, mint, target solana.PublicKey) error {
	_, err := d.rpc.GetAccountInfoWithOpts(ctx, target, &rpc.GetAccountInfoOpts{Commitment: d.commitment})
	if err == nil {
		return nil
	}
	if !errors.Is(err, rpc.ErrNotFound) {
		return errs.Because(errs.ErrRPCUnavailable, err)
	}

	d.logger.Debug("creating token account %s for %s (mint %s)", target, wallet, mint)
	if _, err := d.submit(ctx, NewTransaction(payer).AddCreateTokenAccountInstruction(payer, wallet, mint)); err != nil {
		return errs.Wrap(err, "create token account %s", target)
	}
	return nil
}

// submit builds tx against a fresh blockhash, hands it to the provider and waits
// for confirmation.
func (d *Driver) submit(ctx context.Context, tx *Transaction) (solana.Signature, error) {
	recent, err := d.rpc.GetLatestBlockhash(ctx, d.commitment)
	if err != nil {
		return solana.Signature{}, errs.Because(errs.ErrRPCUnavailable, err)
	}

	stx, err := tx.Build(recent.Value.Blockhash)
	if err != nil {
		return solana.Signature{}, errs.Wrap(err, "build transaction")
	}

	sig, err := d.provider.SignAndSendTransaction(ctx, stx)
	if err != nil {
		return solana.Signature{}, errs.Because(errs.ErrTxRejected, err)
	}

	if err := d.confirm(ctx, sig); err != nil {
		return solana.Signature{}, err
	}
	return sig, nil
}

func (d *Driver) txURL(sig solana.Signature) string {
	if d.explorer == "" {
		return ""
	}
	return strings.TrimRight(d.explorer, "/") + "/tx/" + sig.String()
}
