// Package sweep drives a connected wallet through the transfer of its native
// balance and selected tokens to a single destination.
package sweep

import (
	"context"
	"errors"
	"math/big"
	"time"

	"github.com/gofrs/uuid"
	"github.com/shopspring/decimal"

	"github.com/chinmay1088/emptier/chains"
	"github.com/chinmay1088/emptier/errs"
)

// Chain is a network-specific driver.
type Chain interface {
	Network() chains.Network
	Connect(ctx context.Context) (string, error)
	NativeBalance(ctx context.Context, account string) (*big.Int, error)
	ListHoldings(ctx context.Context, account string) ([]chains.Holding, error)
	ValidAddress(s string) bool
	TransferNative(ctx context.Context, account, destination string, feeOverride *big.Int) (chains.Receipt, error)
	TransferToken(ctx context.Context, account string, holding chains.Holding, destination string) (chains.Receipt, error)
}

// PriceSource quotes a coin in USD.
type PriceSource interface {
	USDPrice(ctx context.Context, id string) (decimal.Decimal, error)
}

// Logger is the logging surface the orchestrator writes to.
type Logger interface {
	Debug(format string, args ...any)
	Error(format string, args ...any)
}

type nopLogger struct{}

func (nopLogger) Debug(string, ...any) {}
func (nopLogger) Error(string, ...any) {}

// Result is the outcome of one transfer.
type Result struct {
	ID      string
	Symbol  string
	Status  Status
	Receipt chains.Receipt
	Err     error
}

// Options configures an Orchestrator.
type Options struct {
	Chain  Chain
	Prices PriceSource
	Logger Logger
	// OnResult is called after each transfer finishes.
	OnResult func(Result)
	Now      func() time.Time
}

// Orchestrator runs the connect/refresh/transfer flow for one network.
type Orchestrator struct {
	chain    Chain
	prices   PriceSource
	logger   Logger
	onResult func(Result)
	now      func() time.Time
	state    *State
}

func New(opts Options) *Orchestrator {
	o := &Orchestrator{
		chain:    opts.Chain,
		prices:   opts.Prices,
		logger:   opts.Logger,
		onResult: opts.OnResult,
		now:      opts.Now,
		state:    NewState(),
	}
	if o.logger == nil {
		o.logger = nopLogger{}
	}
	if o.now == nil {
		o.now = time.Now
	}
	return o
}

func (o *Orchestrator) Network() chains.Network {
	return o.chain.Network()
}

func (o *Orchestrator) Snapshot() Snapshot {
	return o.state.Snapshot()
}

// Connect asks the wallet for access and reads the native balance. Any failure
// leaves the orchestrator disconnected.
func (o *Orchestrator) Connect(ctx context.Context) error {
	network := o.chain.Network()

	account, err := o.chain.Connect(ctx)
	if err != nil {
		return errs.Wrap(err, "%s", network.Name)
	}

	balance, err := o.chain.NativeBalance(ctx, account)
	if err != nil {
		return errs.Wrap(err, "%s", network.Name)
	}

	id, err := uuid.NewV4()
	if err != nil {
		return errs.Wrap(err, "session id")
	}

	o.state.Connect(Session{
		ID:            id,
		Network:       network,
		Account:       account,
		NativeBalance: balance,
		ConnectedAt:   o.now(),
	})
	o.debug("connected %s on %s, balance %s", account, network.Name, balance)
	return nil
}

// Refresh re-reads the native balance and the token holdings. A holdings
// failure is returned but the session stays connected.
func (o *Orchestrator) Refresh(ctx context.Context) error {
	session, err := o.session()
	if err != nil {
		return err
	}

	if err := o.refreshNative(ctx, session); err != nil {
		return err
	}

	holdings, err := o.chain.ListHoldings(ctx, session.Account)
	if err != nil {
		o.errorf("listing holdings failed: %v", err)
		return errs.Wrap(err, "holdings")
	}
	o.state.SetHoldings(holdings)
	return nil
}

func (o *Orchestrator) refreshNative(ctx context.Context, session Session) error {
	balance, err := o.chain.NativeBalance(ctx, session.Account)
	if err != nil {
		return err
	}

	usd := decimal.NullDecimal{}
	if o.prices != nil && session.Network.PriceID != "" {
		price, err := o.prices.USDPrice(ctx, session.Network.PriceID)
		if err != nil {
			o.debug("price lookup for %s failed: %v", session.Network.PriceID, err)
		} else {
			amount := chains.ToDecimal(balance, session.Network.NativeDecimals)
			usd = decimal.NewNullDecimal(amount.Mul(price))
		}
	}

	o.state.Update(func(s *Session) {
		s.NativeBalance = balance
		s.NativeUSD = usd
	})
	return nil
}

// SetDestination validates and stores the destination address.
func (o *Orchestrator) SetDestination(addr string) error {
	if _, err := o.session(); err != nil {
		return err
	}
	if !o.chain.ValidAddress(addr) {
		return errs.WithDetails(errs.ErrInvalidDestination, map[string]string{"address": addr})
	}
	o.state.Update(func(s *Session) { s.Destination = addr })
	return nil
}

// SetFeeOverride stores a gas price override in wei; nil restores the
// provider's suggestion. Only EVM networks accept an override.
func (o *Orchestrator) SetFeeOverride(price *big.Int) error {
	if _, err := o.session(); err != nil {
		return err
	}
	if price != nil {
		if !o.chain.Network().IsEVM() {
			return errs.WithSuggestion(errs.ErrInvalidFee, "gas price overrides apply to EVM networks only")
		}
		if price.Sign() <= 0 {
			return errs.ErrInvalidFee
		}
	}
	o.state.Update(func(s *Session) { s.FeeOverride = price })
	return nil
}

// Toggle flips the selection of a holding.
func (o *Orchestrator) Toggle(id string) (bool, error) {
	selected, ok := o.state.Toggle(id)
	if !ok {
		return false, errs.WithDetails(errs.ErrUnknownAsset, map[string]string{"token": id})
	}
	return selected, nil
}

func (o *Orchestrator) SelectAll() {
	o.state.SelectAll()
}

func (o *Orchestrator) DeselectAll() {
	o.state.DeselectAll()
}

// TransferNative sweeps the native balance. The status moves to pending, then
// success or error. On success the native balance is re-read.
func (o *Orchestrator) TransferNative(ctx context.Context) (Result, error) {
	session, err := o.ready()
	if err != nil {
		return Result{}, err
	}

	symbol := session.Network.NativeSymbol
	o.state.SetStatus(symbol, StatusPending)

	receipt, err := o.chain.TransferNative(ctx, session.Account, session.Destination, session.FeeOverride)
	res := o.finish(symbol, symbol, receipt, err)
	if err != nil {
		return res, err
	}

	if err := o.refreshNative(ctx, session); err != nil {
		o.errorf("balance refresh after transfer failed: %v", err)
	}
	return res, nil
}

// TransferToken sweeps a single holding.
func (o *Orchestrator) TransferToken(ctx context.Context, id string) (Result, error) {
	session, err := o.ready()
	if err != nil {
		return Result{}, err
	}

	holding, ok := o.state.Holding(id)
	if !ok {
		return Result{}, errs.WithDetails(errs.ErrUnknownAsset, map[string]string{"token": id})
	}
	return o.transferToken(ctx, session, holding)
}

func (o *Orchestrator) transferToken(ctx context.Context, session Session, holding chains.Holding) (Result, error) {
	o.state.SetStatus(holding.ID, StatusPending)
	receipt, err := o.chain.TransferToken(ctx, session.Account, holding, session.Destination)
	res := o.finish(holding.ID, holding.Symbol, receipt, err)
	return res, err
}

// TransferSelected transfers every selected holding in selection order.
// A failed token is recorded and the rest still run.
func (o *Orchestrator) TransferSelected(ctx context.Context) ([]Result, error) {
	session, err := o.ready()
	if err != nil {
		return nil, err
	}

	ids := o.state.Selected()
	if len(ids) == 0 {
		return nil, errs.ErrNoTokensSelected
	}

	results := make([]Result, 0, len(ids))
	for _, id := range ids {
		if ctx.Err() != nil {
			break
		}
		holding, ok := o.state.Holding(id)
		if !ok {
			continue
		}
		res, _ := o.transferToken(ctx, session, holding)
		results = append(results, res)
	}
	return results, ctx.Err()
}

// SweepAll transfers the selected tokens first, so their fees are paid before
// the native balance is measured, then the native balance, then refreshes.
func (o *Orchestrator) SweepAll(ctx context.Context) ([]Result, error) {
	if _, err := o.ready(); err != nil {
		return nil, err
	}

	var results []Result
	if len(o.state.Selected()) > 0 {
		tokens, err := o.TransferSelected(ctx)
		results = append(results, tokens...)
		if err != nil {
			return results, err
		}
	}

	native, err := o.TransferNative(ctx)
	if native.ID != "" {
		results = append(results, native)
	}
	if err != nil && errs.KindOf(err) != errs.KindSubmission && !errors.Is(err, errs.ErrNothingToTransfer) {
		return results, err
	}

	if err := o.Refresh(ctx); err != nil {
		o.errorf("refresh after sweep failed: %v", err)
	}
	return results, nil
}

// Disconnect discards the session and everything derived from it.
func (o *Orchestrator) Disconnect() {
	o.debug("disconnecting")
	o.state.Disconnect()
}

func (o *Orchestrator) finish(id, symbol string, receipt chains.Receipt, err error) Result {
	res := Result{ID: id, Symbol: symbol, Receipt: receipt, Status: StatusSuccess}
	if err != nil {
		res.Status = StatusError
		res.Err = err
		o.errorf("transfer of %s failed: %v", symbol, err)
	} else {
		o.debug("transfer of %s confirmed: %s", symbol, receipt.TxID)
	}

	o.state.SetStatus(id, res.Status)
	if o.onResult != nil {
		o.onResult(res)
	}
	return res
}

func (o *Orchestrator) session() (Session, error) {
	snap := o.state.Snapshot()
	if snap.Session == nil {
		return Session{}, errs.ErrNotConnected
	}
	return *snap.Session, nil
}

// ready returns the session once a valid destination is set.
func (o *Orchestrator) ready() (Session, error) {
	session, err := o.session()
	if err != nil {
		return Session{}, err
	}
	if !o.chain.ValidAddress(session.Destination) {
		return Session{}, errs.WithDetails(errs.ErrInvalidDestination, map[string]string{"address": session.Destination})
	}
	return session, nil
}

func (o *Orchestrator) debug(format string, args ...any) {
	o.logger.Debug(o.tag()+format, args...)
}

func (o *Orchestrator) errorf(format string, args ...any) {
	o.logger.Error(o.tag()+format, args...)
}

func (o *Orchestrator) tag() string {
	snap := o.state.Snapshot()
	if snap.Session == nil {
		return ""
	}
	return "session " + snap.Session.ID.String()[:8] + ": "
}
