package evm

import (
	"context"
	"fmt"
	"math/big"
	"sync"

	"github.com/ethereum/go-ethereum"
	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/core/types"

	"github.com/chinmay1088/emptier/chains"
)

// fakeBackend serves canned chain state.
type fakeBackend struct {
	mu            sync.Mutex
	balance       *big.Int
	balanceErr    error
	gasPrice      *big.Int
	tokenBalances map[common.Address]*big.Int
	failed        map[common.Hash]bool
	notFoundPolls int
	calls         []ethereum.CallMsg
}

func newFakeBackend() *fakeBackend {
	return &fakeBackend{
		balance:       big.NewInt(0),
		gasPrice:      big.NewInt(1_000_000_000),
		tokenBalances: make(map[common.Address]*big.Int),
		failed:        make(map[common.Hash]bool),
	}
}

func (b *fakeBackend) BalanceAt(_ context.Context, _ common.Address, _ *big.Int) (*big.Int, error) {
	if b.balanceErr != nil {
		return nil, b.balanceErr
	}
	return new(big.Int).Set(b.balance), nil
}

func (b *fakeBackend) SuggestGasPrice(context.Context) (*big.Int, error) {
	return new(big.Int).Set(b.gasPrice), nil
}

func (b *fakeBackend) CallContract(_ context.Context, msg ethereum.CallMsg, _ *big.Int) ([]byte, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.calls = append(b.calls, msg)

	balance, ok := b.tokenBalances[*msg.To]
	if !ok {
		balance = big.NewInt(0)
	}
	return common.LeftPadBytes(balance.Bytes(), 32), nil
}

func (b *fakeBackend) TransactionReceipt(_ context.Context, hash common.Hash) (*types.Receipt, error) {
	b.mu.Lock()
	defer b.mu.Unlock()

	if b.notFoundPolls > 0 {
		b.notFoundPolls--
		return nil, ethereum.NotFound
	}
	status := types.ReceiptStatusSuccessful
	if b.failed[hash] {
		status = types.ReceiptStatusFailed
	}
	return &types.Receipt{Status: status, TxHash: hash}, nil
}

// fakeProvider records requests like a browser wallet would receive them.
type fakeProvider struct {
	known       map[int64]bool
	switches    []int64
	added       []ChainParams
	accounts    []common.Address
	accountsErr error
	sendErr     map[common.Address]error
	sent        []TxRequest
}

func newFakeProvider(account common.Address, known ...int64) *fakeProvider {
	p := &fakeProvider{
		known:    make(map[int64]bool),
		accounts: []common.Address{account},
		sendErr:  make(map[common.Address]error),
	}
	for _, id := range known {
		p.known[id] = true
	}
	return p
}

func (p *fakeProvider) SwitchChain(_ context.Context, chainID *big.Int) error {
	p.switches = append(p.switches, chainID.Int64())
	if !p.known[chainID.Int64()] {
		return &ProviderError{Code: CodeUnrecognizedChain, Message: "unrecognized chain"}
	}
	return nil
}

func (p *fakeProvider) AddChain(_ context.Context, params ChainParams) error {
	p.added = append(p.added, params)
	id, ok := new(big.Int).SetString(params.ChainID[2:], 16)
	if !ok {
		return fmt.Errorf("bad chain id %s", params.ChainID)
	}
	p.known[id.Int64()] = true
	return nil
}

func (p *fakeProvider) RequestAccounts(context.Context) ([]common.Address, error) {
	return p.accounts, p.accountsErr
}

func (p *fakeProvider) SendTransaction(_ context.Context, req TxRequest) (common.Hash, error) {
	if err := p.sendErr[req.To]; err != nil {
		return common.Hash{}, err
	}
	p.sent = append(p.sent, req)
	return common.BigToHash(big.NewInt(int64(len(p.sent)))), nil
}

// fakeIndexer returns canned holdings or an error.
type fakeIndexer struct {
	holdings []chains.Holding
	err      error
	chainID  int64
}

func (i *fakeIndexer) TokenBalances(_ context.Context, chainID int64, _ string) ([]chains.Holding, error) {
	i.chainID = chainID
	return i.holdings, i.err
}
