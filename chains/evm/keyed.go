package evm

import (
	"context"
	"crypto/ecdsa"
	"fmt"
	"math/big"
	"sync"

	"github.com/ethereum/go-ethereum"
	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/common/hexutil"
	"github.com/ethereum/go-ethereum/core/types"
	"github.com/ethereum/go-ethereum/crypto"
	"github.com/ethereum/go-ethereum/ethclient"
)

// TxBackend is the RPC surface a KeyedProvider needs to submit transactions.
type TxBackend interface {
	ChainID(ctx context.Context) (*big.Int, error)
	PendingNonceAt(ctx context.Context, account common.Address) (uint64, error)
	SuggestGasPrice(ctx context.Context) (*big.Int, error)
	EstimateGas(ctx context.Context, msg ethereum.CallMsg) (uint64, error)
	SendTransaction(ctx context.Context, tx *types.Transaction) error
}

// DialFunc opens a TxBackend for an RPC URL.
type DialFunc func(ctx context.Context, rpcURL string) (TxBackend, error)

// DialEthclient is the DialFunc backed by go-ethereum's ethclient.
func DialEthclient(ctx context.Context, rpcURL string) (TxBackend, error) {
	client, err := ethclient.DialContext(ctx, rpcURL)
	if err != nil {
		return nil, err
	}
	return client, nil
}

// KeyedProvider is a Provider that signs locally with a private key.
// Like a browser wallet it only knows the chains registered with it.
type KeyedProvider struct {
	mu      sync.Mutex
	key     *ecdsa.PrivateKey
	address common.Address
	dial    DialFunc
	known   map[string]string // chain id (hex) -> rpc url
	chainID *big.Int
	backend TxBackend
}

// NewKeyedProvider creates a provider for key. dial may be nil to use ethclient.
func NewKeyedProvider(key *ecdsa.PrivateKey, dial DialFunc) *KeyedProvider {
	if dial == nil {
		dial = DialEthclient
	}
	return &KeyedProvider{
		key:     key,
		address: crypto.PubkeyToAddress(key.PublicKey),
		dial:    dial,
		known:   make(map[string]string),
	}
}

// Register makes chainID known without going through AddChain.
func (p *KeyedProvider) Register(chainID int64, rpcURL string) *KeyedProvider {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.known[hexutil.EncodeBig(big.NewInt(chainID))] = rpcURL
	return p
}

// Address returns the account the provider signs for.
func (p *KeyedProvider) Address() common.Address {
	return p.address
}

// SwitchChain selects chainID, failing with CodeUnrecognizedChain if it was never registered.
func (p *KeyedProvider) SwitchChain(ctx context.Context, chainID *big.Int) error {
	p.mu.Lock()
	defer p.mu.Unlock()

	id := hexutil.EncodeBig(chainID)
	rpcURL, ok := p.known[id]
	if !ok {
		return &ProviderError{Code: CodeUnrecognizedChain, Message: fmt.Sprintf("unrecognized chain id %s", id)}
	}

	if p.chainID != nil && p.chainID.Cmp(chainID) == 0 && p.backend != nil {
		return nil
	}

	backend, err := p.dial(ctx, rpcURL)
	if err != nil {
		return fmt.Errorf("failed to dial %s: %w", rpcURL, err)
	}

	remote, err := backend.ChainID(ctx)
	if err != nil {
		closeBackend(backend)
		return fmt.Errorf("failed to query chain id from %s: %w", rpcURL, err)
	}
	if remote.Cmp(chainID) != 0 {
		closeBackend(backend)
		return fmt.Errorf("rpc %s serves chain %s, not %s", rpcURL, remote, chainID)
	}

	closeBackend(p.backend)
	p.chainID = new(big.Int).Set(chainID)
	p.backend = backend
	return nil
}

// Close releases the connection to the selected chain. A later SwitchChain dials again.
func (p *KeyedProvider) Close() {
	p.mu.Lock()
	defer p.mu.Unlock()

	closeBackend(p.backend)
	p.backend = nil
	p.chainID = nil
}

// closeBackend closes b if it holds a connection, as *ethclient.Client does.
func closeBackend(b TxBackend) {
	if c, ok := b.(interface{ Close() }); ok {
		c.Close()
	}
}

// AddChain registers a chain definition.
func (p *KeyedProvider) AddChain(_ context.Context, params ChainParams) error {
	if len(params.RPCURLs) == 0 {
		return &ProviderError{Code: -32602, Message: "chain definition has no rpc url"}
	}
	id, err := hexutil.DecodeBig(params.ChainID)
	if err != nil {
		return &ProviderError{Code: -32602, Message: fmt.Sprintf("invalid chain id %q", params.ChainID)}
	}

	p.mu.Lock()
	defer p.mu.Unlock()
	p.known[hexutil.EncodeBig(id)] = params.RPCURLs[0]
	return nil
}

// RequestAccounts returns the single local account. Unlocking the key is the approval step.
func (p *KeyedProvider) RequestAccounts(_ context.Context) ([]common.Address, error) {
	return []common.Address{p.address}, nil
}

// SendTransaction fills in nonce, gas and price, signs req and broadcasts it.
func (p *KeyedProvider) SendTransaction(ctx context.Context, req TxRequest) (common.Hash, error) {
	p.mu.Lock()
	backend, chainID := p.backend, p.chainID
	p.mu.Unlock()

	if backend == nil {
		return common.Hash{}, &ProviderError{Code: CodeUnauthorized, Message: "no chain selected"}
	}
	if req.From != p.address {
		return common.Hash{}, &ProviderError{Code: CodeUnauthorized, Message: fmt.Sprintf("unknown account %s", req.From.Hex())}
	}

	// Get nonce
	nonce, err := backend.PendingNonceAt(ctx, p.address)
	if err != nil {
		return common.Hash{}, fmt.Errorf("failed to get nonce: %w", err)
	}

	gasPrice := req.GasPrice
	if gasPrice == nil {
		gasPrice, err = backend.SuggestGasPrice(ctx)
		if err != nil {
			return common.Hash{}, fmt.Errorf("failed to get gas price: %w", err)
		}
	}

	value := req.Value
	if value == nil {
		value = big.NewInt(0)
	}

	gas := req.Gas
	if gas == 0 {
		to := req.To
		gas, err = backend.EstimateGas(ctx, ethereum.CallMsg{
			From:     p.address,
			To:       &to,
			GasPrice: gasPrice,
			Value:    value,
			Data:     req.Data,
		})
		if err != nil {
			return common.Hash{}, fmt.Errorf("failed to estimate gas: %w", err)
		}
	}

	to := req.To
	tx := types.NewTx(&types.LegacyTx{
		Nonce:    nonce,
		GasPrice: gasPrice,
		Gas:      gas,
		To:       &to,
		Value:    value,
		Data:     req.Data,
	})

	signed, err := types.SignTx(tx, types.LatestSignerForChainID(chainID), p.key)
	if err != nil {
		return common.Hash{}, fmt.Errorf("failed to sign transaction: %w", err)
	}

	if err := backend.SendTransaction(ctx, signed); err != nil {
		return common.Hash{}, fmt.Errorf("failed to broadcast transaction: %w", err)
	}

	return signed.Hash(), nil
}
