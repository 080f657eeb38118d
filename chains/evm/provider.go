package evm

import (
	"context"
	"errors"
	"fmt"
	"math/big"

	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/common/hexutil"

	"github.com/chinmay1088/emptier/chains"
)

// Provider error codes shared with browser wallets (EIP-1193).
const (
	CodeUserRejected      = 4001
	CodeUnauthorized      = 4100
	CodeUnrecognizedChain = 4902
)

// ProviderError is an error reported by a wallet provider.
type ProviderError struct {
	Code    int
	Message string
}

func (e *ProviderError) Error() string {
	return fmt.Sprintf("provider error %d: %s", e.Code, e.Message)
}

// IsUnrecognizedChain reports whether the provider does not know the requested chain.
func IsUnrecognizedChain(err error) bool {
	var pe *ProviderError
	return errors.As(err, &pe) && pe.Code == CodeUnrecognizedChain
}

// IsUserRejected reports whether the user declined the request.
func IsUserRejected(err error) bool {
	var pe *ProviderError
	return errors.As(err, &pe) && (pe.Code == CodeUserRejected || pe.Code == CodeUnauthorized)
}

// NativeCurrency describes a chain's native coin.
type NativeCurrency struct {
	Name     string `json:"name"`
	Symbol   string `json:"symbol"`
	Decimals int    `json:"decimals"`
}

// ChainParams is the chain definition handed to a provider that does not know a network yet.
type ChainParams struct {
	ChainID           string         `json:"chainId"`
	ChainName         string         `json:"chainName"`
	NativeCurrency    NativeCurrency `json:"nativeCurrency"`
	RPCURLs           []string       `json:"rpcUrls"`
	BlockExplorerURLs []string       `json:"blockExplorerUrls,omitempty"`
}

// NewChainParams builds the chain definition for network n.
func NewChainParams(n chains.Network, rpcURL, explorer string) ChainParams {
	params := ChainParams{
		ChainID:   hexutil.EncodeBig(big.NewInt(n.ChainID)),
		ChainName: n.DisplayName,
		NativeCurrency: NativeCurrency{
			Name:     n.NativeName,
			Symbol:   n.NativeSymbol,
			Decimals: int(n.NativeDecimals),
		},
		RPCURLs: []string{rpcURL},
	}
	if explorer != "" {
		params.BlockExplorerURLs = []string{explorer}
	}
	return params
}

// TxRequest is a transaction the provider is asked to sign and send.
// Zero Gas and nil GasPrice leave the choice to the provider.
type TxRequest struct {
	From     common.Address
	To       common.Address
	Value    *big.Int
	Data     []byte
	Gas      uint64
	GasPrice *big.Int
}

// Provider is the wallet side of an EVM session: it owns the accounts and signs.
type Provider interface {
	SwitchChain(ctx context.Context, chainID *big.Int) error
	AddChain(ctx context.Context, params ChainParams) error
	RequestAccounts(ctx context.Context) ([]common.Address, error)
	SendTransaction(ctx context.Context, req TxRequest) (common.Hash, error)
}
