package evm

import (
	"math/big"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/chinmay1088/emptier/chains"
	"github.com/chinmay1088/emptier/errs"
)

// NativeGasLimit is the fixed gas limit of a plain value transfer.
const NativeGasLimit uint64 = 21000

// SweepAmount returns the value that empties balance once gasLimit*gasPrice is paid.
// amount + fee always equals balance when err is nil.
func SweepAmount(balance, gasPrice *big.Int, gasLimit uint64) (amount, fee *big.Int, err error) {
	fee = new(big.Int).Mul(gasPrice, new(big.Int).SetUint64(gasLimit))
	amount = new(big.Int).Sub(balance, fee)
	if amount.Sign() <= 0 {
		return big.NewInt(0), fee, errs.WithDetails(errs.ErrNothingToTransfer, map[string]string{
			"balance": balance.String(),
			"fee":     fee.String(),
		})
	}
	return amount, fee, nil
}

// ParseGasPrice parses a gas price override in gwei. "auto" or "" yields nil.
func ParseGasPrice(s string) (*big.Int, error) {
	s = strings.TrimSpace(strings.ToLower(s))
	if s == "" || s == "auto" {
		return nil, nil
	}

	gwei, err := decimal.NewFromString(s)
	if err != nil {
		return nil, errs.WithDetails(errs.ErrInvalidFee, map[string]string{"gwei": s})
	}
	if !gwei.IsPositive() {
		return nil, errs.WithDetails(errs.ErrInvalidFee, map[string]string{"gwei": s})
	}
	return chains.FromDecimal(gwei, 9), nil
}

// FormatGwei renders a wei amount as gwei.
func FormatGwei(wei *big.Int) string {
	return chains.ToDecimal(wei, 9).String() + " gwei"
}
