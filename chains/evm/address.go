// Package evm sweeps native coins and ERC-20 tokens on EVM-compatible networks.
package evm

import (
	"regexp"

	"github.com/ethereum/go-ethereum/common"

	"github.com/chinmay1088/emptier/errs"
)

// No checksum validation: mixed-case input is accepted as long as it is hex.
var addressPattern = regexp.MustCompile(`^0x[0-9a-fA-F]{40}$`)

// IsValidAddress reports whether s is 0x followed by exactly 40 hex characters.
func IsValidAddress(s string) bool {
	return addressPattern.MatchString(s)
}

// ParseAddress validates s and converts it to an address.
func ParseAddress(s string) (common.Address, error) {
	if !IsValidAddress(s) {
		return common.Address{}, errs.WithDetails(errs.ErrInvalidDestination, map[string]string{"address": s})
	}
	return common.HexToAddress(s), nil
}
