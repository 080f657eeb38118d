// Package chains lists the networks emptier can sweep and the chain family each belongs to.
package chains

import (
	"math"
	"strings"

	"github.com/agnivade/levenshtein"

	"github.com/chinmay1088/emptier/errs"
)

// Family selects which sweep driver serves a network.
type Family string

const (
	FamilyEVM    Family = "evm"
	FamilySolana Family = "solana"
)

// Network describes one supported network.
type Network struct {
	Name           string
	DisplayName    string
	Family         Family
	ChainID        int64
	NativeSymbol   string
	NativeName     string
	NativeDecimals int32
	PriceID        string
	Aliases        []string
}

// String returns the network name.
func (n Network) String() string {
	return n.Name
}

// IsEVM reports whether n is served by the EVM driver.
func (n Network) IsEVM() bool {
	return n.Family == FamilyEVM
}

var (
	Ethereum = Network{
		Name:           "ethereum",
		DisplayName:    "Ethereum",
		Family:         FamilyEVM,
		ChainID:        1,
		NativeSymbol:   "ETH",
		NativeName:     "Ether",
		NativeDecimals: 18,
		PriceID:        "ethereum",
		Aliases:        []string{"eth"},
	}

	BNB = Network{
		Name:           "bnb",
		DisplayName:    "BNB Chain",
		Family:         FamilyEVM,
		ChainID:        56,
		NativeSymbol:   "BNB",
		NativeName:     "BNB",
		NativeDecimals: 18,
		PriceID:        "binancecoin",
		Aliases:        []string{"bsc", "binance"},
	}

	Solana = Network{
		Name:           "solana",
		DisplayName:    "Solana",
		Family:         FamilySolana,
		NativeSymbol:   "SOL",
		NativeName:     "Solana",
		NativeDecimals: 9,
		PriceID:        "solana",
		Aliases:        []string{"sol"},
	}
)

// maxTypoDistance bounds how far a mistyped name may be from a suggestion.
const maxTypoDistance = 2

// All returns every supported network in display order.
func All() []Network {
	return []Network{Ethereum, Solana, BNB}
}

// Names returns the canonical names of every supported network.
func Names() []string {
	all := All()
	names := make([]string, len(all))
	for i, n := range all {
		names[i] = n.Name
	}
	return names
}

// Lookup resolves a network by name or alias, case-insensitively.
func Lookup(name string) (Network, error) {
	key := strings.ToLower(strings.TrimSpace(name))
	for _, n := range All() {
		if n.Name == key {
			return n, nil
		}
		for _, alias := range n.Aliases {
			if alias == key {
				return n, nil
			}
		}
	}

	err := errs.WithDetails(errs.ErrUnknownNetwork, map[string]string{"network": name})
	if s := Suggest(key); s != "" {
		return Network{}, errs.WithSuggestion(err, "did you mean '"+s+"'?")
	}
	return Network{}, errs.WithSuggestion(err, "supported networks: "+strings.Join(Names(), ", "))
}

// Suggest returns the closest network name or alias to input, or "" if nothing is close.
func Suggest(input string) string {
	input = strings.ToLower(strings.TrimSpace(input))
	if input == "" {
		return ""
	}

	minDist := math.MaxInt
	var suggestion string
	for _, n := range All() {
		for _, candidate := range append([]string{n.Name}, n.Aliases...) {
			if dist := levenshtein.ComputeDistance(input, candidate); dist < minDist {
				minDist = dist
				suggestion = n.Name
			}
		}
	}

	if minDist <= maxTypoDistance {
		return suggestion
	}
	return ""
}
