package chains

import (
	"math/big"

	"github.com/shopspring/decimal"
)

// Holding is one token balance discovered for an account.
type Holding struct {
	ID       string // contract address (EVM), mint or token account (Solana)
	Account  string // source token account, Solana only
	Mint     string // Solana only
	Symbol   string
	Balance  *big.Int
	Decimals int32
	USDQuote decimal.NullDecimal
	LogoURL  string
	Demo     bool
}

// Amount returns the balance scaled by the token decimals.
func (h Holding) Amount() decimal.Decimal {
	return ToDecimal(h.Balance, h.Decimals)
}

// Receipt describes a confirmed submission.
type Receipt struct {
	TxID   string
	Amount *big.Int
	Fee    *big.Int
	URL    string
}

// ToDecimal converts a raw integer amount to a decimal with the given precision.
func ToDecimal(raw *big.Int, decimals int32) decimal.Decimal {
	if raw == nil {
		return decimal.Zero
	}
	return decimal.NewFromBigInt(raw, -decimals)
}

// FromDecimal converts a decimal amount to its raw integer representation, truncating extra precision.
func FromDecimal(amount decimal.Decimal, decimals int32) *big.Int {
	return amount.Shift(decimals).Truncate(0).BigInt()
}

// FormatAmount renders raw with at most places fractional digits followed by symbol.
func FormatAmount(raw *big.Int, decimals int32, places int32, symbol string) string {
	s := ToDecimal(raw, decimals).Truncate(places).String()
	if symbol == "" {
		return s
	}
	return s + " " + symbol
}

// ShortAddress abbreviates an address for display, e.g. 0x1234...abcd.
func ShortAddress(addr string) string {
	if len(addr) <= 12 {
		return addr
	}
	return addr[:6] + "..." + addr[len(addr)-4:]
}
