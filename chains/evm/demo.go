package evm

import (
	"math/big"

	"github.com/shopspring/decimal"

	"github.com/chinmay1088/emptier/chains"
)

type demoToken struct {
	address  string
	symbol   string
	balance  int64
	decimals int32
	usd      float64
}

var demoTokens = map[string][]demoToken{
	chains.Ethereum.Name: {
		{"0xdac17f958d2ee523a2206206994597c13d831ec7", "USDT", 1_000_000_000, 6, 1},
		{"0xa0b86991c6218b36c1d19d4a2e9eb0ce3606eb48", "USDC", 500_000_000, 6, 0.5},
	},
	chains.BNB.Name: {
		{"0x55d398326f99059ff775485246999027b3197955", "USDT", 1_000_000_000, 18, 1},
		{"0x8ac76a51cc950d9822d68b83fe1ad97b32cd580d", "USDC", 500_000_000, 18, 0.5},
	},
}

// DemoHoldings returns the fixed demonstration list for n. Every entry is marked Demo.
func DemoHoldings(n chains.Network) []chains.Holding {
	tokens := demoTokens[n.Name]
	holdings := make([]chains.Holding, 0, len(tokens))
	for _, t := range tokens {
		holdings = append(holdings, chains.Holding{
			ID:       t.address,
			Symbol:   t.symbol,
			Balance:  big.NewInt(t.balance),
			Decimals: t.decimals,
			USDQuote: decimal.NewNullDecimal(decimal.NewFromFloat(t.usd)),
			Demo:     true,
		})
	}
	return holdings
}
