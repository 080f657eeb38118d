package chains_test

import (
	"math/big"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"

	"github.com/chinmay1088/emptier/chains"
)

func TestHoldingAmount(t *testing.T) {
	t.Parallel()

	h := chains.Holding{Balance: big.NewInt(1_000_000_000), Decimals: 6}
	assert.True(t, decimal.NewFromInt(1000).Equal(h.Amount()))

	h = chains.Holding{Balance: big.NewInt(1_000_000_000), Decimals: 18}
	assert.Equal(t, "0.000000001", h.Amount().String())

	assert.True(t, chains.Holding{}.Amount().IsZero())
}

func TestFromDecimal(t *testing.T) {
	t.Parallel()

	gwei := decimal.RequireFromString("1.5")
	assert.Equal(t, big.NewInt(1_500_000_000), chains.FromDecimal(gwei, 9))
	assert.Equal(t, big.NewInt(1), chains.FromDecimal(decimal.RequireFromString("1.9"), 0))
}

func TestFormatAmount(t *testing.T) {
	t.Parallel()

	wei, _ := new(big.Int).SetString("1234567891234567891", 10)
	assert.Equal(t, "1.234567 ETH", chains.FormatAmount(wei, 18, 6, "ETH"))
	assert.Equal(t, "0", chains.FormatAmount(nil, 18, 6, ""))
}

func TestShortAddress(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "0x742d...d8b6", chains.ShortAddress("0x742d35Cc6634C0532925a3b8D4C9db96C4b4d8b6"))
	assert.Equal(t, "short", chains.ShortAddress("short"))
}
