package evm

import (
	"math/big"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/chinmay1088/emptier/errs"
)

func TestSweepAmount(t *testing.T) {
	t.Parallel()

	balance, _ := new(big.Int).SetString("1000000000000000000", 10)
	price := big.NewInt(20_000_000_000)

	amount, fee, err := SweepAmount(balance, price, NativeGasLimit)
	require.NoError(t, err)
	assert.Equal(t, big.NewInt(420_000_000_000_000), fee)
	assert.Equal(t, "999580000000000000", amount.String())
}

func TestSweepAmount_Conserves(t *testing.T) {
	t.Parallel()

	balances := []int64{21_001, 1_000_000, 987_654_321_000, 1 << 62}
	prices := []int64{1, 7, 1_000, 3_000_000}

	for _, b := range balances {
		for _, p := range prices {
			balance, price := big.NewInt(b), big.NewInt(p)
			amount, fee, err := SweepAmount(balance, price, NativeGasLimit)
			if err != nil {
				require.ErrorIs(t, err, errs.ErrNothingToTransfer)
				assert.LessOrEqual(t, balance.Cmp(fee), 0)
				continue
			}
			total := new(big.Int).Add(amount, fee)
			assert.Equal(t, 0, total.Cmp(balance), "balance %d price %d", b, p)
		}
	}
}

func TestSweepAmount_NothingLeft(t *testing.T) {
	t.Parallel()

	amount, fee, err := SweepAmount(big.NewInt(21_000), big.NewInt(1), NativeGasLimit)
	require.ErrorIs(t, err, errs.ErrNothingToTransfer)
	assert.Equal(t, int64(0), amount.Int64())
	assert.Equal(t, int64(21_000), fee.Int64())
	assert.Contains(t, err.Error(), "balance: 21000")
}

func TestParseGasPrice(t *testing.T) {
	t.Parallel()

	price, err := ParseGasPrice("auto")
	require.NoError(t, err)
	assert.Nil(t, price)

	price, err = ParseGasPrice("")
	require.NoError(t, err)
	assert.Nil(t, price)

	price, err = ParseGasPrice("2.5")
	require.NoError(t, err)
	assert.Equal(t, big.NewInt(2_500_000_000), price)

	for _, bad := range []string{"fast", "0", "-1"} {
		_, err = ParseGasPrice(bad)
		require.ErrorIs(t, err, errs.ErrInvalidFee, bad)
	}
}

func TestFormatGwei(t *testing.T) {
	t.Parallel()
	assert.Equal(t, "1.5 gwei", FormatGwei(big.NewInt(1_500_000_000)))
}
