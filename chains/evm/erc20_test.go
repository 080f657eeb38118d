package evm

import (
	"encoding/hex"
	"math/big"
	"testing"

	"github.com/ethereum/go-ethereum/common"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPackBalanceOf(t *testing.T) {
	t.Parallel()

	owner := common.HexToAddress("0x742d35cc6634c0532925a3b8d4c9db96c4b4d8b6")
	data, err := PackBalanceOf(owner)
	require.NoError(t, err)
	require.Len(t, data, 36)
	assert.Equal(t, "70a08231", hex.EncodeToString(data[:4]))
	assert.Equal(t, owner.Bytes(), data[16:])
}

func TestUnpackBalanceOf(t *testing.T) {
	t.Parallel()

	balance, err := UnpackBalanceOf(common.LeftPadBytes(big.NewInt(1_000_000_000).Bytes(), 32))
	require.NoError(t, err)
	assert.Equal(t, big.NewInt(1_000_000_000), balance)

	_, err = UnpackBalanceOf([]byte{0x01})
	require.Error(t, err)
}

func TestPackTransfer(t *testing.T) {
	t.Parallel()

	to := common.HexToAddress("0x000000000000000000000000000000000000dEaD")
	amount, _ := new(big.Int).SetString("123456789012345678901234567890", 10)

	data, err := PackTransfer(to, amount)
	require.NoError(t, err)
	assert.Equal(t, "a9059cbb", hex.EncodeToString(data[:4]))

	gotTo, gotAmount, err := UnpackTransfer(data)
	require.NoError(t, err)
	assert.Equal(t, to, gotTo)
	assert.Equal(t, 0, amount.Cmp(gotAmount))
}

func TestUnpackTransfer_RejectsOtherCalls(t *testing.T) {
	t.Parallel()

	data, err := PackBalanceOf(common.Address{})
	require.NoError(t, err)

	_, _, err = UnpackTransfer(data)
	require.Error(t, err)

	_, _, err = UnpackTransfer([]byte{0xa9})
	require.Error(t, err)
}
