package chains_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/chinmay1088/emptier/chains"
	"github.com/chinmay1088/emptier/errs"
)

func TestLookup(t *testing.T) {
	t.Parallel()

	tests := []struct {
		input    string
		expected chains.Network
	}{
		{"ethereum", chains.Ethereum},
		{"ETH", chains.Ethereum},
		{" bnb ", chains.BNB},
		{"bsc", chains.BNB},
		{"sol", chains.Solana},
		{"Solana", chains.Solana},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			t.Parallel()
			n, err := chains.Lookup(tt.input)
			require.NoError(t, err)
			assert.Equal(t, tt.expected.Name, n.Name)
		})
	}
}

func TestLookup_UnknownSuggests(t *testing.T) {
	t.Parallel()

	_, err := chains.Lookup("solama")
	require.ErrorIs(t, err, errs.ErrUnknownNetwork)
	assert.Equal(t, "did you mean 'solana'?", errs.SuggestionOf(err))

	_, err = chains.Lookup("cardano")
	require.ErrorIs(t, err, errs.ErrUnknownNetwork)
	assert.Equal(t, "supported networks: ethereum, solana, bnb", errs.SuggestionOf(err))
}

func TestSuggest(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "ethereum", chains.Suggest("etherum"))
	assert.Equal(t, "bnb", chains.Suggest("bsx"))
	assert.Equal(t, "", chains.Suggest(""))
	assert.Equal(t, "", chains.Suggest("polkadot"))
}

func TestFamilies(t *testing.T) {
	t.Parallel()

	assert.True(t, chains.Ethereum.IsEVM())
	assert.True(t, chains.BNB.IsEVM())
	assert.False(t, chains.Solana.IsEVM())
	assert.Equal(t, int64(56), chains.BNB.ChainID)
	assert.Equal(t, "BNB", chains.BNB.NativeSymbol)
}
