package cmd

import (
	"bufio"
	"bytes"
	"errors"
	"math/big"
	"os"
	"strings"
	"testing"

	"github.com/fatih/color"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/chinmay1088/emptier/chains"
	"github.com/chinmay1088/emptier/errs"
	"github.com/chinmay1088/emptier/shell"
	"github.com/chinmay1088/emptier/sweep"
)

func TestMain(m *testing.M) {
	color.NoColor = true
	os.Exit(m.Run())
}

var testHoldings = []chains.Holding{
	{
		ID:       "0xdac17f958d2ee523a2206206994597c13d831ec7",
		Symbol:   "USDT",
		Balance:  big.NewInt(1_234_567),
		Decimals: 6,
		USDQuote: decimal.NewNullDecimal(decimal.RequireFromString("1.234")),
	},
	{
		ID:       "0x1111111111111111111111111111111111111111",
		Symbol:   "DUP",
		Balance:  big.NewInt(1),
		Decimals: 0,
	},
	{
		ID:       "0x2222222222222222222222222222222222222222",
		Symbol:   "dup",
		Balance:  big.NewInt(2),
		Decimals: 0,
		Demo:     true,
	},
}

func TestRenderSession(t *testing.T) {
	var buf bytes.Buffer
	snap := sweep.Snapshot{
		Session: &sweep.Session{
			Network:       chains.Ethereum,
			Account:       "0x9858EfFD232B4033E47d90003D41EC34EcaEda94",
			NativeBalance: big.NewInt(1_500_000_000_000_000_000),
			NativeUSD:     decimal.NewNullDecimal(decimal.RequireFromString("4500.5")),
		},
		Status: map[string]sweep.Status{"ETH": sweep.StatusSuccess},
	}

	renderSession(&buf, shell.ThemeDark.Palette(), snap, true)
	out := buf.String()
	assert.Contains(t, out, "Ethereum")
	assert.Contains(t, out, "0x9858...da94")
	assert.Contains(t, out, "1.5 ETH (~$4500.50) ✅")

	buf.Reset()
	renderSession(&buf, shell.ThemeDark.Palette(), sweep.Snapshot{}, false)
	assert.Contains(t, buf.String(), "Not connected")
}

func TestRenderHoldings(t *testing.T) {
	var buf bytes.Buffer
	snap := sweep.Snapshot{
		Session:  &sweep.Session{Network: chains.Ethereum},
		Holdings: testHoldings,
		Selected: []string{testHoldings[0].ID},
		Status:   map[string]sweep.Status{testHoldings[1].ID: sweep.StatusError},
	}

	renderHoldings(&buf, shell.ThemeLight.Palette(), snap, true)
	lines := strings.Split(buf.String(), "\n")

	assert.Contains(t, lines[0], "Tokens (3)")
	assert.Contains(t, lines[1], " * USDT")
	assert.Contains(t, lines[1], "1.234567 (~$1.23)")
	assert.Contains(t, lines[3], "DUP")
	assert.Contains(t, lines[3], "❌")
	assert.Contains(t, lines[5], "[demo]")
	assert.Contains(t, buf.String(), "sample data")

	buf.Reset()
	renderHoldings(&buf, shell.ThemeLight.Palette(), sweep.Snapshot{}, false)
	assert.Contains(t, buf.String(), "No tokens found")
}

func TestRenderResult(t *testing.T) {
	var buf bytes.Buffer
	p := shell.ThemeDark.Palette()

	renderResult(&buf, p, sweep.Result{
		Symbol:  "USDT",
		Status:  sweep.StatusSuccess,
		Receipt: chains.Receipt{TxID: "0xabc", URL: "https://etherscan.io/tx/0xabc"},
	})
	assert.Contains(t, buf.String(), "✅ USDT sent")
	assert.Contains(t, buf.String(), "https://etherscan.io/tx/0xabc")

	buf.Reset()
	renderResult(&buf, p, sweep.Result{
		Symbol: "ETH",
		Status: sweep.StatusError,
		Err:    errs.WithSuggestion(errs.ErrTxRejected, "approve the transaction in your wallet"),
	})
	assert.Contains(t, buf.String(), "❌ ETH failed: transaction rejected")
	assert.Contains(t, buf.String(), "approve the transaction in your wallet")
}

func TestResolveToken(t *testing.T) {
	id, err := resolveToken(testHoldings, "usdt")
	require.NoError(t, err)
	assert.Equal(t, testHoldings[0].ID, id)

	id, err = resolveToken(testHoldings, "0xDAC17F958D2EE523A2206206994597C13D831EC7")
	require.NoError(t, err)
	assert.Equal(t, testHoldings[0].ID, id)

	_, err = resolveToken(testHoldings, "dup")
	require.ErrorIs(t, err, errs.ErrUnknownAsset)
	assert.Contains(t, errs.SuggestionOf(err), testHoldings[2].ID)

	_, err = resolveToken(testHoldings, "WBTC")
	require.ErrorIs(t, err, errs.ErrUnknownAsset)
}

func TestSummarize(t *testing.T) {
	ok, failed := summarize([]sweep.Result{
		{Status: sweep.StatusSuccess},
		{Status: sweep.StatusError, Err: errors.New("boom")},
		{Status: sweep.StatusSuccess},
	})
	assert.Equal(t, 2, ok)
	assert.Equal(t, 1, failed)
}

func TestAskYesNo(t *testing.T) {
	tests := []struct {
		input string
		want  bool
	}{
		{"y\n", true},
		{"YES\n", true},
		{"  yes  \n", true},
		{"n\n", false},
		{"\n", false},
		{"", false},
		{"y", true},
	}

	for _, tt := range tests {
		var out bytes.Buffer
		got := askYesNo(bufio.NewReader(strings.NewReader(tt.input)), &out, "Continue?")
		assert.Equal(t, tt.want, got, "input %q", tt.input)
		assert.Equal(t, "Continue? (y/n): ", out.String())
	}
}
