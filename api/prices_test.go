package api

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPrices_USDPrice(t *testing.T) {
	t.Parallel()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/v3/simple/price", r.URL.Path)
		assert.Equal(t, "binancecoin", r.URL.Query().Get("ids"))
		assert.Equal(t, "usd", r.URL.Query().Get("vs_currencies"))
		_, _ = w.Write([]byte(`{"binancecoin":{"usd":612.34}}`))
	}))
	defer srv.Close()

	price, err := NewPrices(fastClient(), srv.URL).USDPrice(context.Background(), "binancecoin")
	require.NoError(t, err)
	assert.Equal(t, "612.34", price.String())
}

func TestPrices_NotFound(t *testing.T) {
	t.Parallel()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		_, _ = w.Write([]byte(`{}`))
	}))
	defer srv.Close()

	_, err := NewPrices(fastClient(), srv.URL).GetPrice(context.Background(), "nope")
	require.ErrorContains(t, err, "price not found for nope")
}

func TestPrices_BadJSON(t *testing.T) {
	t.Parallel()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		_, _ = w.Write([]byte(`<html>`))
	}))
	defer srv.Close()

	_, err := NewPrices(fastClient(), srv.URL).GetPrice(context.Background(), "solana")
	require.ErrorContains(t, err, "failed to parse response")
}
