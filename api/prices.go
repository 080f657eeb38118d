package api

import (
	"context"
	"fmt"
	"net/url"
	"strings"

	"github.com/shopspring/decimal"
)

// Prices quotes coins in USD through CoinGecko's simple/price endpoint.
type Prices struct {
	client  *Client
	baseURL string
}

func NewPrices(client *Client, baseURL string) *Prices {
	return &Prices{client: client, baseURL: strings.TrimRight(baseURL, "/")}
}

// GetPrice fetches current price for a coin by its CoinGecko id.
func (p *Prices) GetPrice(ctx context.Context, id string) (*PriceData, error) {
	query := url.Values{
		"ids":           []string{id},
		"vs_currencies": []string{"usd"},
	}

	var result map[string]map[string]decimal.Decimal
	if err := p.client.getJSON(ctx, p.baseURL+pricePath, query, &result); err != nil {
		return nil, fmt.Errorf("failed to fetch price: %w", err)
	}

	if priceData, exists := result[id]; exists {
		if usd, exists := priceData["usd"]; exists {
			return &PriceData{ID: id, USD: usd}, nil
		}
	}

	return nil, fmt.Errorf("price not found for %s", id)
}

// USDPrice returns the USD price of a coin.
func (p *Prices) USDPrice(ctx context.Context, id string) (decimal.Decimal, error) {
	data, err := p.GetPrice(ctx, id)
	if err != nil {
		return decimal.Zero, err
	}
	return data.USD, nil
}
