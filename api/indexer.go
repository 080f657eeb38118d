package api

import (
	"context"
	"errors"
	"fmt"
	"math/big"
	"net/url"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/chinmay1088/emptier/chains"
	"github.com/chinmay1088/emptier/errs"
)

// Indexer lists ERC-20 style token balances through the Covalent balances_v2 API.
type Indexer struct {
	client  *Client
	baseURL string
	apiKey  string
}

func NewIndexer(client *Client, baseURL, apiKey string) *Indexer {
	return &Indexer{
		client:  client,
		baseURL: strings.TrimRight(baseURL, "/"),
		apiKey:  apiKey,
	}
}

// TokenBalances returns the tokens held by address on chainID. The native coin
// and entries without a contract address are left out.
func (i *Indexer) TokenBalances(ctx context.Context, chainID int64, address string) ([]chains.Holding, error) {
	if i.apiKey == "" {
		return nil, errs.ErrMissingAPIKey
	}

	endpoint := i.baseURL + fmt.Sprintf(balancesPath, chainID, url.PathEscape(address))
	query := url.Values{"key": []string{i.apiKey}}

	var resp balancesResponse
	if err := i.client.getJSON(ctx, endpoint, query, &resp); err != nil {
		return nil, indexerError(err)
	}
	if resp.Error {
		msg := "unknown error"
		if resp.ErrorMessage != nil {
			msg = *resp.ErrorMessage
		}
		return nil, errs.Because(errs.ErrIndexerUnavailable, errors.New(msg))
	}

	holdings := make([]chains.Holding, 0, len(resp.Data.Items))
	for _, item := range resp.Data.Items {
		if item.ContractAddress == nil || *item.ContractAddress == "" || item.NativeToken {
			continue
		}

		balance, ok := new(big.Int).SetString(item.Balance, 10)
		if !ok {
			i.client.logger.Debug("skipping %s: bad balance %q", *item.ContractAddress, item.Balance)
			continue
		}

		h := chains.Holding{
			ID:      strings.ToLower(*item.ContractAddress),
			Symbol:  item.ContractTickerSymbol,
			Balance: balance,
			LogoURL: item.LogoURL,
		}
		if item.ContractDecimals != nil {
			h.Decimals = *item.ContractDecimals
		}
		if item.Quote != nil {
			h.USDQuote = decimal.NewNullDecimal(decimal.NewFromFloat(*item.Quote))
		}
		if h.Symbol == "" {
			h.Symbol = chains.ShortAddress(h.ID)
		}
		holdings = append(holdings, h)
	}
	return holdings, nil
}

func indexerError(err error) error {
	var status *StatusError
	if errors.As(err, &status) && (status.Code == 401 || status.Code == 403) {
		return errs.WithSuggestion(errs.Because(errs.ErrIndexerUnavailable, err),
			"check EMPTIER_INDEXER_API_KEY or indexer.api_key in the config file")
	}
	return errs.Because(errs.ErrIndexerUnavailable, err)
}
