package api

import (
	"github.com/shopspring/decimal"
)

// balancesResponse is the envelope of a balances_v2 reply.
type balancesResponse struct {
	Data struct {
		Address string         `json:"address"`
		ChainID int64          `json:"chain_id"`
		Items   []balancesItem `json:"items"`
	} `json:"data"`
	Error        bool    `json:"error"`
	ErrorMessage *string `json:"error_message"`
	ErrorCode    *int    `json:"error_code"`
}

type balancesItem struct {
	ContractAddress      *string  `json:"contract_address"`
	ContractName         string   `json:"contract_name"`
	ContractTickerSymbol string   `json:"contract_ticker_symbol"`
	ContractDecimals     *int32   `json:"contract_decimals"`
	LogoURL              string   `json:"logo_url"`
	NativeToken          bool     `json:"native_token"`
	Type                 string   `json:"type"`
	Balance              string   `json:"balance"`
	Quote                *float64 `json:"quote"`
	QuoteRate            *float64 `json:"quote_rate"`
}

// PriceData represents cryptocurrency price information
type PriceData struct {
	ID  string          `json:"id"`
	USD decimal.Decimal `json:"usd"`
}
