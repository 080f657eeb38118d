package api

import "time"

// Service paths, relative to the configured base URL.
const (
	balancesPath = "/v1/%d/address/%s/balances_v2/"
	pricePath    = "/api/v3/simple/price"
)

// Client defaults
const (
	DefaultTimeout       = 30 * time.Second
	DefaultRatePerSecond = 4
	DefaultBurst         = 4

	// responses larger than this are truncated before decoding
	maxBodySize = 4 << 20
)
