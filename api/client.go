package api

// HTTP clients for the off-chain services the wallet reads from.
//
// Files:
//   config.go    - endpoint paths and client defaults
//   types.go     - response payloads
//   base.go      - shared client (rate limiting, retries, JSON decoding)
//   ratelimit.go - per-host token buckets
//   retry.go     - exponential backoff for idempotent reads
//   indexer.go   - token balance indexer (Covalent balances_v2)
//   prices.go    - USD prices (CoinGecko simple/price)
//
// Usage:
//   client := api.NewClient(api.Options{RatePerSecond: 4, Burst: 4})
//   indexer := api.NewIndexer(client, cfg.Indexer.BaseURL, cfg.Indexer.APIKey)
//   holdings, err := indexer.TokenBalances(ctx, 56, address)
//   price, err := api.NewPrices(client, cfg.Prices.BaseURL).USDPrice(ctx, "ethereum")
//
// Only reads go through this package. Transactions are submitted by the
// chain drivers and are never retried.
