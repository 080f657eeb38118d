package config

import "time"

// Default public endpoints. None of them needs an API key.
const (
	DefaultEthereumRPC = "https://ethereum-rpc.publicnode.com"
	DefaultBNBRPC      = "https://bsc-dataseed.binance.org/"
	DefaultSolanaRPC   = "https://api.mainnet-beta.solana.com"
	DefaultIndexerURL  = "https://api.covalenthq.com"
	DefaultPricesURL   = "https://api.coingecko.com"
)

// DefaultSolanaReserve is left behind on native sweeps to pay for the transfer itself (0.01 SOL).
const DefaultSolanaReserve uint64 = 10_000_000

// Defaults returns the default configuration.
func Defaults() *Config {
	return &Config{
		Version: 1,
		Home:    "~/.emptier",
		Shell: ShellConfig{
			Network: "ethereum",
			Theme:   "dark",
		},
		Networks: NetworksConfig{
			Ethereum: EVMNetworkConfig{
				RPC:      DefaultEthereumRPC,
				ChainID:  1,
				Explorer: "https://etherscan.io/",
			},
			BNB: EVMNetworkConfig{
				RPC:      DefaultBNBRPC,
				ChainID:  56,
				Explorer: "https://bscscan.com/",
			},
			Solana: SolanaNetworkConfig{
				RPC:             DefaultSolanaRPC,
				Commitment:      "confirmed",
				ReserveLamports: DefaultSolanaReserve,
				Explorer:        "https://explorer.solana.com/",
			},
		},
		Indexer: IndexerConfig{
			BaseURL:       DefaultIndexerURL,
			DemoFallback:  true,
			RatePerSecond: 4,
			Burst:         4,
			Timeout:       30 * time.Second,
		},
		Prices: PricesConfig{
			BaseURL: DefaultPricesURL,
		},
		Confirm: ConfirmConfig{
			PollInterval: 2 * time.Second,
			Timeout:      3 * time.Minute,
		},
		Output: OutputConfig{
			Color: "auto",
		},
		Logging: LoggingConfig{
			Level: "error",
			File:  "~/.emptier/emptier.log",
		},
	}
}
