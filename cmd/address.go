package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/chinmay1088/emptier/chains"
)

var addressCmd = &cobra.Command{
	Use:   "address [network]",
	Short: "Show wallet address",
	Long: `Show your wallet address for the specified network.
Supported networks: ethereum, bnb, solana

Ethereum and BNB Chain share one address.

Examples:
  emptier address eth     # Show Ethereum address
  emptier address sol     # Show Solana address
  emptier address         # Show all addresses`,
	Args: cobra.MaximumNArgs(1),
	RunE: runAddress,
}

func runAddress(cmd *cobra.Command, args []string) error {
	networks := chains.All()
	if len(args) == 1 {
		n, err := chains.Lookup(args[0])
		if err != nil {
			return err
		}
		networks = []chains.Network{n}
	}

	if err := unlock(); err != nil {
		return err
	}

	p := palette()
	p.Title.Println("🔑 Your wallet addresses:")
	fmt.Println()

	for _, n := range networks {
		addr, err := accountAddress(n)
		if err != nil {
			return fmt.Errorf("failed to get %s address: %w", n.DisplayName, err)
		}
		fmt.Printf("%-10s (%s): %s\n", n.DisplayName, n.NativeSymbol, p.Accent.Sprint(addr))
	}

	return nil
}

func accountAddress(n chains.Network) (string, error) {
	if n.IsEVM() {
		addr, err := app.manager.EthereumAddress()
		if err != nil {
			return "", err
		}
		return addr.Hex(), nil
	}

	addr, err := app.manager.SolanaAddress()
	if err != nil {
		return "", err
	}
	return addr.String(), nil
}
