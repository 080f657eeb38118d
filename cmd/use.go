package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/chinmay1088/emptier/chains"
)

var useCmd = &cobra.Command{
	Use:     "use [network]",
	Aliases: []string{"network"},
	Short:   "Show or change the active network",
	Long: `Show the active network or switch to another one.

Supported networks: ethereum (eth), bnb (bsc), solana (sol)

Examples:
  emptier use            # Show the active network
  emptier use bnb        # Switch to BNB Chain
  emptier use solana     # Switch to Solana`,
	Args: cobra.MaximumNArgs(1),
	RunE: runUse,
}

func runUse(cmd *cobra.Command, args []string) error {
	if len(args) == 0 {
		return showNetworks()
	}

	n, err := app.shell.Use(args[0])
	if err != nil {
		return err
	}

	fmt.Printf("🌐 Switched to %s\n", palette().Accent.Sprint(n.DisplayName))
	return nil
}

func showNetworks() error {
	active, err := app.shell.Active()
	if err != nil {
		return err
	}

	p := palette()
	fmt.Printf("🌐 Active network: %s\n", p.Accent.Sprint(active.DisplayName))
	fmt.Println()
	for _, n := range chains.All() {
		mark := " "
		if n.Name == active.Name {
			mark = "*"
		}
		fmt.Printf(" %s %-9s %s\n", mark, n.Name, p.Muted.Sprintf("%s, %s", n.DisplayName, n.NativeSymbol))
	}
	return nil
}
