package cmd

import (
	"fmt"
	"os"
	"os/signal"

	"github.com/spf13/cobra"

	"github.com/chinmay1088/emptier/sweep"
)

var holdingsUSD bool

var holdingsCmd = &cobra.Command{
	Use:     "holdings",
	Aliases: []string{"balance"},
	Short:   "Show coin and token balances",
	Long: `Connect to the active network and list the native balance and every
token the account holds.

Token lists on Ethereum and BNB Chain come from the Covalent indexer and need
EMPTIER_INDEXER_API_KEY (environment or .env). Without it a demonstration
list is shown, marked [demo], unless indexer.demo_fallback is false.

Examples:
  emptier holdings             # Active network
  emptier holdings -n solana   # Solana
  emptier holdings --usd       # With USD values`,
	Args: cobra.NoArgs,
	RunE: runHoldings,
}

func init() {
	holdingsCmd.Flags().BoolVar(&holdingsUSD, "usd", false, "show USD values")
}

func runHoldings(cmd *cobra.Command, args []string) error {
	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt)
	defer stop()

	session, err := connect(ctx, nil)
	if err != nil {
		return err
	}
	defer session.Close()

	showSnapshot(session.Snapshot(), holdingsUSD)
	return nil
}

func showSnapshot(snap sweep.Snapshot, usd bool) {
	p := palette()
	fmt.Println()
	renderSession(os.Stdout, p, snap, usd)
	fmt.Println()
	renderHoldings(os.Stdout, p, snap, usd)
}
