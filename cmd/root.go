package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
)

var (
	version = "0.3.0"
)

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "emptier",
	Short: "Sweep a wallet's coins and tokens to another address",
	Long: `Emptier moves everything out of a wallet: the native coin and any
tokens it holds, on Ethereum, BNB Chain and Solana, to one destination
address you choose.

Each transfer is submitted on its own and reported as pending, success or
error. Nothing is batched and nothing is retried.

Examples:
  emptier init                                   # Create a new wallet
  emptier use bnb                                # Make BNB Chain the active network
  emptier holdings --usd                         # List coin and token balances
  emptier transfer tokens --all --to 0x1234...   # Send every token
  emptier transfer native --to 0x1234...         # Send the coin balance
  emptier sweep --to 0x1234...                   # Tokens first, then the coin`,
	SilenceUsage:      true,
	SilenceErrors:     true,
	PersistentPreRunE: setup,
	PersistentPostRun: func(*cobra.Command, []string) { teardown() },
}

// Execute adds all child commands to the root command and sets flags appropriately.
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	// Global flags
	rootCmd.PersistentFlags().StringVar(&flags.home, "home", "", "emptier home directory (default ~/.emptier)")
	rootCmd.PersistentFlags().StringVarP(&flags.network, "network", "n", "", "network to use for this command (ethereum, bnb, solana)")
	rootCmd.PersistentFlags().StringVar(&flags.keypair, "keypair", "", "sign Solana transfers with a solana-keygen keypair file")
	rootCmd.PersistentFlags().BoolVarP(&flags.yes, "yes", "y", false, "do not ask for confirmation")
	rootCmd.PersistentFlags().BoolVarP(&flags.verbose, "verbose", "v", false, "write debug lines to the log file")

	// Add subcommands
	rootCmd.AddCommand(initCmd)
	rootCmd.AddCommand(recoveryPhraseCmd)
	rootCmd.AddCommand(addressCmd)
	rootCmd.AddCommand(holdingsCmd)
	rootCmd.AddCommand(transferCmd)
	rootCmd.AddCommand(sweepCmd)
	rootCmd.AddCommand(useCmd)
	rootCmd.AddCommand(themeCmd)
	rootCmd.AddCommand(versionCmd)
}

// versionCmd represents the version command
var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print the version number",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Printf("emptier v%s\n", version)
	},
}
