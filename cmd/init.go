package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/chinmay1088/emptier/wallet"
)

var initForce bool

var initCmd = &cobra.Command{
	Use:   "init",
	Short: "Initialize a new wallet",
	Long: `Initialize a new emptier wallet with a secure recovery phrase.

This command will:
  - Generate a new 24-word recovery phrase
  - Create an encrypted vault
  - Derive your Ethereum/BNB Chain and Solana accounts`,
	RunE: runInit,
}

func init() {
	initCmd.Flags().BoolVar(&initForce, "force", false, "replace an existing wallet")
}

func runInit(cmd *cobra.Command, args []string) error {
	manager := app.manager

	if manager.VaultExists() && !initForce {
		return wallet.ErrWalletExists
	}

	fmt.Println("🚀 Initializing emptier wallet")
	fmt.Println()

	password, err := readNewPassword()
	if err != nil {
		return err
	}

	fmt.Println("Generating wallet...")
	mnemonic, err := manager.Initialize(password)
	if err != nil {
		return fmt.Errorf("failed to initialize wallet: %w", err)
	}

	p := palette()
	p.Success.Println("✅ Wallet initialized successfully!")
	fmt.Println()
	p.Title.Println("🔐 Recovery Phrase (24 words):")
	fmt.Println()
	fmt.Printf("   %s\n", mnemonic)
	fmt.Println()
	fmt.Println("⚠️  IMPORTANT:")
	fmt.Println("   - Write down this recovery phrase and store it securely")
	fmt.Println("   - Anyone with this phrase can access your funds")
	fmt.Println("   - This is the only way to recover your wallet")
	fmt.Println()
	fmt.Printf("🗄  Vault: %s\n", manager.VaultPath())
	fmt.Println()
	fmt.Println("🔑 Next steps:")
	fmt.Println("   - Run 'emptier address' to see your addresses")
	fmt.Println("   - Run 'emptier holdings' to check your balances")

	return nil
}
