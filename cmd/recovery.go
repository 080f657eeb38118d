package cmd

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/chinmay1088/emptier/wallet"
)

var recoveryForce bool

var recoveryPhraseCmd = &cobra.Command{
	Use:   "recovery-phrase",
	Short: "Manage recovery phrase",
	Long: `Manage your wallet's recovery phrase (mnemonic).

Commands:
  show    - Display the recovery phrase (requires password)
  import  - Import wallet from existing recovery phrase`,
}

var recoveryShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Display the recovery phrase",
	Args:  cobra.NoArgs,
	RunE:  runRecoveryShow,
}

var recoveryImportCmd = &cobra.Command{
	Use:   "import",
	Short: "Import a wallet from a 12 or 24 word recovery phrase",
	Args:  cobra.NoArgs,
	RunE:  runRecoveryImport,
}

func init() {
	recoveryImportCmd.Flags().BoolVar(&recoveryForce, "force", false, "replace an existing wallet")
	recoveryPhraseCmd.AddCommand(recoveryShowCmd, recoveryImportCmd)
}

func runRecoveryShow(cmd *cobra.Command, args []string) error {
	if !app.manager.VaultExists() {
		return wallet.ErrNoWallet
	}
	if !confirm("The recovery phrase will be printed to this terminal. Continue?") {
		fmt.Println("❌ Cancelled")
		return nil
	}
	if err := unlock(); err != nil {
		return err
	}

	mnemonic, err := app.manager.Mnemonic()
	if err != nil {
		return err
	}

	palette().Title.Println("🔐 Recovery Phrase:")
	fmt.Println()
	fmt.Printf("   %s\n", mnemonic)
	fmt.Println()
	fmt.Println("⚠️  Security Warning:")
	fmt.Println("   - Keep this phrase secure and private")
	fmt.Println("   - Anyone with this phrase can access your funds")
	fmt.Println("   - Never share it with anyone")

	return nil
}

func runRecoveryImport(cmd *cobra.Command, args []string) error {
	manager := app.manager

	if manager.VaultExists() && !recoveryForce {
		return wallet.ErrWalletExists
	}

	fmt.Println("📝 Import Wallet from Recovery Phrase")
	fmt.Println()

	fmt.Print("Enter recovery phrase: ")
	mnemonic, err := readLine(stdin)
	if err != nil {
		return err
	}

	// check the phrase before asking for a password
	mnemonic = wallet.NormalizeMnemonic(mnemonic)
	if n := len(strings.Fields(mnemonic)); n != 12 && n != 24 {
		fmt.Printf("⚠️  Got %d words; recovery phrases have 12 or 24\n", n)
	}

	password, err := readNewPassword()
	if err != nil {
		return err
	}

	if err := manager.ImportFromMnemonic(mnemonic, password); err != nil {
		return err
	}

	palette().Success.Println("✅ Wallet imported successfully!")
	fmt.Println()
	fmt.Println("🔑 Next steps:")
	fmt.Println("   - Run 'emptier address' to see your addresses")
	fmt.Println("   - Run 'emptier holdings' to check your balances")

	return nil
}
