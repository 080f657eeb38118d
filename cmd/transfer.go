package cmd

import (
	"fmt"
	"os"
	"os/signal"
	"strings"

	"github.com/spf13/cobra"

	"github.com/chinmay1088/emptier/chains"
	"github.com/chinmay1088/emptier/chains/evm"
	"github.com/chinmay1088/emptier/errs"
	"github.com/chinmay1088/emptier/shell"
	"github.com/chinmay1088/emptier/sweep"
)

var errTransfersFailed = &errs.Error{
	Code:     "TRANSFERS_FAILED",
	Message:  "some transfers failed",
	Kind:     errs.KindSubmission,
	ExitCode: errs.ExitSubmission,
}

// transferFlags are shared by transfer and sweep.
type transferFlags struct {
	to       string
	gasPrice string
	tokens   []string
	all      bool
}

var transferOpts transferFlags

var transferCmd = &cobra.Command{
	Use:   "transfer",
	Short: "Transfer the native balance or selected tokens",
	Long: `Transfer the whole native balance, or the whole balance of selected tokens,
to one destination address.

Examples:
  emptier transfer native --to 0x742d35Cc6634C0532925a3b8D4C9db96C4b4d8b6
  emptier transfer native --to 0x742d... --gas-price 3      # 3 gwei
  emptier transfer tokens --to 0x742d... --token USDT --token USDC
  emptier transfer tokens --to 7xKXtg2CW87d97TXJSDpbD5jBkheTqA83TZRuJosgAsU --all -n solana`,
}

var transferNativeCmd = &cobra.Command{
	Use:   "native",
	Short: "Send the entire native balance",
	Args:  cobra.NoArgs,
	RunE:  runTransferNative,
}

var transferTokensCmd = &cobra.Command{
	Use:   "tokens",
	Short: "Send the entire balance of selected tokens",
	Args:  cobra.NoArgs,
	RunE:  runTransferTokens,
}

func init() {
	for _, c := range []*cobra.Command{transferNativeCmd, transferTokensCmd} {
		c.Flags().StringVar(&transferOpts.to, "to", "", "destination address")
		_ = c.MarkFlagRequired("to")
	}
	transferNativeCmd.Flags().StringVar(&transferOpts.gasPrice, "gas-price", "auto", "gas price in gwei (EVM only)")
	transferTokensCmd.Flags().StringSliceVar(&transferOpts.tokens, "token", nil, "token symbol or address (repeatable)")
	transferTokensCmd.Flags().BoolVar(&transferOpts.all, "all", false, "select every token")

	transferCmd.AddCommand(transferNativeCmd, transferTokensCmd)
}

func runTransferNative(cmd *cobra.Command, args []string) error {
	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt)
	defer stop()

	session, err := connect(ctx, printResult)
	if err != nil {
		return err
	}
	defer session.Close()

	if err := prepare(session, transferOpts); err != nil {
		return err
	}

	snap := session.Snapshot()
	fmt.Println()
	renderSession(os.Stdout, palette(), snap, false)
	if !confirmTransfer(snap.Session.Network) {
		fmt.Println("❌ Transfer cancelled by user")
		return nil
	}

	fmt.Printf("⏳ Sending %s...\n", snap.Session.Network.NativeSymbol)
	res, err := session.TransferNative(ctx)
	if err != nil && res.ID == "" {
		return err
	}
	return report([]sweep.Result{res})
}

func runTransferTokens(cmd *cobra.Command, args []string) error {
	if len(transferOpts.tokens) == 0 && !transferOpts.all {
		return errs.WithSuggestion(errs.ErrNoTokensSelected, "pass --token SYMBOL or --all")
	}

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt)
	defer stop()

	session, err := connect(ctx, printResult)
	if err != nil {
		return err
	}
	defer session.Close()

	if err := prepare(session, transferOpts); err != nil {
		return err
	}
	if err := selectTokens(session, transferOpts); err != nil {
		return err
	}

	snap := session.Snapshot()
	showSnapshot(snap, false)
	if !confirmTransfer(snap.Session.Network) {
		fmt.Println("❌ Transfer cancelled by user")
		return nil
	}

	results, err := session.TransferSelected(ctx)
	if err != nil {
		return err
	}
	return report(results)
}

func printResult(res sweep.Result) {
	renderResult(os.Stdout, palette(), res)
}

// prepare sets the destination and fee override on a connected session.
func prepare(session *shell.Session, opts transferFlags) error {
	if err := session.SetDestination(strings.TrimSpace(opts.to)); err != nil {
		return err
	}

	price, err := evm.ParseGasPrice(opts.gasPrice)
	if err != nil {
		return errs.WithSuggestion(err, "give the gas price in gwei, e.g. --gas-price 3, or 'auto'")
	}
	return session.SetFeeOverride(price)
}

// selectTokens selects --all or each --token.
func selectTokens(session *shell.Session, opts transferFlags) error {
	if opts.all {
		session.SelectAll()
		return nil
	}

	holdings := session.Snapshot().Holdings
	for _, ref := range opts.tokens {
		id, err := resolveToken(holdings, ref)
		if err != nil {
			return err
		}
		if session.Snapshot().IsSelected(id) {
			continue
		}
		if _, err := session.Toggle(id); err != nil {
			return err
		}
	}
	return nil
}

// resolveToken finds a holding by id or by a unique symbol, case-insensitively.
func resolveToken(holdings []chains.Holding, ref string) (string, error) {
	ref = strings.TrimSpace(ref)
	for _, h := range holdings {
		if strings.EqualFold(h.ID, ref) {
			return h.ID, nil
		}
	}

	var matches []chains.Holding
	for _, h := range holdings {
		if strings.EqualFold(h.Symbol, ref) {
			matches = append(matches, h)
		}
	}

	switch len(matches) {
	case 1:
		return matches[0].ID, nil
	case 0:
		return "", errs.WithDetails(errs.ErrUnknownAsset, map[string]string{"token": ref})
	default:
		ids := make([]string, len(matches))
		for i, h := range matches {
			ids[i] = h.ID
		}
		err := errs.WithDetails(errs.ErrUnknownAsset, map[string]string{"token": ref})
		return "", errs.WithSuggestion(err, "several tokens use that symbol, pass one of: "+strings.Join(ids, ", "))
	}
}

func confirmTransfer(n chains.Network) bool {
	fmt.Println()
	fmt.Printf("🚨 You are on %s. By confirming, real funds will be sent to the destination address.\n", n.DisplayName)
	return confirm("Press y to confirm or n to stop")
}

func report(results []sweep.Result) error {
	ok, failed := summarize(results)
	fmt.Println()
	fmt.Printf("📊 %d succeeded, %d failed\n", ok, failed)
	if failed > 0 {
		return errs.WithDetails(errTransfersFailed, map[string]string{"failed": fmt.Sprint(failed)})
	}
	return nil
}
