package cmd

import (
	"fmt"
	"os"
	"os/signal"

	"github.com/schollz/progressbar/v3"
	"github.com/spf13/cobra"

	"github.com/chinmay1088/emptier/sweep"
)

var (
	sweepOpts       transferFlags
	sweepNativeOnly bool
)

var sweepCmd = &cobra.Command{
	Use:   "sweep",
	Short: "Send every selected token, then the native balance",
	Long: `Empty the wallet on the active network. Tokens are sent first so their
fees come out of the native balance before it is measured; the native
balance goes last.

Without --token every token is selected.

Examples:
  emptier sweep --to 0x742d35Cc6634C0532925a3b8D4C9db96C4b4d8b6
  emptier sweep --to 0x742d... --token USDT --gas-price 5
  emptier sweep --to 7xKXtg2CW87d97TXJSDpbD5jBkheTqA83TZRuJosgAsU -n solana
  emptier sweep --to 0x742d... --native-only`,
	Args: cobra.NoArgs,
	RunE: runSweep,
}

func init() {
	sweepCmd.Flags().StringVar(&sweepOpts.to, "to", "", "destination address")
	sweepCmd.Flags().StringVar(&sweepOpts.gasPrice, "gas-price", "auto", "gas price in gwei (EVM only)")
	sweepCmd.Flags().StringSliceVar(&sweepOpts.tokens, "token", nil, "token symbol or address (repeatable)")
	sweepCmd.Flags().BoolVar(&sweepNativeOnly, "native-only", false, "skip tokens")
	_ = sweepCmd.MarkFlagRequired("to")
}

func runSweep(cmd *cobra.Command, args []string) error {
	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt)
	defer stop()

	var bar *progressbar.ProgressBar
	var done []sweep.Result
	onResult := func(res sweep.Result) {
		done = append(done, res)
		if bar != nil {
			bar.Describe(fmt.Sprintf("%s %s", statusGlyph(res.Status), res.Symbol))
			_ = bar.Add(1)
		}
	}

	session, err := connect(ctx, onResult)
	if err != nil {
		return err
	}
	defer session.Close()

	if err := prepare(session, sweepOpts); err != nil {
		return err
	}

	opts := sweepOpts
	opts.all = len(opts.tokens) == 0
	if !sweepNativeOnly {
		if err := selectTokens(session, opts); err != nil {
			return err
		}
	}

	snap := session.Snapshot()
	showSnapshot(snap, false)
	if !confirmTransfer(snap.Session.Network) {
		fmt.Println("❌ Sweep cancelled by user")
		return nil
	}

	bar = progressbar.NewOptions(len(snap.Selected)+1,
		progressbar.OptionEnableColorCodes(true),
		progressbar.OptionShowCount(),
		progressbar.OptionSetWidth(40),
		progressbar.OptionSetDescription("[cyan]sweeping[reset]"),
		progressbar.OptionSetTheme(progressbar.Theme{
			Saucer:     "[green]=[reset]",
			SaucerHead: "[green]>[reset]",
			BarStart:   "[",
			BarEnd:     "]",
		}),
	)

	results, err := session.SweepAll(ctx)
	_ = bar.Finish()
	fmt.Println()
	fmt.Println()

	for _, res := range done {
		renderResult(os.Stdout, palette(), res)
	}
	if err != nil {
		return err
	}

	fmt.Println()
	renderSession(os.Stdout, palette(), session.Snapshot(), false)
	return report(results)
}
