package cmd

import (
	"fmt"
	"io"

	"github.com/shopspring/decimal"

	"github.com/chinmay1088/emptier/chains"
	"github.com/chinmay1088/emptier/errs"
	"github.com/chinmay1088/emptier/shell"
	"github.com/chinmay1088/emptier/sweep"
)

// displayPlaces is the number of fractional digits shown for amounts.
const displayPlaces = 6

func formatUSD(d decimal.Decimal) string {
	return "$" + d.StringFixed(2)
}

func statusGlyph(status sweep.Status) string {
	switch status {
	case sweep.StatusPending:
		return "⏳"
	case sweep.StatusSuccess:
		return "✅"
	case sweep.StatusError:
		return "❌"
	default:
		return "  "
	}
}

func renderSession(w io.Writer, p shell.Palette, snap sweep.Snapshot, usd bool) {
	s := snap.Session
	if s == nil {
		p.Muted.Fprintln(w, "Not connected")
		return
	}

	n := s.Network
	p.Title.Fprintf(w, "🌐 %s\n", n.DisplayName)
	fmt.Fprintf(w, "   Account: %s\n", p.Accent.Sprint(chains.ShortAddress(s.Account)))

	balance := chains.FormatAmount(s.NativeBalance, n.NativeDecimals, displayPlaces, n.NativeSymbol)
	if usd && s.NativeUSD.Valid {
		balance += p.Muted.Sprintf(" (~%s)", formatUSD(s.NativeUSD.Decimal))
	}
	fmt.Fprintf(w, "   Balance: %s %s\n", balance, statusGlyph(snap.Status[n.NativeSymbol]))

	if s.Destination != "" {
		fmt.Fprintf(w, "   Destination: %s\n", s.Destination)
	}
}

func renderHoldings(w io.Writer, p shell.Palette, snap sweep.Snapshot, usd bool) {
	if len(snap.Holdings) == 0 {
		p.Muted.Fprintln(w, "   No tokens found")
		return
	}

	demo := false
	p.Title.Fprintf(w, "🪙 Tokens (%d)\n", len(snap.Holdings))
	for _, h := range snap.Holdings {
		mark := " "
		if snap.IsSelected(h.ID) {
			mark = "*"
		}

		line := fmt.Sprintf(" %s %-10s %s", mark, h.Symbol, h.Amount().Truncate(displayPlaces).String())
		if usd && h.USDQuote.Valid {
			line += p.Muted.Sprintf(" (~%s)", formatUSD(h.USDQuote.Decimal))
		}
		if h.Demo {
			line += p.Pending.Sprint(" [demo]")
			demo = true
		}
		fmt.Fprintf(w, "%s %s\n", line, statusGlyph(snap.Status[h.ID]))
		p.Muted.Fprintf(w, "     %s\n", h.ID)
	}

	if demo {
		fmt.Fprintln(w)
		p.Pending.Fprintln(w, "⚠️  Token list unavailable; [demo] entries are sample data, not your balances.")
	}
}

func renderResult(w io.Writer, p shell.Palette, res sweep.Result) {
	switch res.Status {
	case sweep.StatusSuccess:
		p.Success.Fprintf(w, "%s %s sent\n", statusGlyph(res.Status), res.Symbol)
		if res.Receipt.URL != "" {
			fmt.Fprintf(w, "   🔗 %s\n", res.Receipt.URL)
		} else if res.Receipt.TxID != "" {
			fmt.Fprintf(w, "   🔗 %s\n", res.Receipt.TxID)
		}
	case sweep.StatusError:
		p.Failure.Fprintf(w, "%s %s failed: %v\n", statusGlyph(res.Status), res.Symbol, res.Err)
		if s := errs.SuggestionOf(res.Err); s != "" {
			p.Muted.Fprintf(w, "   💡 %s\n", s)
		}
	default:
		p.Pending.Fprintf(w, "%s %s pending\n", statusGlyph(res.Status), res.Symbol)
	}
}

// summarize counts the results by status.
func summarize(results []sweep.Result) (ok, failed int) {
	for _, r := range results {
		switch r.Status {
		case sweep.StatusSuccess:
			ok++
		case sweep.StatusError:
			failed++
		}
	}
	return ok, failed
}
