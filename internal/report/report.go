// Package report renders a session summary as markdown.
package report

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/glamour"
	"github.com/shopspring/decimal"

	"github.com/zappabad/trademaster/internal/game"
)

// Markdown describes the session in snap.
func Markdown(snap game.Snapshot) string {
	var b strings.Builder
	p := snap.Portfolio

	fmt.Fprintf(&b, "# Session report\n\n")
	fmt.Fprintf(&b, "After **%d** ticks the market is **%s**.\n\n", snap.Tick, snap.Trend)

	b.WriteString("## Summary\n\n")
	b.WriteString("| | |\n|---|---|\n")
	fmt.Fprintf(&b, "| Portfolio value | %s |\n", Money(snap.TotalValue))
	fmt.Fprintf(&b, "| Cash | %s |\n", Money(p.Cash))
	fmt.Fprintf(&b, "| Profit/Loss | %s (%s) |\n", SignedMoney(snap.ProfitLoss), Percent(snap.ProfitLossPercent))
	fmt.Fprintf(&b, "| Level | %d |\n", snap.Level())
	fmt.Fprintf(&b, "| Experience | %d XP |\n", p.Experience)
	fmt.Fprintf(&b, "| Trades | %d |\n\n", p.TradeCount)

	b.WriteString("## Market\n\n")
	b.WriteString("| Symbol | Name | Price | Change | Held | Value |\n|---|---|--:|--:|--:|--:|\n")
	for _, in := range snap.Instruments {
		shares := p.Shares(in.Symbol)
		value := "-"
		if shares > 0 {
			value = Money(in.Price.Mul(decimal.NewFromInt(shares)))
		}
		fmt.Fprintf(&b, "| %s | %s | %s | %s | %d | %s |\n",
			in.Symbol, in.Name, Money(in.Price), Percent(in.ChangePercent()), shares, value)
	}
	b.WriteString("\n")

	b.WriteString("## Recent transactions\n\n")
	if len(p.Transactions) == 0 {
		b.WriteString("_No trades yet._\n\n")
	} else {
		b.WriteString("| Time | Side | Symbol | Shares | Price | Amount |\n|---|---|---|--:|--:|--:|\n")
		for _, tx := range p.Transactions {
			fmt.Fprintf(&b, "| %s | %s | %s | %d | %s | %s |\n",
				tx.Time.Format("15:04:05"), tx.Direction, tx.Symbol, tx.Shares, Money(tx.Price), Money(tx.Amount()))
		}
		b.WriteString("\n")
	}

	b.WriteString("## Achievements\n\n")
	if len(p.Achievements) == 0 {
		b.WriteString("_None unlocked._\n\n")
	} else {
		for _, a := range p.Achievements {
			fmt.Fprintf(&b, "- 🏆 %s\n", a)
		}
		b.WriteString("\n")
	}

	if len(snap.Insights) > 0 {
		b.WriteString("## AI insights\n\n")
		for _, in := range snap.Insights {
			fmt.Fprintf(&b, "- %s\n", in.Text)
		}
		b.WriteString("\n")
	}

	return b.String()
}

// Render formats markdown for the terminal. style is a glamour standard
// style name ("dark", "light", "notty", ...) or "auto".
func Render(markdown, style string, width int) (string, error) {
	opts := []glamour.TermRendererOption{glamour.WithWordWrap(width)}
	if style == "" || style == "auto" {
		opts = append(opts, glamour.WithAutoStyle())
	} else {
		opts = append(opts, glamour.WithStandardStyle(style))
	}

	r, err := glamour.NewTermRenderer(opts...)
	if err != nil {
		return "", fmt.Errorf("create renderer: %w", err)
	}
	out, err := r.Render(markdown)
	if err != nil {
		return "", fmt.Errorf("render report: %w", err)
	}
	return out, nil
}
