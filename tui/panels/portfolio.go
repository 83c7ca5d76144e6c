package panels

import (
	"fmt"
	"slices"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/shopspring/decimal"

	"github.com/zappabad/trademaster/internal/achievement"
	"github.com/zappabad/trademaster/internal/game"
	"github.com/zappabad/trademaster/internal/market"
	"github.com/zappabad/trademaster/internal/portfolio"
	"github.com/zappabad/trademaster/internal/report"
	"github.com/zappabad/trademaster/tui/styles"
)

// PortfolioPanel shows balances, progression, holdings and achievements.
type PortfolioPanel struct {
	snap    game.Snapshot
	focused bool
	width   int
	height  int
}

// NewPortfolioPanel creates a new portfolio panel.
func NewPortfolioPanel() *PortfolioPanel {
	return &PortfolioPanel{}
}

// Init initializes the panel.
func (p *PortfolioPanel) Init() tea.Cmd {
	return nil
}

// Update handles messages for the panel.
func (p *PortfolioPanel) Update(msg tea.Msg) (*PortfolioPanel, tea.Cmd) {
	return p, nil
}

// View renders the panel.
func (p *PortfolioPanel) View() string {
	var content strings.Builder
	s := p.snap
	st := s.Portfolio

	content.WriteString(p.line("Cash", styles.PriceStyle.Render(styles.FormatMoney(st.Cash))))
	content.WriteString(p.line("Total", styles.PriceStyle.Bold(true).Render(styles.FormatMoney(s.TotalValue))))
	content.WriteString(p.line("P/L", styles.ChangeStyle(s.ProfitLoss).Render(
		fmt.Sprintf("%s (%s)", report.SignedMoney(s.ProfitLoss), report.Percent(s.ProfitLossPercent)))))

	xp := st.Experience % portfolio.ExperiencePerLevel
	content.WriteString(p.line("Level", fmt.Sprintf("%d  %s %d XP", s.Level(),
		styles.ProgressBar(xp, portfolio.ExperiencePerLevel, 10), st.Experience)))
	content.WriteString(p.line("Trades", fmt.Sprintf("%d", st.TradeCount)))

	content.WriteString("\n")
	content.WriteString(styles.HeaderStyle.Render("Holdings"))
	content.WriteString("\n")
	content.WriteString(p.renderHoldings())

	content.WriteString("\n\n")
	content.WriteString(styles.HeaderStyle.Render("Achievements"))
	content.WriteString("\n")
	content.WriteString(p.renderAchievements())

	panelStyle := styles.PanelStyle
	if p.focused {
		panelStyle = styles.FocusedPanelStyle
	}

	title := styles.RenderTitle("💼 Portfolio", p.focused)
	panel := lipgloss.JoinVertical(lipgloss.Left, title, content.String())

	return panelStyle.Width(p.width - 2).Height(p.height - 2).Render(panel)
}

func (p *PortfolioPanel) line(label, value string) string {
	return styles.LabelStyle.Render(fmt.Sprintf("%-8s", label)) + value + "\n"
}

func (p *PortfolioPanel) renderHoldings() string {
	holdings := p.snap.Portfolio.Holdings
	if len(holdings) == 0 {
		return styles.MutedStyle.Render("No positions")
	}

	symbols := make([]market.Symbol, 0, len(holdings))
	for sym := range holdings {
		symbols = append(symbols, sym)
	}
	slices.Sort(symbols)

	rows := make([]string, 0, len(symbols))
	for _, sym := range symbols {
		shares := holdings[sym]
		value := decimal.Zero
		if in, ok := market.Find(p.snap.Instruments, sym); ok {
			value = in.Price.Mul(decimal.NewFromInt(shares))
		}
		rows = append(rows, fmt.Sprintf("%-6s %6d  %s", sym, shares, styles.FormatMoney(value)))
	}
	return strings.Join(rows, "\n")
}

func (p *PortfolioPanel) renderAchievements() string {
	names := p.snap.Portfolio.Achievements
	if len(names) == 0 {
		return styles.MutedStyle.Render("None yet")
	}
	rows := make([]string, len(names))
	for i, name := range names {
		rows[i] = styles.AchievementStyle.Render("🏆 " + name)
	}
	return strings.Join(rows, "\n")
}

// SetFocus sets the focus state of the panel.
func (p *PortfolioPanel) SetFocus(focused bool) {
	p.focused = focused
}

// SetSize sets the panel dimensions.
func (p *PortfolioPanel) SetSize(width, height int) {
	p.width = width
	p.height = height
}

// SetSnapshot sets the session state to render.
func (p *PortfolioPanel) SetSnapshot(snap game.Snapshot) {
	p.snap = snap
}

// NotificationText is the banner text for an active achievement notification.
func NotificationText(n *achievement.Notification) string {
	if n == nil {
		return ""
	}
	return "🏆 Achievement Unlocked: " + n.Name + "!"
}
