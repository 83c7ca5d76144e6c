package panels

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/shopspring/decimal"

	"github.com/zappabad/trademaster/internal/game"
	"github.com/zappabad/trademaster/internal/market"
	"github.com/zappabad/trademaster/internal/portfolio"
	"github.com/zappabad/trademaster/tui/styles"
)

// DefaultTradeSize is the share count the trade panel starts with.
const DefaultTradeSize = 10

// Key bindings of the trade panel.
var (
	BuyKey  = key.NewBinding(key.WithKeys("b"), key.WithHelp("b", "buy"))
	SellKey = key.NewBinding(key.WithKeys("s"), key.WithHelp("s", "sell"))
)

// TradePanel holds the trade size and issues buy and sell requests for
// the selected instrument.
type TradePanel struct {
	sharesInput textinput.Model
	snap        game.Snapshot

	focused bool
	width   int
	height  int
}

// NewTradePanel creates a new trade panel.
func NewTradePanel() *TradePanel {
	in := textinput.New()
	in.Placeholder = "Shares"
	in.Width = 8
	in.CharLimit = 6
	in.SetValue(strconv.Itoa(DefaultTradeSize))
	in.Focus()

	return &TradePanel{sharesInput: in}
}

// Init initializes the panel.
func (p *TradePanel) Init() tea.Cmd {
	return textinput.Blink
}

// Update handles messages for the panel. Buy and sell keys are handled
// regardless of focus; every other key only edits the size.
func (p *TradePanel) Update(msg tea.Msg) (*TradePanel, tea.Cmd) {
	var cmd tea.Cmd

	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch {
		case key.Matches(msg, BuyKey):
			return p, p.request(portfolio.Buy)
		case key.Matches(msg, SellKey):
			return p, p.request(portfolio.Sell)
		}
		if !isSizeKey(msg) {
			return p, nil
		}
		p.sharesInput, cmd = p.sharesInput.Update(msg)
	default:
		p.sharesInput, cmd = p.sharesInput.Update(msg)
	}
	return p, cmd
}

func (p *TradePanel) request(dir portfolio.Direction) tea.Cmd {
	symbol := p.snap.Selected
	shares := p.Shares()
	if symbol == "" {
		return nil
	}
	return func() tea.Msg {
		return TradeRequestMsg{Direction: dir, Symbol: symbol, Shares: shares}
	}
}

// isSizeKey reports whether msg edits the share count.
func isSizeKey(msg tea.KeyMsg) bool {
	switch msg.Type {
	case tea.KeyBackspace, tea.KeyDelete, tea.KeyLeft, tea.KeyRight:
		return true
	case tea.KeyRunes:
		for _, r := range msg.Runes {
			if r < '0' || r > '9' {
				return false
			}
		}
		return len(msg.Runes) > 0
	}
	return false
}

// View renders the panel.
func (p *TradePanel) View() string {
	var content strings.Builder

	in, ok := p.snap.SelectedInstrument()
	if !ok {
		content.WriteString(styles.MutedStyle.Render("No instrument selected"))
	} else {
		shares := p.Shares()
		cost := in.Price.Mul(decimal.NewFromInt(shares))

		content.WriteString(styles.LabelStyle.Render(fmt.Sprintf("%-8s", "Symbol")))
		content.WriteString(styles.RowStyle.Bold(true).Render(string(in.Symbol)))
		content.WriteString(styles.MutedStyle.Render(" " + in.Name))
		content.WriteString("\n")
		content.WriteString(styles.LabelStyle.Render(fmt.Sprintf("%-8s", "Price")))
		content.WriteString(styles.PriceStyle.Render(styles.FormatMoney(in.Price)))
		content.WriteString("\n")
		content.WriteString(styles.LabelStyle.Render(fmt.Sprintf("%-8s", "Held")))
		content.WriteString(styles.SizeStyle.Render(fmt.Sprintf("%d", p.snap.Portfolio.Shares(in.Symbol))))
		content.WriteString("\n")

		inputStyle := styles.InputStyle
		if p.focused {
			inputStyle = styles.FocusedInputStyle
		}
		content.WriteString(lipgloss.JoinHorizontal(lipgloss.Center,
			styles.LabelStyle.Render(fmt.Sprintf("%-8s", "Shares")),
			inputStyle.Render(p.sharesInput.View()),
		))
		content.WriteString("\n")
		content.WriteString(styles.LabelStyle.Render(fmt.Sprintf("%-8s", "Amount")))
		content.WriteString(styles.PriceStyle.Render(styles.FormatMoney(cost)))
		content.WriteString("\n\n")

		content.WriteString(p.renderButtons(in.Symbol, shares))
	}

	panelStyle := styles.PanelStyle
	if p.focused {
		panelStyle = styles.FocusedPanelStyle
	}

	title := styles.RenderTitle("📝 Trade", p.focused)
	panel := lipgloss.JoinVertical(lipgloss.Left, title, content.String())

	return panelStyle.Width(p.width - 2).Height(p.height - 2).Render(panel)
}

func (p *TradePanel) renderButtons(symbol market.Symbol, shares int64) string {
	buy := styles.DisabledStyle.Render("[b] BUY")
	if p.snap.CanBuy(symbol, shares) {
		buy = styles.BuyStyle.Render("[b] BUY")
	}
	sell := styles.DisabledStyle.Render("[s] SELL")
	if p.snap.CanSell(symbol, shares) {
		sell = styles.SellStyle.Render("[s] SELL")
	}
	return buy + "   " + sell
}

// SetFocus sets the focus state of the panel.
func (p *TradePanel) SetFocus(focused bool) {
	p.focused = focused
}

// SetSize sets the panel dimensions.
func (p *TradePanel) SetSize(width, height int) {
	p.width = width
	p.height = height
}

// SetSnapshot sets the session state used for the selected instrument
// and the button affordances.
func (p *TradePanel) SetSnapshot(snap game.Snapshot) {
	p.snap = snap
}

// Shares returns the entered trade size, 0 when empty.
func (p *TradePanel) Shares() int64 {
	n, err := strconv.ParseInt(p.sharesInput.Value(), 10, 64)
	if err != nil {
		return 0
	}
	return n
}

// SetShares replaces the trade size.
func (p *TradePanel) SetShares(n int64) {
	p.sharesInput.SetValue(strconv.FormatInt(n, 10))
}

// TradeRequestMsg asks the session to execute a trade.
type TradeRequestMsg struct {
	Direction portfolio.Direction
	Symbol    market.Symbol
	Shares    int64
}
