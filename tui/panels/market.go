package panels

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/zappabad/trademaster/internal/market"
	"github.com/zappabad/trademaster/internal/report"
	"github.com/zappabad/trademaster/tui/styles"
)

// MarketPanel lists the instruments with their current prices.
type MarketPanel struct {
	instruments   []market.Instrument
	holdings      map[market.Symbol]int64
	selectedIndex int
	focused       bool
	width         int
	height        int
}

// NewMarketPanel creates a new market panel.
func NewMarketPanel(instruments []market.Instrument) *MarketPanel {
	return &MarketPanel{instruments: instruments}
}

// Init initializes the panel.
func (p *MarketPanel) Init() tea.Cmd {
	return nil
}

// Update handles messages for the panel. A changed selection is reported
// as an InstrumentSelectedMsg.
func (p *MarketPanel) Update(msg tea.Msg) (*MarketPanel, tea.Cmd) {
	keyMsg, ok := msg.(tea.KeyMsg)
	if !ok || !p.focused {
		return p, nil
	}

	prev := p.selectedIndex
	switch {
	case key.Matches(keyMsg, key.NewBinding(key.WithKeys("up", "k"))):
		if p.selectedIndex > 0 {
			p.selectedIndex--
		}
	case key.Matches(keyMsg, key.NewBinding(key.WithKeys("down", "j"))):
		if p.selectedIndex < len(p.instruments)-1 {
			p.selectedIndex++
		}
	}
	if p.selectedIndex == prev {
		return p, nil
	}

	symbol := p.SelectedSymbol()
	return p, func() tea.Msg { return InstrumentSelectedMsg{Symbol: symbol} }
}

// View renders the panel.
func (p *MarketPanel) View() string {
	var content strings.Builder

	header := fmt.Sprintf("  %-6s %-14s %11s %8s %5s", "Symbol", "Name", "Price", "Change", "Held")
	content.WriteString(styles.HeaderStyle.Render(header))
	content.WriteString("\n")

	for i, in := range p.instruments {
		marker := "  "
		if i == p.selectedIndex {
			marker = "▸ "
		}

		held := "-"
		if n := p.holdings[in.Symbol]; n > 0 {
			held = fmt.Sprintf("%d", n)
		}

		change := in.ChangePercent()
		row := fmt.Sprintf("%s%-6s %-14s %11s ", marker, in.Symbol, truncate(in.Name, 14), styles.FormatMoney(in.Price))

		style := styles.RowStyle
		if i == p.selectedIndex {
			style = styles.SelectedRowStyle
		}
		content.WriteString(style.Render(row))
		content.WriteString(styles.ChangeStyle(change).Render(fmt.Sprintf("%8s", report.Percent(change))))
		content.WriteString(styles.SizeStyle.Render(fmt.Sprintf(" %5s", held)))
		if i < len(p.instruments)-1 {
			content.WriteString("\n")
		}
	}

	panelStyle := styles.PanelStyle
	if p.focused {
		panelStyle = styles.FocusedPanelStyle
	}

	title := styles.RenderTitle("📈 Market", p.focused)
	panel := lipgloss.JoinVertical(lipgloss.Left, title, content.String())

	return panelStyle.Width(p.width - 2).Height(p.height - 2).Render(panel)
}

// SetFocus sets the focus state of the panel.
func (p *MarketPanel) SetFocus(focused bool) {
	p.focused = focused
}

// SetSize sets the panel dimensions.
func (p *MarketPanel) SetSize(width, height int) {
	p.width = width
	p.height = height
}

// SetInstruments replaces the rows and moves the cursor to selected.
func (p *MarketPanel) SetInstruments(instruments []market.Instrument, selected market.Symbol, holdings map[market.Symbol]int64) {
	p.instruments = instruments
	p.holdings = holdings
	for i, in := range instruments {
		if in.Symbol == selected {
			p.selectedIndex = i
			return
		}
	}
	if p.selectedIndex >= len(instruments) {
		p.selectedIndex = 0
	}
}

// SelectedSymbol returns the symbol under the cursor.
func (p *MarketPanel) SelectedSymbol() market.Symbol {
	if p.selectedIndex >= 0 && p.selectedIndex < len(p.instruments) {
		return p.instruments[p.selectedIndex].Symbol
	}
	return ""
}

func truncate(s string, n int) string {
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	if n <= 0 {
		return ""
	}
	if n == 1 {
		return string(r[:1])
	}
	return string(r[:n-1]) + "…"
}

// InstrumentSelectedMsg is sent when the cursor moves to another instrument.
type InstrumentSelectedMsg struct {
	Symbol market.Symbol
}
