package panels

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/zappabad/trademaster/internal/portfolio"
	"github.com/zappabad/trademaster/tui/styles"
)

// TransactionsPanel shows the recent transaction log, newest first.
type TransactionsPanel struct {
	transactions []portfolio.Transaction
	focused      bool
	width        int
	height       int
}

// NewTransactionsPanel creates a new transactions panel.
func NewTransactionsPanel() *TransactionsPanel {
	return &TransactionsPanel{}
}

// Init initializes the panel.
func (p *TransactionsPanel) Init() tea.Cmd {
	return nil
}

// Update handles messages for the panel.
func (p *TransactionsPanel) Update(msg tea.Msg) (*TransactionsPanel, tea.Cmd) {
	return p, nil
}

// View renders the panel.
func (p *TransactionsPanel) View() string {
	var content strings.Builder

	if len(p.transactions) == 0 {
		content.WriteString(styles.MutedStyle.Render("No trades yet"))
	} else {
		content.WriteString(styles.HeaderStyle.Render(fmt.Sprintf("%-8s %-4s %-6s %6s %11s", "Time", "Side", "Symbol", "Shares", "Price")))
		content.WriteString("\n")

		rows := p.height - 5
		if rows < 1 {
			rows = 1
		}
		for i, tx := range p.transactions {
			if i >= rows {
				break
			}
			side := styles.BuyStyle.Render(fmt.Sprintf("%-4s", tx.Direction))
			if tx.Direction == portfolio.Sell {
				side = styles.SellStyle.Render(fmt.Sprintf("%-4s", tx.Direction))
			}
			content.WriteString(styles.TimeStyle.Render(tx.Time.Format("15:04:05")))
			content.WriteString(" ")
			content.WriteString(side)
			content.WriteString(styles.RowStyle.Render(fmt.Sprintf(" %-6s %6d %11s", tx.Symbol, tx.Shares, styles.FormatMoney(tx.Price))))
			if i < len(p.transactions)-1 && i < rows-1 {
				content.WriteString("\n")
			}
		}
	}

	panelStyle := styles.PanelStyle
	if p.focused {
		panelStyle = styles.FocusedPanelStyle
	}

	title := styles.RenderTitle("🧾 Transactions", p.focused)
	panel := lipgloss.JoinVertical(lipgloss.Left, title, content.String())

	return panelStyle.Width(p.width - 2).Height(p.height - 2).Render(panel)
}

// SetFocus sets the focus state of the panel.
func (p *TransactionsPanel) SetFocus(focused bool) {
	p.focused = focused
}

// SetSize sets the panel dimensions.
func (p *TransactionsPanel) SetSize(width, height int) {
	p.width = width
	p.height = height
}

// SetTransactions replaces the log.
func (p *TransactionsPanel) SetTransactions(txs []portfolio.Transaction) {
	p.transactions = txs
}
