package tui

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/golang/glog"

	"github.com/zappabad/trademaster/internal/game"
	"github.com/zappabad/trademaster/internal/market"
	"github.com/zappabad/trademaster/internal/portfolio"
	"github.com/zappabad/trademaster/internal/report"
	"github.com/zappabad/trademaster/tui/panels"
	"github.com/zappabad/trademaster/tui/styles"
)

// PanelFocus represents which panel is currently focused.
type PanelFocus int

const (
	FocusMarket PanelFocus = iota
	FocusChart
	FocusPortfolio
	FocusTrade
	FocusTransactions
	FocusInsights

	panelCount
)

// RefreshInterval is how often the view re-reads the session snapshot.
const RefreshInterval = 250 * time.Millisecond

// Model is the main TUI application model.
type Model struct {
	game *game.Game
	snap game.Snapshot

	// Panels
	marketPanel       *panels.MarketPanel
	chartPanel        *panels.ChartPanel
	portfolioPanel    *panels.PortfolioPanel
	tradePanel        *panels.TradePanel
	transactionsPanel *panels.TransactionsPanel
	insightsPanel     *panels.InsightsPanel

	focusedPanel PanelFocus

	// Window dimensions
	width  int
	height int

	statusMsg string
	ready     bool
}

// NewModel creates a TUI model driving g. The caller owns g and closes it
// after the program exits.
func NewModel(g *game.Game) *Model {
	snap := g.Snapshot()
	m := &Model{
		game:              g,
		snap:              snap,
		marketPanel:       panels.NewMarketPanel(snap.Instruments),
		chartPanel:        panels.NewChartPanel(),
		portfolioPanel:    panels.NewPortfolioPanel(),
		tradePanel:        panels.NewTradePanel(),
		transactionsPanel: panels.NewTransactionsPanel(),
		insightsPanel:     panels.NewInsightsPanel(),
		focusedPanel:      FocusMarket,
	}
	m.syncFocus()
	m.refresh()
	return m
}

// Init initializes the model.
func (m *Model) Init() tea.Cmd {
	return tea.Batch(
		m.marketPanel.Init(),
		m.chartPanel.Init(),
		m.portfolioPanel.Init(),
		m.tradePanel.Init(),
		m.transactionsPanel.Init(),
		m.insightsPanel.Init(),
		m.listenGameEvents(),
		m.tickRefresh(),
	)
}

// Update handles messages.
func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmds []tea.Cmd

	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "ctrl+c", "q":
			return m, tea.Quit
		case "tab":
			m.focusedPanel = (m.focusedPanel + 1) % panelCount
			m.syncFocus()
			return m, nil
		case "shift+tab":
			m.focusedPanel = (m.focusedPanel + panelCount - 1) % panelCount
			m.syncFocus()
			return m, nil
		}
		m.updateFocusedPanel(msg, &cmds)

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.ready = true

	case panels.InstrumentSelectedMsg:
		return m, m.selectInstrument(msg.Symbol)

	case panels.TradeRequestMsg:
		return m, m.submitTrade(msg)

	case tradeResultMsg:
		m.statusMsg = msg.message
		m.refresh()
		return m, nil

	case statusMsg:
		m.statusMsg = string(msg)
		m.refresh()
		return m, nil

	case gameEventMsg:
		if ev, ok := msg.event.(game.TrendEvent); ok {
			m.statusMsg = fmt.Sprintf("Market turned %s", ev.Trend)
		}
		m.refresh()
		return m, m.listenGameEvents()

	case tickMsg:
		m.refresh()
		return m, m.tickRefresh()

	default:
		var cmd tea.Cmd
		m.tradePanel, cmd = m.tradePanel.Update(msg)
		cmds = append(cmds, cmd)
	}

	return m, tea.Batch(cmds...)
}

// updateFocusedPanel routes a key to the focused panel. The trade panel
// sees every key so that buy, sell and size edits work from any panel.
func (m *Model) updateFocusedPanel(msg tea.KeyMsg, cmds *[]tea.Cmd) {
	var cmd tea.Cmd

	switch m.focusedPanel {
	case FocusMarket:
		m.marketPanel, cmd = m.marketPanel.Update(msg)
	case FocusInsights:
		m.insightsPanel, cmd = m.insightsPanel.Update(msg)
	}
	if cmd != nil {
		*cmds = append(*cmds, cmd)
	}

	m.tradePanel, cmd = m.tradePanel.Update(msg)
	if cmd != nil {
		*cmds = append(*cmds, cmd)
	}
}

func (m *Model) syncFocus() {
	m.marketPanel.SetFocus(m.focusedPanel == FocusMarket)
	m.chartPanel.SetFocus(m.focusedPanel == FocusChart)
	m.portfolioPanel.SetFocus(m.focusedPanel == FocusPortfolio)
	m.tradePanel.SetFocus(m.focusedPanel == FocusTrade)
	m.transactionsPanel.SetFocus(m.focusedPanel == FocusTransactions)
	m.insightsPanel.SetFocus(m.focusedPanel == FocusInsights)
}

// refresh copies the latest session snapshot into every panel.
func (m *Model) refresh() {
	snap := m.game.Snapshot()
	m.snap = snap

	m.marketPanel.SetInstruments(snap.Instruments, snap.Selected, snap.Portfolio.Holdings)
	m.chartPanel.SetHistory(snap.Selected, snap.History[snap.Selected])
	m.portfolioPanel.SetSnapshot(snap)
	m.tradePanel.SetSnapshot(snap)
	m.transactionsPanel.SetTransactions(snap.Portfolio.Transactions)
	m.insightsPanel.SetInsights(snap.Insights)
}

// View renders the UI.
func (m *Model) View() string {
	if !m.ready {
		return "Initializing..."
	}

	// Layout:
	// ┌──────────────────────── header ────────────────────────┐
	// │  Market           │  Chart           │  Portfolio       │
	// ├───────────────────┼──────────────────┼──────────────────┤
	// │  Trade            │  Transactions    │  AI Insights     │
	// └──────────────────── status bar ────────────────────────┘

	leftWidth := m.width * 2 / 5
	middleWidth := (m.width - leftWidth) / 2
	rightWidth := m.width - leftWidth - middleWidth

	available := m.height - 2
	topHeight := available * 3 / 5
	bottomHeight := available - topHeight

	m.marketPanel.SetSize(leftWidth, topHeight)
	m.chartPanel.SetSize(middleWidth, topHeight)
	m.portfolioPanel.SetSize(rightWidth, topHeight)

	topRow := lipgloss.JoinHorizontal(lipgloss.Top,
		m.marketPanel.View(),
		m.chartPanel.View(),
		m.portfolioPanel.View(),
	)

	m.tradePanel.SetSize(leftWidth, bottomHeight)
	m.transactionsPanel.SetSize(middleWidth, bottomHeight)
	m.insightsPanel.SetSize(rightWidth, bottomHeight)

	bottomRow := lipgloss.JoinHorizontal(lipgloss.Top,
		m.tradePanel.View(),
		m.transactionsPanel.View(),
		m.insightsPanel.View(),
	)

	return lipgloss.JoinVertical(lipgloss.Left, m.renderHeader(), topRow, bottomRow, m.renderStatusBar())
}

func (m *Model) renderHeader() string {
	parts := []string{
		styles.AppTitleStyle.Render("TradeMaster"),
		styles.FormatTrend(m.snap.Trend),
		styles.LabelStyle.Render(fmt.Sprintf("Level %d", m.snap.Level())),
		styles.PriceStyle.Render(styles.FormatMoney(m.snap.TotalValue)),
		styles.FormatChange(m.snap.ProfitLossPercent),
	}
	if text := panels.NotificationText(m.snap.Notification); text != "" {
		parts = append(parts, styles.NotificationStyle.Render(text))
	}
	return lipgloss.NewStyle().Width(m.width).Render(strings.Join(parts, "  "))
}

func (m *Model) renderStatusBar() string {
	help := []string{
		styles.StatusBarKeyStyle.Render("↑↓") + styles.StatusBarDescStyle.Render(" select"),
		styles.StatusBarKeyStyle.Render("0-9") + styles.StatusBarDescStyle.Render(" shares"),
		styles.StatusBarKeyStyle.Render("b/s") + styles.StatusBarDescStyle.Render(" buy/sell"),
		styles.StatusBarKeyStyle.Render("Tab") + styles.StatusBarDescStyle.Render(" focus"),
		styles.StatusBarKeyStyle.Render("q") + styles.StatusBarDescStyle.Render(" quit"),
	}

	status := ""
	if m.statusMsg != "" {
		status = " │ " + m.statusMsg
	}

	return styles.StatusBarStyle.Width(m.width).Render(strings.Join(help, " │ ") + status)
}

func (m *Model) selectInstrument(symbol market.Symbol) tea.Cmd {
	return func() tea.Msg {
		if err := m.game.SelectInstrument(context.Background(), symbol); err != nil {
			return statusMsg("✗ " + err.Error())
		}
		return statusMsg("")
	}
}

func (m *Model) submitTrade(req panels.TradeRequestMsg) tea.Cmd {
	return func() tea.Msg {
		rep, err := m.game.Trade(context.Background(), req.Direction, req.Symbol, req.Shares)
		if err != nil {
			glog.Warningf("tui: trade %s %d %s: %v", req.Direction, req.Shares, req.Symbol, err)
			return tradeResultMsg{message: "✗ Trade failed: " + err.Error()}
		}
		return tradeResultMsg{message: describeTrade(req, rep)}
	}
}

func describeTrade(req panels.TradeRequestMsg, rep game.TradeReport) string {
	if !rep.Accepted {
		reason := "rejected"
		if rep.Reason != nil {
			reason = rep.Reason.Error()
		}
		if errors.Is(rep.Reason, portfolio.ErrInsufficientCash) || errors.Is(rep.Reason, portfolio.ErrInsufficientShares) {
			reason = fmt.Sprintf("%s for %d %s", reason, req.Shares, req.Symbol)
		}
		return "✗ " + reason
	}

	verb := "Bought"
	if rep.Transaction.Direction == portfolio.Sell {
		verb = "Sold"
	}
	msg := fmt.Sprintf("✓ %s %d %s @ %s", verb, rep.Transaction.Shares, rep.Transaction.Symbol, report.Money(rep.Transaction.Price))
	if len(rep.Unlocked) > 0 {
		msg += " │ 🏆 " + strings.Join(rep.Unlocked, ", ")
	}
	return msg
}

func (m *Model) listenGameEvents() tea.Cmd {
	return func() tea.Msg {
		ev, ok := <-m.game.Events()
		if !ok {
			return nil
		}
		return gameEventMsg{event: ev}
	}
}

// tickMsg is sent periodically to refresh data.
type tickMsg struct{}

func (m *Model) tickRefresh() tea.Cmd {
	return tea.Tick(RefreshInterval, func(t time.Time) tea.Msg {
		return tickMsg{}
	})
}

// tradeResultMsg is sent after a trade is processed.
type tradeResultMsg struct {
	message string
}

// statusMsg replaces the status line.
type statusMsg string

// gameEventMsg wraps an event published by the session.
type gameEventMsg struct {
	event game.Event
}
