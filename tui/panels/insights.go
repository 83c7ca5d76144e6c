package panels

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/zappabad/trademaster/internal/insight"
	"github.com/zappabad/trademaster/tui/styles"
)

// InsightsPanel displays the insight feed, newest first.
type InsightsPanel struct {
	insights      []insight.Insight
	selectedIndex int
	scrollOffset  int
	focused       bool
	width         int
	height        int
}

// NewInsightsPanel creates a new insights panel.
func NewInsightsPanel() *InsightsPanel {
	return &InsightsPanel{}
}

// Init initializes the panel.
func (p *InsightsPanel) Init() tea.Cmd {
	return nil
}

// Update handles messages for the panel.
func (p *InsightsPanel) Update(msg tea.Msg) (*InsightsPanel, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		if !p.focused {
			return p, nil
		}
		switch {
		case key.Matches(msg, key.NewBinding(key.WithKeys("up", "k"))):
			if p.selectedIndex > 0 {
				p.selectedIndex--
				if p.selectedIndex < p.scrollOffset {
					p.scrollOffset = p.selectedIndex
				}
			}
		case key.Matches(msg, key.NewBinding(key.WithKeys("down", "j"))):
			if p.selectedIndex < len(p.insights)-1 {
				p.selectedIndex++
				visible := p.visibleItems()
				if p.selectedIndex >= p.scrollOffset+visible {
					p.scrollOffset = p.selectedIndex - visible + 1
				}
			}
		}
	}
	return p, nil
}

func (p *InsightsPanel) visibleItems() int {
	// title, borders and the scroll indicator
	if v := p.height - 4; v > 0 {
		return v
	}
	return 1
}

// View renders the panel.
func (p *InsightsPanel) View() string {
	var content strings.Builder

	if len(p.insights) == 0 {
		content.WriteString(styles.MutedStyle.Render("Analyzing the market..."))
	} else {
		visible := p.visibleItems()
		start := p.scrollOffset
		end := start + visible
		if end > len(p.insights) {
			end = len(p.insights)
		}

		for i := start; i < end; i++ {
			item := p.insights[i]

			text := truncate(item.Text, p.width-16)
			line := fmt.Sprintf("%s %s",
				styles.TimeStyle.Render(item.Time.Format("15:04:05")),
				styles.InsightStyle.Render(text))
			if i == p.selectedIndex && p.focused {
				line = styles.SelectedRowStyle.Render(line)
			}

			content.WriteString(line)
			if i < end-1 {
				content.WriteString("\n")
			}
		}

		if len(p.insights) > visible {
			content.WriteString("\n")
			content.WriteString(styles.MutedStyle.Render(fmt.Sprintf(" (%d/%d)", p.selectedIndex+1, len(p.insights))))
		}
	}

	panelStyle := styles.PanelStyle
	if p.focused {
		panelStyle = styles.FocusedPanelStyle
	}

	title := styles.RenderTitle("🤖 AI Insights", p.focused)
	panel := lipgloss.JoinVertical(lipgloss.Left, title, content.String())

	return panelStyle.Width(p.width - 2).Height(p.height - 2).Render(panel)
}

// SetFocus sets the focus state of the panel.
func (p *InsightsPanel) SetFocus(focused bool) {
	p.focused = focused
}

// SetSize sets the panel dimensions.
func (p *InsightsPanel) SetSize(width, height int) {
	p.width = width
	p.height = height
}

// SetInsights replaces the feed.
func (p *InsightsPanel) SetInsights(items []insight.Insight) {
	p.insights = items
	if p.selectedIndex >= len(p.insights) {
		p.selectedIndex = max(len(p.insights)-1, 0)
	}
	if p.scrollOffset > p.selectedIndex {
		p.scrollOffset = p.selectedIndex
	}
}
