package panels

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/shopspring/decimal"

	"github.com/zappabad/trademaster/internal/market"
	marketview "github.com/zappabad/trademaster/internal/market/view"
	"github.com/zappabad/trademaster/tui/styles"
)

// ChartPanel plots the recent price history of one instrument.
type ChartPanel struct {
	symbol  market.Symbol
	samples []marketview.PriceSample
	focused bool
	width   int
	height  int
}

// NewChartPanel creates a new chart panel.
func NewChartPanel() *ChartPanel {
	return &ChartPanel{}
}

// Init initializes the panel.
func (p *ChartPanel) Init() tea.Cmd {
	return nil
}

// Update handles messages for the panel.
func (p *ChartPanel) Update(msg tea.Msg) (*ChartPanel, tea.Cmd) {
	return p, nil
}

// View renders the panel.
func (p *ChartPanel) View() string {
	var content string
	if len(p.samples) == 0 {
		content = styles.MutedStyle.Render("Waiting for prices...")
	} else {
		content = p.renderChart()
	}

	panelStyle := styles.PanelStyle
	if p.focused {
		panelStyle = styles.FocusedPanelStyle
	}

	title := styles.RenderTitle(fmt.Sprintf("📊 %s", p.symbol), p.focused)
	panel := lipgloss.JoinVertical(lipgloss.Left, title, content)

	return panelStyle.Width(p.width - 2).Height(p.height - 2).Render(panel)
}

func (p *ChartPanel) renderChart() string {
	// 10 columns for the price axis, 2 per sample
	columns := (p.width - 14) / 2
	if columns < 1 {
		columns = 1
	}
	shown := p.samples
	if len(shown) > columns {
		shown = shown[len(shown)-columns:]
	}

	prices := make([]float64, len(shown))
	for i, s := range shown {
		prices[i] = s.Price.InexactFloat64()
	}
	lo, hi := priceRange(prices)

	// title, bottom border and time axis
	chartHeight := p.height - 5
	if chartHeight < 3 {
		chartHeight = 3
	}

	var result strings.Builder
	for row := 0; row < chartHeight; row++ {
		label := decimal.NewFromFloat(yToPrice(row, lo, hi, chartHeight)).StringFixed(2)
		result.WriteString(styles.ChartAxisStyle.Render(fmt.Sprintf("%9s │", label)))

		for i, price := range prices {
			if priceToY(price, lo, hi, chartHeight) != row {
				result.WriteString("  ")
				continue
			}
			style := styles.ChartUpStyle
			if i > 0 && price < prices[i-1] {
				style = styles.ChartDownStyle
			}
			result.WriteString(style.Render("●"))
			result.WriteString(" ")
		}
		result.WriteString("\n")
	}

	result.WriteString(styles.ChartAxisStyle.Render("──────────┴" + strings.Repeat("──", len(shown))))
	result.WriteString("\n")

	first := shown[0].Time.Format("15:04:05")
	last := shown[len(shown)-1].Time.Format("15:04:05")
	gap := len(shown)*2 - len(first) - len(last)
	if gap < 1 {
		result.WriteString(styles.ChartLabelStyle.Render(strings.Repeat(" ", 11) + last))
	} else {
		result.WriteString(styles.ChartLabelStyle.Render(strings.Repeat(" ", 11) + first + strings.Repeat(" ", gap) + last))
	}

	return result.String()
}

// priceRange returns the padded min and max of prices.
func priceRange(prices []float64) (float64, float64) {
	lo, hi := prices[0], prices[0]
	for _, v := range prices {
		if v < lo {
			lo = v
		}
		if v > hi {
			hi = v
		}
	}
	pad := (hi - lo) * 0.1
	if pad < 0.01 {
		pad = 0.01
	}
	return lo - pad, hi + pad
}

func priceToY(price, lo, hi float64, height int) int {
	if hi == lo {
		return height / 2
	}
	ratio := (hi - price) / (hi - lo)
	y := int(ratio*float64(height-1) + 0.5)
	if y < 0 {
		y = 0
	}
	if y >= height {
		y = height - 1
	}
	return y
}

func yToPrice(y int, lo, hi float64, height int) float64 {
	if height <= 1 {
		return lo
	}
	ratio := float64(y) / float64(height-1)
	return hi - ratio*(hi-lo)
}

// SetFocus sets the focus state of the panel.
func (p *ChartPanel) SetFocus(focused bool) {
	p.focused = focused
}

// SetSize sets the panel dimensions.
func (p *ChartPanel) SetSize(width, height int) {
	p.width = width
	p.height = height
}

// SetHistory sets the instrument and its samples, oldest first.
func (p *ChartPanel) SetHistory(symbol market.Symbol, samples []marketview.PriceSample) {
	p.symbol = symbol
	p.samples = samples
}
