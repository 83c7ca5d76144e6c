package styles

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/shopspring/decimal"

	"github.com/zappabad/trademaster/internal/market"
	"github.com/zappabad/trademaster/internal/report"
)

// Color palette
var (
	// Primary colors
	PrimaryColor   = lipgloss.Color("#7C3AED") // Purple
	SecondaryColor = lipgloss.Color("#10B981") // Green
	AccentColor    = lipgloss.Color("#F59E0B") // Amber

	// Status colors
	BuyColor     = lipgloss.Color("#10B981") // Green
	SellColor    = lipgloss.Color("#EF4444") // Red
	NeutralColor = lipgloss.Color("#6B7280") // Gray

	// Background colors
	BackgroundColor      = lipgloss.Color("#1F2937")
	PanelBackgroundColor = lipgloss.Color("#111827")
	BorderColor          = lipgloss.Color("#374151")
	FocusBorderColor     = lipgloss.Color("#7C3AED")

	// Text colors
	TextColor          = lipgloss.Color("#F9FAFB")
	TextSecondaryColor = lipgloss.Color("#9CA3AF")
	TextMutedColor     = lipgloss.Color("#6B7280")
)

// Panel styles
var (
	PanelStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(BorderColor).
			Padding(0, 1)

	FocusedPanelStyle = lipgloss.NewStyle().
				Border(lipgloss.RoundedBorder()).
				BorderForeground(FocusBorderColor).
				Padding(0, 1)

	TitleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(PrimaryColor).
			Padding(0, 1)

	HeaderStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(TextSecondaryColor)

	RowStyle = lipgloss.NewStyle().
			Foreground(TextColor)

	SelectedRowStyle = lipgloss.NewStyle().
				Foreground(TextColor).
				Background(lipgloss.Color("#374151"))

	MutedStyle = lipgloss.NewStyle().
			Foreground(TextMutedColor)
)

// Text styles
var (
	BuyStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(BuyColor)

	SellStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(SellColor)

	// Disabled trade buttons
	DisabledStyle = lipgloss.NewStyle().
			Foreground(TextMutedColor).
			Strikethrough(true)

	PriceStyle = lipgloss.NewStyle().
			Foreground(TextColor)

	PriceUpStyle = lipgloss.NewStyle().
			Foreground(BuyColor)

	PriceDownStyle = lipgloss.NewStyle().
			Foreground(SellColor)

	SizeStyle = lipgloss.NewStyle().
			Foreground(TextSecondaryColor)

	TimeStyle = lipgloss.NewStyle().
			Foreground(TextMutedColor)

	InsightStyle = lipgloss.NewStyle().
			Foreground(TextColor)

	AchievementStyle = lipgloss.NewStyle().
				Bold(true).
				Foreground(AccentColor)
)

// Input styles
var (
	InputStyle = lipgloss.NewStyle().
			Border(lipgloss.NormalBorder()).
			BorderForeground(BorderColor).
			Padding(0, 1)

	FocusedInputStyle = lipgloss.NewStyle().
				Border(lipgloss.NormalBorder()).
				BorderForeground(FocusBorderColor).
				Padding(0, 1)

	LabelStyle = lipgloss.NewStyle().
			Foreground(TextSecondaryColor)
)

// Chart styles
var (
	ChartUpStyle = lipgloss.NewStyle().
			Foreground(BuyColor)

	ChartDownStyle = lipgloss.NewStyle().
			Foreground(SellColor)

	ChartAxisStyle = lipgloss.NewStyle().
			Foreground(TextMutedColor)

	ChartLabelStyle = lipgloss.NewStyle().
			Foreground(TextSecondaryColor)
)

// Header and status bar styles
var (
	AppTitleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(TextColor).
			Background(PrimaryColor).
			Padding(0, 1)

	NotificationStyle = lipgloss.NewStyle().
				Bold(true).
				Foreground(PanelBackgroundColor).
				Background(AccentColor).
				Padding(0, 1)

	StatusBarStyle = lipgloss.NewStyle().
			Background(BackgroundColor).
			Foreground(TextSecondaryColor).
			Padding(0, 1)

	StatusBarKeyStyle = lipgloss.NewStyle().
				Foreground(PrimaryColor).
				Bold(true)

	StatusBarDescStyle = lipgloss.NewStyle().
				Foreground(TextSecondaryColor)
)

// RenderTitle renders the title bar of a panel.
func RenderTitle(title string, focused bool) string {
	style := TitleStyle
	if focused {
		style = style.Foreground(FocusBorderColor)
	}
	return style.Render(title)
}

// FormatMoney formats a dollar amount for display.
func FormatMoney(amount decimal.Decimal) string {
	return report.Money(amount)
}

// ChangeStyle picks the up or down color for a signed amount.
func ChangeStyle(d decimal.Decimal) lipgloss.Style {
	if d.IsNegative() {
		return PriceDownStyle
	}
	return PriceUpStyle
}

// FormatChange renders a signed percentage in the up or down color.
func FormatChange(pct decimal.Decimal) string {
	return ChangeStyle(pct).Render(report.Percent(pct))
}

// FormatTrend renders the market trend indicator.
func FormatTrend(t market.Trend) string {
	if t == market.TrendBearish {
		return PriceDownStyle.Bold(true).Render("▼ " + strings.ToUpper(t.String()))
	}
	return PriceUpStyle.Bold(true).Render("▲ " + strings.ToUpper(t.String()))
}

// ProgressBar renders filled/total as a bar of the given width.
func ProgressBar(filled, total int64, width int) string {
	if width <= 0 || total <= 0 {
		return ""
	}
	n := int(filled * int64(width) / total)
	if n < 0 {
		n = 0
	}
	if n > width {
		n = width
	}
	return lipgloss.NewStyle().Foreground(PrimaryColor).Render(strings.Repeat("█", n)) +
		MutedStyle.Render(strings.Repeat("░", width-n))
}
