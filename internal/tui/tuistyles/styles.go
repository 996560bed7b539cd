// Package tuistyles holds the lipgloss palette and styles shared by the TUI
// root model, its scenes and its components.
package tuistyles

import (
	"github.com/charmbracelet/lipgloss"
	"github.com/rgehrsitz/paycalc/internal/output"
	"github.com/shopspring/decimal"
)

var (
	ColorPrimary   = lipgloss.Color("#7D56F4")
	ColorSecondary = lipgloss.Color("#3C91E6")
	ColorAccent    = lipgloss.Color("#F4A259")
	ColorSuccess   = lipgloss.Color("#43AA8B")
	ColorDanger    = lipgloss.Color("#F25F5C")
	ColorInfo      = lipgloss.Color("#4ECDC4")

	ColorForeground = lipgloss.Color("#FAFAFA")
	ColorMuted      = lipgloss.Color("#8A8A8A")
	ColorBorder     = lipgloss.Color("#444444")

	// Bar colors for the breakdown chart, in component order.
	ColorFederal      = lipgloss.Color("#7D56F4")
	ColorJurisdiction = lipgloss.Color("#3C91E6")
	ColorLevy         = lipgloss.Color("#F4A259")
	ColorNet          = lipgloss.Color("#43AA8B")
)

var (
	AppStyle = lipgloss.NewStyle().Padding(1, 2)

	TitleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(ColorForeground).
			Background(ColorPrimary).
			Padding(0, 1)

	SubtitleStyle = lipgloss.NewStyle().Foreground(ColorMuted).Italic(true)

	StatusBarStyle = lipgloss.NewStyle().Foreground(ColorMuted).Padding(0, 1)

	BorderStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(ColorBorder).
			Padding(1, 2)

	ActiveBorderStyle = BorderStyle.BorderForeground(ColorPrimary)

	SelectedItemStyle   = lipgloss.NewStyle().Bold(true).Foreground(ColorPrimary)
	UnselectedItemStyle = lipgloss.NewStyle().Foreground(ColorForeground)

	MetricLabelStyle    = lipgloss.NewStyle().Foreground(ColorMuted)
	MetricValueStyle    = lipgloss.NewStyle().Bold(true).Foreground(ColorForeground)
	MetricPositiveStyle = lipgloss.NewStyle().Foreground(ColorSuccess)
	MetricNegativeStyle = lipgloss.NewStyle().Foreground(ColorDanger)

	FieldLabelStyle = lipgloss.NewStyle().Width(16).Foreground(ColorMuted)
	FieldValueStyle = lipgloss.NewStyle().Foreground(ColorForeground)

	ErrorStyle = lipgloss.NewStyle().Foreground(ColorDanger).Bold(true)
	InfoStyle  = lipgloss.NewStyle().Foreground(ColorInfo)
	WarnStyle  = lipgloss.NewStyle().Foreground(ColorAccent)

	TableHeaderStyle    = lipgloss.NewStyle().Bold(true).Foreground(ColorSecondary)
	TableCellStyle      = lipgloss.NewStyle().Foreground(ColorForeground)
	TableHighlightStyle = lipgloss.NewStyle().Bold(true).Foreground(ColorPrimary)
)

// MetricTrendStyle colors a trend green when it is good for the user.
func MetricTrendStyle(isPositive bool) lipgloss.Style {
	if isPositive {
		return MetricPositiveStyle
	}
	return MetricNegativeStyle
}

// TrendIndicator returns an arrow for a trend direction.
func TrendIndicator(isPositive bool) string {
	if isPositive {
		return "▲"
	}
	return "▼"
}

// FormatCurrency is output.FormatCurrency, re-exported for components.
func FormatCurrency(amount decimal.Decimal) string {
	return output.FormatCurrency(amount)
}
