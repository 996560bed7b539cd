package components

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/rgehrsitz/paycalc/internal/domain"
	"github.com/rgehrsitz/paycalc/internal/tui/tuistyles"
	"github.com/shopspring/decimal"
)

// Bar is one labeled amount in a BreakdownChart.
type Bar struct {
	Label  string
	Amount decimal.Decimal
	Color  lipgloss.Color
}

// BreakdownChart draws horizontal bars showing how gross income splits into
// taxes and net income.
type BreakdownChart struct {
	Title string
	Total decimal.Decimal
	Bars  []Bar
	Width int // width of the longest possible bar, in cells
}

// NewBreakdownChart builds the bars for a breakdown: federal, jurisdiction,
// each levy, then net income, all scaled against gross income.
func NewBreakdownChart(tb domain.TaxBreakdown) *BreakdownChart {
	c := &BreakdownChart{
		Title: "Where the gross goes",
		Total: tb.GrossIncome,
		Width: 36,
	}
	c.Bars = append(c.Bars,
		Bar{Label: "Federal", Amount: tb.FederalTax, Color: tuistyles.ColorFederal},
		Bar{Label: "Jurisdiction", Amount: tb.JurisdictionTax, Color: tuistyles.ColorJurisdiction},
	)
	for _, l := range tb.Levies {
		c.Bars = append(c.Bars, Bar{Label: levyShortLabel(l.Name), Amount: l.Amount, Color: tuistyles.ColorLevy})
	}
	c.Bars = append(c.Bars, Bar{Label: "Net", Amount: tb.NetIncome, Color: tuistyles.ColorNet})
	return c
}

// WithWidth sets the maximum bar width
func (c *BreakdownChart) WithWidth(width int) *BreakdownChart {
	c.Width = width
	return c
}

// Render returns the chart, one bar per line.
func (c *BreakdownChart) Render() string {
	if !c.Total.IsPositive() || len(c.Bars) == 0 {
		return tuistyles.InfoStyle.Render("No data to display")
	}

	var sb strings.Builder
	if c.Title != "" {
		sb.WriteString(lipgloss.NewStyle().Bold(true).Foreground(tuistyles.ColorPrimary).Render(c.Title))
		sb.WriteString("\n")
	}
	for _, b := range c.Bars {
		cells := BarCells(b.Amount, c.Total, c.Width)
		bar := lipgloss.NewStyle().Foreground(b.Color).Render(strings.Repeat("█", cells))
		pad := strings.Repeat(" ", c.Width-cells)
		share := b.Amount.Div(c.Total).Mul(decimal.NewFromInt(100))
		sb.WriteString(fmt.Sprintf("%-14s %s%s %6s%%\n", b.Label, bar, pad, share.StringFixed(1)))
	}
	return sb.String()
}

// BarCells scales amount against total into [0, width] cells, rounding to
// the nearest cell. Any positive amount gets at least one cell.
func BarCells(amount, total decimal.Decimal, width int) int {
	if width <= 0 || !total.IsPositive() || !amount.IsPositive() {
		return 0
	}
	cells := int(amount.Div(total).Mul(decimal.NewFromInt(int64(width))).Round(0).IntPart())
	if cells < 1 {
		cells = 1
	}
	if cells > width {
		cells = width
	}
	return cells
}

func levyShortLabel(name string) string {
	switch name {
	case "social_security":
		return "Social Sec."
	case "medicare":
		return "Medicare"
	}
	if len(name) > 14 {
		return name[:14]
	}
	return name
}
