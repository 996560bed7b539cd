package compare

import (
	"fmt"
	"strings"

	"github.com/rgehrsitz/paycalc/internal/output"
	"github.com/shopspring/decimal"
)

// TableFormatter formats comparison results as a console table
type TableFormatter struct{}

// Format generates a formatted table comparing variants
func (tf *TableFormatter) Format(compSet *ComparisonSet) string {
	var sb strings.Builder

	title := "NET INCOME COMPARISON"
	if compSet.Mode == ModeReverse {
		title = "REQUIRED GROSS COMPARISON"
	}
	req := compSet.Request
	sb.WriteString(title + "\n")
	sb.WriteString(strings.Repeat("=", 86) + "\n")
	if compSet.Mode == ModeReverse {
		sb.WriteString(fmt.Sprintf("Target Net Income: %s %s\n", output.FormatCurrency(req.Amount), req.Frequency))
	} else {
		sb.WriteString(fmt.Sprintf("Gross Income:      %s %s\n", output.FormatCurrency(req.Amount), req.Frequency))
	}
	sb.WriteString(fmt.Sprintf("Base:              %s\n", compSet.BaseLabel))
	sb.WriteString("\n")

	nameWidth := 24
	numWidth := 14

	sb.WriteString(fmt.Sprintf("%-4s %-*s %*s %*s %*s %9s %9s\n",
		"#",
		nameWidth, "Variant",
		numWidth, "Gross",
		numWidth, "Total Tax",
		numWidth, "Net",
		"Eff.", "Marg."))
	sb.WriteString(strings.Repeat("-", 86) + "\n")

	for _, r := range compSet.All() {
		sb.WriteString(tf.formatRow(&r, nameWidth, numWidth, r.Label == compSet.BaseLabel))
	}
	sb.WriteString(strings.Repeat("=", 86) + "\n")

	// Comparison details (deltas from base)
	if len(compSet.AlternativeResults) > 0 {
		sb.WriteString("\nCOMPARISON TO BASE\n")
		sb.WriteString(strings.Repeat("-", 86) + "\n")
		for _, alt := range compSet.AlternativeResults {
			if alt.Failed() {
				continue
			}
			if compSet.Mode == ModeReverse {
				sb.WriteString(fmt.Sprintf("%-24s gross %s%s\n", alt.Label,
					tf.deltaSymbol(alt.GrossDiffFromBase), output.FormatCurrency(alt.GrossDiffFromBase.Abs())))
			} else {
				sb.WriteString(fmt.Sprintf("%-24s net %s%s (%s%%)\n", alt.Label,
					tf.deltaSymbol(alt.NetDiffFromBase), output.FormatCurrency(alt.NetDiffFromBase.Abs()),
					alt.NetPctFromBase.StringFixed(1)))
			}
		}
	}

	if len(compSet.Recommendations) > 0 {
		sb.WriteString("\nRECOMMENDATIONS\n")
		sb.WriteString(strings.Repeat("-", 86) + "\n")
		for _, rec := range compSet.Recommendations {
			sb.WriteString(fmt.Sprintf("• %s\n", rec))
		}
	}

	return sb.String()
}

// formatRow formats a single variant row
func (tf *TableFormatter) formatRow(result *ComparisonResult, nameWidth, numWidth int, isBase bool) string {
	name := result.Label
	if isBase {
		name += " (base)"
	}
	rank := "-"
	if result.Rank > 0 {
		rank = fmt.Sprintf("%d", result.Rank)
	}
	if result.Failed() {
		return fmt.Sprintf("%-4s %-*s error: %s\n", rank, nameWidth, tf.truncate(name, nameWidth), result.Error)
	}
	marker := ""
	if !result.Converged {
		marker = " ⚠"
	}

	return fmt.Sprintf("%-4s %-*s %*s %*s %*s %9s %9s%s\n",
		rank,
		nameWidth, tf.truncate(name, nameWidth),
		numWidth, output.FormatCurrency(result.GrossIncome),
		numWidth, output.FormatCurrency(result.TotalTax),
		numWidth, output.FormatCurrency(result.NetIncome),
		output.FormatRate(result.EffectiveRate),
		output.FormatRate(result.MarginalRate),
		marker)
}

// deltaSymbol returns a + or - symbol for deltas
func (tf *TableFormatter) deltaSymbol(delta decimal.Decimal) string {
	if delta.IsPositive() {
		return "+"
	} else if delta.IsNegative() {
		return "-"
	}
	return " "
}

// truncate truncates a string to maxLen
func (tf *TableFormatter) truncate(s string, maxLen int) string {
	if len(s) <= maxLen {
		return s
	}
	return s[:maxLen-3] + "..."
}

// FormatCompact creates a single-line ranking summary
func (tf *TableFormatter) FormatCompact(compSet *ComparisonSet) string {
	var sb strings.Builder

	sb.WriteString(fmt.Sprintf("Base: %s | ", compSet.BaseLabel))
	for i, alt := range compSet.AlternativeResults {
		if i > 0 {
			sb.WriteString(" | ")
		}
		delta := alt.NetDiffFromBase
		if compSet.Mode == ModeReverse {
			delta = alt.GrossDiffFromBase
		}
		change := "="
		if alt.Failed() {
			change = "error"
		} else if !delta.IsZero() {
			change = tf.deltaSymbol(delta) + output.FormatCurrency(delta.Abs())
		}
		sb.WriteString(fmt.Sprintf("%s: %s", alt.Label, change))
	}
	return sb.String()
}
