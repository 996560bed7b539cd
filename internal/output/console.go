package output

import (
	"bytes"
	"fmt"
	"strings"

	"github.com/rgehrsitz/paycalc/internal/domain"
)

// ConsoleFormatter renders a breakdown as a plain-text report.
type ConsoleFormatter struct {
	HideAssumptions bool
}

func (c ConsoleFormatter) Name() string { return "console" }

func (c ConsoleFormatter) Format(tb *domain.TaxBreakdown) ([]byte, error) {
	if tb == nil {
		return nil, fmt.Errorf("no breakdown to format")
	}
	var buf bytes.Buffer

	buf.WriteString("TAX BREAKDOWN\n")
	buf.WriteString(strings.Repeat("=", 60) + "\n")
	fmt.Fprintf(&buf, "Pay Frequency:       %s\n", tb.Frequency)
	fmt.Fprintf(&buf, "Filing Status:       %s\n", tb.FilingStatus.Label())
	if tb.Jurisdiction != "" {
		fmt.Fprintf(&buf, "Jurisdiction:        %s\n", tb.Jurisdiction)
	}
	if tb.TableVersion != "" {
		fmt.Fprintf(&buf, "Table Version:       %s\n", tb.TableVersion)
	}
	buf.WriteString("\n")
	buf.WriteString(BreakdownLines(*tb))

	if !c.HideAssumptions {
		buf.WriteString("\nASSUMPTIONS\n")
		buf.WriteString(strings.Repeat("-", 60) + "\n")
		for _, a := range DefaultAssumptions {
			fmt.Fprintf(&buf, "  • %s\n", a)
		}
	}
	return buf.Bytes(), nil
}

// BreakdownLines renders the money lines of a breakdown, one per component,
// followed by totals.
func BreakdownLines(tb domain.TaxBreakdown) string {
	var sb strings.Builder
	line := func(label, value string) {
		sb.WriteString(fmt.Sprintf("%-22s %16s\n", label+":", value))
	}

	line("Gross Income", FormatCurrency(tb.GrossIncome))
	line("Federal Income Tax", FormatCurrency(tb.FederalTax))
	line("Jurisdiction Tax", FormatCurrency(tb.JurisdictionTax))
	for _, l := range tb.Levies {
		line(levyLabel(l.Name), FormatCurrency(l.Amount))
	}
	sb.WriteString(strings.Repeat("-", 39) + "\n")
	line("Total Tax", FormatCurrency(tb.TotalTax))
	line("Net Income", FormatCurrency(tb.NetIncome))
	line("Effective Rate", FormatRate(tb.EffectiveRate))
	return sb.String()
}

// levyLabel turns a rule name like "social_security" into "Social Security".
func levyLabel(name string) string {
	words := strings.Fields(strings.ReplaceAll(name, "_", " "))
	for i, w := range words {
		words[i] = strings.ToUpper(w[:1]) + w[1:]
	}
	return strings.Join(words, " ")
}
