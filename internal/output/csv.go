package output

import (
	"bytes"
	"encoding/csv"
	"fmt"

	"github.com/rgehrsitz/paycalc/internal/domain"
)

// CSVFormatter renders a breakdown as a two-column component,amount table.
type CSVFormatter struct{}

func (c CSVFormatter) Name() string { return "csv" }

func (c CSVFormatter) Format(tb *domain.TaxBreakdown) ([]byte, error) {
	if tb == nil {
		return nil, fmt.Errorf("no breakdown to format")
	}
	buf := &bytes.Buffer{}
	w := csv.NewWriter(buf)
	rows := [][]string{
		{"Component", "Amount"},
		{"frequency", string(tb.Frequency)},
		{"filing_status", string(tb.FilingStatus)},
		{"jurisdiction", tb.Jurisdiction},
		{"gross_income", tb.GrossIncome.StringFixed(2)},
		{"federal_tax", tb.FederalTax.StringFixed(2)},
		{"jurisdiction_tax", tb.JurisdictionTax.StringFixed(2)},
	}
	for _, l := range tb.Levies {
		rows = append(rows, []string{l.Name, l.Amount.StringFixed(2)})
	}
	rows = append(rows,
		[]string{"total_tax", tb.TotalTax.StringFixed(2)},
		[]string{"net_income", tb.NetIncome.StringFixed(2)},
		[]string{"effective_rate", tb.EffectiveRate.StringFixed(4)},
	)
	if err := w.WriteAll(rows); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
