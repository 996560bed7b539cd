package compare

import (
	"encoding/csv"
	"fmt"
	"strings"
)

// CSVFormatter formats comparison results as CSV
type CSVFormatter struct{}

// Format generates CSV output for comparison results
func (cf *CSVFormatter) Format(compSet *ComparisonSet) (string, error) {
	var sb strings.Builder
	writer := csv.NewWriter(&sb)

	header := []string{
		"Variant",
		"Type",
		"Rank",
		"Jurisdiction",
		"Filing Status",
		"Gross Income",
		"Total Tax",
		"Net Income",
		"Effective Rate",
		"Marginal Rate",
		"Gross Diff from Base",
		"Net Diff from Base",
		"Net % Change",
		"Converged",
		"Error",
	}
	if err := writer.Write(header); err != nil {
		return "", err
	}

	if compSet.BaseResult != nil {
		if err := writer.Write(cf.formatRow(compSet.BaseResult, "base")); err != nil {
			return "", err
		}
	}
	for _, alt := range compSet.AlternativeResults {
		if err := writer.Write(cf.formatRow(&alt, "alternative")); err != nil {
			return "", err
		}
	}

	writer.Flush()
	if err := writer.Error(); err != nil {
		return "", err
	}
	return sb.String(), nil
}

// formatRow formats a comparison result as a CSV row
func (cf *CSVFormatter) formatRow(result *ComparisonResult, variantType string) []string {
	return []string{
		result.Label,
		variantType,
		fmt.Sprintf("%d", result.Rank),
		result.Jurisdiction,
		string(result.FilingStatus),
		result.GrossIncome.StringFixed(2),
		result.TotalTax.StringFixed(2),
		result.NetIncome.StringFixed(2),
		result.EffectiveRate.StringFixed(4),
		result.MarginalRate.StringFixed(4),
		result.GrossDiffFromBase.StringFixed(2),
		result.NetDiffFromBase.StringFixed(2),
		result.NetPctFromBase.StringFixed(2),
		fmt.Sprintf("%t", result.Converged),
		result.Error,
	}
}
