package breakeven

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/rgehrsitz/paycalc/internal/domain"
	"github.com/rgehrsitz/paycalc/internal/output"
	"github.com/shopspring/decimal"
)

// TableFormatter formats solve results as a console table
type TableFormatter struct{}

// Format generates a formatted table for a solve result
func (tf *TableFormatter) Format(result *SolveResult) string {
	var sb strings.Builder

	sb.WriteString("GROSS-UP RESULT\n")
	sb.WriteString(strings.Repeat("=", 60) + "\n")

	req := result.Request
	sb.WriteString(fmt.Sprintf("Target Net Income:   %s %s\n", output.FormatCurrency(req.Amount), req.Frequency))
	sb.WriteString(fmt.Sprintf("Filing Status:       %s\n", req.FilingStatus.Label()))
	sb.WriteString(fmt.Sprintf("Jurisdiction:        %s\n", req.JurisdictionCode))
	sb.WriteString(fmt.Sprintf("Table Version:       %s\n", req.TableVersion))
	sb.WriteString(fmt.Sprintf("Status:              %s\n", tf.formatStatus(result.Converged)))
	sb.WriteString(fmt.Sprintf("Iterations:          %d\n", result.Iterations))
	if result.Widenings > 0 {
		sb.WriteString(fmt.Sprintf("Bound Widenings:     %d\n", result.Widenings))
	}
	if result.ConvergenceInfo != "" {
		sb.WriteString(fmt.Sprintf("Convergence:         %s\n", result.ConvergenceInfo))
	}
	sb.WriteString("\n")

	sb.WriteString("REQUIRED GROSS INCOME\n")
	sb.WriteString(strings.Repeat("-", 60) + "\n")
	sb.WriteString(fmt.Sprintf("Per Period:          %s\n", output.FormatCurrency(result.GrossIncome)))
	sb.WriteString(fmt.Sprintf("Annual:              %s\n", output.FormatCurrency(result.AnnualGrossIncome)))
	sb.WriteString(fmt.Sprintf("Annual Residual:     %s%s\n", tf.deltaSymbol(result.Residual), output.FormatCurrency(result.Residual.Abs())))
	sb.WriteString("\n")

	sb.WriteString("RECONCILIATION\n")
	sb.WriteString(strings.Repeat("-", 60) + "\n")
	sb.WriteString(output.BreakdownLines(result.Breakdown))

	return sb.String()
}

// FormatMany formats several solve outcomes as one summary table.
func (tf *TableFormatter) FormatMany(outcomes []SolveOutcome) string {
	var sb strings.Builder

	sb.WriteString("GROSS-UP SUMMARY\n")
	sb.WriteString(strings.Repeat("=", 72) + "\n")
	sb.WriteString(fmt.Sprintf("%-14s %-18s %16s %16s %s\n", "Jurisdiction", "Filing Status", "Gross/Period", "Annual Gross", "Status"))
	sb.WriteString(strings.Repeat("-", 72) + "\n")

	for _, o := range outcomes {
		if o.Result == nil {
			sb.WriteString(fmt.Sprintf("%-14s %-18s %16s %16s %s\n",
				tf.truncate(o.Request.JurisdictionCode, 14), tf.truncate(string(o.Request.FilingStatus), 18), "-", "-", "error: "+o.Err.Error()))
			continue
		}
		sb.WriteString(fmt.Sprintf("%-14s %-18s %16s %16s %s\n",
			tf.truncate(o.Result.Request.JurisdictionCode, 14),
			tf.truncate(string(o.Result.Request.FilingStatus), 18),
			output.FormatCurrency(o.Result.GrossIncome),
			output.FormatCurrency(o.Result.AnnualGrossIncome),
			tf.formatStatus(o.Result.Converged)))
	}
	return sb.String()
}

// JSONFormatter formats results as JSON
type JSONFormatter struct {
	Pretty bool
}

// Format generates JSON output
func (jf *JSONFormatter) Format(result *SolveResult) (string, error) {
	var data []byte
	var err error

	if jf.Pretty {
		data, err = json.MarshalIndent(result, "", "  ")
	} else {
		data, err = json.Marshal(result)
	}

	if err != nil {
		return "", err
	}

	return string(data), nil
}

type outcomeJSON struct {
	Request domain.CalculationRequest `json:"request"`
	Result  *SolveResult              `json:"result,omitempty"`
	Error   string                    `json:"error,omitempty"`
}

// FormatMany renders several solve outcomes as a JSON array.
func (jf *JSONFormatter) FormatMany(outcomes []SolveOutcome) (string, error) {
	view := make([]outcomeJSON, len(outcomes))
	for i, o := range outcomes {
		view[i] = outcomeJSON{Request: o.Request, Result: o.Result}
		if o.Err != nil {
			view[i].Error = o.Err.Error()
		}
	}

	var data []byte
	var err error
	if jf.Pretty {
		data, err = json.MarshalIndent(view, "", "  ")
	} else {
		data, err = json.Marshal(view)
	}
	if err != nil {
		return "", err
	}
	return string(data), nil
}

// Helper methods

func (tf *TableFormatter) formatStatus(converged bool) string {
	if converged {
		return "✓ Converged"
	}
	return "⚠ Did not converge"
}

func (tf *TableFormatter) deltaSymbol(delta decimal.Decimal) string {
	if delta.IsPositive() {
		return "+"
	} else if delta.IsNegative() {
		return "-"
	}
	return " "
}

func (tf *TableFormatter) truncate(s string, maxLen int) string {
	if len(s) <= maxLen {
		return s
	}
	return s[:maxLen-3] + "..."
}
