package compare

import (
	"encoding/csv"
	"encoding/json"
	"strings"
	"testing"

	"github.com/rgehrsitz/paycalc/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func buildTestSet() *ComparisonSet {
	base := ComparisonResult{
		Label: "AZ", Jurisdiction: "AZ", FilingStatus: domain.FilingSingle, Rank: 2, Converged: true,
		GrossIncome: d("52000"), TotalTax: d("9479.5"), NetIncome: d("42520.5"),
		EffectiveRate: d("0.1823"), MarginalRate: d("0.2215"),
		Breakdown: &domain.TaxBreakdown{GrossIncome: d("52000")},
	}
	return &ComparisonSet{
		Mode:       ModeForward,
		Request:    domain.CalculationRequest{Amount: d("52000"), Frequency: domain.Annual, FilingStatus: domain.FilingSingle},
		BaseLabel:  "AZ",
		BaseResult: &base,
		AlternativeResults: []ComparisonResult{
			{
				Label: "TX", Jurisdiction: "TX", FilingStatus: domain.FilingSingle, Rank: 1, Converged: true,
				GrossIncome: d("52000"), TotalTax: d("8179.5"), NetIncome: d("43820.5"),
				EffectiveRate: d("0.1573"), MarginalRate: d("0.1965"),
				NetDiffFromBase: d("1300"), TaxDiffFromBase: d("-1300"), NetPctFromBase: d("3.06"),
				Breakdown: &domain.TaxBreakdown{GrossIncome: d("52000")},
			},
			{Label: "ZZ", Jurisdiction: "ZZ", Error: "unknown jurisdiction"},
		},
		Ranking:         []string{"TX", "AZ"},
		Recommendations: []string{"Best Option: TX keeps $1300.00 more net per year than AZ"},
	}
}

func TestTableFormatter_Format(t *testing.T) {
	out := (&TableFormatter{}).Format(buildTestSet())

	assert.Contains(t, out, "NET INCOME COMPARISON")
	assert.Contains(t, out, "AZ (base)")
	assert.Contains(t, out, "$43,820.50")
	assert.Contains(t, out, "19.65%")
	assert.Contains(t, out, "net +$1,300.00 (3.1%)")
	assert.Contains(t, out, "error: unknown jurisdiction")
	assert.Contains(t, out, "RECOMMENDATIONS")
}

func TestTableFormatter_FormatReverse(t *testing.T) {
	set := buildTestSet()
	set.Mode = ModeReverse
	set.AlternativeResults[0].GrossDiffFromBase = d("-1500")
	out := (&TableFormatter{}).Format(set)

	assert.Contains(t, out, "REQUIRED GROSS COMPARISON")
	assert.Contains(t, out, "Target Net Income")
	assert.Contains(t, out, "gross -$1,500.00")
}

func TestTableFormatter_FormatCompact(t *testing.T) {
	out := (&TableFormatter{}).FormatCompact(buildTestSet())
	assert.Equal(t, "Base: AZ | TX: +$1,300.00 | ZZ: error", out)
}

func TestCSVFormatter_Format(t *testing.T) {
	out, err := (&CSVFormatter{}).Format(buildTestSet())
	require.NoError(t, err)

	records, err := csv.NewReader(strings.NewReader(out)).ReadAll()
	require.NoError(t, err)
	require.Len(t, records, 4)
	assert.Equal(t, "Variant", records[0][0])
	assert.Equal(t, []string{"AZ", "base", "2"}, records[1][:3])
	assert.Equal(t, "43820.50", records[2][7])
	assert.Equal(t, "unknown jurisdiction", records[3][14])
}

func TestJSONFormatter_Format(t *testing.T) {
	out, err := (&JSONFormatter{Pretty: true}).Format(buildTestSet())
	require.NoError(t, err)
	assert.Contains(t, out, "\n  ")

	var decoded map[string]any
	require.NoError(t, json.Unmarshal([]byte(out), &decoded))
	assert.Equal(t, "forward", decoded["mode"])
	assert.Contains(t, decoded["baseResult"], "breakdown")

	set := buildTestSet()
	compact, err := (&JSONFormatter{OmitBreakdowns: true}).Format(set)
	require.NoError(t, err)
	assert.NotContains(t, compact, "breakdown")
	assert.NotNil(t, set.BaseResult.Breakdown, "input is not modified")
}

func TestMetricsCalculator_Rank(t *testing.T) {
	mc := NewMetricsCalculator()
	a := &ComparisonResult{Label: "A", GrossIncome: d("100"), NetIncome: d("80")}
	b := &ComparisonResult{Label: "B", GrossIncome: d("90"), NetIncome: d("85")}
	c := &ComparisonResult{Label: "C", Error: "x"}

	assert.Equal(t, []string{"B", "A"}, mc.Rank(ModeForward, []*ComparisonResult{a, c, b}))
	assert.Equal(t, 2, a.Rank)
	assert.Equal(t, 0, c.Rank)

	assert.Equal(t, []string{"B", "A"}, mc.Rank(ModeReverse, []*ComparisonResult{a, b}))
}

func TestGenerateRecommendations_BaseBest(t *testing.T) {
	set := buildTestSet()
	set.BaseResult.Rank = 1
	set.AlternativeResults[0].Rank = 2
	recs := GenerateRecommendations(set)
	require.NotEmpty(t, recs)
	assert.Contains(t, recs[0], "AZ (base) already ranks first")
}
