package compare

import (
	"fmt"
	"sort"

	"github.com/rgehrsitz/paycalc/internal/domain"
	"github.com/shopspring/decimal"
)

// Mode selects what is held constant across the compared variants.
type Mode string

const (
	// ModeForward holds gross income constant and compares net income.
	ModeForward Mode = "forward"
	// ModeReverse holds target net income constant and compares the gross
	// income each variant requires.
	ModeReverse Mode = "reverse"
)

// ParseMode converts user input into a Mode.
func ParseMode(s string) (Mode, error) {
	switch Mode(s) {
	case ModeForward, "":
		return ModeForward, nil
	case ModeReverse, "solve", "gross-up":
		return ModeReverse, nil
	}
	return "", domain.NewCalculationError(domain.ErrInvalidInput, "parse_compare_mode", "unknown comparison mode %q", s)
}

// ComparisonResult holds one variant's outcome and its deltas against the base.
type ComparisonResult struct {
	Label        string              `json:"label"`
	Jurisdiction string              `json:"jurisdiction"`
	FilingStatus domain.FilingStatus `json:"filingStatus"`
	PolicyKind   string              `json:"policyKind,omitempty"`
	Rank         int                 `json:"rank"`

	// Key Metrics (in the request's pay frequency)
	GrossIncome   decimal.Decimal `json:"grossIncome"`
	NetIncome     decimal.Decimal `json:"netIncome"`
	TotalTax      decimal.Decimal `json:"totalTax"`
	EffectiveRate decimal.Decimal `json:"effectiveRate"`
	MarginalRate  decimal.Decimal `json:"marginalRate"`
	Converged     bool            `json:"converged"`

	Breakdown *domain.TaxBreakdown `json:"breakdown,omitempty"`

	// Comparison to Base
	GrossDiffFromBase decimal.Decimal `json:"grossDiffFromBase"`
	NetDiffFromBase   decimal.Decimal `json:"netDiffFromBase"`
	TaxDiffFromBase   decimal.Decimal `json:"taxDiffFromBase"`
	NetPctFromBase    decimal.Decimal `json:"netPctFromBase"`

	Error string `json:"error,omitempty"`
}

// Failed reports whether the variant could not be computed.
func (r *ComparisonResult) Failed() bool { return r.Error != "" }

// ComparisonSet is a ranked comparison of variants against a base.
type ComparisonSet struct {
	Mode               Mode                      `json:"mode"`
	Request            domain.CalculationRequest `json:"request"`
	BaseLabel          string                    `json:"baseLabel"`
	BaseResult         *ComparisonResult         `json:"baseResult"`
	AlternativeResults []ComparisonResult        `json:"alternativeResults"`
	Ranking            []string                  `json:"ranking"`
	Recommendations    []string                  `json:"recommendations"`
}

// All returns the base followed by the alternatives.
func (cs *ComparisonSet) All() []ComparisonResult {
	all := make([]ComparisonResult, 0, len(cs.AlternativeResults)+1)
	if cs.BaseResult != nil {
		all = append(all, *cs.BaseResult)
	}
	return append(all, cs.AlternativeResults...)
}

// MetricsCalculator derives deltas and rankings from computed variants.
type MetricsCalculator struct{}

// NewMetricsCalculator creates a new metrics calculator
func NewMetricsCalculator() *MetricsCalculator {
	return &MetricsCalculator{}
}

// CalculateComparison fills the delta fields of scenario against base.
func (mc *MetricsCalculator) CalculateComparison(scenario, base ComparisonResult) ComparisonResult {
	if scenario.Failed() || base.Failed() {
		return scenario
	}
	scenario.GrossDiffFromBase = scenario.GrossIncome.Sub(base.GrossIncome)
	scenario.NetDiffFromBase = scenario.NetIncome.Sub(base.NetIncome)
	scenario.TaxDiffFromBase = scenario.TotalTax.Sub(base.TotalTax)

	if !base.NetIncome.IsZero() {
		scenario.NetPctFromBase = scenario.NetDiffFromBase.
			Div(base.NetIncome.Abs()).
			Mul(decimal.NewFromInt(100))
	}
	return scenario
}

// Rank orders results best-first and assigns 1-based ranks. Forward
// comparisons rank by highest net income, reverse by lowest required gross.
// Failed variants sort last with rank 0. Ties keep input order.
func (mc *MetricsCalculator) Rank(mode Mode, results []*ComparisonResult) []string {
	ordered := make([]*ComparisonResult, len(results))
	copy(ordered, results)
	sort.SliceStable(ordered, func(i, j int) bool {
		a, b := ordered[i], ordered[j]
		if a.Failed() != b.Failed() {
			return !a.Failed()
		}
		if mode == ModeReverse {
			return a.GrossIncome.LessThan(b.GrossIncome)
		}
		return a.NetIncome.GreaterThan(b.NetIncome)
	})

	labels := make([]string, 0, len(ordered))
	rank := 0
	for _, r := range ordered {
		if r.Failed() {
			r.Rank = 0
			continue
		}
		rank++
		r.Rank = rank
		labels = append(labels, r.Label)
	}
	return labels
}

// GenerateRecommendations summarizes the best variant against the base.
func GenerateRecommendations(compSet *ComparisonSet) []string {
	recommendations := []string{}
	if compSet.BaseResult == nil || len(compSet.AlternativeResults) == 0 || len(compSet.Ranking) == 0 {
		return recommendations
	}

	best := compSet.BaseResult
	for i := range compSet.AlternativeResults {
		alt := &compSet.AlternativeResults[i]
		if alt.Rank == 1 {
			best = alt
		}
	}

	if best == compSet.BaseResult {
		recommendations = append(recommendations,
			fmt.Sprintf("Best Option: %s (base) already ranks first", best.Label))
	} else if compSet.Mode == ModeReverse {
		savings := compSet.BaseResult.GrossIncome.Sub(best.GrossIncome)
		recommendations = append(recommendations,
			fmt.Sprintf("Best Option: %s needs $%s less gross per %s than %s",
				best.Label, savings.StringFixed(2), periodNoun(compSet.Request.Frequency), compSet.BaseLabel))
	} else {
		gain := best.NetIncome.Sub(compSet.BaseResult.NetIncome)
		recommendations = append(recommendations,
			fmt.Sprintf("Best Option: %s keeps $%s more net per %s than %s",
				best.Label, gain.StringFixed(2), periodNoun(compSet.Request.Frequency), compSet.BaseLabel))
	}

	lowestRate := best
	for _, r := range compSet.All() {
		if !r.Failed() && r.EffectiveRate.LessThan(lowestRate.EffectiveRate) {
			lowestRate = &r
		}
	}
	if lowestRate.Label != best.Label {
		recommendations = append(recommendations,
			fmt.Sprintf("Lowest Effective Rate: %s at %s%%", lowestRate.Label,
				lowestRate.EffectiveRate.Mul(decimal.NewFromInt(100)).StringFixed(2)))
	}

	failed := 0
	for _, r := range compSet.All() {
		if r.Failed() {
			failed++
		}
	}
	if failed > 0 {
		recommendations = append(recommendations, fmt.Sprintf("%d variant(s) could not be computed", failed))
	}
	return recommendations
}

func periodNoun(f domain.PayFrequency) string {
	switch f {
	case domain.Weekly:
		return "week"
	case domain.Biweekly:
		return "two weeks"
	case domain.Monthly:
		return "month"
	default:
		return "year"
	}
}
