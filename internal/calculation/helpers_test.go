package calculation

import (
	"github.com/rgehrsitz/paycalc/internal/domain"
	"github.com/shopspring/decimal"
)

func d(s string) decimal.Decimal { return decimal.RequireFromString(s) }

func rows(pairs ...string) []domain.BracketConfig {
	out := make([]domain.BracketConfig, 0, len(pairs)/2)
	for i := 0; i+1 < len(pairs); i += 2 {
		out = append(out, domain.BracketConfig{Threshold: d(pairs[i]), Rate: d(pairs[i+1])})
	}
	return out
}

var singleFederalRows = rows(
	"0", "0.10",
	"11925", "0.12",
	"48475", "0.22",
	"103350", "0.24",
	"197300", "0.32",
	"250525", "0.35",
	"626350", "0.37",
)

var jointFederalRows = rows(
	"0", "0.10",
	"23850", "0.12",
	"96950", "0.22",
	"206700", "0.24",
	"394600", "0.32",
	"501050", "0.35",
	"751600", "0.37",
)

func testFederalRules() domain.FederalTaxRules {
	return domain.FederalTaxRules{
		StandardDeduction: map[domain.FilingStatus]decimal.Decimal{
			domain.FilingSingle:       d("15000"),
			domain.FilingMarriedJoint: d("30000"),
		},
		Brackets: map[domain.FilingStatus][]domain.BracketConfig{
			domain.FilingSingle:       singleFederalRows,
			domain.FilingMarriedJoint: jointFederalRows,
		},
	}
}

func testLevyConfigs() []domain.LevyRuleConfig {
	return []domain.LevyRuleConfig{
		{Name: "social_security", Type: domain.LevyCapped, Rate: d("0.062"), WageBaseCap: d("176100")},
		{
			Name: "medicare", Type: domain.LevySurtaxed, BaseRate: d("0.0145"), SurtaxRate: d("0.009"),
			Thresholds: map[domain.FilingStatus]decimal.Decimal{
				domain.FilingSingle:          d("200000"),
				domain.FilingMarriedJoint:    d("250000"),
				domain.FilingMarriedSeparate: d("125000"),
			},
		},
	}
}

func testRules(version string) domain.TaxYearRules {
	return domain.TaxYearRules{
		Metadata: domain.RulesMetadata{Version: version, TaxYear: 2025, Description: "test rules"},
		Federal:  testFederalRules(),
		Levies:   testLevyConfigs(),
		Jurisdictions: map[string]domain.JurisdictionRule{
			"TX": {Name: "Texas", Type: domain.PolicyExempt},
			"AZ": {Name: "Arizona", Type: domain.PolicyFlat, Rate: d("0.025")},
			"gr": {
				Name: "Graduated Test",
				Type: domain.PolicyGraduated,
				Brackets: map[domain.FilingStatus][]domain.BracketConfig{
					domain.FilingSingle:       rows("0", "0.01", "10000", "0.02", "50000", "0.05"),
					domain.FilingMarriedJoint: rows("0", "0.01", "20000", "0.02"),
				},
			},
		},
	}
}

func mustRuleSet(version string) *RuleSet {
	rs, err := NewRuleSet(testRules(version))
	if err != nil {
		panic(err)
	}
	return rs
}

func mustEngine() *CalculationEngine {
	ce, err := NewCalculationEngine(mustRuleSet("2025"))
	if err != nil {
		panic(err)
	}
	return ce
}

// decimalEqual compares by value so 5161.5 and 5161.50 are equal.
func decimalEqual(want string, got decimal.Decimal) bool {
	return d(want).Equal(got)
}
