package calculation

import (
	"sort"

	"github.com/rgehrsitz/paycalc/internal/domain"
	"github.com/samber/lo"
	"github.com/shopspring/decimal"
)

// RuleSet is one tax table version turned into evaluators. It is built once
// at startup and only read afterwards, so it is safe to share between
// goroutines.
type RuleSet struct {
	Version       string
	TaxYear       int
	Description   string
	Federal       *FederalTaxCalculator
	Levies        []Levy
	jurisdictions map[string]Jurisdiction
}

// NewRuleSet validates rules-file data and builds the evaluators.
func NewRuleSet(rules domain.TaxYearRules) (*RuleSet, error) {
	if rules.Metadata.Version == "" {
		return nil, domain.NewCalculationError(domain.ErrInvalidInput, "new_rule_set", "metadata.version is required")
	}

	federal, err := NewFederalTaxCalculator(rules.Metadata.TaxYear, rules.Federal)
	if err != nil {
		return nil, err
	}

	rs := &RuleSet{
		Version:       rules.Metadata.Version,
		TaxYear:       rules.Metadata.TaxYear,
		Description:   rules.Metadata.Description,
		Federal:       federal,
		Levies:        make([]Levy, 0, len(rules.Levies)),
		jurisdictions: make(map[string]Jurisdiction, len(rules.Jurisdictions)),
	}

	seen := make(map[string]bool, len(rules.Levies))
	for _, cfg := range rules.Levies {
		levy, err := NewLevy(cfg)
		if err != nil {
			return nil, err
		}
		if seen[levy.Name] {
			return nil, domain.NewCalculationError(domain.ErrInvalidInput, "new_rule_set", "duplicate levy %q", levy.Name)
		}
		seen[levy.Name] = true
		rs.Levies = append(rs.Levies, levy)
	}

	for code, rule := range rules.Jurisdictions {
		j, err := NewJurisdiction(code, rule)
		if err != nil {
			return nil, err
		}
		if _, dup := rs.jurisdictions[j.Code]; dup {
			return nil, domain.NewCalculationError(domain.ErrInvalidInput, "new_rule_set", "duplicate jurisdiction %q", j.Code)
		}
		rs.jurisdictions[j.Code] = j
	}

	return rs, nil
}

// Jurisdiction looks up a jurisdiction by code (case-insensitive).
func (rs *RuleSet) Jurisdiction(code string) (Jurisdiction, error) {
	j, ok := rs.jurisdictions[NormalizeJurisdictionCode(code)]
	if !ok {
		return Jurisdiction{}, domain.NewCalculationError(domain.ErrUnknownJurisdiction, "lookup_jurisdiction",
			"%q is not defined in table version %s", code, rs.Version)
	}
	return j, nil
}

// JurisdictionCodes returns every loaded code in sorted order.
func (rs *RuleSet) JurisdictionCodes() []string {
	codes := lo.Keys(rs.jurisdictions)
	sort.Strings(codes)
	return codes
}

// Jurisdictions returns every loaded jurisdiction sorted by code.
func (rs *RuleSet) Jurisdictions() []Jurisdiction {
	return lo.Map(rs.JurisdictionCodes(), func(code string, _ int) Jurisdiction {
		return rs.jurisdictions[code]
	})
}

// Params assembles aggregator parameters for a jurisdiction.
func (rs *RuleSet) Params(annualGross decimal.Decimal, status domain.FilingStatus, j Jurisdiction) NetIncomeParams {
	return NetIncomeParams{
		AnnualGross:  annualGross,
		FilingStatus: status,
		Federal:      rs.Federal,
		Jurisdiction: j.Policy,
		Levies:       rs.Levies,
	}
}
