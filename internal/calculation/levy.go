package calculation

import (
	"strings"

	"github.com/rgehrsitz/paycalc/internal/domain"
	"github.com/shopspring/decimal"
)

// LevyRule is a payroll levy formula: CappedLevy or SurtaxedLevy.
type LevyRule interface {
	levyRule()
}

// CappedLevy taxes income up to a wage-base cap (Social Security style).
type CappedLevy struct {
	Rate        decimal.Decimal
	WageBaseCap decimal.Decimal
}

// SurtaxedLevy taxes all income at BaseRate plus SurtaxRate on income above a
// filing-status threshold (Medicare + Additional Medicare style).
type SurtaxedLevy struct {
	BaseRate   decimal.Decimal
	SurtaxRate decimal.Decimal
	Thresholds map[domain.FilingStatus]decimal.Decimal
}

func (CappedLevy) levyRule()   {}
func (SurtaxedLevy) levyRule() {}

// Levy is a named rule, e.g. "social_security".
type Levy struct {
	Name string
	Rule LevyRule
}

// ComputeCapped returns min(income, cap) * rate.
func ComputeCapped(rule CappedLevy, annualGross decimal.Decimal) decimal.Decimal {
	if annualGross.LessThanOrEqual(decimal.Zero) {
		return decimal.Zero
	}
	return decimal.Min(annualGross, rule.WageBaseCap).Mul(rule.Rate)
}

// ThresholdFor returns the surtax threshold for a filing status, falling back
// to the Single threshold.
func (rule SurtaxedLevy) ThresholdFor(status domain.FilingStatus) decimal.Decimal {
	if t, ok := rule.Thresholds[status]; ok {
		return t
	}
	return rule.Thresholds[domain.FilingSingle]
}

// ComputeSurtaxed returns income*baseRate + max(0, income-threshold)*surtaxRate.
func ComputeSurtaxed(rule SurtaxedLevy, annualGross decimal.Decimal, status domain.FilingStatus) decimal.Decimal {
	if annualGross.LessThanOrEqual(decimal.Zero) {
		return decimal.Zero
	}
	base := annualGross.Mul(rule.BaseRate)
	excess := annualGross.Sub(rule.ThresholdFor(status))
	if excess.IsPositive() {
		base = base.Add(excess.Mul(rule.SurtaxRate))
	}
	return base
}

// ComputeLevy evaluates any levy rule.
func ComputeLevy(rule LevyRule, annualGross decimal.Decimal, status domain.FilingStatus) (decimal.Decimal, error) {
	switch r := rule.(type) {
	case CappedLevy:
		return ComputeCapped(r, annualGross), nil
	case SurtaxedLevy:
		return ComputeSurtaxed(r, annualGross, status), nil
	default:
		return decimal.Zero, domain.NewCalculationError(domain.ErrInvalidInput, "compute_levy", "unsupported levy rule %T", rule)
	}
}

func levyMarginalRate(rule LevyRule, annualGross decimal.Decimal, status domain.FilingStatus) decimal.Decimal {
	switch r := rule.(type) {
	case CappedLevy:
		if annualGross.LessThan(r.WageBaseCap) {
			return r.Rate
		}
		return decimal.Zero
	case SurtaxedLevy:
		if annualGross.GreaterThanOrEqual(r.ThresholdFor(status)) {
			return r.BaseRate.Add(r.SurtaxRate)
		}
		return r.BaseRate
	default:
		return decimal.Zero
	}
}

// NewLevy builds a Levy from its rules-file definition.
func NewLevy(cfg domain.LevyRuleConfig) (Levy, error) {
	if strings.TrimSpace(cfg.Name) == "" {
		return Levy{}, domain.NewCalculationError(domain.ErrInvalidInput, "new_levy", "levy name is required")
	}

	switch strings.ToLower(cfg.Type) {
	case domain.LevyCapped:
		if cfg.Rate.IsNegative() || cfg.WageBaseCap.IsNegative() {
			return Levy{}, domain.NewCalculationError(domain.ErrInvalidInput, "new_levy", "%s: rate and wage base cap must be non-negative", cfg.Name)
		}
		return Levy{Name: cfg.Name, Rule: CappedLevy{Rate: cfg.Rate, WageBaseCap: cfg.WageBaseCap}}, nil
	case domain.LevySurtaxed:
		if cfg.BaseRate.IsNegative() || cfg.SurtaxRate.IsNegative() {
			return Levy{}, domain.NewCalculationError(domain.ErrInvalidInput, "new_levy", "%s: rates must be non-negative", cfg.Name)
		}
		if _, ok := cfg.Thresholds[domain.FilingSingle]; !ok {
			return Levy{}, domain.NewCalculationError(domain.ErrInvalidInput, "new_levy", "%s: single surtax threshold is required", cfg.Name)
		}
		thresholds := make(map[domain.FilingStatus]decimal.Decimal, len(cfg.Thresholds))
		for status, t := range cfg.Thresholds {
			if !status.Valid() {
				return Levy{}, domain.NewCalculationError(domain.ErrInvalidInput, "new_levy", "%s: unknown filing status %q", cfg.Name, status)
			}
			if t.IsNegative() {
				return Levy{}, domain.NewCalculationError(domain.ErrInvalidInput, "new_levy", "%s: threshold for %s cannot be negative", cfg.Name, status)
			}
			thresholds[status] = t
		}
		return Levy{Name: cfg.Name, Rule: SurtaxedLevy{BaseRate: cfg.BaseRate, SurtaxRate: cfg.SurtaxRate, Thresholds: thresholds}}, nil
	default:
		return Levy{}, domain.NewCalculationError(domain.ErrInvalidInput, "new_levy", "%s: unknown levy type %q", cfg.Name, cfg.Type)
	}
}
