package calculation

import (
	"fmt"
	"sort"

	"github.com/rgehrsitz/paycalc/internal/domain"
	"github.com/samber/lo"
	"github.com/shopspring/decimal"
)

// CalculationEngine orchestrates tax calculations over one or more loaded
// table versions. Rule sets are read-only once the engine is built, so a
// single engine can serve concurrent callers.
type CalculationEngine struct {
	ruleSets       map[string]*RuleSet
	DefaultVersion string
	Logger         Logger
	Debug          bool // Enable debug output for detailed calculations
}

// NewCalculationEngine creates an engine over the given rule sets. A later set
// with the same version replaces an earlier one, and the last set passed
// becomes the default version.
func NewCalculationEngine(sets ...*RuleSet) (*CalculationEngine, error) {
	if len(sets) == 0 {
		return nil, domain.NewCalculationError(domain.ErrInvalidInput, "new_calculation_engine", "at least one rule set is required")
	}
	ce := &CalculationEngine{
		ruleSets: make(map[string]*RuleSet, len(sets)),
		Logger:   NopLogger{},
	}
	for _, rs := range sets {
		if rs == nil {
			return nil, domain.NewCalculationError(domain.ErrInvalidInput, "new_calculation_engine", "nil rule set")
		}
		ce.ruleSets[rs.Version] = rs
		ce.DefaultVersion = rs.Version
	}
	return ce, nil
}

// SetLogger sets the logger; nil installs a no-op logger.
func (ce *CalculationEngine) SetLogger(l Logger) {
	if l == nil {
		ce.Logger = NopLogger{}
		return
	}
	ce.Logger = l
}

// Versions lists the loaded table versions in sorted order.
func (ce *CalculationEngine) Versions() []string {
	versions := lo.Keys(ce.ruleSets)
	sort.Strings(versions)
	return versions
}

// RuleSet returns the rule set for a version; empty selects the default.
func (ce *CalculationEngine) RuleSet(version string) (*RuleSet, error) {
	if version == "" {
		version = ce.DefaultVersion
	}
	rs, ok := ce.ruleSets[version]
	if !ok {
		return nil, domain.NewCalculationError(domain.ErrInvalidInput, "lookup_rule_set",
			"table version %q is not loaded (available: %v)", version, ce.Versions())
	}
	return rs, nil
}

// Scenario is a validated request bound to its rule set and jurisdiction.
type Scenario struct {
	RuleSet      *RuleSet
	Jurisdiction Jurisdiction
	Frequency    domain.PayFrequency
	FilingStatus domain.FilingStatus
	Amount       decimal.Decimal // as supplied, in Frequency units
	AnnualAmount decimal.Decimal
}

// Resolve validates a request and binds it to loaded rules.
func (ce *CalculationEngine) Resolve(req domain.CalculationRequest) (*Scenario, error) {
	if err := domain.ValidateAmount("resolve_request", req.Amount); err != nil {
		return nil, err
	}
	if !req.FilingStatus.Valid() {
		return nil, domain.NewCalculationError(domain.ErrInvalidInput, "resolve_request", "unknown filing status %q", req.FilingStatus)
	}
	annual, err := ToAnnual(req.Amount, req.Frequency)
	if err != nil {
		return nil, err
	}
	rs, err := ce.RuleSet(req.TableVersion)
	if err != nil {
		return nil, err
	}
	j, err := rs.Jurisdiction(req.JurisdictionCode)
	if err != nil {
		return nil, err
	}
	return &Scenario{
		RuleSet:      rs,
		Jurisdiction: j,
		Frequency:    req.Frequency,
		FilingStatus: req.FilingStatus,
		Amount:       req.Amount,
		AnnualAmount: annual,
	}, nil
}

// Params returns aggregator parameters for an annual gross under this scenario.
func (s *Scenario) Params(annualGross decimal.Decimal) NetIncomeParams {
	return s.RuleSet.Params(annualGross, s.FilingStatus, s.Jurisdiction)
}

// AnnualBreakdown computes the annual breakdown for an annual gross income.
func (s *Scenario) AnnualBreakdown(annualGross decimal.Decimal) (domain.TaxBreakdown, error) {
	tb, err := CalculateNetIncome(s.Params(annualGross))
	if err != nil {
		return domain.TaxBreakdown{}, err
	}
	tb.Jurisdiction = s.Jurisdiction.Code
	tb.TableVersion = s.RuleSet.Version
	return tb, nil
}

// PeriodicBreakdown computes the breakdown for an annual gross and expresses
// it in the scenario's pay frequency.
func (s *Scenario) PeriodicBreakdown(annualGross decimal.Decimal) (domain.TaxBreakdown, error) {
	tb, err := s.AnnualBreakdown(annualGross)
	if err != nil {
		return domain.TaxBreakdown{}, err
	}
	return ToPeriodicBreakdown(tb, s.Frequency)
}

// Calculate runs the forward computation: req.Amount is gross income per
// pay period and the breakdown is returned in the same frequency.
func (ce *CalculationEngine) Calculate(req domain.CalculationRequest) (*domain.TaxBreakdown, error) {
	scenario, err := ce.Resolve(req)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve request: %w", err)
	}

	tb, err := scenario.PeriodicBreakdown(scenario.AnnualAmount)
	if err != nil {
		return nil, err
	}

	if ce.Debug {
		ce.Logger.Debugf("calculate: version=%s jurisdiction=%s status=%s annual_gross=%s federal=%s jurisdiction_tax=%s levies=%s",
			scenario.RuleSet.Version, scenario.Jurisdiction.Code, scenario.FilingStatus, scenario.AnnualAmount.StringFixed(2),
			tb.FederalTax.StringFixed(2), tb.JurisdictionTax.StringFixed(2), tb.TotalLevies().StringFixed(2))
	}
	return &tb, nil
}

// MarginalRate reports the combined rate on the next dollar of gross income
// for the request.
func (ce *CalculationEngine) MarginalRate(req domain.CalculationRequest) (decimal.Decimal, error) {
	scenario, err := ce.Resolve(req)
	if err != nil {
		return decimal.Zero, fmt.Errorf("failed to resolve request: %w", err)
	}
	return CombinedMarginalRate(scenario.Params(scenario.AnnualAmount)), nil
}
