package calculation

import (
	"github.com/rgehrsitz/paycalc/internal/domain"
	"github.com/shopspring/decimal"
)

// NetIncomeParams bundles everything the aggregator needs for one annual
// computation. A nil Federal calculator or Jurisdiction means that component
// is not applied.
type NetIncomeParams struct {
	AnnualGross  decimal.Decimal
	FilingStatus domain.FilingStatus
	Federal      *FederalTaxCalculator
	Jurisdiction JurisdictionPolicy
	Levies       []Levy
}

// CalculateNetIncome computes an annual TaxBreakdown. Federal, jurisdiction
// and levy amounts are each computed from the same gross and never see each
// other's results. A negative net income is returned as is.
func CalculateNetIncome(p NetIncomeParams) (domain.TaxBreakdown, error) {
	if p.AnnualGross.IsNegative() {
		return domain.TaxBreakdown{}, domain.NewCalculationError(domain.ErrInvalidInput, "calculate_net_income",
			"gross income cannot be negative: %s", p.AnnualGross.String())
	}
	if !p.FilingStatus.Valid() {
		return domain.TaxBreakdown{}, domain.NewCalculationError(domain.ErrInvalidInput, "calculate_net_income",
			"unknown filing status %q", p.FilingStatus)
	}

	result := domain.TaxBreakdown{
		Frequency:       domain.Annual,
		FilingStatus:    p.FilingStatus,
		GrossIncome:     p.AnnualGross,
		FederalTax:      decimal.Zero,
		JurisdictionTax: decimal.Zero,
		Levies:          make([]domain.LevyAmount, 0, len(p.Levies)),
	}

	if p.Federal != nil {
		result.FederalTax = p.Federal.CalculateFederalTax(p.AnnualGross, p.FilingStatus)
	}

	if p.Jurisdiction != nil {
		tax, err := ComputeJurisdictionTax(p.Jurisdiction, p.AnnualGross, p.FilingStatus)
		if err != nil {
			return domain.TaxBreakdown{}, err
		}
		result.JurisdictionTax = tax
	}

	for _, levy := range p.Levies {
		amount, err := ComputeLevy(levy.Rule, p.AnnualGross, p.FilingStatus)
		if err != nil {
			return domain.TaxBreakdown{}, err
		}
		result.Levies = append(result.Levies, domain.LevyAmount{Name: levy.Name, Amount: amount})
	}

	result.TotalTax = result.FederalTax.Add(result.JurisdictionTax).Add(result.TotalLevies())
	result.NetIncome = p.AnnualGross.Sub(result.TotalTax)
	result.EffectiveRate = decimal.Zero
	if !p.AnnualGross.IsZero() {
		result.EffectiveRate = result.TotalTax.Div(p.AnnualGross)
	}
	return result, nil
}

// CombinedMarginalRate is the total tax rate applied to the next dollar of
// annual gross income across every component.
func CombinedMarginalRate(p NetIncomeParams) decimal.Decimal {
	rate := decimal.Zero
	if p.Federal != nil {
		rate = rate.Add(p.Federal.MarginalRate(p.AnnualGross, p.FilingStatus))
	}
	if p.Jurisdiction != nil {
		rate = rate.Add(jurisdictionMarginalRate(p.Jurisdiction, p.AnnualGross, p.FilingStatus))
	}
	for _, levy := range p.Levies {
		rate = rate.Add(levyMarginalRate(levy.Rule, p.AnnualGross, p.FilingStatus))
	}
	return rate
}
