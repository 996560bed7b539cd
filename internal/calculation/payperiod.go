package calculation

import (
	"github.com/rgehrsitz/paycalc/internal/domain"
	"github.com/shopspring/decimal"
)

// ToAnnual converts a per-period amount into a yearly amount.
func ToAnnual(periodic decimal.Decimal, frequency domain.PayFrequency) (decimal.Decimal, error) {
	n, err := frequency.PeriodsPerYear()
	if err != nil {
		return decimal.Zero, err
	}
	return periodic.Mul(decimal.NewFromInt(n)), nil
}

// ToPeriodic converts a yearly amount into a per-period amount. Because the
// multipliers are integers, ToPeriodic(ToAnnual(x, f), f) equals x.
func ToPeriodic(annual decimal.Decimal, frequency domain.PayFrequency) (decimal.Decimal, error) {
	n, err := frequency.PeriodsPerYear()
	if err != nil {
		return decimal.Zero, err
	}
	return annual.Div(decimal.NewFromInt(n)), nil
}

// ToPeriodicBreakdown de-annualizes every money field of an annual breakdown.
func ToPeriodicBreakdown(annual domain.TaxBreakdown, frequency domain.PayFrequency) (domain.TaxBreakdown, error) {
	n, err := frequency.PeriodsPerYear()
	if err != nil {
		return domain.TaxBreakdown{}, err
	}
	out := annual.Scale(n)
	out.Frequency = frequency
	return out, nil
}
