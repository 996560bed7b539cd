package domain

import (
	"github.com/shopspring/decimal"
)

// LevyAmount is the amount owed for one named levy (e.g. social_security).
type LevyAmount struct {
	Name   string          `json:"name" yaml:"name"`
	Amount decimal.Decimal `json:"amount" yaml:"amount"`
}

// TaxBreakdown is the result of one forward computation. All money fields are
// expressed in Frequency units; EffectiveRate is frequency independent.
type TaxBreakdown struct {
	Frequency       PayFrequency    `json:"frequency"`
	FilingStatus    FilingStatus    `json:"filingStatus"`
	Jurisdiction    string          `json:"jurisdiction,omitempty"`
	TableVersion    string          `json:"tableVersion,omitempty"`
	GrossIncome     decimal.Decimal `json:"grossIncome"`
	FederalTax      decimal.Decimal `json:"federalTax"`
	JurisdictionTax decimal.Decimal `json:"jurisdictionTax"`
	Levies          []LevyAmount    `json:"levies"` // in rule-set order
	TotalTax        decimal.Decimal `json:"totalTax"`
	NetIncome       decimal.Decimal `json:"netIncome"`
	EffectiveRate   decimal.Decimal `json:"effectiveRate"`
}

// Levy returns the amount for the named levy, or zero if it was not applied.
func (tb TaxBreakdown) Levy(name string) decimal.Decimal {
	for _, l := range tb.Levies {
		if l.Name == name {
			return l.Amount
		}
	}
	return decimal.Zero
}

// LevyMap returns the levies keyed by name.
func (tb TaxBreakdown) LevyMap() map[string]decimal.Decimal {
	m := make(map[string]decimal.Decimal, len(tb.Levies))
	for _, l := range tb.Levies {
		m[l.Name] = l.Amount
	}
	return m
}

// TotalLevies sums all levy amounts.
func (tb TaxBreakdown) TotalLevies() decimal.Decimal {
	total := decimal.Zero
	for _, l := range tb.Levies {
		total = total.Add(l.Amount)
	}
	return total
}

// Scale returns a copy with every money field divided by periods. Used to turn
// an annual breakdown into a periodic one.
func (tb TaxBreakdown) Scale(periods int64) TaxBreakdown {
	if periods == 1 {
		return tb
	}
	div := decimal.NewFromInt(periods)
	out := tb
	out.GrossIncome = tb.GrossIncome.Div(div)
	out.FederalTax = tb.FederalTax.Div(div)
	out.JurisdictionTax = tb.JurisdictionTax.Div(div)
	out.TotalTax = tb.TotalTax.Div(div)
	out.NetIncome = tb.NetIncome.Div(div)
	out.Levies = make([]LevyAmount, len(tb.Levies))
	for i, l := range tb.Levies {
		out.Levies[i] = LevyAmount{Name: l.Name, Amount: l.Amount.Div(div)}
	}
	return out
}

// CalculationRequest is the caller-facing input of the engine. Amount is a
// gross income for forward calculations and a target net income for reverse
// solves, in Frequency units.
type CalculationRequest struct {
	Amount           decimal.Decimal `json:"amount" yaml:"amount"`
	Frequency        PayFrequency    `json:"frequency" yaml:"frequency"`
	FilingStatus     FilingStatus    `json:"filingStatus" yaml:"filing_status"`
	JurisdictionCode string          `json:"jurisdiction" yaml:"jurisdiction"`
	TableVersion     string          `json:"tableVersion,omitempty" yaml:"table_version,omitempty"`
}
