package calculation

import (
	"github.com/rgehrsitz/paycalc/internal/domain"
	"github.com/shopspring/decimal"
)

// FederalTaxCalculator subtracts the filing-status standard deduction from
// gross income and applies that status's bracket table. Statuses without a
// dedicated deduction or table use the Single values.
type FederalTaxCalculator struct {
	Year               int
	standardDeductions map[domain.FilingStatus]decimal.Decimal
	tables             map[domain.FilingStatus]*BracketTable
}

// NewFederalTaxCalculator creates a federal tax calculator from rules-file data
func NewFederalTaxCalculator(year int, rules domain.FederalTaxRules) (*FederalTaxCalculator, error) {
	ftc := &FederalTaxCalculator{
		Year:               year,
		standardDeductions: make(map[domain.FilingStatus]decimal.Decimal, len(rules.StandardDeduction)),
		tables:             make(map[domain.FilingStatus]*BracketTable, len(rules.Brackets)),
	}

	for status, ded := range rules.StandardDeduction {
		if !status.Valid() {
			return nil, domain.NewCalculationError(domain.ErrInvalidInput, "new_federal_tax_calculator", "unknown filing status %q in standard deduction", status)
		}
		if ded.IsNegative() {
			return nil, domain.NewCalculationError(domain.ErrInvalidInput, "new_federal_tax_calculator", "standard deduction for %s cannot be negative", status)
		}
		ftc.standardDeductions[status] = ded
	}

	for status, rows := range rules.Brackets {
		if !status.Valid() {
			return nil, domain.NewCalculationError(domain.ErrInvalidInput, "new_federal_tax_calculator", "unknown filing status %q in brackets", status)
		}
		table, err := NewBracketTableFromConfig(rows)
		if err != nil {
			return nil, &domain.CalculationError{
				Kind:      domain.ErrInvalidBracketTable,
				Operation: "new_federal_tax_calculator",
				Message:   "federal brackets for " + string(status),
				Cause:     err,
			}
		}
		ftc.tables[status] = table
	}

	if _, ok := ftc.tables[domain.FilingSingle]; !ok {
		return nil, domain.NewCalculationError(domain.ErrInvalidBracketTable, "new_federal_tax_calculator", "single bracket table is required")
	}
	return ftc, nil
}

// StandardDeduction returns the deduction applied for a filing status.
func (ftc *FederalTaxCalculator) StandardDeduction(status domain.FilingStatus) decimal.Decimal {
	if ded, ok := ftc.standardDeductions[status]; ok {
		return ded
	}
	return ftc.standardDeductions[domain.FilingSingle]
}

// Table returns the bracket table used for a filing status.
func (ftc *FederalTaxCalculator) Table(status domain.FilingStatus) *BracketTable {
	if t, ok := ftc.tables[status]; ok {
		return t
	}
	return ftc.tables[domain.FilingSingle]
}

// TaxableIncome is gross minus the standard deduction, floored at zero.
func (ftc *FederalTaxCalculator) TaxableIncome(annualGross decimal.Decimal, status domain.FilingStatus) decimal.Decimal {
	taxable := annualGross.Sub(ftc.StandardDeduction(status))
	if taxable.IsNegative() {
		return decimal.Zero
	}
	return taxable
}

// CalculateFederalTax calculates federal income tax on annual gross income
func (ftc *FederalTaxCalculator) CalculateFederalTax(annualGross decimal.Decimal, status domain.FilingStatus) decimal.Decimal {
	return ftc.Table(status).Evaluate(ftc.TaxableIncome(annualGross, status))
}

// MarginalRate is the federal rate on the next dollar of gross income.
func (ftc *FederalTaxCalculator) MarginalRate(annualGross decimal.Decimal, status domain.FilingStatus) decimal.Decimal {
	if annualGross.LessThan(ftc.StandardDeduction(status)) {
		return decimal.Zero
	}
	return ftc.Table(status).MarginalRate(ftc.TaxableIncome(annualGross, status))
}
