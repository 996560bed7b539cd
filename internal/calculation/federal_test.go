package calculation

import (
	"errors"
	"testing"

	"github.com/rgehrsitz/paycalc/internal/domain"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFederalTaxCalculator_Single60k(t *testing.T) {
	ftc, err := NewFederalTaxCalculator(2025, testFederalRules())
	require.NoError(t, err)

	gross := d("60000")
	assert.True(t, decimalEqual("45000", ftc.TaxableIncome(gross, domain.FilingSingle)))

	tax := ftc.CalculateFederalTax(gross, domain.FilingSingle)
	assert.True(t, decimalEqual("5161.5", tax), "got %s", tax)

	monthly, err := ToPeriodic(tax, domain.Monthly)
	require.NoError(t, err)
	assert.True(t, decimalEqual("430.125", monthly))
	assert.Equal(t, "430.13", monthly.StringFixed(2))
}

func TestFederalTaxCalculator_MarriedJoint(t *testing.T) {
	ftc, err := NewFederalTaxCalculator(2025, testFederalRules())
	require.NoError(t, err)

	// taxable 30000: 2385 + 6150 * 0.12
	tax := ftc.CalculateFederalTax(d("60000"), domain.FilingMarriedJoint)
	assert.True(t, decimalEqual("3123", tax), "got %s", tax)
}

func TestFederalTaxCalculator_FallsBackToSingle(t *testing.T) {
	ftc, err := NewFederalTaxCalculator(2025, testFederalRules())
	require.NoError(t, err)

	assert.True(t, decimalEqual("15000", ftc.StandardDeduction(domain.FilingHeadOfHousehold)))
	assert.Same(t, ftc.Table(domain.FilingSingle), ftc.Table(domain.FilingHeadOfHousehold))
	assert.True(t, ftc.CalculateFederalTax(d("60000"), domain.FilingHeadOfHousehold).
		Equal(ftc.CalculateFederalTax(d("60000"), domain.FilingSingle)))
}

func TestFederalTaxCalculator_BelowDeduction(t *testing.T) {
	ftc, err := NewFederalTaxCalculator(2025, testFederalRules())
	require.NoError(t, err)

	for _, gross := range []string{"0", "1", "14999.99", "15000"} {
		assert.True(t, ftc.CalculateFederalTax(d(gross), domain.FilingSingle).IsZero(), gross)
		assert.True(t, ftc.TaxableIncome(d(gross), domain.FilingSingle).IsZero(), gross)
	}
	assert.True(t, ftc.MarginalRate(d("10000"), domain.FilingSingle).IsZero())
	assert.True(t, decimalEqual("0.12", ftc.MarginalRate(d("60000"), domain.FilingSingle)))
}

func TestNewFederalTaxCalculator_Errors(t *testing.T) {
	rules := testFederalRules()
	delete(rules.Brackets, domain.FilingSingle)
	_, err := NewFederalTaxCalculator(2025, rules)
	assert.True(t, errors.Is(err, domain.ErrInvalidBracketTable))

	rules = testFederalRules()
	rules.Brackets[domain.FilingMarriedJoint] = rows("100", "0.1")
	_, err = NewFederalTaxCalculator(2025, rules)
	assert.True(t, errors.Is(err, domain.ErrInvalidBracketTable))

	rules = testFederalRules()
	rules.StandardDeduction["widowed"] = decimal.NewFromInt(1)
	_, err = NewFederalTaxCalculator(2025, rules)
	assert.True(t, errors.Is(err, domain.ErrInvalidInput))

	rules = testFederalRules()
	rules.StandardDeduction[domain.FilingSingle] = d("-1")
	_, err = NewFederalTaxCalculator(2025, rules)
	assert.True(t, errors.Is(err, domain.ErrInvalidInput))
}
