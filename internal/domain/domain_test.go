package domain

import (
	"errors"
	"math"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"
)

func TestParseFilingStatus(t *testing.T) {
	tests := map[string]FilingStatus{
		"single":            FilingSingle,
		" S ":               FilingSingle,
		"MFJ":               FilingMarriedJoint,
		"married-joint":     FilingMarriedJoint,
		"married":           FilingMarriedJoint,
		"mfs":               FilingMarriedSeparate,
		"head_of_household": FilingHeadOfHousehold,
		"hoh":               FilingHeadOfHousehold,
	}
	for in, want := range tests {
		got, err := ParseFilingStatus(in)
		require.NoError(t, err, in)
		assert.Equal(t, want, got, in)
	}

	_, err := ParseFilingStatus("widowed")
	assert.True(t, errors.Is(err, ErrInvalidInput))
}

func TestFilingStatus_ValidAndLabel(t *testing.T) {
	for _, fs := range FilingStatuses {
		assert.True(t, fs.Valid())
		assert.NotEqual(t, string(fs), fs.Label())
	}
	assert.False(t, FilingStatus("").Valid())
	assert.Equal(t, "Married Filing Jointly", FilingMarriedJoint.Label())
	assert.Equal(t, "other", FilingStatus("other").Label())
}

func TestParsePayFrequency(t *testing.T) {
	tests := map[string]PayFrequency{
		"weekly":      Weekly,
		"Bi-Weekly":   Biweekly,
		"fortnightly": Biweekly,
		"MONTHLY":     Monthly,
		"annual":      Annual,
		"yearly":      Annual,
		"annually":    Annual,
	}
	for in, want := range tests {
		got, err := ParsePayFrequency(in)
		require.NoError(t, err, in)
		assert.Equal(t, want, got, in)
	}

	_, err := ParsePayFrequency("daily")
	assert.True(t, errors.Is(err, ErrInvalidInput))
}

func TestPeriodsPerYear(t *testing.T) {
	want := []int64{52, 26, 12, 1}
	for i, f := range PayFrequencies {
		n, err := f.PeriodsPerYear()
		require.NoError(t, err)
		assert.Equal(t, want[i], n)
	}
	_, err := PayFrequency("hourly").PeriodsPerYear()
	assert.True(t, errors.Is(err, ErrInvalidInput))
}

func TestParseMoney(t *testing.T) {
	tests := map[string]string{
		"5000":      "5000",
		"$5,000.00": "5000",
		" 60000.5 ": "60000.5",
		"1_000_000": "1000000",
		"$0":        "0",
		"464.875":   "464.875",
	}
	for in, want := range tests {
		got, err := ParseMoney(in)
		require.NoError(t, err, in)
		assert.True(t, decimal.RequireFromString(want).Equal(got), in)
	}

	for _, bad := range []string{"", "  ", "abc", "$", "-5", "1.2.3"} {
		_, err := ParseMoney(bad)
		assert.True(t, errors.Is(err, ErrInvalidInput), bad)
	}
}

func TestMoneyFromFloat(t *testing.T) {
	got, err := MoneyFromFloat(1234.5)
	require.NoError(t, err)
	assert.True(t, decimal.RequireFromString("1234.5").Equal(got))

	for _, bad := range []float64{math.NaN(), math.Inf(1), math.Inf(-1), -0.01} {
		_, err := MoneyFromFloat(bad)
		assert.True(t, errors.Is(err, ErrInvalidInput))
	}
}

func TestCalculationError(t *testing.T) {
	cause := errors.New("boom")
	err := &CalculationError{Kind: ErrInvalidBracketTable, Operation: "load", Message: "federal", Cause: cause}

	assert.Equal(t, "load: invalid bracket table: federal: boom", err.Error())
	assert.True(t, errors.Is(err, ErrInvalidBracketTable))
	assert.True(t, errors.Is(err, cause))
	assert.False(t, errors.Is(err, ErrInvalidInput))

	var ce *CalculationError
	require.True(t, errors.As(error(err), &ce))
	assert.Equal(t, "load", ce.Operation)

	plain := NewCalculationError(nil, "op", "n=%d", 3)
	assert.Equal(t, "op: n=3", plain.Error())
	assert.Empty(t, plain.Unwrap())
}

func testBreakdown() TaxBreakdown {
	return TaxBreakdown{
		Frequency:       Annual,
		FilingStatus:    FilingSingle,
		GrossIncome:     decimal.NewFromInt(52000),
		FederalTax:      decimal.RequireFromString("4201.5"),
		JurisdictionTax: decimal.NewFromInt(1300),
		Levies: []LevyAmount{
			{Name: "social_security", Amount: decimal.NewFromInt(3224)},
			{Name: "medicare", Amount: decimal.NewFromInt(754)},
		},
		TotalTax:      decimal.RequireFromString("9479.5"),
		NetIncome:     decimal.RequireFromString("42520.5"),
		EffectiveRate: decimal.RequireFromString("0.1823"),
	}
}

func TestTaxBreakdown_Levies(t *testing.T) {
	tb := testBreakdown()
	assert.True(t, decimal.NewFromInt(3224).Equal(tb.Levy("social_security")))
	assert.True(t, tb.Levy("unknown").IsZero())
	assert.True(t, decimal.NewFromInt(3978).Equal(tb.TotalLevies()))
	assert.Len(t, tb.LevyMap(), 2)
}

func TestTaxBreakdown_Scale(t *testing.T) {
	tb := testBreakdown()
	monthly := tb.Scale(4)

	assert.True(t, decimal.NewFromInt(13000).Equal(monthly.GrossIncome))
	assert.True(t, decimal.NewFromInt(325).Equal(monthly.JurisdictionTax))
	assert.True(t, decimal.NewFromInt(806).Equal(monthly.Levy("social_security")))
	assert.True(t, tb.EffectiveRate.Equal(monthly.EffectiveRate))
	// original untouched
	assert.True(t, decimal.NewFromInt(3224).Equal(tb.Levies[0].Amount))

	same := tb.Scale(1)
	assert.Equal(t, tb, same)
}

func TestCalculationRequest_YAML(t *testing.T) {
	var req CalculationRequest
	err := yaml.Unmarshal([]byte("amount: \"5000\"\nfrequency: monthly\nfiling_status: single\njurisdiction: TX\n"), &req)
	require.NoError(t, err)
	assert.Equal(t, Monthly, req.Frequency)
	assert.Equal(t, FilingSingle, req.FilingStatus)
	assert.Equal(t, "TX", req.JurisdictionCode)
	assert.True(t, decimal.NewFromInt(5000).Equal(req.Amount))
}
