package compare

import (
	"context"
	"errors"
	"testing"

	"github.com/rgehrsitz/paycalc/internal/config"
	"github.com/rgehrsitz/paycalc/internal/domain"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func d(s string) decimal.Decimal { return decimal.RequireFromString(s) }

func newTestCompareEngine(t *testing.T) *CompareEngine {
	t.Helper()
	engine, err := config.NewInputParser().LoadEngine()
	require.NoError(t, err)
	return NewCompareEngine(engine)
}

func baseRequest(amount string, freq domain.PayFrequency) domain.CalculationRequest {
	return domain.CalculationRequest{Amount: d(amount), Frequency: freq, FilingStatus: domain.FilingSingle}
}

func TestCompare_ForwardJurisdictions(t *testing.T) {
	ce := newTestCompareEngine(t)

	set, err := ce.Compare(context.Background(), CompareOptions{
		Request:       baseRequest("52000", domain.Annual),
		Jurisdictions: []string{"az", "TX", "CA", "tx"},
	})
	require.NoError(t, err)

	assert.Equal(t, ModeForward, set.Mode)
	assert.Equal(t, "AZ", set.BaseLabel)
	require.Len(t, set.AlternativeResults, 2, "duplicates are dropped")
	assert.Equal(t, "TX", set.Ranking[0], "exempt jurisdiction keeps the most")

	base := set.BaseResult
	assert.True(t, d("1300").Equal(base.Breakdown.JurisdictionTax))
	assert.Equal(t, domain.PolicyFlat, base.PolicyKind)

	tx := set.AlternativeResults[0]
	assert.Equal(t, "TX", tx.Label)
	assert.Equal(t, 1, tx.Rank)
	assert.True(t, d("1300").Equal(tx.NetDiffFromBase), "TX saves exactly the AZ tax")
	assert.True(t, d("-1300").Equal(tx.TaxDiffFromBase))
	assert.True(t, tx.GrossDiffFromBase.IsZero())
	assert.True(t, tx.NetPctFromBase.IsPositive())
	assert.True(t, tx.MarginalRate.LessThan(base.MarginalRate))

	ranks := map[string]int{}
	for _, r := range set.All() {
		ranks[r.Label] = r.Rank
	}
	assert.Equal(t, map[string]int{"TX": 1, "AZ": 2, "CA": 3}, ranks)
	assert.NotEmpty(t, set.Recommendations)
	assert.Contains(t, set.Recommendations[0], "TX")
}

func TestCompare_ReverseJurisdictions(t *testing.T) {
	ce := newTestCompareEngine(t)

	set, err := ce.Compare(context.Background(), CompareOptions{
		Mode:          ModeReverse,
		Request:       baseRequest("5000", domain.Monthly),
		Jurisdictions: []string{"CA", "TX", "PA"},
	})
	require.NoError(t, err)

	assert.Equal(t, []string{"TX", "PA", "CA"}, set.Ranking)
	for _, r := range set.All() {
		assert.True(t, r.Converged, r.Label)
		assert.True(t, r.NetIncome.Sub(d("5000")).Abs().LessThan(decimal.NewFromInt(1)), r.Label)
	}
	tx := set.AlternativeResults[0]
	assert.True(t, tx.GrossDiffFromBase.IsNegative(), "TX needs less gross than CA")
	assert.Contains(t, set.Recommendations[0], "less gross per month")
}

func TestCompare_AllJurisdictionsWhenNoneListed(t *testing.T) {
	ce := newTestCompareEngine(t)
	rs, err := ce.CalcEngine.RuleSet("")
	require.NoError(t, err)

	req := baseRequest("80000", domain.Annual)
	req.JurisdictionCode = "ny"
	set, err := ce.Compare(context.Background(), CompareOptions{Request: req})
	require.NoError(t, err)

	assert.Equal(t, "NY", set.BaseLabel)
	assert.Len(t, set.All(), len(rs.JurisdictionCodes()))
	assert.Len(t, set.Ranking, len(rs.JurisdictionCodes()))
}

func TestCompare_FilingStatuses(t *testing.T) {
	ce := newTestCompareEngine(t)

	req := baseRequest("120000", domain.Annual)
	req.JurisdictionCode = "VA"
	set, err := ce.Compare(context.Background(), CompareOptions{
		Request:        req,
		FilingStatuses: []domain.FilingStatus{domain.FilingSingle, domain.FilingMarriedJoint, domain.FilingHeadOfHousehold},
	})
	require.NoError(t, err)

	assert.Equal(t, "Single", set.BaseLabel)
	assert.Equal(t, "Married Filing Jointly", set.Ranking[0])
	mfj := set.AlternativeResults[0]
	assert.Equal(t, domain.FilingMarriedJoint, mfj.FilingStatus)
	assert.Equal(t, "VA", mfj.Jurisdiction)
	// VA has a single table only, so the jurisdiction tax does not change.
	assert.True(t, set.BaseResult.Breakdown.JurisdictionTax.Equal(mfj.Breakdown.JurisdictionTax))
	assert.True(t, mfj.NetDiffFromBase.IsPositive())
}

func TestCompare_FailedVariantKept(t *testing.T) {
	ce := newTestCompareEngine(t)

	set, err := ce.Compare(context.Background(), CompareOptions{
		Request:       baseRequest("60000", domain.Annual),
		Jurisdictions: []string{"TX", "ZZ", "AZ"},
	})
	require.NoError(t, err)

	zz := set.AlternativeResults[0]
	assert.True(t, zz.Failed())
	assert.Equal(t, 0, zz.Rank)
	assert.Equal(t, []string{"TX", "AZ"}, set.Ranking)
	assert.Contains(t, set.Recommendations, "1 variant(s) could not be computed")
}

func TestCompare_Errors(t *testing.T) {
	ce := newTestCompareEngine(t)
	ctx := context.Background()

	_, err := ce.Compare(ctx, CompareOptions{Request: baseRequest("1", domain.Annual), Jurisdictions: []string{"TX"}})
	assert.True(t, errors.Is(err, domain.ErrInvalidInput))

	_, err = ce.Compare(ctx, CompareOptions{Mode: "sideways", Request: baseRequest("1", domain.Annual), Jurisdictions: []string{"TX", "AZ"}})
	assert.True(t, errors.Is(err, domain.ErrInvalidInput))

	_, err = ce.Compare(ctx, CompareOptions{Request: baseRequest("1", domain.Annual)})
	assert.True(t, errors.Is(err, domain.ErrInvalidInput), "no base jurisdiction")

	_, err = ce.Compare(ctx, CompareOptions{Request: baseRequest("1", domain.Annual), Jurisdictions: []string{"ZZ", "TX"}})
	assert.Error(t, err, "base must be computable")

	_, err = (&CompareEngine{}).Compare(ctx, CompareOptions{})
	assert.True(t, errors.Is(err, domain.ErrInvalidInput))

	cancelled, cancel := context.WithCancel(ctx)
	cancel()
	_, err = ce.Compare(cancelled, CompareOptions{Request: baseRequest("1", domain.Annual), Jurisdictions: []string{"TX", "AZ"}})
	assert.True(t, errors.Is(err, context.Canceled))
}

func TestParseMode(t *testing.T) {
	m, err := ParseMode("")
	require.NoError(t, err)
	assert.Equal(t, ModeForward, m)

	m, err = ParseMode("gross-up")
	require.NoError(t, err)
	assert.Equal(t, ModeReverse, m)

	_, err = ParseMode("sideways")
	assert.True(t, errors.Is(err, domain.ErrInvalidInput))
}
