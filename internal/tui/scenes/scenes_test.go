package scenes

import (
	"errors"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/rgehrsitz/paycalc/internal/compare"
	"github.com/rgehrsitz/paycalc/internal/domain"
	"github.com/rgehrsitz/paycalc/internal/tui/tuimsg"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func d(s string) decimal.Decimal { return decimal.RequireFromString(s) }

func press(kt tea.KeyType) tea.KeyMsg { return tea.KeyMsg{Type: kt} }

func TestCalculatorModel_Defaults(t *testing.T) {
	m := NewCalculatorModel([]string{"AZ", "CA", "TX"}, "TX")
	m.SetAmount("$2,500")

	req, err := m.Request()
	require.NoError(t, err)
	assert.True(t, d("2500").Equal(req.Amount))
	assert.Equal(t, domain.Annual, req.Frequency)
	assert.Equal(t, domain.FilingSingle, req.FilingStatus)
	assert.Equal(t, "TX", req.JurisdictionCode)
	assert.Equal(t, FieldAmount, m.Focus())
	assert.False(t, m.Reverse())

	unknownDefault := NewCalculatorModel([]string{"AZ", "CA"}, "ZZ")
	unknownDefault.SetAmount("1")
	req, err = unknownDefault.Request()
	require.NoError(t, err)
	assert.Equal(t, "AZ", req.JurisdictionCode)
}

func TestCalculatorModel_FocusAndCycling(t *testing.T) {
	m := NewCalculatorModel([]string{"AZ", "CA", "TX"}, "AZ")
	m.SetAmount("1000")

	m, _ = m.Update(press(tea.KeyShiftTab))
	assert.Equal(t, FieldMode, m.Focus(), "focus wraps backwards")
	m, _ = m.Update(press(tea.KeyTab))
	assert.Equal(t, FieldAmount, m.Focus())

	m, _ = m.Update(press(tea.KeyDown))
	m, _ = m.Update(press(tea.KeyRight))
	assert.Equal(t, FieldFrequency, m.Focus())
	req, _ := m.Request()
	assert.Equal(t, domain.Weekly, req.Frequency, "annual wraps to weekly")

	m, _ = m.Update(press(tea.KeyDown))
	m, _ = m.Update(press(tea.KeyLeft))
	req, _ = m.Request()
	assert.Equal(t, domain.FilingHeadOfHousehold, req.FilingStatus)

	m, _ = m.Update(press(tea.KeyDown))
	m, _ = m.Update(press(tea.KeyLeft))
	req, _ = m.Request()
	assert.Equal(t, "TX", req.JurisdictionCode)

	m, _ = m.Update(press(tea.KeyDown))
	m, _ = m.Update(press(tea.KeyRight))
	assert.True(t, m.Reverse())
	assert.Contains(t, m.View(), "Target net")
	m, _ = m.Update(press(tea.KeyLeft))
	assert.False(t, m.Reverse())
}

func TestCalculatorModel_Submit(t *testing.T) {
	m := NewCalculatorModel([]string{"TX"}, "TX")
	m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("60000")})

	_, cmd := m.Update(press(tea.KeyEnter))
	require.NotNil(t, cmd)
	msg, ok := cmd().(tuimsg.CalculateRequestedMsg)
	require.True(t, ok)
	assert.True(t, d("60000").Equal(msg.Request.Amount))
	assert.False(t, msg.Reverse)

	m.SetAmount("")
	_, cmd = m.Update(press(tea.KeyEnter))
	assert.Nil(t, cmd)
	assert.True(t, errors.Is(m.Err(), domain.ErrInvalidInput))
	assert.Contains(t, m.View(), "Error:")
}

func TestCalculatorModel_SetResult(t *testing.T) {
	m := NewCalculatorModel([]string{"TX"}, "TX")
	tb := &domain.TaxBreakdown{
		Frequency:     domain.Annual,
		GrossIncome:   d("60000"),
		TotalTax:      d("9751.5"),
		NetIncome:     d("50248.5"),
		EffectiveRate: d("0.162525"),
	}
	m.SetResult(tuimsg.CalculationCompleteMsg{Breakdown: tb, MarginalRate: d("0.1965")})
	require.NotNil(t, m.Result())
	view := m.View()
	assert.Contains(t, view, "$50,248.50")
	assert.Contains(t, view, "16.25%")

	m.SetResult(tuimsg.CalculationCompleteMsg{Err: errors.New("nope")})
	assert.Nil(t, m.Result())
	assert.EqualError(t, m.Err(), "nope")
}

func testComparisonSet() *compare.ComparisonSet {
	base := compare.ComparisonResult{Label: "CA", Rank: 3, GrossIncome: d("60000"), NetIncome: d("47000"), EffectiveRate: d("0.2167")}
	return &compare.ComparisonSet{
		Mode:       compare.ModeForward,
		BaseLabel:  "CA",
		BaseResult: &base,
		AlternativeResults: []compare.ComparisonResult{
			{Label: "ZZ", Error: "unknown"},
			{Label: "AZ", Rank: 2, PolicyKind: "flat", GrossIncome: d("60000"), NetIncome: d("48748.5"), EffectiveRate: d("0.1875")},
			{Label: "TX", Rank: 1, PolicyKind: "exempt", GrossIncome: d("60000"), NetIncome: d("50248.5"), EffectiveRate: d("0.1625")},
		},
		Ranking: []string{"TX", "AZ", "CA"},
	}
}

func TestCompareModel_RequestLifecycle(t *testing.T) {
	m := NewCompareModel()
	assert.Contains(t, m.View(), "calculator first")

	_, cmd := m.Update(press(tea.KeyEnter))
	assert.Nil(t, cmd, "nothing to compare yet")

	req := domain.CalculationRequest{Amount: d("60000"), Frequency: domain.Annual, FilingStatus: domain.FilingSingle, JurisdictionCode: "CA"}
	m.SetRequest(req, false)
	assert.Contains(t, m.View(), "Press enter to run")

	_, cmd = m.Update(press(tea.KeyEnter))
	require.NotNil(t, cmd)
	assert.True(t, m.Comparing())
	msg, ok := cmd().(tuimsg.ComparisonRequestedMsg)
	require.True(t, ok)
	assert.Equal(t, "CA", msg.Request.JurisdictionCode)

	_, cmd = m.Update(press(tea.KeyEnter))
	assert.Nil(t, cmd, "no second request while one is in flight")

	m.SetResults(tuimsg.ComparisonCompleteMsg{Set: testComparisonSet()})
	assert.False(t, m.Comparing())

	// The same request keeps results; a different one clears them.
	m.SetRequest(req, false)
	assert.Len(t, m.Rows(), 4)
	req.Amount = d("70000")
	m.SetRequest(req, false)
	assert.Empty(t, m.Rows())
}

func TestCompareModel_Results(t *testing.T) {
	m := NewCompareModel()
	m.SetSize(100, 30)
	m.SetRequest(domain.CalculationRequest{Amount: d("60000"), Frequency: domain.Annual, JurisdictionCode: "CA"}, false)
	m.SetResults(tuimsg.ComparisonCompleteMsg{Set: testComparisonSet()})

	labels := []string{}
	for _, r := range m.Rows() {
		labels = append(labels, r.Label)
	}
	assert.Equal(t, []string{"TX", "AZ", "CA", "ZZ"}, labels)

	view := m.View()
	assert.Contains(t, view, "+$3,248.50")
	assert.Contains(t, view, "base")
	assert.Contains(t, view, "error: unknown")
	assert.Contains(t, view, "rank 3 of 3")

	m, _ = m.Update(press(tea.KeyUp))
	assert.Equal(t, 0, m.Cursor())
	for i := 0; i < 10; i++ {
		m, _ = m.Update(press(tea.KeyDown))
	}
	assert.Equal(t, 3, m.Cursor())

	m.SetResults(tuimsg.ComparisonCompleteMsg{Err: errors.New("failed")})
	assert.Contains(t, m.View(), "Error: failed")
}
