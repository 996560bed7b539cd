package calculation

import (
	"github.com/rgehrsitz/paycalc/internal/domain"
	"github.com/shopspring/decimal"
)

// TaxBracket is a marginal rate that applies from Threshold up to the next
// bracket's threshold.
type TaxBracket struct {
	Threshold decimal.Decimal
	Rate      decimal.Decimal
}

// BracketTable is an immutable, validated progressive rate schedule. The
// first threshold is 0, thresholds strictly increase and rates are
// non-negative. The last bracket has no upper bound.
type BracketTable struct {
	brackets []TaxBracket
}

// NewBracketTable validates brackets in the order given and copies them.
// Unsorted input is rejected rather than sorted.
func NewBracketTable(brackets []TaxBracket) (*BracketTable, error) {
	if len(brackets) == 0 {
		return nil, domain.NewCalculationError(domain.ErrInvalidBracketTable, "new_bracket_table", "at least one bracket is required")
	}
	if !brackets[0].Threshold.IsZero() {
		return nil, domain.NewCalculationError(domain.ErrInvalidBracketTable, "new_bracket_table",
			"first threshold must be 0, got %s", brackets[0].Threshold.String())
	}
	for i, b := range brackets {
		if b.Rate.IsNegative() {
			return nil, domain.NewCalculationError(domain.ErrInvalidBracketTable, "new_bracket_table",
				"bracket %d has negative rate %s", i, b.Rate.String())
		}
		if i > 0 && !b.Threshold.GreaterThan(brackets[i-1].Threshold) {
			return nil, domain.NewCalculationError(domain.ErrInvalidBracketTable, "new_bracket_table",
				"bracket %d threshold %s does not exceed previous threshold %s",
				i, b.Threshold.String(), brackets[i-1].Threshold.String())
		}
	}
	copied := make([]TaxBracket, len(brackets))
	copy(copied, brackets)
	return &BracketTable{brackets: copied}, nil
}

// NewBracketTableFromConfig builds a table from rules-file rows.
func NewBracketTableFromConfig(rows []domain.BracketConfig) (*BracketTable, error) {
	brackets := make([]TaxBracket, 0, len(rows))
	for _, r := range rows {
		brackets = append(brackets, TaxBracket{Threshold: r.Threshold, Rate: r.Rate})
	}
	return NewBracketTable(brackets)
}

// Brackets returns a copy of the table rows.
func (bt *BracketTable) Brackets() []TaxBracket {
	out := make([]TaxBracket, len(bt.brackets))
	copy(out, bt.brackets)
	return out
}

// Evaluate returns the tax owed on annual taxable income. Zero or negative
// income owes nothing.
func (bt *BracketTable) Evaluate(taxableIncome decimal.Decimal) decimal.Decimal {
	if taxableIncome.LessThanOrEqual(decimal.Zero) {
		return decimal.Zero
	}

	totalTax := decimal.Zero
	for i, bracket := range bt.brackets {
		if taxableIncome.LessThanOrEqual(bracket.Threshold) {
			break
		}
		upper := taxableIncome
		if i+1 < len(bt.brackets) {
			upper = decimal.Min(taxableIncome, bt.brackets[i+1].Threshold)
		}
		incomeInBracket := upper.Sub(bracket.Threshold)
		totalTax = totalTax.Add(incomeInBracket.Mul(bracket.Rate))
	}
	return totalTax
}

// MarginalRate returns the rate applied to the next dollar above taxableIncome.
func (bt *BracketTable) MarginalRate(taxableIncome decimal.Decimal) decimal.Decimal {
	if taxableIncome.IsNegative() {
		return bt.brackets[0].Rate
	}
	rate := bt.brackets[0].Rate
	for _, bracket := range bt.brackets {
		if taxableIncome.LessThan(bracket.Threshold) {
			break
		}
		rate = bracket.Rate
	}
	return rate
}

// Thresholds lists the bracket boundaries above zero.
func (bt *BracketTable) Thresholds() []decimal.Decimal {
	out := make([]decimal.Decimal, 0, len(bt.brackets))
	for _, b := range bt.brackets[1:] {
		out = append(out, b.Threshold)
	}
	return out
}
