// Package tuimsg defines the messages exchanged between the TUI root model
// and its scenes.
package tuimsg

import (
	"github.com/rgehrsitz/paycalc/internal/breakeven"
	"github.com/rgehrsitz/paycalc/internal/compare"
	"github.com/rgehrsitz/paycalc/internal/domain"
	"github.com/shopspring/decimal"
)

// CalculateRequestedMsg asks the root model to run a calculation. Reverse
// treats Request.Amount as the target net income.
type CalculateRequestedMsg struct {
	Request domain.CalculationRequest
	Reverse bool
}

// CalculationCompleteMsg carries the outcome of a CalculateRequestedMsg.
// Solve is set only for reverse calculations; it may be set together with
// Err when the solver stopped short of the tolerance.
type CalculationCompleteMsg struct {
	Request      domain.CalculationRequest
	Breakdown    *domain.TaxBreakdown
	Solve        *breakeven.SolveResult
	MarginalRate decimal.Decimal
	Err          error
}

// ComparisonRequestedMsg asks the root model to compare Request across every
// loaded jurisdiction, with Request's jurisdiction as the base.
type ComparisonRequestedMsg struct {
	Request domain.CalculationRequest
	Reverse bool
}

// ComparisonCompleteMsg carries the outcome of a ComparisonRequestedMsg.
type ComparisonCompleteMsg struct {
	Set *compare.ComparisonSet
	Err error
}

// ErrorMsg displays an error to the user
type ErrorMsg struct {
	Err error
}
