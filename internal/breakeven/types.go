package breakeven

import (
	"github.com/rgehrsitz/paycalc/internal/domain"
	"github.com/shopspring/decimal"
)

// SolverOptions configures the bisection search
type SolverOptions struct {
	Tolerance        decimal.Decimal // Allowed |net(gross) - target| in annual dollars
	MaxIterations    int             // Maximum bisection iterations
	UpperBoundFactor decimal.Decimal // Initial high bound as a multiple of the annual target
	MaxWidenings     int             // How many times the high bound may be doubled
}

// DefaultSolverOptions returns default solver configuration
func DefaultSolverOptions() SolverOptions {
	return SolverOptions{
		Tolerance:        decimal.NewFromInt(1), // $1 tolerance
		MaxIterations:    50,
		UpperBoundFactor: decimal.NewFromFloat(2.5),
		MaxWidenings:     64,
	}
}

// withDefaults fills zero-valued fields from DefaultSolverOptions.
func (o SolverOptions) withDefaults() SolverOptions {
	d := DefaultSolverOptions()
	if o.Tolerance.IsZero() {
		o.Tolerance = d.Tolerance
	}
	if o.MaxIterations == 0 {
		o.MaxIterations = d.MaxIterations
	}
	if o.UpperBoundFactor.IsZero() {
		o.UpperBoundFactor = d.UpperBoundFactor
	}
	if o.MaxWidenings == 0 {
		o.MaxWidenings = d.MaxWidenings
	}
	return o
}

// Validate checks option values after defaults are applied
func (o SolverOptions) Validate() error {
	if o.Tolerance.IsNegative() {
		return &BreakEvenError{
			Operation: "validate_options",
			Message:   "tolerance must be positive",
			Cause:     domain.ErrInvalidInput,
		}
	}
	if o.MaxIterations < 0 {
		return &BreakEvenError{
			Operation: "validate_options",
			Message:   "max iterations must be positive",
			Cause:     domain.ErrInvalidInput,
		}
	}
	if o.UpperBoundFactor.LessThan(decimal.NewFromInt(1)) {
		return &BreakEvenError{
			Operation: "validate_options",
			Message:   "upper bound factor must be at least 1",
			Cause:     domain.ErrInvalidInput,
		}
	}
	return nil
}

// SolveRequest asks for the gross income that yields TargetNet per pay
// period under the given filing status, jurisdiction and table version.
type SolveRequest struct {
	domain.CalculationRequest
	Options SolverOptions `json:"-"`
}

// SolveResult contains the results of a reverse solve. Money fields are in
// the request's pay frequency unless named Annual.
type SolveResult struct {
	Request           domain.CalculationRequest `json:"request"`
	Converged         bool                      `json:"converged"`
	Iterations        int                       `json:"iterations"`
	Widenings         int                       `json:"widenings"`
	ConvergenceInfo   string                    `json:"convergenceInfo"`
	GrossIncome       decimal.Decimal           `json:"grossIncome"`
	AnnualGrossIncome decimal.Decimal           `json:"annualGrossIncome"`
	Residual          decimal.Decimal           `json:"residual"` // annual net(gross) - annual target
	Breakdown         domain.TaxBreakdown       `json:"breakdown"`
}

// BreakEvenError represents errors from the gross-up solver
type BreakEvenError struct {
	Operation string
	Message   string
	Cause     error
}

func (e *BreakEvenError) Error() string {
	if e.Cause != nil {
		return e.Operation + ": " + e.Message + ": " + e.Cause.Error()
	}
	return e.Operation + ": " + e.Message
}

func (e *BreakEvenError) Unwrap() error {
	return e.Cause
}
