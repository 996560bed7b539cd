package breakeven

import (
	"context"
	"fmt"

	"github.com/rgehrsitz/paycalc/internal/calculation"
	"github.com/rgehrsitz/paycalc/internal/domain"
	"github.com/shopspring/decimal"
)

// NetIncomeFunc maps annual gross income to annual net income. It must be
// non-decreasing and continuous for the bisection to be valid.
type NetIncomeFunc func(annualGross decimal.Decimal) (decimal.Decimal, error)

// Bisection is the raw outcome of Bisect, in annual dollars.
type Bisection struct {
	Gross      decimal.Decimal
	Net        decimal.Decimal
	Residual   decimal.Decimal // Net - target
	Iterations int
	Widenings  int
	Converged  bool
}

var two = decimal.NewFromInt(2)

// Bisect searches [target, target*UpperBoundFactor] for the gross income whose
// net is within Tolerance of targetAnnualNet. The upper bound is doubled while
// it still falls short of the target. When MaxIterations runs out, the closest
// gross seen is returned together with an error wrapping
// domain.ErrSolverDidNotConverge.
func Bisect(ctx context.Context, targetAnnualNet decimal.Decimal, f NetIncomeFunc, options SolverOptions) (*Bisection, error) {
	opts := options.withDefaults()
	if err := opts.Validate(); err != nil {
		return nil, err
	}
	if targetAnnualNet.IsNegative() {
		return nil, &BreakEvenError{
			Operation: "bisect",
			Message:   fmt.Sprintf("target net income cannot be negative: %s", targetAnnualNet.String()),
			Cause:     domain.ErrInvalidInput,
		}
	}

	low := targetAnnualNet
	high := targetAnnualNet.Mul(opts.UpperBoundFactor)
	if high.LessThan(opts.Tolerance) {
		high = opts.Tolerance
	}

	result := &Bisection{}

	// Widen the upper bound until it brackets the target
	netHigh, err := f(high)
	if err != nil {
		return nil, &BreakEvenError{Operation: "bisect", Message: "failed to evaluate upper bound", Cause: err}
	}
	for netHigh.LessThan(targetAnnualNet) {
		if result.Widenings >= opts.MaxWidenings {
			return nil, &BreakEvenError{
				Operation: "bisect",
				Message:   fmt.Sprintf("net income stays below target %s even at gross %s", targetAnnualNet.StringFixed(2), high.StringFixed(2)),
				Cause:     domain.ErrSolverDidNotConverge,
			}
		}
		low = high
		high = high.Mul(two)
		result.Widenings++
		if netHigh, err = f(high); err != nil {
			return nil, &BreakEvenError{Operation: "bisect", Message: "failed to evaluate upper bound", Cause: err}
		}
	}

	var bestDiff decimal.Decimal
	haveBest := false

	for result.Iterations < opts.MaxIterations {
		result.Iterations++

		// Check context cancellation
		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		default:
		}

		mid := low.Add(high).Div(two)
		net, err := f(mid)
		if err != nil {
			return nil, &BreakEvenError{Operation: "bisect", Message: "failed to evaluate net income", Cause: err}
		}
		diff := net.Sub(targetAnnualNet)

		if !haveBest || diff.Abs().LessThan(bestDiff) {
			haveBest = true
			bestDiff = diff.Abs()
			result.Gross = mid
			result.Net = net
			result.Residual = diff
		}

		if diff.Abs().LessThan(opts.Tolerance) {
			result.Converged = true
			return result, nil
		}

		if diff.IsNegative() {
			// Need more gross
			low = mid
		} else {
			high = mid
		}
	}

	return result, &BreakEvenError{
		Operation: "bisect",
		Message: fmt.Sprintf("best gross %s misses target by %s after %d iterations",
			result.Gross.StringFixed(2), result.Residual.Abs().StringFixed(2), result.Iterations),
		Cause: domain.ErrSolverDidNotConverge,
	}
}

// GrossUp inverts the net income aggregator: it returns the per-period gross
// income whose per-period net matches targetNet, plus the breakdown at that
// gross. params.AnnualGross is ignored.
func GrossUp(ctx context.Context, targetNet decimal.Decimal, frequency domain.PayFrequency, params calculation.NetIncomeParams, options SolverOptions) (decimal.Decimal, domain.TaxBreakdown, *Bisection, error) {
	targetAnnual, err := calculation.ToAnnual(targetNet, frequency)
	if err != nil {
		return decimal.Zero, domain.TaxBreakdown{}, nil, err
	}

	f := func(annualGross decimal.Decimal) (decimal.Decimal, error) {
		p := params
		p.AnnualGross = annualGross
		tb, err := calculation.CalculateNetIncome(p)
		if err != nil {
			return decimal.Zero, err
		}
		return tb.NetIncome, nil
	}

	bis, solveErr := Bisect(ctx, targetAnnual, f, options)
	if bis == nil {
		return decimal.Zero, domain.TaxBreakdown{}, nil, solveErr
	}

	p := params
	p.AnnualGross = bis.Gross
	annual, err := calculation.CalculateNetIncome(p)
	if err != nil {
		return decimal.Zero, domain.TaxBreakdown{}, nil, err
	}
	periodic, err := calculation.ToPeriodicBreakdown(annual, frequency)
	if err != nil {
		return decimal.Zero, domain.TaxBreakdown{}, nil, err
	}
	return periodic.GrossIncome, periodic, bis, solveErr
}

// Solver resolves requests against a calculation engine and runs the
// gross-up search.
type Solver struct {
	CalcEngine *calculation.CalculationEngine
	Options    SolverOptions
}

// NewSolver creates a new gross-up solver
func NewSolver(calcEngine *calculation.CalculationEngine, options SolverOptions) *Solver {
	return &Solver{
		CalcEngine: calcEngine,
		Options:    options,
	}
}

// NewDefaultSolver creates a solver with default options
func NewDefaultSolver(calcEngine *calculation.CalculationEngine) *Solver {
	return NewSolver(calcEngine, DefaultSolverOptions())
}

// mergeOptions lets per-request options override the solver's options.
func (s *Solver) mergeOptions(req SolverOptions) SolverOptions {
	opts := s.Options
	if !req.Tolerance.IsZero() {
		opts.Tolerance = req.Tolerance
	}
	if req.MaxIterations != 0 {
		opts.MaxIterations = req.MaxIterations
	}
	if !req.UpperBoundFactor.IsZero() {
		opts.UpperBoundFactor = req.UpperBoundFactor
	}
	if req.MaxWidenings != 0 {
		opts.MaxWidenings = req.MaxWidenings
	}
	return opts
}

// SolveForGross finds the per-period gross income whose net matches
// req.Amount. If the iteration budget runs out, the best result found is
// returned along with an error wrapping domain.ErrSolverDidNotConverge.
func (s *Solver) SolveForGross(ctx context.Context, req SolveRequest) (*SolveResult, error) {
	if s.CalcEngine == nil {
		return nil, &BreakEvenError{Operation: "solve_for_gross", Message: "calculation engine is required", Cause: domain.ErrInvalidInput}
	}

	scenario, err := s.CalcEngine.Resolve(req.CalculationRequest)
	if err != nil {
		return nil, &BreakEvenError{Operation: "solve_for_gross", Message: "invalid request", Cause: err}
	}

	opts := s.mergeOptions(req.Options)
	gross, breakdown, bis, solveErr := GrossUp(ctx, scenario.Amount, scenario.Frequency, scenario.Params(decimal.Zero), opts)
	if bis == nil {
		return nil, solveErr
	}
	breakdown.Jurisdiction = scenario.Jurisdiction.Code
	breakdown.TableVersion = scenario.RuleSet.Version

	result := &SolveResult{
		Request:           req.CalculationRequest,
		Converged:         bis.Converged,
		Iterations:        bis.Iterations,
		Widenings:         bis.Widenings,
		GrossIncome:       gross,
		AnnualGrossIncome: bis.Gross,
		Residual:          bis.Residual,
		Breakdown:         breakdown,
	}
	result.Request.JurisdictionCode = scenario.Jurisdiction.Code
	result.Request.TableVersion = scenario.RuleSet.Version

	if bis.Converged {
		result.ConvergenceInfo = fmt.Sprintf("Converged to target net income within $%s in %d iterations", opts.Tolerance.String(), bis.Iterations)
		s.CalcEngine.Logger.Debugf("solve_for_gross: target=%s %s gross=%s iterations=%d widenings=%d",
			scenario.Amount.StringFixed(2), scenario.Frequency, gross.StringFixed(2), bis.Iterations, bis.Widenings)
		return result, nil
	}

	result.ConvergenceInfo = fmt.Sprintf("Max iterations (%d) reached; closest net is off by $%s per year", opts.MaxIterations, bis.Residual.Abs().StringFixed(2))
	s.CalcEngine.Logger.Warnf("solve_for_gross: %s", result.ConvergenceInfo)
	return result, solveErr
}
