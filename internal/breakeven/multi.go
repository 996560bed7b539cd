package breakeven

import (
	"context"
	"errors"
	"fmt"

	"github.com/rgehrsitz/paycalc/internal/domain"
)

// SolveOutcome pairs a request with its result or error.
type SolveOutcome struct {
	Request domain.CalculationRequest
	Result  *SolveResult
	Err     error
}

// SolveMany runs SolveForGross for each request in order. A request that
// fails does not stop the others; non-converged results are kept with their
// warning in Err.
func (s *Solver) SolveMany(ctx context.Context, reqs []SolveRequest) ([]SolveOutcome, error) {
	if len(reqs) == 0 {
		return nil, &BreakEvenError{
			Operation: "solve_many",
			Message:   "no requests provided",
			Cause:     domain.ErrInvalidInput,
		}
	}

	outcomes := make([]SolveOutcome, 0, len(reqs))
	failures := 0
	for _, req := range reqs {
		if err := ctx.Err(); err != nil {
			return outcomes, err
		}
		result, err := s.SolveForGross(ctx, req)
		if result == nil {
			failures++
		}
		outcomes = append(outcomes, SolveOutcome{Request: req.CalculationRequest, Result: result, Err: err})
	}

	if failures == len(reqs) {
		return outcomes, &BreakEvenError{
			Operation: "solve_many",
			Message:   fmt.Sprintf("all %d solves failed", failures),
			Cause:     errors.Join(collectErrors(outcomes)...),
		}
	}
	return outcomes, nil
}

func collectErrors(outcomes []SolveOutcome) []error {
	errs := make([]error, 0, len(outcomes))
	for _, o := range outcomes {
		if o.Err != nil {
			errs = append(errs, o.Err)
		}
	}
	return errs
}
