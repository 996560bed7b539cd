package compare

import (
	"context"
	"errors"
	"fmt"

	"github.com/rgehrsitz/paycalc/internal/breakeven"
	"github.com/rgehrsitz/paycalc/internal/calculation"
	"github.com/rgehrsitz/paycalc/internal/domain"
	"github.com/samber/lo"
)

// CompareEngine orchestrates jurisdiction and filing-status comparisons
type CompareEngine struct {
	CalcEngine        *calculation.CalculationEngine
	Solver            *breakeven.Solver
	MetricsCalculator *MetricsCalculator
}

// NewCompareEngine creates a new comparison engine
func NewCompareEngine(calcEngine *calculation.CalculationEngine) *CompareEngine {
	return &CompareEngine{
		CalcEngine:        calcEngine,
		Solver:            breakeven.NewDefaultSolver(calcEngine),
		MetricsCalculator: NewMetricsCalculator(),
	}
}

// CompareOptions configures comparison behavior
type CompareOptions struct {
	Mode    Mode
	Request domain.CalculationRequest // amount, frequency and defaults shared by every variant

	// Jurisdictions to compare; the first is the base. Empty compares
	// Request.JurisdictionCode against every loaded jurisdiction.
	Jurisdictions []string

	// FilingStatuses, when set, compares statuses within Request's
	// jurisdiction instead of jurisdictions. The first is the base.
	FilingStatuses []domain.FilingStatus

	SolverOptions breakeven.SolverOptions
}

type variant struct {
	label string
	req   domain.CalculationRequest
}

// Compare computes every variant, ranks them and fills deltas against the base.
// A variant that fails is kept with its error; Compare itself fails only when
// the options are invalid or the base cannot be computed.
func (ce *CompareEngine) Compare(ctx context.Context, options CompareOptions) (*ComparisonSet, error) {
	if ce.CalcEngine == nil {
		return nil, domain.NewCalculationError(domain.ErrInvalidInput, "compare", "calculation engine is required")
	}
	mode := options.Mode
	if mode == "" {
		mode = ModeForward
	}
	if mode != ModeForward && mode != ModeReverse {
		return nil, domain.NewCalculationError(domain.ErrInvalidInput, "compare", "unknown comparison mode %q", mode)
	}

	variants, err := ce.buildVariants(options)
	if err != nil {
		return nil, err
	}
	if len(variants) < 2 {
		return nil, domain.NewCalculationError(domain.ErrInvalidInput, "compare", "at least two variants are required, got %d", len(variants))
	}

	var results []ComparisonResult
	if mode == ModeReverse {
		results, err = ce.solveVariants(ctx, variants, options.SolverOptions)
	} else {
		results, err = ce.calculateVariants(ctx, variants)
	}
	if err != nil {
		return nil, err
	}

	base := results[0]
	if base.Failed() {
		return nil, fmt.Errorf("failed to calculate base %s: %s", base.Label, base.Error)
	}

	ptrs := lo.Map(results, func(_ ComparisonResult, i int) *ComparisonResult { return &results[i] })
	ranking := ce.MetricsCalculator.Rank(mode, ptrs)

	base = results[0]
	alternatives := make([]ComparisonResult, 0, len(results)-1)
	for _, alt := range results[1:] {
		alternatives = append(alternatives, ce.MetricsCalculator.CalculateComparison(alt, base))
	}

	compSet := &ComparisonSet{
		Mode:               mode,
		Request:            options.Request,
		BaseLabel:          base.Label,
		BaseResult:         &base,
		AlternativeResults: alternatives,
		Ranking:            ranking,
	}
	compSet.Recommendations = GenerateRecommendations(compSet)

	ce.CalcEngine.Logger.Debugf("compare: mode=%s variants=%d ranking=%v", mode, len(results), ranking)
	return compSet, nil
}

func (ce *CompareEngine) buildVariants(options CompareOptions) ([]variant, error) {
	req := options.Request
	if req.FilingStatus == "" {
		req.FilingStatus = domain.FilingSingle
	}
	if req.Frequency == "" {
		req.Frequency = domain.Annual
	}

	if len(options.FilingStatuses) > 0 {
		statuses := lo.Uniq(options.FilingStatuses)
		return lo.Map(statuses, func(fs domain.FilingStatus, _ int) variant {
			r := req
			r.FilingStatus = fs
			return variant{label: fs.Label(), req: r}
		}), nil
	}

	codes := lo.Map(options.Jurisdictions, func(c string, _ int) string { return calculation.NormalizeJurisdictionCode(c) })
	if len(codes) == 0 {
		rs, err := ce.CalcEngine.RuleSet(req.TableVersion)
		if err != nil {
			return nil, err
		}
		base := calculation.NormalizeJurisdictionCode(req.JurisdictionCode)
		if base == "" {
			return nil, domain.NewCalculationError(domain.ErrInvalidInput, "compare", "a base jurisdiction is required")
		}
		codes = append([]string{base}, lo.Without(rs.JurisdictionCodes(), base)...)
	}
	codes = lo.Uniq(lo.Compact(codes))

	return lo.Map(codes, func(code string, _ int) variant {
		r := req
		r.JurisdictionCode = code
		return variant{label: code, req: r}
	}), nil
}

func (ce *CompareEngine) calculateVariants(ctx context.Context, variants []variant) ([]ComparisonResult, error) {
	results := make([]ComparisonResult, 0, len(variants))
	for _, v := range variants {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		result := ComparisonResult{
			Label:        v.label,
			Jurisdiction: v.req.JurisdictionCode,
			FilingStatus: v.req.FilingStatus,
			Converged:    true,
		}
		tb, err := ce.CalcEngine.Calculate(v.req)
		if err != nil {
			result.Error = err.Error()
			results = append(results, result)
			continue
		}
		ce.fill(&result, v.req, *tb)
		results = append(results, result)
	}
	return results, nil
}

func (ce *CompareEngine) solveVariants(ctx context.Context, variants []variant, opts breakeven.SolverOptions) ([]ComparisonResult, error) {
	solver := ce.Solver
	if solver == nil {
		solver = breakeven.NewDefaultSolver(ce.CalcEngine)
	}
	reqs := lo.Map(variants, func(v variant, _ int) breakeven.SolveRequest {
		return breakeven.SolveRequest{CalculationRequest: v.req, Options: opts}
	})

	outcomes, err := solver.SolveMany(ctx, reqs)
	if err != nil && (errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded)) {
		return nil, err
	}

	results := make([]ComparisonResult, len(variants))
	for i, v := range variants {
		results[i] = ComparisonResult{
			Label:        v.label,
			Jurisdiction: v.req.JurisdictionCode,
			FilingStatus: v.req.FilingStatus,
		}
		if i >= len(outcomes) || outcomes[i].Result == nil {
			results[i].Error = "not solved"
			if i < len(outcomes) && outcomes[i].Err != nil {
				results[i].Error = outcomes[i].Err.Error()
			}
			continue
		}
		res := outcomes[i].Result
		results[i].Converged = res.Converged
		// The marginal rate is taken at the solved gross, not at the target.
		grossReq := res.Request
		grossReq.Amount = res.GrossIncome
		ce.fill(&results[i], grossReq, res.Breakdown)
	}
	return results, nil
}

func (ce *CompareEngine) fill(result *ComparisonResult, grossReq domain.CalculationRequest, tb domain.TaxBreakdown) {
	result.Breakdown = &tb
	result.Jurisdiction = tb.Jurisdiction
	result.GrossIncome = tb.GrossIncome
	result.NetIncome = tb.NetIncome
	result.TotalTax = tb.TotalTax
	result.EffectiveRate = tb.EffectiveRate

	if rs, err := ce.CalcEngine.RuleSet(grossReq.TableVersion); err == nil {
		if j, err := rs.Jurisdiction(grossReq.JurisdictionCode); err == nil {
			result.PolicyKind = j.Policy.Kind()
		}
	}
	if rate, err := ce.CalcEngine.MarginalRate(grossReq); err == nil {
		result.MarginalRate = rate
	} else {
		ce.CalcEngine.Logger.Warnf("compare: marginal rate for %s: %v", result.Label, err)
	}
}
