package main

import (
	"errors"
	"fmt"
	"strings"

	"github.com/rgehrsitz/paycalc/internal/breakeven"
	"github.com/rgehrsitz/paycalc/internal/domain"
	"github.com/samber/lo"
	"github.com/spf13/cobra"
)

func solveCmd(opts *globalOptions) *cobra.Command {
	var (
		rf            requestFlags
		format        string
		tolerance     string
		maxIterations int
		eachStatus    bool
	)

	cmd := &cobra.Command{
		Use:     "solve [target-net]",
		Aliases: []string{"gross-up"},
		Short:   "Find the gross income that yields a target net income",
		Example: `  paycalc solve 5000 -p monthly -j TX
  paycalc solve 1800 -p biweekly -j NY --each-status`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			format = strings.ToLower(format)
			if format != "table" && format != "console" && format != "json" {
				return fmt.Errorf("unknown output format %q (valid: table, json)", format)
			}
			tol, err := parseDecimalFlag("tolerance", tolerance)
			if err != nil {
				return err
			}
			req, err := rf.build(cmd, args)
			if err != nil {
				return err
			}
			engine, err := opts.engine()
			if err != nil {
				return err
			}

			solver := breakeven.NewDefaultSolver(engine)
			solverOpts := breakeven.SolverOptions{Tolerance: tol, MaxIterations: maxIterations}
			out := cmd.OutOrStdout()

			if eachStatus {
				reqs := lo.Map(domain.FilingStatuses, func(fs domain.FilingStatus, _ int) breakeven.SolveRequest {
					r := *req
					r.FilingStatus = fs
					return breakeven.SolveRequest{CalculationRequest: r, Options: solverOpts}
				})
				outcomes, err := solver.SolveMany(cmd.Context(), reqs)
				if format == "json" {
					data, jerr := (&breakeven.JSONFormatter{Pretty: true}).FormatMany(outcomes)
					if jerr != nil {
						return jerr
					}
					fmt.Fprintln(out, data)
				} else {
					fmt.Fprint(out, (&breakeven.TableFormatter{}).FormatMany(outcomes))
				}
				return err
			}

			result, solveErr := solver.SolveForGross(cmd.Context(), breakeven.SolveRequest{CalculationRequest: *req, Options: solverOpts})
			if result == nil {
				return solveErr
			}
			if format == "json" {
				data, err := (&breakeven.JSONFormatter{Pretty: true}).Format(result)
				if err != nil {
					return err
				}
				fmt.Fprintln(out, data)
			} else {
				fmt.Fprint(out, (&breakeven.TableFormatter{}).Format(result))
			}
			if errors.Is(solveErr, domain.ErrSolverDidNotConverge) {
				return fmt.Errorf("showing closest result: %w", solveErr)
			}
			return solveErr
		},
	}

	rf.register(cmd)
	cmd.Flags().StringVarP(&format, "format", "f", "table", "Output format (table, json)")
	cmd.Flags().StringVar(&tolerance, "tolerance", "", "Allowed annual net income error in dollars (default 1)")
	cmd.Flags().IntVar(&maxIterations, "max-iterations", 0, "Bisection iteration budget (default 50)")
	cmd.Flags().BoolVar(&eachStatus, "each-status", false, "Solve for every filing status")
	return cmd
}
