package main

import (
	"fmt"
	"strings"

	"github.com/rgehrsitz/paycalc/internal/compare"
	"github.com/rgehrsitz/paycalc/internal/domain"
	"github.com/spf13/cobra"
)

func compareCmd(opts *globalOptions) *cobra.Command {
	var (
		rf             requestFlags
		mode           string
		with           []string
		statuses       []string
		format         string
		omitBreakdowns bool
	)

	cmd := &cobra.Command{
		Use:   "compare [amount]",
		Short: "Compare net income or required gross across jurisdictions or filing statuses",
		Long: `Compare a base jurisdiction against alternatives at the same gross income
(forward mode) or at the same target net income (reverse mode).

The jurisdiction given with -j is the base. Without --with or --statuses it is
compared against every loaded jurisdiction.`,
		Example: `  paycalc compare 85000 -j CA --with TX,NY,AZ
  paycalc compare 4000 -p monthly -j NY --with TX --mode reverse
  paycalc compare 120000 -j VA --statuses single,married_joint --format csv`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			m, err := compare.ParseMode(strings.ToLower(mode))
			if err != nil {
				return err
			}
			req, err := rf.build(cmd, args)
			if err != nil {
				return err
			}

			options := compare.CompareOptions{Mode: m, Request: *req}
			if len(statuses) > 0 {
				options.FilingStatuses = append(options.FilingStatuses, req.FilingStatus)
				for _, s := range statuses {
					fs, err := domain.ParseFilingStatus(s)
					if err != nil {
						return err
					}
					options.FilingStatuses = append(options.FilingStatuses, fs)
				}
			} else if len(with) > 0 {
				options.Jurisdictions = append([]string{req.JurisdictionCode}, with...)
			}

			engine, err := opts.engine()
			if err != nil {
				return err
			}
			compSet, err := compare.NewCompareEngine(engine).Compare(cmd.Context(), options)
			if err != nil {
				return fmt.Errorf("comparison failed: %w", err)
			}

			out := cmd.OutOrStdout()
			switch strings.ToLower(format) {
			case "csv":
				data, err := (&compare.CSVFormatter{}).Format(compSet)
				if err != nil {
					return fmt.Errorf("failed to format CSV: %w", err)
				}
				fmt.Fprint(out, data)
			case "json":
				data, err := (&compare.JSONFormatter{Pretty: true, OmitBreakdowns: omitBreakdowns}).Format(compSet)
				if err != nil {
					return fmt.Errorf("failed to format JSON: %w", err)
				}
				fmt.Fprintln(out, data)
			case "compact":
				fmt.Fprintln(out, (&compare.TableFormatter{}).FormatCompact(compSet))
			case "table", "console", "":
				fmt.Fprint(out, (&compare.TableFormatter{}).Format(compSet))
			default:
				return fmt.Errorf("unknown output format: %s (valid: table, csv, json, compact)", format)
			}
			return nil
		},
	}

	rf.register(cmd)
	cmd.Flags().StringVar(&mode, "mode", string(compare.ModeForward), "forward (same gross) or reverse (same target net)")
	cmd.Flags().StringSliceVar(&with, "with", nil, "Comma-separated jurisdictions to compare against the base")
	cmd.Flags().StringSliceVar(&statuses, "statuses", nil, "Comma-separated filing statuses to compare against --status")
	cmd.Flags().StringVarP(&format, "format", "f", "table", "Output format (table, csv, json, compact)")
	cmd.Flags().BoolVar(&omitBreakdowns, "omit-breakdowns", false, "Leave per-variant breakdowns out of JSON output")
	return cmd
}
