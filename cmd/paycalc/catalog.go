package main

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/rgehrsitz/paycalc/internal/calculation"
	"github.com/rgehrsitz/paycalc/internal/config"
	"github.com/rgehrsitz/paycalc/internal/output"
	"github.com/samber/lo"
	"github.com/spf13/cobra"
)

func marginalCmd(opts *globalOptions) *cobra.Command {
	var rf requestFlags

	cmd := &cobra.Command{
		Use:   "marginal [gross-amount]",
		Short: "Show the combined marginal tax rate at a gross income",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			req, err := rf.build(cmd, args)
			if err != nil {
				return err
			}
			engine, err := opts.engine()
			if err != nil {
				return err
			}
			rate, err := engine.MarginalRate(*req)
			if err != nil {
				return err
			}
			tb, err := engine.Calculate(*req)
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "Gross Income:    %s %s (%s, %s)\n", output.FormatCurrency(req.Amount), req.Frequency, tb.Jurisdiction, req.FilingStatus.Label())
			fmt.Fprintf(out, "Marginal Rate:   %s\n", output.FormatRate(rate))
			fmt.Fprintf(out, "Effective Rate:  %s\n", output.FormatRate(tb.EffectiveRate))
			return nil
		},
	}
	rf.register(cmd)
	return cmd
}

type jurisdictionEntry struct {
	Code string `json:"code"`
	Name string `json:"name"`
	Kind string `json:"kind"`
}

func jurisdictionsCmd(opts *globalOptions) *cobra.Command {
	var (
		tableVersion string
		format       string
	)

	cmd := &cobra.Command{
		Use:   "jurisdictions",
		Short: "List the jurisdictions defined in a tax table version",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			engine, err := opts.engine()
			if err != nil {
				return err
			}
			rs, err := engine.RuleSet(tableVersion)
			if err != nil {
				return err
			}
			entries := lo.Map(rs.Jurisdictions(), func(j calculation.Jurisdiction, _ int) jurisdictionEntry {
				return jurisdictionEntry{Code: j.Code, Name: j.Name, Kind: j.Policy.Kind()}
			})

			out := cmd.OutOrStdout()
			switch strings.ToLower(format) {
			case "json":
				data, err := json.MarshalIndent(entries, "", "  ")
				if err != nil {
					return err
				}
				fmt.Fprintln(out, string(data))
			case "table", "console", "":
				fmt.Fprintf(out, "Table version %s (tax year %d)\n", rs.Version, rs.TaxYear)
				fmt.Fprintf(out, "%-6s %-20s %s\n", "Code", "Name", "Policy")
				fmt.Fprintln(out, strings.Repeat("-", 40))
				for _, e := range entries {
					fmt.Fprintf(out, "%-6s %-20s %s\n", e.Code, e.Name, e.Kind)
				}
			default:
				return fmt.Errorf("unknown output format: %s (valid: table, json)", format)
			}
			return nil
		},
	}
	cmd.Flags().StringVar(&tableVersion, "table-version", "", "Tax table version (default: last loaded)")
	cmd.Flags().StringVarP(&format, "format", "f", "table", "Output format (table, json)")
	return cmd
}

func validateCmd(opts *globalOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "validate [rules-file...]",
		Short: "Validate tax table files",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			parser := config.NewInputParser()
			logger := opts.logger.Sugar()
			for _, file := range args {
				rules, err := parser.LoadRulesFromFile(file)
				if err != nil {
					return err
				}
				rs, err := calculation.NewRuleSet(*rules)
				if err != nil {
					return fmt.Errorf("%s: %w", file, err)
				}
				logger.Debugw("validated rules file", "file", file, "version", rs.Version, "levies", len(rs.Levies))
				fmt.Fprintf(cmd.OutOrStdout(), "Rules file %s is valid (version %s, %d jurisdictions)\n",
					file, rs.Version, len(rs.JurisdictionCodes()))
			}
			return nil
		},
	}
}
