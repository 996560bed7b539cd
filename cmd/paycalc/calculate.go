package main

import (
	"fmt"
	"strings"

	"github.com/rgehrsitz/paycalc/internal/output"
	"github.com/spf13/cobra"
)

func calculateCmd(opts *globalOptions) *cobra.Command {
	var (
		rf              requestFlags
		format          string
		save            bool
		hideAssumptions bool
	)

	cmd := &cobra.Command{
		Use:   "calculate [gross-amount]",
		Short: "Calculate taxes and net income for a gross amount",
		Example: `  paycalc calculate 60000 -j TX
  paycalc calculate 2500 -p biweekly -s married_joint -j CA --format json
  paycalc calculate --request request.yaml --format csv`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			f := output.GetFormatterByName(strings.ToLower(format))
			if f == nil {
				return fmt.Errorf("unknown output format %q (valid: %s; aliases: %s)", format,
					strings.Join(output.AvailableFormatterNames(), ", "), strings.Join(output.AvailableFormatAliases(), ", "))
			}
			if _, ok := f.(output.ConsoleFormatter); ok && hideAssumptions {
				f = output.ConsoleFormatter{HideAssumptions: true}
			}

			req, err := rf.build(cmd, args)
			if err != nil {
				return err
			}
			engine, err := opts.engine()
			if err != nil {
				return err
			}
			tb, err := engine.Calculate(*req)
			if err != nil {
				return err
			}

			if save {
				ext := f.Name()
				if ext == "console" {
					ext = "txt"
				}
				filename, err := output.WriteFormatted(f, tb, ext)
				if err != nil {
					return err
				}
				fmt.Fprintf(cmd.OutOrStdout(), "Report written to %s\n", filename)
				return nil
			}

			data, err := f.Format(tb)
			if err != nil {
				return err
			}
			_, err = cmd.OutOrStdout().Write(data)
			return err
		},
	}

	rf.register(cmd)
	cmd.Flags().StringVarP(&format, "format", "f", "console", "Output format (console, json, csv)")
	cmd.Flags().BoolVar(&save, "save", false, "Write the report to a timestamped file instead of stdout")
	cmd.Flags().BoolVar(&hideAssumptions, "no-assumptions", false, "Omit the assumptions section from console output")
	return cmd
}
