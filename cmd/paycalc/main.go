package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"runtime/debug"
	"strings"

	"github.com/rgehrsitz/paycalc/internal/calculation"
	"github.com/rgehrsitz/paycalc/internal/config"
	"github.com/rgehrsitz/paycalc/internal/domain"
	"github.com/rgehrsitz/paycalc/internal/logging"
	"github.com/shopspring/decimal"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var (
	version = "dev"
	commit  = "none"
	date    = "unknown"
)

// globalOptions carries the persistent flags and the logger built from them.
type globalOptions struct {
	rules    []string
	debug    bool
	logJSON  bool
	logLevel string
	logger   *zap.Logger
}

func newRootCmd() *cobra.Command {
	opts := &globalOptions{}

	root := &cobra.Command{
		Use:   "paycalc",
		Short: "Progressive tax and take-home pay calculator",
		Long: `Calculate federal income tax, jurisdiction tax and payroll levies for a
gross income, or solve for the gross income that yields a target net pay.

Tax tables for 2025 are built in; additional table versions can be loaded
with --rules.`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			logger, err := logging.NewLogger(logging.Options{Debug: opts.debug, JSON: opts.logJSON, Level: opts.logLevel})
			if err != nil {
				return fmt.Errorf("failed to initialize logger: %w", err)
			}
			opts.logger = logger
			return nil
		},
		PersistentPostRun: func(cmd *cobra.Command, args []string) {
			if opts.logger != nil {
				_ = opts.logger.Sync()
			}
		},
	}

	pf := root.PersistentFlags()
	pf.StringSliceVar(&opts.rules, "rules", nil, "Additional tax table files (YAML); the last one becomes the default version")
	pf.BoolVar(&opts.debug, "debug", false, "Enable debug output for detailed calculations")
	pf.BoolVar(&opts.logJSON, "log-json", false, "Write logs as JSON")
	pf.StringVar(&opts.logLevel, "log-level", "", "Log level (debug, info, warn, error); overrides "+logging.LevelEnv)

	root.AddCommand(calculateCmd(opts))
	root.AddCommand(solveCmd(opts))
	root.AddCommand(compareCmd(opts))
	root.AddCommand(marginalCmd(opts))
	root.AddCommand(jurisdictionsCmd(opts))
	root.AddCommand(validateCmd(opts))
	root.AddCommand(versionCmd())
	return root
}

// engine loads the embedded tables plus --rules files and attaches the logger.
func (o *globalOptions) engine() (*calculation.CalculationEngine, error) {
	engine, err := config.NewInputParser().LoadEngine(o.rules...)
	if err != nil {
		return nil, err
	}
	engine.SetLogger(logging.NewAdapter(o.logger))
	engine.Debug = o.debug
	engine.Logger.Debugf("loaded table versions %v (default %s)", engine.Versions(), engine.DefaultVersion)
	return engine, nil
}

// requestFlags are the flags shared by every command that takes a request.
type requestFlags struct {
	file         string
	frequency    string
	status       string
	jurisdiction string
	tableVersion string
}

func (rf *requestFlags) register(cmd *cobra.Command) {
	f := cmd.Flags()
	f.StringVar(&rf.file, "request", "", "Load the request from a YAML or JSON file; explicit flags override it")
	f.StringVarP(&rf.frequency, "frequency", "p", string(domain.Annual), "Pay frequency (weekly, biweekly, monthly, annual)")
	f.StringVarP(&rf.status, "status", "s", string(domain.FilingSingle), "Filing status (single, married_joint, married_separate, head_of_household)")
	f.StringVarP(&rf.jurisdiction, "jurisdiction", "j", "", "Jurisdiction code, e.g. TX or CA")
	f.StringVar(&rf.tableVersion, "table-version", "", "Tax table version (default: last loaded)")
}

// build turns the amount argument and flags into a request. With --request,
// the file supplies the defaults and only flags set on the command line
// override it.
func (rf *requestFlags) build(cmd *cobra.Command, args []string) (*domain.CalculationRequest, error) {
	parser := config.NewInputParser()
	if rf.file == "" {
		if len(args) == 0 {
			return nil, fmt.Errorf("an amount is required (or use --request)")
		}
		return parser.BuildRequest(args[0], rf.frequency, rf.status, rf.jurisdiction, rf.tableVersion)
	}

	req, err := parser.LoadRequestFromFile(rf.file)
	if err != nil {
		return nil, err
	}
	flags := cmd.Flags()
	if len(args) > 0 {
		if req.Amount, err = domain.ParseMoney(args[0]); err != nil {
			return nil, fmt.Errorf("amount: %w", err)
		}
	}
	if flags.Changed("frequency") {
		if req.Frequency, err = domain.ParsePayFrequency(rf.frequency); err != nil {
			return nil, fmt.Errorf("frequency: %w", err)
		}
	}
	if flags.Changed("status") {
		if req.FilingStatus, err = domain.ParseFilingStatus(rf.status); err != nil {
			return nil, fmt.Errorf("filing status: %w", err)
		}
	}
	if flags.Changed("jurisdiction") {
		req.JurisdictionCode = calculation.NormalizeJurisdictionCode(rf.jurisdiction)
	}
	if flags.Changed("table-version") {
		req.TableVersion = strings.TrimSpace(rf.tableVersion)
	}
	return req, nil
}

func parseDecimalFlag(name, value string) (decimal.Decimal, error) {
	if value == "" {
		return decimal.Zero, nil
	}
	d, err := decimal.NewFromString(value)
	if err != nil {
		return decimal.Zero, fmt.Errorf("--%s: %w", name, domain.NewCalculationError(domain.ErrInvalidInput, "parse_flag", "%q is not a number", value))
	}
	return d, nil
}

func versionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print version information",
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Fprintf(cmd.OutOrStdout(), "paycalc %s (commit %s, built %s)\n", version, commit, date)
			if info := buildInfo(); info != "" {
				fmt.Fprintln(cmd.OutOrStdout(), info)
			}
		},
	}
}

func buildInfo() string {
	if bi, ok := debug.ReadBuildInfo(); ok && bi != nil {
		return bi.String()
	}
	return ""
}

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	if err := newRootCmd().ExecuteContext(ctx); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		stop()
		os.Exit(1)
	}
}
