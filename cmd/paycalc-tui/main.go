package main

import (
	"fmt"
	"os"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/rgehrsitz/paycalc/internal/config"
	"github.com/rgehrsitz/paycalc/internal/logging"
	"github.com/rgehrsitz/paycalc/internal/tui"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

type tuiOptions struct {
	rules        []string
	jurisdiction string
	debug        bool
	logFile      string
}

func newRootCmd() *cobra.Command {
	opts := &tuiOptions{}

	cmd := &cobra.Command{
		Use:           "paycalc-tui",
		Short:         "Interactive take-home pay calculator",
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			model, logger, err := opts.model()
			if err != nil {
				return err
			}
			defer func() { _ = logger.Sync() }()

			p := tea.NewProgram(model, tea.WithAltScreen(), tea.WithContext(cmd.Context()))
			if _, err := p.Run(); err != nil {
				return fmt.Errorf("error running TUI: %w", err)
			}
			return nil
		},
	}

	f := cmd.Flags()
	f.StringSliceVar(&opts.rules, "rules", nil, "Additional tax table files (YAML); the last one becomes the default version")
	f.StringVarP(&opts.jurisdiction, "jurisdiction", "j", "TX", "Jurisdiction preselected in the calculator")
	f.BoolVar(&opts.debug, "debug", false, "Log calculation details at debug level")
	f.StringVar(&opts.logFile, "log-file", "", "Write logs to this file (the terminal is owned by the UI)")
	return cmd
}

// model loads the engine and builds the root model. Without --log-file the
// logger discards everything, since stderr would corrupt the alt screen.
func (o *tuiOptions) model() (tui.Model, *zap.Logger, error) {
	logger := zap.NewNop()
	if o.logFile != "" {
		var err error
		logger, err = logging.NewLogger(logging.Options{Debug: o.debug, JSON: true, Level: "info", OutputPath: o.logFile})
		if err != nil {
			return tui.Model{}, nil, fmt.Errorf("failed to initialize logger: %w", err)
		}
	}

	engine, err := config.NewInputParser().LoadEngine(o.rules...)
	if err != nil {
		return tui.Model{}, logger, err
	}
	engine.SetLogger(logging.NewAdapter(logger))
	engine.Debug = o.debug
	logger.Info("engine loaded", zap.Strings("versions", engine.Versions()), zap.String("default", engine.DefaultVersion))

	model, err := tui.NewModel(engine, o.jurisdiction)
	if err != nil {
		return tui.Model{}, logger, err
	}
	return model, logger, nil
}

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
