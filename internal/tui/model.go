package tui

import (
	"context"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/rgehrsitz/paycalc/internal/breakeven"
	"github.com/rgehrsitz/paycalc/internal/calculation"
	"github.com/rgehrsitz/paycalc/internal/compare"
	"github.com/rgehrsitz/paycalc/internal/tui/scenes"
	"github.com/rgehrsitz/paycalc/internal/tui/tuimsg"
	"github.com/rgehrsitz/paycalc/internal/tui/tuistyles"
)

// Model represents the entire application state
type Model struct {
	// Navigation
	currentScene  Scene
	previousScene Scene

	// Terminal dimensions
	width  int
	height int

	engine       *calculation.CalculationEngine
	solver       *breakeven.Solver
	comparer     *compare.CompareEngine
	tableVersion string

	calculatorModel *scenes.CalculatorModel
	compareModel    *scenes.CompareModel

	keys    keyMap
	help    help.Model
	spinner spinner.Model

	// Error state
	err error

	// Loading state
	loading        bool
	loadingMessage string
}

// NewModel creates the application model for engine's default table version.
// defaultJurisdiction preselects a jurisdiction in the calculator.
func NewModel(engine *calculation.CalculationEngine, defaultJurisdiction string) (Model, error) {
	rs, err := engine.RuleSet("")
	if err != nil {
		return Model{}, err
	}

	sp := spinner.New()
	sp.Spinner = spinner.Dot
	sp.Style = tuistyles.InfoStyle

	return Model{
		currentScene:    SceneCalculator,
		engine:          engine,
		solver:          breakeven.NewDefaultSolver(engine),
		comparer:        compare.NewCompareEngine(engine),
		tableVersion:    rs.Version,
		calculatorModel: scenes.NewCalculatorModel(rs.JurisdictionCodes(), calculation.NormalizeJurisdictionCode(defaultJurisdiction)),
		compareModel:    scenes.NewCompareModel(),
		keys:            defaultKeyMap(),
		help:            help.New(),
		spinner:         sp,
		width:           80,
		height:          24,
	}, nil
}

// Init initializes the model (required by tea.Model interface)
func (m Model) Init() tea.Cmd {
	return textinput.Blink
}

// calculateCmd runs a forward calculation or a reverse solve off the UI loop.
func calculateCmd(engine *calculation.CalculationEngine, solver *breakeven.Solver, msg tuimsg.CalculateRequestedMsg) tea.Cmd {
	return func() tea.Msg {
		return runCalculation(engine, solver, msg)
	}
}

func runCalculation(engine *calculation.CalculationEngine, solver *breakeven.Solver, msg tuimsg.CalculateRequestedMsg) tuimsg.CalculationCompleteMsg {
	out := tuimsg.CalculationCompleteMsg{Request: msg.Request}

	if !msg.Reverse {
		tb, err := engine.Calculate(msg.Request)
		if err != nil {
			out.Err = err
			return out
		}
		out.Breakdown = tb
		out.MarginalRate, out.Err = engine.MarginalRate(msg.Request)
		return out
	}

	result, err := solver.SolveForGross(context.Background(), breakeven.SolveRequest{CalculationRequest: msg.Request})
	out.Err = err
	if result == nil {
		return out
	}
	out.Solve = result
	tb := result.Breakdown
	out.Breakdown = &tb

	grossReq := result.Request
	grossReq.Amount = result.GrossIncome
	if rate, err := engine.MarginalRate(grossReq); err == nil {
		out.MarginalRate = rate
	} else {
		engine.Logger.Warnf("tui: marginal rate at solved gross: %v", err)
	}
	return out
}

// compareCmd compares a request across every loaded jurisdiction.
func compareCmd(comparer *compare.CompareEngine, msg tuimsg.ComparisonRequestedMsg) tea.Cmd {
	return func() tea.Msg {
		mode := compare.ModeForward
		if msg.Reverse {
			mode = compare.ModeReverse
		}
		set, err := comparer.Compare(context.Background(), compare.CompareOptions{Mode: mode, Request: msg.Request})
		return tuimsg.ComparisonCompleteMsg{Set: set, Err: err}
	}
}
