package tui

import (
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/rgehrsitz/paycalc/internal/tui/tuimsg"
)

// Update handles all messages and updates the model state
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {

	case tea.KeyMsg:
		return m.handleKeyPress(msg)

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.help.Width = msg.Width
		m.calculatorModel.SetSize(msg.Width, msg.Height)
		m.compareModel.SetSize(msg.Width, msg.Height)
		return m, nil

	case NavigateMsg:
		m.previousScene = m.currentScene
		m.currentScene = msg.Scene
		if msg.Scene == SceneCompare {
			if req, err := m.calculatorModel.Request(); err == nil {
				m.compareModel.SetRequest(req, m.calculatorModel.Reverse())
			}
		}
		return m, nil

	case QuitMsg:
		return m, tea.Quit

	case tuimsg.ErrorMsg:
		m.err = msg.Err
		return m, nil

	case tuimsg.CalculateRequestedMsg:
		m.loading = true
		m.loadingMessage = "Calculating..."
		if msg.Reverse {
			m.loadingMessage = "Solving for gross income..."
		}
		return m, tea.Batch(m.spinner.Tick, calculateCmd(m.engine, m.solver, msg))

	case tuimsg.CalculationCompleteMsg:
		m.loading = false
		m.calculatorModel.SetResult(msg)
		return m, nil

	case tuimsg.ComparisonRequestedMsg:
		m.loading = true
		m.loadingMessage = "Comparing jurisdictions..."
		return m, tea.Batch(m.spinner.Tick, compareCmd(m.comparer, msg))

	case tuimsg.ComparisonCompleteMsg:
		m.loading = false
		m.compareModel.SetResults(msg)
		return m, nil

	case spinner.TickMsg:
		if !m.loading {
			return m, nil
		}
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd
	}

	// Delegate to scene-specific update handlers
	return m.updateCurrentScene(msg)
}

// handleKeyPress processes keyboard input
func (m Model) handleKeyPress(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if msg.Type == tea.KeyCtrlC {
		return m, tea.Quit
	}
	if m.err != nil {
		// Any key dismisses the error
		m.err = nil
		return m, nil
	}
	if m.loading {
		return m, nil
	}

	switch {
	case key.Matches(msg, m.keys.Quit):
		return m, tea.Quit

	case key.Matches(msg, m.keys.Help):
		return m, navigate(SceneHelp)

	case key.Matches(msg, m.keys.Calculator):
		if m.currentScene != SceneCalculator {
			return m, navigate(SceneCalculator)
		}
		return m, nil

	case key.Matches(msg, m.keys.Compare):
		if m.currentScene != SceneCompare {
			return m, navigate(SceneCompare)
		}
		return m, nil

	case key.Matches(msg, m.keys.Back):
		if m.currentScene != SceneCalculator {
			target := SceneCalculator
			if m.previousScene != m.currentScene {
				target = m.previousScene
			}
			return m, navigate(target)
		}
		return m, nil
	}

	// Let the current scene handle other keys
	return m.updateCurrentScene(msg)
}

func navigate(s Scene) tea.Cmd {
	return func() tea.Msg { return NavigateMsg{Scene: s} }
}

// updateCurrentScene delegates updates to the current scene's model
func (m Model) updateCurrentScene(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd
	switch m.currentScene {
	case SceneCalculator:
		m.calculatorModel, cmd = m.calculatorModel.Update(msg)
	case SceneCompare:
		m.compareModel, cmd = m.compareModel.Update(msg)
	}
	return m, cmd
}
