package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/rgehrsitz/paycalc/internal/output"
)

// View renders the current state of the application
func (m Model) View() string {
	if m.loading {
		return m.renderLoading()
	}

	if m.err != nil {
		return m.renderError()
	}

	var content string
	switch m.currentScene {
	case SceneCalculator:
		content = m.calculatorModel.View()
	case SceneCompare:
		content = m.compareModel.View()
	case SceneHelp:
		content = m.renderHelp()
	default:
		content = "Unknown scene"
	}

	return m.renderApp(content)
}

// renderApp wraps content with title bar, status bar, and main container
func (m Model) renderApp(content string) string {
	contentHeight := m.height - 6 // title (2) + status (1) + padding (3)
	if contentHeight < 0 {
		contentHeight = 0
	}
	container := lipgloss.NewStyle().Height(contentHeight).Render(content)

	return AppStyle.Render(lipgloss.JoinVertical(
		lipgloss.Left,
		m.renderTitleBar(),
		container,
		m.renderStatusBar(),
	))
}

// renderTitleBar renders the application title and breadcrumb
func (m Model) renderTitleBar() string {
	title := TitleStyle.Render("PAYCALC - Take-Home Pay Calculator")
	breadcrumb := SubtitleStyle.Render(fmt.Sprintf("%s / tables %s", m.currentScene, m.tableVersion))
	return lipgloss.JoinVertical(lipgloss.Left, title, breadcrumb)
}

// renderStatusBar renders the bottom status bar with keyboard shortcuts
func (m Model) renderStatusBar() string {
	return StatusBarStyle.Width(max(0, m.width-4)).Render(m.help.View(m.keys))
}

// renderLoading renders the spinner and the pending operation
func (m Model) renderLoading() string {
	message := m.loadingMessage
	if message == "" {
		message = "Loading..."
	}
	return m.renderApp(BorderStyle.Render(fmt.Sprintf("%s %s", m.spinner.View(), message)))
}

// renderError renders an error message
func (m Model) renderError() string {
	content := ErrorStyle.Render(fmt.Sprintf("Error: %s\n\nPress any key to continue...", m.err))
	return m.renderApp(content)
}

// renderHelp renders the help screen
func (m Model) renderHelp() string {
	var sb strings.Builder
	sb.WriteString("PAYCALC - Take-Home Pay Calculator\n\n")
	sb.WriteString("CALCULATOR:\n")
	sb.WriteString("  Type a gross amount, or a target net amount in Net → Gross mode.\n")
	sb.WriteString("  ↑/↓ or tab move between fields, ←/→ change the selected option,\n")
	sb.WriteString("  enter runs the calculation.\n\n")
	sb.WriteString("COMPARE:\n")
	sb.WriteString("  Ranks the calculator's request across every jurisdiction.\n")
	sb.WriteString("  enter runs the comparison, ↑/↓ scroll.\n\n")
	sb.WriteString("KEYS:\n")
	sb.WriteString(m.help.FullHelpView(m.keys.FullHelp()))
	sb.WriteString("\n\nASSUMPTIONS:\n")
	for _, a := range output.DefaultAssumptions {
		sb.WriteString("  • " + a + "\n")
	}
	return BorderStyle.Render(sb.String())
}
