package scenes

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/rgehrsitz/paycalc/internal/domain"
	"github.com/rgehrsitz/paycalc/internal/output"
	"github.com/rgehrsitz/paycalc/internal/tui/components"
	"github.com/rgehrsitz/paycalc/internal/tui/tuimsg"
	"github.com/rgehrsitz/paycalc/internal/tui/tuistyles"
)

// Field identifies a focusable row of the calculator form.
type Field int

const (
	FieldAmount Field = iota
	FieldFrequency
	FieldStatus
	FieldJurisdiction
	FieldMode
	fieldCount
)

var (
	nextFieldKey = key.NewBinding(key.WithKeys("down", "tab"))
	prevFieldKey = key.NewBinding(key.WithKeys("up", "shift+tab"))
	nextOptKey   = key.NewBinding(key.WithKeys("right"))
	prevOptKey   = key.NewBinding(key.WithKeys("left"))
	submitKey    = key.NewBinding(key.WithKeys("enter"))
)

// CalculatorModel is the form for a single forward or reverse calculation
// and the view of its result.
type CalculatorModel struct {
	amount        textinput.Model
	frequencies   []domain.PayFrequency
	statuses      []domain.FilingStatus
	jurisdictions []string
	freqIdx       int
	statusIdx     int
	jurIdx        int
	reverse       bool
	focus         Field

	result *tuimsg.CalculationCompleteMsg
	err    error

	width  int
	height int
}

// NewCalculatorModel creates the form. jurisdictions are the loaded codes;
// the first entry equal to defaultJurisdiction is preselected.
func NewCalculatorModel(jurisdictions []string, defaultJurisdiction string) *CalculatorModel {
	ti := textinput.New()
	ti.Placeholder = "60000"
	ti.Prompt = "$ "
	ti.CharLimit = 16
	ti.Width = 16
	ti.Focus()

	m := &CalculatorModel{
		amount:        ti,
		frequencies:   domain.PayFrequencies,
		statuses:      domain.FilingStatuses,
		jurisdictions: jurisdictions,
		freqIdx:       len(domain.PayFrequencies) - 1,
	}
	for i, code := range jurisdictions {
		if code == defaultJurisdiction {
			m.jurIdx = i
			break
		}
	}
	return m
}

// SetSize updates the scene dimensions
func (m *CalculatorModel) SetSize(width, height int) {
	m.width = width
	m.height = height
}

// Focus returns the focused field.
func (m *CalculatorModel) Focus() Field { return m.focus }

// Reverse reports whether the amount is a target net income.
func (m *CalculatorModel) Reverse() bool { return m.reverse }

// Result returns the last completed calculation, if any.
func (m *CalculatorModel) Result() *tuimsg.CalculationCompleteMsg { return m.result }

// Err returns the last input or calculation error.
func (m *CalculatorModel) Err() error { return m.err }

// SetAmount replaces the amount input text.
func (m *CalculatorModel) SetAmount(s string) { m.amount.SetValue(s) }

// Request builds a calculation request from the form.
func (m *CalculatorModel) Request() (domain.CalculationRequest, error) {
	amt, err := domain.ParseMoney(m.amount.Value())
	if err != nil {
		return domain.CalculationRequest{}, err
	}
	req := domain.CalculationRequest{
		Amount:       amt,
		Frequency:    m.frequencies[m.freqIdx],
		FilingStatus: m.statuses[m.statusIdx],
	}
	if len(m.jurisdictions) > 0 {
		req.JurisdictionCode = m.jurisdictions[m.jurIdx]
	}
	return req, nil
}

// SetResult stores a completed calculation.
func (m *CalculatorModel) SetResult(msg tuimsg.CalculationCompleteMsg) {
	m.err = msg.Err
	if msg.Breakdown == nil {
		m.result = nil
		return
	}
	m.result = &msg
}

// Update handles messages for the calculator scene
func (m *CalculatorModel) Update(msg tea.Msg) (*CalculatorModel, tea.Cmd) {
	keyMsg, ok := msg.(tea.KeyMsg)
	if !ok {
		var cmd tea.Cmd
		m.amount, cmd = m.amount.Update(msg)
		return m, cmd
	}

	switch {
	case key.Matches(keyMsg, nextFieldKey):
		m.setFocus((m.focus + 1) % fieldCount)
		return m, nil

	case key.Matches(keyMsg, prevFieldKey):
		m.setFocus((m.focus + fieldCount - 1) % fieldCount)
		return m, nil

	case key.Matches(keyMsg, submitKey):
		req, err := m.Request()
		if err != nil {
			m.err = err
			return m, nil
		}
		m.err = nil
		reverse := m.reverse
		return m, func() tea.Msg {
			return tuimsg.CalculateRequestedMsg{Request: req, Reverse: reverse}
		}

	case m.focus != FieldAmount && key.Matches(keyMsg, nextOptKey):
		m.cycle(1)
		return m, nil

	case m.focus != FieldAmount && key.Matches(keyMsg, prevOptKey):
		m.cycle(-1)
		return m, nil
	}

	if m.focus == FieldAmount {
		var cmd tea.Cmd
		m.amount, cmd = m.amount.Update(msg)
		return m, cmd
	}
	return m, nil
}

func (m *CalculatorModel) setFocus(f Field) {
	m.focus = f
	if f == FieldAmount {
		m.amount.Focus()
	} else {
		m.amount.Blur()
	}
}

func (m *CalculatorModel) cycle(step int) {
	wrap := func(i, n int) int {
		if n == 0 {
			return 0
		}
		return ((i+step)%n + n) % n
	}
	switch m.focus {
	case FieldFrequency:
		m.freqIdx = wrap(m.freqIdx, len(m.frequencies))
	case FieldStatus:
		m.statusIdx = wrap(m.statusIdx, len(m.statuses))
	case FieldJurisdiction:
		m.jurIdx = wrap(m.jurIdx, len(m.jurisdictions))
	case FieldMode:
		m.reverse = !m.reverse
	}
}

// View renders the calculator scene
func (m *CalculatorModel) View() string {
	form := m.renderForm()
	if m.result == nil {
		return lipgloss.JoinVertical(lipgloss.Left, form, m.renderError())
	}
	return lipgloss.JoinVertical(lipgloss.Left, form, m.renderError(), m.renderResult())
}

func (m *CalculatorModel) renderForm() string {
	amountLabel := "Gross income"
	mode := "Gross → Net"
	if m.reverse {
		amountLabel = "Target net"
		mode = "Net → Gross"
	}
	jurisdiction := "-"
	if len(m.jurisdictions) > 0 {
		jurisdiction = m.jurisdictions[m.jurIdx]
	}

	rows := []struct {
		field Field
		label string
		value string
	}{
		{FieldAmount, amountLabel, m.amount.View()},
		{FieldFrequency, "Pay frequency", "‹ " + string(m.frequencies[m.freqIdx]) + " ›"},
		{FieldStatus, "Filing status", "‹ " + m.statuses[m.statusIdx].Label() + " ›"},
		{FieldJurisdiction, "Jurisdiction", "‹ " + jurisdiction + " ›"},
		{FieldMode, "Mode", "‹ " + mode + " ›"},
	}

	var sb strings.Builder
	for _, r := range rows {
		cursor := "  "
		value := tuistyles.FieldValueStyle.Render(r.value)
		if r.field == m.focus {
			cursor = tuistyles.SelectedItemStyle.Render("▸ ")
			value = tuistyles.SelectedItemStyle.Render(r.value)
		}
		sb.WriteString(cursor + tuistyles.FieldLabelStyle.Render(r.label) + value + "\n")
	}
	sb.WriteString(tuistyles.SubtitleStyle.Render("↑/↓ move • ←/→ change • enter calculate"))
	return tuistyles.ActiveBorderStyle.Render(sb.String())
}

func (m *CalculatorModel) renderError() string {
	if m.err == nil {
		return ""
	}
	return tuistyles.ErrorStyle.Render("Error: " + m.err.Error())
}

func (m *CalculatorModel) renderResult() string {
	r := m.result
	tb := *r.Breakdown
	per := string(tb.Frequency)

	cards := []*components.MetricCard{
		components.NewMetricCard("Gross Income", output.FormatCurrency(tb.GrossIncome)).WithDescription(per),
		components.NewMetricCard("Total Tax", output.FormatCurrency(tb.TotalTax)).WithDescription(per),
		components.NewMetricCard("Net Income", output.FormatCurrency(tb.NetIncome)).WithDescription(per),
		components.NewMetricCard("Effective Rate", output.FormatRate(tb.EffectiveRate)),
		components.NewMetricCard("Marginal Rate", output.FormatRate(r.MarginalRate)),
	}

	var status string
	if r.Solve != nil {
		if r.Solve.Converged {
			status = tuistyles.InfoStyle.Render(fmt.Sprintf("Solved in %d iterations (annual gross %s)",
				r.Solve.Iterations, output.FormatCurrency(r.Solve.AnnualGrossIncome)))
		} else {
			status = tuistyles.WarnStyle.Render("Closest result shown: " + r.Solve.ConvergenceInfo)
		}
	}

	return lipgloss.JoinVertical(lipgloss.Left,
		components.MetricGrid(cards, 3),
		status,
		tuistyles.BorderStyle.Render(components.NewBreakdownChart(tb).Render()),
	)
}
