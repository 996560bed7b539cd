package scenes

import (
	"fmt"
	"sort"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/rgehrsitz/paycalc/internal/compare"
	"github.com/rgehrsitz/paycalc/internal/domain"
	"github.com/rgehrsitz/paycalc/internal/output"
	"github.com/rgehrsitz/paycalc/internal/tui/components"
	"github.com/rgehrsitz/paycalc/internal/tui/tuimsg"
	"github.com/rgehrsitz/paycalc/internal/tui/tuistyles"
)

// CompareModel shows the calculator's request ranked across every loaded
// jurisdiction.
type CompareModel struct {
	request   *domain.CalculationRequest
	reverse   bool
	set       *compare.ComparisonSet
	rows      []compare.ComparisonResult // ranked, failures last
	cursor    int
	offset    int
	comparing bool
	err       error
	width     int
	height    int
}

// NewCompareModel creates a new compare scene model
func NewCompareModel() *CompareModel {
	return &CompareModel{}
}

// SetSize updates the model dimensions
func (m *CompareModel) SetSize(width, height int) {
	m.width = width
	m.height = height
}

// SetRequest sets the request to compare. A different request clears
// previous results.
func (m *CompareModel) SetRequest(req domain.CalculationRequest, reverse bool) {
	if m.request != nil && m.reverse == reverse && sameRequest(*m.request, req) {
		return
	}
	m.request = &req
	m.reverse = reverse
	m.set = nil
	m.rows = nil
	m.cursor = 0
	m.offset = 0
	m.err = nil
}

func sameRequest(a, b domain.CalculationRequest) bool {
	return a.Amount.Equal(b.Amount) && a.Frequency == b.Frequency &&
		a.FilingStatus == b.FilingStatus && a.JurisdictionCode == b.JurisdictionCode &&
		a.TableVersion == b.TableVersion
}

// SetResults stores a completed comparison.
func (m *CompareModel) SetResults(msg tuimsg.ComparisonCompleteMsg) {
	m.comparing = false
	m.err = msg.Err
	m.set = msg.Set
	m.rows = nil
	m.cursor = 0
	m.offset = 0
	if msg.Set == nil {
		return
	}
	ranked := make([]compare.ComparisonResult, 0, len(msg.Set.AlternativeResults)+1)
	var failed []compare.ComparisonResult
	for _, r := range msg.Set.All() {
		if r.Failed() {
			failed = append(failed, r)
			continue
		}
		ranked = append(ranked, r)
	}
	sort.SliceStable(ranked, func(i, j int) bool { return ranked[i].Rank < ranked[j].Rank })
	m.rows = append(ranked, failed...)
}

// Rows returns the displayed rows in rank order.
func (m *CompareModel) Rows() []compare.ComparisonResult { return m.rows }

// Cursor returns the highlighted row index.
func (m *CompareModel) Cursor() int { return m.cursor }

// Comparing reports whether a comparison is in flight.
func (m *CompareModel) Comparing() bool { return m.comparing }

// Update handles messages for the compare scene
func (m *CompareModel) Update(msg tea.Msg) (*CompareModel, tea.Cmd) {
	keyMsg, ok := msg.(tea.KeyMsg)
	if !ok {
		return m, nil
	}

	switch {
	case key.Matches(keyMsg, key.NewBinding(key.WithKeys("up", "k"))):
		if m.cursor > 0 {
			m.cursor--
		}
		m.scrollIntoView()
		return m, nil

	case key.Matches(keyMsg, key.NewBinding(key.WithKeys("down", "j"))):
		if m.cursor < len(m.rows)-1 {
			m.cursor++
		}
		m.scrollIntoView()
		return m, nil

	case key.Matches(keyMsg, key.NewBinding(key.WithKeys("enter"))):
		if m.request == nil || m.comparing {
			return m, nil
		}
		m.comparing = true
		req, reverse := *m.request, m.reverse
		return m, func() tea.Msg {
			return tuimsg.ComparisonRequestedMsg{Request: req, Reverse: reverse}
		}
	}
	return m, nil
}

func (m *CompareModel) visibleRows() int {
	// Room left after the header, base cards and borders.
	n := m.height - 14
	if n < 5 {
		n = 5
	}
	return n
}

func (m *CompareModel) scrollIntoView() {
	visible := m.visibleRows()
	if m.cursor < m.offset {
		m.offset = m.cursor
	}
	if m.cursor >= m.offset+visible {
		m.offset = m.cursor - visible + 1
	}
}

// View renders the compare scene
func (m *CompareModel) View() string {
	if m.request == nil {
		return tuistyles.BorderStyle.Render("Enter an amount in the calculator first, then come back here.")
	}
	if m.comparing {
		return tuistyles.BorderStyle.Render("Comparing jurisdictions...")
	}
	if m.err != nil {
		return tuistyles.ErrorStyle.Render("Error: " + m.err.Error())
	}
	if m.set == nil {
		what := "net income at gross " + output.FormatCurrency(m.request.Amount)
		if m.reverse {
			what = "gross needed for net " + output.FormatCurrency(m.request.Amount)
		}
		return tuistyles.BorderStyle.Render(fmt.Sprintf("Compare %s %s across all jurisdictions (base %s).\n\nPress enter to run.",
			what, m.request.Frequency, m.request.JurisdictionCode))
	}
	return lipgloss.JoinVertical(lipgloss.Left, m.renderSummary(), m.renderTable())
}

func (m *CompareModel) renderSummary() string {
	base := m.set.BaseResult
	var best *compare.ComparisonResult
	if len(m.rows) > 0 && !m.rows[0].Failed() {
		best = &m.rows[0]
	}

	cards := []*components.MetricCard{
		components.NewMetricCard("Base", base.Label).WithDescription(fmt.Sprintf("rank %d of %d", base.Rank, len(m.set.Ranking))),
	}
	if best != nil {
		card := components.NewMetricCard("Best", best.Label)
		if best.Label != base.Label {
			if m.reverse {
				card.WithTrend(true, "-"+output.FormatCurrency(base.GrossIncome.Sub(best.GrossIncome))+" gross")
			} else {
				card.WithTrend(true, "+"+output.FormatCurrency(best.NetIncome.Sub(base.NetIncome))+" net")
			}
		}
		cards = append(cards, card)
	}
	return components.MetricGrid(cards, 2)
}

func (m *CompareModel) renderTable() string {
	var sb strings.Builder
	sb.WriteString(tuistyles.TableHeaderStyle.Render(fmt.Sprintf("%-4s %-6s %-10s %14s %14s %8s %14s",
		"#", "Code", "Policy", "Gross", "Net", "Eff.", "vs Base")))
	sb.WriteString("\n")

	end := m.offset + m.visibleRows()
	if end > len(m.rows) {
		end = len(m.rows)
	}
	for i := m.offset; i < end; i++ {
		r := m.rows[i]
		var line string
		if r.Failed() {
			line = fmt.Sprintf("%-4s %-6s error: %s", "-", r.Label, r.Error)
		} else {
			line = fmt.Sprintf("%-4d %-6s %-10s %14s %14s %8s %14s",
				r.Rank, r.Label, r.PolicyKind,
				output.FormatCurrency(r.GrossIncome),
				output.FormatCurrency(r.NetIncome),
				output.FormatRate(r.EffectiveRate),
				m.delta(r))
		}
		style := tuistyles.TableCellStyle
		if i == m.cursor {
			style = tuistyles.TableHighlightStyle
		}
		sb.WriteString(style.Render(line))
		sb.WriteString("\n")
	}
	sb.WriteString(tuistyles.SubtitleStyle.Render("↑/↓ scroll • enter re-run"))
	return tuistyles.BorderStyle.Render(sb.String())
}

func (m *CompareModel) delta(r compare.ComparisonResult) string {
	if r.Label == m.set.BaseLabel {
		return "base"
	}
	base := m.set.BaseResult
	diff := r.NetIncome.Sub(base.NetIncome)
	if m.reverse {
		diff = r.GrossIncome.Sub(base.GrossIncome)
	}
	switch {
	case diff.IsPositive():
		return "+" + output.FormatCurrency(diff)
	case diff.IsNegative():
		return output.FormatCurrency(diff)
	}
	return "="
}
