package ui

import (
	"strings"

	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"noirpad/internal/abi"
	"noirpad/internal/eval"
	"noirpad/internal/expr"
)

// ValueChangedMsg is emitted whenever a field's raw text changes. The host
// owns what happens next (classification gating is already done here).
type ValueChangedMsg struct {
	Name     string
	Text     string
	Analysis expr.Analysis
}

// ResultMsg delivers a new evaluation result for a field.
type ResultMsg struct {
	Name   string
	Result eval.Result
}

// FieldModel renders one circuit input and reflects its evaluation
// lifecycle. It holds no evaluation state of its own: status and values
// arrive via SetResult, text changes leave via ValueChangedMsg.
type FieldModel struct {
	param    abi.Parameter
	input    textinput.Model
	spinner  spinner.Model
	cache    *expr.Cache
	analysis expr.Analysis

	result   eval.Result
	disabled bool
	siblings []string // candidate names for autocomplete hosts; not used here

	styles Styles
	width  int
}

// NewFieldModel creates a field for one circuit parameter.
func NewFieldModel(param abi.Parameter, styles Styles) FieldModel {
	ti := textinput.New()
	ti.Placeholder = param.Placeholder()
	ti.Prompt = ""
	ti.CharLimit = 256
	ti.Width = 40

	sp := spinner.New()
	sp.Spinner = spinner.MiniDot
	sp.Style = styles.Spinner

	return FieldModel{
		param:   param,
		input:   ti,
		spinner: sp,
		cache:   expr.NewCache(0),
		result:  eval.Idle(),
		styles:  styles,
	}
}

// Name returns the parameter name.
func (m FieldModel) Name() string { return m.param.Name }

// Value returns the current raw text.
func (m FieldModel) Value() string { return m.input.Value() }

// Analysis returns the classification of the current text.
func (m FieldModel) Analysis() expr.Analysis { return m.analysis }

// Focused reports whether the field has keyboard focus.
func (m FieldModel) Focused() bool { return m.input.Focused() }

// ErrorState reports whether the field renders its error border variant.
// True whenever an error message is present, regardless of status.
func (m FieldModel) ErrorState() bool { return m.result.ErrorMessage() != "" }

// Focus gives the field keyboard focus.
func (m *FieldModel) Focus() tea.Cmd {
	if m.disabled {
		return nil
	}
	return m.input.Focus()
}

// Blur removes keyboard focus.
func (m *FieldModel) Blur() { m.input.Blur() }

// SetDisabled toggles input handling.
func (m *FieldModel) SetDisabled(disabled bool) {
	m.disabled = disabled
	if disabled {
		m.input.Blur()
	}
}

// SetSiblings records the names of the other inputs in the circuit. They
// are threaded through for completion-capable hosts and not interpreted.
func (m *FieldModel) SetSiblings(names []string) { m.siblings = names }

// Siblings returns the sibling input names.
func (m FieldModel) Siblings() []string { return m.siblings }

// SetValue replaces the field text, reclassifying it.
func (m *FieldModel) SetValue(text string) {
	m.input.SetValue(text)
	m.analysis = m.cache.Analyze(text)
}

// SetResult applies a new evaluation result. Returns the spinner tick
// command when entering the evaluating state.
func (m *FieldModel) SetResult(r eval.Result) tea.Cmd {
	entering := r.Status == eval.StatusEvaluating && m.result.Status != eval.StatusEvaluating
	m.result = r
	if entering {
		return m.spinner.Tick
	}
	return nil
}

// Result returns the last applied evaluation result.
func (m FieldModel) Result() eval.Result { return m.result }

// SetWidth sets the field's render width.
func (m *FieldModel) SetWidth(w int) {
	m.width = w
	if w > 8 {
		m.input.Width = w - 8
	}
}

// Update handles messages. Emits ValueChangedMsg when the text changes.
func (m FieldModel) Update(msg tea.Msg) (FieldModel, tea.Cmd) {
	var cmds []tea.Cmd

	if _, ok := msg.(spinner.TickMsg); ok && m.result.Status == eval.StatusEvaluating {
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		cmds = append(cmds, cmd)
	}

	if m.disabled {
		return m, tea.Batch(cmds...)
	}

	before := m.input.Value()
	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	cmds = append(cmds, cmd)

	if after := m.input.Value(); after != before {
		m.analysis = m.cache.Analyze(after)
		changed := ValueChangedMsg{Name: m.param.Name, Text: after, Analysis: m.analysis}
		cmds = append(cmds, func() tea.Msg { return changed })
	}

	return m, tea.Batch(cmds...)
}

// View renders the field: label, bordered input with a status icon, and
// the result or alert rows beneath.
func (m FieldModel) View() string {
	var sb strings.Builder

	// Label row: name, visibility, declared type.
	sb.WriteString(m.styles.Label.Render(m.param.Name))
	sb.WriteString(m.styles.Muted.Render(": "))
	if m.param.IsPublic {
		sb.WriteString(m.styles.PublicBadge.Render("pub "))
	}
	sb.WriteString(m.styles.TypeLabel.Render(m.param.Type))
	sb.WriteString("\n")

	box := m.borderStyle().Render(m.input.View())
	if icon := m.statusIcon(); icon != "" {
		box = lipgloss.JoinHorizontal(lipgloss.Center, box, " "+icon)
	}
	sb.WriteString(box)

	if row := m.resultRow(); row != "" {
		sb.WriteString("\n")
		sb.WriteString(row)
	}
	if msg := m.result.ErrorMessage(); msg != "" && m.analysis.IsExpression {
		sb.WriteString("\n")
		sb.WriteString(m.styles.Alert.Render("! " + msg))
	}

	return sb.String()
}

// borderStyle picks the border variant: error beats focus beats normal.
func (m FieldModel) borderStyle() lipgloss.Style {
	switch {
	case m.ErrorState():
		return m.styles.FieldError
	case m.input.Focused():
		return m.styles.FieldFocused
	default:
		return m.styles.Field
	}
}

// statusIcon returns the busy/error indicator. Decoration is shown only
// for expression text; literals get none regardless of status.
func (m FieldModel) statusIcon() string {
	if !m.analysis.IsExpression {
		return ""
	}
	switch m.result.Status {
	case eval.StatusEvaluating:
		return m.spinner.View()
	case eval.StatusFailed:
		return m.styles.ErrorMark.Render("✗")
	default:
		return ""
	}
}

// resultRow renders the evaluated value beneath the field, truncated for
// display. Only complete evaluations of expression text produce a row.
func (m FieldModel) resultRow() string {
	if !m.analysis.IsExpression {
		return ""
	}
	if m.result.Status != eval.StatusComplete || m.result.Value == "" {
		return ""
	}
	return m.styles.ResultRow.Render("= " + abi.FormatValue(m.result.Value))
}
