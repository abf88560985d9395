package ui

import (
	"strings"

	tea "github.com/charmbracelet/bubbletea"

	"noirpad/internal/abi"
	"noirpad/internal/eval"
)

// InputsPanel composes one field per circuit parameter with focus cycling.
type InputsPanel struct {
	fields []FieldModel
	focus  int
	styles Styles
	width  int
}

// NewInputsPanel builds the panel for a circuit's parameters.
func NewInputsPanel(params []abi.Parameter, styles Styles) InputsPanel {
	names := make([]string, len(params))
	for i, p := range params {
		names[i] = p.Name
	}

	fields := make([]FieldModel, len(params))
	for i, p := range params {
		f := NewFieldModel(p, styles)
		siblings := make([]string, 0, len(names)-1)
		for _, n := range names {
			if n != p.Name {
				siblings = append(siblings, n)
			}
		}
		f.SetSiblings(siblings)
		fields[i] = f
	}

	p := InputsPanel{fields: fields, styles: styles}
	if len(p.fields) > 0 {
		p.fields[0].Focus()
	}
	return p
}

// Init implements tea.Model conventions for composition.
func (p InputsPanel) Init() tea.Cmd {
	return textCursorBlink(p)
}

func textCursorBlink(p InputsPanel) tea.Cmd {
	if len(p.fields) == 0 {
		return nil
	}
	return p.fields[p.focus].input.Cursor.BlinkCmd()
}

// Update routes messages: results to their field, keys to the focused
// field, tab/shift+tab across fields.
func (p InputsPanel) Update(msg tea.Msg) (InputsPanel, tea.Cmd) {
	var cmds []tea.Cmd

	switch msg := msg.(type) {
	case ResultMsg:
		for i := range p.fields {
			if p.fields[i].Name() == msg.Name {
				cmds = append(cmds, p.fields[i].SetResult(msg.Result))
			}
		}
		return p, tea.Batch(cmds...)

	case tea.KeyMsg:
		switch msg.String() {
		case "tab":
			return p.moveFocus(1)
		case "shift+tab":
			return p.moveFocus(-1)
		}
	}

	for i := range p.fields {
		var cmd tea.Cmd
		p.fields[i], cmd = p.fields[i].Update(msg)
		cmds = append(cmds, cmd)
	}
	return p, tea.Batch(cmds...)
}

func (p InputsPanel) moveFocus(delta int) (InputsPanel, tea.Cmd) {
	if len(p.fields) == 0 {
		return p, nil
	}
	p.fields[p.focus].Blur()
	p.focus = (p.focus + delta + len(p.fields)) % len(p.fields)
	return p, p.fields[p.focus].Focus()
}

// View renders the panel.
func (p InputsPanel) View() string {
	var sb strings.Builder
	sb.WriteString(p.styles.Header.Render(" Circuit Inputs "))
	sb.WriteString("\n\n")
	for i := range p.fields {
		sb.WriteString(p.fields[i].View())
		if i < len(p.fields)-1 {
			sb.WriteString("\n\n")
		}
	}
	return sb.String()
}

// Values returns the current raw texts keyed by parameter name, the
// sibling set handed to the evaluator.
func (p InputsPanel) Values() eval.Inputs {
	values := make(eval.Inputs, len(p.fields))
	for i := range p.fields {
		values[p.fields[i].Name()] = p.fields[i].Value()
	}
	return values
}

// Fields returns the field names in render order.
func (p InputsPanel) Fields() []string {
	names := make([]string, len(p.fields))
	for i := range p.fields {
		names[i] = p.fields[i].Name()
	}
	return names
}

// Field returns the field with the given name.
func (p InputsPanel) Field(name string) (FieldModel, bool) {
	for i := range p.fields {
		if p.fields[i].Name() == name {
			return p.fields[i], true
		}
	}
	return FieldModel{}, false
}

// SetDisabled toggles input handling on every field.
func (p *InputsPanel) SetDisabled(disabled bool) {
	for i := range p.fields {
		p.fields[i].SetDisabled(disabled)
	}
}

// SetWidth propagates the render width.
func (p *InputsPanel) SetWidth(w int) {
	p.width = w
	for i := range p.fields {
		p.fields[i].SetWidth(w)
	}
}
