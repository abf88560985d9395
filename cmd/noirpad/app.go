package main

import (
	"context"

	tea "github.com/charmbracelet/bubbletea"

	"noirpad/cmd/noirpad/ui"
	"noirpad/internal/abi"
	"noirpad/internal/eval"
	"noirpad/internal/expr"
)

// sourceChangedMsg signals the circuit source file changed on disk.
type sourceChangedMsg struct{}

func resultMsg(field string, r eval.Result) tea.Msg {
	return ui.ResultMsg{Name: field, Result: r}
}

// appModel wires the inputs panel to the evaluation orchestrator.
type appModel struct {
	panel  ui.InputsPanel
	orch   *eval.Orchestrator
	styles ui.Styles
	width  int
	height int
}

func newAppModel(params []abi.Parameter, orch *eval.Orchestrator) appModel {
	styles := ui.DefaultStyles()
	return appModel{
		panel:  ui.NewInputsPanel(params, styles),
		orch:   orch,
		styles: styles,
	}
}

func (m appModel) Init() tea.Cmd {
	return m.panel.Init()
}

func (m appModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width, m.height = msg.Width, msg.Height
		m.panel.SetWidth(msg.Width - 4)
		return m, nil

	case tea.KeyMsg:
		switch msg.String() {
		case "ctrl+c", "esc":
			return m, tea.Quit
		}

	case ui.ValueChangedMsg:
		m.orch.Submit(context.Background(), msg.Name, msg.Text, m.panel.Values())
		return m, nil

	case sourceChangedMsg:
		// Recompiled circuit: re-run every expression field.
		values := m.panel.Values()
		for name, text := range values {
			if a := expr.Analyze(text); a.IsExpression && !a.IsPartial {
				m.orch.Submit(context.Background(), name, text, values)
			}
		}
		return m, nil
	}

	var cmd tea.Cmd
	m.panel, cmd = m.panel.Update(msg)
	return m, cmd
}

func (m appModel) View() string {
	help := m.styles.Muted.Render("[Tab] Next field  [Esc] Quit")
	return m.panel.View() + "\n\n" + help
}
