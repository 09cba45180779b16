package model

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/bnema/embedview/internal/cli/styles"
)

const maxConsoleEntries = 200

// Evaluator issues script asynchronously and calls done exactly once.
type Evaluator func(script string, done func(result string, err error))

// ResultMsg delivers a completed evaluation to the console.
type ResultMsg struct {
	Script string
	Result string
	Err    error
}

type consoleEntry struct {
	script string
	result string
	err    error
}

// ConsoleModel is an interactive JavaScript console bound to one page.
type ConsoleModel struct {
	theme    *styles.Theme
	renderer *styles.PageRenderer
	input    textinput.Model
	spinner  spinner.Model
	eval     Evaluator
	location string

	entries  []consoleEntry
	pending  int
	quitting bool
}

// NewConsoleModel creates a console evaluating through eval.
func NewConsoleModel(theme *styles.Theme, location string, eval Evaluator) ConsoleModel {
	ti := styles.NewScriptInput(theme)
	ti.Focus()

	return ConsoleModel{
		theme:    theme,
		renderer: styles.NewPageRenderer(theme),
		input:    ti,
		spinner:  styles.NewDefaultSpinner(theme),
		eval:     eval,
		location: location,
	}
}

// Init implements tea.Model.
func (m ConsoleModel) Init() tea.Cmd {
	return tea.Batch(textinput.Blink, m.spinner.Tick)
}

// Update implements tea.Model.
func (m ConsoleModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.Type {
		case tea.KeyCtrlC, tea.KeyEsc:
			m.quitting = true
			return m, tea.Quit
		case tea.KeyEnter:
			script := strings.TrimSpace(m.input.Value())
			if script == "" {
				return m, nil
			}
			m.input.Reset()
			m.pending++
			return m, m.evaluate(script)
		}

	case ResultMsg:
		m.pending--
		m.entries = append(m.entries, consoleEntry{script: msg.Script, result: msg.Result, err: msg.Err})
		if len(m.entries) > maxConsoleEntries {
			m.entries = m.entries[len(m.entries)-maxConsoleEntries:]
		}
		return m, nil

	case spinner.TickMsg:
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd
	}

	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

// evaluate blocks a command goroutine until the page answers.
func (m ConsoleModel) evaluate(script string) tea.Cmd {
	eval := m.eval
	return func() tea.Msg {
		done := make(chan ResultMsg, 1)
		eval(script, func(result string, err error) {
			done <- ResultMsg{Script: script, Result: result, Err: err}
		})
		return <-done
	}
}

// View implements tea.Model.
func (m ConsoleModel) View() string {
	if m.quitting {
		return ""
	}

	var b strings.Builder
	b.WriteString(m.theme.BoxHeader.Render("console · " + m.location))
	b.WriteString("\n")

	for _, e := range m.entries {
		fmt.Fprintf(&b, "%s %s\n", m.theme.HelpKey.Render("›"), m.theme.Normal.Render(e.script))
		fmt.Fprintf(&b, "  %s\n", m.renderer.RenderResult(e.result, e.err))
	}

	if m.pending > 0 {
		fmt.Fprintf(&b, "%s %s\n", m.spinner.View(), m.theme.Subtle.Render(fmt.Sprintf("%d pending", m.pending)))
	}

	b.WriteString(m.theme.InputBox(m.input.View(), m.input.Focused()))
	b.WriteString("\n")
	b.WriteString(m.theme.HelpKey.Render("enter"))
	b.WriteString(m.theme.HelpDesc.Render(" evaluate  "))
	b.WriteString(m.theme.HelpKey.Render("esc"))
	b.WriteString(m.theme.HelpDesc.Render(" quit"))
	return b.String()
}
