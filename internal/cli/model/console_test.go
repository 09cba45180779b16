package model

import (
	"errors"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bnema/embedview/internal/cli/styles"
)

func TestConsoleModel_EvaluatesOnEnter(t *testing.T) {
	var scripts []string
	eval := func(script string, done func(string, error)) {
		scripts = append(scripts, script)
		done("2", nil)
	}
	m := NewConsoleModel(styles.NewTheme(), "about:blank", eval)
	m.input.SetValue("  1+1 ")

	next, cmd := m.Update(tea.KeyMsg{Type: tea.KeyEnter})
	require.NotNil(t, cmd)
	m = next.(ConsoleModel)
	assert.Equal(t, 1, m.pending)
	assert.Empty(t, m.input.Value())

	msg := cmd()
	result, ok := msg.(ResultMsg)
	require.True(t, ok)
	assert.Equal(t, "1+1", result.Script)
	assert.Equal(t, "2", result.Result)

	next, _ = m.Update(result)
	m = next.(ConsoleModel)
	assert.Equal(t, 0, m.pending)
	assert.Equal(t, []string{"1+1"}, scripts)
	assert.Contains(t, m.View(), "1+1")
	assert.Contains(t, m.View(), "2")
}

func TestConsoleModel_IgnoresBlankInput(t *testing.T) {
	m := NewConsoleModel(styles.NewTheme(), "about:blank", func(string, func(string, error)) {
		t.Fatal("blank input must not be evaluated")
	})

	next, cmd := m.Update(tea.KeyMsg{Type: tea.KeyEnter})
	assert.Nil(t, cmd)
	assert.Equal(t, 0, next.(ConsoleModel).pending)
}

func TestConsoleModel_RendersErrors(t *testing.T) {
	m := NewConsoleModel(styles.NewTheme(), "about:blank", nil)
	m.pending = 1

	next, _ := m.Update(ResultMsg{Script: "x", Err: errors.New("ReferenceError: x is not defined")})
	assert.Contains(t, next.View(), "ReferenceError")
}

func TestConsoleModel_QuitsOnEsc(t *testing.T) {
	m := NewConsoleModel(styles.NewTheme(), "about:blank", nil)

	next, cmd := m.Update(tea.KeyMsg{Type: tea.KeyEsc})
	require.NotNil(t, cmd)
	assert.IsType(t, tea.QuitMsg{}, cmd())
	assert.Empty(t, next.View())
}
