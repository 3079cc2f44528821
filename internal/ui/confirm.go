package ui

import (
	"context"
	"errors"
	"io"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

// ErrInterrupted is returned when the user aborts a prompt.
var ErrInterrupted = errors.New("ui: prompt interrupted")

// Confirmer asks the user a yes/no question.
type Confirmer interface {
	Confirm(ctx context.Context, question string, def bool) (bool, error)
}

// ConfirmModel is the Bubble Tea model for a yes/no prompt.
type ConfirmModel struct {
	question    string
	def         bool
	answer      bool
	done        bool
	interrupted bool
}

// NewConfirm creates a prompt for question; def is the answer used when the
// user just presses enter.
func NewConfirm(question string, def bool) ConfirmModel {
	return ConfirmModel{question: question, def: def}
}

// Answer returns the chosen answer.
func (m ConfirmModel) Answer() bool {
	return m.answer
}

// Done reports whether the user answered.
func (m ConfirmModel) Done() bool {
	return m.done
}

// Interrupted reports whether the user aborted the prompt.
func (m ConfirmModel) Interrupted() bool {
	return m.interrupted
}

// Init implements tea.Model
func (m ConfirmModel) Init() tea.Cmd {
	return nil
}

// Update implements tea.Model
func (m ConfirmModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	keyMsg, ok := msg.(tea.KeyMsg)
	if !ok || m.done || m.interrupted {
		return m, nil
	}

	switch {
	case key.Matches(keyMsg, confirmKeys.Quit):
		m.interrupted = true
		return m, tea.Quit
	case key.Matches(keyMsg, confirmKeys.Yes):
		m.answer = true
	case key.Matches(keyMsg, confirmKeys.No):
		m.answer = false
	case key.Matches(keyMsg, confirmKeys.Default):
		m.answer = m.def
	default:
		return m, nil
	}

	m.done = true
	return m, tea.Quit
}

// View implements tea.Model
func (m ConfirmModel) View() string {
	questionStyle := lipgloss.NewStyle().Bold(true)
	markStyle := lipgloss.NewStyle().Foreground(lipgloss.Color("39"))
	hintStyle := lipgloss.NewStyle().Faint(true)

	var b strings.Builder
	b.WriteString(markStyle.Render("?"))
	b.WriteString(" ")
	b.WriteString(questionStyle.Render(m.question))
	b.WriteString(" ")

	switch {
	case m.interrupted:
		b.WriteString(hintStyle.Render("(aborted)"))
		b.WriteString("\n")
	case m.done:
		if m.answer {
			b.WriteString("yes")
		} else {
			b.WriteString("no")
		}
		b.WriteString("\n")
	case m.def:
		b.WriteString(hintStyle.Render("(Y/n)"))
	default:
		b.WriteString(hintStyle.Render("(y/N)"))
	}

	return b.String()
}

// confirmKeyMap defines the key bindings for the prompt
type confirmKeyMap struct {
	Yes     key.Binding
	No      key.Binding
	Default key.Binding
	Quit    key.Binding
}

var confirmKeys = confirmKeyMap{
	Yes: key.NewBinding(
		key.WithKeys("y", "Y"),
	),
	No: key.NewBinding(
		key.WithKeys("n", "N"),
	),
	Default: key.NewBinding(
		key.WithKeys("enter"),
	),
	Quit: key.NewBinding(
		key.WithKeys("ctrl+c", "esc"),
	),
}

// TerminalConfirmer runs the prompt on a terminal.
type TerminalConfirmer struct {
	In  io.Reader
	Out io.Writer
}

// Confirm implements Confirmer.
func (c *TerminalConfirmer) Confirm(ctx context.Context, question string, def bool) (bool, error) {
	p := tea.NewProgram(
		NewConfirm(question, def),
		tea.WithContext(ctx),
		tea.WithInput(c.In),
		tea.WithOutput(c.Out),
	)

	final, err := p.Run()
	if err != nil {
		if ctxErr := ctx.Err(); ctxErr != nil {
			return false, ctxErr
		}
		return false, err
	}

	m, ok := final.(ConfirmModel)
	if !ok {
		return false, nil
	}
	if m.Interrupted() {
		return false, ErrInterrupted
	}
	return m.Answer(), nil
}

// DefaultConfirmer answers every question with its default, for
// non-interactive sessions.
type DefaultConfirmer struct{}

// Confirm implements Confirmer.
func (DefaultConfirmer) Confirm(ctx context.Context, question string, def bool) (bool, error) {
	return def, nil
}
