package ui

import (
	"fmt"
	"io"
	"sync"

	"github.com/charmbracelet/lipgloss"
)

// Logger writes user-facing messages, one per line.
type Logger struct {
	mu  sync.Mutex
	out io.Writer

	info    lipgloss.Style
	warn    lipgloss.Style
	success lipgloss.Style
	err     lipgloss.Style
}

// NewLogger creates a Logger writing to w.
func NewLogger(w io.Writer) *Logger {
	r := lipgloss.NewRenderer(w)
	return &Logger{
		out:     w,
		info:    r.NewStyle().Foreground(lipgloss.Color("39")),
		warn:    r.NewStyle().Foreground(lipgloss.Color("214")),
		success: r.NewStyle().Foreground(lipgloss.Color("42")),
		err:     r.NewStyle().Foreground(lipgloss.Color("196")),
	}
}

func (l *Logger) println(s string) {
	l.mu.Lock()
	defer l.mu.Unlock()
	fmt.Fprintln(l.out, s)
}

// Log prints msg without styling.
func (l *Logger) Log(msg string) {
	l.println(msg)
}

// Break prints an empty line.
func (l *Logger) Break() {
	l.println("")
}

// Info prints an informational message.
func (l *Logger) Info(msg string) {
	l.println(l.info.Render(msg))
}

// Warn prints a warning.
func (l *Logger) Warn(msg string) {
	l.println(l.warn.Render(msg))
}

// Success prints a success message.
func (l *Logger) Success(msg string) {
	l.println(l.success.Render(msg))
}

// Error prints an error message.
func (l *Logger) Error(msg string) {
	l.println(l.err.Render(msg))
}
