// Package ui provides the terminal output used by the uikit CLI: a
// line-oriented Logger, a progress Spinner and an interactive yes/no
// prompt built on Bubble Tea.
//
// All output is rendered with a lipgloss renderer bound to the destination
// writer, so writing to a pipe or buffer produces plain text.
package ui
