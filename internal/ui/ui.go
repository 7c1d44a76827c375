// Package ui holds the console presentation layer: lipgloss styles for
// section headers, go-pretty tables for status output, and huh prompts
// for the few interactive questions dotup asks.
package ui

import (
	"fmt"
	"io"

	"github.com/charmbracelet/lipgloss"
)

var (
	headerStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("12")).
			MarginTop(1)

	subtleStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("8"))

	warnStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("11"))
)

// Header writes a styled section header.
func Header(w io.Writer, text string) {
	fmt.Fprintln(w, headerStyle.Render(text))
}

// Subtle writes de-emphasized helper text.
func Subtle(w io.Writer, text string) {
	fmt.Fprintln(w, subtleStyle.Render(text))
}

// Warn writes a highlighted warning line.
func Warn(w io.Writer, text string) {
	fmt.Fprintln(w, warnStyle.Render(text))
}
