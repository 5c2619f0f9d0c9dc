// Package tui provides the terminal prompts used by the interactive menu.
package tui

import (
	"io"
	"os"

	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/termenv"
)

// Styles holds the lipgloss styles shared by every prompt.
type Styles struct {
	Title    lipgloss.Style
	Selected lipgloss.Style
	Normal   lipgloss.Style
	Muted    lipgloss.Style
	Success  lipgloss.Style
	Error    lipgloss.Style
	Warning  lipgloss.Style
}

// NoColorRequested reports whether NO_COLOR is set in the environment.
func NoColorRequested() bool {
	_, ok := os.LookupEnv("NO_COLOR")
	return ok
}

// NewStyles builds styles that render for w. With noColor set every style
// degrades to plain text.
func NewStyles(w io.Writer, noColor bool) *Styles {
	r := lipgloss.NewRenderer(w)
	if noColor || NoColorRequested() {
		r.SetColorProfile(termenv.Ascii)
	}

	return &Styles{
		Title:    r.NewStyle().Bold(true).Foreground(lipgloss.Color("#6644FF")),
		Selected: r.NewStyle().Bold(true).Foreground(lipgloss.Color("86")),
		Normal:   r.NewStyle().Foreground(lipgloss.Color("252")),
		Muted:    r.NewStyle().Foreground(lipgloss.Color("241")),
		Success:  r.NewStyle().Foreground(lipgloss.Color("#A6E3A1")),
		Error:    r.NewStyle().Foreground(lipgloss.Color("#F38BA8")),
		Warning:  r.NewStyle().Foreground(lipgloss.Color("#F9E2AF")),
	}
}

// PlainStyles returns styles that never emit escape sequences.
func PlainStyles() *Styles {
	return NewStyles(io.Discard, true)
}
