// Package ui holds terminal styling and interactive prompts for the CLI.
package ui

import (
	"io"
	"os"

	"github.com/charmbracelet/lipgloss"
	"golang.org/x/term"
)

var (
	headingStyle = lipgloss.NewStyle().Bold(true)
	keyStyle     = lipgloss.NewStyle().Foreground(lipgloss.Color("6")).Bold(true)
	dimStyle     = lipgloss.NewStyle().Faint(true)
	okStyle      = lipgloss.NewStyle().Foreground(lipgloss.Color("2"))
	warnStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("3"))
	errStyle     = lipgloss.NewStyle().Foreground(lipgloss.Color("1")).Bold(true)
)

// Styler renders text for one output stream. Styling is off when the stream
// is not a terminal or NO_COLOR is set.
type Styler struct {
	enabled bool
}

// NewStyler inspects w to decide whether to emit styles.
func NewStyler(w io.Writer) Styler {
	if os.Getenv("NO_COLOR") != "" {
		return Styler{}
	}
	f, ok := w.(*os.File)
	return Styler{enabled: ok && term.IsTerminal(int(f.Fd()))}
}

// Plain returns a Styler that never styles.
func Plain() Styler { return Styler{} }

func (s Styler) render(st lipgloss.Style, text string) string {
	if !s.enabled {
		return text
	}
	return st.Render(text)
}

func (s Styler) Heading(text string) string { return s.render(headingStyle, text) }
func (s Styler) Key(text string) string     { return s.render(keyStyle, text) }
func (s Styler) Dim(text string) string     { return s.render(dimStyle, text) }
func (s Styler) OK(text string) string      { return s.render(okStyle, text) }
func (s Styler) Warn(text string) string    { return s.render(warnStyle, text) }
func (s Styler) Error(text string) string   { return s.render(errStyle, text) }
