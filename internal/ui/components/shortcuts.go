package components

import (
	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/lipgloss"
)

// Shortcuts renders key bindings as a one-line hint bar or as a full help
// page, using bubbles/help.
type Shortcuts struct {
	model help.Model
}

// NewShortcuts creates a Shortcuts renderer whose key names use accent.
func NewShortcuts(accent lipgloss.Style) Shortcuts {
	m := help.New()
	m.ShortSeparator = " ∙ "
	m.Styles.ShortKey = accent
	m.Styles.FullKey = accent
	return Shortcuts{model: m}
}

// Short renders enabled bindings on a single line of at most width cells.
func (s Shortcuts) Short(bindings []key.Binding, width int) string {
	s.model.Width = width
	return s.model.ShortHelpView(bindings)
}

// Full renders binding groups as columns.
func (s Shortcuts) Full(groups [][]key.Binding, width int) string {
	s.model.Width = width
	return s.model.FullHelpView(groups)
}
