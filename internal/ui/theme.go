package ui

import "github.com/charmbracelet/lipgloss"

// Theme holds the accent-color-derived styles of one run.
type Theme struct {
	Header   lipgloss.Style // title bar
	Selected lipgloss.Style // row under the cursor
	Text     lipgloss.Style
	Dim      lipgloss.Style
	Badge    lipgloss.Style // small inverted labels, e.g. "3/10"
	Search   lipgloss.Style
	Error    lipgloss.Style
	Accent   lipgloss.Style

	borderFocused   lipgloss.Style
	borderUnfocused lipgloss.Style
}

// NewTheme creates a Theme from a hex accent color string (e.g. "#7D56F4").
// An empty accentColor selects the default. dark picks text colors readable
// on a dark background.
func NewTheme(accentColor string, dark bool) Theme {
	color := DefaultAccentColor
	if accentColor != "" {
		color = accentColor
	}
	c := lipgloss.Color(color)

	text := colorBlack
	if dark {
		text = colorWhite
	}

	return Theme{
		Header: lipgloss.NewStyle().
			Background(c).
			Foreground(lipgloss.Color("#FFFFFF")).
			Bold(true),
		Selected: lipgloss.NewStyle().
			Foreground(c).
			Bold(true),
		Text:   lipgloss.NewStyle().Foreground(text),
		Dim:    lipgloss.NewStyle().Foreground(colorGray),
		Badge:  lipgloss.NewStyle().Background(colorGray).Foreground(lipgloss.Color("#FFFFFF")),
		Search: lipgloss.NewStyle().Foreground(colorPurple),
		Error:  lipgloss.NewStyle().Foreground(colorRed).Bold(true),
		Accent: lipgloss.NewStyle().Foreground(c),
		borderFocused: lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(c),
		borderUnfocused: lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(colorGray),
	}
}

// PanelBorderStyle returns the border style for a panel depending on
// whether it holds keyboard focus.
func (t Theme) PanelBorderStyle(focused bool) lipgloss.Style {
	if focused {
		return t.borderFocused
	}
	return t.borderUnfocused
}

// StateStyle renders an issue or patch state label in its color.
func (t Theme) StateStyle(state string) lipgloss.Style {
	return lipgloss.NewStyle().Foreground(StateColor(state))
}
