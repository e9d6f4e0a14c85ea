// Package ui holds the styling and layout shared by the flux frontends.
package ui

import "github.com/charmbracelet/lipgloss"

// DefaultAccentColor is the default accent color (indigo).
const DefaultAccentColor = "#7D56F4"

// Color palette.
var (
	colorWhite  = lipgloss.Color("#FAFAFA")
	colorBlack  = lipgloss.Color("#1A1A1A")
	colorGray   = lipgloss.Color("#888888")
	colorBlue   = lipgloss.Color("#5B9BD5")
	colorGreen  = lipgloss.Color("#6BCB77")
	colorYellow = lipgloss.Color("#FFD93D")
	colorRed    = lipgloss.Color("#FF6B6B")
	colorPurple = lipgloss.Color("#B48EAD")
)

// StateColor returns the color for an issue or patch state label.
func StateColor(state string) lipgloss.Color {
	switch state {
	case "open":
		return colorGreen
	case "closed":
		return colorRed
	case "draft":
		return colorGray
	case "merged":
		return colorPurple
	case "archived":
		return colorYellow
	default:
		return colorBlue
	}
}

// StateIcon returns the one-cell marker drawn in front of a row.
func StateIcon(state string) string {
	switch state {
	case "open", "merged", "closed", "archived":
		return "●"
	case "draft":
		return "○"
	default:
		return "•"
	}
}
