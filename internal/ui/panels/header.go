package panels

import (
	"os"
	"strings"

	"github.com/charmbracelet/x/ansi"

	"github.com/LISSConsulting/LISSTech.Flux/internal/ui"
)

// HeaderProps holds all data needed to render the header bar.
type HeaderProps struct {
	Title   string // "inbox", "issues", "patches"
	Project string
	WorkDir string
	Filter  string // e.g. "open"
	Count   int
}

// AbbreviatePath returns a display-friendly path, replacing the home
// directory with "~" and converting backslashes to forward slashes.
func AbbreviatePath(path string) string {
	if path == "" {
		return ""
	}
	if home, err := os.UserHomeDir(); err == nil && strings.HasPrefix(path, home) {
		path = "~" + path[len(home):]
	}
	return strings.ReplaceAll(path, "\\", "/")
}

// RenderHeader renders the accent colored header bar.
func RenderHeader(props HeaderProps, width int, theme ui.Theme) string {
	parts := []string{"flux " + props.Title}
	if props.Project != "" {
		parts = append(parts, props.Project)
	}
	if props.WorkDir != "" {
		parts = append(parts, AbbreviatePath(props.WorkDir))
	}
	if props.Filter != "" {
		parts = append(parts, "state: "+props.Filter)
	}
	parts = append(parts, countLabel(props.Count))

	content := ansi.Truncate(" "+strings.Join(parts, "  │  "), width, "…")
	return theme.Header.Width(width).Render(content)
}

func countLabel(n int) string {
	if n == 1 {
		return "1 item"
	}
	return itoa(n) + " items"
}
