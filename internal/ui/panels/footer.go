package panels

import (
	"strconv"
	"strings"

	"github.com/charmbracelet/x/ansi"

	"github.com/LISSConsulting/LISSTech.Flux/internal/ui"
)

// FooterProps holds all data needed to render the footer bar.
type FooterProps struct {
	Search    string
	Searching bool // search input is open
	Position  int  // zero-based cursor, -1 for none
	Total     int
}

// Progress formats the "3/10" badge.
func Progress(position, total int) string {
	step := "-"
	if position >= 0 && total > 0 {
		step = itoa(min(position+1, total))
	}
	return step + "/" + itoa(total)
}

// RenderFooter renders the search field on the left and the position
// badge on the right.
func RenderFooter(props FooterProps, width int, theme ui.Theme) string {
	left := theme.Badge.Render(" / ") + " "
	switch {
	case props.Searching:
		left += theme.Accent.Render(props.Search + "█")
	case props.Search != "":
		left += theme.Search.Render(props.Search)
	default:
		left += theme.Dim.Render("search")
	}
	right := theme.Badge.Render(" " + Progress(props.Position, props.Total) + " ")

	gap := width - ansi.StringWidth(left) - ansi.StringWidth(right)
	if gap < 1 {
		left = ansi.Truncate(left, max(width-ansi.StringWidth(right)-1, 0), "…")
		gap = width - ansi.StringWidth(left) - ansi.StringWidth(right)
		if gap < 0 {
			return ansi.Truncate(right, width, "")
		}
	}
	return left + strings.Repeat(" ", gap) + right
}

func itoa(n int) string { return strconv.Itoa(n) }
