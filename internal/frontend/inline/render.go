package inline

import (
	"io"
	"strings"

	"github.com/charmbracelet/x/ansi"
)

// draw replaces the region with lines, truncated to width cells and to the
// region height. Lines left over from a taller frame are blanked.
func (r *renderer) draw(lines []string, width int) error {
	n := min(len(lines), r.height)
	total := max(n, r.drawn)

	var b strings.Builder
	if r.drawn == 0 {
		b.WriteString(ansi.HideCursor)
	}
	r.toTop(&b)
	for i := 0; i < total; i++ {
		if i > 0 {
			b.WriteString("\r\n")
		}
		b.WriteString(ansi.EraseEntireLine)
		if i < n {
			b.WriteString(ansi.Truncate(lines[i], width, ""))
		}
	}
	r.drawn = total

	_, err := io.WriteString(r.w, b.String())
	return err
}

// clear blanks the region, leaves the cursor where the region began and
// shows it again.
func (r *renderer) clear() error {
	if r.drawn == 0 {
		return nil
	}
	var b strings.Builder
	r.toTop(&b)
	for i := 0; i < r.drawn; i++ {
		if i > 0 {
			b.WriteString("\r\n")
		}
		b.WriteString(ansi.EraseEntireLine)
	}
	r.toTop(&b)
	b.WriteString(ansi.ShowCursor)
	r.drawn = 0

	_, err := io.WriteString(r.w, b.String())
	return err
}

// toTop moves the cursor to the first column of the region's first line.
func (r *renderer) toTop(b *strings.Builder) {
	if r.drawn > 1 {
		b.WriteString(ansi.CursorUp(r.drawn - 1))
	}
	b.WriteByte('\r')
}
