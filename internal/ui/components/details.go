// Package components provides stateful widgets used by the tree frontend.
package components

import (
	"strings"

	"github.com/charmbracelet/bubbles/viewport"
)

// DetailsView is a scrollable text panel that wraps bubbles/viewport.
// Replacing the content of a different object scrolls back to the top;
// refreshing the same object keeps the scroll position.
type DetailsView struct {
	vp     viewport.Model
	key    string // object the content belongs to
	lines  []string
	width  int
	height int
}

// NewDetailsView creates a DetailsView with the given dimensions.
func NewDetailsView(w, h int) DetailsView {
	return DetailsView{
		vp:     viewport.New(w, h),
		width:  w,
		height: h,
	}
}

// SetContent replaces the shown lines. key identifies the object the lines
// describe.
func (v DetailsView) SetContent(key string, lines []string) DetailsView {
	v.lines = make([]string, len(lines))
	copy(v.lines, lines)
	v.vp.SetContent(strings.Join(v.lines, "\n"))
	if key != v.key {
		v.key = key
		v.vp.GotoTop()
	}
	return v
}

// SetSize resizes the view.
func (v DetailsView) SetSize(w, h int) DetailsView {
	v.width = w
	v.height = h
	v.vp.Width = w
	v.vp.Height = h
	return v
}

// ScrollDown moves the view n lines down.
func (v DetailsView) ScrollDown(n int) DetailsView {
	v.vp.LineDown(n)
	return v
}

// ScrollUp moves the view n lines up.
func (v DetailsView) ScrollUp(n int) DetailsView {
	v.vp.LineUp(n)
	return v
}

// Offset returns the first visible line.
func (v DetailsView) Offset() int {
	return v.vp.YOffset
}

// View renders the visible part of the content.
func (v DetailsView) View() string {
	return v.vp.View()
}
