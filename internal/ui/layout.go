package ui

// Rect represents a rectangular region of the terminal.
type Rect struct {
	X, Y, Width, Height int
}

// Layout holds the computed panel geometry for a given terminal size.
type Layout struct {
	Header, Table, Details Rect
	Footer, Shortcuts      Rect
	TooSmall               bool // true when the terminal is below 40×6
}

// Minimum usable terminal size.
const (
	MinWidth  = 40
	MinHeight = 6
)

// sideBySideWidth is the width from which details sit next to the table.
const sideBySideWidth = 100

// Calculate computes the page layout for a terminal of the given size.
//
//   - Header: full width, 1 row at top
//   - Footer: full width, 1 row above the shortcuts
//   - Shortcuts: full width, 1 row at the bottom
//   - Table and Details share the body. With details enabled the table
//     takes 60% of the width on wide terminals and 60% of the height
//     otherwise.
func Calculate(width, height int, details bool) Layout {
	if width < MinWidth || height < MinHeight {
		return Layout{TooSmall: true}
	}

	bodyY := 1
	bodyH := height - 3

	l := Layout{
		Header:    Rect{X: 0, Y: 0, Width: width, Height: 1},
		Footer:    Rect{X: 0, Y: height - 2, Width: width, Height: 1},
		Shortcuts: Rect{X: 0, Y: height - 1, Width: width, Height: 1},
		Table:     Rect{X: 0, Y: bodyY, Width: width, Height: bodyH},
	}
	if !details {
		return l
	}

	if width >= sideBySideWidth {
		tableW := width * 60 / 100
		l.Table = Rect{X: 0, Y: bodyY, Width: tableW, Height: bodyH}
		l.Details = Rect{X: tableW, Y: bodyY, Width: width - tableW, Height: bodyH}
		return l
	}

	tableH := bodyH * 60 / 100
	if tableH < 2 {
		tableH = 2
	}
	l.Table = Rect{X: 0, Y: bodyY, Width: width, Height: tableH}
	l.Details = Rect{X: 0, Y: bodyY + tableH, Width: width, Height: bodyH - tableH}
	return l
}

// Inner returns the content size of r inside a one-cell border.
func (r Rect) Inner() (int, int) {
	w, h := r.Width-2, r.Height-2
	if w < 0 {
		w = 0
	}
	if h < 0 {
		h = 0
	}
	return w, h
}
