package browse

import (
	"strings"

	"github.com/charmbracelet/bubbles/key"

	"github.com/LISSConsulting/LISSTech.Flux/internal/frontend/inline"
	"github.com/LISSConsulting/LISSTech.Flux/internal/ui"
	"github.com/LISSConsulting/LISSTech.Flux/internal/ui/components"
	"github.com/LISSConsulting/LISSTech.Flux/internal/ui/panels"
)

// Compact is the selector as an immediate-mode app: header, table, footer
// and shortcut bar, redrawn from scratch every frame. It has no details
// panel.
type Compact struct {
	theme     ui.Theme
	shortcuts components.Shortcuts
}

// NewCompact creates a Compact drawn with theme.
func NewCompact(theme ui.Theme) *Compact {
	return &Compact{theme: theme, shortcuts: components.NewShortcuts(theme.Accent)}
}

// chromeLines is the number of lines around the table.
const chromeLines = 3

// Show implements inline.App.
func (c *Compact) Show(u *inline.UI[Message], s State) []string {
	for _, k := range u.Keys() {
		msgs := KeyMessages(s, k)
		u.Send(msgs...)
		s = Predict(s, msgs)
	}

	width, height := u.Size()
	tableH := max(height-chromeLines, 2)
	if size := panels.PageSize(tableH); size != s.pageSize {
		u.Send(PageSizeChanged{Size: size})
	}

	km := Keys(s.kind, s.mode)
	lines := []string{panels.RenderHeader(panels.HeaderProps{
		Title:   s.kind.Title(),
		Project: s.project,
		WorkDir: s.workDir,
		Filter:  s.filter,
		Count:   s.Total(),
	}, width, c.theme)}

	if s.help {
		lines = append(lines, strings.Split(c.shortcuts.Full(km.FullHelp(), width), "\n")...)
		return append(lines, c.shortcuts.Short([]key.Binding{km.Help}, width))
	}

	table := panels.RenderTable(panels.TableProps{
		Columns: Columns(s.kind, c.theme),
		Rows:    Rows(s),
		Cursor:  s.cursor,
		Empty:   EmptyText(s),
	}, width, tableH, c.theme)
	lines = append(lines, strings.Split(table, "\n")...)

	lines = append(lines, panels.RenderFooter(panels.FooterProps{
		Search:    s.Search(),
		Searching: s.searching,
		Position:  s.cursor,
		Total:     len(s.items),
	}, width, c.theme))

	hints := km.ShortHelp()
	if s.searching {
		hints = km.SearchHelp()
	}
	return append(lines, c.shortcuts.Short(hints, width))
}
