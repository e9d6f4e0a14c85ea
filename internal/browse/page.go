package browse

import (
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/lipgloss"

	"github.com/LISSConsulting/LISSTech.Flux/internal/input"
	"github.com/LISSConsulting/LISSTech.Flux/internal/ui"
	"github.com/LISSConsulting/LISSTech.Flux/internal/ui/components"
	"github.com/LISSConsulting/LISSTech.Flux/internal/ui/panels"
)

// Page is the selector as a tree component: header, table and details
// side by side or stacked, footer and shortcut bar. The details scroll
// position is view-local; everything else comes from the snapshot.
type Page struct {
	theme     ui.Theme
	shortcuts components.Shortcuts
	details   components.DetailsView

	state  State
	width  int
	height int
	layout ui.Layout
}

// NewPage creates a Page drawn with theme.
func NewPage(theme ui.Theme) *Page {
	return &Page{
		theme:     theme,
		shortcuts: components.NewShortcuts(theme.Accent),
		details:   components.NewDetailsView(0, 0),
	}
}

// Update implements tree.Component.
func (p *Page) Update(s State) {
	p.state = s
	p.refreshDetails()
}

// HandleKey implements tree.Component.
func (p *Page) HandleKey(k input.Key) []Message {
	km := Keys(p.state.kind, p.state.mode)
	if !p.state.searching && !p.state.help {
		_, h := p.layout.Details.Inner()
		half := max(h/2, 1)
		switch {
		case key.Matches(k, km.DetailsDown):
			p.details = p.details.ScrollDown(half)
			return nil
		case key.Matches(k, km.DetailsUp):
			p.details = p.details.ScrollUp(half)
			return nil
		}
	}
	msgs := KeyMessages(p.state, k)
	p.state = Predict(p.state, msgs)
	p.refreshDetails()
	return msgs
}

// Resize implements tree.Component.
func (p *Page) Resize(width, height int) []Message {
	p.width, p.height = width, height
	p.layout = ui.Calculate(width, height, true)
	if p.layout.TooSmall {
		return nil
	}
	p.details = p.details.SetSize(p.layout.Details.Inner())
	return []Message{PageSizeChanged{Size: panels.PageSize(p.layout.Table.Height)}}
}

func (p *Page) refreshDetails() {
	item, _ := p.state.Selected()
	p.details = p.details.SetContent(item.ID, DetailLines(p.state, p.theme))
}

// View implements tree.Component.
func (p *Page) View() string {
	l := p.layout
	if l.TooSmall {
		return p.theme.Dim.Render("terminal too small")
	}
	s := p.state
	km := Keys(s.kind, s.mode)

	header := panels.RenderHeader(panels.HeaderProps{
		Title:   s.kind.Title(),
		Project: s.project,
		WorkDir: s.workDir,
		Filter:  s.filter,
		Count:   s.Total(),
	}, p.width, p.theme)

	var body string
	if s.help {
		help := p.shortcuts.Full(km.FullHelp(), p.width)
		body = lipgloss.NewStyle().Width(p.width).Height(p.height - 3).Render(help)
	} else {
		table := panels.RenderTable(panels.TableProps{
			Columns: Columns(s.kind, p.theme),
			Rows:    Rows(s),
			Cursor:  s.cursor,
			Empty:   EmptyText(s),
		}, l.Table.Width, l.Table.Height, p.theme)

		w, h := l.Details.Inner()
		details := p.theme.PanelBorderStyle(false).Width(w).Height(h).Render(p.details.View())
		if l.Details.X > 0 {
			body = lipgloss.JoinHorizontal(lipgloss.Top, table, details)
		} else {
			body = lipgloss.JoinVertical(lipgloss.Left, table, details)
		}
	}

	footer := panels.RenderFooter(panels.FooterProps{
		Search:    s.Search(),
		Searching: s.searching,
		Position:  s.cursor,
		Total:     len(s.items),
	}, p.width, p.theme)

	hints := km.ShortHelp()
	if s.searching {
		hints = km.SearchHelp()
	}
	bar := p.shortcuts.Short(hints, p.width)

	return strings.Join([]string{header, body, footer, bar}, "\n")
}

