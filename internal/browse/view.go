package browse

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/LISSConsulting/LISSTech.Flux/internal/cob"
	"github.com/LISSConsulting/LISSTech.Flux/internal/ui"
	"github.com/LISSConsulting/LISSTech.Flux/internal/ui/panels"
)

// Predict applies msgs to s the way the store will. Frontends use it to
// resolve several keys pressed before the next snapshot arrives.
func Predict(s State, msgs []Message) State {
	for _, m := range msgs {
		s, _ = s.Update(m)
	}
	return s
}

// Columns returns the table columns of a selector.
func Columns(kind Kind, theme ui.Theme) []panels.Column {
	state := func(cell string) lipgloss.Style { return theme.StateStyle(cell) }
	when := panels.Column{Title: "Updated", Width: 14, Style: dim(theme)}
	switch kind {
	case KindIssues:
		return []panels.Column{
			{Title: "", Width: 1, Style: state},
			{Title: "ID", Width: 7, Style: dim(theme)},
			{Title: "Title"},
			{Title: "Author", Width: 12},
			{Title: "Labels", Width: 16, Style: dim(theme)},
			when,
		}
	case KindPatches:
		return []panels.Column{
			{Title: "", Width: 1, Style: state},
			{Title: "ID", Width: 7, Style: dim(theme)},
			{Title: "Title"},
			{Title: "Author", Width: 12},
			{Title: "Head", Width: 7, Style: dim(theme)},
			when,
		}
	default:
		return []panels.Column{
			{Title: "", Width: 1},
			{Title: "ID", Width: 7, Style: dim(theme)},
			{Title: "Type", Width: 5, Style: dim(theme)},
			{Title: "Summary"},
			{Title: "Project", Width: 14},
			when,
		}
	}
}

func dim(theme ui.Theme) func(string) lipgloss.Style {
	return func(string) lipgloss.Style { return theme.Dim }
}

// Rows renders the visible items of s as table cells matching Columns.
// The marker cell of issues and patches holds the state so Column.Style
// can color it.
func Rows(s State) [][]string {
	rows := make([][]string, len(s.items))
	for i, it := range s.items {
		ago := cob.TimeAgo(s.now, it.Timestamp)
		switch s.kind {
		case KindIssues:
			rows[i] = []string{ui.StateIcon(it.State), cob.ShortID(it.ID), it.Title, it.Author, strings.Join(it.Labels, ","), ago}
		case KindPatches:
			rows[i] = []string{ui.StateIcon(it.State), cob.ShortID(it.ID), it.Title, it.Author, cob.ShortID(it.Head), ago}
		default:
			marker := "●"
			if it.Seen {
				marker = " "
			}
			rows[i] = []string{marker, cob.ShortID(it.ID), it.Kind.String(), it.Summary, it.Project, ago}
		}
	}
	return rows
}

// EmptyText is shown in place of rows when nothing is visible.
func EmptyText(s State) string {
	if s.Total() == 0 {
		return "nothing to show"
	}
	return fmt.Sprintf("no %s match %q", s.kind.Title(), s.Search())
}

// DetailLines renders the details of the selected item.
func DetailLines(s State, theme ui.Theme) []string {
	item, ok := s.Selected()
	if !ok {
		return nil
	}
	lines := []string{
		theme.Text.Bold(true).Render(item.Title),
		theme.Dim.Render(fmt.Sprintf("%s  %s  %s", cob.ShortID(item.ID), item.Author, cob.TimeAgo(s.now, item.Timestamp))),
	}
	if item.State != "" {
		lines = append(lines, theme.StateStyle(item.State).Render(item.State))
	}
	if len(item.Labels) > 0 {
		lines = append(lines, theme.Accent.Render(strings.Join(item.Labels, " ")))
	}
	if item.Summary != "" {
		lines = append(lines, "", item.Summary)
	}

	d := s.details
	switch {
	case d.ID != item.ID || d.Loading:
		return append(lines, "", theme.Dim.Render("loading…"))
	case d.Err != "":
		lines = append(lines, "", theme.Error.Render("error: "+d.Err))
	}
	if d.Body != "" {
		lines = append(lines, "")
		lines = append(lines, strings.Split(strings.TrimRight(d.Body, "\n"), "\n")...)
	}
	if len(d.Commits) > 0 {
		lines = append(lines, "", theme.Accent.Render(fmt.Sprintf("%d commits", len(d.Commits))))
		for _, c := range d.Commits {
			lines = append(lines, theme.Dim.Render(c.Hash)+" "+c.Subject+theme.Dim.Render(" ("+c.Author+")"))
		}
	}
	if d.Stat != "" {
		lines = append(lines, "")
		lines = append(lines, strings.Split(d.Stat, "\n")...)
	}
	return lines
}
