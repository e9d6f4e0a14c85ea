package browse

import (
	"time"

	"github.com/LISSConsulting/LISSTech.Flux/internal/git"
	"github.com/LISSConsulting/LISSTech.Flux/internal/selection"
	"github.com/LISSConsulting/LISSTech.Flux/internal/store"
)

// Details is what is known about the item under the cursor beyond its row.
type Details struct {
	ID      string
	Loading bool
	Body    string
	Commits []git.Commit
	Stat    string
	Err     string
}

// State is the selector state. It is a value: Update and Tick return
// modified copies and never write to slices shared with earlier snapshots.
type State struct {
	kind    Kind
	mode    Mode
	project string
	workDir string
	filter  string

	all      []Item
	items    []Item // all, narrowed by the search
	cursor   int    // index into items, -1 when empty
	pageSize int

	search    store.Value[string]
	searching bool
	help      bool

	details Details
	now     time.Time
	clock   func() time.Time
	rev     uint64 // bumped by every change Update makes
}

// Kind returns what the selector lists.
func (s State) Kind() Kind { return s.kind }

// Mode returns what the selector returns.
func (s State) Mode() Mode { return s.mode }

// Project returns the repository name.
func (s State) Project() string { return s.project }

// WorkDir returns the repository path.
func (s State) WorkDir() string { return s.workDir }

// Filter describes the state filter the list was loaded with.
func (s State) Filter() string { return s.filter }

// Items returns the visible items. The slice must not be modified.
func (s State) Items() []Item { return s.items }

// Total returns the number of items before searching.
func (s State) Total() int { return len(s.all) }

// Cursor returns the index of the selected item, or -1.
func (s State) Cursor() int { return s.cursor }

// PageSize returns the number of rows the frontend reported.
func (s State) PageSize() int { return s.pageSize }

// Search returns the search text, pending or applied.
func (s State) Search() string { return s.search.Read() }

// Searching reports whether the search input is open.
func (s State) Searching() bool { return s.searching }

// Help reports whether the help page is shown.
func (s State) Help() bool { return s.help }

// Details returns the details of the selected item.
func (s State) Details() Details { return s.details }

// Now is the reference time for relative timestamps.
func (s State) Now() time.Time { return s.now }

// Selected returns the item under the cursor.
func (s State) Selected() (Item, bool) {
	if s.cursor < 0 || s.cursor >= len(s.items) {
		return Item{}, false
	}
	return s.items[s.cursor], true
}

// Equal reports whether two snapshots render the same.
func Equal(a, b State) bool {
	return a.rev == b.rev && a.now.Equal(b.now)
}

// Update applies msg.
func (s State) Update(msg Message) (State, *store.Exit[selection.Selection]) {
	switch m := msg.(type) {
	case Quit:
		return s, store.Quit[selection.Selection]()

	case Choose:
		item, ok := s.Selected()
		if !ok {
			return s, nil
		}
		sel := selection.Selection{}
		switch {
		case m.Operation != "":
			sel = sel.WithOperation(m.Operation)
		case s.mode == ModeOperation:
			sel = sel.WithOperation(OpShow)
		}
		return s, store.Return(sel.WithID(item.ID))

	case Select:
		i := s.indexOf(m.ID)
		if m.ID == "" && m.Index >= 0 && m.Index < len(s.items) {
			i = m.Index
		}
		if i < 0 || i == s.cursor {
			return s, nil
		}
		s.cursor = i
		s.details = s.pendingDetails()
		s.rev++

	case PageSizeChanged:
		size := max(m.Size, 1)
		if size == s.pageSize {
			return s, nil
		}
		s.pageSize = size
		s.rev++

	case OpenSearch:
		s.searching = true
		s.search = s.search.Write(s.search.Committed())
		s.rev++

	case UpdateSearch:
		s.search = s.search.Write(m.Value)
		s = s.refilter()
		s.rev++

	case ApplySearch:
		s.search = s.search.Apply()
		s.searching = false
		s = s.refilter()
		s.rev++

	case CloseSearch:
		s.search = s.search.Reset()
		s.searching = false
		s = s.refilter()
		s.rev++

	case ToggleHelp:
		s.help = !s.help
		s.rev++

	case DetailsLoaded:
		item, ok := s.Selected()
		if !ok || item.ID != m.ID {
			return s, nil
		}
		s.details = Details{
			ID:      m.ID,
			Body:    m.Body,
			Commits: m.Commits,
			Stat:    m.Stat,
			Err:     m.Err,
		}
		s.rev++
	}
	return s, nil
}

// Tick refreshes the reference time of relative timestamps.
func (s State) Tick() State {
	if s.clock != nil {
		s.now = s.clock()
	} else {
		s.now = time.Now()
	}
	return s
}

func (s State) indexOf(id string) int {
	if id == "" {
		return -1
	}
	for i, it := range s.items {
		if it.ID == id {
			return i
		}
	}
	return -1
}

// refilter recomputes the visible items, keeping the cursor on the same
// item when it is still visible.
func (s State) refilter() State {
	prev, hadPrev := s.Selected()
	s.items = filterItems(s.all, s.search.Read())

	switch {
	case len(s.items) == 0:
		s.cursor = -1
	case hadPrev && s.indexOf(prev.ID) >= 0:
		s.cursor = s.indexOf(prev.ID)
	default:
		s.cursor = 0
	}
	if cur, ok := s.Selected(); !ok || !hadPrev || cur.ID != prev.ID {
		s.details = s.pendingDetails()
	}
	return s
}

// pendingDetails marks the details of the selected item as loading.
func (s State) pendingDetails() Details {
	item, ok := s.Selected()
	if !ok {
		return Details{}
	}
	return Details{ID: item.ID, Loading: true}
}
