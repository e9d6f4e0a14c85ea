package browse

import (
	"context"
	"fmt"
	"time"

	"pkt.systems/pslog"

	"github.com/LISSConsulting/LISSTech.Flux/internal/cob"
	"github.com/LISSConsulting/LISSTech.Flux/internal/store"
)

// Options selects what Load lists.
type Options struct {
	Kind    Kind
	Mode    Mode
	Issues  cob.IssueFilter // KindIssues
	Patches cob.PatchFilter // KindPatches
	Sort    cob.SortBy      // KindInbox
	WorkDir string
	// Selected places the cursor on the item with this id when present.
	Selected string
	// Search is an initial applied search.
	Search string
	// Clock defaults to time.Now.
	Clock func() time.Time
}

// Load reads the items from repo and builds the initial state.
func Load(ctx context.Context, repo cob.Repository, opts Options) (State, error) {
	var (
		items  []Item
		filter string
	)
	switch opts.Kind {
	case KindInbox:
		ns, err := repo.Notifications()
		if err != nil {
			return State{}, fmt.Errorf("browse: load notifications: %w", err)
		}
		cob.SortNotifications(ns, opts.Sort)
		for _, n := range ns {
			items = append(items, notificationItem(n))
		}
	case KindIssues:
		is, err := repo.Issues(opts.Issues)
		if err != nil {
			return State{}, fmt.Errorf("browse: load issues: %w", err)
		}
		cob.SortIssues(is)
		for _, i := range is {
			items = append(items, issueItem(i))
		}
		filter = opts.Issues.String()
	case KindPatches:
		ps, err := repo.Patches(opts.Patches)
		if err != nil {
			return State{}, fmt.Errorf("browse: load patches: %w", err)
		}
		cob.SortPatches(ps)
		for _, p := range ps {
			items = append(items, patchItem(p))
		}
		filter = opts.Patches.String()
	default:
		return State{}, fmt.Errorf("browse: unknown kind %v", opts.Kind)
	}

	clock := opts.Clock
	if clock == nil {
		clock = time.Now
	}
	s := State{
		kind:     opts.Kind,
		mode:     opts.Mode,
		project:  repo.Project(),
		workDir:  opts.WorkDir,
		filter:   filter,
		all:      items,
		pageSize: 1,
		search:   store.NewValue(opts.Search),
		clock:    clock,
		now:      clock(),
	}
	s.items = filterItems(s.all, opts.Search)
	s.cursor = -1
	if len(s.items) > 0 {
		s.cursor = max(s.indexOf(opts.Selected), 0)
	}
	s.details = s.pendingDetails()

	pslog.Ctx(ctx).Debug("items loaded",
		"kind", opts.Kind.String(),
		"count", len(items),
		"visible", len(s.items),
		"cursor", s.cursor,
	)
	return s, nil
}

// Init returns the messages a run starts with: a Select of the initial
// item, so processors load its details.
func Init(s State) []Message {
	item, ok := s.Selected()
	if !ok {
		return nil
	}
	return []Message{Select{Index: s.cursor, ID: item.ID}}
}
