package browse

import (
	"context"
	"fmt"

	"github.com/LISSConsulting/LISSTech.Flux/internal/cob"
	"github.com/LISSConsulting/LISSTech.Flux/internal/git"
	"github.com/LISSConsulting/LISSTech.Flux/internal/state"
)

// commitLimit caps the commits shown for a patch.
const commitLimit = 20

// History is the part of the git runner the details processor needs.
type History interface {
	Log(ctx context.Context, base, head string, limit int) ([]git.Commit, error)
	DiffStat(ctx context.Context, base, head string) (string, error)
}

// DetailsProcessor answers Select with the details of the selected object:
// the body of an issue, the commits and diff stat of a patch. For inbox
// items it describes the object the notification is about.
type DetailsProcessor struct {
	Kind    Kind
	Repo    cob.Repository
	History History // nil skips commit details
}

// Name implements worker.Processor.
func (p *DetailsProcessor) Name() string { return "details" }

// Process implements worker.Processor.
func (p *DetailsProcessor) Process(ctx context.Context, msg Message) ([]Message, error) {
	sel, ok := msg.(Select)
	if !ok || sel.ID == "" {
		return nil, nil
	}

	objKind, objID := cob.KindIssue, sel.ID
	switch p.Kind {
	case KindPatches:
		objKind = cob.KindPatch
	case KindInbox:
		n, err := p.notification(sel.ID)
		if err != nil {
			return nil, err
		}
		objKind, objID = n.Kind, n.ObjectID
	}

	loaded := DetailsLoaded{ID: sel.ID}
	switch objKind {
	case cob.KindIssue:
		issue, err := p.Repo.Issue(objID)
		if err != nil {
			return nil, fmt.Errorf("details: issue %s: %w", cob.ShortID(objID), err)
		}
		loaded.Body = issue.Body
	case cob.KindPatch:
		patch, err := p.Repo.Patch(objID)
		if err != nil {
			return nil, fmt.Errorf("details: patch %s: %w", cob.ShortID(objID), err)
		}
		if p.History == nil {
			break
		}
		// git failures are shown in place of the commits.
		commits, err := p.History.Log(ctx, patch.Base, patch.Head, commitLimit)
		if err != nil {
			loaded.Err = err.Error()
			break
		}
		loaded.Commits = commits
		stat, err := p.History.DiffStat(ctx, patch.Base, patch.Head)
		if err != nil {
			loaded.Err = err.Error()
			break
		}
		loaded.Stat = stat
	}
	return []Message{loaded}, nil
}

func (p *DetailsProcessor) notification(id string) (cob.Notification, error) {
	ns, err := p.Repo.Notifications()
	if err != nil {
		return cob.Notification{}, fmt.Errorf("details: notifications: %w", err)
	}
	for _, n := range ns {
		if n.ID == id {
			return n, nil
		}
	}
	return cob.Notification{}, fmt.Errorf("details: notification %s: %w", cob.ShortID(id), cob.ErrNotFound)
}

// Saved is the UI state remembered between runs of a selector.
type Saved struct {
	Selected string `json:"selected"`
}

// PersistProcessor remembers the selected item so the next run of the same
// selector starts on it.
type PersistProcessor struct {
	Store *state.FileStore
}

// Name implements worker.Processor.
func (p *PersistProcessor) Name() string { return "persist" }

// Process implements worker.Processor.
func (p *PersistProcessor) Process(_ context.Context, msg Message) ([]Message, error) {
	sel, ok := msg.(Select)
	if !ok || sel.ID == "" {
		return nil, nil
	}
	if err := state.Save(p.Store, Saved{Selected: sel.ID}); err != nil {
		return nil, fmt.Errorf("persist: %w", err)
	}
	return nil, nil
}
