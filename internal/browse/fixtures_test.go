package browse

import (
	"context"
	"testing"
	"time"

	"github.com/LISSConsulting/LISSTech.Flux/internal/cob"
	"github.com/LISSConsulting/LISSTech.Flux/internal/git"
)

var testNow = time.Date(2026, 3, 10, 12, 0, 0, 0, time.UTC)

func fixedClock() time.Time { return testNow }

// fakeRepo is an in-memory cob.Repository.
type fakeRepo struct {
	issues        []cob.Issue
	patches       []cob.Patch
	notifications []cob.Notification
	err           error
}

func (r *fakeRepo) Project() string { return "flux" }

func (r *fakeRepo) Issues(f cob.IssueFilter) ([]cob.Issue, error) {
	if r.err != nil {
		return nil, r.err
	}
	var out []cob.Issue
	for _, i := range r.issues {
		if f.Matches(i) {
			out = append(out, i)
		}
	}
	return out, nil
}

func (r *fakeRepo) Patches(f cob.PatchFilter) ([]cob.Patch, error) {
	if r.err != nil {
		return nil, r.err
	}
	var out []cob.Patch
	for _, p := range r.patches {
		if f.Matches(p) {
			out = append(out, p)
		}
	}
	return out, nil
}

func (r *fakeRepo) Notifications() ([]cob.Notification, error) {
	if r.err != nil {
		return nil, r.err
	}
	return append([]cob.Notification(nil), r.notifications...), nil
}

func (r *fakeRepo) Issue(id string) (cob.Issue, error) {
	for _, i := range r.issues {
		if i.ID == id {
			return i, nil
		}
	}
	return cob.Issue{}, cob.ErrNotFound
}

func (r *fakeRepo) Patch(id string) (cob.Patch, error) {
	for _, p := range r.patches {
		if p.ID == id {
			return p, nil
		}
	}
	return cob.Patch{}, cob.ErrNotFound
}

// fakeHistory answers git questions from fixed values.
type fakeHistory struct {
	commits []git.Commit
	stat    string
	err     error
}

func (h *fakeHistory) Log(_ context.Context, _, _ string, _ int) ([]git.Commit, error) {
	return h.commits, h.err
}

func (h *fakeHistory) DiffStat(_ context.Context, _, _ string) (string, error) {
	return h.stat, h.err
}

func testRepo() *fakeRepo {
	return &fakeRepo{
		issues: []cob.Issue{
			{ID: "aaaaaaaaaa", Title: "Crash on start", Author: "ana", State: cob.IssueOpen, Labels: []string{"bug"}, Body: "it crashes", Timestamp: testNow.Add(-time.Hour)},
			{ID: "bbbbbbbbbb", Title: "Add dark theme", Author: "ben", State: cob.IssueOpen, Timestamp: testNow.Add(-2 * time.Hour)},
			{ID: "cccccccccc", Title: "Typo in docs", Author: "cy", State: cob.IssueClosed, Timestamp: testNow.Add(-3 * time.Hour)},
			{ID: "dddddddddd", Title: "Slow search", Author: "dee", State: cob.IssueOpen, Labels: []string{"perf"}, Timestamp: testNow.Add(-4 * time.Hour)},
		},
		patches: []cob.Patch{
			{ID: "pppppppppp", Title: "Fix crash", Author: "ana", State: cob.PatchOpen, Base: "main", Head: "1234567890", Timestamp: testNow},
		},
		notifications: []cob.Notification{
			{ID: "n1", Kind: cob.KindIssue, ObjectID: "aaaaaaaaaa", Summary: "issue opened", Project: "flux", Timestamp: testNow.Add(-time.Minute)},
			{ID: "n2", Kind: cob.KindPatch, ObjectID: "pppppppppp", Summary: "patch opened", Project: "flux", Seen: true, Timestamp: testNow},
		},
	}
}

// loadIssues builds a selector over the open issues of testRepo.
func loadIssues(t *testing.T, mode Mode) State {
	t.Helper()
	s, err := Load(context.Background(), testRepo(), Options{Kind: KindIssues, Mode: mode, Clock: fixedClock})
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	return s
}

func ids(items []Item) []string {
	out := make([]string, len(items))
	for i, it := range items {
		out[i] = it.ID
	}
	return out
}
