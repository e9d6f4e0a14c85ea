package cob

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sync/atomic"
	"testing"
	"time"
)

var testIDs atomic.Int64

// Compile-time check: *JSONL is both sides of the store.
var (
	_ Repository = (*JSONL)(nil)
	_ Writer     = (*JSONL)(nil)
)

// openTest opens a store with a fixed clock and sequential ids.
func openTest(t *testing.T, dir string) *JSONL {
	t.Helper()
	j, err := OpenJSONL(context.Background(), dir, "heartwood")
	if err != nil {
		t.Fatalf("OpenJSONL: %v", err)
	}
	t.Cleanup(func() { _ = j.Close() })

	base := time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC)
	ticks := 0
	j.now = func() time.Time {
		ticks++
		return base.Add(time.Duration(ticks) * time.Minute)
	}
	j.newID = func() string { return fmt.Sprintf("%040d", testIDs.Add(1)) }
	return j
}

func TestOpenJSONL_CreatesDirAndFile(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "nested", "cobs")
	openTest(t, dir)

	if _, err := os.Stat(filepath.Join(dir, FileName)); err != nil {
		t.Errorf("expected object log to exist: %v", err)
	}
}

func TestOpenJSONL_DirIsFile(t *testing.T) {
	f := filepath.Join(t.TempDir(), "file")
	if err := os.WriteFile(f, []byte("x"), 0644); err != nil {
		t.Fatal(err)
	}
	if _, err := OpenJSONL(context.Background(), f, "p"); err == nil {
		t.Error("expected error when dir is a regular file")
	}
}

func TestCreateAndRead(t *testing.T) {
	j := openTest(t, t.TempDir())

	is, err := j.CreateIssue(NewIssue{Title: "Crash on start", Author: "alice", Labels: []string{"bug"}})
	if err != nil {
		t.Fatalf("CreateIssue: %v", err)
	}
	p, err := j.CreatePatch(NewPatch{Title: "Fix crash", Author: "bob", Base: "main", Head: "fix"})
	if err != nil {
		t.Fatalf("CreatePatch: %v", err)
	}

	t.Run("issue by id", func(t *testing.T) {
		got, err := j.Issue(is.ID)
		if err != nil {
			t.Fatal(err)
		}
		if got.Title != "Crash on start" || got.State != IssueOpen || len(got.Labels) != 1 {
			t.Errorf("unexpected issue %+v", got)
		}
	})

	t.Run("patch by id", func(t *testing.T) {
		got, err := j.Patch(p.ID)
		if err != nil {
			t.Fatal(err)
		}
		if got.Head != "fix" || got.Revisions != 1 || got.State != PatchOpen {
			t.Errorf("unexpected patch %+v", got)
		}
	})

	t.Run("notifications raised", func(t *testing.T) {
		ns, err := j.Notifications()
		if err != nil {
			t.Fatal(err)
		}
		if len(ns) != 2 {
			t.Fatalf("expected 2 notifications, got %d", len(ns))
		}
		if ns[0].Kind != KindIssue || ns[0].ObjectID != is.ID || ns[0].Project != "heartwood" {
			t.Errorf("unexpected first notification %+v", ns[0])
		}
		if ns[1].Kind != KindPatch || ns[1].Summary != "opened" {
			t.Errorf("unexpected second notification %+v", ns[1])
		}
	})

	t.Run("unknown id", func(t *testing.T) {
		if _, err := j.Issue("nope"); !errors.Is(err, ErrNotFound) {
			t.Errorf("expected ErrNotFound, got %v", err)
		}
	})
}

func TestStateChangesReplaceRecord(t *testing.T) {
	j := openTest(t, t.TempDir())

	a, _ := j.CreateIssue(NewIssue{Title: "a"})
	b, _ := j.CreateIssue(NewIssue{Title: "b"})
	if _, err := j.SetIssueState(a.ID, IssueClosed); err != nil {
		t.Fatalf("SetIssueState: %v", err)
	}

	open, err := j.Issues(IssueFilter{State: IssueOpen})
	if err != nil {
		t.Fatal(err)
	}
	if len(open) != 1 || open[0].ID != b.ID {
		t.Errorf("open issues = %+v", open)
	}

	all, _ := j.Issues(IssueFilter{All: true})
	if len(all) != 2 {
		t.Fatalf("expected 2 issues, got %d", len(all))
	}
	if all[0].ID != a.ID {
		t.Errorf("expected the updated issue first, got %s", all[0].Title)
	}

	ns, _ := j.Notifications()
	if got := ns[len(ns)-1].Summary; got != "state changed to closed" {
		t.Errorf("last notification summary = %q", got)
	}
}

func TestPatchesFilter(t *testing.T) {
	j := openTest(t, t.TempDir())
	p1, _ := j.CreatePatch(NewPatch{Title: "one", Head: "h1"})
	_, _ = j.CreatePatch(NewPatch{Title: "two", Head: "h2"})
	if _, err := j.SetPatchState(p1.ID, PatchMerged); err != nil {
		t.Fatal(err)
	}

	tests := []struct {
		filter string
		want   int
	}{
		{"open", 1},
		{"merged", 1},
		{"draft", 0},
		{"all", 2},
	}
	for _, tt := range tests {
		t.Run(tt.filter, func(t *testing.T) {
			f, err := ParsePatchFilter(tt.filter)
			if err != nil {
				t.Fatal(err)
			}
			got, err := j.Patches(f)
			if err != nil {
				t.Fatal(err)
			}
			if len(got) != tt.want {
				t.Errorf("%s: got %d patches, want %d", tt.filter, len(got), tt.want)
			}
		})
	}
}

func TestReopenRebuildsIndex(t *testing.T) {
	dir := t.TempDir()
	j := openTest(t, dir)
	is, _ := j.CreateIssue(NewIssue{Title: "persisted"})
	_ = j.Close()

	again := openTest(t, dir)
	got, err := again.Issue(is.ID)
	if err != nil {
		t.Fatalf("Issue after reopen: %v", err)
	}
	if got.Title != "persisted" {
		t.Errorf("Title = %q", got.Title)
	}
}

func TestSecondWriterIsPickedUp(t *testing.T) {
	dir := t.TempDir()
	reader := openTest(t, dir)
	writer, err := OpenJSONL(context.Background(), dir, "heartwood")
	if err != nil {
		t.Fatal(err)
	}
	defer func() { _ = writer.Close() }()

	if _, err := writer.CreateIssue(NewIssue{Title: "from elsewhere"}); err != nil {
		t.Fatal(err)
	}
	issues, err := reader.Issues(IssueFilter{})
	if err != nil {
		t.Fatal(err)
	}
	if len(issues) != 1 || issues[0].Title != "from elsewhere" {
		t.Errorf("reader did not see the other writer: %+v", issues)
	}
}

func TestMalformedLineSkipped(t *testing.T) {
	dir := t.TempDir()
	j := openTest(t, dir)
	_, _ = j.CreateIssue(NewIssue{Title: "before"})
	_ = j.Close()

	f, err := os.OpenFile(filepath.Join(dir, FileName), os.O_APPEND|os.O_WRONLY, 0644)
	if err != nil {
		t.Fatal(err)
	}
	_, _ = f.WriteString("{not json\n")
	_ = f.Close()

	again := openTest(t, dir)
	if _, err := again.CreateIssue(NewIssue{Title: "after"}); err != nil {
		t.Fatal(err)
	}
	issues, err := again.Issues(IssueFilter{})
	if err != nil {
		t.Fatal(err)
	}
	if len(issues) != 2 {
		t.Errorf("expected 2 issues around the bad line, got %d", len(issues))
	}
}

func TestWriteAfterClose(t *testing.T) {
	j := openTest(t, t.TempDir())
	_ = j.Close()
	if _, err := j.CreateIssue(NewIssue{Title: "late"}); !errors.Is(err, os.ErrClosed) {
		t.Errorf("expected os.ErrClosed, got %v", err)
	}
	if _, err := j.Issues(IssueFilter{}); !errors.Is(err, os.ErrClosed) {
		t.Errorf("expected os.ErrClosed, got %v", err)
	}
}

func TestCreateValidation(t *testing.T) {
	j := openTest(t, t.TempDir())
	if _, err := j.CreateIssue(NewIssue{Title: "  "}); err == nil {
		t.Error("expected error for empty issue title")
	}
	if _, err := j.CreatePatch(NewPatch{Title: "t"}); err == nil {
		t.Error("expected error for empty patch head")
	}
}
