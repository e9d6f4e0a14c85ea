package git

import (
	"context"
	"os"
	"os/exec"
	"path/filepath"
	"strings"
	"testing"
)

// gitCmd runs a git command in dir and fails the test on error.
func gitCmd(t *testing.T, dir string, args ...string) string {
	t.Helper()
	cmd := exec.Command("git", args...)
	cmd.Dir = dir
	out, err := cmd.CombinedOutput()
	if err != nil {
		t.Fatalf("git %v failed: %s (%v)", args, out, err)
	}
	return strings.TrimSpace(string(out))
}

// initTestRepo creates a temporary git repo with one commit and returns
// its path. It configures local user.name and user.email so commits work.
func initTestRepo(t *testing.T) string {
	t.Helper()
	if _, err := exec.LookPath("git"); err != nil {
		t.Skip("git not installed")
	}
	dir := t.TempDir()

	gitCmd(t, dir, "init")
	gitCmd(t, dir, "config", "user.email", "test@test.com")
	gitCmd(t, dir, "config", "user.name", "Test")
	gitCmd(t, dir, "config", "commit.gpgsign", "false")
	gitCmd(t, dir, "checkout", "-b", "main")
	commitFile(t, dir, "README.md", "# test\n", "initial commit")
	return dir
}

func commitFile(t *testing.T, dir, name, content, msg string) {
	t.Helper()
	if err := os.WriteFile(filepath.Join(dir, name), []byte(content), 0644); err != nil {
		t.Fatal(err)
	}
	gitCmd(t, dir, "add", name)
	gitCmd(t, dir, "commit", "-m", msg)
}

func TestCurrentBranch(t *testing.T) {
	dir := initTestRepo(t)
	r := NewRunner(dir)

	branch, err := r.CurrentBranch(context.Background())
	if err != nil {
		t.Fatal(err)
	}
	if branch != "main" {
		t.Errorf("got %q, want %q", branch, "main")
	}
}

func TestTopLevel(t *testing.T) {
	dir := initTestRepo(t)
	sub := filepath.Join(dir, "nested", "deeper")
	if err := os.MkdirAll(sub, 0755); err != nil {
		t.Fatal(err)
	}

	top, err := NewRunner(sub).TopLevel(context.Background())
	if err != nil {
		t.Fatal(err)
	}
	want, _ := filepath.EvalSymlinks(dir)
	got, _ := filepath.EvalSymlinks(top)
	if got != want {
		t.Errorf("TopLevel = %q, want %q", got, want)
	}
}

func TestLogAndDiffStat(t *testing.T) {
	dir := initTestRepo(t)
	ctx := context.Background()
	r := NewRunner(dir)

	gitCmd(t, dir, "checkout", "-b", "feature")
	commitFile(t, dir, "a.txt", "a\n", "add a")
	commitFile(t, dir, "b.txt", "b\nb\n", "add b")

	t.Run("range excludes base", func(t *testing.T) {
		commits, err := r.Log(ctx, "main", "feature", 0)
		if err != nil {
			t.Fatal(err)
		}
		if len(commits) != 2 {
			t.Fatalf("expected 2 commits, got %d: %+v", len(commits), commits)
		}
		if commits[0].Subject != "add b" || commits[1].Subject != "add a" {
			t.Errorf("unexpected order: %+v", commits)
		}
		if commits[0].Author != "Test" || commits[0].Hash == "" {
			t.Errorf("unexpected commit fields: %+v", commits[0])
		}
	})

	t.Run("limit", func(t *testing.T) {
		commits, err := r.Log(ctx, "", "feature", 1)
		if err != nil {
			t.Fatal(err)
		}
		if len(commits) != 1 {
			t.Fatalf("expected 1 commit, got %d", len(commits))
		}
	})

	t.Run("diff stat", func(t *testing.T) {
		stat, err := r.DiffStat(ctx, "main", "feature")
		if err != nil {
			t.Fatal(err)
		}
		if !strings.Contains(stat, "a.txt") || !strings.Contains(stat, "b.txt") {
			t.Errorf("diff stat missing files: %q", stat)
		}
	})

	t.Run("resolve", func(t *testing.T) {
		hash, err := r.ResolveRevision(ctx, "feature")
		if err != nil {
			t.Fatal(err)
		}
		if want := gitCmd(t, dir, "rev-parse", "feature"); hash != want {
			t.Errorf("ResolveRevision = %q, want %q", hash, want)
		}
	})
}

func TestErrorPaths(t *testing.T) {
	ctx := context.Background()
	r := NewRunner(t.TempDir())

	t.Run("not a repository", func(t *testing.T) {
		if _, err := r.TopLevel(ctx); err == nil {
			t.Error("expected error outside a repository")
		}
	})

	t.Run("unknown revision", func(t *testing.T) {
		dir := initTestRepo(t)
		if _, err := NewRunner(dir).Log(ctx, "", "does-not-exist", 0); err == nil {
			t.Error("expected error for unknown revision")
		}
		if _, err := NewRunner(dir).ResolveRevision(ctx, "does-not-exist"); err == nil {
			t.Error("expected error for unknown revision")
		}
	})

	t.Run("cancelled context", func(t *testing.T) {
		dir := initTestRepo(t)
		cctx, cancel := context.WithCancel(ctx)
		cancel()
		if _, err := NewRunner(dir).CurrentBranch(cctx); err == nil {
			t.Error("expected error for cancelled context")
		}
	})
}
