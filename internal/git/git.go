// Package git runs the git CLI to answer questions about the repository
// being browsed: where its root is, which branch is checked out and what a
// patch's commits look like.
package git

import (
	"bytes"
	"context"
	"fmt"
	"os/exec"
	"path/filepath"
	"strings"
)

// Runner executes git commands in a working directory.
type Runner struct {
	Dir string // working directory for git commands
}

// NewRunner creates a Runner for the given directory.
func NewRunner(dir string) *Runner {
	return &Runner{Dir: dir}
}

// Commit is one line of a log.
type Commit struct {
	Hash    string
	Author  string
	Subject string
}

// TopLevel returns the absolute path of the repository root.
func (r *Runner) TopLevel(ctx context.Context) (string, error) {
	out, err := r.run(ctx, "rev-parse", "--show-toplevel")
	if err != nil {
		return "", fmt.Errorf("git toplevel: %w", err)
	}
	return filepath.Clean(strings.TrimSpace(out)), nil
}

// CurrentBranch returns the name of the current git branch.
func (r *Runner) CurrentBranch(ctx context.Context) (string, error) {
	out, err := r.run(ctx, "branch", "--show-current")
	if err != nil {
		return "", fmt.Errorf("git current branch: %w", err)
	}
	return strings.TrimSpace(out), nil
}

// ResolveRevision returns the full hash rev points to.
func (r *Runner) ResolveRevision(ctx context.Context, rev string) (string, error) {
	out, err := r.run(ctx, "rev-parse", "--verify", "--quiet", rev+"^{commit}")
	if err != nil {
		return "", fmt.Errorf("git resolve %s: %w", rev, err)
	}
	return strings.TrimSpace(out), nil
}

// Log returns up to limit commits reachable from head but not from base.
// An empty base lists head's history.
func (r *Runner) Log(ctx context.Context, base, head string, limit int) ([]Commit, error) {
	rng := head
	if base != "" {
		rng = base + ".." + head
	}
	args := []string{"log", "--format=%h%x09%an%x09%s"}
	if limit > 0 {
		args = append(args, fmt.Sprintf("-n%d", limit))
	}
	args = append(args, rng, "--")
	out, err := r.run(ctx, args...)
	if err != nil {
		return nil, fmt.Errorf("git log %s: %w", rng, err)
	}

	var commits []Commit
	for _, line := range strings.Split(strings.TrimSpace(out), "\n") {
		if line == "" {
			continue
		}
		parts := strings.SplitN(line, "\t", 3)
		if len(parts) != 3 {
			continue
		}
		commits = append(commits, Commit{Hash: parts[0], Author: parts[1], Subject: parts[2]})
	}
	return commits, nil
}

// DiffStat returns the `git diff --stat` summary between base and head.
func (r *Runner) DiffStat(ctx context.Context, base, head string) (string, error) {
	rng := head
	if base != "" {
		rng = base + "..." + head
	}
	out, err := r.run(ctx, "diff", "--stat", rng, "--")
	if err != nil {
		return "", fmt.Errorf("git diff stat %s: %w", rng, err)
	}
	return strings.TrimRight(out, "\n"), nil
}

// run executes a git command and returns its standard output.
func (r *Runner) run(ctx context.Context, args ...string) (string, error) {
	cmd := exec.CommandContext(ctx, "git", args...)
	cmd.Dir = r.Dir

	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	if err := cmd.Run(); err != nil {
		errMsg := strings.TrimSpace(stderr.String())
		if errMsg == "" {
			errMsg = strings.TrimSpace(stdout.String())
		}
		return "", fmt.Errorf("%s: %w", errMsg, err)
	}
	return stdout.String(), nil
}
