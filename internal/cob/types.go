// Package cob reads and records the collaborative objects flux browses:
// issues, patches and the notifications raised when they change.
package cob

import (
	"fmt"
	"strings"
	"time"
)

// Kind names a collaborative object type.
type Kind int

const (
	KindIssue Kind = iota
	KindPatch
)

var kindNames = [...]string{
	KindIssue: "issue",
	KindPatch: "patch",
}

func (k Kind) String() string {
	if int(k) < len(kindNames) {
		return kindNames[k]
	}
	return fmt.Sprintf("kind(%d)", int(k))
}

// ParseKind parses "issue" or "patch".
func ParseKind(s string) (Kind, error) {
	for k, name := range kindNames {
		if strings.EqualFold(s, name) {
			return Kind(k), nil
		}
	}
	return 0, fmt.Errorf("cob: unknown kind %q", s)
}

func (k Kind) MarshalText() ([]byte, error) { return []byte(k.String()), nil }

func (k *Kind) UnmarshalText(b []byte) error {
	v, err := ParseKind(string(b))
	if err != nil {
		return err
	}
	*k = v
	return nil
}

// IssueState is the lifecycle state of an issue.
type IssueState int

const (
	IssueOpen IssueState = iota
	IssueClosed
)

var issueStateNames = [...]string{
	IssueOpen:   "open",
	IssueClosed: "closed",
}

func (s IssueState) String() string {
	if int(s) < len(issueStateNames) {
		return issueStateNames[s]
	}
	return fmt.Sprintf("issue_state(%d)", int(s))
}

// ParseIssueState parses "open" or "closed".
func ParseIssueState(s string) (IssueState, error) {
	for st, name := range issueStateNames {
		if strings.EqualFold(s, name) {
			return IssueState(st), nil
		}
	}
	return 0, fmt.Errorf("cob: unknown issue state %q", s)
}

func (s IssueState) MarshalText() ([]byte, error) { return []byte(s.String()), nil }

func (s *IssueState) UnmarshalText(b []byte) error {
	v, err := ParseIssueState(string(b))
	if err != nil {
		return err
	}
	*s = v
	return nil
}

// PatchState is the lifecycle state of a patch.
type PatchState int

const (
	PatchOpen PatchState = iota
	PatchDraft
	PatchMerged
	PatchArchived
)

var patchStateNames = [...]string{
	PatchOpen:     "open",
	PatchDraft:    "draft",
	PatchMerged:   "merged",
	PatchArchived: "archived",
}

func (s PatchState) String() string {
	if int(s) < len(patchStateNames) {
		return patchStateNames[s]
	}
	return fmt.Sprintf("patch_state(%d)", int(s))
}

// ParsePatchState parses a patch state name.
func ParsePatchState(s string) (PatchState, error) {
	for st, name := range patchStateNames {
		if strings.EqualFold(s, name) {
			return PatchState(st), nil
		}
	}
	return 0, fmt.Errorf("cob: unknown patch state %q", s)
}

func (s PatchState) MarshalText() ([]byte, error) { return []byte(s.String()), nil }

func (s *PatchState) UnmarshalText(b []byte) error {
	v, err := ParsePatchState(string(b))
	if err != nil {
		return err
	}
	*s = v
	return nil
}

// Issue is one issue as last recorded.
type Issue struct {
	ID        string     `json:"id"`
	Title     string     `json:"title"`
	Author    string     `json:"author"`
	State     IssueState `json:"state"`
	Labels    []string   `json:"labels,omitempty"`
	Assignees []string   `json:"assignees,omitempty"`
	Body      string     `json:"body,omitempty"`
	Comments  int        `json:"comments"`
	Timestamp time.Time  `json:"timestamp"`
}

// Patch is one proposed change as last recorded. Base and Head are git
// revisions in the repository.
type Patch struct {
	ID        string     `json:"id"`
	Title     string     `json:"title"`
	Author    string     `json:"author"`
	State     PatchState `json:"state"`
	Base      string     `json:"base"`
	Head      string     `json:"head"`
	Labels    []string   `json:"labels,omitempty"`
	Revisions int        `json:"revisions"`
	Timestamp time.Time  `json:"timestamp"`
}

// Notification reports a change to an issue or a patch.
type Notification struct {
	ID        string    `json:"id"`
	Kind      Kind      `json:"kind"`
	ObjectID  string    `json:"object_id"`
	Title     string    `json:"title"`
	Summary   string    `json:"summary"`
	Project   string    `json:"project"`
	Author    string    `json:"author"`
	Seen      bool      `json:"seen"`
	Timestamp time.Time `json:"timestamp"`
}
