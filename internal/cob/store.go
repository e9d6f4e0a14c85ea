package cob

import "errors"

// ErrNotFound is returned when no object has the requested id.
var ErrNotFound = errors.New("cob: not found")

// Repository is the read side the selection interfaces are built from.
type Repository interface {
	// Project names the repository, used to group notifications.
	Project() string
	Issues(filter IssueFilter) ([]Issue, error)
	Patches(filter PatchFilter) ([]Patch, error)
	Notifications() ([]Notification, error)
	Issue(id string) (Issue, error)
	Patch(id string) (Patch, error)
}

// Writer records new objects and state changes. Every write also raises a
// notification.
type Writer interface {
	CreateIssue(n NewIssue) (Issue, error)
	CreatePatch(n NewPatch) (Patch, error)
	SetIssueState(id string, state IssueState) (Issue, error)
	SetPatchState(id string, state PatchState) (Patch, error)
	Close() error
}

// NewIssue holds the fields supplied when opening an issue.
type NewIssue struct {
	Title  string
	Author string
	Body   string
	Labels []string
}

// NewPatch holds the fields supplied when proposing a patch.
type NewPatch struct {
	Title  string
	Author string
	Base   string
	Head   string
	Labels []string
}

// ShortID abbreviates an object id for display.
func ShortID(id string) string {
	if len(id) > 7 {
		return id[:7]
	}
	return id
}
