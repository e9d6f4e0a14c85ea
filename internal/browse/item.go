package browse

import (
	"strings"
	"time"

	"github.com/LISSConsulting/LISSTech.Flux/internal/cob"
)

// Item is one row of a selector, whatever kind of object it shows.
type Item struct {
	ID        string
	Kind      cob.Kind // object kind, for notifications the kind of the object they report on
	ObjectID  string   // notifications only
	Title     string
	Author    string
	State     string
	Summary   string
	Project   string
	Labels    []string
	Head      string
	Seen      bool
	Timestamp time.Time
}

func issueItem(i cob.Issue) Item {
	return Item{
		ID:        i.ID,
		Kind:      cob.KindIssue,
		Title:     i.Title,
		Author:    i.Author,
		State:     i.State.String(),
		Labels:    i.Labels,
		Timestamp: i.Timestamp,
	}
}

func patchItem(p cob.Patch) Item {
	return Item{
		ID:        p.ID,
		Kind:      cob.KindPatch,
		Title:     p.Title,
		Author:    p.Author,
		State:     p.State.String(),
		Labels:    p.Labels,
		Head:      p.Head,
		Timestamp: p.Timestamp,
	}
}

func notificationItem(n cob.Notification) Item {
	return Item{
		ID:        n.ID,
		Kind:      n.Kind,
		ObjectID:  n.ObjectID,
		Title:     n.Title,
		Author:    n.Author,
		Summary:   n.Summary,
		Project:   n.Project,
		Seen:      n.Seen,
		Timestamp: n.Timestamp,
	}
}

// Matches reports whether every whitespace separated term of query occurs
// in the id, title, author, state, summary or labels. Matching ignores
// case. An empty query matches everything.
func (i Item) Matches(query string) bool {
	terms := strings.Fields(strings.ToLower(query))
	if len(terms) == 0 {
		return true
	}
	haystack := strings.ToLower(strings.Join(append([]string{
		i.ID, i.Title, i.Author, i.State, i.Summary, i.Project,
	}, i.Labels...), "\x00"))
	for _, t := range terms {
		if !strings.Contains(haystack, t) {
			return false
		}
	}
	return true
}

// filterItems returns a new slice with the items matching query.
func filterItems(items []Item, query string) []Item {
	out := make([]Item, 0, len(items))
	for _, it := range items {
		if it.Matches(query) {
			out = append(out, it)
		}
	}
	return out
}
