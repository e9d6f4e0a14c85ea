package cob

import (
	"fmt"
	"sort"
	"strings"
)

// IssueFilter selects issues by state. The zero value matches open issues.
type IssueFilter struct {
	All   bool
	State IssueState
}

// ParseIssueFilter parses "open", "closed" or "all".
func ParseIssueFilter(s string) (IssueFilter, error) {
	if strings.EqualFold(s, "all") {
		return IssueFilter{All: true}, nil
	}
	st, err := ParseIssueState(s)
	if err != nil {
		return IssueFilter{}, err
	}
	return IssueFilter{State: st}, nil
}

// Matches reports whether i passes the filter.
func (f IssueFilter) Matches(i Issue) bool {
	return f.All || i.State == f.State
}

func (f IssueFilter) String() string {
	if f.All {
		return "all"
	}
	return f.State.String()
}

// PatchFilter selects patches by state. The zero value matches open patches.
type PatchFilter struct {
	All   bool
	State PatchState
}

// ParsePatchFilter parses a patch state name or "all".
func ParsePatchFilter(s string) (PatchFilter, error) {
	if strings.EqualFold(s, "all") {
		return PatchFilter{All: true}, nil
	}
	st, err := ParsePatchState(s)
	if err != nil {
		return PatchFilter{}, err
	}
	return PatchFilter{State: st}, nil
}

// Matches reports whether p passes the filter.
func (f PatchFilter) Matches(p Patch) bool {
	return f.All || p.State == f.State
}

func (f PatchFilter) String() string {
	if f.All {
		return "all"
	}
	return f.State.String()
}

// SortField is the column a list is ordered by.
type SortField int

const (
	SortByTimestamp SortField = iota
	SortByID
)

var sortFieldNames = [...]string{
	SortByTimestamp: "timestamp",
	SortByID:        "id",
}

func (f SortField) String() string {
	if int(f) < len(sortFieldNames) {
		return sortFieldNames[f]
	}
	return fmt.Sprintf("sort_field(%d)", int(f))
}

// ParseSortField parses "timestamp" or "id".
func ParseSortField(s string) (SortField, error) {
	for f, name := range sortFieldNames {
		if strings.EqualFold(s, name) {
			return SortField(f), nil
		}
	}
	return 0, fmt.Errorf("cob: unknown sort field %q", s)
}

// SortBy orders notification lists. Newest first unless Reverse is set;
// ids sort ascending unless Reverse is set.
type SortBy struct {
	Field   SortField
	Reverse bool
}

// SortNotifications orders ns in place.
func SortNotifications(ns []Notification, by SortBy) {
	sort.SliceStable(ns, func(i, j int) bool {
		if by.Reverse {
			i, j = j, i
		}
		if by.Field == SortByID {
			return ns[i].ID < ns[j].ID
		}
		return ns[i].Timestamp.After(ns[j].Timestamp)
	})
}

// SortIssues orders issues newest first.
func SortIssues(is []Issue) {
	sort.SliceStable(is, func(i, j int) bool { return is[i].Timestamp.After(is[j].Timestamp) })
}

// SortPatches orders patches newest first.
func SortPatches(ps []Patch) {
	sort.SliceStable(ps, func(i, j int) bool { return ps[i].Timestamp.After(ps[j].Timestamp) })
}
