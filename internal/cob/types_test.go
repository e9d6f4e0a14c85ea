package cob

import (
	"encoding/json"
	"testing"
	"time"
)

func TestParseEnums(t *testing.T) {
	t.Run("issue filter", func(t *testing.T) {
		for _, s := range []string{"open", "closed", "all", "OPEN"} {
			if _, err := ParseIssueFilter(s); err != nil {
				t.Errorf("ParseIssueFilter(%q): %v", s, err)
			}
		}
		if _, err := ParseIssueFilter("solved"); err == nil {
			t.Error("expected error for unknown issue state")
		}
	})

	t.Run("patch filter", func(t *testing.T) {
		for _, s := range []string{"open", "draft", "merged", "archived", "all"} {
			f, err := ParsePatchFilter(s)
			if err != nil {
				t.Errorf("ParsePatchFilter(%q): %v", s, err)
				continue
			}
			if f.String() != s {
				t.Errorf("String() = %q, want %q", f.String(), s)
			}
		}
		if _, err := ParsePatchFilter("rejected"); err == nil {
			t.Error("expected error for unknown patch state")
		}
	})

	t.Run("sort field", func(t *testing.T) {
		if f, err := ParseSortField("id"); err != nil || f != SortByID {
			t.Errorf("ParseSortField(id) = %v, %v", f, err)
		}
		if f, err := ParseSortField("timestamp"); err != nil || f != SortByTimestamp {
			t.Errorf("ParseSortField(timestamp) = %v, %v", f, err)
		}
		if _, err := ParseSortField("author"); err == nil {
			t.Error("expected error for unknown sort field")
		}
	})
}

func TestStateTextEncoding(t *testing.T) {
	data, err := json.Marshal(Patch{ID: "p", State: PatchMerged})
	if err != nil {
		t.Fatal(err)
	}
	var p Patch
	if err := json.Unmarshal(data, &p); err != nil {
		t.Fatal(err)
	}
	if p.State != PatchMerged {
		t.Errorf("State = %v", p.State)
	}

	var bad Patch
	if err := json.Unmarshal([]byte(`{"state":"exploded"}`), &bad); err == nil {
		t.Error("expected error for unknown state in JSON")
	}
}

func TestSortNotifications(t *testing.T) {
	base := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	ns := []Notification{
		{ID: "b", Timestamp: base.Add(time.Hour)},
		{ID: "c", Timestamp: base},
		{ID: "a", Timestamp: base.Add(2 * time.Hour)},
	}
	ids := func() string {
		s := ""
		for _, n := range ns {
			s += n.ID
		}
		return s
	}

	tests := []struct {
		by   SortBy
		want string
	}{
		{SortBy{Field: SortByTimestamp}, "abc"},
		{SortBy{Field: SortByTimestamp, Reverse: true}, "cba"},
		{SortBy{Field: SortByID}, "abc"},
		{SortBy{Field: SortByID, Reverse: true}, "cba"},
	}
	for _, tt := range tests {
		t.Run(tt.by.Field.String(), func(t *testing.T) {
			SortNotifications(ns, tt.by)
			if got := ids(); got != tt.want {
				t.Errorf("order = %s, want %s", got, tt.want)
			}
		})
	}
}

func TestTimeAgo(t *testing.T) {
	now := time.Date(2024, 6, 1, 12, 0, 0, 0, time.UTC)
	tests := []struct {
		ago  time.Duration
		want string
	}{
		{10 * time.Second, "now"},
		{-time.Hour, "now"},
		{time.Minute, "1 minute ago"},
		{3 * time.Minute, "3 minutes ago"},
		{2 * time.Hour, "2 hours ago"},
		{26 * time.Hour, "1 day ago"},
		{15 * 24 * time.Hour, "2 weeks ago"},
		{400 * 24 * time.Hour, "1 year ago"},
	}
	for _, tt := range tests {
		t.Run(tt.want, func(t *testing.T) {
			if got := TimeAgo(now, now.Add(-tt.ago)); got != tt.want {
				t.Errorf("TimeAgo(-%v) = %q, want %q", tt.ago, got, tt.want)
			}
		})
	}
}

func TestShortID(t *testing.T) {
	if got := ShortID("0123456789abcdef"); got != "0123456" {
		t.Errorf("ShortID = %q", got)
	}
	if got := ShortID("abc"); got != "abc" {
		t.Errorf("ShortID = %q", got)
	}
}
