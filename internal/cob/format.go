package cob

import (
	"fmt"
	"time"
)

// TimeAgo renders the distance from t to now the way list columns show it:
// "now", "1 minute ago", "3 days ago". Times in the future render as "now".
func TimeAgo(now, t time.Time) string {
	d := now.Sub(t)
	if d < time.Minute {
		return "now"
	}
	units := []struct {
		size time.Duration
		name string
	}{
		{365 * 24 * time.Hour, "year"},
		{30 * 24 * time.Hour, "month"},
		{7 * 24 * time.Hour, "week"},
		{24 * time.Hour, "day"},
		{time.Hour, "hour"},
		{time.Minute, "minute"},
	}
	for _, u := range units {
		if d >= u.size {
			n := int(d / u.size)
			if n == 1 {
				return fmt.Sprintf("1 %s ago", u.name)
			}
			return fmt.Sprintf("%d %ss ago", n, u.name)
		}
	}
	return "now"
}
