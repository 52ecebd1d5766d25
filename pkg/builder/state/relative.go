package state

import (
	"fmt"
	"time"
)

// FormatRelative renders the "last saved" label for a draft.
func FormatRelative(updatedAt, now time.Time) string {
	if updatedAt.IsZero() {
		return ""
	}
	d := now.Sub(updatedAt)
	switch {
	case d < time.Minute:
		return "just now"
	case d < time.Hour:
		return plural(int(d/time.Minute), "minute")
	case d < 24*time.Hour:
		return plural(int(d/time.Hour), "hour")
	default:
		return plural(int(d/(24*time.Hour)), "day")
	}
}

func plural(n int, unit string) string {
	if n == 1 {
		return fmt.Sprintf("1 %s ago", unit)
	}
	return fmt.Sprintf("%d %ss ago", n, unit)
}
