package utils

import "time"

// FormatListingDate renders a timestamp for the admin listing, e.g.
// "19 Oct 2026, 14:05". Zero times render empty.
func FormatListingDate(t time.Time) string {
	if t.IsZero() {
		return ""
	}
	return t.Local().Format("02 Jan 2006, 15:04")
}
