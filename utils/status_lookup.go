package utils

import "strings"

const (
	StatusPending  = "Pending"
	StatusReviewed = "Reviewed"
	StatusAccepted = "Accepted"
	StatusRejected = "Rejected"
)

var statusSynonyms = map[string][]string{
	StatusPending:  {"pending", "submitted", "new"},
	StatusReviewed: {"reviewed", "under review", "in review"},
	StatusAccepted: {"accepted", "approved", "admitted"},
	StatusRejected: {"rejected", "declined"},
}

var statusByAlias = func() map[string]string {
	lookup := make(map[string]string)
	for label, aliases := range statusSynonyms {
		lookup[strings.ToLower(label)] = label
		for _, alias := range aliases {
			lookup[alias] = label
		}
	}
	return lookup
}()

// StatusLabel normalises a stored workflow status for display. Unknown
// values are shown as stored; an empty value is the database default.
func StatusLabel(raw string) string {
	trimmed := strings.TrimSpace(raw)
	if trimmed == "" {
		return StatusPending
	}
	if label, ok := statusByAlias[strings.ToLower(trimmed)]; ok {
		return label
	}
	return trimmed
}

// IsPendingStatus reports whether the status still awaits review.
func IsPendingStatus(raw string) bool {
	return StatusLabel(raw) == StatusPending
}
