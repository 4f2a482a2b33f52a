package library

import (
	"strings"
	"time"
)

// DateLayout is the wire format for due dates sent to the gateway.
const DateLayout = "2006-01-02"

var parseLayouts = []string{
	time.RFC3339Nano,
	time.RFC3339,
	"2006-01-02 15:04:05",
	"2006-01-02T15:04:05.000000Z",
	DateLayout,
}

// ParseDate reads the timestamp formats the gateway is known to emit.
func ParseDate(s string) (time.Time, bool) {
	s = strings.TrimSpace(s)
	if s == "" {
		return time.Time{}, false
	}
	for _, layout := range parseLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t, true
		}
	}
	return time.Time{}, false
}

// FormatDate renders a gateway timestamp as "Jan 2, 2006".
func FormatDate(s string) string {
	if strings.TrimSpace(s) == "" {
		return "N/A"
	}
	t, ok := ParseDate(s)
	if !ok {
		return "Invalid Date"
	}
	return t.Format("Jan 2, 2006")
}

// FormatReturnDate is FormatDate for a loan that may still be open.
func FormatReturnDate(s string) string {
	if strings.TrimSpace(s) == "" {
		return "Not returned yet"
	}
	return FormatDate(s)
}

// IsOverdue compares a due date with now. Display only: the gateway's
// status field is authoritative.
func IsOverdue(due string, now time.Time) bool {
	t, ok := ParseDate(due)
	if !ok {
		return false
	}
	return t.Before(now)
}

// StatusLabel capitalizes a status for display.
func StatusLabel(status string) string {
	if status == "" {
		return ""
	}
	return strings.ToUpper(status[:1]) + status[1:]
}
