// Package display formats timestamps and coordinates for popups, cards and exports.
package display

import (
	"fmt"
	"math"
	"time"
)

var layouts = []string{
	time.RFC3339Nano,
	"2006-01-02T15:04:05Z",
	"2006-01-02T15:04:05.999999", // isoformat() without a zone
	"2006-01-02T15:04:05",
}

// ParseTimestamp accepts RFC 3339 and zone-less ISO timestamps (read as UTC).
func ParseTimestamp(s string) (time.Time, bool) {
	if s == "" {
		return time.Time{}, false
	}
	for _, layout := range layouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t, true
		}
	}
	return time.Time{}, false
}

// DateTime renders s in the server's local zone; unparseable input is returned as-is.
func DateTime(s string) string {
	if s == "" {
		return "Not specified"
	}
	t, ok := ParseTimestamp(s)
	if !ok {
		return s
	}
	return t.Local().Format("Jan 2, 2006 at 3:04 PM MST")
}

// RelativeTime renders s relative to now, e.g. "3 hours ago".
func RelativeTime(s string, now time.Time) string {
	t, ok := ParseTimestamp(s)
	if !ok {
		return s
	}
	secs := math.Round(now.Sub(t).Seconds())
	mins := math.Round(secs / 60)
	hours := math.Round(mins / 60)
	days := math.Round(hours / 24)

	switch {
	case secs < 60:
		return "Just now"
	case mins < 60:
		return plural(mins, "minute")
	case hours < 24:
		return plural(hours, "hour")
	default:
		return plural(days, "day")
	}
}

func plural(n float64, unit string) string {
	if n > 1 {
		return fmt.Sprintf("%d %ss ago", int(n), unit)
	}
	return fmt.Sprintf("%d %s ago", int(n), unit)
}

// Coordinates formats a pair with the given number of decimals.
func Coordinates(lat, lng float64, precision int) string {
	return fmt.Sprintf("%.*f, %.*f", precision, lat, precision, lng)
}
