// Package period handles canonical YYYY-MM billing period strings.
// The format is zero-padded and fixed-width, so lexicographic order equals
// chronological order; callers compare periods with plain < and >.
package period

import (
	"regexp"
	"time"
)

// Layout is the canonical billing period layout.
const Layout = "2006-01"

var periodRe = regexp.MustCompile(`^\d{4}-(0[1-9]|1[0-2])$`)

// IsValid reports whether p is a canonical YYYY-MM period.
func IsValid(p string) bool {
	return periodRe.MatchString(p)
}

// Current returns the current calendar month as a period.
func Current() string {
	return time.Now().Format(Layout)
}

// Previous returns the period monthsAgo months before the current one.
func Previous(monthsAgo int) string {
	now := time.Now()
	// Anchor on day 1 so month arithmetic never spills over at month ends.
	first := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, now.Location())
	return first.AddDate(0, -monthsAgo, 0).Format(Layout)
}

// FromTime converts a timestamp to the period it falls in.
func FromTime(t time.Time) string {
	return t.Format(Layout)
}
