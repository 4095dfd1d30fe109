package filters

import "time"

// DateLong formats t as "January 2, 2006".
func DateLong(t time.Time) string { return t.UTC().Format("January 2, 2006") }

// DateShort formats t as "January 2".
func DateShort(t time.Time) string { return t.UTC().Format("January 2") }

// DateISO formats t as "2006-01-02".
func DateISO(t time.Time) string { return t.UTC().Format(time.DateOnly) }

// DateRFC3339 formats t for Atom feeds, e.g. "2006-01-02T15:04:05Z".
func DateRFC3339(t time.Time) string { return t.UTC().Format(time.RFC3339) }
