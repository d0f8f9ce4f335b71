package util

import (
	"strings"
	"time"
)

// DateLayouts are the layouts ParseDate tries, most specific first.
// They cover what browsers commonly accept as date strings: ISO 8601,
// US month/day/year, RFC 1123 and spelled-out month names.
var DateLayouts = []string{
	time.RFC3339Nano,
	time.RFC3339,
	"2006-01-02T15:04:05",
	"2006-01-02T15:04",
	"2006-01-02 15:04:05",
	"2006-01-02 15:04",
	"2006-01-02",
	"2006/01/02",
	"2006/1/2",
	"01/02/2006 15:04:05",
	"01/02/2006",
	"1/2/2006",
	time.RFC1123Z,
	time.RFC1123,
	time.RFC850,
	time.RFC822Z,
	time.RFC822,
	time.ANSIC,
	time.UnixDate,
	"Mon Jan 2 2006",
	"Mon Jan 02 2006",
	"January 2, 2006",
	"Jan 2, 2006",
	"2 January 2006",
	"2 Jan 2006",
	"02 Jan 2006",
}

// ParseDate parses s with the built-in layouts followed by extra.
// It reports false when no layout matches.
func ParseDate(s string, extra ...string) (time.Time, bool) {
	s = strings.TrimSpace(s)
	if s == "" {
		return time.Time{}, false
	}
	for _, layout := range DateLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t, true
		}
	}
	for _, layout := range extra {
		if t, err := time.Parse(layout, s); err == nil {
			return t, true
		}
	}
	return time.Time{}, false
}

// IsDate reports whether s parses as a calendar date or time.
func IsDate(s string, extra ...string) bool {
	_, ok := ParseDate(s, extra...)
	return ok
}
