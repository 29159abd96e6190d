// ABOUTME: Time parsing utilities for flexible date/time parsing
// ABOUTME: Handles formats found in syndication feeds and open-data APIs

package timeutil

import (
	"strings"
	"time"
)

// Formats observed across feed pubDate fields and the open-data dataset
// date columns (dateparution and friends are bare ISO dates).
var timeFormats = []string{
	time.RFC3339,
	time.RFC3339Nano,
	time.RFC1123,
	time.RFC1123Z,
	time.RFC822,
	time.RFC822Z,
	"2006-01-02T15:04:05Z07:00",
	"2006-01-02T15:04:05",
	"2006-01-02 15:04:05",
	"2006-01-02",
	"02/01/2006",
	"02 Jan 2006 15:04:05 MST",
	"02 Jan 2006 15:04:05 -0700",
	"Mon, 02 Jan 2006 15:04:05 MST",
	"Mon, 02 Jan 2006 15:04:05 -0700",
	"Mon, 2 Jan 2006 15:04:05 MST",
	"Mon, 2 Jan 2006 15:04:05 -0700",
}

// ParseFlexibleTime attempts to parse a time string using various formats.
// Returns the zero time when nothing matches.
func ParseFlexibleTime(timeStr string) time.Time {
	if timeStr == "" {
		return time.Time{}
	}

	timeStr = strings.TrimSpace(timeStr)

	for _, format := range timeFormats {
		if t, err := time.Parse(format, timeStr); err == nil {
			return t
		}
	}

	return time.Time{}
}

// ParseOptional parses a time string into a *time.Time, returning nil when
// the string is empty or unparsable. Unparsable dates are not an error for
// ingestion; the record simply carries no timestamp.
func ParseOptional(timeStr string) *time.Time {
	t := ParseFlexibleTime(timeStr)
	if t.IsZero() {
		return nil
	}
	return &t
}
