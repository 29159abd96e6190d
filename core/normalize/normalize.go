// ABOUTME: Normalization helpers turning raw fetched records into candidates
// ABOUTME: Trimming, HTML stripping, date parsing, and synthetic link derivation

package normalize

import (
	"fmt"
	"net/url"
	"strings"
	"time"

	htmlutil "ao-radar-api/pkg/utils/html"
	"ao-radar-api/pkg/utils/timeutil"
)

// SummaryLimit is the maximum rune length of the persisted summary excerpt.
const SummaryLimit = 600

// Text trims a raw field value. Non-string inputs normalize through their
// default formatting; nil normalizes to "".
func Text(v interface{}) string {
	if v == nil {
		return ""
	}
	if s, ok := v.(string); ok {
		return strings.TrimSpace(s)
	}
	return strings.TrimSpace(fmt.Sprintf("%v", v))
}

// Body reduces description-like fields to plain classification text: HTML
// markup and script/style blocks stripped, whitespace collapsed. Fields are
// concatenated with single spaces; empty fields contribute nothing.
func Body(fields ...string) string {
	parts := make([]string, 0, len(fields))
	for _, f := range fields {
		if stripped := htmlutil.StripHTML(f); stripped != "" {
			parts = append(parts, stripped)
		}
	}
	return strings.Join(parts, " ")
}

// PublishedAt parses a source-native date representation. Absent or
// unparsable dates yield nil, which is not a reason to discard the record.
func PublishedAt(raw string) *time.Time {
	return timeutil.ParseOptional(raw)
}

// SyntheticLink derives a deterministic fallback link for structured records
// that carry no URL of their own: source URL plus a stable per-record
// reference. The same record always derives the same link across runs.
func SyntheticLink(sourceURL, ref string) string {
	return sourceURL + "?ref=" + url.QueryEscape(strings.TrimSpace(ref))
}

// Truncate cuts a string to at most limit runes.
func Truncate(s string, limit int) string {
	runes := []rune(s)
	if len(runes) <= limit {
		return s
	}
	return string(runes[:limit])
}
