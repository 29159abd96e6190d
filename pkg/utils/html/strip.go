// ABOUTME: HTML utilities for reducing markup to plain text
// ABOUTME: Uses goquery so script/style bodies and entities are handled properly

package html

import (
	"strings"

	"github.com/PuerkitoBio/goquery"
)

// StripHTML reduces an HTML fragment to plain text. Script and style blocks
// are dropped entirely, entities are decoded by the parser, and runs of
// whitespace collapse to single spaces. Input without markup passes through
// with only whitespace normalization, so CDATA-unwrapped plain text is safe.
func StripHTML(fragment string) string {
	if fragment == "" {
		return ""
	}

	doc, err := goquery.NewDocumentFromReader(strings.NewReader(fragment))
	if err != nil {
		return CollapseWhitespace(fragment)
	}

	doc.Find("script, style").Remove()

	return CollapseWhitespace(doc.Text())
}

// CollapseWhitespace trims the string and replaces any run of whitespace
// (spaces, tabs, newlines) with a single space.
func CollapseWhitespace(s string) string {
	return strings.Join(strings.Fields(s), " ")
}
