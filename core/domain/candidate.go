// ABOUTME: CandidateRecord is the transient per-item shape produced by fetchers
// ABOUTME: Carries normalized fields plus the raw payload kept for audit

package domain

import "time"

// CandidateRecord is one normalized raw record from a fetcher. It has no
// identity beyond its link within a single run.
type CandidateRecord struct {
	// Title is the trimmed record headline
	Title string

	// Link is the canonical (or synthesized) URL, the dedup identity key
	Link string

	// Published is the parsed publication time; nil when absent or unparsable
	Published *time.Time

	// Body is the plain-text description used for classification
	Body string

	// Summary is the human-facing excerpt persisted with the opportunity
	Summary string

	// Raw is the original payload kept verbatim for audit
	Raw string

	// Codes holds extracted classification codes (structured sources only)
	Codes []string
}

// IsValid checks that the candidate carries the fields required for
// classification and persistence. Records failing this check are skipped
// silently, not treated as source errors.
func (c *CandidateRecord) IsValid() bool {
	if c.Title == "" {
		return false
	}

	if c.Link == "" {
		return false
	}

	return true
}
