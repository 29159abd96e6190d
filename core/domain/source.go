// ABOUTME: Source domain model represents one external listing endpoint
// ABOUTME: Provides validation logic to ensure source data integrity

package domain

import (
	"errors"
	"net/url"
)

// SourceType identifies the fetch strategy for a source.
type SourceType string

const (
	// SourceTypeFeed is a syndication (RSS/Atom) endpoint.
	SourceTypeFeed SourceType = "FEED"

	// SourceTypeStructuredAPI is an open-data JSON dataset endpoint.
	SourceTypeStructuredAPI SourceType = "STRUCTURED_API"
)

// Source represents an external endpoint that candidate listings are
// fetched from. Sources are owned by the registry; ingestion only reads
// the active subset for the duration of one run.
type Source struct {
	// ID is the registry identifier
	ID string

	// Name is the human-readable source name used in run details
	Name string

	// Type selects the fetcher (FEED or STRUCTURED_API)
	Type SourceType

	// URL is the endpoint to fetch from
	URL string

	// Active indicates whether the source participates in runs
	Active bool
}

// Validate checks that the source has valid required fields.
func (s *Source) Validate() error {
	if s.Name == "" {
		return errors.New("source name cannot be empty")
	}

	if s.Type != SourceTypeFeed && s.Type != SourceTypeStructuredAPI {
		return errors.New("source type must be FEED or STRUCTURED_API")
	}

	parsed, err := url.Parse(s.URL)
	if err != nil || parsed.Scheme == "" || parsed.Host == "" {
		return errors.New("source URL is not valid format")
	}

	return nil
}
