// ABOUTME: Feed fetcher retrieves syndication documents and enumerates entries
// ABOUTME: Parses RSS/Atom via gofeed; entries lacking title or link are dropped

package ingest

import (
	"bytes"
	"context"

	"github.com/mmcdole/gofeed"

	"ao-radar-api/core/domain"
	"ao-radar-api/core/interfaces"
	"ao-radar-api/core/normalize"
	"ao-radar-api/pkg/utils/timeutil"
)

// DefaultFeedItemCap bounds how many entries from one fetch are processed,
// limiting worst-case per-run cost from a single misbehaving source.
const DefaultFeedItemCap = 60

// FeedFetcher handles FEED sources.
type FeedFetcher struct {
	deps    interfaces.Dependencies
	itemCap int
}

// NewFeedFetcher creates a feed fetcher. itemCap <= 0 selects the default.
func NewFeedFetcher(deps interfaces.Dependencies, itemCap int) *FeedFetcher {
	if itemCap <= 0 {
		itemCap = DefaultFeedItemCap
	}
	return &FeedFetcher{deps: deps, itemCap: itemCap}
}

// SourceType implements Fetcher.
func (f *FeedFetcher) SourceType() domain.SourceType {
	return domain.SourceTypeFeed
}

// MinScore implements Fetcher.
func (f *FeedFetcher) MinScore() int {
	return FeedMinScore
}

// Fetch downloads and parses the feed, reducing each entry to a candidate.
// CDATA-wrapped and plain-text field bodies come out of the XML parser
// equivalently, so no separate handling is needed here.
func (f *FeedFetcher) Fetch(ctx context.Context, source domain.Source) (FetchResult, error) {
	body, err := fetchBody(ctx, f.deps, source.Name, source.URL)
	if err != nil {
		return FetchResult{}, err
	}

	parsed, err := gofeed.NewParser().Parse(bytes.NewReader(body))
	if err != nil {
		return FetchResult{}, err
	}

	items := parsed.Items
	if len(items) > f.itemCap {
		items = items[:f.itemCap]
	}

	result := FetchResult{Candidates: make([]domain.CandidateRecord, 0, len(items))}
	for _, item := range items {
		result.Scanned++

		candidate := f.itemToCandidate(item)
		if !candidate.IsValid() {
			// Malformed record: silently skipped, not a source error.
			continue
		}
		result.Candidates = append(result.Candidates, candidate)
	}

	return result, nil
}

// itemToCandidate normalizes one feed entry.
func (f *FeedFetcher) itemToCandidate(item *gofeed.Item) domain.CandidateRecord {
	candidate := domain.CandidateRecord{
		Title: normalize.Text(item.Title),
		Link:  normalize.Text(item.Link),
	}

	if item.PublishedParsed != nil {
		published := item.PublishedParsed.UTC()
		candidate.Published = &published
	} else if item.Published != "" {
		candidate.Published = timeutil.ParseOptional(item.Published)
	}

	candidate.Body = normalize.Body(item.Description, item.Content)
	candidate.Summary = candidate.Body

	// Keep the raw description for audit; fall back to content.
	candidate.Raw = item.Description
	if candidate.Raw == "" {
		candidate.Raw = item.Content
	}

	return candidate
}
