// ABOUTME: Fetcher contract shared by the feed and structured-API fetchers
// ABOUTME: Provides the cached HTTP body retrieval both fetchers build on

package ingest

import (
	"context"
	"fmt"
	"io"
	"time"

	"ao-radar-api/core/domain"
	coreerrors "ao-radar-api/core/errors"
	"ao-radar-api/core/interfaces"
)

// Admission thresholds per fetcher. Text-rule feed sources historically use
// a lower bar than code-rule structured sources.
const (
	FeedMinScore       = 30
	StructuredMinScore = 35
)

// fetchBodyTTL bounds how long a downloaded source body is reused. It keeps
// overlapping or quickly re-triggered runs from hammering the same endpoint.
const fetchBodyTTL = 10 * time.Minute

// fetchBodyLimit caps how much of a source response is read.
const fetchBodyLimit = 8 << 20

// FetchResult is the outcome of enumerating one source. Scanned counts raw
// records seen before normalization drops, Candidates holds the survivors.
type FetchResult struct {
	Candidates []domain.CandidateRecord
	Scanned    int
}

// Fetcher retrieves and normalizes raw records from one source type.
type Fetcher interface {
	// SourceType is the source type this fetcher handles.
	SourceType() domain.SourceType

	// MinScore is the admission threshold for candidates of this fetcher.
	MinScore() int

	// Fetch retrieves and enumerates the source's records.
	Fetch(ctx context.Context, source domain.Source) (FetchResult, error)
}

// fetchBody downloads a URL through the injected HTTP client, consulting the
// fetch cache first. Non-success statuses return a SourceFetchError with a
// snippet of the response body captured for diagnostics.
func fetchBody(ctx context.Context, deps interfaces.Dependencies, sourceName, url string) ([]byte, error) {
	cacheKey := "fetch:" + url

	if deps.Cache != nil {
		if data, err := deps.Cache.Get(ctx, cacheKey); err == nil && len(data) > 0 {
			return data, nil
		}
	}

	if deps.HTTPClient == nil {
		return nil, fmt.Errorf("HTTP client not configured")
	}

	resp, err := deps.HTTPClient.Get(ctx, url)
	if err != nil {
		return nil, err
	}
	defer resp.Body().Close()

	body, err := io.ReadAll(io.LimitReader(resp.Body(), fetchBodyLimit))
	if err != nil {
		return nil, err
	}

	if resp.StatusCode() != 200 {
		snippet := string(body)
		if len(snippet) > 512 {
			snippet = snippet[:512]
		}
		return nil, &coreerrors.SourceFetchError{
			Source:     sourceName,
			StatusCode: resp.StatusCode(),
			Body:       snippet,
		}
	}

	if deps.Cache != nil {
		_ = deps.Cache.Set(ctx, cacheKey, body, fetchBodyTTL)
	}

	return body, nil
}
