// ABOUTME: Structured-API fetcher for paginated open-data tender datasets
// ABOUTME: Supports server-side filter expressions and fully local filtering

package ingest

import (
	"context"
	"encoding/json"
	"fmt"
	"net/url"
	"sort"
	"strconv"
	"strings"

	"ao-radar-api/core/domain"
	"ao-radar-api/core/interfaces"
	"ao-radar-api/core/normalize"
	"ao-radar-api/core/rules"
)

// FilterMode selects how a structured source is narrowed down.
type FilterMode string

const (
	// FilterModeServer pushes a where expression (CPV prefixes OR keyword
	// substrings) to the dataset endpoint.
	FilterModeServer FilterMode = "server"

	// FilterModeLocal requests an unfiltered recency-ordered page and
	// applies all classification locally.
	FilterModeLocal FilterMode = "local"
)

// DefaultAPIResultLimit is the bounded page size requested per fetch.
const DefaultAPIResultLimit = 120

// Field name priority orders observed across dataset shapes.
var (
	titleFields   = []string{"intitule", "objet", "titre", "libelle"}
	linkFields    = []string{"url_avis", "url", "lien", "source"}
	refFields     = []string{"idweb", "id", "identifiant"}
	dateFields    = []string{"dateparution", "datepublication", "date"}
	summaryFields = []string{"objet", "description", "resume"}
)

// StructuredAPIFetcher handles STRUCTURED_API sources.
type StructuredAPIFetcher struct {
	deps  interfaces.Dependencies
	limit int
	mode  FilterMode
}

// NewStructuredAPIFetcher creates a structured-API fetcher. limit <= 0
// selects the default page size; an empty mode defaults to server-side
// filtering.
func NewStructuredAPIFetcher(deps interfaces.Dependencies, limit int, mode FilterMode) *StructuredAPIFetcher {
	if limit <= 0 {
		limit = DefaultAPIResultLimit
	}
	if mode == "" {
		mode = FilterModeServer
	}
	return &StructuredAPIFetcher{deps: deps, limit: limit, mode: mode}
}

// SourceType implements Fetcher.
func (f *StructuredAPIFetcher) SourceType() domain.SourceType {
	return domain.SourceTypeStructuredAPI
}

// MinScore implements Fetcher.
func (f *StructuredAPIFetcher) MinScore() int {
	return StructuredMinScore
}

// envelope is the dataset query response shape.
type envelope struct {
	Results []map[string]interface{} `json:"results"`
}

// Fetch requests a bounded recency-ordered page and reduces each row to a
// candidate with its extracted classification codes.
func (f *StructuredAPIFetcher) Fetch(ctx context.Context, source domain.Source) (FetchResult, error) {
	queryURL, err := f.buildQueryURL(source.URL)
	if err != nil {
		return FetchResult{}, err
	}

	body, err := fetchBody(ctx, f.deps, source.Name, queryURL)
	if err != nil {
		return FetchResult{}, err
	}

	var page envelope
	if err := json.Unmarshal(body, &page); err != nil {
		return FetchResult{}, fmt.Errorf("decoding dataset response: %w", err)
	}

	rows := page.Results
	if f.mode == FilterModeLocal {
		rows = sortRowsByDateDesc(rows)
		if len(rows) > f.limit {
			rows = rows[:f.limit]
		}
	}

	result := FetchResult{Candidates: make([]domain.CandidateRecord, 0, len(rows))}
	for _, row := range rows {
		result.Scanned++

		candidate := f.rowToCandidate(source, row)
		if !candidate.IsValid() {
			continue
		}
		result.Candidates = append(result.Candidates, candidate)
	}

	return result, nil
}

// buildQueryURL attaches limit, recency ordering, and (in server mode) the
// filter expression to the source endpoint.
func (f *StructuredAPIFetcher) buildQueryURL(sourceURL string) (string, error) {
	parsed, err := url.Parse(sourceURL)
	if err != nil {
		return "", fmt.Errorf("parsing source URL: %w", err)
	}

	q := parsed.Query()
	q.Set("limit", strconv.Itoa(f.limit))
	q.Set("order_by", "dateparution desc")
	if f.mode == FilterModeServer {
		q.Set("where", BuildWhereExpression())
	}
	parsed.RawQuery = q.Encode()

	return parsed.String(), nil
}

// BuildWhereExpression combines an OR of allow-listed CPV prefixes with an
// OR of keyword substring matches over the known text fields.
func BuildWhereExpression() string {
	cpvTerms := make([]string, 0, len(rules.CPVAllowList))
	for _, rule := range rules.CPVAllowList {
		cpvTerms = append(cpvTerms, fmt.Sprintf("cpv LIKE '%s%%'", rule.Prefix))
	}

	kwTerms := make([]string, 0, len(rules.Keywords))
	for _, kw := range rules.Keywords {
		escaped := strings.ToLower(strings.ReplaceAll(kw, "'", "''"))
		kwTerms = append(kwTerms, fmt.Sprintf(
			"(lower(objet) like '%%%s%%' OR lower(intitule) like '%%%s%%' OR lower(description) like '%%%s%%')",
			escaped, escaped, escaped,
		))
	}

	return fmt.Sprintf("((%s) OR (%s))",
		strings.Join(cpvTerms, " OR "),
		strings.Join(kwTerms, " OR "),
	)
}

// rowToCandidate normalizes one dataset row. Rows without any link field get
// a deterministic synthetic link derived from the source URL and the best
// available per-record reference.
func (f *StructuredAPIFetcher) rowToCandidate(source domain.Source, row map[string]interface{}) domain.CandidateRecord {
	raw, err := json.Marshal(row)
	if err != nil {
		raw = nil
	}

	candidate := domain.CandidateRecord{
		Title: firstField(row, titleFields),
		Link:  firstField(row, linkFields),
		Raw:   string(raw),
	}
	if candidate.Title == "" {
		candidate.Title = "Opportunité"
	}

	if candidate.Link == "" {
		ref := firstField(row, refFields)
		if ref == "" {
			ref = candidate.Title
		}
		candidate.Link = normalize.SyntheticLink(source.URL, ref)
	}

	candidate.Published = normalize.PublishedAt(firstField(row, dateFields))
	candidate.Summary = firstField(row, summaryFields)

	// Classification text covers the whole serialized row so signals buried
	// in nested fields still count.
	candidate.Body = string(raw)
	candidate.Codes = ExtractCodes(row, raw)

	return candidate
}

// firstField returns the first non-empty normalized value among the named
// top-level fields, degrading to "" instead of failing on unexpected shapes.
func firstField(row map[string]interface{}, names []string) string {
	for _, name := range names {
		if v, ok := row[name]; ok {
			if s := normalize.Text(v); s != "" {
				return s
			}
		}
	}
	return ""
}

// sortRowsByDateDesc orders rows by their best-available date field,
// newest first. Rows without a parsable date sort last; the sort is stable
// so their relative fetch order is preserved.
func sortRowsByDateDesc(rows []map[string]interface{}) []map[string]interface{} {
	sorted := make([]map[string]interface{}, len(rows))
	copy(sorted, rows)

	sort.SliceStable(sorted, func(i, j int) bool {
		ti := normalize.PublishedAt(firstField(sorted[i], dateFields))
		tj := normalize.PublishedAt(firstField(sorted[j], dateFields))
		switch {
		case ti == nil:
			return false
		case tj == nil:
			return true
		default:
			return ti.After(*tj)
		}
	})

	return sorted
}
