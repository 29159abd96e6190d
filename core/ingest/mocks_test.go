package ingest

import (
	"context"
	"io"
	"strings"
	"sync"
	"time"

	"ao-radar-api/core/domain"
	"ao-radar-api/core/interfaces"
)

// mockHTTPClient is a mock implementation of the HTTPClient interface
type mockHTTPClient struct {
	getFunc func(ctx context.Context, url string) (interfaces.Response, error)
}

func (m *mockHTTPClient) Get(ctx context.Context, url string) (interfaces.Response, error) {
	if m.getFunc != nil {
		return m.getFunc(ctx, url)
	}
	return nil, nil
}

// mockResponse is a mock implementation of the Response interface
type mockResponse struct {
	statusCode int
	body       string
	headers    map[string]string
}

func (m *mockResponse) StatusCode() int {
	return m.statusCode
}

func (m *mockResponse) Body() io.ReadCloser {
	return io.NopCloser(strings.NewReader(m.body))
}

func (m *mockResponse) Header(key string) string {
	if m.headers != nil {
		return m.headers[key]
	}
	return ""
}

// mockCache is a mock implementation of the Cache interface
type mockCache struct {
	getFunc func(ctx context.Context, key string) ([]byte, error)
	setFunc func(ctx context.Context, key string, value []byte, ttl time.Duration) error
}

func (m *mockCache) Get(ctx context.Context, key string) ([]byte, error) {
	if m.getFunc != nil {
		return m.getFunc(ctx, key)
	}
	return nil, nil
}

func (m *mockCache) Set(ctx context.Context, key string, value []byte, ttl time.Duration) error {
	if m.setFunc != nil {
		return m.setFunc(ctx, key, value, ttl)
	}
	return nil
}

func (m *mockCache) Delete(ctx context.Context, key string) error {
	return nil
}

// memOpportunityStore is an in-memory OpportunityStore keyed by link
type memOpportunityStore struct {
	mu        sync.Mutex
	byLink    map[string]*domain.Opportunity
	insertErr error
	findErr   error
}

func newMemOpportunityStore() *memOpportunityStore {
	return &memOpportunityStore{byLink: make(map[string]*domain.Opportunity)}
}

func (s *memOpportunityStore) FindByLink(ctx context.Context, link string) (*domain.Opportunity, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.findErr != nil {
		return nil, s.findErr
	}
	return s.byLink[link], nil
}

func (s *memOpportunityStore) Insert(ctx context.Context, opp *domain.Opportunity) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.insertErr != nil {
		return s.insertErr
	}
	if _, exists := s.byLink[opp.Link]; exists {
		return interfaces.ErrDuplicateLink
	}
	s.byLink[opp.Link] = opp
	return nil
}

// memRunStore is an in-memory RunStore recording create/finalize calls
type memRunStore struct {
	mu        sync.Mutex
	createErr error
	created   int
	finalized map[string]domain.RunResult
}

func newMemRunStore() *memRunStore {
	return &memRunStore{finalized: make(map[string]domain.RunResult)}
}

func (s *memRunStore) Create(ctx context.Context, startedAt time.Time) (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.createErr != nil {
		return "", s.createErr
	}
	s.created++
	return "run-1", nil
}

func (s *memRunStore) Finalize(ctx context.Context, runID string, result domain.RunResult) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.finalized[runID] = result
	return nil
}

// mockRegistry is a mock SourceRegistry
type mockRegistry struct {
	sources []domain.Source
	err     error
}

func (r *mockRegistry) ActiveSources(ctx context.Context) ([]domain.Source, error) {
	if r.err != nil {
		return nil, r.err
	}
	return r.sources, nil
}

// mockFetcher is a scriptable Fetcher
type mockFetcher struct {
	sourceType domain.SourceType
	minScore   int
	fetchFunc  func(ctx context.Context, source domain.Source) (FetchResult, error)
}

func (f *mockFetcher) SourceType() domain.SourceType {
	return f.sourceType
}

func (f *mockFetcher) MinScore() int {
	return f.minScore
}

func (f *mockFetcher) Fetch(ctx context.Context, source domain.Source) (FetchResult, error) {
	if f.fetchFunc != nil {
		return f.fetchFunc(ctx, source)
	}
	return FetchResult{}, nil
}
