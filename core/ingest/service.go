// ABOUTME: Run orchestrator driving fetch, classify, persist per active source
// ABOUTME: Per-source failure isolation; the run record is finalized exactly once

package ingest

import (
	"context"
	"errors"
	"sync"
	"time"

	"ao-radar-api/core/domain"
	coreerrors "ao-radar-api/core/errors"
	"ao-radar-api/core/interfaces"
	"ao-radar-api/core/normalize"
	"ao-radar-api/core/rules"
)

// Options tunes a Service.
type Options struct {
	// Concurrency bounds how many sources are processed at once. Values
	// below 1 preserve the sequential reference behavior.
	Concurrency int
}

// Service orchestrates ingestion runs: it reads active sources from the
// registry, drives fetch → classify → persist per source, and records
// the aggregate outcome through the run store.
type Service struct {
	deps          interfaces.Dependencies
	opportunities interfaces.OpportunityStore
	runs          interfaces.RunStore
	registry      interfaces.SourceRegistry
	classifier    *rules.Classifier
	fetchers      map[domain.SourceType]Fetcher
	concurrency   int
}

// NewService wires an ingestion service from its collaborators.
func NewService(
	deps interfaces.Dependencies,
	opportunities interfaces.OpportunityStore,
	runs interfaces.RunStore,
	registry interfaces.SourceRegistry,
	fetchers []Fetcher,
	opts Options,
) *Service {
	byType := make(map[domain.SourceType]Fetcher, len(fetchers))
	for _, f := range fetchers {
		byType[f.SourceType()] = f
	}

	concurrency := opts.Concurrency
	if concurrency < 1 {
		concurrency = 1
	}

	return &Service{
		deps:          deps,
		opportunities: opportunities,
		runs:          runs,
		registry:      registry,
		classifier:    rules.NewClassifier(),
		fetchers:      byType,
		concurrency:   concurrency,
	}
}

// Run executes one full ingestion across all active sources. A per-source
// failure is recorded in that source's outcome and never aborts siblings;
// only registry or run-store failures are run-level errors. The returned
// run reflects what was finalized.
func (s *Service) Run(ctx context.Context) (*domain.IngestRun, error) {
	startedAt := time.Now().UTC()

	runID, err := s.runs.Create(ctx, startedAt)
	if err != nil {
		return nil, coreerrors.WrapError(err, "creating run record")
	}

	run := &domain.IngestRun{ID: runID, StartedAt: startedAt}

	sources, err := s.registry.ActiveSources(ctx)
	if err != nil {
		run.Error = coreerrors.WrapError(err, "listing active sources").Error()
		s.finalize(ctx, run)
		return run, errors.New(run.Error)
	}

	s.logInfo("ingest run started", map[string]interface{}{
		"run_id":  runID,
		"sources": len(sources),
	})

	outcomes := make([]domain.SourceOutcome, len(sources))
	sem := make(chan struct{}, s.concurrency)
	var wg sync.WaitGroup

	for i, source := range sources {
		wg.Add(1)
		go func(i int, source domain.Source) {
			defer wg.Done()
			sem <- struct{}{}
			defer func() { <-sem }()

			outcomes[i] = s.processSource(ctx, source)
		}(i, source)
	}

	// Aggregate counters only after all workers completed.
	wg.Wait()

	run.Sources = outcomes
	for _, outcome := range outcomes {
		run.Created += outcome.Created
		run.Scanned += outcome.Scanned
	}

	// A spent run budget is a run-level error, not just per-source noise.
	if err := ctx.Err(); err != nil {
		run.Error = coreerrors.WrapError(err, "run budget exceeded").Error()
	}

	s.finalize(ctx, run)

	s.logInfo("ingest run finished", map[string]interface{}{
		"run_id":  runID,
		"created": run.Created,
		"scanned": run.Scanned,
	})

	return run, nil
}

// processSource fetches, classifies, and persists one source's records.
// All failures are captured in the outcome, never propagated.
func (s *Service) processSource(ctx context.Context, source domain.Source) domain.SourceOutcome {
	outcome := domain.SourceOutcome{Source: source.Name, Type: source.Type}

	// The run budget may already be spent before this source started.
	if err := ctx.Err(); err != nil {
		outcome.Error = err.Error()
		return outcome
	}

	fetcher, ok := s.fetchers[source.Type]
	if !ok {
		outcome.Error = "no fetcher registered for source type " + string(source.Type)
		return outcome
	}

	fetched, err := fetcher.Fetch(ctx, source)
	outcome.Scanned = fetched.Scanned
	if err != nil {
		outcome.Error = err.Error()
		s.logError("source fetch failed", map[string]interface{}{
			"source": source.Name,
			"error":  err.Error(),
		})
		return outcome
	}

	for _, candidate := range fetched.Candidates {
		result := s.classifier.Classify(candidate)
		if result.Rejected || result.Score < fetcher.MinScore() {
			continue
		}

		created, err := s.persist(ctx, candidate, result)
		if err != nil {
			// Persistence failure aborts this source's remaining records.
			outcome.Error = err.Error()
			s.logError("persisting candidate failed", map[string]interface{}{
				"source": source.Name,
				"link":   candidate.Link,
				"error":  err.Error(),
			})
			return outcome
		}
		if created {
			outcome.Created++
		}
	}

	s.logDebug("source processed", map[string]interface{}{
		"source":  source.Name,
		"scanned": outcome.Scanned,
		"created": outcome.Created,
	})

	return outcome
}

// persist performs the deduplicating create-or-skip. Re-ingestion of an
// already-known link is a strict no-op; the store's unique link constraint
// is the backstop against concurrent runs racing the existence check.
func (s *Service) persist(ctx context.Context, candidate domain.CandidateRecord, result domain.ClassificationResult) (bool, error) {
	existing, err := s.opportunities.FindByLink(ctx, candidate.Link)
	if err != nil {
		return false, err
	}
	if existing != nil {
		return false, nil
	}

	opp := &domain.Opportunity{
		Title:     candidate.Title,
		Link:      candidate.Link,
		Published: candidate.Published,
		Score:     result.Score,
		Tags:      result.Tags,
		Summary:   normalize.Truncate(candidate.Summary, normalize.SummaryLimit),
		Raw:       candidate.Raw,
		Status:    domain.StatusNew,
		Family:    result.Family(),
		CreatedAt: time.Now().UTC(),
	}

	if err := opp.Validate(); err != nil {
		// Malformed after classification; skip like any malformed record.
		return false, nil
	}

	err = s.opportunities.Insert(ctx, opp)
	if errors.Is(err, interfaces.ErrDuplicateLink) {
		// Lost the race against an overlapping run.
		return false, nil
	}
	if err != nil {
		return false, err
	}

	return true, nil
}

// finalizeTimeout bounds the closing write on its own; the run budget may
// already be spent by the time the record is finalized.
const finalizeTimeout = 10 * time.Second

// finalize closes the run record; a finalize failure is only logged since
// the run itself already completed. The write runs on a context detached
// from the run budget so a timed-out run is still recorded.
func (s *Service) finalize(ctx context.Context, run *domain.IngestRun) {
	finishedAt := time.Now().UTC()
	run.FinishedAt = &finishedAt

	ctx, cancel := context.WithTimeout(context.WithoutCancel(ctx), finalizeTimeout)
	defer cancel()

	err := s.runs.Finalize(ctx, run.ID, domain.RunResult{
		FinishedAt: finishedAt,
		Created:    run.Created,
		Scanned:    run.Scanned,
		Sources:    run.Sources,
		Error:      run.Error,
	})
	if err != nil {
		s.logError("finalizing run failed", map[string]interface{}{
			"run_id": run.ID,
			"error":  err.Error(),
		})
	}
}

func (s *Service) logInfo(msg string, fields map[string]interface{}) {
	if s.deps.Logger != nil {
		s.deps.Logger.Info(msg, fields)
	}
}

func (s *Service) logDebug(msg string, fields map[string]interface{}) {
	if s.deps.Logger != nil {
		s.deps.Logger.Debug(msg, fields)
	}
}

func (s *Service) logError(msg string, fields map[string]interface{}) {
	if s.deps.Logger != nil {
		s.deps.Logger.Error(msg, fields)
	}
}
