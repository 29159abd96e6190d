// ABOUTME: Storage interfaces for the ingestion collaborator contracts
// ABOUTME: Narrow read/upsert surface; triage owns all updates to opportunities

package interfaces

import (
	"context"
	"errors"
	"time"

	"ao-radar-api/core/domain"
)

// ErrDuplicateLink is returned by OpportunityStore.Insert when the unique
// link constraint rejects the row. It is the expected identity conflict and
// not treated as a persistence failure.
var ErrDuplicateLink = errors.New("opportunity link already exists")

// OpportunityStore is the narrow persistence contract used by the
// deduplicating persister. The update path belongs to triage, not here.
type OpportunityStore interface {
	// FindByLink returns the opportunity with the given link, or (nil, nil)
	// when no such opportunity exists.
	FindByLink(ctx context.Context, link string) (*domain.Opportunity, error)

	// Insert persists a new opportunity. Returns ErrDuplicateLink when an
	// opportunity with the same link already exists.
	Insert(ctx context.Context, opp *domain.Opportunity) error
}

// RunStore records ingestion runs for observability.
type RunStore interface {
	// Create opens a new run record and returns its identifier.
	Create(ctx context.Context, startedAt time.Time) (string, error)

	// Finalize closes the run exactly once with its aggregate result.
	Finalize(ctx context.Context, runID string, result domain.RunResult) error
}

// SourceRegistry exposes the sources the run should process. The ingestion
// core only reads; activation toggles are owned elsewhere.
type SourceRegistry interface {
	// ActiveSources returns all sources with the active flag set.
	ActiveSources(ctx context.Context) ([]domain.Source, error)
}
