// ABOUTME: IngestRun is the auditable record of one full ingestion execution
// ABOUTME: Created at run start and finalized exactly once at run end

package domain

import "time"

// SourceOutcome is the per-source detail recorded on a run. Either the
// counters are meaningful or Error is non-empty; a failed source never
// aborts its siblings.
type SourceOutcome struct {
	// Source is the source display name
	Source string `json:"source"`

	// Type is the source type the outcome belongs to
	Type SourceType `json:"type"`

	// Created is how many new opportunities this source produced
	Created int `json:"created"`

	// Scanned is how many raw records were enumerated
	Scanned int `json:"scanned"`

	// Error holds the failure message when the source could not be processed
	Error string `json:"error,omitempty"`
}

// RunResult is the finalization payload for a run.
type RunResult struct {
	// FinishedAt is when the run ended (success or failure path)
	FinishedAt time.Time

	// Created is the aggregate created count across sources
	Created int

	// Scanned is the aggregate scanned count across sources
	Scanned int

	// Sources is the per-source outcome list
	Sources []SourceOutcome

	// Error is set only for run-level failures (registry unreachable,
	// wall-clock budget exceeded before any source completed, ...)
	Error string
}

// IngestRun is one execution of the ingestion job across all active sources.
type IngestRun struct {
	// ID is the generated run identifier
	ID string

	// StartedAt is when the run record was created
	StartedAt time.Time

	// FinishedAt is when the run was finalized, nil while in flight
	FinishedAt *time.Time

	// Created is the aggregate created count
	Created int

	// Scanned is the aggregate scanned count
	Scanned int

	// Sources is the per-source outcome list
	Sources []SourceOutcome

	// Error is the run-level failure message, empty for ok runs
	Error string
}

// OK reports whether the run completed without a run-level failure. Partial
// per-source failures are expected and do not make a run not-ok.
func (r *IngestRun) OK() bool {
	return r.Error == ""
}
