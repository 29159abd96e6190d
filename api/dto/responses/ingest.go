// ABOUTME: Response DTOs for the ingestion trigger and health endpoints
// ABOUTME: Wire shapes are decoupled from the domain types they mirror

package responses

import "time"

// SourceOutcomeResponse is the per-source slice of an ingestion run report.
type SourceOutcomeResponse struct {
	Source  string `json:"source" doc:"Source name"`
	Type    string `json:"type" doc:"Source type (FEED or STRUCTURED_API)"`
	Created int    `json:"created" doc:"Opportunities created from this source"`
	Scanned int    `json:"scanned" doc:"Raw records scanned from this source"`
	Error   string `json:"error,omitempty" doc:"Failure detail when the source errored"`
}

// IngestResponse is the report returned by the ingestion trigger.
type IngestResponse struct {
	OK         bool                    `json:"ok" doc:"False when the run failed at the run level"`
	RunID      string                  `json:"run_id" doc:"Identifier of the recorded run"`
	StartedAt  time.Time               `json:"started_at"`
	FinishedAt *time.Time              `json:"finished_at,omitempty"`
	Created    int                     `json:"created" doc:"Total opportunities created"`
	Scanned    int                     `json:"scanned" doc:"Total raw records scanned"`
	Sources    []SourceOutcomeResponse `json:"sources"`
	Error      string                  `json:"error,omitempty" doc:"Run-level failure detail"`
}

// HealthResponse reports service liveness.
type HealthResponse struct {
	Status string `json:"status" example:"ok"`
}
