package mappers

import (
	"testing"
	"time"

	"ao-radar-api/core/domain"
)

func TestToIngestResponse(t *testing.T) {
	started := time.Date(2024, 9, 1, 6, 0, 0, 0, time.UTC)
	finished := started.Add(time.Minute)
	run := &domain.IngestRun{
		ID:         "run-1",
		StartedAt:  started,
		FinishedAt: &finished,
		Created:    2,
		Scanned:    40,
		Sources: []domain.SourceOutcome{
			{Source: "boamp", Type: domain.SourceTypeFeed, Created: 2, Scanned: 30},
			{Source: "opendata", Type: domain.SourceTypeStructuredAPI, Scanned: 10, Error: "timeout"},
		},
	}

	resp := ToIngestResponse(run)

	if !resp.OK {
		t.Error("run without run-level error should map to ok=true")
	}
	if resp.RunID != "run-1" || resp.Created != 2 || resp.Scanned != 40 {
		t.Errorf("mapped aggregate = %+v", resp)
	}
	if resp.FinishedAt == nil || !resp.FinishedAt.Equal(finished) {
		t.Errorf("finished_at = %v", resp.FinishedAt)
	}
	if len(resp.Sources) != 2 {
		t.Fatalf("sources = %d, want 2", len(resp.Sources))
	}
	if resp.Sources[1].Type != "STRUCTURED_API" || resp.Sources[1].Error != "timeout" {
		t.Errorf("second outcome = %+v", resp.Sources[1])
	}
}

func TestToIngestResponse_RunError(t *testing.T) {
	run := &domain.IngestRun{
		ID:        "run-2",
		StartedAt: time.Now(),
		Error:     "listing active sources: db locked",
	}

	resp := ToIngestResponse(run)

	if resp.OK {
		t.Error("run-level error should map to ok=false")
	}
	if resp.Error == "" {
		t.Error("error detail should be carried through")
	}
	if resp.Sources == nil {
		t.Error("sources should be an empty list, not null")
	}
}

func TestToIngestResponse_Nil(t *testing.T) {
	resp := ToIngestResponse(nil)

	if resp.OK || resp.RunID != "" {
		t.Errorf("nil run should map to a zero response, got %+v", resp)
	}
}
