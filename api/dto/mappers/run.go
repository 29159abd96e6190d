// ABOUTME: Mapping from ingestion run domain types to response DTOs
// ABOUTME: Keeps wire shapes stable independent of domain changes

package mappers

import (
	"ao-radar-api/api/dto/responses"
	"ao-radar-api/core/domain"
)

// ToIngestResponse converts a finalized run into its API report.
func ToIngestResponse(run *domain.IngestRun) responses.IngestResponse {
	if run == nil {
		return responses.IngestResponse{}
	}

	sources := make([]responses.SourceOutcomeResponse, 0, len(run.Sources))
	for _, outcome := range run.Sources {
		sources = append(sources, responses.SourceOutcomeResponse{
			Source:  outcome.Source,
			Type:    string(outcome.Type),
			Created: outcome.Created,
			Scanned: outcome.Scanned,
			Error:   outcome.Error,
		})
	}

	return responses.IngestResponse{
		OK:         run.OK(),
		RunID:      run.ID,
		StartedAt:  run.StartedAt,
		FinishedAt: run.FinishedAt,
		Created:    run.Created,
		Scanned:    run.Scanned,
		Sources:    sources,
		Error:      run.Error,
	}
}
