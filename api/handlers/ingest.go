// ABOUTME: Ingestion trigger handler for the Huma API
// ABOUTME: Secret-gated endpoint that runs one full ingestion and reports it

package handlers

import (
	"context"
	"crypto/subtle"
	"net/http"
	"time"

	"github.com/danielgtaylor/huma/v2"

	"ao-radar-api/api/dto/mappers"
	"ao-radar-api/api/dto/responses"
	"ao-radar-api/core/domain"
	"ao-radar-api/core/errors"
)

// IngestService defines the methods needed from the ingestion service
type IngestService interface {
	Run(ctx context.Context) (*domain.IngestRun, error)
}

// IngestHandler handles ingestion-related HTTP requests
type IngestHandler struct {
	service    IngestService
	secret     string
	runTimeout time.Duration
}

// NewIngestHandler creates a new ingestion handler. An empty secret disables
// the trigger endpoint entirely.
func NewIngestHandler(service IngestService, secret string, runTimeout time.Duration) *IngestHandler {
	return &IngestHandler{
		service:    service,
		secret:     secret,
		runTimeout: runTimeout,
	}
}

// RegisterRoutes registers all ingestion-related routes
func (h *IngestHandler) RegisterRoutes(api huma.API) {
	huma.Register(api, huma.Operation{
		OperationID: "triggerIngest",
		Method:      http.MethodPost,
		Path:        "/ingest",
		Summary:     "Run one ingestion across all active sources",
		Description: "Fetches, classifies, and persists new opportunities; requires the shared ingestion secret",
		Tags:        []string{"Ingestion"},
	}, h.TriggerIngest)
}

// TriggerIngestInput defines the input for the TriggerIngest operation. The
// secret may be supplied either as a query parameter or a header.
type TriggerIngestInput struct {
	Secret       string `query:"secret" required:"false" doc:"Shared ingestion secret"`
	SecretHeader string `header:"X-Ingest-Secret" required:"false" doc:"Shared ingestion secret"`
}

// TriggerIngestOutput defines the output for the TriggerIngest operation
type TriggerIngestOutput struct {
	Body responses.IngestResponse
}

// TriggerIngest handles the POST /ingest endpoint
func (h *IngestHandler) TriggerIngest(ctx context.Context, input *TriggerIngestInput) (*TriggerIngestOutput, error) {
	if h.secret == "" {
		return nil, huma.Error503ServiceUnavailable("ingestion trigger is disabled")
	}

	provided := input.SecretHeader
	if provided == "" {
		provided = input.Secret
	}
	if subtle.ConstantTimeCompare([]byte(provided), []byte(h.secret)) != 1 {
		return nil, toHumaError(&errors.UnauthorizedError{Reason: "invalid ingestion secret"})
	}

	runCtx := ctx
	if h.runTimeout > 0 {
		var cancel context.CancelFunc
		runCtx, cancel = context.WithTimeout(ctx, h.runTimeout)
		defer cancel()
	}

	run, err := h.service.Run(runCtx)
	if err != nil {
		if run == nil {
			return nil, toHumaError(err)
		}
		// The run record exists; report the failure in the body instead of
		// discarding what was recorded.
	}

	return &TriggerIngestOutput{Body: mappers.ToIngestResponse(run)}, nil
}
