// ABOUTME: Health check handler for the Huma API
// ABOUTME: Provides a liveness endpoint for deploy probes

package handlers

import (
	"context"
	"net/http"

	"github.com/danielgtaylor/huma/v2"

	"ao-radar-api/api/dto/responses"
)

// HealthHandler handles health check requests
type HealthHandler struct{}

// NewHealthHandler creates a new health handler
func NewHealthHandler() *HealthHandler {
	return &HealthHandler{}
}

// RegisterRoutes registers the health route
func (h *HealthHandler) RegisterRoutes(api huma.API) {
	huma.Register(api, huma.Operation{
		OperationID: "healthCheck",
		Method:      http.MethodGet,
		Path:        "/health",
		Summary:     "Service liveness check",
		Tags:        []string{"Health"},
	}, h.Health)
}

// HealthOutput defines the output for the Health operation
type HealthOutput struct {
	Body responses.HealthResponse
}

// Health handles the GET /health endpoint
func (h *HealthHandler) Health(ctx context.Context, input *struct{}) (*HealthOutput, error) {
	return &HealthOutput{Body: responses.HealthResponse{Status: "ok"}}, nil
}
