// ABOUTME: Error handling utilities for API handlers
// ABOUTME: Converts domain errors to appropriate HTTP responses

package handlers

import (
	stderrors "errors"

	"github.com/danielgtaylor/huma/v2"

	"ao-radar-api/core/errors"
)

// toHumaError converts domain errors to appropriate Huma HTTP errors
func toHumaError(err error) error {
	if err == nil {
		return nil
	}

	if errors.IsUnauthorized(err) {
		return huma.Error401Unauthorized(err.Error())
	}

	if errors.IsValidation(err) {
		return huma.Error400BadRequest(err.Error())
	}

	if errors.IsSourceFetch(err) {
		var fetchErr *errors.SourceFetchError
		if stderrors.As(err, &fetchErr) {
			switch {
			case fetchErr.StatusCode == 429:
				return huma.Error429TooManyRequests("rate limited by upstream source")
			case fetchErr.StatusCode >= 500:
				return huma.Error502BadGateway("upstream source error", err)
			default:
				return huma.Error502BadGateway("upstream source rejected the request", err)
			}
		}
	}

	return huma.Error500InternalServerError("internal server error", err)
}
