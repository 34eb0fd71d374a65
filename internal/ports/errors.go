package ports

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"math"
	"net/http"
	"strconv"

	"github.com/victorgomez09/league-stats/internal/domain"
	"github.com/victorgomez09/league-stats/internal/logging"
	"github.com/victorgomez09/league-stats/internal/reporting"
)

type errorResponse struct {
	Success bool   `json:"success"`
	Code    string `json:"code"`
	Cause   string `json:"cause"`
}

func statusCodeForError(err error) int {
	var statusErr *domain.UpstreamStatusError

	switch {
	case errors.Is(err, domain.ErrPlayerNotFound),
		errors.Is(err, domain.ErrParticipantNotFound):
		return http.StatusNotFound
	case errors.Is(err, domain.ErrRateLimitExceeded):
		return http.StatusTooManyRequests
	case errors.Is(err, domain.ErrUpstreamUnavailable):
		return http.StatusServiceUnavailable
	case errors.Is(err, domain.ErrAPIKeyExpired),
		errors.Is(err, domain.ErrAPIKeyInvalid):
		// Riot rejected our key
		return http.StatusBadGateway
	case errors.Is(err, domain.ErrConfiguration):
		return http.StatusInternalServerError
	case errors.Is(err, domain.ErrInvalidArgument),
		errors.Is(err, domain.ErrBadRequest):
		return http.StatusBadRequest
	case errors.As(err, &statusErr),
		errors.Is(err, domain.ErrMalformedUpstreamData),
		errors.Is(err, domain.ErrMissingReferenceData):
		return http.StatusBadGateway
	}
	return http.StatusInternalServerError
}

func writeErrorResponse(ctx context.Context, w http.ResponseWriter, responseError error) int {
	statusCode := statusCodeForError(responseError)

	var rateLimitErr *domain.RateLimitError
	if errors.As(responseError, &rateLimitErr) && rateLimitErr.RetryAfter > 0 {
		seconds := int(math.Ceil(rateLimitErr.RetryAfter.Seconds()))
		w.Header().Set("Retry-After", strconv.Itoa(seconds))
	}

	data, err := json.Marshal(errorResponse{
		Success: false,
		Code:    domain.ErrorCode(responseError),
		Cause:   domain.UserMessage(responseError),
	})
	if err != nil {
		reporting.Report(ctx, fmt.Errorf("failed to marshal error response: %w", err), map[string]string{
			"responseError": responseError.Error(),
		})
		data = []byte(`{"success":false,"code":"UNKNOWN_ERROR","cause":"Internal server error"}`)
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	w.Write(data)

	logging.FromContext(ctx).InfoContext(ctx, "Returning response", "statusCode", statusCode, "reason", domain.ErrorCode(responseError), "error", responseError.Error())
	return statusCode
}

// writeSuccessResponse marshals a response body that carries "success": true
func writeSuccessResponse(ctx context.Context, w http.ResponseWriter, body any) int {
	data, err := json.Marshal(body)
	if err != nil {
		err = fmt.Errorf("failed to marshal response: %w", err)
		reporting.Report(ctx, err)
		return writeErrorResponse(ctx, w, err)
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	w.Write(data)

	logging.FromContext(ctx).InfoContext(ctx, "Returning response", "statusCode", http.StatusOK, "reason", "success", "contentLength", len(data))
	return http.StatusOK
}
