package ports

import (
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/victorgomez09/league-stats/internal/domain"
)

func TestStatusCodeForError(t *testing.T) {
	t.Parallel()

	cases := []struct {
		name       string
		err        error
		statusCode int
	}{
		{name: "player not found", err: domain.ErrPlayerNotFound, statusCode: http.StatusNotFound},
		{name: "participant not found", err: domain.ErrParticipantNotFound, statusCode: http.StatusNotFound},
		{name: "rate limited", err: &domain.RateLimitError{RetryAfter: time.Second}, statusCode: http.StatusTooManyRequests},
		{name: "unavailable", err: fmt.Errorf("%w: dial tcp", domain.ErrUpstreamUnavailable), statusCode: http.StatusServiceUnavailable},
		{name: "api key expired", err: domain.ErrAPIKeyExpired, statusCode: http.StatusBadGateway},
		{name: "api key invalid", err: domain.ErrAPIKeyInvalid, statusCode: http.StatusBadGateway},
		{name: "configuration", err: domain.ErrConfiguration, statusCode: http.StatusInternalServerError},
		{name: "invalid argument", err: domain.ErrInvalidArgument, statusCode: http.StatusBadRequest},
		{name: "unknown catalog kind", err: domain.ErrUnsupportedCatalogKind, statusCode: http.StatusBadRequest},
		{name: "upstream bad request", err: domain.ErrBadRequest, statusCode: http.StatusBadRequest},
		{name: "puuid decryption", err: domain.ErrPuuidDecryption, statusCode: http.StatusBadRequest},
		{name: "upstream status", err: &domain.UpstreamStatusError{StatusCode: 500}, statusCode: http.StatusBadGateway},
		{name: "malformed", err: domain.ErrMalformedUpstreamData, statusCode: http.StatusBadGateway},
		{name: "missing reference data", err: domain.ErrMissingReferenceData, statusCode: http.StatusBadGateway},
		{name: "unknown", err: assert.AnError, statusCode: http.StatusInternalServerError},
	}

	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			t.Parallel()

			wrapped := fmt.Errorf("failed to cache.GetOrCreate: %w", c.err)
			require.Equal(t, c.statusCode, statusCodeForError(wrapped))
		})
	}
}

func TestWriteErrorResponse(t *testing.T) {
	t.Parallel()

	t.Run("body", func(t *testing.T) {
		t.Parallel()

		w := httptest.NewRecorder()
		statusCode := writeErrorResponse(t.Context(), w, fmt.Errorf("lookup: %w", domain.ErrPlayerNotFound))

		require.Equal(t, http.StatusNotFound, statusCode)
		require.Equal(t, http.StatusNotFound, w.Code)
		require.Equal(t, "application/json", w.Header().Get("Content-Type"))
		require.Empty(t, w.Header().Get("Retry-After"))
		require.JSONEq(t, `{"success":false,"code":"PLAYER_NOT_FOUND","cause":"Player not found. Please check if the name/Riot ID is correct."}`, w.Body.String())
	})

	t.Run("retry after is passed through", func(t *testing.T) {
		t.Parallel()

		w := httptest.NewRecorder()
		writeErrorResponse(t.Context(), w, &domain.RateLimitError{RetryAfter: 1500 * time.Millisecond})

		require.Equal(t, http.StatusTooManyRequests, w.Code)
		require.Equal(t, "2", w.Header().Get("Retry-After"))

		var body errorResponse
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
		require.False(t, body.Success)
		require.Equal(t, "RATE_LIMIT_EXCEEDED", body.Code)
	})

	t.Run("upstream status code", func(t *testing.T) {
		t.Parallel()

		w := httptest.NewRecorder()
		writeErrorResponse(t.Context(), w, &domain.UpstreamStatusError{StatusCode: 503})

		require.Equal(t, http.StatusBadGateway, w.Code)
		require.JSONEq(t, `{"success":false,"code":"API_ERROR_503","cause":"Riot API error (503). Please try again later."}`, w.Body.String())
	})
}
