package domain

import (
	"errors"
	"fmt"
	"time"
)

var (
	ErrPlayerNotFound         = errors.New("player not found")
	ErrConfiguration          = errors.New("configuration error")
	ErrRateLimitExceeded      = errors.New("rate limit exceeded")
	ErrUpstreamUnavailable    = errors.New("upstream unavailable")
	ErrUpstream               = errors.New("upstream error")
	ErrMalformedUpstreamData  = errors.New("malformed upstream data")
	ErrParticipantNotFound    = errors.New("participant not found")
	ErrMissingReferenceData   = errors.New("missing reference data")
	ErrInvalidArgument        = errors.New("invalid argument")
	ErrAPIKeyExpired          = fmt.Errorf("%w: api key expired", ErrConfiguration)
	ErrAPIKeyInvalid          = fmt.Errorf("%w: api key invalid", ErrConfiguration)
	ErrBadRequest             = fmt.Errorf("%w: bad request", ErrUpstream)
	ErrPuuidDecryption        = fmt.Errorf("%w: puuid decryption failed", ErrBadRequest)
	ErrUnsupportedCatalogKind = fmt.Errorf("%w: unsupported catalog kind", ErrInvalidArgument)
)

// UpstreamStatusError is an unclassified non-2xx response from the player-data API.
type UpstreamStatusError struct {
	StatusCode int
}

func (e *UpstreamStatusError) Error() string {
	return fmt.Sprintf("upstream returned status code %d", e.StatusCode)
}

func (e *UpstreamStatusError) Is(target error) bool {
	return target == ErrUpstream
}

// RateLimitError carries the upstream's requested back-off, if it sent one.
type RateLimitError struct {
	RetryAfter time.Duration
}

func (e *RateLimitError) Error() string {
	if e.RetryAfter > 0 {
		return fmt.Sprintf("%s: retry after %s", ErrRateLimitExceeded, e.RetryAfter)
	}
	return ErrRateLimitExceeded.Error()
}

func (e *RateLimitError) Is(target error) bool {
	return target == ErrRateLimitExceeded
}

// ErrorCode returns a stable machine readable code for err
func ErrorCode(err error) string {
	var statusErr *UpstreamStatusError

	switch {
	case err == nil:
		return ""
	case errors.Is(err, ErrPlayerNotFound):
		return "PLAYER_NOT_FOUND"
	case errors.Is(err, ErrAPIKeyExpired):
		return "API_KEY_EXPIRED"
	case errors.Is(err, ErrAPIKeyInvalid):
		return "API_KEY_INVALID"
	case errors.Is(err, ErrConfiguration):
		return "CONFIGURATION_ERROR"
	case errors.Is(err, ErrPuuidDecryption):
		return "PUUID_DECRYPTION_ERROR"
	case errors.Is(err, ErrBadRequest):
		return "BAD_REQUEST"
	case errors.Is(err, ErrRateLimitExceeded):
		return "RATE_LIMIT_EXCEEDED"
	case errors.Is(err, ErrUpstreamUnavailable):
		return "UPSTREAM_UNAVAILABLE"
	case errors.As(err, &statusErr):
		return fmt.Sprintf("API_ERROR_%d", statusErr.StatusCode)
	case errors.Is(err, ErrMalformedUpstreamData):
		return "MALFORMED_UPSTREAM_DATA"
	case errors.Is(err, ErrParticipantNotFound):
		return "PARTICIPANT_NOT_FOUND"
	case errors.Is(err, ErrMissingReferenceData):
		return "MISSING_REFERENCE_DATA"
	case errors.Is(err, ErrInvalidArgument):
		return "INVALID_ARGUMENT"
	}
	return "UNKNOWN_ERROR"
}

// UserMessage returns a short message suitable for showing to the person who made the request
func UserMessage(err error) string {
	var statusErr *UpstreamStatusError

	switch {
	case errors.Is(err, ErrPlayerNotFound):
		return "Player not found. Please check if the name/Riot ID is correct."
	case errors.Is(err, ErrAPIKeyExpired):
		return "API key issue. Please check if your Personal API key is active."
	case errors.Is(err, ErrAPIKeyInvalid):
		return "API key is invalid. Please check your configuration."
	case errors.Is(err, ErrConfiguration):
		return "The service is misconfigured. Please try again later."
	case errors.Is(err, ErrPuuidDecryption):
		return "PUUID decryption issue. Some data may not be available."
	case errors.Is(err, ErrRateLimitExceeded):
		return "Too many requests. Please wait a few seconds and try again."
	case errors.Is(err, ErrUpstreamUnavailable):
		return "Riot API is unreachable. Please try again later."
	case errors.As(err, &statusErr):
		return fmt.Sprintf("Riot API error (%d). Please try again later.", statusErr.StatusCode)
	case errors.Is(err, ErrMalformedUpstreamData),
		errors.Is(err, ErrMissingReferenceData):
		return "Riot API returned data we could not read. Please try again later."
	case errors.Is(err, ErrParticipantNotFound):
		return "Player is not part of this match."
	case errors.Is(err, ErrInvalidArgument):
		return "Invalid request."
	}
	return "Unknown error. Please try again."
}
