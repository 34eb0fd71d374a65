package riotapi

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/victorgomez09/league-stats/internal/domain"
	"github.com/victorgomez09/league-stats/internal/logging"
	"github.com/victorgomez09/league-stats/internal/ratelimiting"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
)

const userAgent = "league-stats/1.0 (+https://github.com/victorgomez09/league-stats)"

var tracer = otel.Tracer("leaguestats/riotapi")

type HttpClient interface {
	Do(req *http.Request) (*http.Response, error)
}

// Client talks to the Riot API on behalf of one application key
//
// Every request waits on the shared limiter first and is never retried.
type Client struct {
	httpClient HttpClient
	limiter    ratelimiting.RequestLimiter
	apiKey     string
	platform   domain.Platform
	nowFunc    func() time.Time
}

func NewClient(
	httpClient HttpClient,
	limiter ratelimiting.RequestLimiter,
	apiKey string,
	platform domain.Platform,
	nowFunc func() time.Time,
) *Client {
	return &Client{
		httpClient: httpClient,
		limiter:    limiter,
		apiKey:     apiKey,
		platform:   platform,
		nowFunc:    nowFunc,
	}
}

// resolvePlatform falls back to the configured platform for the zero value
func (c *Client) resolvePlatform(platform domain.Platform) domain.Platform {
	if platform == "" {
		return c.platform
	}
	return platform
}

func (c *Client) platformURL(platform domain.Platform, path string) string {
	return fmt.Sprintf("https://%s%s", c.resolvePlatform(platform).Host(), path)
}

func (c *Client) regionalURL(platform domain.Platform, path string) string {
	return fmt.Sprintf("https://%s%s", c.resolvePlatform(platform).Region().Host(), path)
}

func (c *Client) get(ctx context.Context, operation string, url string, out any) error {
	ctx, span := tracer.Start(ctx, "riotapi."+operation, trace.WithSpanKind(trace.SpanKindClient))
	defer span.End()

	err := c.doGet(ctx, operation, url, out)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, domain.ErrorCode(err))
	}
	return err
}

func (c *Client) doGet(ctx context.Context, operation string, url string, out any) error {
	logger := logging.FromContext(ctx)

	if err := c.limiter.Wait(ctx); err != nil {
		return fmt.Errorf("%w: waiting for rate limiter: %w", domain.ErrUpstreamUnavailable, err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("User-Agent", userAgent)
	req.Header.Set("X-Riot-Token", c.apiKey)

	start := c.nowFunc()
	resp, err := c.httpClient.Do(req)
	if err != nil {
		metrics.recordRequest(ctx, operation, "error", c.nowFunc().Sub(start))
		logger.WarnContext(ctx, "Riot API request failed", "url", url, "error", err.Error())
		return fmt.Errorf("%w: failed to send request: %w", domain.ErrUpstreamUnavailable, err)
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("%w: failed to read response body: %w", domain.ErrUpstreamUnavailable, err)
	}

	duration := c.nowFunc().Sub(start)
	metrics.recordRequest(ctx, operation, strconv.Itoa(resp.StatusCode), duration)
	logger.InfoContext(ctx, "Riot API request completed", "url", url, "status", resp.StatusCode, "duration", duration.String())

	if err := errorFromStatus(resp.StatusCode, data, resp.Header); err != nil {
		return err
	}

	if err := json.Unmarshal(data, out); err != nil {
		return fmt.Errorf("%w: failed to parse %s response: %w", domain.ErrMalformedUpstreamData, operation, err)
	}
	return nil
}

type errorResponse struct {
	Status struct {
		Message    string `json:"message"`
		StatusCode int    `json:"status_code"`
	} `json:"status"`
}

const puuidDecryptionMessage = "Exception decrypting"

func errorFromStatus(statusCode int, data []byte, header http.Header) error {
	if statusCode >= 200 && statusCode < 300 {
		return nil
	}

	switch statusCode {
	case http.StatusNotFound:
		return domain.ErrPlayerNotFound
	case http.StatusForbidden:
		return domain.ErrAPIKeyExpired
	case http.StatusUnauthorized:
		return domain.ErrAPIKeyInvalid
	case http.StatusTooManyRequests:
		return &domain.RateLimitError{RetryAfter: parseRetryAfter(header.Get("Retry-After"))}
	case http.StatusBadRequest:
		var response errorResponse
		// The body is informational, an unparseable one is still a bad request
		_ = json.Unmarshal(data, &response)
		message := response.Status.Message
		if strings.Contains(message, puuidDecryptionMessage) {
			return fmt.Errorf("%w: %s", domain.ErrPuuidDecryption, message)
		}
		if message != "" {
			return fmt.Errorf("%w: %s", domain.ErrBadRequest, message)
		}
		return domain.ErrBadRequest
	}

	return &domain.UpstreamStatusError{StatusCode: statusCode}
}

// parseRetryAfter reads the delay in seconds, 0 when absent or invalid
func parseRetryAfter(value string) time.Duration {
	seconds, err := strconv.Atoi(strings.TrimSpace(value))
	if err != nil || seconds < 0 {
		return 0
	}
	return time.Duration(seconds) * time.Second
}
