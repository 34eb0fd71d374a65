package app

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/victorgomez09/league-stats/internal/domain"
	"github.com/victorgomez09/league-stats/internal/reporting"
)

const upstreamCallTimeout = 10 * time.Second

// callUpstream bounds one upstream call, a timeout is reported as the upstream being unavailable
func callUpstream[T any](ctx context.Context, call func(ctx context.Context) (T, error)) (T, error) {
	callCtx, cancel := context.WithTimeout(ctx, upstreamCallTimeout)
	defer cancel()

	result, err := call(callCtx)
	if err != nil && errors.Is(err, context.DeadlineExceeded) && !errors.Is(err, domain.ErrUpstreamUnavailable) {
		var empty T
		return empty, fmt.Errorf("%w: %w", domain.ErrUpstreamUnavailable, err)
	}
	return result, err
}

// reportUnexpected sends errors operators should look at to sentry
func reportUnexpected(ctx context.Context, err error, extras ...map[string]string) {
	switch {
	case err == nil,
		errors.Is(err, domain.ErrPlayerNotFound),
		errors.Is(err, domain.ErrRateLimitExceeded),
		errors.Is(err, domain.ErrInvalidArgument),
		errors.Is(err, context.Canceled):
		return
	}
	reporting.Report(ctx, err, extras...)
}

func cacheKey(platform domain.Platform, parts ...any) string {
	key := string(platform)
	for _, part := range parts {
		key = fmt.Sprintf("%s:%v", key, part)
	}
	return key
}
