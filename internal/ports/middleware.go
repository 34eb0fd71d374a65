package ports

import (
	"log/slog"
	"net/http"
	"strings"

	"github.com/victorgomez09/league-stats/internal/domain"
	"github.com/victorgomez09/league-stats/internal/logging"
	"github.com/victorgomez09/league-stats/internal/ratelimiting"
	"github.com/victorgomez09/league-stats/internal/reporting"
)

func NewRateLimitMiddleware(rateLimiter ratelimiting.RequestRateLimiter, onLimitExceeded http.HandlerFunc) func(http.HandlerFunc) http.HandlerFunc {
	return func(next http.HandlerFunc) http.HandlerFunc {
		return func(w http.ResponseWriter, r *http.Request) {
			if !rateLimiter.Consume(r) {
				onLimitExceeded(w, r)
				return
			}

			next(w, r)
		}
	}
}

func ComposeMiddlewares(middlewares ...func(http.HandlerFunc) http.HandlerFunc) func(http.HandlerFunc) http.HandlerFunc {
	if len(middlewares) == 1 {
		return middlewares[0]
	}
	first := middlewares[0]
	rest := ComposeMiddlewares(middlewares[1:]...)
	return func(h http.HandlerFunc) http.HandlerFunc {
		return first(rest(h))
	}
}

// Inbound budgets per client ip and per X-User-Id
const (
	ipRefillPerSecond   = 1
	ipBurstSize         = 30
	userRefillPerSecond = 0.5
	userBurstSize       = 20
)

// skipWithoutUserID only applies the middleware to requests carrying a user id
func skipWithoutUserID(middleware func(http.HandlerFunc) http.HandlerFunc) func(http.HandlerFunc) http.HandlerFunc {
	return func(next http.HandlerFunc) http.HandlerFunc {
		limited := middleware(next)
		return func(w http.ResponseWriter, r *http.Request) {
			if strings.TrimSpace(r.Header.Get("X-User-Id")) == "" {
				next(w, r)
				return
			}
			limited(w, r)
		}
	}
}

// buildEndpointMiddleware is the chain shared by every endpoint
func buildEndpointMiddleware(
	operation string,
	allowedOrigins *OriginPolicy,
	rootLogger *slog.Logger,
	sentryMiddleware func(http.HandlerFunc) http.HandlerFunc,
) func(http.HandlerFunc) http.HandlerFunc {
	ipLimiter, _ := ratelimiting.NewTokenBucketRateLimiter(
		ratelimiting.RefillPerSecond(ipRefillPerSecond),
		ratelimiting.BurstSize(ipBurstSize),
	)
	ipRateLimiter := ratelimiting.NewRequestBasedRateLimiter(
		ipLimiter,
		ratelimiting.IPKeyFunc,
	)

	userLimiter, _ := ratelimiting.NewTokenBucketRateLimiter(
		ratelimiting.RefillPerSecond(userRefillPerSecond),
		ratelimiting.BurstSize(userBurstSize),
	)
	userRateLimiter := ratelimiting.NewRequestBasedRateLimiter(
		userLimiter,
		ratelimiting.UserIDKeyFunc,
	)

	onLimitExceeded := func(limiter ratelimiting.RequestRateLimiter) http.HandlerFunc {
		return func(w http.ResponseWriter, r *http.Request) {
			ctx := r.Context()
			logging.FromContext(ctx).InfoContext(ctx, "Inbound rate limit exceeded", "key", limiter.KeyFor(r))
			writeErrorResponse(ctx, w, &domain.RateLimitError{})
		}
	}

	return ComposeMiddlewares(
		buildMetricsMiddleware(operation),
		logging.NewRequestLoggerMiddleware(rootLogger),
		sentryMiddleware,
		reporting.NewAddMetaMiddleware(operation),
		BuildCORSMiddleware(allowedOrigins),
		NewRateLimitMiddleware(ipRateLimiter, onLimitExceeded(ipRateLimiter)),
		skipWithoutUserID(NewRateLimitMiddleware(userRateLimiter, onLimitExceeded(userRateLimiter))),
	)
}
