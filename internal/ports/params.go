package ports

import (
	"fmt"
	"net/http"
	"strconv"

	"github.com/victorgomez09/league-stats/internal/domain"
)

// platformFromRequest reads the optional platform override, empty means the configured platform
func platformFromRequest(r *http.Request) (domain.Platform, error) {
	raw := r.URL.Query().Get("platform")
	if raw == "" {
		return "", nil
	}
	return domain.ParsePlatform(raw)
}

func intQueryParam(r *http.Request, name string, fallback int) (int, error) {
	raw := r.URL.Query().Get(name)
	if raw == "" {
		return fallback, nil
	}
	value, err := strconv.Atoi(raw)
	if err != nil {
		return 0, fmt.Errorf("%w: %s must be an integer, got %q", domain.ErrInvalidArgument, name, raw)
	}
	return value, nil
}

// matchPageFromRequest reads start and count, bounds are checked by the use case
func matchPageFromRequest(r *http.Request) (int, int, error) {
	start, err := intQueryParam(r, "start", 0)
	if err != nil {
		return 0, 0, err
	}
	count, err := intQueryParam(r, "count", domain.DefaultMatchCount)
	if err != nil {
		return 0, 0, err
	}
	return start, count, nil
}
