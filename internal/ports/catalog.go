package ports

import (
	"log/slog"
	"net/http"

	"github.com/victorgomez09/league-stats/internal/app"
	"github.com/victorgomez09/league-stats/internal/domain"
)

func MakeGetStaticCatalogHandler(
	getStaticCatalog app.GetStaticCatalog,
	allowedOrigins *OriginPolicy,
	rootLogger *slog.Logger,
	sentryMiddleware func(http.HandlerFunc) http.HandlerFunc,
) http.HandlerFunc {
	middleware := buildEndpointMiddleware("get_static_catalog", allowedOrigins, rootLogger, sentryMiddleware)

	handler := func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()

		kind, err := domain.ParseCatalogKind(r.PathValue("kind"))
		if err != nil {
			writeErrorResponse(ctx, w, err)
			return
		}

		catalog, err := getStaticCatalog(ctx, kind)
		if err != nil {
			writeErrorResponse(ctx, w, err)
			return
		}

		w.Header().Set("Cache-Control", "public, max-age=3600")
		writeSuccessResponse(ctx, w, staticCatalogToResponse(catalog))
	}

	return middleware(handler)
}
