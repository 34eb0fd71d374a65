package cache

import (
	"context"
	"fmt"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"
)

var lookupCount metric.Int64Counter

func init() {
	meter := otel.Meter("leaguestats/cache")

	var err error
	lookupCount, err = meter.Int64Counter(
		"cache/lookup_count",
		metric.WithDescription("Cache lookups by result"),
	)
	if err != nil {
		panic(fmt.Errorf("failed to create cache lookup metric: %w", err))
	}
}

func recordLookup(ctx context.Context, result string) {
	lookupCount.Add(ctx, 1, metric.WithAttributes(attribute.String("result", result)))
}
