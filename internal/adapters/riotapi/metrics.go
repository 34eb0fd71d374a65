package riotapi

import (
	"context"
	"fmt"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"
)

type riotAPIMetricsCollection struct {
	requestCount    metric.Int64Counter
	requestDuration metric.Float64Histogram
}

var metrics riotAPIMetricsCollection

func init() {
	meter := otel.Meter("leaguestats/riotapi")

	requestCount, err := meter.Int64Counter(
		"riotapi/request_count",
		metric.WithDescription("Requests sent to the Riot API"),
	)
	if err != nil {
		panic(fmt.Errorf("failed to create request count metric: %w", err))
	}

	requestDuration, err := meter.Float64Histogram(
		"riotapi/request_duration_seconds",
		metric.WithDescription("Round trip time of Riot API requests"),
		metric.WithUnit("s"),
	)
	if err != nil {
		panic(fmt.Errorf("failed to create request duration metric: %w", err))
	}

	metrics = riotAPIMetricsCollection{
		requestCount:    requestCount,
		requestDuration: requestDuration,
	}
}

func (m riotAPIMetricsCollection) recordRequest(ctx context.Context, operation string, status string, duration time.Duration) {
	attributes := metric.WithAttributes(
		attribute.String("operation", operation),
		attribute.String("status", status),
	)
	m.requestCount.Add(ctx, 1, attributes)
	m.requestDuration.Record(ctx, duration.Seconds(), attributes)
}
