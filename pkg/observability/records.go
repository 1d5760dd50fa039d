package observability

import (
	"context"
	"sync"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"
)

var (
	recordsOnce     sync.Once
	recordMutations metric.Int64Counter
	searchQueries   metric.Int64Counter
)

func recordInstruments() {
	recordsOnce.Do(func() {
		meter := otel.Meter(tracerName)
		recordMutations, _ = meter.Int64Counter(
			"clinic_record_mutations_total",
			metric.WithDescription("Created, updated and deleted clinic records"),
			metric.WithUnit("{record}"),
		)
		searchQueries, _ = meter.Int64Counter(
			"clinic_search_queries_total",
			metric.WithDescription("Listing requests, split by whether a query was given"),
			metric.WithUnit("{request}"),
		)
	})
}

// RecordMutation counts a successful create, update or delete of kind.
func RecordMutation(ctx context.Context, kind, op string) {
	recordInstruments()
	if recordMutations == nil {
		return
	}
	recordMutations.Add(ctx, 1, metric.WithAttributes(
		attribute.String("kind", kind),
		attribute.String("op", op),
	))
}

// RecordSearch counts a listing request of kind.
func RecordSearch(ctx context.Context, kind string, withQuery bool) {
	recordInstruments()
	if searchQueries == nil {
		return
	}
	searchQueries.Add(ctx, 1, metric.WithAttributes(
		attribute.String("kind", kind),
		attribute.Bool("query", withQuery),
	))
}
