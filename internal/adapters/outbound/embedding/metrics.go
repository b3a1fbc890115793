package embedding

import (
	"context"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"
)

var (
	meter              = otel.Meter("embedding")
	EmbeddingsServed   metric.Int64Counter
	ProviderFailures   metric.Int64Counter
	BreakerTransitions metric.Int64Counter
)

func init() {
	var err error
	EmbeddingsServed, err = meter.Int64Counter(
		"embeddings_served_total",
		metric.WithDescription("Total embedding vectors served, by source"),
	)
	if err != nil {
		panic(err)
	}

	ProviderFailures, err = meter.Int64Counter(
		"embedding_provider_failures_total",
		metric.WithDescription("Total failed embedding provider calls"),
	)
	if err != nil {
		panic(err)
	}

	BreakerTransitions, err = meter.Int64Counter(
		"embedding_breaker_transitions_total",
		metric.WithDescription("Total circuit breaker state transitions"),
	)
	if err != nil {
		panic(err)
	}
}

// RecordEmbeddingServed records one served vector with its source (cache or provider).
func RecordEmbeddingServed(ctx context.Context, source string) {
	EmbeddingsServed.Add(ctx, 1, metric.WithAttributes(
		attribute.String("source", source),
	))
}

// RecordProviderFailure records one failed provider call.
func RecordProviderFailure(ctx context.Context) {
	ProviderFailures.Add(ctx, 1)
}

// RecordBreakerTransition records the breaker entering a new state.
func RecordBreakerTransition(ctx context.Context, state BreakerState) {
	BreakerTransitions.Add(ctx, 1, metric.WithAttributes(
		attribute.String("state", state.String()),
	))
}
