package usecases

import (
	"context"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"
)

var (
	meter                = otel.Meter("usecases")
	LLMTokensUsed        metric.Int64Counter
	MatchBatchesComputed metric.Int64Counter
	MatchesReturned      metric.Int64Counter
	CandidatesSkipped    metric.Int64Counter
	ProfileVectorsUsed   metric.Int64Counter
)

func init() {
	var err error
	// Tokens consumed by embedding calls
	LLMTokensUsed, err = meter.Int64Counter(
		"llm_tokens_used_total",
		metric.WithDescription("Total LLM tokens consumed"),
	)
	if err != nil {
		panic(err)
	}

	MatchBatchesComputed, err = meter.Int64Counter(
		"match_batches_computed_total",
		metric.WithDescription("Total freshly computed match batches"),
	)
	if err != nil {
		panic(err)
	}

	MatchesReturned, err = meter.Int64Counter(
		"matches_returned_total",
		metric.WithDescription("Total candidate matches returned in computed batches"),
	)
	if err != nil {
		panic(err)
	}

	CandidatesSkipped, err = meter.Int64Counter(
		"candidates_skipped_total",
		metric.WithDescription("Total candidates skipped because no embedding could be obtained"),
	)
	if err != nil {
		panic(err)
	}

	ProfileVectorsUsed, err = meter.Int64Counter(
		"profile_vectors_used_total",
		metric.WithDescription("Total candidates scored with their pre-computed profile vector"),
	)
	if err != nil {
		panic(err)
	}
}

// RecordLLMTokensEmbedding records the number of tokens used in an embedding operation.
func RecordLLMTokensEmbedding(ctx context.Context, totalTokens int) {
	LLMTokensUsed.Add(ctx, int64(totalTokens), metric.WithAttributes(
		attribute.String("token_type", "embedding"),
	))
}

// RecordMatchBatchComputed records one freshly computed match batch and its size.
func RecordMatchBatchComputed(ctx context.Context, matchCount int) {
	MatchBatchesComputed.Add(ctx, 1)
	MatchesReturned.Add(ctx, int64(matchCount))
}

// RecordCandidateSkipped records one candidate dropped from a batch.
func RecordCandidateSkipped(ctx context.Context) {
	CandidatesSkipped.Add(ctx, 1)
}

// RecordProfileVectorUsed records one candidate scored without an embedding call.
func RecordProfileVectorUsed(ctx context.Context) {
	ProfileVectorsUsed.Add(ctx, 1)
}
