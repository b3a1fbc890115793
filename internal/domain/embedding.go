package domain

import (
	"context"
	"time"
)

// EmbeddingVector is a semantic vector plus token accounting. The vector is
// never mutated after creation. TotalTokens is zero for cache hits and
// profile-supplied vectors.
type EmbeddingVector struct {
	Vector      []float64
	TotalTokens int
}

// EmbeddingProvider is the raw remote text-to-vector inference endpoint. The
// dimensionality of returned vectors is stable within one deployment.
type EmbeddingProvider interface {
	Embed(ctx context.Context, text string) (EmbeddingVector, error)
}

// EmbeddingGateway is the resilient embedding entry point used by the
// matching pipeline: caching, timeout and circuit-breaking sit behind it.
// Failures surface as ProviderErr, ProviderUnavailableErr or
// ProviderTimeoutErr.
type EmbeddingGateway interface {
	Embed(ctx context.Context, text string) (EmbeddingVector, error)
}

// EmbeddingTextEncoder renders jobs and candidates as canonical text for
// vectorization. Encodings must be deterministic: they feed content-addressed
// cache keys.
type EmbeddingTextEncoder interface {
	EncodeJob(job Job) (string, error)
	EncodeCandidate(profile CandidateProfile) (string, error)
}

// CacheStore is the shared keyed cache service used by the vector cache and
// the result cache. Failures must be treated as misses by callers: caching is
// best-effort and never blocks computation.
type CacheStore interface {
	// Get returns the stored value and whether the key was present.
	Get(ctx context.Context, key string) ([]byte, bool, error)
	// SetWithTTL stores the value under key with the given time to live.
	SetWithTTL(ctx context.Context, key string, value []byte, ttl time.Duration) error
}
