package embedding

import (
	"context"
	"encoding/json"
	"errors"
	"log"
	"time"

	"github.com/cleitonmarx/symbiont/depend"
	"github.com/cleitonmarx/talentmatch/internal/common"
	"github.com/cleitonmarx/talentmatch/internal/domain"
	"github.com/cleitonmarx/talentmatch/internal/telemetry"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"
)

// Gateway is the resilient front of the embedding provider. Every call goes
// through the content-addressed vector cache first; provider calls are
// time-bounded and guarded by a circuit breaker.
type Gateway struct {
	provider    domain.EmbeddingProvider
	cache       domain.CacheStore
	breaker     *CircuitBreaker
	logger      *log.Logger
	callTimeout time.Duration
	vectorTTL   time.Duration
}

// NewGateway creates a new Gateway.
func NewGateway(
	provider domain.EmbeddingProvider,
	cache domain.CacheStore,
	breaker *CircuitBreaker,
	logger *log.Logger,
	callTimeout time.Duration,
	vectorTTL time.Duration,
) *Gateway {
	return &Gateway{
		provider:    provider,
		cache:       cache,
		breaker:     breaker,
		logger:      logger,
		callTimeout: callTimeout,
		vectorTTL:   vectorTTL,
	}
}

// Embed returns the embedding vector for text, from cache when possible.
// Provider failures surface as ProviderErr, ProviderTimeoutErr or, when the
// circuit is open, ProviderUnavailableErr.
func (g *Gateway) Embed(ctx context.Context, text string) (domain.EmbeddingVector, error) {
	spanCtx, span := telemetry.Start(ctx)
	defer span.End()

	key := common.Fingerprint("emb", text)
	if vector, ok := g.cachedVector(spanCtx, key); ok {
		span.SetAttributes(attribute.Bool("cache.hit", true))
		RecordEmbeddingServed(spanCtx, "cache")
		telemetry.RecordErrorAndStatus(span, nil)
		return domain.EmbeddingVector{Vector: vector}, nil
	}
	span.SetAttributes(attribute.Bool("cache.hit", false))

	if !g.breaker.Allow() {
		err := domain.NewProviderUnavailableErr("embedding provider circuit is open")
		telemetry.RecordErrorAndStatus(span, err)
		return domain.EmbeddingVector{}, err
	}

	vector, err := g.callProvider(spanCtx, text, span)
	if telemetry.RecordErrorAndStatus(span, err) {
		return domain.EmbeddingVector{}, err
	}
	RecordEmbeddingServed(spanCtx, "provider")

	g.storeVector(spanCtx, key, vector.Vector)
	return vector, nil
}

// callProvider performs one time-bounded provider call and feeds the breaker.
func (g *Gateway) callProvider(ctx context.Context, text string, span trace.Span) (domain.EmbeddingVector, error) {
	callCtx, cancel := context.WithTimeout(ctx, g.callTimeout)
	defer cancel()

	before := g.breaker.State()
	vector, err := g.provider.Embed(callCtx, text)
	if err != nil {
		// A caller abort is not a provider failure: the breaker must not
		// count it, or abandoned batches would open the circuit against a
		// healthy provider.
		if ctx.Err() != nil {
			return domain.EmbeddingVector{}, ctx.Err()
		}
		g.breaker.RecordFailure()
		RecordProviderFailure(ctx)
		if state := g.breaker.State(); state != before {
			RecordBreakerTransition(ctx, state)
		}
		span.SetAttributes(attribute.String("breaker.state", g.breaker.State().String()))
		if errors.Is(err, context.DeadlineExceeded) {
			return domain.EmbeddingVector{}, domain.NewProviderTimeoutErr("embedding provider call timed out")
		}
		return domain.EmbeddingVector{}, domain.NewProviderErr(err)
	}

	g.breaker.RecordSuccess()
	if state := g.breaker.State(); state != before {
		RecordBreakerTransition(ctx, state)
	}
	return vector, nil
}

// cachedVector looks up a previously computed vector. Cache failures count as
// misses so an unhealthy cache never blocks embedding.
func (g *Gateway) cachedVector(ctx context.Context, key string) ([]float64, bool) {
	payload, found, err := g.cache.Get(ctx, key)
	if err != nil {
		g.logger.Printf("Vector cache lookup failed, calling provider directly: %v", err)
		return nil, false
	}
	if !found {
		return nil, false
	}

	var vector []float64
	if err := json.Unmarshal(payload, &vector); err != nil {
		g.logger.Printf("Discarding unreadable cached vector: %v", err)
		return nil, false
	}
	return vector, true
}

// storeVector caches a freshly computed vector, best-effort.
func (g *Gateway) storeVector(ctx context.Context, key string, vector []float64) {
	payload, err := json.Marshal(vector)
	if err != nil {
		g.logger.Printf("Failed to serialize vector for caching: %v", err)
		return
	}
	if err := g.cache.SetWithTTL(ctx, key, payload, g.vectorTTL); err != nil {
		g.logger.Printf("Failed to cache vector: %v", err)
	}
}

// InitGateway initializes the embedding gateway and registers it in the
// dependency container.
type InitGateway struct {
	Provider         domain.EmbeddingProvider `resolve:""`
	Cache            domain.CacheStore        `resolve:""`
	Logger           *log.Logger              `resolve:""`
	CallTimeout      time.Duration            `config:"EMBEDDING_CALL_TIMEOUT" default:"10s"`
	VectorTTL        time.Duration            `config:"EMBEDDING_CACHE_TTL" default:"24h"`
	FailureThreshold int                      `config:"EMBEDDING_BREAKER_FAILURE_THRESHOLD" default:"5"`
	ResetTimeout     time.Duration            `config:"EMBEDDING_BREAKER_RESET_TIMEOUT" default:"30s"`
}

// Initialize initializes the Gateway and registers it in the dependency container.
func (ig InitGateway) Initialize(ctx context.Context) (context.Context, error) {
	breaker := NewCircuitBreaker(ig.FailureThreshold, ig.ResetTimeout)
	depend.Register[domain.EmbeddingGateway](NewGateway(
		ig.Provider,
		ig.Cache,
		breaker,
		ig.Logger,
		ig.CallTimeout,
		ig.VectorTTL,
	))
	return ctx, nil
}
