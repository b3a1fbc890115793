package embedding

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"log"
	"sync"
	"testing"
	"time"

	"github.com/cleitonmarx/talentmatch/internal/common"
	"github.com/cleitonmarx/talentmatch/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeProvider struct {
	mu     sync.Mutex
	vector []float64
	err    error
	block  bool
	calls  int
}

func (p *fakeProvider) Embed(ctx context.Context, _ string) (domain.EmbeddingVector, error) {
	p.mu.Lock()
	p.calls++
	block := p.block
	p.mu.Unlock()

	if block {
		<-ctx.Done()
		return domain.EmbeddingVector{}, ctx.Err()
	}
	if p.err != nil {
		return domain.EmbeddingVector{}, p.err
	}
	return domain.EmbeddingVector{Vector: p.vector, TotalTokens: 11}, nil
}

func (p *fakeProvider) callCount() int {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.calls
}

type stubCache struct {
	mu      sync.Mutex
	entries map[string][]byte
	failGet bool
}

func newStubCache() *stubCache {
	return &stubCache{entries: map[string][]byte{}}
}

func (c *stubCache) Get(_ context.Context, key string) ([]byte, bool, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.failGet {
		return nil, false, domain.NewCacheUnavailableErr(errors.New("cache down"))
	}
	value, found := c.entries[key]
	return value, found, nil
}

func (c *stubCache) SetWithTTL(_ context.Context, key string, value []byte, _ time.Duration) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.entries[key] = value
	return nil
}

func newTestGateway(provider domain.EmbeddingProvider, cache domain.CacheStore, breaker *CircuitBreaker) *Gateway {
	return NewGateway(
		provider,
		cache,
		breaker,
		log.New(io.Discard, "", 0),
		50*time.Millisecond,
		time.Hour,
	)
}

func TestGateway_Embed_CallsProviderAndCaches(t *testing.T) {
	provider := &fakeProvider{vector: []float64{0.1, 0.2}}
	cache := newStubCache()
	gw := newTestGateway(provider, cache, NewCircuitBreaker(5, time.Second))

	got, err := gw.Embed(context.Background(), "some text")
	require.NoError(t, err)
	assert.Equal(t, []float64{0.1, 0.2}, got.Vector)
	assert.Equal(t, 11, got.TotalTokens)

	payload, found := cache.entries[common.Fingerprint("emb", "some text")]
	require.True(t, found)
	var cached []float64
	require.NoError(t, json.Unmarshal(payload, &cached))
	assert.Equal(t, []float64{0.1, 0.2}, cached)
}

func TestGateway_Embed_CacheHitSkipsProvider(t *testing.T) {
	provider := &fakeProvider{vector: []float64{0.1, 0.2}}
	cache := newStubCache()
	payload, _ := json.Marshal([]float64{0.3, 0.4})
	cache.entries[common.Fingerprint("emb", "some text")] = payload

	gw := newTestGateway(provider, cache, NewCircuitBreaker(5, time.Second))

	got, err := gw.Embed(context.Background(), "some text")
	require.NoError(t, err)
	assert.Equal(t, []float64{0.3, 0.4}, got.Vector)
	// Cache hits carry no token usage.
	assert.Equal(t, 0, got.TotalTokens)
	assert.Equal(t, 0, provider.callCount())
}

func TestGateway_Embed_SameTextIssuesOneProviderCall(t *testing.T) {
	provider := &fakeProvider{vector: []float64{0.1, 0.2}}
	gw := newTestGateway(provider, newStubCache(), NewCircuitBreaker(5, time.Second))

	first, err := gw.Embed(context.Background(), "some text")
	require.NoError(t, err)

	second, err := gw.Embed(context.Background(), "some text")
	require.NoError(t, err)

	assert.Equal(t, first.Vector, second.Vector)
	assert.Equal(t, 1, provider.callCount())
}

func TestGateway_Embed_CacheFailureFallsThroughToProvider(t *testing.T) {
	provider := &fakeProvider{vector: []float64{0.1, 0.2}}
	cache := newStubCache()
	cache.failGet = true

	gw := newTestGateway(provider, cache, NewCircuitBreaker(5, time.Second))

	got, err := gw.Embed(context.Background(), "some text")
	require.NoError(t, err)
	assert.Equal(t, []float64{0.1, 0.2}, got.Vector)
	assert.Equal(t, 1, provider.callCount())
}

func TestGateway_Embed_ProviderErrorWrapped(t *testing.T) {
	provider := &fakeProvider{err: errors.New("model down")}
	gw := newTestGateway(provider, newStubCache(), NewCircuitBreaker(5, time.Second))

	_, err := gw.Embed(context.Background(), "some text")
	assert.IsType(t, &domain.ProviderErr{}, err)
	assert.ErrorContains(t, err, "model down")
}

func TestGateway_Embed_TimeoutWrapped(t *testing.T) {
	provider := &fakeProvider{block: true}
	gw := newTestGateway(provider, newStubCache(), NewCircuitBreaker(5, time.Second))

	_, err := gw.Embed(context.Background(), "some text")
	assert.IsType(t, &domain.ProviderTimeoutErr{}, err)
}

func TestGateway_Embed_OpenCircuitFailsFast(t *testing.T) {
	provider := &fakeProvider{err: errors.New("model down")}
	breaker := NewCircuitBreaker(2, time.Hour)
	gw := newTestGateway(provider, newStubCache(), breaker)

	for range 2 {
		_, err := gw.Embed(context.Background(), "some text")
		assert.IsType(t, &domain.ProviderErr{}, err)
	}
	assert.Equal(t, BreakerState_Open, breaker.State())

	// The provider is no longer reached.
	_, err := gw.Embed(context.Background(), "some text")
	assert.IsType(t, &domain.ProviderUnavailableErr{}, err)
	assert.Equal(t, 2, provider.callCount())
}

func TestGateway_Embed_CallerCancellationDoesNotTripBreaker(t *testing.T) {
	provider := &fakeProvider{vector: []float64{0.1, 0.2}, block: true}
	breaker := NewCircuitBreaker(2, time.Hour)
	gw := newTestGateway(provider, newStubCache(), breaker)

	cancelledCtx, cancel := context.WithCancel(context.Background())
	cancel()

	for range 2 {
		_, err := gw.Embed(cancelledCtx, "some text")
		assert.ErrorIs(t, err, context.Canceled)
	}
	assert.Equal(t, BreakerState_Closed, breaker.State())

	provider.mu.Lock()
	provider.block = false
	provider.mu.Unlock()

	// A healthy caller still reaches the provider afterwards.
	got, err := gw.Embed(context.Background(), "some text")
	require.NoError(t, err)
	assert.Equal(t, []float64{0.1, 0.2}, got.Vector)
	assert.Equal(t, 3, provider.callCount())
}

func TestGateway_Embed_CacheHitBypassesOpenCircuit(t *testing.T) {
	provider := &fakeProvider{err: errors.New("model down")}
	breaker := NewCircuitBreaker(1, time.Hour)
	cache := newStubCache()
	payload, _ := json.Marshal([]float64{0.3, 0.4})
	cache.entries[common.Fingerprint("emb", "cached text")] = payload

	gw := newTestGateway(provider, cache, breaker)

	_, err := gw.Embed(context.Background(), "uncached text")
	require.Error(t, err)
	assert.Equal(t, BreakerState_Open, breaker.State())

	got, err := gw.Embed(context.Background(), "cached text")
	require.NoError(t, err)
	assert.Equal(t, []float64{0.3, 0.4}, got.Vector)
}
