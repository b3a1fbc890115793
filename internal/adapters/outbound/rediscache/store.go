// Package rediscache implements the shared cache service used for embedding
// vectors and match results.
package rediscache

import (
	"context"
	"errors"
	"time"

	"github.com/cleitonmarx/talentmatch/internal/domain"
	"github.com/cleitonmarx/talentmatch/internal/telemetry"
	"github.com/redis/go-redis/v9"
)

// Store is the Redis-backed implementation of the domain CacheStore.
type Store struct {
	client *redis.Client
}

// NewStore creates a new Store.
func NewStore(client *redis.Client) Store {
	return Store{client: client}
}

// Get returns the stored value and whether the key was present. Transport
// failures surface as CacheUnavailableErr so callers can degrade to a miss.
func (s Store) Get(ctx context.Context, key string) ([]byte, bool, error) {
	spanCtx, span := telemetry.Start(ctx)
	defer span.End()

	value, err := s.client.Get(spanCtx, key).Bytes()
	if errors.Is(err, redis.Nil) {
		telemetry.RecordErrorAndStatus(span, nil)
		return nil, false, nil
	}
	if telemetry.RecordErrorAndStatus(span, err) {
		return nil, false, domain.NewCacheUnavailableErr(err)
	}
	return value, true, nil
}

// SetWithTTL stores the value under key with the given time to live.
func (s Store) SetWithTTL(ctx context.Context, key string, value []byte, ttl time.Duration) error {
	spanCtx, span := telemetry.Start(ctx)
	defer span.End()

	err := s.client.Set(spanCtx, key, value, ttl).Err()
	if telemetry.RecordErrorAndStatus(span, err) {
		return domain.NewCacheUnavailableErr(err)
	}
	return nil
}
