package rediscache

import (
	"context"
	"fmt"

	"github.com/cleitonmarx/symbiont/depend"
	"github.com/cleitonmarx/talentmatch/internal/domain"
	"github.com/redis/go-redis/v9"
)

// InitCacheStore initializes the shared cache service and registers it in
// the dependency container. With an empty REDIS_ADDR the in-process store is
// used instead.
type InitCacheStore struct {
	Addr     string `config:"REDIS_ADDR" default:""`
	Password string `config:"REDIS_PASSWORD" default:""`
	DB       int    `config:"REDIS_DB" default:"0"`
	client   *redis.Client
}

// Initialize connects to Redis and registers the cache store.
func (i *InitCacheStore) Initialize(ctx context.Context) (context.Context, error) {
	if i.Addr == "" {
		depend.Register[domain.CacheStore](NewMemoryStore())
		return ctx, nil
	}

	i.client = redis.NewClient(&redis.Options{
		Addr:     i.Addr,
		Password: i.Password,
		DB:       i.DB,
	})
	if err := i.client.Ping(ctx).Err(); err != nil {
		return ctx, fmt.Errorf("failed to connect to redis at %s: %w", i.Addr, err)
	}

	depend.Register[domain.CacheStore](NewStore(i.client))
	return ctx, nil
}

// Close closes the Redis connection.
func (i *InitCacheStore) Close() {
	if i.client != nil {
		i.client.Close() //nolint:errcheck
	}
}
