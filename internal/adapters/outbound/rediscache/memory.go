package rediscache

import (
	"context"
	"sync"
	"time"
)

type memoryEntry struct {
	value     []byte
	expiresAt time.Time
}

// MemoryStore is an in-process CacheStore used when no Redis address is
// configured, typically in local development and tests. Expired entries are
// dropped lazily on read.
type MemoryStore struct {
	mu      sync.RWMutex
	entries map[string]memoryEntry
	nowFunc func() time.Time
}

// NewMemoryStore creates a new MemoryStore.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		entries: make(map[string]memoryEntry),
		nowFunc: time.Now,
	}
}

// Get returns the stored value and whether the key was present.
func (m *MemoryStore) Get(_ context.Context, key string) ([]byte, bool, error) {
	m.mu.RLock()
	entry, found := m.entries[key]
	m.mu.RUnlock()

	if !found {
		return nil, false, nil
	}
	if m.nowFunc().After(entry.expiresAt) {
		m.mu.Lock()
		delete(m.entries, key)
		m.mu.Unlock()
		return nil, false, nil
	}
	return entry.value, true, nil
}

// SetWithTTL stores the value under key with the given time to live.
func (m *MemoryStore) SetWithTTL(_ context.Context, key string, value []byte, ttl time.Duration) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.entries[key] = memoryEntry{
		value:     value,
		expiresAt: m.nowFunc().Add(ttl),
	}
	return nil
}
