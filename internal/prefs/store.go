package prefs

import (
	"context"
	"fmt"
	"sync"

	goredis "github.com/redis/go-redis/v9"

	"github.com/mgoulart/sellerdesk-backend/pkg/redis"
)

// Store is a keyed per-user preference store. Values are opaque strings;
// callers own the encoding. A missing key yields ("", false, nil).
type Store interface {
	Get(ctx context.Context, userID, key string) (string, bool, error)
	Set(ctx context.Context, userID, key, value string) error
	Delete(ctx context.Context, userID, key string) error
}

// RedisStore persists preferences in redis under the shared namespace.
// Preferences have no TTL: they survive until overwritten or deleted.
type RedisStore struct {
	client *redis.Client
}

// NewRedisStore wires the store with the shared redis client.
func NewRedisStore(client *redis.Client) (*RedisStore, error) {
	if client == nil {
		return nil, fmt.Errorf("redis client required")
	}
	return &RedisStore{client: client}, nil
}

func (s *RedisStore) Get(ctx context.Context, userID, key string) (string, bool, error) {
	value, err := s.client.Get(ctx, s.client.PreferenceKey(userID, key))
	if err != nil {
		if err == goredis.Nil {
			return "", false, nil
		}
		return "", false, fmt.Errorf("load preference: %w", err)
	}
	return value, true, nil
}

func (s *RedisStore) Set(ctx context.Context, userID, key, value string) error {
	return s.client.Set(ctx, s.client.PreferenceKey(userID, key), value, 0)
}

func (s *RedisStore) Delete(ctx context.Context, userID, key string) error {
	return s.client.Del(ctx, s.client.PreferenceKey(userID, key))
}

// MemoryStore is the in-process store used by tests.
type MemoryStore struct {
	mu     sync.RWMutex
	values map[string]string
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{values: map[string]string{}}
}

func (s *MemoryStore) Get(_ context.Context, userID, key string) (string, bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	value, ok := s.values[userID+"/"+key]
	return value, ok, nil
}

func (s *MemoryStore) Set(_ context.Context, userID, key, value string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.values[userID+"/"+key] = value
	return nil
}

func (s *MemoryStore) Delete(_ context.Context, userID, key string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.values, userID+"/"+key)
	return nil
}
