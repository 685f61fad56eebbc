package binding

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"
	goredis "github.com/redis/go-redis/v9"

	"github.com/mgoulart/sellerdesk-backend/pkg/redis"
)

// SessionStore persists binding sessions between requests. A missing
// session is reported as (nil, nil), not an error.
type SessionStore interface {
	Load(ctx context.Context, orderID uuid.UUID) (*Session, error)
	Save(ctx context.Context, session *Session) error
	Delete(ctx context.Context, orderID uuid.UUID) error
}

// RedisSessionStore keeps sessions as JSON blobs with a TTL, so an
// abandoned session disappears on its own with no externally visible
// effect.
type RedisSessionStore struct {
	client *redis.Client
	ttl    time.Duration
}

// NewRedisSessionStore wires the store with the shared redis client.
func NewRedisSessionStore(client *redis.Client, ttl time.Duration) (*RedisSessionStore, error) {
	if client == nil {
		return nil, fmt.Errorf("redis client required")
	}
	if ttl <= 0 {
		return nil, fmt.Errorf("session ttl must be positive")
	}
	return &RedisSessionStore{client: client, ttl: ttl}, nil
}

func (s *RedisSessionStore) Load(ctx context.Context, orderID uuid.UUID) (*Session, error) {
	raw, err := s.client.Get(ctx, s.client.BindingSessionKey(orderID.String()))
	if err != nil {
		if err == goredis.Nil {
			return nil, nil
		}
		return nil, fmt.Errorf("load binding session: %w", err)
	}
	var session Session
	if err := json.Unmarshal([]byte(raw), &session); err != nil {
		return nil, fmt.Errorf("decode binding session: %w", err)
	}
	return &session, nil
}

func (s *RedisSessionStore) Save(ctx context.Context, session *Session) error {
	payload, err := json.Marshal(session)
	if err != nil {
		return fmt.Errorf("encode binding session: %w", err)
	}
	return s.client.Set(ctx, s.client.BindingSessionKey(session.OrderID.String()), payload, s.ttl)
}

func (s *RedisSessionStore) Delete(ctx context.Context, orderID uuid.UUID) error {
	return s.client.Del(ctx, s.client.BindingSessionKey(orderID.String()))
}

// MemorySessionStore is the in-process store used by tests.
type MemorySessionStore struct {
	mu       sync.Mutex
	sessions map[uuid.UUID]*Session
}

func NewMemorySessionStore() *MemorySessionStore {
	return &MemorySessionStore{sessions: map[uuid.UUID]*Session{}}
}

func (s *MemorySessionStore) Load(_ context.Context, orderID uuid.UUID) (*Session, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	session, ok := s.sessions[orderID]
	if !ok {
		return nil, nil
	}
	clone := *session
	clone.Bindings = make(map[uuid.UUID]uuid.UUID, len(session.Bindings))
	for k, v := range session.Bindings {
		clone.Bindings[k] = v
	}
	return &clone, nil
}

func (s *MemorySessionStore) Save(_ context.Context, session *Session) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	clone := *session
	clone.Bindings = make(map[uuid.UUID]uuid.UUID, len(session.Bindings))
	for k, v := range session.Bindings {
		clone.Bindings[k] = v
	}
	s.sessions[session.OrderID] = &clone
	return nil
}

func (s *MemorySessionStore) Delete(_ context.Context, orderID uuid.UUID) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.sessions, orderID)
	return nil
}
