package attendance

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"
	"time"

	"pptq-absensi/pkg/redis"
)

// SessionTTL how long a day's session survives in Redis.
const SessionTTL = 24 * time.Hour

// Store persists the shared session of each day.
// Get returns a fresh session when none is stored.
type Store interface {
	Get(ctx context.Context, date string) (*Session, error)
	Save(ctx context.Context, s *Session) error
	Reset(ctx context.Context) error
}

// MemoryStore process-local Store used when Redis is unavailable.
type MemoryStore struct {
	mu       sync.Mutex
	sessions map[string]Session // by date
}

// NewMemoryStore creates an empty MemoryStore.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{sessions: make(map[string]Session)}
}

func (m *MemoryStore) Get(_ context.Context, date string) (*Session, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if s, ok := m.sessions[date]; ok {
		return &s, nil
	}
	return NewSession(date), nil
}

func (m *MemoryStore) Save(_ context.Context, s *Session) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.sessions[s.Date] = *s
	return nil
}

// Reset drops every stored session.
func (m *MemoryStore) Reset(context.Context) error {
	m.mu.Lock()
	m.sessions = make(map[string]Session)
	m.mu.Unlock()
	return nil
}

// RedisStore keeps sessions in Redis so every server instance sees the same lock.
type RedisStore struct {
	rdb *redis.Client
}

// NewRedisStore creates a RedisStore.
func NewRedisStore(rdb *redis.Client) *RedisStore {
	return &RedisStore{rdb: rdb}
}

func (r *RedisStore) Get(ctx context.Context, date string) (*Session, error) {
	raw, ok, err := r.rdb.GetBytes(ctx, redis.SessionKey(date))
	if err != nil {
		return nil, fmt.Errorf("load session: %w", err)
	}
	if !ok {
		return NewSession(date), nil
	}

	var s Session
	if err := json.Unmarshal(raw, &s); err != nil {
		return nil, fmt.Errorf("decode session: %w", err)
	}
	return &s, nil
}

func (r *RedisStore) Save(ctx context.Context, s *Session) error {
	raw, err := json.Marshal(s)
	if err != nil {
		return err
	}
	return r.rdb.SetBytes(ctx, redis.SessionKey(s.Date), raw, SessionTTL)
}

// Reset drops every stored session.
func (r *RedisStore) Reset(ctx context.Context) error {
	_, err := r.rdb.DeleteSessions(ctx)
	return err
}

var (
	_ Store = (*MemoryStore)(nil)
	_ Store = (*RedisStore)(nil)
)
