package session

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/hashicorp/golang-lru/v2/expirable"

	"github.com/tyler180/fbref-scout/internal/scout"
)

var (
	ErrNotFound = errors.New("session: not found")
	// ErrConflict means the session changed since it was read.
	ErrConflict = errors.New("session: concurrent update")
)

// Store persists sessions. Save succeeds only when the stored revision equals
// s.Version and bumps s.Version on success.
type Store interface {
	Get(ctx context.Context, id string) (*Session, error)
	Save(ctx context.Context, s *Session) error
	Delete(ctx context.Context, id string) error
}

// Exporter writes a finished report somewhere and returns where it went.
type Exporter interface {
	Export(ctx context.Context, r scout.Report) (string, error)
}

// MemoryStore keeps sessions in process; the TTL restarts on every Save.
type MemoryStore struct {
	mu    sync.Mutex
	cache *expirable.LRU[string, *Session]
}

func NewMemoryStore(size int, ttl time.Duration) *MemoryStore {
	if size <= 0 {
		size = 1024
	}
	return &MemoryStore{cache: expirable.NewLRU[string, *Session](size, nil, ttl)}
}

func (m *MemoryStore) Get(_ context.Context, id string) (*Session, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	s, ok := m.cache.Get(id)
	if !ok {
		return nil, ErrNotFound
	}
	return s.Clone(), nil
}

func (m *MemoryStore) Save(_ context.Context, s *Session) error {
	if s == nil || s.ID == "" {
		return fmt.Errorf("session: save without id")
	}
	m.mu.Lock()
	defer m.mu.Unlock()

	var current int64
	if old, ok := m.cache.Peek(s.ID); ok {
		current = old.Version
	}
	if current != s.Version {
		return fmt.Errorf("save %s at version %d (stored %d): %w", s.ID, s.Version, current, ErrConflict)
	}
	s.Version++
	m.cache.Add(s.ID, s.Clone())
	return nil
}

func (m *MemoryStore) Delete(_ context.Context, id string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.cache.Remove(id)
	return nil
}

func (m *MemoryStore) Len() int { return m.cache.Len() }
