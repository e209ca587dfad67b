package session

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"
)

// MemoryStore keeps sessions in process memory. Used in tests and when
// running locally without Redis.
type MemoryStore struct {
	mu       sync.RWMutex
	sessions map[string]memoryEntry
}

type memoryEntry struct {
	data      Data
	expiresAt time.Time
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{sessions: make(map[string]memoryEntry)}
}

func (s *MemoryStore) Create(_ context.Context, data Data, ttl time.Duration) (string, error) {
	id := uuid.NewString()
	s.mu.Lock()
	s.sessions[id] = memoryEntry{data: data, expiresAt: time.Now().Add(ttl)}
	s.mu.Unlock()
	return id, nil
}

func (s *MemoryStore) Get(_ context.Context, id string) (Data, error) {
	s.mu.RLock()
	entry, ok := s.sessions[id]
	s.mu.RUnlock()
	if !ok || time.Now().After(entry.expiresAt) {
		return Data{}, ErrNotFound
	}
	return entry.data, nil
}

func (s *MemoryStore) Delete(_ context.Context, id string) error {
	s.mu.Lock()
	delete(s.sessions, id)
	s.mu.Unlock()
	return nil
}
