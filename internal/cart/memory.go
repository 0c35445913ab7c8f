package cart

import (
	"context"
	"sync"
	"time"
)

// MemoryStore keeps sessions in process memory. This is the default backend:
// carts live for the server's lifetime and are gone on restart, which is all
// the storefront promises.
type MemoryStore struct {
	mu       sync.RWMutex
	sessions map[string]Session
}

// NewMemoryStore creates an empty in-memory session store.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		sessions: make(map[string]Session),
	}
}

// Create stores and returns a fresh session.
func (s *MemoryStore) Create(_ context.Context) (*Session, error) {
	session := NewSession()

	s.mu.Lock()
	s.sessions[session.ID] = *session
	s.mu.Unlock()

	return session, nil
}

// Get returns a copy of the stored session, so callers mutate their own view
// and persist it back through Save.
func (s *MemoryStore) Get(_ context.Context, id string) (*Session, error) {
	s.mu.RLock()
	session, ok := s.sessions[id]
	s.mu.RUnlock()

	if !ok {
		return nil, ErrSessionNotFound
	}
	return &session, nil
}

// Save writes the session back, refreshing its update time.
func (s *MemoryStore) Save(_ context.Context, session *Session) error {
	session.UpdatedAt = time.Now().UTC()

	s.mu.Lock()
	s.sessions[session.ID] = *session
	s.mu.Unlock()

	return nil
}

// Ping always succeeds for the in-memory backend.
func (s *MemoryStore) Ping(_ context.Context) error {
	return nil
}

// Len returns the number of stored sessions.
func (s *MemoryStore) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.sessions)
}

var _ Store = (*MemoryStore)(nil)
