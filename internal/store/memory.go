package store

import (
	"sync"

	"github.com/salesdojo/salesdojo/internal/models"
)

// MemoryStore is an in-memory SessionStore scoped to the process lifetime.
// Sessions do not survive a restart.
type MemoryStore struct {
	mu       sync.RWMutex
	sessions map[string]*models.ConversationState
}

// NewMemoryStore creates an empty in-memory session store.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		sessions: make(map[string]*models.ConversationState),
	}
}

// Put stores a clone of the state under the given id, replacing any
// previous entry.
func (s *MemoryStore) Put(id string, state *models.ConversationState) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.sessions[id] = state.Clone()
}

// Get returns a clone of the stored state, or ok=false on a miss.
func (s *MemoryStore) Get(id string) (*models.ConversationState, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	state, ok := s.sessions[id]
	if !ok {
		return nil, false
	}
	return state.Clone(), true
}

// Delete removes the entry and reports whether it existed.
func (s *MemoryStore) Delete(id string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	_, ok := s.sessions[id]
	delete(s.sessions, id)
	return ok
}

// Exists reports whether a session is registered under the id.
func (s *MemoryStore) Exists(id string) bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	_, ok := s.sessions[id]
	return ok
}

// ListAll returns a snapshot of all stored sessions. The slice and its
// entries are independent of the store's own copies.
func (s *MemoryStore) ListAll() []*models.ConversationState {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]*models.ConversationState, 0, len(s.sessions))
	for _, state := range s.sessions {
		out = append(out, state.Clone())
	}
	return out
}
