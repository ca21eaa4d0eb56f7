package store

import (
	"sync"

	"github.com/mseguy/aidesk/internal/domain"
)

// MemoryStore keeps session history in process memory. It backs the
// "memory" session store setting and the test suites.
type MemoryStore struct {
	mu       sync.RWMutex
	sessions map[string][]domain.Turn
}

// NewMemoryStore creates an empty in-memory history store.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{sessions: make(map[string][]domain.Turn)}
}

func (s *MemoryStore) History(sessionID string) []domain.Turn {
	s.mu.RLock()
	defer s.mu.RUnlock()
	turns := s.sessions[sessionID]
	out := make([]domain.Turn, len(turns))
	copy(out, turns)
	return out
}

func (s *MemoryStore) Append(sessionID string, turns ...domain.Turn) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.sessions[sessionID] = append(s.sessions[sessionID], turns...)
}

func (s *MemoryStore) Trim(sessionID string, max int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.sessions[sessionID] = domain.TrimHistory(s.sessions[sessionID], max)
}

func (s *MemoryStore) Reset(sessionID string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.sessions, sessionID)
}
