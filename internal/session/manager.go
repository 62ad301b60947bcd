// Package session keys live exercise state by camera session so concurrent
// streams never share a counter.
package session

import (
	"errors"
	"sync"

	"github.com/google/uuid"

	"github.com/smitra/baithak/internal/exercise"
)

// ErrNotFound is returned when a session ID is unknown.
var ErrNotFound = errors.New("session not found")

// Session pairs a counter with its identifier.
type Session struct {
	ID      string
	Counter *exercise.SquatCounter
}

// Manager owns one SquatCounter per logical camera session. Each counter is
// created at session start and isolated from every other session's state.
type Manager struct {
	mu       sync.RWMutex
	sessions map[string]*Session
}

// NewManager creates an empty session manager.
func NewManager() *Manager {
	return &Manager{
		sessions: make(map[string]*Session),
	}
}

// Create registers a new session with a fresh counter and returns it.
func (m *Manager) Create() *Session {
	s := &Session{
		ID:      uuid.New().String(),
		Counter: exercise.NewSquatCounter(),
	}

	m.mu.Lock()
	m.sessions[s.ID] = s
	m.mu.Unlock()

	return s
}

// Get returns the session with the given ID.
func (m *Manager) Get(id string) (*Session, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	s, ok := m.sessions[id]
	if !ok {
		return nil, ErrNotFound
	}
	return s, nil
}

// Reset reinitializes the counter for the given session.
func (m *Manager) Reset(id string) error {
	s, err := m.Get(id)
	if err != nil {
		return err
	}
	s.Counter.Reset()
	return nil
}

// Remove discards a session and its state.
func (m *Manager) Remove(id string) {
	m.mu.Lock()
	delete(m.sessions, id)
	m.mu.Unlock()
}

// List returns all active session IDs.
func (m *Manager) List() []string {
	m.mu.RLock()
	defer m.mu.RUnlock()

	ids := make([]string, 0, len(m.sessions))
	for id := range m.sessions {
		ids = append(ids, id)
	}
	return ids
}
