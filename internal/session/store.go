package session

import (
	"sync"
	"time"

	"github.com/google/uuid"
)

// Store keeps sessions in memory for the lifetime of the process.
type Store struct {
	mu       sync.RWMutex
	sessions map[uuid.UUID]*Session
	factory  func() *Session
}

// NewStore creates a store that builds new sessions with factory.
func NewStore(factory func() *Session) *Store {
	return &Store{
		sessions: make(map[uuid.UUID]*Session),
		factory:  factory,
	}
}

// Get returns the session with the given ID, if any.
func (st *Store) Get(id uuid.UUID) (*Session, bool) {
	st.mu.RLock()
	defer st.mu.RUnlock()
	s, ok := st.sessions[id]
	return s, ok
}

// Lookup parses rawID and returns the matching session, creating one when rawID is empty,
// malformed or unknown. created reports whether a new session was made.
func (st *Store) Lookup(rawID string) (s *Session, created bool) {
	if id, err := uuid.Parse(rawID); err == nil {
		if s, ok := st.Get(id); ok {
			s.Touch()
			return s, false
		}
	}
	return st.Create(), true
}

// Create builds and registers a new session.
func (st *Store) Create() *Session {
	s := st.factory()
	st.mu.Lock()
	st.sessions[s.ID] = s
	st.mu.Unlock()
	return s
}

// Len returns the number of live sessions.
func (st *Store) Len() int {
	st.mu.RLock()
	defer st.mu.RUnlock()
	return len(st.sessions)
}

// Sweep closes and removes sessions idle for longer than maxIdle. It returns the number removed.
func (st *Store) Sweep(maxIdle time.Duration) int {
	cutoff := time.Now().Add(-maxIdle)

	st.mu.Lock()
	var expired []*Session
	for id, s := range st.sessions {
		if s.IdleSince().Before(cutoff) {
			expired = append(expired, s)
			delete(st.sessions, id)
		}
	}
	st.mu.Unlock()

	for _, s := range expired {
		s.Close()
	}
	return len(expired)
}

// Close closes every session.
func (st *Store) Close() {
	st.mu.Lock()
	sessions := st.sessions
	st.sessions = make(map[uuid.UUID]*Session)
	st.mu.Unlock()

	for _, s := range sessions {
		s.Close()
	}
}
