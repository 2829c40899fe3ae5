package repository

import (
	"sync"
	"time"

	"resumatic/internal/domain"

	"github.com/google/uuid"
)

// SessionStore keeps wizard sessions in process memory. Get and Save copy
// the session so callers never share state with the store, and Save uses
// the session version to refuse stale writes.
type SessionStore struct {
	mu       sync.RWMutex
	sessions map[uuid.UUID]*domain.Session
	ttl      time.Duration
}

func NewSessionStore(ttl time.Duration) *SessionStore {
	return &SessionStore{sessions: map[uuid.UUID]*domain.Session{}, ttl: ttl}
}

// Get returns the session with id, or false if it is unknown or expired.
func (st *SessionStore) Get(id uuid.UUID, now time.Time) (*domain.Session, bool) {
	st.mu.RLock()
	s, ok := st.sessions[id]
	st.mu.RUnlock()
	if !ok || st.expired(s, now) {
		return nil, false
	}
	return s.Clone(), true
}

// Save stores a copy of s and bumps s.Version. It returns
// domain.ErrStaleSession when the stored session was saved since s was
// loaded, leaving the newer copy in place.
func (st *SessionStore) Save(s *domain.Session) error {
	st.mu.Lock()
	defer st.mu.Unlock()
	if cur, ok := st.sessions[s.ID]; ok && cur.Version != s.Version {
		return domain.ErrStaleSession
	}
	c := s.Clone()
	c.Version++
	st.sessions[s.ID] = c
	s.Version = c.Version
	return nil
}

func (st *SessionStore) Delete(id uuid.UUID) {
	st.mu.Lock()
	delete(st.sessions, id)
	st.mu.Unlock()
}

func (st *SessionStore) Len() int {
	st.mu.RLock()
	defer st.mu.RUnlock()
	return len(st.sessions)
}

// Sweep drops expired sessions and returns how many were removed.
func (st *SessionStore) Sweep(now time.Time) int {
	st.mu.Lock()
	defer st.mu.Unlock()
	n := 0
	for id, s := range st.sessions {
		if st.expired(s, now) {
			delete(st.sessions, id)
			n++
		}
	}
	return n
}

func (st *SessionStore) expired(s *domain.Session, now time.Time) bool {
	return st.ttl > 0 && now.Sub(s.UpdatedAt) > st.ttl
}
