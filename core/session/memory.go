package session

import (
	"context"
	"sync"
	"time"
)

// MemoryStore is an in-memory Store implementation for development and tests.
// All operations, including the claim compare-and-set, execute under a single
// mutex, so it provides the same atomicity guarantees as a durable store.
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

// Create implements Store.
func (s *MemoryStore) Create(_ context.Context, sess Session) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, exists := s.sessions[sess.ID]; exists {
		return ErrDuplicateID
	}
	s.sessions[sess.ID] = sess
	return nil
}

// Get implements Store.
func (s *MemoryStore) Get(_ context.Context, id string) (Session, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	sess, ok := s.sessions[id]
	if !ok {
		return Session{}, ErrNotFound
	}
	return sess, nil
}

// MarkClaimed implements Store. The check-and-set runs under the write lock,
// so concurrent claims serialize and exactly one succeeds.
func (s *MemoryStore) MarkClaimed(_ context.Context, id string, at time.Time) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	sess, ok := s.sessions[id]
	if !ok {
		return ErrNotFound
	}
	if sess.IsClaimed() {
		return ErrClaimConflict
	}
	sess.ClaimedAt = at
	s.sessions[id] = sess
	return nil
}

// DeleteByAuthenticatable implements Store.
func (s *MemoryStore) DeleteByAuthenticatable(_ context.Context, ref Ref) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	for id, sess := range s.sessions {
		if sess.Authenticatable == ref {
			delete(s.sessions, id)
		}
	}
	return nil
}

// DeleteExpired implements Store.
func (s *MemoryStore) DeleteExpired(_ context.Context) (int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	var deleted int64
	now := time.Now()
	for id, sess := range s.sessions {
		if now.After(sess.ExpiresAt) {
			delete(s.sessions, id)
			deleted++
		}
	}
	return deleted, nil
}

// Len returns the number of stored sessions. Test helper.
func (s *MemoryStore) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.sessions)
}
