package session

import (
	"context"
	"sync"
)

type memoryStore struct {
	mu       sync.RWMutex
	sessions map[string]Session
}

// NewMemoryStore constructs an in-memory session store for tests and
// development without Redis.
func NewMemoryStore() Store {
	return &memoryStore{sessions: make(map[string]Session)}
}

func (s *memoryStore) Set(_ context.Context, handle, token string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.sessions[handle] = Session{Token: token}
	return nil
}

func (s *memoryStore) Get(_ context.Context, handle string) (Session, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	sess, ok := s.sessions[handle]
	if !ok {
		return Session{}, ErrNotFound
	}
	return sess, nil
}

func (s *memoryStore) Clear(_ context.Context, handle string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.sessions, handle)
	return nil
}

func (s *memoryStore) SetPIN(_ context.Context, handle, pin string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	sess, ok := s.sessions[handle]
	if !ok {
		return ErrNotFound
	}
	hash, err := hashPIN(pin)
	if err != nil {
		return err
	}
	sess.PINHash = hash
	s.sessions[handle] = sess
	return nil
}

func (s *memoryStore) VerifyPIN(_ context.Context, handle, pin string) error {
	s.mu.RLock()
	defer s.mu.RUnlock()
	sess, ok := s.sessions[handle]
	if !ok {
		return ErrNotFound
	}
	return comparePIN(sess.PINHash, pin)
}
