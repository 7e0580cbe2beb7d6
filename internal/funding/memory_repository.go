package funding

import (
	"context"
	"sync"
	"time"
)

type memoryRepository struct {
	mu       sync.Mutex
	attempts map[string]Attempt
	byRef    map[string]string
}

// NewMemoryRepository constructs an in-memory repository for tests and
// development without Postgres.
func NewMemoryRepository() Repository {
	return &memoryRepository{
		attempts: make(map[string]Attempt),
		byRef:    make(map[string]string),
	}
}

func (r *memoryRepository) Create(_ context.Context, attempt Attempt) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, existing := range r.attempts {
		if existing.Owner == attempt.Owner && !existing.Status.Terminal() {
			return ErrAttemptInFlight
		}
	}
	r.attempts[attempt.ID] = attempt
	return nil
}

func (r *memoryRepository) Get(_ context.Context, id string) (Attempt, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	attempt, ok := r.attempts[id]
	if !ok {
		return Attempt{}, ErrAttemptNotFound
	}
	return attempt, nil
}

func (r *memoryRepository) GetByReference(_ context.Context, reference string) (Attempt, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	id, ok := r.byRef[reference]
	if !ok {
		return Attempt{}, ErrAttemptNotFound
	}
	return r.attempts[id], nil
}

func (r *memoryRepository) ActiveForOwner(_ context.Context, owner string) (Attempt, bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, attempt := range r.attempts {
		if attempt.Owner == owner && !attempt.Status.Terminal() {
			return attempt, true, nil
		}
	}
	return Attempt{}, false, nil
}

func (r *memoryRepository) RecordCheckout(_ context.Context, id, reference, authorizationURL string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	attempt, ok := r.attempts[id]
	if !ok {
		return ErrAttemptNotFound
	}
	if attempt.Status != StatusCreated {
		return ErrStateConflict
	}
	attempt.ProviderRef = reference
	attempt.AuthorizationURL = authorizationURL
	attempt.Status = StatusAwaitingProvider
	attempt.UpdatedAt = time.Now().UTC()
	r.attempts[id] = attempt
	r.byRef[reference] = id
	return nil
}

func (r *memoryRepository) Transition(_ context.Context, id string, from, to Status, reason string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	attempt, ok := r.attempts[id]
	if !ok {
		return ErrAttemptNotFound
	}
	if attempt.Status != from {
		return ErrStateConflict
	}
	attempt.Status = to
	if reason != "" {
		attempt.Reason = reason
	}
	attempt.UpdatedAt = time.Now().UTC()
	r.attempts[id] = attempt
	return nil
}
