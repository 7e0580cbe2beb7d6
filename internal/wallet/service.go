package wallet

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/topup-pay/topup_pay/internal/upstream"
)

// AccountVerifier fetches the authoritative balance and profile from the
// backend.
type AccountVerifier interface {
	VerifyAccount(ctx context.Context, token string) (upstream.Account, error)
}

// Service maintains the in-memory wallet snapshot per session. The backend
// stays the source of truth; snapshots are a display cache only. Refresh is
// the single writer, any handler may read.
type Service struct {
	verifier AccountVerifier

	mu        sync.RWMutex
	snapshots map[string]Snapshot
}

// NewService builds a wallet projection service.
func NewService(verifier AccountVerifier) *Service {
	return &Service{verifier: verifier, snapshots: make(map[string]Snapshot)}
}

// Refresh fetches a fresh snapshot for the session and replaces the cached
// one. A negative balance from the backend is rejected rather than cached.
func (s *Service) Refresh(ctx context.Context, handle, token string) (Snapshot, error) {
	account, err := s.verifier.VerifyAccount(ctx, token)
	if err != nil {
		return Snapshot{}, err
	}
	if account.BalanceMinor < 0 {
		return Snapshot{}, fmt.Errorf("backend reported negative balance %d", account.BalanceMinor)
	}

	snapshot := Snapshot{
		BalanceMinor: account.BalanceMinor,
		FirstName:    account.FirstName,
		LastName:     account.LastName,
		AsOf:         time.Now().UTC(),
	}

	s.mu.Lock()
	s.snapshots[handle] = snapshot
	s.mu.Unlock()

	return snapshot, nil
}

// Current returns the cached snapshot for the session, if any.
func (s *Service) Current(handle string) (Snapshot, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	snapshot, ok := s.snapshots[handle]
	return snapshot, ok
}

// Forget drops the cached snapshot, typically on logout.
func (s *Service) Forget(handle string) {
	s.mu.Lock()
	delete(s.snapshots, handle)
	s.mu.Unlock()
}
