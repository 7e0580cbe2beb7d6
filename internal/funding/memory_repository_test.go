package funding

import (
	"context"
	"errors"
	"testing"
	"time"
)

func seedAttempt(t *testing.T, repo Repository, id, owner string) Attempt {
	t.Helper()
	now := time.Now().UTC()
	attempt := Attempt{ID: id, Owner: owner, AmountMinor: 5000, Status: StatusCreated, CreatedAt: now, UpdatedAt: now}
	if err := repo.Create(context.Background(), attempt); err != nil {
		t.Fatalf("Create: %v", err)
	}
	return attempt
}

func TestCreateEnforcesSingleActiveAttempt(t *testing.T) {
	repo := NewMemoryRepository()
	ctx := context.Background()
	seedAttempt(t, repo, "a1", "u1")

	err := repo.Create(ctx, Attempt{ID: "a2", Owner: "u1", Status: StatusCreated})
	if !errors.Is(err, ErrAttemptInFlight) {
		t.Fatalf("got %v, want ErrAttemptInFlight", err)
	}

	// Terminal attempts do not block.
	if err := repo.Transition(ctx, "a1", StatusCreated, StatusFailed, "init failed"); err != nil {
		t.Fatalf("Transition: %v", err)
	}
	if err := repo.Create(ctx, Attempt{ID: "a3", Owner: "u1", Status: StatusCreated}); err != nil {
		t.Fatalf("Create after terminal: %v", err)
	}
}

func TestRecordCheckoutMovesToAwaitingProvider(t *testing.T) {
	repo := NewMemoryRepository()
	ctx := context.Background()
	seedAttempt(t, repo, "a1", "u1")

	if err := repo.RecordCheckout(ctx, "a1", "ps_ref", "https://checkout.example/ps_ref"); err != nil {
		t.Fatalf("RecordCheckout: %v", err)
	}

	attempt, err := repo.Get(ctx, "a1")
	if err != nil {
		t.Fatalf("Get: %v", err)
	}
	if attempt.Status != StatusAwaitingProvider || attempt.ProviderRef != "ps_ref" {
		t.Fatalf("attempt = %+v", attempt)
	}

	byRef, err := repo.GetByReference(ctx, "ps_ref")
	if err != nil {
		t.Fatalf("GetByReference: %v", err)
	}
	if byRef.ID != "a1" {
		t.Fatalf("byRef.ID = %s", byRef.ID)
	}

	// Replaying checkout recording on a moved attempt is a conflict.
	if err := repo.RecordCheckout(ctx, "a1", "ps_other", "u"); !errors.Is(err, ErrStateConflict) {
		t.Fatalf("replay: got %v, want ErrStateConflict", err)
	}
}

func TestTransitionIsConditional(t *testing.T) {
	repo := NewMemoryRepository()
	ctx := context.Background()
	seedAttempt(t, repo, "a1", "u1")

	if err := repo.Transition(ctx, "a1", StatusAwaitingProvider, StatusCancelled, ""); !errors.Is(err, ErrStateConflict) {
		t.Fatalf("wrong from-state: got %v, want ErrStateConflict", err)
	}
	if err := repo.Transition(ctx, "a1", StatusCreated, StatusFailed, "boom"); err != nil {
		t.Fatalf("Transition: %v", err)
	}
	// Only one of two competing transitions can win.
	if err := repo.Transition(ctx, "a1", StatusCreated, StatusFailed, "boom"); !errors.Is(err, ErrStateConflict) {
		t.Fatalf("second transition: got %v, want ErrStateConflict", err)
	}

	attempt, _ := repo.Get(ctx, "a1")
	if attempt.Reason != "boom" {
		t.Fatalf("reason = %q", attempt.Reason)
	}

	if err := repo.Transition(ctx, "missing", StatusCreated, StatusFailed, ""); !errors.Is(err, ErrAttemptNotFound) {
		t.Fatalf("missing attempt: got %v, want ErrAttemptNotFound", err)
	}
}

func TestActiveForOwner(t *testing.T) {
	repo := NewMemoryRepository()
	ctx := context.Background()

	if _, active, err := repo.ActiveForOwner(ctx, "u1"); err != nil || active {
		t.Fatalf("empty repo: active=%v err=%v", active, err)
	}

	seedAttempt(t, repo, "a1", "u1")
	attempt, active, err := repo.ActiveForOwner(ctx, "u1")
	if err != nil || !active {
		t.Fatalf("active=%v err=%v", active, err)
	}
	if attempt.ID != "a1" {
		t.Fatalf("attempt.ID = %s", attempt.ID)
	}

	if _, active, _ := repo.ActiveForOwner(ctx, "u2"); active {
		t.Fatal("other owner reported active")
	}
}
