package funding

import "context"

// Repository persists funding attempts. Implementations must make
// Transition atomic: the update applies only when the current status equals
// from, which is what makes the credit idempotent across restarts.
type Repository interface {
	Create(ctx context.Context, attempt Attempt) error
	Get(ctx context.Context, id string) (Attempt, error)
	GetByReference(ctx context.Context, reference string) (Attempt, error)
	ActiveForOwner(ctx context.Context, owner string) (Attempt, bool, error)
	RecordCheckout(ctx context.Context, id, reference, authorizationURL string) error
	Transition(ctx context.Context, id string, from, to Status, reason string) error
}
