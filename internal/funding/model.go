package funding

import "time"

// Status tracks a funding attempt through its lifecycle. Exactly one
// terminal status is reached per attempt.
type Status string

const (
	StatusCreated              Status = "created"
	StatusAwaitingProvider     Status = "awaiting_provider"
	StatusAwaitingVerification Status = "awaiting_verification"
	StatusVerified             Status = "verified"
	StatusCredited             Status = "credited"
	StatusCancelled            Status = "cancelled"
	StatusFailed               Status = "failed"
)

// Terminal reports whether no further transitions are possible.
func (s Status) Terminal() bool {
	switch s {
	case StatusCredited, StatusCancelled, StatusFailed:
		return true
	default:
		return false
	}
}

// Attempt is one user-initiated wallet funding transaction, tracked from
// initiation to terminal state. Amount is in kobo. ProviderRef is the
// idempotency key for the credit: at most one credit per reference.
type Attempt struct {
	ID               string
	Owner            string
	AmountMinor      int64
	PayerEmail       string
	ProviderRef      string
	AuthorizationURL string
	Status           Status
	Reason           string
	CreatedAt        time.Time
	UpdatedAt        time.Time
}
