package funding

import "errors"

var (
	// ErrInvalidAmount rejects non-positive funding amounts before any
	// network call is made.
	ErrInvalidAmount = errors.New("amount must be a positive number of kobo")

	// ErrInvalidEmail rejects payer emails without an @ before any network
	// call is made.
	ErrInvalidEmail = errors.New("payer email is not a valid address")

	// ErrAttemptInFlight indicates the owner already has a non-terminal
	// attempt; only one may be active at a time.
	ErrAttemptInFlight = errors.New("another funding attempt is already in flight")

	// ErrAttemptNotFound indicates no attempt exists for the identifier.
	ErrAttemptNotFound = errors.New("funding attempt not found")

	// ErrStateConflict indicates a conditional transition lost to a
	// concurrent writer.
	ErrStateConflict = errors.New("funding attempt changed state concurrently")

	// ErrNotCancellable indicates cancellation arrived after verification
	// started; the attempt runs to a terminal state.
	ErrNotCancellable = errors.New("attempt can no longer be cancelled")

	// ErrReferenceMismatch indicates the callback reference disagrees with
	// the one recorded at initialization.
	ErrReferenceMismatch = errors.New("provider reference does not match attempt")

	// ErrVerificationFailed indicates the backend definitively rejected the
	// charge. Not retryable.
	ErrVerificationFailed = errors.New("provider verification rejected the charge")

	// ErrVerificationMismatch indicates the verified amount disagrees with
	// the attempt amount. Not retryable; requires support escalation.
	ErrVerificationMismatch = errors.New("verified amount does not match the attempt")

	// ErrTransportExhausted indicates verification kept failing at the
	// transport level until the retry budget ran out.
	ErrTransportExhausted = errors.New("verification retries exhausted")

	// ErrCreditFailed indicates money was verified but the wallet credit did
	// not land. The attempt stays verified so the credit can be retried or
	// reconciled manually.
	ErrCreditFailed = errors.New("wallet credit failed after verification")
)
