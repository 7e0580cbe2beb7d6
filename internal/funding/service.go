package funding

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/topup-pay/topup_pay/internal/notification"
	"github.com/topup-pay/topup_pay/internal/upstream"
	"github.com/topup-pay/topup_pay/internal/wallet"
)

const successStatus = "success"

// Refresher replaces the wallet snapshot after a confirmed credit.
type Refresher interface {
	Refresh(ctx context.Context, handle, token string) (wallet.Snapshot, error)
}

// Config tunes the verification phase of the state machine.
type Config struct {
	// VerifyTimeout caps each individual verification call.
	VerifyTimeout time.Duration
	// VerifyAttempts is the total number of verification calls made before
	// transport failures exhaust the attempt.
	VerifyAttempts int
	// VerifyBackoff is the wait before the first retry; it doubles per retry.
	VerifyBackoff time.Duration
}

func (c Config) withDefaults() Config {
	if c.VerifyTimeout <= 0 {
		c.VerifyTimeout = 10 * time.Second
	}
	if c.VerifyAttempts < 1 {
		c.VerifyAttempts = 3
	}
	if c.VerifyBackoff <= 0 {
		c.VerifyBackoff = time.Second
	}
	return c
}

// Service drives funding attempts from initiation to a terminal state and
// guarantees at most one wallet credit per provider reference.
type Service struct {
	repo     Repository
	checkout Checkout
	funder   Funder
	wallets  Refresher
	notifier notification.Notifier
	cfg      Config
}

// NewService builds the funding service. A nil checkout falls back to the
// simulated provider, which then also serves as the funder if none is given.
func NewService(repo Repository, checkout Checkout, funder Funder, wallets Refresher, notifier notification.Notifier, cfg Config) (*Service, error) {
	if repo == nil {
		return nil, fmt.Errorf("attempt repository is required")
	}
	if checkout == nil {
		static := NewStaticCheckout()
		checkout = static
		if funder == nil {
			funder = static
		}
	}
	if funder == nil {
		return nil, fmt.Errorf("wallet funder is required")
	}
	return &Service{
		repo:     repo,
		checkout: checkout,
		funder:   funder,
		wallets:  wallets,
		notifier: notifier,
		cfg:      cfg.withDefaults(),
	}, nil
}

// StartInput captures a funding initiation request.
type StartInput struct {
	Owner       string
	Token       string
	AmountMinor int64
	PayerEmail  string
}

// Start validates the request, opens a checkout session with the provider
// and leaves the attempt awaiting the provider outcome. Validation failures
// reject before any network call. Only one attempt per owner may be active.
func (s *Service) Start(ctx context.Context, input StartInput) (Attempt, error) {
	if input.AmountMinor <= 0 {
		return Attempt{}, ErrInvalidAmount
	}
	if !strings.Contains(input.PayerEmail, "@") {
		return Attempt{}, ErrInvalidEmail
	}

	if _, active, err := s.repo.ActiveForOwner(ctx, input.Owner); err != nil {
		return Attempt{}, err
	} else if active {
		return Attempt{}, ErrAttemptInFlight
	}

	now := time.Now().UTC()
	attempt := Attempt{
		ID:          uuid.NewString(),
		Owner:       input.Owner,
		AmountMinor: input.AmountMinor,
		PayerEmail:  input.PayerEmail,
		Status:      StatusCreated,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	if err := s.repo.Create(ctx, attempt); err != nil {
		return Attempt{}, err
	}

	intent, err := s.checkout.InitializePaystack(ctx, input.Token, input.AmountMinor, input.PayerEmail)
	if err != nil {
		_ = s.repo.Transition(ctx, attempt.ID, StatusCreated, StatusFailed, "checkout initialization failed")
		return Attempt{}, fmt.Errorf("initialize checkout: %w", err)
	}

	if err := s.repo.RecordCheckout(ctx, attempt.ID, intent.Reference, intent.AuthorizationURL); err != nil {
		return Attempt{}, err
	}
	return s.repo.Get(ctx, attempt.ID)
}

// Outcome is what the external checkout surface eventually reports: exactly
// one of success (with a reference) or cancelled. A dismissed surface counts
// as cancelled.
type Outcome string

const (
	OutcomeSuccess   Outcome = "success"
	OutcomeCancelled Outcome = "cancelled"
)

// ResolveInput carries the provider outcome for an attempt.
type ResolveInput struct {
	AttemptID string
	Owner     string
	Token     string
	Outcome   Outcome
	Reference string
}

// Resolve runs the attempt to a terminal state. Cancellation is only honored
// while awaiting the provider and makes no server call. A success outcome
// triggers server-side verification and, on success, exactly one wallet
// credit per provider reference. Replaying Resolve on a terminal attempt is
// a no-op returning the recorded state.
//
// Once verification starts the flow is detached from the caller's
// cancellation: a server-side charge may already exist, so the attempt must
// reach a terminal state rather than stop half way.
func (s *Service) Resolve(ctx context.Context, input ResolveInput) (Attempt, error) {
	attempt, err := s.repo.Get(ctx, input.AttemptID)
	if err != nil {
		return Attempt{}, err
	}
	if attempt.Owner != input.Owner {
		return Attempt{}, ErrAttemptNotFound
	}
	if attempt.Status.Terminal() {
		return attempt, nil
	}
	if attempt.Status == StatusCreated {
		// Checkout initialization never completed; nothing to resolve.
		return attempt, ErrStateConflict
	}

	if input.Outcome == OutcomeCancelled {
		if attempt.Status != StatusAwaitingProvider {
			return attempt, ErrNotCancellable
		}
		if err := s.repo.Transition(ctx, attempt.ID, StatusAwaitingProvider, StatusCancelled, "checkout dismissed"); err != nil {
			return attempt, err
		}
		return s.repo.Get(ctx, attempt.ID)
	}

	if attempt.Status == StatusAwaitingProvider {
		if input.Reference == "" || input.Reference != attempt.ProviderRef {
			return attempt, ErrReferenceMismatch
		}
		if err := s.repo.Transition(ctx, attempt.ID, StatusAwaitingProvider, StatusAwaitingVerification, ""); err != nil {
			return attempt, err
		}
		attempt.Status = StatusAwaitingVerification
	}

	ctx = context.WithoutCancel(ctx)

	if attempt.Status == StatusAwaitingVerification {
		if err := s.verify(ctx, &attempt, input.Token); err != nil {
			latest, getErr := s.repo.Get(ctx, attempt.ID)
			if getErr != nil {
				latest = attempt
			}
			return latest, err
		}
	}

	if err := s.credit(ctx, &attempt, input); err != nil {
		latest, getErr := s.repo.Get(ctx, attempt.ID)
		if getErr != nil {
			latest = attempt
		}
		return latest, err
	}
	return s.repo.Get(ctx, attempt.ID)
}

// Get fetches an attempt, scoped to its owner.
func (s *Service) Get(ctx context.Context, owner, id string) (Attempt, error) {
	attempt, err := s.repo.Get(ctx, id)
	if err != nil {
		return Attempt{}, err
	}
	if attempt.Owner != owner {
		return Attempt{}, ErrAttemptNotFound
	}
	return attempt, nil
}

// verify re-checks the charge with the backend. Transport failures retry
// with doubling backoff until the attempt budget runs out; a definitive
// rejection or an amount mismatch fails immediately.
func (s *Service) verify(ctx context.Context, attempt *Attempt, token string) error {
	var lastErr error
	for call := 0; call < s.cfg.VerifyAttempts; call++ {
		if call > 0 {
			if err := sleepCtx(ctx, s.cfg.VerifyBackoff<<(call-1)); err != nil {
				lastErr = err
				break
			}
		}

		callCtx, cancel := context.WithTimeout(ctx, s.cfg.VerifyTimeout)
		verification, err := s.checkout.VerifyPaystack(callCtx, token, attempt.ProviderRef)
		cancel()

		if err != nil {
			if upstream.IsTransport(err) {
				lastErr = err
				continue
			}
			_ = s.repo.Transition(ctx, attempt.ID, StatusAwaitingVerification, StatusFailed, "verification rejected: "+err.Error())
			return fmt.Errorf("%w: %s", ErrVerificationFailed, err)
		}

		if !strings.EqualFold(verification.Status, successStatus) {
			_ = s.repo.Transition(ctx, attempt.ID, StatusAwaitingVerification, StatusFailed, "provider reported "+verification.Status)
			return ErrVerificationFailed
		}
		if verification.AmountMinor != attempt.AmountMinor {
			reason := fmt.Sprintf("verified amount %d does not match attempt amount %d", verification.AmountMinor, attempt.AmountMinor)
			_ = s.repo.Transition(ctx, attempt.ID, StatusAwaitingVerification, StatusFailed, reason)
			return ErrVerificationMismatch
		}

		if err := s.repo.Transition(ctx, attempt.ID, StatusAwaitingVerification, StatusVerified, ""); err != nil {
			return err
		}
		attempt.Status = StatusVerified
		return nil
	}

	_ = s.repo.Transition(ctx, attempt.ID, StatusAwaitingVerification, StatusFailed, "verification transport failures exhausted retries")
	if lastErr != nil {
		return fmt.Errorf("%w: %s", ErrTransportExhausted, lastErr)
	}
	return ErrTransportExhausted
}

// credit records the credited state, then posts the credit. Claiming the
// state first is what keeps concurrent resolvers and restarts from crediting
// the same reference twice; a definitive credit failure rolls the claim back
// so the attempt can be retried or reconciled.
func (s *Service) credit(ctx context.Context, attempt *Attempt, input ResolveInput) error {
	err := s.repo.Transition(ctx, attempt.ID, StatusVerified, StatusCredited, "")
	if errors.Is(err, ErrStateConflict) {
		return nil
	}
	if err != nil {
		return err
	}

	if err := s.funder.FundWallet(ctx, input.Token, attempt.AmountMinor); err != nil {
		_ = s.repo.Transition(ctx, attempt.ID, StatusCredited, StatusVerified, "wallet credit failed")
		s.notify(ctx, notification.Message{
			Kind:        notification.KindCreditEscalation,
			Destination: attempt.Owner,
			Reference:   attempt.ProviderRef,
			Body:        fmt.Sprintf("payment %s verified for %d kobo but wallet credit failed", attempt.ProviderRef, attempt.AmountMinor),
		})
		return fmt.Errorf("%w: reference %s", ErrCreditFailed, attempt.ProviderRef)
	}

	s.notify(ctx, notification.Message{
		Kind:        notification.KindWalletCredited,
		Destination: attempt.Owner,
		Reference:   attempt.ProviderRef,
		Body:        fmt.Sprintf("wallet credited with %d kobo", attempt.AmountMinor),
	})

	if s.wallets != nil {
		// Best effort; the next balance read refreshes anyway.
		_, _ = s.wallets.Refresh(ctx, input.Owner, input.Token)
	}
	return nil
}

func (s *Service) notify(ctx context.Context, message notification.Message) {
	if s.notifier != nil {
		_ = s.notifier.Send(ctx, message)
	}
}

func sleepCtx(ctx context.Context, d time.Duration) error {
	timer := time.NewTimer(d)
	defer timer.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}
