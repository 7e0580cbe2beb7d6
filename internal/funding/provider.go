package funding

import (
	"context"
	"sync"

	"github.com/google/uuid"

	"github.com/topup-pay/topup_pay/internal/upstream"
)

// Checkout represents the payment-provider integration reached through the
// backend: initialize a hosted checkout, then re-verify the charge.
type Checkout interface {
	InitializePaystack(ctx context.Context, token string, amountMinor int64, email string) (upstream.CheckoutIntent, error)
	VerifyPaystack(ctx context.Context, token, reference string) (upstream.ChargeVerification, error)
}

// Funder posts a verified amount to the wallet.
type Funder interface {
	FundWallet(ctx context.Context, token string, amountMinor int64) error
}

// StaticCheckout simulates a provider that approves every charge at the
// initialized amount. Used in development and tests.
type StaticCheckout struct {
	mu      sync.Mutex
	amounts map[string]int64
}

// NewStaticCheckout constructs the simulated provider.
func NewStaticCheckout() *StaticCheckout {
	return &StaticCheckout{amounts: make(map[string]int64)}
}

// InitializePaystack issues a synthetic reference for the charge.
func (s *StaticCheckout) InitializePaystack(_ context.Context, _ string, amountMinor int64, _ string) (upstream.CheckoutIntent, error) {
	reference := uuid.NewString()
	s.mu.Lock()
	s.amounts[reference] = amountMinor
	s.mu.Unlock()
	return upstream.CheckoutIntent{
		Reference:        reference,
		AuthorizationURL: "https://checkout.invalid/" + reference,
	}, nil
}

// VerifyPaystack reports success at the initialized amount.
func (s *StaticCheckout) VerifyPaystack(_ context.Context, _ string, reference string) (upstream.ChargeVerification, error) {
	s.mu.Lock()
	amount := s.amounts[reference]
	s.mu.Unlock()
	return upstream.ChargeVerification{Status: "success", AmountMinor: amount}, nil
}

// FundWallet approves the credit without side effects.
func (s *StaticCheckout) FundWallet(_ context.Context, _ string, _ int64) error {
	return nil
}
