package upstream

import (
	"context"
	"net/http"
)

// CheckoutIntent is the handle to a provider-hosted checkout session.
type CheckoutIntent struct {
	Reference        string `json:"reference"`
	AuthorizationURL string `json:"authorization_url"`
}

// InitializePaystack creates a hosted checkout session for the given amount
// in kobo and returns the provider reference plus redirect URL.
func (c *Client) InitializePaystack(ctx context.Context, token string, amountMinor int64, email string) (CheckoutIntent, error) {
	body := map[string]any{
		"amount": amountMinor,
		"email":  email,
	}
	var intent CheckoutIntent
	if err := c.do(ctx, http.MethodPost, "initialize_paystack", token, body, &intent); err != nil {
		return CheckoutIntent{}, err
	}
	return intent, nil
}

// ChargeVerification is the backend's server-side re-check of a provider
// reference. Amount is in kobo as reported by the provider.
type ChargeVerification struct {
	Status      string `json:"status"`
	AmountMinor int64  `json:"amount"`
}

// VerifyPaystack re-verifies a charge by provider reference. Client-reported
// success is untrusted; this is the authoritative check.
func (c *Client) VerifyPaystack(ctx context.Context, token, reference string) (ChargeVerification, error) {
	body := map[string]string{"reference": reference}
	var verification ChargeVerification
	if err := c.do(ctx, http.MethodPost, "verify_paystack", token, body, &verification); err != nil {
		return ChargeVerification{}, err
	}
	return verification, nil
}

// FundWallet credits the wallet with the verified amount. The backend keeps
// wallet figures in naira, so the amount converts from kobo exactly once here.
func (c *Client) FundWallet(ctx context.Context, token string, amountMinor int64) error {
	body := map[string]any{"transaction_amt": minorToMajor(amountMinor)}
	return c.do(ctx, http.MethodPost, "fundWallet", token, body, nil)
}
