// Package billpay forwards airtime, data, electricity and cable TV
// purchases to the backend billers.
package billpay

import (
	"context"
	"errors"

	"github.com/topup-pay/topup_pay/internal/upstream"
)

var (
	// ErrInvalidPhone rejects phone numbers that are not 11 digits.
	ErrInvalidPhone = errors.New("phone number must be 11 digits")

	// ErrInvalidAmount rejects non-positive purchase amounts.
	ErrInvalidAmount = errors.New("amount must be a positive number of kobo")

	// ErrMissingField rejects requests with empty required fields.
	ErrMissingField = errors.New("required field is missing")
)

// Vendor is the slice of the backend client used for bill purchases.
type Vendor interface {
	Airtime(ctx context.Context, token string, input upstream.AirtimeInput) (upstream.PurchaseReceipt, error)
	DataBundle(ctx context.Context, token string, input upstream.DataInput) (upstream.PurchaseReceipt, error)
	ValidateMeter(ctx context.Context, token string, query upstream.MeterQuery) (upstream.CustomerInfo, error)
	Electric(ctx context.Context, token string, input upstream.ElectricInput) (upstream.PurchaseReceipt, error)
	ValidateIUC(ctx context.Context, token string, query upstream.IUCQuery) (upstream.CustomerInfo, error)
	CableSub(ctx context.Context, token string, input upstream.CableInput) (upstream.PurchaseReceipt, error)
}

// Service validates purchase requests before forwarding them upstream. The
// backend owns pricing and fulfilment; nothing is retried here.
type Service struct {
	vendor Vendor
}

// NewService builds a bill payment service.
func NewService(vendor Vendor) *Service {
	return &Service{vendor: vendor}
}

// Airtime tops up a phone number.
func (s *Service) Airtime(ctx context.Context, token string, input upstream.AirtimeInput) (upstream.PurchaseReceipt, error) {
	if err := validatePhone(input.Phone); err != nil {
		return upstream.PurchaseReceipt{}, err
	}
	if input.AmountMinor <= 0 {
		return upstream.PurchaseReceipt{}, ErrInvalidAmount
	}
	if input.Network == "" {
		return upstream.PurchaseReceipt{}, ErrMissingField
	}
	return s.vendor.Airtime(ctx, token, input)
}

// DataBundle buys the selected data plan.
func (s *Service) DataBundle(ctx context.Context, token string, input upstream.DataInput) (upstream.PurchaseReceipt, error) {
	if err := validatePhone(input.Phone); err != nil {
		return upstream.PurchaseReceipt{}, err
	}
	if input.Network == "" || input.PlanID == "" {
		return upstream.PurchaseReceipt{}, ErrMissingField
	}
	return s.vendor.DataBundle(ctx, token, input)
}

// ValidateMeter resolves the customer behind a meter before purchase.
func (s *Service) ValidateMeter(ctx context.Context, token string, query upstream.MeterQuery) (upstream.CustomerInfo, error) {
	if query.Disco == "" || query.MeterNumber == "" || query.MeterType == "" {
		return upstream.CustomerInfo{}, ErrMissingField
	}
	return s.vendor.ValidateMeter(ctx, token, query)
}

// Electric buys an electricity token for a validated meter.
func (s *Service) Electric(ctx context.Context, token string, input upstream.ElectricInput) (upstream.PurchaseReceipt, error) {
	if input.Disco == "" || input.MeterNumber == "" || input.MeterType == "" {
		return upstream.PurchaseReceipt{}, ErrMissingField
	}
	if input.AmountMinor <= 0 {
		return upstream.PurchaseReceipt{}, ErrInvalidAmount
	}
	return s.vendor.Electric(ctx, token, input)
}

// ValidateIUC resolves the customer behind a smartcard before purchase.
func (s *Service) ValidateIUC(ctx context.Context, token string, query upstream.IUCQuery) (upstream.CustomerInfo, error) {
	if query.Provider == "" || query.SmartCard == "" {
		return upstream.CustomerInfo{}, ErrMissingField
	}
	return s.vendor.ValidateIUC(ctx, token, query)
}

// CableSub subscribes a validated smartcard to the selected plan.
func (s *Service) CableSub(ctx context.Context, token string, input upstream.CableInput) (upstream.PurchaseReceipt, error) {
	if input.Provider == "" || input.SmartCard == "" || input.PlanID == "" {
		return upstream.PurchaseReceipt{}, ErrMissingField
	}
	return s.vendor.CableSub(ctx, token, input)
}

func validatePhone(phone string) error {
	if len(phone) != 11 {
		return ErrInvalidPhone
	}
	for _, r := range phone {
		if r < '0' || r > '9' {
			return ErrInvalidPhone
		}
	}
	return nil
}
