package upstream

import (
	"context"
	"net/http"
)

// PurchaseReceipt summarizes the outcome of a bill purchase. Token carries
// the prepaid electricity token when the purchase produced one.
type PurchaseReceipt struct {
	Status    string `json:"status"`
	Message   string `json:"message"`
	Reference string `json:"reference"`
	Token     string `json:"purchased_token"`
}

// CustomerInfo is the result of validating a meter or smartcard number.
type CustomerInfo struct {
	Name    string `json:"name"`
	Address string `json:"address"`
}

// AirtimeInput captures an airtime top-up request.
type AirtimeInput struct {
	Network     string
	Phone       string
	AmountMinor int64
}

// Airtime purchases airtime for the given phone number.
func (c *Client) Airtime(ctx context.Context, token string, input AirtimeInput) (PurchaseReceipt, error) {
	body := map[string]any{
		"network":       input.Network,
		"mobile_number": input.Phone,
		"amount":        minorToMajor(input.AmountMinor),
	}
	var receipt PurchaseReceipt
	if err := c.do(ctx, http.MethodPost, "airtime", token, body, &receipt); err != nil {
		return PurchaseReceipt{}, err
	}
	return receipt, nil
}

// DataInput captures a data bundle purchase request.
type DataInput struct {
	Network string
	Phone   string
	PlanID  string
}

// DataBundle purchases the selected data plan.
func (c *Client) DataBundle(ctx context.Context, token string, input DataInput) (PurchaseReceipt, error) {
	body := map[string]string{
		"network":       input.Network,
		"mobile_number": input.Phone,
		"plan_id":       input.PlanID,
	}
	var receipt PurchaseReceipt
	if err := c.do(ctx, http.MethodPost, "data", token, body, &receipt); err != nil {
		return PurchaseReceipt{}, err
	}
	return receipt, nil
}

// MeterQuery identifies a meter for pre-purchase validation.
type MeterQuery struct {
	Disco       string `json:"disco_name"`
	MeterNumber string `json:"meter_number"`
	MeterType   string `json:"meter_type"`
}

// ValidateMeter resolves the customer behind a meter number.
func (c *Client) ValidateMeter(ctx context.Context, token string, query MeterQuery) (CustomerInfo, error) {
	var info CustomerInfo
	if err := c.do(ctx, http.MethodPost, "validateMeter", token, query, &info); err != nil {
		return CustomerInfo{}, err
	}
	return info, nil
}

// ElectricInput captures an electricity token purchase request.
type ElectricInput struct {
	Disco       string
	MeterNumber string
	MeterType   string
	Phone       string
	AmountMinor int64
}

// Electric purchases an electricity token for a validated meter.
func (c *Client) Electric(ctx context.Context, token string, input ElectricInput) (PurchaseReceipt, error) {
	body := map[string]any{
		"disco_name":   input.Disco,
		"meter_number": input.MeterNumber,
		"meter_type":   input.MeterType,
		"phone":        input.Phone,
		"amount":       minorToMajor(input.AmountMinor),
	}
	var receipt PurchaseReceipt
	if err := c.do(ctx, http.MethodPost, "electric", token, body, &receipt); err != nil {
		return PurchaseReceipt{}, err
	}
	return receipt, nil
}

// IUCQuery identifies a smartcard for pre-purchase validation.
type IUCQuery struct {
	Provider  string `json:"cablename"`
	SmartCard string `json:"smart_card_number"`
}

// ValidateIUC resolves the customer behind a smartcard number.
func (c *Client) ValidateIUC(ctx context.Context, token string, query IUCQuery) (CustomerInfo, error) {
	var info CustomerInfo
	if err := c.do(ctx, http.MethodPost, "validateIUC", token, query, &info); err != nil {
		return CustomerInfo{}, err
	}
	return info, nil
}

// CableInput captures a cable TV subscription request.
type CableInput struct {
	Provider  string
	SmartCard string
	PlanID    string
	Phone     string
}

// CableSub subscribes a validated smartcard to the selected plan.
func (c *Client) CableSub(ctx context.Context, token string, input CableInput) (PurchaseReceipt, error) {
	body := map[string]string{
		"cablename":         input.Provider,
		"smart_card_number": input.SmartCard,
		"plan_id":           input.PlanID,
		"phone":             input.Phone,
	}
	var receipt PurchaseReceipt
	if err := c.do(ctx, http.MethodPost, "cablesub", token, body, &receipt); err != nil {
		return PurchaseReceipt{}, err
	}
	return receipt, nil
}
