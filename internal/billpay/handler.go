package billpay

import (
	"errors"
	"net/http"

	"github.com/gofiber/fiber/v2"

	"github.com/topup-pay/topup_pay/internal/upstream"
)

// Handler exposes bill purchase endpoints.
type Handler struct {
	service *Service
}

// NewHandler constructs a bill payment handler.
func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

type airtimeRequest struct {
	Network     string `json:"network"`
	Phone       string `json:"phone"`
	AmountMinor int64  `json:"amount_kobo"`
}

// Airtime processes an airtime top-up.
func (h *Handler) Airtime(c *fiber.Ctx) error {
	var req airtimeRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(http.StatusBadRequest, err.Error())
	}
	receipt, err := h.service.Airtime(c.UserContext(), token(c), upstream.AirtimeInput{
		Network:     req.Network,
		Phone:       req.Phone,
		AmountMinor: req.AmountMinor,
	})
	return respond(c, receipt, err)
}

type dataRequest struct {
	Network string `json:"network"`
	Phone   string `json:"phone"`
	PlanID  string `json:"plan_id"`
}

// DataBundle processes a data plan purchase.
func (h *Handler) DataBundle(c *fiber.Ctx) error {
	var req dataRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(http.StatusBadRequest, err.Error())
	}
	receipt, err := h.service.DataBundle(c.UserContext(), token(c), upstream.DataInput{
		Network: req.Network,
		Phone:   req.Phone,
		PlanID:  req.PlanID,
	})
	return respond(c, receipt, err)
}

type meterRequest struct {
	Disco       string `json:"disco"`
	MeterNumber string `json:"meter_number"`
	MeterType   string `json:"meter_type"`
}

// ValidateMeter resolves the customer behind a meter number.
func (h *Handler) ValidateMeter(c *fiber.Ctx) error {
	var req meterRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(http.StatusBadRequest, err.Error())
	}
	info, err := h.service.ValidateMeter(c.UserContext(), token(c), upstream.MeterQuery{
		Disco:       req.Disco,
		MeterNumber: req.MeterNumber,
		MeterType:   req.MeterType,
	})
	if err != nil {
		return purchaseError(err)
	}
	return c.Status(http.StatusOK).JSON(info)
}

type electricRequest struct {
	Disco       string `json:"disco"`
	MeterNumber string `json:"meter_number"`
	MeterType   string `json:"meter_type"`
	Phone       string `json:"phone"`
	AmountMinor int64  `json:"amount_kobo"`
}

// Electric processes an electricity token purchase.
func (h *Handler) Electric(c *fiber.Ctx) error {
	var req electricRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(http.StatusBadRequest, err.Error())
	}
	receipt, err := h.service.Electric(c.UserContext(), token(c), upstream.ElectricInput{
		Disco:       req.Disco,
		MeterNumber: req.MeterNumber,
		MeterType:   req.MeterType,
		Phone:       req.Phone,
		AmountMinor: req.AmountMinor,
	})
	return respond(c, receipt, err)
}

type iucRequest struct {
	Provider  string `json:"provider"`
	SmartCard string `json:"smart_card"`
}

// ValidateIUC resolves the customer behind a smartcard number.
func (h *Handler) ValidateIUC(c *fiber.Ctx) error {
	var req iucRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(http.StatusBadRequest, err.Error())
	}
	info, err := h.service.ValidateIUC(c.UserContext(), token(c), upstream.IUCQuery{
		Provider:  req.Provider,
		SmartCard: req.SmartCard,
	})
	if err != nil {
		return purchaseError(err)
	}
	return c.Status(http.StatusOK).JSON(info)
}

type cableRequest struct {
	Provider  string `json:"provider"`
	SmartCard string `json:"smart_card"`
	PlanID    string `json:"plan_id"`
	Phone     string `json:"phone"`
}

// CableSub processes a cable TV subscription.
func (h *Handler) CableSub(c *fiber.Ctx) error {
	var req cableRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(http.StatusBadRequest, err.Error())
	}
	receipt, err := h.service.CableSub(c.UserContext(), token(c), upstream.CableInput{
		Provider:  req.Provider,
		SmartCard: req.SmartCard,
		PlanID:    req.PlanID,
		Phone:     req.Phone,
	})
	return respond(c, receipt, err)
}

func respond(c *fiber.Ctx, receipt upstream.PurchaseReceipt, err error) error {
	if err != nil {
		return purchaseError(err)
	}
	return c.Status(http.StatusOK).JSON(receipt)
}

func purchaseError(err error) error {
	switch {
	case errors.Is(err, ErrInvalidPhone), errors.Is(err, ErrInvalidAmount), errors.Is(err, ErrMissingField):
		return fiber.NewError(http.StatusBadRequest, err.Error())
	default:
		return fiber.NewError(upstream.HTTPStatus(err), err.Error())
	}
}

func token(c *fiber.Ctx) string {
	t, _ := c.Locals("upstream_token").(string)
	return t
}
