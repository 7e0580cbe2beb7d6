package routes

import (
	"github.com/gofiber/fiber/v2"

	"github.com/topup-pay/topup_pay/internal/billpay"
)

// RegisterBillpayRoutes wires airtime, data, electricity and cable endpoints.
// Purchases move money so they take the transaction PIN, and replays of the
// same Idempotency-Key return the stored response instead of re-vending.
func RegisterBillpayRoutes(r fiber.Router, h *billpay.Handler, requirePIN, idempotency fiber.Handler) {
	group := r.Group("/billpay")

	purchase := func(path string, handler fiber.Handler) {
		handlers := []fiber.Handler{}
		if idempotency != nil {
			handlers = append(handlers, idempotency)
		}
		handlers = append(handlers, requirePIN, handler)
		group.Post(path, handlers...)
	}

	purchase("/airtime", h.Airtime)
	purchase("/data", h.DataBundle)
	purchase("/electricity", h.Electric)
	purchase("/cable", h.CableSub)

	// Validation lookups do not move money.
	group.Post("/electricity/validate", h.ValidateMeter)
	group.Post("/cable/validate", h.ValidateIUC)
}
