package routes

import (
	"github.com/gofiber/fiber/v2"

	"github.com/topup-pay/topup_pay/internal/funding"
)

// RegisterFundingRoutes wires wallet funding attempts. Starting an attempt
// moves money, so it sits behind the transaction PIN.
func RegisterFundingRoutes(r fiber.Router, h *funding.Handler, requirePIN fiber.Handler) {
	group := r.Group("/funding")
	group.Post("/attempts", requirePIN, h.Start)
	group.Post("/attempts/:attemptId/resolve", h.Resolve)
	group.Get("/attempts/:attemptId", h.Get)
}
