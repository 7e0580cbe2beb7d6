package routes

import (
	"github.com/gofiber/fiber/v2"

	"github.com/topup-pay/topup_pay/internal/history"
)

// RegisterHistoryRoutes wires the transaction history endpoint.
func RegisterHistoryRoutes(r fiber.Router, h *history.Handler) {
	r.Get("/transactions", h.List)
}
