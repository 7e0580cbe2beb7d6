package routes

import (
	"github.com/gofiber/fiber/v2"

	"github.com/topup-pay/topup_pay/internal/wallet"
)

// RegisterWalletRoutes wires the wallet snapshot endpoint.
func RegisterWalletRoutes(r fiber.Router, h *wallet.Handler) {
	r.Get("/wallet/balance", h.Balance)
}
