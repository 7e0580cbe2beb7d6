package routes

import (
	"github.com/gofiber/fiber/v2"

	"github.com/topup-pay/topup_pay/internal/auth"
)

// RegisterAuthRoutes wires the public account endpoints.
func RegisterAuthRoutes(r fiber.Router, h *auth.Handler, rateLimiter fiber.Handler) {
	group := r.Group("/auth")
	if rateLimiter != nil {
		group.Post("/login", rateLimiter, h.Login)
	} else {
		group.Post("/login", h.Login)
	}
	group.Post("/register", h.Register)
	group.Post("/password/forgot", h.RequestPasswordReset)
	group.Post("/password/reset", h.ResetPassword)
}

// RegisterSessionRoutes wires endpoints that act on the caller's session and
// therefore require session authentication.
func RegisterSessionRoutes(r fiber.Router, h *auth.Handler) {
	group := r.Group("/auth")
	group.Post("/logout", h.Logout)
	group.Post("/pin", h.SetPIN)
}
