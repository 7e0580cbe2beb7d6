package middleware

import (
	"errors"
	"net/http"
	"strings"

	"github.com/gofiber/fiber/v2"

	"github.com/topup-pay/topup_pay/internal/session"
)

// SessionAuth resolves the bearer session handle into the backend token.
// Handlers read the handle via Locals("session_id") and the token via
// Locals("upstream_token"). The backend stays the authority on whether the
// token itself is still valid.
func SessionAuth(store session.Store) fiber.Handler {
	return func(c *fiber.Ctx) error {
		authz := c.Get(fiber.HeaderAuthorization)
		if !strings.HasPrefix(strings.ToLower(authz), "bearer ") {
			return fiber.NewError(http.StatusUnauthorized, "missing bearer session")
		}
		handle := strings.TrimSpace(authz[len("Bearer "):])

		sess, err := store.Get(c.UserContext(), handle)
		if err != nil {
			if errors.Is(err, session.ErrNotFound) {
				return fiber.NewError(http.StatusUnauthorized, "session expired or logged out")
			}
			return fiber.NewError(http.StatusInternalServerError, "session lookup failed")
		}

		c.Locals("session_id", handle)
		c.Locals("upstream_token", sess.Token)
		return c.Next()
	}
}
