package middleware

import (
	"errors"
	"net/http"

	"github.com/gofiber/fiber/v2"

	"github.com/topup-pay/topup_pay/internal/session"
)

const transactionPINHeader = "X-Transaction-PIN"

// RequirePIN gates money movement behind the session's transaction PIN.
// Must run after SessionAuth.
func RequirePIN(store session.Store) fiber.Handler {
	return func(c *fiber.Ctx) error {
		handle, _ := c.Locals("session_id").(string)
		pin := c.Get(transactionPINHeader)
		if pin == "" {
			return fiber.NewError(http.StatusForbidden, "missing "+transactionPINHeader+" header")
		}

		err := store.VerifyPIN(c.UserContext(), handle, pin)
		switch {
		case err == nil:
			return c.Next()
		case errors.Is(err, session.ErrPINNotSet):
			return fiber.NewError(http.StatusForbidden, "transaction PIN not set")
		case errors.Is(err, session.ErrPINMismatch):
			return fiber.NewError(http.StatusForbidden, "transaction PIN mismatch")
		case errors.Is(err, session.ErrNotFound):
			return fiber.NewError(http.StatusUnauthorized, "session expired or logged out")
		default:
			return fiber.NewError(http.StatusInternalServerError, "PIN verification failed")
		}
	}
}
