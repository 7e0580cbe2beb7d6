package wallet

import (
	"net/http"
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/topup-pay/topup_pay/internal/upstream"
)

// Handler exposes the wallet snapshot over HTTP.
type Handler struct {
	service *Service
}

// NewHandler builds a wallet HTTP handler.
func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

type snapshotResponse struct {
	BalanceMinor int64     `json:"balance_kobo"`
	FirstName    string    `json:"first_name"`
	LastName     string    `json:"last_name"`
	AsOf         time.Time `json:"as_of"`
}

// Balance returns the wallet snapshot. By default it refreshes from the
// backend; ?cached=1 serves the last snapshot when one exists.
func (h *Handler) Balance(c *fiber.Ctx) error {
	handle, _ := c.Locals("session_id").(string)
	token, _ := c.Locals("upstream_token").(string)

	if c.Query("cached") == "1" {
		if snapshot, ok := h.service.Current(handle); ok {
			return c.Status(http.StatusOK).JSON(toResponse(snapshot))
		}
	}

	snapshot, err := h.service.Refresh(c.UserContext(), handle, token)
	if err != nil {
		return fiber.NewError(upstream.HTTPStatus(err), err.Error())
	}
	return c.Status(http.StatusOK).JSON(toResponse(snapshot))
}

func toResponse(s Snapshot) snapshotResponse {
	return snapshotResponse{
		BalanceMinor: s.BalanceMinor,
		FirstName:    s.FirstName,
		LastName:     s.LastName,
		AsOf:         s.AsOf,
	}
}
