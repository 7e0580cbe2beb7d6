package history

import (
	"net/http"
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/topup-pay/topup_pay/internal/upstream"
)

// Handler exposes transaction history over HTTP.
type Handler struct {
	service *Service
}

// NewHandler builds a history handler.
func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

type transactionResponse struct {
	Reference   string    `json:"reference"`
	Description string    `json:"description"`
	AmountMinor int64     `json:"amount_kobo"`
	Currency    string    `json:"currency"`
	CreatedAt   time.Time `json:"created_at"`
	Status      string    `json:"status"`
}

// List returns recent transactions, optionally filtered by ?date=2006-01-02.
func (h *Handler) List(c *fiber.Ctx) error {
	token, _ := c.Locals("upstream_token").(string)

	var day *time.Time
	if raw := c.Query("date"); raw != "" {
		parsed, err := time.Parse("2006-01-02", raw)
		if err != nil {
			return fiber.NewError(http.StatusBadRequest, "date must be formatted as 2006-01-02")
		}
		day = &parsed
	}

	records, err := h.service.List(c.UserContext(), token, day)
	if err != nil {
		return fiber.NewError(upstream.HTTPStatus(err), err.Error())
	}

	out := make([]transactionResponse, 0, len(records))
	for _, record := range records {
		out = append(out, transactionResponse{
			Reference:   record.Reference,
			Description: record.Description,
			AmountMinor: record.AmountMinor,
			Currency:    record.Currency,
			CreatedAt:   record.CreatedAt,
			Status:      record.Status,
		})
	}
	return c.Status(http.StatusOK).JSON(fiber.Map{"transactions": out})
}
