package funding

import (
	"errors"
	"net/http"

	"github.com/gofiber/fiber/v2"

	"github.com/topup-pay/topup_pay/internal/upstream"
)

const (
	msgCredited     = "wallet credited"
	msgNotCompleted = "payment not completed; it is safe to retry"
	msgCancelled    = "payment cancelled; no charge was made"
)

// Handler exposes the wallet funding flow over HTTP.
type Handler struct {
	service *Service
}

// NewHandler constructs a funding handler.
func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

// Start opens a checkout session and returns the redirect URL for the
// provider-hosted payment surface.
func (h *Handler) Start(c *fiber.Ctx) error {
	var req startRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(http.StatusBadRequest, err.Error())
	}

	attempt, err := h.service.Start(c.UserContext(), StartInput{
		Owner:       sessionID(c),
		Token:       sessionToken(c),
		AmountMinor: req.AmountMinor,
		PayerEmail:  req.PayerEmail,
	})
	if err != nil {
		switch {
		case errors.Is(err, ErrInvalidAmount), errors.Is(err, ErrInvalidEmail):
			return fiber.NewError(http.StatusBadRequest, err.Error())
		case errors.Is(err, ErrAttemptInFlight):
			return fiber.NewError(http.StatusConflict, err.Error())
		default:
			return fiber.NewError(upstream.HTTPStatus(err), err.Error())
		}
	}

	return c.Status(http.StatusCreated).JSON(toResponse(attempt, ""))
}

// Resolve accepts the checkout outcome and drives the attempt to a terminal
// state. The response message tells the user whether a retry is safe.
func (h *Handler) Resolve(c *fiber.Ctx) error {
	var req resolveRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(http.StatusBadRequest, err.Error())
	}

	outcome := Outcome(req.Outcome)
	switch outcome {
	case OutcomeSuccess, OutcomeCancelled:
	default:
		return fiber.NewError(http.StatusBadRequest, "outcome must be success or cancelled")
	}

	attempt, err := h.service.Resolve(c.UserContext(), ResolveInput{
		AttemptID: c.Params("attemptId"),
		Owner:     sessionID(c),
		Token:     sessionToken(c),
		Outcome:   outcome,
		Reference: req.Reference,
	})
	if err != nil {
		switch {
		case errors.Is(err, ErrAttemptNotFound):
			return fiber.NewError(http.StatusNotFound, err.Error())
		case errors.Is(err, ErrNotCancellable), errors.Is(err, ErrReferenceMismatch), errors.Is(err, ErrStateConflict):
			return fiber.NewError(http.StatusConflict, err.Error())
		case errors.Is(err, ErrVerificationMismatch), errors.Is(err, ErrVerificationFailed), errors.Is(err, ErrTransportExhausted):
			return c.Status(http.StatusOK).JSON(toResponse(attempt, msgNotCompleted))
		case errors.Is(err, ErrCreditFailed):
			// Money verified but not reflected. The user must not retry the
			// payment; support reconciles by reference.
			return c.Status(http.StatusBadGateway).JSON(toResponse(attempt,
				"payment confirmed but not yet reflected; do not retry, contact support with reference "+attempt.ProviderRef))
		default:
			return fiber.NewError(upstream.HTTPStatus(err), err.Error())
		}
	}

	return c.Status(http.StatusOK).JSON(toResponse(attempt, statusMessage(attempt.Status)))
}

// Get reports the current state of an attempt.
func (h *Handler) Get(c *fiber.Ctx) error {
	attempt, err := h.service.Get(c.UserContext(), sessionID(c), c.Params("attemptId"))
	if err != nil {
		return fiber.NewError(http.StatusNotFound, err.Error())
	}
	return c.Status(http.StatusOK).JSON(toResponse(attempt, statusMessage(attempt.Status)))
}

func statusMessage(status Status) string {
	switch status {
	case StatusCredited:
		return msgCredited
	case StatusCancelled:
		return msgCancelled
	case StatusFailed:
		return msgNotCompleted
	default:
		return ""
	}
}

func sessionID(c *fiber.Ctx) string {
	id, _ := c.Locals("session_id").(string)
	return id
}

func sessionToken(c *fiber.Ctx) string {
	token, _ := c.Locals("upstream_token").(string)
	return token
}
