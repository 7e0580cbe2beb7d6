package auth

import (
	"errors"
	"net/http"

	"github.com/gofiber/fiber/v2"

	"github.com/topup-pay/topup_pay/internal/upstream"
)

// Handler exposes account endpoints for login, registration and resets.
type Handler struct {
	service *Service
}

// NewHandler constructs an auth handler.
func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

type loginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

type loginResponse struct {
	SessionID string `json:"session_id"`
	LoggedIn  bool   `json:"logged_in"`
}

// Login validates credentials with the backend and issues a session.
func (h *Handler) Login(c *fiber.Ctx) error {
	var req loginRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(http.StatusBadRequest, err.Error())
	}
	if req.Username == "" || req.Password == "" {
		return fiber.NewError(http.StatusBadRequest, "username and password are required")
	}

	result, err := h.service.Login(c.UserContext(), req.Username, req.Password)
	if err != nil {
		if errors.Is(err, ErrLoginRejected) {
			return fiber.NewError(http.StatusUnauthorized, err.Error())
		}
		return fiber.NewError(upstream.HTTPStatus(err), err.Error())
	}
	return c.Status(http.StatusOK).JSON(loginResponse{SessionID: result.SessionID, LoggedIn: result.LoggedIn})
}

type registerRequest struct {
	Username string `json:"username"`
	Email    string `json:"email"`
	Phone    string `json:"phone"`
	Password string `json:"password"`
}

// Register opens a backend account.
func (h *Handler) Register(c *fiber.Ctx) error {
	var req registerRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(http.StatusBadRequest, err.Error())
	}
	err := h.service.Register(c.UserContext(), upstream.RegisterInput{
		Username: req.Username,
		Email:    req.Email,
		Phone:    req.Phone,
		Password: req.Password,
	})
	if err != nil {
		return fiber.NewError(upstream.HTTPStatus(err), err.Error())
	}
	return c.Status(http.StatusCreated).JSON(fiber.Map{"status": "registered"})
}

type forgotPasswordRequest struct {
	Email string `json:"email"`
}

// RequestPasswordReset starts a password reset.
func (h *Handler) RequestPasswordReset(c *fiber.Ctx) error {
	var req forgotPasswordRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(http.StatusBadRequest, err.Error())
	}
	if err := h.service.RequestPasswordReset(c.UserContext(), req.Email); err != nil {
		return fiber.NewError(upstream.HTTPStatus(err), err.Error())
	}
	return c.Status(http.StatusOK).JSON(fiber.Map{"status": "reset_requested"})
}

type resetPasswordRequest struct {
	Email       string `json:"email"`
	ResetCode   string `json:"reset_code"`
	NewPassword string `json:"new_password"`
}

// ResetPassword completes a password reset.
func (h *Handler) ResetPassword(c *fiber.Ctx) error {
	var req resetPasswordRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(http.StatusBadRequest, err.Error())
	}
	err := h.service.ResetPassword(c.UserContext(), upstream.ResetPasswordInput{
		Email:       req.Email,
		ResetCode:   req.ResetCode,
		NewPassword: req.NewPassword,
	})
	if err != nil {
		return fiber.NewError(upstream.HTTPStatus(err), err.Error())
	}
	return c.Status(http.StatusOK).JSON(fiber.Map{"status": "password_reset"})
}

// Logout ends the current session.
func (h *Handler) Logout(c *fiber.Ctx) error {
	handle, _ := c.Locals("session_id").(string)
	if err := h.service.Logout(c.UserContext(), handle); err != nil {
		return fiber.NewError(http.StatusInternalServerError, err.Error())
	}
	return c.Status(http.StatusOK).JSON(fiber.Map{"status": "logged_out"})
}

type setPINRequest struct {
	PIN string `json:"pin"`
}

// SetPIN stores the transaction PIN for the current session.
func (h *Handler) SetPIN(c *fiber.Ctx) error {
	var req setPINRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(http.StatusBadRequest, err.Error())
	}
	handle, _ := c.Locals("session_id").(string)
	if err := h.service.SetPIN(c.UserContext(), handle, req.PIN); err != nil {
		return fiber.NewError(http.StatusBadRequest, err.Error())
	}
	return c.Status(http.StatusOK).JSON(fiber.Map{"status": "pin_set"})
}
