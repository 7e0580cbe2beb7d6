// Package auth bridges gateway sessions to the backend account API. The
// backend owns credentials; the gateway only keeps the issued token.
package auth

import (
	"context"
	"errors"

	"github.com/google/uuid"

	"github.com/topup-pay/topup_pay/internal/session"
	"github.com/topup-pay/topup_pay/internal/upstream"
)

// ErrLoginRejected indicates the backend issued no usable token.
var ErrLoginRejected = errors.New("login rejected by backend")

// Authenticator is the slice of the backend client used for accounts.
type Authenticator interface {
	Login(ctx context.Context, username, password string) (upstream.LoginResult, error)
	Register(ctx context.Context, input upstream.RegisterInput) error
	RequestPasswordReset(ctx context.Context, email string) error
	ResetPassword(ctx context.Context, input upstream.ResetPasswordInput) error
}

// Service manages the session lifecycle around backend authentication.
type Service struct {
	backend  Authenticator
	sessions session.Store
}

// NewService builds an auth service.
func NewService(backend Authenticator, sessions session.Store) *Service {
	return &Service{backend: backend, sessions: sessions}
}

// LoginResult carries the gateway session issued on successful login.
type LoginResult struct {
	SessionID string
	LoggedIn  bool
}

// Login exchanges credentials for a backend token and registers a session
// for it. The raw token never leaves the gateway.
func (s *Service) Login(ctx context.Context, username, password string) (LoginResult, error) {
	result, err := s.backend.Login(ctx, username, password)
	if err != nil {
		return LoginResult{}, err
	}
	if result.AccessToken == "" {
		return LoginResult{}, ErrLoginRejected
	}

	handle := uuid.NewString()
	if err := s.sessions.Set(ctx, handle, result.AccessToken); err != nil {
		return LoginResult{}, err
	}
	return LoginResult{SessionID: handle, LoggedIn: result.LoggedIn}, nil
}

// Logout ends the session. The backend token is discarded with it.
func (s *Service) Logout(ctx context.Context, handle string) error {
	return s.sessions.Clear(ctx, handle)
}

// Register opens a backend account.
func (s *Service) Register(ctx context.Context, input upstream.RegisterInput) error {
	return s.backend.Register(ctx, input)
}

// RequestPasswordReset starts a backend password reset.
func (s *Service) RequestPasswordReset(ctx context.Context, email string) error {
	return s.backend.RequestPasswordReset(ctx, email)
}

// ResetPassword completes a backend password reset.
func (s *Service) ResetPassword(ctx context.Context, input upstream.ResetPasswordInput) error {
	return s.backend.ResetPassword(ctx, input)
}

// SetPIN stores the transaction PIN for the session.
func (s *Service) SetPIN(ctx context.Context, handle, pin string) error {
	return s.sessions.SetPIN(ctx, handle, pin)
}
