// Package session persists the bearer credential issued by the backend,
// keyed by an opaque session handle the gateway hands to its clients.
package session

import (
	"context"
	"errors"

	"golang.org/x/crypto/bcrypt"
)

var (
	// ErrNotFound indicates the handle has no live session.
	ErrNotFound = errors.New("session not found")

	// ErrPINNotSet indicates the session has no transaction PIN yet.
	ErrPINNotSet = errors.New("transaction PIN not set")

	// ErrPINMismatch indicates the supplied PIN does not match.
	ErrPINMismatch = errors.New("transaction PIN mismatch")
)

// Session binds a backend token to a gateway session handle. PINHash guards
// money movement and is only ever stored hashed.
type Session struct {
	Token   string `json:"token"`
	PINHash []byte `json:"pin_hash,omitempty"`
}

// Store is the durable session registry. Only login and logout write the
// token; reads happen on every authenticated request.
type Store interface {
	Set(ctx context.Context, handle, token string) error
	Get(ctx context.Context, handle string) (Session, error)
	Clear(ctx context.Context, handle string) error
	SetPIN(ctx context.Context, handle, pin string) error
	VerifyPIN(ctx context.Context, handle, pin string) error
}

func hashPIN(pin string) ([]byte, error) {
	if len(pin) < 4 {
		return nil, errors.New("PIN must be at least 4 digits")
	}
	return bcrypt.GenerateFromPassword([]byte(pin), bcrypt.DefaultCost)
}

func comparePIN(hash []byte, pin string) error {
	if len(hash) == 0 {
		return ErrPINNotSet
	}
	if err := bcrypt.CompareHashAndPassword(hash, []byte(pin)); err != nil {
		return ErrPINMismatch
	}
	return nil
}
