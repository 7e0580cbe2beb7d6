package upstream

import (
	"errors"
	"fmt"
	"net/http"
)

// ErrorKind classifies upstream failures for retry decisions.
type ErrorKind string

const (
	// KindTransport covers DNS, timeout and connection level failures. The
	// request may never have reached the backend, so callers may retry.
	KindTransport ErrorKind = "transport"
	// KindServer covers definitive non-2xx responses. Not retryable.
	KindServer ErrorKind = "server"
	// KindDecode covers structurally invalid response bodies.
	KindDecode ErrorKind = "decode"
)

// Error is the single failure type crossing the upstream client boundary.
type Error struct {
	Kind    ErrorKind
	Status  int
	Message string
}

func (e *Error) Error() string {
	switch e.Kind {
	case KindTransport:
		return fmt.Sprintf("upstream transport failure: %s", e.Message)
	case KindDecode:
		return fmt.Sprintf("upstream response invalid: %s", e.Message)
	default:
		return fmt.Sprintf("upstream rejected request (%d): %s", e.Status, e.Message)
	}
}

// IsTransport reports whether err is an upstream transport failure.
func IsTransport(err error) bool {
	var ue *Error
	return errors.As(err, &ue) && ue.Kind == KindTransport
}

// IsServer reports whether err is a definitive upstream rejection.
func IsServer(err error) bool {
	var ue *Error
	return errors.As(err, &ue) && ue.Kind == KindServer
}

// HTTPStatus maps an upstream failure to the status the gateway relays to
// its own clients. Client-attributable rejections pass through; everything
// else is a bad gateway.
func HTTPStatus(err error) int {
	var ue *Error
	if !errors.As(err, &ue) {
		return http.StatusInternalServerError
	}
	switch ue.Kind {
	case KindTransport, KindDecode:
		return http.StatusBadGateway
	default:
		switch ue.Status {
		case http.StatusBadRequest, http.StatusUnauthorized, http.StatusForbidden, http.StatusNotFound, http.StatusConflict, http.StatusUnprocessableEntity:
			return ue.Status
		default:
			return http.StatusBadGateway
		}
	}
}
