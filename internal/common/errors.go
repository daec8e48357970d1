// Package common defines shared constants and sentinel errors used across
// client and server layers. Callers should use errors.Is to match these
// values and KindOf to classify them at a transport boundary.
package common

import (
	"errors"
	"fmt"
)

var (
	// Repository-level errors.
	ErrorNotFound = errors.New("not found")

	// Input errors, correctable by the caller.
	ErrorValidation = errors.New("validation error")

	// ErrorInvalidCredentials is returned both for an unknown usuario and for
	// a wrong password, so a caller cannot tell which one happened.
	ErrorInvalidCredentials = errors.New("invalid credentials")

	// ErrorUnauthorized means no token was presented at all.
	ErrorUnauthorized = errors.New("unauthorized")

	// ErrInvalidToken covers malformed, tampered and wrongly signed tokens.
	ErrInvalidToken = errors.New("invalid token")

	// ErrTokenExpired is an ErrInvalidToken kept apart for logging.
	ErrTokenExpired = fmt.Errorf("%w: expired", ErrInvalidToken)

	// Infrastructure failures not attributable to the caller.
	ErrorInternal = errors.New("internal error")

	ErrorRateLimited = errors.New("rate limit exceeded")
)

// Kind is the error class exposed to clients.
type Kind int

const (
	KindServer Kind = iota
	KindValidation
	KindAuth
	KindNotFound
	KindRateLimited
)

func (k Kind) String() string {
	switch k {
	case KindValidation:
		return "validation"
	case KindAuth:
		return "auth"
	case KindNotFound:
		return "not_found"
	case KindRateLimited:
		return "rate_limited"
	default:
		return "server"
	}
}

// KindOf classifies err. Anything not recognised is a server error, so an
// unmapped failure never leaks as a client error.
func KindOf(err error) Kind {
	switch {
	case errors.Is(err, ErrorValidation):
		return KindValidation
	case errors.Is(err, ErrorInvalidCredentials),
		errors.Is(err, ErrorUnauthorized),
		errors.Is(err, ErrInvalidToken):
		return KindAuth
	case errors.Is(err, ErrorNotFound):
		return KindNotFound
	case errors.Is(err, ErrorRateLimited):
		return KindRateLimited
	default:
		return KindServer
	}
}

// PublicMessage returns the static message sent to clients for err.
func PublicMessage(err error) string {
	switch {
	case errors.Is(err, ErrorValidation):
		return "usuario and password are required"
	case errors.Is(err, ErrorInvalidCredentials):
		return "invalid credentials"
	case errors.Is(err, ErrorUnauthorized):
		return "unauthorized"
	case errors.Is(err, ErrInvalidToken):
		return "invalid token"
	case errors.Is(err, ErrorNotFound):
		return "account not found"
	case errors.Is(err, ErrorRateLimited):
		return "rate limit exceeded"
	default:
		return "internal error"
	}
}
