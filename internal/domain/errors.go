package domain

import "errors"

// Sentinel errors for domain-level error discrimination.
// Services wrap these so handlers can map to HTTP status codes without leaking infrastructure details.
var (
	ErrNotFound     = errors.New("not found")
	ErrConflict     = errors.New("conflict")
	ErrUnauthorized = errors.New("unauthorized")
	ErrForbidden    = errors.New("forbidden")
	ErrBadRequest   = errors.New("bad request")

	// ErrInvalidCredentials covers both an unknown email and a wrong password.
	// The two cases are never distinguished, not even internally, so neither
	// logs nor responses can be used to enumerate accounts.
	ErrInvalidCredentials = errors.New("email or password does not match")

	// ErrInvalidToken covers a bad signature, an expired token, a token with
	// the wrong purpose, and a reset token that was already consumed.
	ErrInvalidToken = errors.New("invalid token")
)
