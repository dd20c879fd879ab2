package adapter

import "errors"

var (
	ErrBadRequest          = errors.New("bad request")
	ErrUnauthorized        = errors.New("client unauthorized")
	ErrForbidden           = errors.New("forbidden")
	ErrNotFound            = errors.New("not found")
	ErrConflict            = errors.New("conflict")
	ErrBadGateway          = errors.New("bad gateway")
	ErrInternalServerError = errors.New("internal server error")
	ErrServiceUnavailable  = errors.New("service unavailable")

	// ErrProviderMismatch is a 409 whose body names a provider mismatch:
	// the email belongs to a federated-only account.
	ErrProviderMismatch = errors.New("provider mismatch")

	ErrInvalidAddress = errors.New("invalid adapter http address")
)
