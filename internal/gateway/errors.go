package gateway

import (
	"errors"
	"fmt"
)

var (
	// ErrNotSupported is returned by operations the simulated gateway does
	// not implement.
	ErrNotSupported = errors.New("operation is not supported in mock mode")

	// ErrProviderMismatch is the sentinel behind *AccountProviderMismatch.
	ErrProviderMismatch = errors.New("account is bound to a different sign-in provider")

	// ErrNoAssertion is returned when the identity provider has no pending
	// assertion.
	ErrNoAssertion = errors.New("no federated assertion was provided")
)

// AuthError is a rejection by the identity directory or a failure to reach it.
type AuthError struct {
	Op  string
	Err error
}

func (e *AuthError) Error() string {
	return fmt.Sprintf("auth %s: %v", e.Op, e.Err)
}

func (e *AuthError) Unwrap() error {
	return e.Err
}

// AccountProviderMismatch reports a password operation on an email that is
// bound only to a federated provider. CanResetPassword tells the screen it
// may offer a reset email, which adds the password method.
type AccountProviderMismatch struct {
	Email            string
	CanResetPassword bool
}

func (e *AccountProviderMismatch) Error() string {
	return fmt.Sprintf("%s: %s", ErrProviderMismatch, e.Email)
}

func (e *AccountProviderMismatch) Unwrap() error {
	return ErrProviderMismatch
}

// PersistenceError is a failed read or write of the document store.
type PersistenceError struct {
	Op  string
	Err error
}

func (e *PersistenceError) Error() string {
	return fmt.Sprintf("store %s: %v", e.Op, e.Err)
}

func (e *PersistenceError) Unwrap() error {
	return e.Err
}
