// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

// Package crypto hashes account passwords and issues opaque random tokens.
package crypto

//go:generate mockgen -source=interfaces.go -destination=../mock/crypto_mock.go -package=mock

// PasswordHasher derives and verifies password hashes. Hashes are
// self-describing strings so parameters can change between deployments
// without invalidating stored accounts.
type PasswordHasher interface {
	// Hash returns the encoded hash of password with a fresh random salt.
	Hash(password string) (string, error)

	// Verify reports whether password matches encoded. A malformed encoded
	// value yields an error.
	Verify(password, encoded string) (bool, error)
}

// TokenGenerator issues unguessable single-use tokens.
type TokenGenerator interface {
	NewToken() (string, error)
}
