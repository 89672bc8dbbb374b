// Package common defines sentinel errors shared across the izin server,
// CLI and engine layers. Callers should use errors.Is to match these values.
package common

import "errors"

var (
	// Repository-level errors.
	ErrorNotFound = errors.New("not found")

	// Registration errors.
	ErrorAlreadyExists = errors.New("already exists")

	// Login failed: unknown user and wrong password are deliberately
	// indistinguishable.
	ErrorInvalidCredentials = errors.New("invalid credentials")

	// Token rejected: malformed, bad signature, expired or revoked.
	ErrorInvalidToken = errors.New("invalid token")

	// Service-level errors (generic/internal flow control).
	ErrorInternal = errors.New("internal error")
)
