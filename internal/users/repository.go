// Package users stores credential records keyed by username.
package users

import "context"

// Repository is the storage contract the auth engine relies on.
//
// CreateIfAbsent must be atomic with respect to concurrent callers on the
// same username: exactly one of N simultaneous inserts wins. Mutations must
// be durable before returning success.
type Repository interface {
	// CreateIfAbsent inserts c only when no record exists for its username
	// and reports whether the insert happened.
	CreateIfAbsent(ctx context.Context, c *Credential) (bool, error)

	// Get returns the record for username, or common.ErrorNotFound.
	Get(ctx context.Context, username string) (*Credential, error)

	// Delete removes the record for username if present and reports whether
	// anything was removed.
	Delete(ctx context.Context, username string) (bool, error)

	// ListNames returns all usernames in sorted order.
	ListNames(ctx context.Context) ([]string, error)
}
