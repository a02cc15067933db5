package driven

import (
	"context"
	"errors"
)

// ErrEncryptionKeyNotSet is returned by CredentialStore operations when
// NOTECLIP_SECRET_KEY has not been configured.
var ErrEncryptionKeyNotSet = errors.New("encryption key not configured: set NOTECLIP_SECRET_KEY")

// CredentialStore defines the driven port for encrypted credential
// persistence. The adapter layer owns encryption/decryption; this interface
// operates on plaintext values at the domain boundary.
type CredentialStore interface {
	// Set stores or replaces the named credential with the provided plaintext
	// value. Returns ErrEncryptionKeyNotSet if the adapter was constructed
	// without an encryption key.
	Set(ctx context.Context, name, plaintext string) error

	// Get retrieves the named plaintext credential.
	// Returns ("", nil) if no such credential exists.
	// Returns ErrEncryptionKeyNotSet if the adapter was constructed without an encryption key.
	Get(ctx context.Context, name string) (string, error)

	// Delete removes the named credential.
	Delete(ctx context.Context, name string) error
}
