// Package secrets resolves database credentials from a secret store.
package secrets

import (
	"context"
	"errors"
	"fmt"
)

// ErrMalformedSecret is returned when a secret exists but cannot be decoded
// into credentials
var ErrMalformedSecret = errors.New("malformed secret")

// Credentials is the credential bundle needed to open a database connection
type Credentials struct {
	Username     string `json:"username"`
	Password     string `json:"password"`
	DatabaseName string `json:"dbname"`
}

// Validate checks that the bundle names a user and a database
func (c *Credentials) Validate() error {
	if c.Username == "" {
		return fmt.Errorf("%w: missing username", ErrMalformedSecret)
	}
	if c.DatabaseName == "" {
		return fmt.Errorf("%w: missing dbname", ErrMalformedSecret)
	}
	return nil
}

// Resolver fetches credentials for a secret identifier in a region
type Resolver interface {
	Resolve(ctx context.Context, secretID, region string) (*Credentials, error)
}

// CredentialResolutionError is returned when credentials cannot be obtained
type CredentialResolutionError struct {
	SecretID string
	Region   string
	Err      error
}

// Error implements the error interface
func (e *CredentialResolutionError) Error() string {
	return fmt.Sprintf("failed to resolve secret %q in %s: %v", e.SecretID, e.Region, e.Err)
}

// Unwrap returns the underlying error
func (e *CredentialResolutionError) Unwrap() error {
	return e.Err
}

// IsCredentialResolutionError reports whether err is or wraps a *CredentialResolutionError
func IsCredentialResolutionError(err error) bool {
	var credErr *CredentialResolutionError
	return errors.As(err, &credErr)
}

// StaticResolver returns a fixed credential bundle. It backs local runs
// where credentials come from the environment instead of a secret store.
type StaticResolver struct {
	credentials Credentials
}

// NewStaticResolver creates a resolver that always returns creds
func NewStaticResolver(creds Credentials) *StaticResolver {
	return &StaticResolver{credentials: creds}
}

// Resolve returns a copy of the configured credentials
func (r *StaticResolver) Resolve(ctx context.Context, secretID, region string) (*Credentials, error) {
	if err := ctx.Err(); err != nil {
		return nil, &CredentialResolutionError{SecretID: secretID, Region: region, Err: err}
	}
	creds := r.credentials
	return &creds, nil
}
