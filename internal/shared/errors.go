package shared

import (
	"errors"
	"fmt"
)

var (
	ErrNotImplemented = fmt.Errorf("not implemented")

	// Configuration errors
	ErrMissingConfig = fmt.Errorf("configuration not found")
	ErrInvalidConfig = fmt.Errorf("invalid configuration")

	// Authentication errors
	ErrAuthExchangeFailed = fmt.Errorf("authorization code exchange failed")
	ErrMissingCredential  = fmt.Errorf("missing credential")
	ErrUnauthenticated    = fmt.Errorf("provider rejected credential")
	ErrForbidden          = fmt.Errorf("provider denied permission")
	ErrInvalidState       = fmt.Errorf("invalid oauth state")
	ErrTimeout            = fmt.Errorf("operation timed out")

	// Provider API errors
	ErrMalformedRequest    = fmt.Errorf("malformed request")
	ErrResourceNotFound    = fmt.Errorf("resource not found")
	ErrProviderError       = fmt.Errorf("provider error")
	ErrProviderUnreachable = fmt.Errorf("provider unreachable")
	ErrMalformedResponse   = fmt.Errorf("malformed provider response")

	// Identity store errors
	ErrStoreUnavailable = fmt.Errorf("identity store unavailable")
	ErrIdentityNotFound = fmt.Errorf("identity not found")

	// Sync errors
	ErrSourceFetchFailed = fmt.Errorf("source item fetch failed")

	// Input validation errors
	ErrMissingArgument = fmt.Errorf("missing required argument")
	ErrInvalidArgument = fmt.Errorf("invalid argument")
)

// MissingCredentialError reports that no token was supplied for a provider.
type MissingCredentialError struct {
	Provider string
}

func (e *MissingCredentialError) Error() string {
	return fmt.Sprintf("%v for %s", ErrMissingCredential, e.Provider)
}

func (e *MissingCredentialError) Unwrap() error {
	return ErrMissingCredential
}

// NeedsReauthorization reports whether err means the user has to run the OAuth flow again.
func NeedsReauthorization(err error) bool {
	return errors.Is(err, ErrUnauthenticated) || errors.Is(err, ErrMissingCredential)
}
