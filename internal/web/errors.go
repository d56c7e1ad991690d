package web

import (
	"errors"
	"net/http"

	"github.com/desertthunder/boardsync/internal/services"
	"github.com/desertthunder/boardsync/internal/shared"
)

// errorResponse maps an error onto an HTTP status and a message the user can act on.
func errorResponse(err error) (int, string) {
	switch {
	case errors.Is(err, shared.ErrMissingCredential), errors.Is(err, shared.ErrUnauthenticated):
		return http.StatusUnauthorized, "Your session with the provider is missing or expired. Log in again."
	case errors.Is(err, shared.ErrForbidden):
		return http.StatusForbidden, "Permission denied by the provider. Check the access you granted to boardsync."
	case errors.Is(err, shared.ErrInvalidState):
		return http.StatusBadRequest, "The authorization request expired or was tampered with. Start again."
	case errors.Is(err, shared.ErrResourceNotFound):
		return http.StatusNotFound, "The board was not found. It may have been deleted or made private."
	case errors.Is(err, services.ErrUnknownProvider):
		return http.StatusNotFound, "boardsync does not connect to that provider. Use the Pinterest or Miro links on the home page."
	case errors.Is(err, shared.ErrMalformedRequest), errors.Is(err, shared.ErrMissingArgument), errors.Is(err, shared.ErrInvalidArgument):
		return http.StatusBadRequest, "The request was not valid. Choose both boards and try again."
	case errors.Is(err, shared.ErrAuthExchangeFailed),
		errors.Is(err, shared.ErrProviderUnreachable),
		errors.Is(err, shared.ErrProviderError),
		errors.Is(err, shared.ErrMalformedResponse):
		return http.StatusBadGateway, "The provider could not be reached or returned an error. Try again later."
	case errors.Is(err, shared.ErrStoreUnavailable):
		return http.StatusServiceUnavailable, "boardsync is temporarily unavailable. Try again later."
	default:
		return http.StatusInternalServerError, "Something went wrong."
	}
}

// providerOf returns the provider named by a classified error, or "".
func providerOf(err error) string {
	var pe *services.ProviderError
	if errors.As(err, &pe) {
		return pe.Provider
	}
	var mc *shared.MissingCredentialError
	if errors.As(err, &mc) {
		return mc.Provider
	}
	var ae *services.AuthExchangeError
	if errors.As(err, &ae) {
		return ae.Provider
	}
	return ""
}
