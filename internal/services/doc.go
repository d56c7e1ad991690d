// Package services implements the two provider integrations used by boardsync:
// Pinterest as the source of images and Miro as the destination.
//
// # Authorization
//
// Each provider is an [AuthAdapter] built on [OAuthAdapter], which wraps an [oauth2.Config].
// The adapters differ only in endpoint URLs, how client credentials reach the token endpoint
// (Pinterest uses a Basic header, Miro form parameters) and how the remote profile is read.
//
// [OAuthAdapter.Exchange] returns a non-empty access token or an [*AuthExchangeError] whose
// Reason is one of network, status or malformed. Exchanges are never retried.
//
// # API Calls
//
// Every REST call goes through [Client], which takes the bearer token as an explicit argument,
// waits on a per-provider rate limiter and never retries. Non-2xx responses become a
// [*ProviderError] that unwraps to a sentinel from the shared package:
//   - 400: [shared.ErrMalformedRequest]
//   - 401: [shared.ErrUnauthenticated]
//   - 403: [shared.ErrForbidden]
//   - 404: [shared.ErrResourceNotFound]
//   - other: [shared.ErrProviderError]
//   - no response: [shared.ErrProviderUnreachable]
//
// # Pagination
//
// Pinterest pages by bookmark and Miro by offset. Both are followed to the end before
// results are returned, so callers only see complete lists.
package services
