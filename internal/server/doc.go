// Package server provides HTTP routing, middleware, and the OAuth callback handler shared by the CLI and web interfaces.
//
// # Router Infrastructure
//
// The [Router] interface defines HTTP routing with middleware support.
//
// [Middleware] wraps handlers in reverse order (last added executes first), following the standard Go pattern.
// [Logging] and [Recover] are the stock middleware.
//
// The [BasicRouter] implementation registers method-qualified patterns on [http.ServeMux].
//
// # OAuth Callback Handler
//
// OAuthHandler implements the redirect leg of the OAuth2 authorization code flow for the CLI.
//
// The handler validates the state parameter (CSRF protection), exchanges the authorization code through
// an [Exchanger], and sends the result through a channel.
//
// It only processes one callback to prevent replay attacks.
//
// When the user runs `boardsync auth pinterest` or `boardsync auth miro`, a temporary HTTP server starts
// on the configured host and port, handles the callback, and shuts down after receiving the token.
//
// # Handler Interface
//
// Custom handlers implement the [Handler] interface, which wraps the stdlib handler interface and adds routes,
// allowing handlers to register multiple routes to encapsulate route definitions within the implementation.
package server
