// Package web implements the browser flow for linking Pinterest and Miro and syncing a board.
//
// Routes
//
//	GET  /                          → connection status for both providers
//	GET  /auth/{provider}           → OAuth initiation (state stored in a short-lived cookie)
//	GET  /auth/{provider}/callback  → OAuth completion, token exchange and identity linking
//	GET  /boards                    → board selection form, redirecting to an unconnected provider
//	POST /sync                      → runs the sync for the posted board pair and renders the summary
//
// # State
//
// The identity id travels in a JWT signed session cookie (see [SessionCodec]). Provider tokens are kept
// in httpOnly cookies and handed to the core as explicit arguments. When a token cookie is missing the
// identity record named by the session fills the gap.
//
// POST /sync is session-gated: without a valid session the request is rejected before any provider call.
//
// # Errors
//
// Provider and store failures are mapped to status codes that tell the user whether to log in again (401),
// fix permissions (403), correct the request (400/404) or try later (502/503).
package web
