// Package client is the console's REST transport.
//
// HTTPClient builds JSON requests against the backend and hands each of them
// to the Pipeline, which owns credential handling:
//
//   - outbound, the session token is read from the session store, checked
//     for expiry and attached as a bearer credential. An expired or
//     undecodable token ends the session and fails the call before it
//     reaches the network;
//   - inbound, failures are mapped to sentinel errors and user-visible
//     notifications. A 401 on a request that carried the session token ends
//     the session.
//
// Requests can opt out of the session credential with WithBearer (explicit
// token, used while logging in) or Anonymous (no credential).
//
// # Errors
//
// Network failures wrap ErrUnavailable (ErrTimeout for timeouts). HTTP
// failures are *APIError values that unwrap to ErrSessionExpired,
// ErrUnauthorized, ErrForbidden, ErrNotFound, ErrValidation, ErrRateLimited,
// ErrServer or ErrUnexpected. Side effects happen before the error is
// returned, so every caller observes the same session state.
package client
