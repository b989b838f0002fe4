// Package client talks to the marketplace REST API.
//
// # Overview
//
// Client is the transport-agnostic contract the console depends on;
// HTTPClient implements it over net/http. Every request carries a fresh
// X-Request-Id, and privileged requests carry the bearer token of the
// current Session, obtained from a TokenSource on each call.
//
// # Error Handling
//
// Failures are mapped onto a small taxonomy callers match with errors.Is
// and errors.As:
//
//   - ErrUnauthorized: the API answered 401 to a privileged request. The
//     configured unauthorized hook has already run (it clears the session).
//   - *APIError: any other non-2xx status, with the server's message.
//   - ErrUnavailable: no response at all (DNS, refused, reset, timeout).
//   - ErrMalformedResponse: 2xx with a body that is not what was expected.
//
// List endpoints are lenient: a bare array or an object wrapping the array
// under a known key is accepted, and any other shape decodes as empty.
package client
