// Package common contains shared constants and small helpers used by both the
// admin console and the sandbox backend.
package common

const (
	// AuthorizationHeader carries the session token as "Bearer <token>".
	AuthorizationHeader = "Authorization"
	// BearerPrefix precedes the token in AuthorizationHeader.
	BearerPrefix = "Bearer "
	// RequestIDHeader correlates a console request with backend logs.
	RequestIDHeader = "X-Request-Id"
	// ContentTypeJSON is the only body encoding spoken by the backend.
	ContentTypeJSON = "application/json"
)
