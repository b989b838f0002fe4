package handler

import (
	"context"
	"net/http"
	"time"

	"github.com/dmitrijs2005/forsa-manager/internal/common"
	"github.com/dmitrijs2005/forsa-manager/internal/logging"
	"github.com/dmitrijs2005/forsa-manager/internal/sandbox/auth"
	"github.com/google/uuid"
)

type ctxKey int

const claimsKey ctxKey = iota

// ClaimsFrom returns the verified token claims of an authenticated request.
func ClaimsFrom(ctx context.Context) (*auth.Claims, bool) {
	c, ok := ctx.Value(claimsKey).(*auth.Claims)
	return c, ok
}

// RequestID echoes the caller's X-Request-Id, or assigns one.
func RequestID(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		rid := r.Header.Get(common.RequestIDHeader)
		if rid == "" {
			rid = uuid.NewString()
			r.Header.Set(common.RequestIDHeader, rid)
		}
		w.Header().Set(common.RequestIDHeader, rid)
		next.ServeHTTP(w, r)
	})
}

// statusWriter captures the status and size of a response.
type statusWriter struct {
	http.ResponseWriter
	status int
	count  int
}

func (w *statusWriter) WriteHeader(code int) {
	w.status = code
	w.ResponseWriter.WriteHeader(code)
}

func (w *statusWriter) Write(p []byte) (int, error) {
	if w.status == 0 {
		w.status = http.StatusOK
	}
	n, err := w.ResponseWriter.Write(p)
	w.count += n
	return n, err
}

func Logging(log logging.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			sw := &statusWriter{ResponseWriter: w}
			start := time.Now()
			next.ServeHTTP(sw, r)

			log.Info(r.Context(), "http",
				"request_id", r.Header.Get(common.RequestIDHeader),
				"method", r.Method,
				"path", r.URL.Path,
				"status", sw.status,
				"dur", time.Since(start),
				"bytes", sw.count,
			)
		})
	}
}

// Authenticate rejects requests without a valid bearer token with 401 and
// stores the token claims in the request context.
func Authenticate(secret []byte) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			token := common.BearerToken(r.Header.Get(common.AuthorizationHeader))
			if token == "" {
				writeError(w, http.StatusUnauthorized, "Authorization token is required")
				return
			}
			claims, err := auth.ParseToken(token, secret)
			if err != nil {
				writeError(w, http.StatusUnauthorized, "Invalid or expired token")
				return
			}
			next.ServeHTTP(w, r.WithContext(context.WithValue(r.Context(), claimsKey, claims)))
		})
	}
}

// RequireAdmin lets only tokens issued to administrators through.
func RequireAdmin(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if c, ok := ClaimsFrom(r.Context()); !ok || !c.IsAdmin {
			writeError(w, http.StatusForbidden, "Admin access required")
			return
		}
		next.ServeHTTP(w, r)
	})
}
