package middleware

import (
	"context"
	"io"
	"net/http"
	"strings"

	"github.com/zapshift/parcel-service/internal/domain"
	"github.com/zapshift/parcel-service/internal/logx"
)

type ctxKey int

const callerEmailKey ctxKey = iota

// Verifier resolves a bearer credential to a verified email.
type Verifier interface {
	Verify(ctx context.Context, token string) (string, error)
}

// RoleResolver looks up the role behind a verified email.
type RoleResolver interface {
	RoleByEmail(ctx context.Context, email string) (domain.Role, error)
}

// CallerEmail returns the verified email attached by Authenticate.
func CallerEmail(ctx context.Context) (string, bool) {
	email, ok := ctx.Value(callerEmailKey).(string)
	return email, ok && email != ""
}

// WithCallerEmail attaches a verified email to the context. Exposed for tests
// and for composing handlers outside the middleware chain.
func WithCallerEmail(ctx context.Context, email string) context.Context {
	return context.WithValue(ctx, callerEmailKey, email)
}

// Authenticate requires a bearer credential, verifies it and attaches the
// verified email to the request context. Rejects with 401 before any handler
// logic runs.
func Authenticate(logger logx.Logger, verifier Verifier) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			header := r.Header.Get("Authorization")
			if header == "" || !strings.HasPrefix(header, "Bearer ") {
				reject(logger, w, r, http.StatusUnauthorized, "missing bearer token")
				return
			}
			token := strings.TrimSpace(strings.TrimPrefix(header, "Bearer "))
			if token == "" {
				reject(logger, w, r, http.StatusUnauthorized, "missing bearer token")
				return
			}

			email, err := verifier.Verify(r.Context(), token)
			if err != nil {
				reject(logger, w, r, http.StatusUnauthorized, "invalid token")
				return
			}

			next.ServeHTTP(w, r.WithContext(WithCallerEmail(r.Context(), email)))
		})
	}
}

// RequireAdmin rejects callers whose account role is not admin. Must run
// after Authenticate.
func RequireAdmin(logger logx.Logger, roles RoleResolver) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			email, ok := CallerEmail(r.Context())
			if !ok {
				reject(logger, w, r, http.StatusUnauthorized, "missing bearer token")
				return
			}

			role, err := roles.RoleByEmail(r.Context(), email)
			if err != nil {
				reject(logger, w, r, http.StatusInternalServerError, "internal error")
				return
			}
			if role != domain.RoleAdmin {
				reject(logger, w, r, http.StatusForbidden, "admin only")
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}

func reject(logger logx.Logger, w http.ResponseWriter, r *http.Request, status int, msg string) {
	logger.Warn("request rejected",
		logx.String("method", r.Method),
		logx.String("path", r.URL.Path),
		logx.Int("status", status),
		logx.String("reason", msg),
	)
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if _, err := io.WriteString(w, `{"error":"`+msg+`"}`); err != nil {
		logger.Debug("reject response write failed", logx.Err(err))
	}
}
