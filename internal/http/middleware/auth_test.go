package middleware_test

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/zapshift/parcel-service/internal/domain"
	"github.com/zapshift/parcel-service/internal/http/middleware"
	"github.com/zapshift/parcel-service/internal/logx"
)

type stubVerifier struct {
	email string
	err   error
}

func (s stubVerifier) Verify(context.Context, string) (string, error) {
	return s.email, s.err
}

type stubRoles struct {
	role domain.Role
	err  error
}

func (s stubRoles) RoleByEmail(context.Context, string) (domain.Role, error) {
	return s.role, s.err
}

func okHandler(captured *string) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if captured != nil {
			email, _ := middleware.CallerEmail(r.Context())
			*captured = email
		}
		w.WriteHeader(http.StatusOK)
	})
}

func TestAuthenticate_AttachesEmail(t *testing.T) {
	t.Parallel()

	var seen string
	h := middleware.Authenticate(logx.Nop(), stubVerifier{email: "dana@example.com"})(okHandler(&seen))

	req := httptest.NewRequest(http.MethodGet, "/payments", nil)
	req.Header.Set("Authorization", "Bearer tok-1")
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	require.Equal(t, "dana@example.com", seen)
}

func TestAuthenticate_MissingHeader(t *testing.T) {
	t.Parallel()

	h := middleware.Authenticate(logx.Nop(), stubVerifier{email: "dana@example.com"})(okHandler(nil))

	for _, header := range []string{"", "Basic abc", "Bearer ", "Bearer    "} {
		req := httptest.NewRequest(http.MethodGet, "/payments", nil)
		if header != "" {
			req.Header.Set("Authorization", header)
		}
		rec := httptest.NewRecorder()
		h.ServeHTTP(rec, req)

		require.Equal(t, http.StatusUnauthorized, rec.Code, "header %q", header)
		require.JSONEq(t, `{"error":"missing bearer token"}`, rec.Body.String())
	}
}

func TestAuthenticate_InvalidToken(t *testing.T) {
	t.Parallel()

	h := middleware.Authenticate(logx.Nop(), stubVerifier{err: errors.New("bad signature")})(okHandler(nil))

	req := httptest.NewRequest(http.MethodGet, "/payments", nil)
	req.Header.Set("Authorization", "Bearer tok-1")
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)

	require.Equal(t, http.StatusUnauthorized, rec.Code)
	require.JSONEq(t, `{"error":"invalid token"}`, rec.Body.String())
}

func TestRequireAdmin_AllowsAdmin(t *testing.T) {
	t.Parallel()

	h := middleware.RequireAdmin(logx.Nop(), stubRoles{role: domain.RoleAdmin})(okHandler(nil))

	req := httptest.NewRequest(http.MethodPatch, "/riders/1", nil)
	req = req.WithContext(middleware.WithCallerEmail(req.Context(), "admin@example.com"))
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
}

func TestRequireAdmin_RejectsNonAdmin(t *testing.T) {
	t.Parallel()

	h := middleware.RequireAdmin(logx.Nop(), stubRoles{role: domain.RoleUser})(okHandler(nil))

	req := httptest.NewRequest(http.MethodPatch, "/riders/1", nil)
	req = req.WithContext(middleware.WithCallerEmail(req.Context(), "user@example.com"))
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)

	require.Equal(t, http.StatusForbidden, rec.Code)
	require.JSONEq(t, `{"error":"admin only"}`, rec.Body.String())
}

func TestRequireAdmin_WithoutAuthenticate(t *testing.T) {
	t.Parallel()

	h := middleware.RequireAdmin(logx.Nop(), stubRoles{role: domain.RoleAdmin})(okHandler(nil))

	req := httptest.NewRequest(http.MethodPatch, "/riders/1", nil)
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)

	require.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestRequireAdmin_ResolverFault(t *testing.T) {
	t.Parallel()

	h := middleware.RequireAdmin(logx.Nop(), stubRoles{err: errors.New("db down")})(okHandler(nil))

	req := httptest.NewRequest(http.MethodPatch, "/riders/1", nil)
	req = req.WithContext(middleware.WithCallerEmail(req.Context(), "admin@example.com"))
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)

	require.Equal(t, http.StatusInternalServerError, rec.Code)
}
