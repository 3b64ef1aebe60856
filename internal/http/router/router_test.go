package router_test

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/zapshift/parcel-service/internal/http/handlers"
	"github.com/zapshift/parcel-service/internal/http/router"
	"github.com/zapshift/parcel-service/internal/logx"
)

func newTestRouter() http.Handler {
	logger := logx.Nop()
	return router.New(router.Deps{
		Logger:   logger,
		Base:     handlers.New(logger),
		Parcels:  &handlers.ParcelHandlers{},
		Payments: &handlers.PaymentHandlers{},
		Accounts: &handlers.AccountHandlers{},
		Riders:   &handlers.RiderHandlers{},
	})
}

func TestRoot_Liveness(t *testing.T) {
	t.Parallel()

	h := newTestRouter()

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	require.Contains(t, rec.Body.String(), "running")
}

func TestHealthcheck_Head(t *testing.T) {
	t.Parallel()

	h := newTestRouter()

	req := httptest.NewRequest(http.MethodHead, "/healthcheck", nil)
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)

	require.Equal(t, http.StatusNoContent, rec.Code)
}

func TestMetrics_Exposed(t *testing.T) {
	t.Parallel()

	h := newTestRouter()

	req := httptest.NewRequest(http.MethodGet, "/metrics", nil)
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
}

func TestNotFound_JSON(t *testing.T) {
	t.Parallel()

	h := newTestRouter()

	req := httptest.NewRequest(http.MethodGet, "/no-such-route", nil)
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)

	require.Equal(t, http.StatusNotFound, rec.Code)
	require.JSONEq(t, `{"error":"route not found"}`, rec.Body.String())
}
