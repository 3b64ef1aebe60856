package handlers

import (
	"net/http"
	"strings"

	"github.com/zapshift/parcel-service/internal/http/middleware"
	"github.com/zapshift/parcel-service/internal/logx"
)

// PaymentHandlers serves checkout and payment endpoints.
type PaymentHandlers struct {
	logger   logx.Logger
	payments paymentUsecase
}

// NewPaymentHandlers creates payment HTTP handlers.
func NewPaymentHandlers(logger logx.Logger, payments paymentUsecase) *PaymentHandlers {
	return &PaymentHandlers{logger: logger, payments: payments}
}

// CreateCheckoutSession handles POST /create-checkout-session and
// returns the hosted checkout URL for the parcel.
func (h *PaymentHandlers) CreateCheckoutSession(w http.ResponseWriter, r *http.Request) {
	var req createCheckoutRequest
	if err := decodeJSON(w, r, &req); err != nil {
		writeError(h.logger, w, r, http.StatusBadRequest, "invalid request body")
		return
	}
	if req.ParcelID <= 0 {
		writeError(h.logger, w, r, http.StatusBadRequest, "parcelId is required")
		return
	}

	url, err := h.payments.CreateCheckout(r.Context(), req.ParcelID)
	if err != nil {
		writeDomainError(h.logger, w, r, err)
		return
	}
	writeJSON(h.logger, w, r, http.StatusOK, checkoutSessionResponse{URL: url})
}

// Confirm handles PATCH /payment-success?session_id=... and records
// the payment exactly once per provider transaction.
func (h *PaymentHandlers) Confirm(w http.ResponseWriter, r *http.Request) {
	sessionID := strings.TrimSpace(r.URL.Query().Get("session_id"))
	if sessionID == "" {
		writeError(h.logger, w, r, http.StatusBadRequest, "session_id is required")
		return
	}

	res, err := h.payments.Confirm(r.Context(), sessionID)
	if err != nil {
		writeDomainError(h.logger, w, r, err)
		return
	}
	writeJSON(h.logger, w, r, http.StatusOK, confirmPaymentResponse{
		Success:          res.Success,
		AlreadyProcessed: res.AlreadyProcessed,
		TransactionID:    res.TransactionID,
		TrackingID:       res.TrackingID,
		ModifiedCount:    res.MatchedParcels,
		Message:          res.Message,
	})
}

// List handles GET /payments?email=... and returns the caller's payment
// history. The email must match the authenticated caller.
func (h *PaymentHandlers) List(w http.ResponseWriter, r *http.Request) {
	email := strings.ToLower(strings.TrimSpace(r.URL.Query().Get("email")))
	if email == "" {
		writeError(h.logger, w, r, http.StatusBadRequest, "email is required")
		return
	}
	caller, ok := middleware.CallerEmail(r.Context())
	if !ok || caller != email {
		writeError(h.logger, w, r, http.StatusForbidden, "forbidden access")
		return
	}

	payments, err := h.payments.ListByEmail(r.Context(), email)
	if err != nil {
		writeDomainError(h.logger, w, r, err)
		return
	}
	writeJSON(h.logger, w, r, http.StatusOK, toPaymentDTOs(payments))
}
