package handlers

import (
	"net/http"
	"strings"

	"github.com/zapshift/parcel-service/internal/domain"
	"github.com/zapshift/parcel-service/internal/logx"
)

// ParcelHandlers serves the parcel CRUD endpoints.
type ParcelHandlers struct {
	logger  logx.Logger
	parcels parcelUsecase
}

// NewParcelHandlers creates parcel HTTP handlers.
func NewParcelHandlers(logger logx.Logger, parcels parcelUsecase) *ParcelHandlers {
	return &ParcelHandlers{logger: logger, parcels: parcels}
}

// List handles GET /parcels with optional email and deliveryStatus filters.
func (h *ParcelHandlers) List(w http.ResponseWriter, r *http.Request) {
	var filter domain.ParcelFilter
	if email := strings.TrimSpace(r.URL.Query().Get("email")); email != "" {
		email = strings.ToLower(email)
		filter.SenderEmail = &email
	}
	if raw := strings.TrimSpace(r.URL.Query().Get("deliveryStatus")); raw != "" {
		status := domain.DeliveryStatus(raw)
		filter.DeliveryStatus = &status
	}

	parcels, err := h.parcels.List(r.Context(), filter)
	if err != nil {
		writeDomainError(h.logger, w, r, err)
		return
	}
	writeJSON(h.logger, w, r, http.StatusOK, toParcelDTOs(parcels))
}

// Get handles GET /parcels/{id}.
func (h *ParcelHandlers) Get(w http.ResponseWriter, r *http.Request) {
	id, err := idFromURL(r, "id")
	if err != nil {
		writeError(h.logger, w, r, http.StatusBadRequest, "invalid parcel id")
		return
	}

	parcel, err := h.parcels.Get(r.Context(), id)
	if err != nil {
		writeDomainError(h.logger, w, r, err)
		return
	}
	writeJSON(h.logger, w, r, http.StatusOK, toParcelDTO(*parcel))
}

// Create handles POST /parcels.
func (h *ParcelHandlers) Create(w http.ResponseWriter, r *http.Request) {
	var req createParcelRequest
	if err := decodeJSON(w, r, &req); err != nil {
		writeError(h.logger, w, r, http.StatusBadRequest, "invalid request body")
		return
	}

	parcel := domain.Parcel{
		Name:        req.ParcelName,
		SenderEmail: req.SenderEmail,
		CostCents:   req.CostCents,
	}
	id, err := h.parcels.Create(r.Context(), &parcel)
	if err != nil {
		writeDomainError(h.logger, w, r, err)
		return
	}
	writeJSON(h.logger, w, r, http.StatusCreated, createdResponse{ID: id})
}

// Delete handles DELETE /parcels/{id}. Deleting a missing parcel reports a
// zero count rather than an error.
func (h *ParcelHandlers) Delete(w http.ResponseWriter, r *http.Request) {
	id, err := idFromURL(r, "id")
	if err != nil {
		writeError(h.logger, w, r, http.StatusBadRequest, "invalid parcel id")
		return
	}

	count, err := h.parcels.Delete(r.Context(), id)
	if err != nil {
		writeDomainError(h.logger, w, r, err)
		return
	}
	writeJSON(h.logger, w, r, http.StatusOK, deletedResponse{DeletedCount: count})
}
