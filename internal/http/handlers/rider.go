package handlers

import (
	"net/http"
	"strings"

	"github.com/zapshift/parcel-service/internal/domain"
	"github.com/zapshift/parcel-service/internal/logx"
)

// RiderHandlers serves the rider onboarding endpoints.
type RiderHandlers struct {
	logger logx.Logger
	riders riderUsecase
}

// NewRiderHandlers creates rider HTTP handlers.
func NewRiderHandlers(logger logx.Logger, riders riderUsecase) *RiderHandlers {
	return &RiderHandlers{logger: logger, riders: riders}
}

// Apply handles POST /riders and records a pending application.
func (h *RiderHandlers) Apply(w http.ResponseWriter, r *http.Request) {
	var req applyRiderRequest
	if err := decodeJSON(w, r, &req); err != nil {
		writeError(h.logger, w, r, http.StatusBadRequest, "invalid request body")
		return
	}

	app := domain.RiderApplication{
		Name:     req.Name,
		Email:    req.Email,
		Phone:    req.Phone,
		Region:   req.Region,
		District: req.District,
	}
	id, err := h.riders.Apply(r.Context(), &app)
	if err != nil {
		writeDomainError(h.logger, w, r, err)
		return
	}
	writeJSON(h.logger, w, r, http.StatusCreated, createdResponse{ID: id})
}

// List handles GET /riders with an optional status filter.
func (h *RiderHandlers) List(w http.ResponseWriter, r *http.Request) {
	var status *domain.ApplicationStatus
	if raw := strings.TrimSpace(r.URL.Query().Get("status")); raw != "" {
		s := domain.ApplicationStatus(raw)
		status = &s
	}

	riders, err := h.riders.List(r.Context(), status)
	if err != nil {
		writeDomainError(h.logger, w, r, err)
		return
	}
	writeJSON(h.logger, w, r, http.StatusOK, toRiderDTOs(riders))
}

// Decide handles PATCH /riders/{id}. Approval promotes the applicant account
// to the rider role.
func (h *RiderHandlers) Decide(w http.ResponseWriter, r *http.Request) {
	id, err := idFromURL(r, "id")
	if err != nil {
		writeError(h.logger, w, r, http.StatusBadRequest, "invalid application id")
		return
	}
	var req decideRiderRequest
	if err := decodeJSON(w, r, &req); err != nil {
		writeError(h.logger, w, r, http.StatusBadRequest, "invalid request body")
		return
	}

	res, err := h.riders.Decide(r.Context(), domain.RiderDecision{
		ID:     id,
		Status: domain.ApplicationStatus(req.Status),
		Email:  req.Email,
	})
	if err != nil {
		writeDomainError(h.logger, w, r, err)
		return
	}
	writeJSON(h.logger, w, r, http.StatusOK, decideRiderResponse{
		Status:   string(res.Status),
		Promoted: res.Promoted,
	})
}
