package handlers

import (
	"net/http"
	"strings"

	"github.com/zapshift/parcel-service/internal/domain"
	"github.com/zapshift/parcel-service/internal/logx"
)

// AccountHandlers serves the user account endpoints.
type AccountHandlers struct {
	logger   logx.Logger
	accounts accountUsecase
}

// NewAccountHandlers creates account HTTP handlers.
func NewAccountHandlers(logger logx.Logger, accounts accountUsecase) *AccountHandlers {
	return &AccountHandlers{logger: logger, accounts: accounts}
}

// Register handles POST /users. Registering an existing email is not an
// error; the response reports that nothing was inserted.
func (h *AccountHandlers) Register(w http.ResponseWriter, r *http.Request) {
	var req registerUserRequest
	if err := decodeJSON(w, r, &req); err != nil {
		writeError(h.logger, w, r, http.StatusBadRequest, "invalid request body")
		return
	}

	res, err := h.accounts.Register(r.Context(), req.Email, req.Name)
	if err != nil {
		writeDomainError(h.logger, w, r, err)
		return
	}
	if !res.Created {
		writeJSON(h.logger, w, r, http.StatusOK, registerUserResponse{
			ID:       res.ID,
			Inserted: false,
			Message:  "user already exists",
		})
		return
	}
	writeJSON(h.logger, w, r, http.StatusCreated, registerUserResponse{
		ID:       res.ID,
		Inserted: true,
	})
}

// Search handles GET /users?searchText=... and returns matching accounts.
func (h *AccountHandlers) Search(w http.ResponseWriter, r *http.Request) {
	text := strings.TrimSpace(r.URL.Query().Get("searchText"))
	if text == "" {
		writeError(h.logger, w, r, http.StatusBadRequest, "searchText is required")
		return
	}

	accounts, err := h.accounts.Search(r.Context(), text)
	if err != nil {
		writeDomainError(h.logger, w, r, err)
		return
	}
	writeJSON(h.logger, w, r, http.StatusOK, toAccountDTOs(accounts))
}

// SetRole handles PATCH /users/{id}/role.
func (h *AccountHandlers) SetRole(w http.ResponseWriter, r *http.Request) {
	id, err := idFromURL(r, "id")
	if err != nil {
		writeError(h.logger, w, r, http.StatusBadRequest, "invalid user id")
		return
	}
	var req setRoleRequest
	if err := decodeJSON(w, r, &req); err != nil {
		writeError(h.logger, w, r, http.StatusBadRequest, "invalid request body")
		return
	}

	if err := h.accounts.SetRole(r.Context(), id, domain.Role(req.Role)); err != nil {
		writeDomainError(h.logger, w, r, err)
		return
	}
	writeJSON(h.logger, w, r, http.StatusOK, statusResponse{Status: "ok"})
}

// RoleByEmail handles GET /users/{email}/role. Unknown emails resolve to the
// default role so the dashboard always gets an answer.
func (h *AccountHandlers) RoleByEmail(w http.ResponseWriter, r *http.Request) {
	email := strings.TrimSpace(urlParam(r, "email"))
	if email == "" {
		writeError(h.logger, w, r, http.StatusBadRequest, "email is required")
		return
	}

	role, err := h.accounts.RoleByEmail(r.Context(), email)
	if err != nil {
		writeDomainError(h.logger, w, r, err)
		return
	}
	writeJSON(h.logger, w, r, http.StatusOK, roleResponse{Role: string(role)})
}
