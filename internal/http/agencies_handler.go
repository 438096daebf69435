package httpapi

import (
	"errors"
	"net/http"
	"strings"

	"travia-admin/internal/domain"
	"travia-admin/internal/repository"

	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
)

// AgenciesHandler admin-only agency management.
type AgenciesHandler struct {
	agencies repository.AgenciesRepository
	logger   *zap.Logger
}

func NewAgenciesHandler(agencies repository.AgenciesRepository, logger *zap.Logger) *AgenciesHandler {
	return &AgenciesHandler{
		agencies: agencies,
		logger:   logger,
	}
}

func (h *AgenciesHandler) List(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	filters := repository.AgencyFilters{
		Status: q.Get("status"),
		State:  q.Get("state"),
		Search: q.Get("search"),
	}
	page := parseInt(q.Get("page"), 1)
	size := parseInt(q.Get("size"), 20)

	items, total, err := h.agencies.ListAgencies(r.Context(), filters, page, size)
	if err != nil {
		h.logger.Error("Failed to list agencies", zap.Error(err))
		writeJSON(w, http.StatusInternalServerError, Fail("Error del servidor"))
		return
	}

	views := make([]map[string]any, 0, len(items))
	for _, a := range items {
		views = append(views, agencyView(a))
	}
	writeJSON(w, http.StatusOK, Ok(pageView(views, total, page, size)))
}

func (h *AgenciesHandler) Create(w http.ResponseWriter, r *http.Request) {
	var reqBody struct {
		Name        string   `json:"name"`
		Email       string   `json:"email"`
		Password    string   `json:"password"`
		Description string   `json:"description"`
		LogoURL     string   `json:"logo_url"`
		State       string   `json:"state"`
		States      []string `json:"states"`
		IsPremium   bool     `json:"is_premium"`
		IsFeatured  bool     `json:"is_featured"`
	}
	if err := readBodyJSON(r, 1<<20, &reqBody); err != nil {
		writeJSON(w, http.StatusBadRequest, Fail("invalid body"))
		return
	}
	reqBody.Email = strings.TrimSpace(strings.ToLower(reqBody.Email))
	if reqBody.Name == "" || reqBody.Email == "" || reqBody.Password == "" {
		writeJSON(w, http.StatusBadRequest, Fail("name, email and password are required"))
		return
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(reqBody.Password), bcrypt.DefaultCost)
	if err != nil {
		h.logger.Error("Failed to hash agency password", zap.Error(err))
		writeJSON(w, http.StatusInternalServerError, Fail("Error del servidor"))
		return
	}

	agency := &domain.Agency{
		Name:         reqBody.Name,
		Email:        reqBody.Email,
		PasswordHash: hash,
		States:       reqBody.States,
		IsPremium:    reqBody.IsPremium,
		IsFeatured:   reqBody.IsFeatured,
		Status:       domain.AgencyStatusActive,
	}
	if reqBody.Description != "" {
		agency.Description.Valid = true
		agency.Description.String = reqBody.Description
	}
	if reqBody.LogoURL != "" {
		agency.LogoURL.Valid = true
		agency.LogoURL.String = reqBody.LogoURL
	}
	if reqBody.State != "" {
		agency.State.Valid = true
		agency.State.String = reqBody.State
	}

	id, err := h.agencies.CreateAgency(r.Context(), agency)
	if err != nil {
		h.logger.Error("Failed to create agency", zap.Error(err))
		writeJSON(w, http.StatusInternalServerError, Fail("Error del servidor"))
		return
	}
	writeJSON(w, http.StatusOK, Ok(map[string]any{"id": id}))
}

// SetStatus activates or deactivates the agency; an inactive agency
// cannot log in.
func (h *AgenciesHandler) SetStatus(w http.ResponseWriter, r *http.Request, agencyID string) {
	var reqBody struct {
		Status string `json:"status"`
	}
	if err := readBodyJSON(r, 1<<20, &reqBody); err != nil {
		writeJSON(w, http.StatusBadRequest, Fail("invalid body"))
		return
	}
	if reqBody.Status != domain.AgencyStatusActive && reqBody.Status != domain.AgencyStatusInactive {
		writeJSON(w, http.StatusBadRequest, Fail("invalid status"))
		return
	}
	h.write(w, h.agencies.SetAgencyStatus(r.Context(), agencyID, reqBody.Status))
}

func (h *AgenciesHandler) SetPremium(w http.ResponseWriter, r *http.Request, agencyID string) {
	var reqBody struct {
		Value bool `json:"value"`
	}
	if err := readBodyJSON(r, 1<<20, &reqBody); err != nil {
		writeJSON(w, http.StatusBadRequest, Fail("invalid body"))
		return
	}
	h.write(w, h.agencies.SetAgencyPremium(r.Context(), agencyID, reqBody.Value))
}

func (h *AgenciesHandler) SetFeatured(w http.ResponseWriter, r *http.Request, agencyID string) {
	var reqBody struct {
		Value bool `json:"value"`
	}
	if err := readBodyJSON(r, 1<<20, &reqBody); err != nil {
		writeJSON(w, http.StatusBadRequest, Fail("invalid body"))
		return
	}
	h.write(w, h.agencies.SetAgencyFeatured(r.Context(), agencyID, reqBody.Value))
}

func (h *AgenciesHandler) write(w http.ResponseWriter, err error) {
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			writeJSON(w, http.StatusNotFound, Fail("not found"))
			return
		}
		h.logger.Error("Agency update failed", zap.Error(err))
		writeJSON(w, http.StatusInternalServerError, Fail("Error del servidor"))
		return
	}
	writeJSON(w, http.StatusOK, Ok[any](nil))
}
