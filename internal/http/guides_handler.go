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

// GuidesHandler agency-scoped guide management.
type GuidesHandler struct {
	guides repository.GuidesRepository
	logger *zap.Logger
}

func NewGuidesHandler(guides repository.GuidesRepository, logger *zap.Logger) *GuidesHandler {
	return &GuidesHandler{
		guides: guides,
		logger: logger,
	}
}

func (h *GuidesHandler) List(w http.ResponseWriter, r *http.Request) {
	p := PrincipalFrom(r.Context())
	q := r.URL.Query()

	filters := repository.GuideFilters{
		Status: q.Get("status"),
		Search: q.Get("search"),
	}
	items, err := h.guides.ListGuides(r.Context(), p.AgencyID, filters)
	if err != nil {
		h.logger.Error("Failed to list guides", zap.Error(err))
		writeJSON(w, http.StatusInternalServerError, Fail("Error del servidor"))
		return
	}

	views := make([]map[string]any, 0, len(items))
	for _, g := range items {
		views = append(views, guideView(g))
	}
	writeJSON(w, http.StatusOK, Ok(views))
}

func (h *GuidesHandler) Create(w http.ResponseWriter, r *http.Request) {
	p := PrincipalFrom(r.Context())

	var reqBody struct {
		FirstName string `json:"first_name"`
		LastName  string `json:"last_name"`
		VAT       string `json:"vat"`
		Email     string `json:"email"`
		Password  string `json:"password"`
	}
	if err := readBodyJSON(r, 1<<20, &reqBody); err != nil {
		writeJSON(w, http.StatusBadRequest, Fail("invalid body"))
		return
	}
	if reqBody.FirstName == "" || reqBody.Password == "" {
		writeJSON(w, http.StatusBadRequest, Fail("first_name and password are required"))
		return
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(reqBody.Password), bcrypt.DefaultCost)
	if err != nil {
		h.logger.Error("Failed to hash guide password", zap.Error(err))
		writeJSON(w, http.StatusInternalServerError, Fail("Error del servidor"))
		return
	}

	guide := &domain.Guide{
		AgencyID:     p.AgencyID,
		FirstName:    reqBody.FirstName,
		PasswordHash: hash,
		Status:       domain.GuideStatusAvailable,
	}
	if reqBody.LastName != "" {
		guide.LastName.Valid = true
		guide.LastName.String = reqBody.LastName
	}
	if reqBody.VAT != "" {
		guide.VAT.Valid = true
		guide.VAT.String = reqBody.VAT
	}
	if email := strings.TrimSpace(strings.ToLower(reqBody.Email)); email != "" {
		guide.Email.Valid = true
		guide.Email.String = email
	}

	id, err := h.guides.CreateGuide(r.Context(), guide)
	if err != nil {
		h.logger.Error("Failed to create guide", zap.Error(err))
		writeJSON(w, http.StatusInternalServerError, Fail("Error del servidor"))
		return
	}
	writeJSON(w, http.StatusOK, Ok(map[string]any{"id": id}))
}

func (h *GuidesHandler) SetStatus(w http.ResponseWriter, r *http.Request, guideID string) {
	p := PrincipalFrom(r.Context())

	var reqBody struct {
		Status string `json:"status"`
	}
	if err := readBodyJSON(r, 1<<20, &reqBody); err != nil {
		writeJSON(w, http.StatusBadRequest, Fail("invalid body"))
		return
	}
	switch reqBody.Status {
	case domain.GuideStatusAvailable, domain.GuideStatusOnTrip, domain.GuideStatusUnavailable:
	default:
		writeJSON(w, http.StatusBadRequest, Fail("invalid status"))
		return
	}

	if err := h.guides.SetGuideStatus(r.Context(), p.AgencyID, guideID, reqBody.Status); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			writeJSON(w, http.StatusNotFound, Fail("not found"))
			return
		}
		h.logger.Error("Failed to update guide status", zap.Error(err))
		writeJSON(w, http.StatusInternalServerError, Fail("Error del servidor"))
		return
	}
	writeJSON(w, http.StatusOK, Ok[any](nil))
}
