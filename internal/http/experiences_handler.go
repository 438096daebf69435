package httpapi

import (
	"errors"
	"net/http"

	"travia-admin/internal/domain"
	"travia-admin/internal/geo"
	"travia-admin/internal/repository"

	"go.uber.org/zap"
)

// ExperiencesHandler agency-scoped experience catalog. The agency id
// always comes from the Principal, never from the request, so one
// agency cannot read another's rows.
type ExperiencesHandler struct {
	experiences repository.ExperiencesRepository
	logger      *zap.Logger
}

func NewExperiencesHandler(experiences repository.ExperiencesRepository, logger *zap.Logger) *ExperiencesHandler {
	return &ExperiencesHandler{
		experiences: experiences,
		logger:      logger,
	}
}

func (h *ExperiencesHandler) List(w http.ResponseWriter, r *http.Request) {
	p := PrincipalFrom(r.Context())
	q := r.URL.Query()

	filters := repository.ExperienceFilters{
		Category: q.Get("category"),
		Search:   q.Get("search"),
	}
	if v := q.Get("active"); v != "" {
		active := v == "true"
		filters.Active = &active
	}

	items, err := h.experiences.ListExperiences(r.Context(), p.AgencyID, filters)
	if err != nil {
		h.logger.Error("Failed to list experiences", zap.Error(err))
		writeJSON(w, http.StatusInternalServerError, Fail("Error del servidor"))
		return
	}

	views := make([]map[string]any, 0, len(items))
	for _, e := range items {
		views = append(views, experienceView(e))
	}
	writeJSON(w, http.StatusOK, Ok(views))
}

func (h *ExperiencesHandler) Get(w http.ResponseWriter, r *http.Request, experienceID string) {
	p := PrincipalFrom(r.Context())
	e, err := h.experiences.GetExperience(r.Context(), p.AgencyID, experienceID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			writeJSON(w, http.StatusNotFound, Fail("not found"))
			return
		}
		h.logger.Error("Failed to get experience", zap.Error(err))
		writeJSON(w, http.StatusInternalServerError, Fail("Error del servidor"))
		return
	}
	writeJSON(w, http.StatusOK, Ok(experienceView(e)))
}

func (h *ExperiencesHandler) Create(w http.ResponseWriter, r *http.Request) {
	p := PrincipalFrom(r.Context())

	var reqBody struct {
		Title               string     `json:"title"`
		Description         string     `json:"description"`
		Origin              string     `json:"origin"`
		Destination         string     `json:"destination"`
		OriginLocation      *geo.Point `json:"origin_location"`
		DestinationLocation *geo.Point `json:"destination_location"`
		Duration            string     `json:"duration"`
		Difficulty          string     `json:"difficulty"`
		ImageURL            string     `json:"image_url"`
		Categories          []string   `json:"categories"`
	}
	if err := readBodyJSON(r, 1<<20, &reqBody); err != nil {
		writeJSON(w, http.StatusBadRequest, Fail("invalid body"))
		return
	}
	if reqBody.Title == "" {
		writeJSON(w, http.StatusBadRequest, Fail("title is required"))
		return
	}
	switch reqBody.Difficulty {
	case "":
		reqBody.Difficulty = domain.DifficultyMid
	case domain.DifficultyLow, domain.DifficultyMid, domain.DifficultyHigh:
	default:
		writeJSON(w, http.StatusBadRequest, Fail("invalid difficulty"))
		return
	}

	exp := &domain.Experience{
		AgencyID:   p.AgencyID,
		Title:      reqBody.Title,
		Difficulty: reqBody.Difficulty,
		Active:     true,
		Categories: reqBody.Categories,
	}
	if reqBody.Description != "" {
		exp.Description.Valid = true
		exp.Description.String = reqBody.Description
	}
	if reqBody.Origin != "" {
		exp.Origin.Valid = true
		exp.Origin.String = reqBody.Origin
	}
	if reqBody.Destination != "" {
		exp.Destination.Valid = true
		exp.Destination.String = reqBody.Destination
	}
	if reqBody.Duration != "" {
		exp.Duration.Valid = true
		exp.Duration.String = reqBody.Duration
	}
	if reqBody.ImageURL != "" {
		exp.ImageURL.Valid = true
		exp.ImageURL.String = reqBody.ImageURL
	}
	if reqBody.OriginLocation != nil {
		exp.OriginLocation = reqBody.OriginLocation.MarshalGeoJSON()
	}
	if reqBody.DestinationLocation != nil {
		exp.DestinationLocation = reqBody.DestinationLocation.MarshalGeoJSON()
	}

	id, err := h.experiences.CreateExperience(r.Context(), exp)
	if err != nil {
		h.logger.Error("Failed to create experience", zap.Error(err))
		writeJSON(w, http.StatusInternalServerError, Fail("Error del servidor"))
		return
	}
	writeJSON(w, http.StatusOK, Ok(map[string]any{"id": id}))
}

func (h *ExperiencesHandler) SetActive(w http.ResponseWriter, r *http.Request, experienceID string) {
	p := PrincipalFrom(r.Context())

	var reqBody struct {
		Active bool `json:"active"`
	}
	if err := readBodyJSON(r, 1<<20, &reqBody); err != nil {
		writeJSON(w, http.StatusBadRequest, Fail("invalid body"))
		return
	}

	if err := h.experiences.SetExperienceActive(r.Context(), p.AgencyID, experienceID, reqBody.Active); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			writeJSON(w, http.StatusNotFound, Fail("not found"))
			return
		}
		h.logger.Error("Failed to update experience", zap.Error(err))
		writeJSON(w, http.StatusInternalServerError, Fail("Error del servidor"))
		return
	}
	writeJSON(w, http.StatusOK, Ok[any](nil))
}
