package httpapi

import (
	"net/http"
	"strings"

	"travia-admin/internal/repository"

	"go.uber.org/zap"
)

// CategoriesHandler admin-only category management.
type CategoriesHandler struct {
	categories repository.CategoriesRepository
	logger     *zap.Logger
}

func NewCategoriesHandler(categories repository.CategoriesRepository, logger *zap.Logger) *CategoriesHandler {
	return &CategoriesHandler{
		categories: categories,
		logger:     logger,
	}
}

func (h *CategoriesHandler) List(w http.ResponseWriter, r *http.Request) {
	items, err := h.categories.ListCategories(r.Context())
	if err != nil {
		h.logger.Error("Failed to list categories", zap.Error(err))
		writeJSON(w, http.StatusInternalServerError, Fail("Error del servidor"))
		return
	}

	views := make([]map[string]any, 0, len(items))
	for _, c := range items {
		views = append(views, categoryView(c))
	}
	writeJSON(w, http.StatusOK, Ok(views))
}

func (h *CategoriesHandler) Create(w http.ResponseWriter, r *http.Request) {
	var reqBody struct {
		Name string `json:"name"`
	}
	if err := readBodyJSON(r, 1<<20, &reqBody); err != nil {
		writeJSON(w, http.StatusBadRequest, Fail("invalid body"))
		return
	}
	reqBody.Name = strings.TrimSpace(reqBody.Name)
	if reqBody.Name == "" {
		writeJSON(w, http.StatusBadRequest, Fail("name is required"))
		return
	}

	c, err := h.categories.CreateCategory(r.Context(), reqBody.Name)
	if err != nil {
		h.logger.Error("Failed to create category", zap.Error(err))
		writeJSON(w, http.StatusInternalServerError, Fail("Error del servidor"))
		return
	}
	writeJSON(w, http.StatusOK, Ok(categoryView(c)))
}
