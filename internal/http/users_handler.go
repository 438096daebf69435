package httpapi

import (
	"errors"
	"net/http"

	"travia-admin/internal/repository"

	"go.uber.org/zap"
)

// UsersHandler admin-only traveler account moderation.
type UsersHandler struct {
	users  repository.UsersRepository
	logger *zap.Logger
}

func NewUsersHandler(users repository.UsersRepository, logger *zap.Logger) *UsersHandler {
	return &UsersHandler{
		users:  users,
		logger: logger,
	}
}

func (h *UsersHandler) List(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	filters := repository.UserFilters{
		Role:   q.Get("role"),
		Status: q.Get("status"),
		State:  q.Get("state"),
		Search: q.Get("search"),
	}
	page := parseInt(q.Get("page"), 1)
	size := parseInt(q.Get("size"), 20)

	items, total, err := h.users.ListUsers(r.Context(), filters, page, size)
	if err != nil {
		h.logger.Error("Failed to list users", zap.Error(err))
		writeJSON(w, http.StatusInternalServerError, Fail("Error del servidor"))
		return
	}

	views := make([]map[string]any, 0, len(items))
	for _, u := range items {
		views = append(views, userView(u))
	}
	writeJSON(w, http.StatusOK, Ok(pageView(views, total, page, size)))
}

func (h *UsersHandler) SetStatus(w http.ResponseWriter, r *http.Request, userID string) {
	var reqBody struct {
		Status string `json:"status"`
	}
	if err := readBodyJSON(r, 1<<20, &reqBody); err != nil {
		writeJSON(w, http.StatusBadRequest, Fail("invalid body"))
		return
	}
	if reqBody.Status != "active" && reqBody.Status != "inactive" {
		writeJSON(w, http.StatusBadRequest, Fail("invalid status"))
		return
	}

	if err := h.users.SetUserStatus(r.Context(), userID, reqBody.Status); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			writeJSON(w, http.StatusNotFound, Fail("not found"))
			return
		}
		h.logger.Error("Failed to update user status", zap.Error(err))
		writeJSON(w, http.StatusInternalServerError, Fail("Error del servidor"))
		return
	}
	writeJSON(w, http.StatusOK, Ok[any](nil))
}
