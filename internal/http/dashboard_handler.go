package httpapi

import (
	"net/http"

	"travia-admin/internal/service"

	"go.uber.org/zap"
)

// DashboardHandler analytics endpoints behind the landing view.
type DashboardHandler struct {
	dashboard *service.DashboardService
	logger    *zap.Logger
}

func NewDashboardHandler(dashboard *service.DashboardService, logger *zap.Logger) *DashboardHandler {
	return &DashboardHandler{
		dashboard: dashboard,
		logger:    logger,
	}
}

func (h *DashboardHandler) Summary(w http.ResponseWriter, r *http.Request) {
	p := PrincipalFrom(r.Context())
	s, err := h.dashboard.Summary(r.Context(), p)
	if err != nil {
		h.logger.Error("Failed to build summary", zap.Error(err))
		writeJSON(w, http.StatusInternalServerError, Fail("Error del servidor"))
		return
	}
	writeJSON(w, http.StatusOK, Ok(s))
}

func (h *DashboardHandler) TopStates(w http.ResponseWriter, r *http.Request) {
	limit := parseInt(r.URL.Query().Get("limit"), 5)
	items, err := h.dashboard.TopStates(r.Context(), limit)
	if err != nil {
		h.logger.Error("Failed to query top states", zap.Error(err))
		writeJSON(w, http.StatusInternalServerError, Fail("Error del servidor"))
		return
	}
	writeJSON(w, http.StatusOK, Ok(items))
}

func (h *DashboardHandler) TopDestinations(w http.ResponseWriter, r *http.Request) {
	p := PrincipalFrom(r.Context())
	limit := parseInt(r.URL.Query().Get("limit"), 5)
	items, err := h.dashboard.TopDestinations(r.Context(), p, limit)
	if err != nil {
		h.logger.Error("Failed to query top destinations", zap.Error(err))
		writeJSON(w, http.StatusInternalServerError, Fail("Error del servidor"))
		return
	}
	writeJSON(w, http.StatusOK, Ok(items))
}

func (h *DashboardHandler) Trend(w http.ResponseWriter, r *http.Request) {
	p := PrincipalFrom(r.Context())
	months := parseInt(r.URL.Query().Get("months"), 12)
	items, err := h.dashboard.ReservationTrend(r.Context(), p, months)
	if err != nil {
		h.logger.Error("Failed to query reservation trend", zap.Error(err))
		writeJSON(w, http.StatusInternalServerError, Fail("Error del servidor"))
		return
	}
	writeJSON(w, http.StatusOK, Ok(items))
}
