package httpapi

import (
	"errors"
	"fmt"
	"net/http"
	"time"

	"travia-admin/internal/domain"
	"travia-admin/internal/repository"
	"travia-admin/internal/service"

	"go.uber.org/zap"
)

// TripsHandler agency-scoped trips, their reservations and pickup route.
type TripsHandler struct {
	trips  repository.TripsRepository
	routes *service.RouteService
	logger *zap.Logger
}

func NewTripsHandler(trips repository.TripsRepository, routes *service.RouteService, logger *zap.Logger) *TripsHandler {
	return &TripsHandler{
		trips:  trips,
		routes: routes,
		logger: logger,
	}
}

func (h *TripsHandler) List(w http.ResponseWriter, r *http.Request) {
	p := PrincipalFrom(r.Context())
	q := r.URL.Query()

	filters := repository.TripFilters{
		ExperienceID: q.Get("experience_id"),
		GuideID:      q.Get("guide_id"),
	}
	if v := q.Get("featured"); v != "" {
		featured := v == "true"
		filters.Featured = &featured
	}
	page := parseInt(q.Get("page"), 1)
	size := parseInt(q.Get("size"), 20)

	items, total, err := h.trips.ListTrips(r.Context(), p.AgencyID, filters, page, size)
	if err != nil {
		h.logger.Error("Failed to list trips", zap.Error(err))
		writeJSON(w, http.StatusInternalServerError, Fail("Error del servidor"))
		return
	}

	views := make([]map[string]any, 0, len(items))
	for _, t := range items {
		views = append(views, tripView(t))
	}
	writeJSON(w, http.StatusOK, Ok(pageView(views, total, page, size)))
}

// Get returns the trip detail: joined experience and guide, the
// reservation list with traveler accounts, and payment totals.
func (h *TripsHandler) Get(w http.ResponseWriter, r *http.Request, tripID string) {
	p := PrincipalFrom(r.Context())

	trip, err := h.trips.GetTrip(r.Context(), p.AgencyID, tripID)
	if err != nil {
		h.notFoundOr500(w, err, "Failed to get trip")
		return
	}
	reservations, err := h.trips.ListReservations(r.Context(), tripID)
	if err != nil {
		h.logger.Error("Failed to list reservations", zap.Error(err))
		writeJSON(w, http.StatusInternalServerError, Fail("Error del servidor"))
		return
	}

	resViews := make([]map[string]any, 0, len(reservations))
	stats := map[string]any{
		"total":   len(reservations),
		"paid":    0,
		"pending": 0,
		"revenue": 0.0,
	}
	var paid, pending int
	var revenue float64
	for _, res := range reservations {
		resViews = append(resViews, reservationView(res))
		switch res.PaymentStatus {
		case domain.PaymentStatusPaid:
			paid++
			revenue += res.TotalPrice
		case domain.PaymentStatusPending:
			pending++
		}
	}
	stats["paid"] = paid
	stats["pending"] = pending
	stats["revenue"] = revenue

	view := tripView(trip)
	view["reservations"] = resViews
	view["payment_stats"] = stats
	writeJSON(w, http.StatusOK, Ok(view))
}

func (h *TripsHandler) Create(w http.ResponseWriter, r *http.Request) {
	p := PrincipalFrom(r.Context())

	var reqBody struct {
		ExperienceID   string  `json:"experience_id"`
		GuideID        string  `json:"guide_id"`
		StartDate      string  `json:"start_date"` // RFC3339
		EndDate        string  `json:"end_date"`
		Price          float64 `json:"price"`
		SeatsAvailable int64   `json:"seats_available"`
		ImageURL       string  `json:"image_url"`
		IsFeatured     bool    `json:"is_featured"`
	}
	if err := readBodyJSON(r, 1<<20, &reqBody); err != nil {
		writeJSON(w, http.StatusBadRequest, Fail("invalid body"))
		return
	}
	if reqBody.ExperienceID == "" {
		writeJSON(w, http.StatusBadRequest, Fail("experience_id is required"))
		return
	}

	trip := &domain.Trip{
		AgencyID:   p.AgencyID,
		IsFeatured: reqBody.IsFeatured,
	}
	trip.ExperienceID.Valid = true
	trip.ExperienceID.String = reqBody.ExperienceID
	if reqBody.GuideID != "" {
		trip.GuideID.Valid = true
		trip.GuideID.String = reqBody.GuideID
	}
	if reqBody.Price > 0 {
		trip.Price.Valid = true
		trip.Price.Float64 = reqBody.Price
	}
	if reqBody.SeatsAvailable > 0 {
		trip.SeatsAvailable.Valid = true
		trip.SeatsAvailable.Int64 = reqBody.SeatsAvailable
	}
	if reqBody.ImageURL != "" {
		trip.ImageURL.Valid = true
		trip.ImageURL.String = reqBody.ImageURL
	}
	for _, d := range []struct {
		raw string
		dst *time.Time
		ok  *bool
	}{
		{reqBody.StartDate, &trip.StartDate.Time, &trip.StartDate.Valid},
		{reqBody.EndDate, &trip.EndDate.Time, &trip.EndDate.Valid},
	} {
		if d.raw == "" {
			continue
		}
		t, err := time.Parse(time.RFC3339, d.raw)
		if err != nil {
			writeJSON(w, http.StatusBadRequest, Fail(fmt.Sprintf("invalid date %q", d.raw)))
			return
		}
		*d.dst = t
		*d.ok = true
	}

	id, err := h.trips.CreateTrip(r.Context(), trip)
	if err != nil {
		h.logger.Error("Failed to create trip", zap.Error(err))
		writeJSON(w, http.StatusInternalServerError, Fail("Error del servidor"))
		return
	}
	writeJSON(w, http.StatusOK, Ok(map[string]any{"id": id}))
}

func (h *TripsHandler) Delete(w http.ResponseWriter, r *http.Request, tripID string) {
	p := PrincipalFrom(r.Context())
	if err := h.trips.DeleteTrip(r.Context(), p.AgencyID, tripID); err != nil {
		h.notFoundOr500(w, err, "Failed to delete trip")
		return
	}
	writeJSON(w, http.StatusOK, Ok[any](nil))
}

func (h *TripsHandler) ListMeetingPoints(w http.ResponseWriter, r *http.Request, tripID string) {
	p := PrincipalFrom(r.Context())
	points, err := h.routes.ListMeetingPoints(r.Context(), p.AgencyID, tripID)
	if err != nil {
		h.notFoundOr500(w, err, "Failed to list meeting points")
		return
	}

	views := make([]map[string]any, 0, len(points))
	for _, mp := range points {
		views = append(views, meetingPointView(mp))
	}
	writeJSON(w, http.StatusOK, Ok(views))
}

// SetMeetingPointStatus accepts or rejects one pickup request.
func (h *TripsHandler) SetMeetingPointStatus(w http.ResponseWriter, r *http.Request, tripID, meetingPointID string) {
	p := PrincipalFrom(r.Context())

	var reqBody struct {
		Status string `json:"status"`
	}
	if err := readBodyJSON(r, 1<<20, &reqBody); err != nil {
		writeJSON(w, http.StatusBadRequest, Fail("invalid body"))
		return
	}

	if reqBody.Status != domain.MeetingPointConfirmed && reqBody.Status != domain.MeetingPointRejected {
		writeJSON(w, http.StatusBadRequest, Fail("invalid status"))
		return
	}

	err := h.routes.SetMeetingPointStatus(r.Context(), p.AgencyID, tripID, meetingPointID, reqBody.Status)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			writeJSON(w, http.StatusNotFound, Fail("not found"))
			return
		}
		h.logger.Error("Failed to update meeting point", zap.Error(err))
		writeJSON(w, http.StatusInternalServerError, Fail("Error del servidor"))
		return
	}
	writeJSON(w, http.StatusOK, Ok[any](nil))
}

// OptimizeRoute orders confirmed pickups and returns them with their
// assigned stop positions.
func (h *TripsHandler) OptimizeRoute(w http.ResponseWriter, r *http.Request, tripID string) {
	p := PrincipalFrom(r.Context())
	points, err := h.routes.OptimizeRoute(r.Context(), p.AgencyID, tripID)
	if err != nil {
		h.notFoundOr500(w, err, "Failed to optimize route")
		return
	}

	views := make([]map[string]any, 0, len(points))
	for _, mp := range points {
		views = append(views, meetingPointView(mp))
	}
	writeJSON(w, http.StatusOK, Ok(views))
}

// ExportReservations streams the reservation sheet as an Excel file.
func (h *TripsHandler) ExportReservations(w http.ResponseWriter, r *http.Request, tripID string) {
	p := PrincipalFrom(r.Context())

	// ownership check before handing out traveler data
	if _, err := h.trips.GetTrip(r.Context(), p.AgencyID, tripID); err != nil {
		h.notFoundOr500(w, err, "Failed to get trip")
		return
	}
	reservations, err := h.trips.ListReservations(r.Context(), tripID)
	if err != nil {
		h.logger.Error("Failed to list reservations", zap.Error(err))
		writeJSON(w, http.StatusInternalServerError, Fail("Error del servidor"))
		return
	}

	data, err := GenerateReservationsExport(reservations)
	if err != nil {
		h.logger.Error("Failed to build export", zap.Error(err))
		writeJSON(w, http.StatusInternalServerError, Fail("Error del servidor"))
		return
	}

	w.Header().Set("Content-Type", "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
	w.Header().Set("Content-Disposition",
		fmt.Sprintf(`attachment; filename="reservations-%s.xlsx"`, tripID))
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(data)
}

func (h *TripsHandler) notFoundOr500(w http.ResponseWriter, err error, msg string) {
	if errors.Is(err, repository.ErrNotFound) {
		writeJSON(w, http.StatusNotFound, Fail("not found"))
		return
	}
	h.logger.Error(msg, zap.Error(err))
	writeJSON(w, http.StatusInternalServerError, Fail("Error del servidor"))
}
