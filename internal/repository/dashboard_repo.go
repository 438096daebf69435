package repository

import "context"

// DashboardSummary headline counters for the landing view. Reservation
// counters cover the current calendar month.
type DashboardSummary struct {
	Agencies              int     `json:"agencies"`
	Users                 int     `json:"users"`
	ConfirmedReservations int     `json:"confirmed_reservations"`
	CancelledReservations int     `json:"cancelled_reservations"`
	MonthRevenue          float64 `json:"month_revenue"`
}

// StateCount how many agencies operate in a state.
type StateCount struct {
	State    string `json:"state"`
	Agencies int    `json:"agencies"`
}

// DestinationCount reservation volume per experience destination.
type DestinationCount struct {
	Destination  string `json:"destination"`
	Reservations int    `json:"reservations"`
}

// TrendPoint reservation count for one month, "2026-01" style keys.
type TrendPoint struct {
	Month        string `json:"month"`
	Reservations int    `json:"reservations"`
}

// DashboardRepository aggregate queries behind the analytics endpoints.
// An empty agencyID means platform-wide (admin view); otherwise rows are
// scoped to the agency.
type DashboardRepository interface {
	GetSummary(ctx context.Context, agencyID string) (*DashboardSummary, error)
	TopStates(ctx context.Context, limit int) ([]StateCount, error)
	TopDestinations(ctx context.Context, agencyID string, limit int) ([]DestinationCount, error)
	ReservationTrend(ctx context.Context, agencyID string, months int) ([]TrendPoint, error)
}
