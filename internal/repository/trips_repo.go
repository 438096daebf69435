package repository

import (
	"context"

	"travia-admin/internal/domain"
)

// TripsRepository data access for trips and their reservations.
// All operations are scoped to the owning agency.
type TripsRepository interface {
	// GetTrip returns the trip with its experience and guide joined.
	GetTrip(ctx context.Context, agencyID, tripID string) (*domain.Trip, error)

	ListTrips(ctx context.Context, agencyID string, filters TripFilters, page, size int) ([]*domain.Trip, int, error)
	CreateTrip(ctx context.Context, trip *domain.Trip) (string, error)
	DeleteTrip(ctx context.Context, agencyID, tripID string) error

	// ListReservations returns the trip's reservations with the
	// traveler account joined, newest first.
	ListReservations(ctx context.Context, tripID string) ([]*domain.Reservation, error)
}

// TripFilters list query filters.
type TripFilters struct {
	ExperienceID string
	GuideID      string
	Featured     *bool
}
