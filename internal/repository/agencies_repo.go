package repository

import (
	"context"
	"errors"

	"travia-admin/internal/domain"
)

// ErrNotFound is returned by all repositories when the requested row
// does not exist.
var ErrNotFound = errors.New("repository: not found")

// AgenciesRepository data access for agencies.
type AgenciesRepository interface {
	GetAgency(ctx context.Context, agencyID string) (*domain.Agency, error)

	// GetAgencyByEmail matches email case-insensitively and expects at
	// most one row (unique index on lower(email)).
	GetAgencyByEmail(ctx context.Context, email string) (*domain.Agency, error)

	ListAgencies(ctx context.Context, filters AgencyFilters, page, size int) ([]*domain.Agency, int, error)
	CreateAgency(ctx context.Context, agency *domain.Agency) (string, error)

	SetAgencyStatus(ctx context.Context, agencyID, status string) error
	SetAgencyPremium(ctx context.Context, agencyID string, premium bool) error
	SetAgencyFeatured(ctx context.Context, agencyID string, featured bool) error
}

// AgencyFilters list query filters.
type AgencyFilters struct {
	Status string // active / inactive
	State  string
	Search string // fuzzy match on name and email
}
