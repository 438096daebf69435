package repository

import (
	"context"

	"travia-admin/internal/domain"
)

// GuidesRepository data access for agency guides.
// All reads and writes are scoped to the owning agency.
type GuidesRepository interface {
	GetGuide(ctx context.Context, agencyID, guideID string) (*domain.Guide, error)
	ListGuides(ctx context.Context, agencyID string, filters GuideFilters) ([]*domain.Guide, error)
	CreateGuide(ctx context.Context, guide *domain.Guide) (string, error)
	SetGuideStatus(ctx context.Context, agencyID, guideID, status string) error
}

// GuideFilters list query filters.
type GuideFilters struct {
	Status string // available / on_trip / unavailable
	Search string // fuzzy match on name and email
}
