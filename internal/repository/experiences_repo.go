package repository

import (
	"context"

	"travia-admin/internal/domain"
)

// ExperiencesRepository data access for agency experiences.
// Category links go through the experience_categories join table.
type ExperiencesRepository interface {
	GetExperience(ctx context.Context, agencyID, experienceID string) (*domain.Experience, error)
	ListExperiences(ctx context.Context, agencyID string, filters ExperienceFilters) ([]*domain.Experience, error)

	// CreateExperience inserts the row and its category links in one
	// transaction; unknown category names are created on the fly.
	CreateExperience(ctx context.Context, exp *domain.Experience) (string, error)

	SetExperienceActive(ctx context.Context, agencyID, experienceID string, active bool) error
}

// ExperienceFilters list query filters.
type ExperienceFilters struct {
	Active   *bool
	Category string
	Search   string // fuzzy match on title
}
