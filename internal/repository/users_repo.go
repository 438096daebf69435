package repository

import (
	"context"

	"travia-admin/internal/domain"
)

// UsersRepository data access for traveler accounts.
type UsersRepository interface {
	GetUser(ctx context.Context, userID string) (*domain.User, error)
	ListUsers(ctx context.Context, filters UserFilters, page, size int) ([]*domain.User, int, error)
	SetUserStatus(ctx context.Context, userID, status string) error
}

// UserFilters list query filters.
type UserFilters struct {
	Role   string
	Status string
	State  string
	Search string // fuzzy match on full_name and email
}
