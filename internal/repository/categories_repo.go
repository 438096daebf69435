package repository

import (
	"context"

	"travia-admin/internal/domain"
)

// CategoriesRepository data access for experience categories.
type CategoriesRepository interface {
	// ListCategories returns all categories, newest first.
	ListCategories(ctx context.Context) ([]*domain.Category, error)
	CreateCategory(ctx context.Context, name string) (*domain.Category, error)
}
