package repository

import (
	"context"

	"travia-admin/internal/domain"
)

// NotificationsRepository data access for agency notifications.
// Inserts fire the pg_notify trigger, so writing here is also how
// events reach the realtime feed.
type NotificationsRepository interface {
	CreateNotification(ctx context.Context, n *domain.Notification) (string, error)

	// ListNotifications returns the agency's notifications, most recent
	// first, capped at limit.
	ListNotifications(ctx context.Context, agencyID string, limit int) ([]*domain.Notification, error)
}
