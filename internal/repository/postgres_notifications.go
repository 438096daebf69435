package repository

import (
	"context"
	"database/sql"
	"fmt"

	"travia-admin/internal/domain"
)

type PostgresNotificationsRepository struct {
	db *sql.DB
}

func NewPostgresNotificationsRepository(db *sql.DB) *PostgresNotificationsRepository {
	return &PostgresNotificationsRepository{db: db}
}

var _ NotificationsRepository = (*PostgresNotificationsRepository)(nil)

func (r *PostgresNotificationsRepository) CreateNotification(ctx context.Context, n *domain.Notification) (string, error) {
	var id string
	err := r.db.QueryRowContext(ctx, `
		INSERT INTO notifications (agency_id, title, body)
		VALUES ($1::uuid, $2, $3)
		RETURNING id::text`,
		n.AgencyID, n.Title, n.Body,
	).Scan(&id)
	if err != nil {
		return "", fmt.Errorf("failed to create notification: %w", err)
	}
	return id, nil
}

func (r *PostgresNotificationsRepository) ListNotifications(ctx context.Context, agencyID string, limit int) ([]*domain.Notification, error) {
	if limit < 1 || limit > 500 {
		limit = 50
	}
	rows, err := r.db.QueryContext(ctx, `
		SELECT id::text, agency_id::text, title, body, created_at
		FROM notifications
		WHERE agency_id = $1::uuid
		ORDER BY created_at DESC
		LIMIT $2`, agencyID, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to list notifications: %w", err)
	}
	defer rows.Close()

	var items []*domain.Notification
	for rows.Next() {
		var n domain.Notification
		if err := rows.Scan(&n.NotificationID, &n.AgencyID, &n.Title, &n.Body, &n.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan notification: %w", err)
		}
		items = append(items, &n)
	}
	return items, rows.Err()
}
