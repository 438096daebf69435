package repository

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"

	"travia-admin/internal/domain"
)

type PostgresMeetingPointsRepository struct {
	db *sql.DB
}

func NewPostgresMeetingPointsRepository(db *sql.DB) *PostgresMeetingPointsRepository {
	return &PostgresMeetingPointsRepository{db: db}
}

var _ MeetingPointsRepository = (*PostgresMeetingPointsRepository)(nil)

func (r *PostgresMeetingPointsRepository) ListMeetingPoints(ctx context.Context, tripID string) ([]*domain.MeetingPoint, error) {
	query := `
		SELECT
			mp.id::text,
			mp.trip_id::text,
			mp.traveller_id::text,
			mp.location,
			mp.pickup_time,
			mp.stop_order,
			COALESCE(mp.status, 'pending') as status,
			mp.created_at,
			u.id::text,
			u.email,
			COALESCE(u.full_name, '') as full_name,
			u.avatar_url,
			u.state
		FROM meeting_points mp
		LEFT JOIN travellers tr ON tr.id = mp.traveller_id
		LEFT JOIN users u ON u.id = tr.user_id
		WHERE mp.trip_id = $1::uuid
		ORDER BY mp.created_at ASC`

	rows, err := r.db.QueryContext(ctx, query, tripID)
	if err != nil {
		return nil, fmt.Errorf("failed to list meeting points: %w", err)
	}
	defer rows.Close()

	var items []*domain.MeetingPoint
	for rows.Next() {
		var mp domain.MeetingPoint
		var location []byte
		var uID, uEmail, uFullName sql.NullString
		var uAvatar, uState sql.NullString
		err := rows.Scan(
			&mp.MeetingPointID,
			&mp.TripID,
			&mp.TravellerID,
			&location,
			&mp.PickupTime,
			&mp.StopOrder,
			&mp.Status,
			&mp.CreatedAt,
			&uID,
			&uEmail,
			&uFullName,
			&uAvatar,
			&uState,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan meeting point: %w", err)
		}
		mp.Location = json.RawMessage(location)
		if uID.Valid {
			mp.Traveller = &domain.User{
				UserID:    uID.String,
				Email:     uEmail.String,
				FullName:  uFullName.String,
				AvatarURL: uAvatar,
				State:     uState,
			}
		}
		items = append(items, &mp)
	}
	return items, rows.Err()
}

func (r *PostgresMeetingPointsRepository) SetMeetingPointStatus(ctx context.Context, tripID, meetingPointID, status string) error {
	res, err := r.db.ExecContext(ctx,
		`UPDATE meeting_points SET status = $1 WHERE trip_id = $2::uuid AND id = $3::uuid`,
		status, tripID, meetingPointID)
	if err != nil {
		return fmt.Errorf("failed to update meeting point status: %w", err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *PostgresMeetingPointsRepository) SetStopOrder(ctx context.Context, meetingPointID string, order int) error {
	res, err := r.db.ExecContext(ctx,
		`UPDATE meeting_points SET stop_order = $1 WHERE id = $2::uuid`,
		order, meetingPointID)
	if err != nil {
		return fmt.Errorf("failed to set stop order: %w", err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *PostgresMeetingPointsRepository) ClearStopOrders(ctx context.Context, tripID string) error {
	_, err := r.db.ExecContext(ctx,
		`UPDATE meeting_points SET stop_order = NULL WHERE trip_id = $1::uuid`, tripID)
	if err != nil {
		return fmt.Errorf("failed to clear stop orders: %w", err)
	}
	return nil
}
