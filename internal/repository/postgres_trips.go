package repository

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"strings"

	"travia-admin/internal/domain"
)

type PostgresTripsRepository struct {
	db *sql.DB
}

func NewPostgresTripsRepository(db *sql.DB) *PostgresTripsRepository {
	return &PostgresTripsRepository{db: db}
}

var _ TripsRepository = (*PostgresTripsRepository)(nil)

const tripColumns = `
	t.id::text,
	t.agency_id::text,
	t.experience_id::text,
	t.guide_id::text,
	t.start_date,
	t.end_date,
	t.price,
	t.seats_available,
	t.image_url,
	COALESCE(t.is_featured, false) as is_featured,
	t.agency_rating,
	t.created_at,
	e.id::text,
	e.title,
	e.description,
	e.origin,
	e.destination,
	e.origin_location,
	e.destination_location,
	e.duration,
	e.difficulty,
	e.image_url,
	g.id::text,
	g.first_name,
	g.last_name,
	g.email,
	g.status
`

func scanTrip(row interface{ Scan(...any) error }) (*domain.Trip, error) {
	var t domain.Trip
	var expID, expTitle, expDescription, expOrigin, expDestination,
		expDuration, expDifficulty, expImageURL sql.NullString
	var expOriginLoc, expDestLoc []byte
	var gID, gFirstName, gLastName, gEmail, gStatus sql.NullString

	err := row.Scan(
		&t.TripID,
		&t.AgencyID,
		&t.ExperienceID,
		&t.GuideID,
		&t.StartDate,
		&t.EndDate,
		&t.Price,
		&t.SeatsAvailable,
		&t.ImageURL,
		&t.IsFeatured,
		&t.AgencyRating,
		&t.CreatedAt,
		&expID,
		&expTitle,
		&expDescription,
		&expOrigin,
		&expDestination,
		&expOriginLoc,
		&expDestLoc,
		&expDuration,
		&expDifficulty,
		&expImageURL,
		&gID,
		&gFirstName,
		&gLastName,
		&gEmail,
		&gStatus,
	)
	if err != nil {
		return nil, err
	}

	if expID.Valid {
		t.Experience = &domain.Experience{
			ExperienceID:        expID.String,
			AgencyID:            t.AgencyID,
			Title:               expTitle.String,
			Description:         expDescription,
			Origin:              expOrigin,
			Destination:         expDestination,
			OriginLocation:      json.RawMessage(expOriginLoc),
			DestinationLocation: json.RawMessage(expDestLoc),
			Duration:            expDuration,
			Difficulty:          expDifficulty.String,
			ImageURL:            expImageURL,
		}
	}
	if gID.Valid {
		t.Guide = &domain.Guide{
			GuideID:   gID.String,
			AgencyID:  t.AgencyID,
			FirstName: gFirstName.String,
			LastName:  gLastName,
			Email:     gEmail,
			Status:    gStatus.String,
		}
	}
	return &t, nil
}

const tripJoins = `
	FROM trips t
	LEFT JOIN experiences e ON e.id = t.experience_id
	LEFT JOIN guides g ON g.id = t.guide_id
`

func (r *PostgresTripsRepository) GetTrip(ctx context.Context, agencyID, tripID string) (*domain.Trip, error) {
	if agencyID == "" || tripID == "" {
		return nil, ErrNotFound
	}
	query := `SELECT ` + tripColumns + tripJoins + ` WHERE t.agency_id = $1::uuid AND t.id = $2::uuid`
	t, err := scanTrip(r.db.QueryRowContext(ctx, query, agencyID, tripID))
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to get trip: %w", err)
	}
	return t, nil
}

func (r *PostgresTripsRepository) ListTrips(ctx context.Context, agencyID string, filters TripFilters, page, size int) ([]*domain.Trip, int, error) {
	if page < 1 {
		page = 1
	}
	if size < 1 || size > 200 {
		size = 20
	}

	where := []string{"t.agency_id = $1::uuid"}
	args := []any{agencyID}
	if filters.ExperienceID != "" {
		args = append(args, filters.ExperienceID)
		where = append(where, fmt.Sprintf("t.experience_id = $%d::uuid", len(args)))
	}
	if filters.GuideID != "" {
		args = append(args, filters.GuideID)
		where = append(where, fmt.Sprintf("t.guide_id = $%d::uuid", len(args)))
	}
	if filters.Featured != nil {
		args = append(args, *filters.Featured)
		where = append(where, fmt.Sprintf("t.is_featured = $%d", len(args)))
	}
	cond := " WHERE " + strings.Join(where, " AND ")

	var total int
	if err := r.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM trips t`+cond, args...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("failed to count trips: %w", err)
	}

	args = append(args, size, (page-1)*size)
	query := `SELECT ` + tripColumns + tripJoins + cond +
		fmt.Sprintf(` ORDER BY t.start_date DESC NULLS LAST LIMIT $%d OFFSET $%d`, len(args)-1, len(args))

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to list trips: %w", err)
	}
	defer rows.Close()

	var items []*domain.Trip
	for rows.Next() {
		t, err := scanTrip(rows)
		if err != nil {
			return nil, 0, fmt.Errorf("failed to scan trip: %w", err)
		}
		items = append(items, t)
	}
	return items, total, rows.Err()
}

func (r *PostgresTripsRepository) CreateTrip(ctx context.Context, trip *domain.Trip) (string, error) {
	var id string
	err := r.db.QueryRowContext(ctx, `
		INSERT INTO trips (agency_id, experience_id, guide_id, start_date, end_date,
			price, seats_available, image_url, is_featured, agency_rating)
		VALUES ($1::uuid, $2::uuid, $3::uuid, $4, $5, $6, $7, $8, $9, $10)
		RETURNING id::text`,
		trip.AgencyID,
		trip.ExperienceID,
		trip.GuideID,
		trip.StartDate,
		trip.EndDate,
		trip.Price,
		trip.SeatsAvailable,
		trip.ImageURL,
		trip.IsFeatured,
		trip.AgencyRating,
	).Scan(&id)
	if err != nil {
		return "", fmt.Errorf("failed to create trip: %w", err)
	}
	return id, nil
}

func (r *PostgresTripsRepository) DeleteTrip(ctx context.Context, agencyID, tripID string) error {
	res, err := r.db.ExecContext(ctx,
		`DELETE FROM trips WHERE agency_id = $1::uuid AND id = $2::uuid`, agencyID, tripID)
	if err != nil {
		return fmt.Errorf("failed to delete trip: %w", err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *PostgresTripsRepository) ListReservations(ctx context.Context, tripID string) ([]*domain.Reservation, error) {
	query := `
		SELECT
			res.id::text,
			res.trip_id::text,
			res.user_id::text,
			res.total_price,
			res.payment_method,
			res.payment_reference,
			COALESCE(res.payment_status, 'pending') as payment_status,
			COALESCE(res.partial_payment, false) as partial_payment,
			res.partial_paid_amount,
			res.created_at,
			u.id::text,
			u.email,
			COALESCE(u.full_name, '') as full_name,
			u.avatar_url,
			u.state,
			u.age
		FROM reservations res
		LEFT JOIN users u ON u.id = res.user_id
		WHERE res.trip_id = $1::uuid
		ORDER BY res.created_at DESC`

	rows, err := r.db.QueryContext(ctx, query, tripID)
	if err != nil {
		return nil, fmt.Errorf("failed to list reservations: %w", err)
	}
	defer rows.Close()

	var items []*domain.Reservation
	for rows.Next() {
		var res domain.Reservation
		var uID, uEmail, uFullName sql.NullString
		var uAvatar, uState, uAge sql.NullString
		err := rows.Scan(
			&res.ReservationID,
			&res.TripID,
			&res.UserID,
			&res.TotalPrice,
			&res.PaymentMethod,
			&res.PaymentReference,
			&res.PaymentStatus,
			&res.PartialPayment,
			&res.PartialPaidAmount,
			&res.CreatedAt,
			&uID,
			&uEmail,
			&uFullName,
			&uAvatar,
			&uState,
			&uAge,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan reservation: %w", err)
		}
		if uID.Valid {
			res.User = &domain.User{
				UserID:    uID.String,
				Email:     uEmail.String,
				FullName:  uFullName.String,
				AvatarURL: uAvatar,
				State:     uState,
				Age:       uAge,
			}
		}
		items = append(items, &res)
	}
	return items, rows.Err()
}
