package repository

import (
	"context"
	"database/sql"
	"fmt"
)

type PostgresDashboardRepository struct {
	db *sql.DB
}

func NewPostgresDashboardRepository(db *sql.DB) *PostgresDashboardRepository {
	return &PostgresDashboardRepository{db: db}
}

var _ DashboardRepository = (*PostgresDashboardRepository)(nil)

// agencyScope appends an optional agency filter joined through trips.
// The caller passes the positional index the agency id will take.
func agencyScope(agencyID string, idx int) (string, []any) {
	if agencyID == "" {
		return "", nil
	}
	return fmt.Sprintf(" AND t.agency_id = $%d::uuid", idx), []any{agencyID}
}

func (r *PostgresDashboardRepository) GetSummary(ctx context.Context, agencyID string) (*DashboardSummary, error) {
	var s DashboardSummary

	if agencyID == "" {
		if err := r.db.QueryRowContext(ctx,
			`SELECT COUNT(*) FROM agencies`).Scan(&s.Agencies); err != nil {
			return nil, fmt.Errorf("failed to count agencies: %w", err)
		}
	} else {
		s.Agencies = 1
	}

	if err := r.db.QueryRowContext(ctx,
		`SELECT COUNT(*) FROM users`).Scan(&s.Users); err != nil {
		return nil, fmt.Errorf("failed to count users: %w", err)
	}

	scope, scopeArgs := agencyScope(agencyID, 1)
	query := `
		SELECT
			COUNT(*) FILTER (WHERE res.payment_status = 'paid'),
			COUNT(*) FILTER (WHERE res.payment_status IN ('failed', 'refunded')),
			COALESCE(SUM(res.total_price) FILTER (WHERE res.payment_status = 'paid'), 0)
		FROM reservations res
		JOIN trips t ON t.id = res.trip_id
		WHERE date_trunc('month', res.created_at) = date_trunc('month', now())` + scope

	err := r.db.QueryRowContext(ctx, query, scopeArgs...).Scan(
		&s.ConfirmedReservations, &s.CancelledReservations, &s.MonthRevenue)
	if err != nil {
		return nil, fmt.Errorf("failed to aggregate reservations: %w", err)
	}
	return &s, nil
}

func (r *PostgresDashboardRepository) TopStates(ctx context.Context, limit int) ([]StateCount, error) {
	if limit < 1 || limit > 50 {
		limit = 5
	}
	rows, err := r.db.QueryContext(ctx, `
		SELECT state, COUNT(*) as agencies
		FROM agencies, unnest(states) as state
		GROUP BY state
		ORDER BY agencies DESC, state ASC
		LIMIT $1`, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to query top states: %w", err)
	}
	defer rows.Close()

	var items []StateCount
	for rows.Next() {
		var sc StateCount
		if err := rows.Scan(&sc.State, &sc.Agencies); err != nil {
			return nil, fmt.Errorf("failed to scan state count: %w", err)
		}
		items = append(items, sc)
	}
	return items, rows.Err()
}

func (r *PostgresDashboardRepository) TopDestinations(ctx context.Context, agencyID string, limit int) ([]DestinationCount, error) {
	if limit < 1 || limit > 50 {
		limit = 5
	}
	args := []any{limit}
	scope, scopeArgs := agencyScope(agencyID, 2)
	args = append(args, scopeArgs...)

	query := `
		SELECT COALESCE(e.destination, 'unknown') as destination, COUNT(res.id) as reservations
		FROM reservations res
		JOIN trips t ON t.id = res.trip_id
		JOIN experiences e ON e.id = t.experience_id
		WHERE true` + scope + `
		GROUP BY destination
		ORDER BY reservations DESC, destination ASC
		LIMIT $1`

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query top destinations: %w", err)
	}
	defer rows.Close()

	var items []DestinationCount
	for rows.Next() {
		var dc DestinationCount
		if err := rows.Scan(&dc.Destination, &dc.Reservations); err != nil {
			return nil, fmt.Errorf("failed to scan destination count: %w", err)
		}
		items = append(items, dc)
	}
	return items, rows.Err()
}

func (r *PostgresDashboardRepository) ReservationTrend(ctx context.Context, agencyID string, months int) ([]TrendPoint, error) {
	if months < 1 || months > 36 {
		months = 12
	}
	args := []any{months}
	scope, scopeArgs := agencyScope(agencyID, 2)
	args = append(args, scopeArgs...)

	// generate_series keeps empty months in the output; the agency
	// filter lives in the join so they stay empty instead of vanishing
	query := `
		SELECT
			to_char(m.month, 'YYYY-MM') as month,
			COUNT(res.id) as reservations
		FROM generate_series(
			date_trunc('month', now()) - make_interval(months => $1 - 1),
			date_trunc('month', now()),
			'1 month'
		) as m(month)
		LEFT JOIN reservations res
			JOIN trips t ON t.id = res.trip_id` + scope + `
			ON date_trunc('month', res.created_at) = m.month
		GROUP BY m.month
		ORDER BY m.month ASC`

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query reservation trend: %w", err)
	}
	defer rows.Close()

	var items []TrendPoint
	for rows.Next() {
		var tp TrendPoint
		if err := rows.Scan(&tp.Month, &tp.Reservations); err != nil {
			return nil, fmt.Errorf("failed to scan trend point: %w", err)
		}
		items = append(items, tp)
	}
	return items, rows.Err()
}
