package repository

import (
	"context"
	"database/sql"
	"fmt"
	"strings"

	"travia-admin/internal/domain"
)

type PostgresGuidesRepository struct {
	db *sql.DB
}

func NewPostgresGuidesRepository(db *sql.DB) *PostgresGuidesRepository {
	return &PostgresGuidesRepository{db: db}
}

var _ GuidesRepository = (*PostgresGuidesRepository)(nil)

const guideColumns = `
	id::text,
	agency_id::text,
	first_name,
	last_name,
	vat,
	email,
	password,
	COALESCE(status, 'available') as status,
	created_at
`

func scanGuide(row interface{ Scan(...any) error }) (*domain.Guide, error) {
	var g domain.Guide
	var passwordHash []byte
	err := row.Scan(
		&g.GuideID,
		&g.AgencyID,
		&g.FirstName,
		&g.LastName,
		&g.VAT,
		&g.Email,
		&passwordHash,
		&g.Status,
		&g.CreatedAt,
	)
	if err != nil {
		return nil, err
	}
	g.PasswordHash = passwordHash
	return &g, nil
}

func (r *PostgresGuidesRepository) GetGuide(ctx context.Context, agencyID, guideID string) (*domain.Guide, error) {
	if agencyID == "" || guideID == "" {
		return nil, ErrNotFound
	}
	query := `SELECT ` + guideColumns + ` FROM guides WHERE agency_id = $1::uuid AND id = $2::uuid`
	g, err := scanGuide(r.db.QueryRowContext(ctx, query, agencyID, guideID))
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to get guide: %w", err)
	}
	return g, nil
}

func (r *PostgresGuidesRepository) ListGuides(ctx context.Context, agencyID string, filters GuideFilters) ([]*domain.Guide, error) {
	where := []string{"agency_id = $1::uuid"}
	args := []any{agencyID}
	if filters.Status != "" {
		args = append(args, filters.Status)
		where = append(where, fmt.Sprintf("status = $%d", len(args)))
	}
	if filters.Search != "" {
		args = append(args, "%"+strings.ToLower(filters.Search)+"%")
		where = append(where, fmt.Sprintf(
			"(lower(first_name) LIKE $%d OR lower(COALESCE(last_name, '')) LIKE $%d OR lower(COALESCE(email, '')) LIKE $%d)",
			len(args), len(args), len(args)))
	}

	query := `SELECT ` + guideColumns + ` FROM guides WHERE ` + strings.Join(where, " AND ") +
		` ORDER BY created_at DESC`

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list guides: %w", err)
	}
	defer rows.Close()

	var items []*domain.Guide
	for rows.Next() {
		g, err := scanGuide(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan guide: %w", err)
		}
		items = append(items, g)
	}
	return items, rows.Err()
}

func (r *PostgresGuidesRepository) CreateGuide(ctx context.Context, guide *domain.Guide) (string, error) {
	var id string
	err := r.db.QueryRowContext(ctx, `
		INSERT INTO guides (agency_id, first_name, last_name, vat, email, password, status)
		VALUES ($1::uuid, $2, $3, $4, $5, $6, $7)
		RETURNING id::text`,
		guide.AgencyID,
		guide.FirstName,
		guide.LastName,
		guide.VAT,
		guide.Email,
		string(guide.PasswordHash), // password column is text
		guide.Status,
	).Scan(&id)
	if err != nil {
		return "", fmt.Errorf("failed to create guide: %w", err)
	}
	return id, nil
}

func (r *PostgresGuidesRepository) SetGuideStatus(ctx context.Context, agencyID, guideID, status string) error {
	res, err := r.db.ExecContext(ctx,
		`UPDATE guides SET status = $1 WHERE agency_id = $2::uuid AND id = $3::uuid`,
		status, agencyID, guideID)
	if err != nil {
		return fmt.Errorf("failed to update guide status: %w", err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return ErrNotFound
	}
	return nil
}
