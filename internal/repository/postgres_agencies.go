package repository

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"strings"

	"travia-admin/internal/domain"

	"github.com/lib/pq"
)

// PostgresAgenciesRepository agencies data access over lib/pq.
type PostgresAgenciesRepository struct {
	db *sql.DB
}

func NewPostgresAgenciesRepository(db *sql.DB) *PostgresAgenciesRepository {
	return &PostgresAgenciesRepository{db: db}
}

var _ AgenciesRepository = (*PostgresAgenciesRepository)(nil)

const agencyColumns = `
	id::text,
	name,
	email,
	password,
	description,
	logo_url,
	state,
	COALESCE(states, '{}'::text[]) as states,
	rating,
	review_count,
	COALESCE(is_premium, false) as is_premium,
	COALESCE(is_featured, false) as is_featured,
	COALESCE(status, 'active') as status,
	COALESCE(social, '{}'::jsonb) as social,
	created_at
`

func scanAgency(row interface{ Scan(...any) error }) (*domain.Agency, error) {
	var a domain.Agency
	var passwordHash []byte
	var social json.RawMessage
	err := row.Scan(
		&a.AgencyID,
		&a.Name,
		&a.Email,
		&passwordHash,
		&a.Description,
		&a.LogoURL,
		&a.State,
		(*pq.StringArray)(&a.States),
		&a.Rating,
		&a.ReviewCount,
		&a.IsPremium,
		&a.IsFeatured,
		&a.Status,
		&social,
		&a.CreatedAt,
	)
	if err != nil {
		return nil, err
	}
	a.PasswordHash = passwordHash
	a.Social = social
	return &a, nil
}

func (r *PostgresAgenciesRepository) GetAgency(ctx context.Context, agencyID string) (*domain.Agency, error) {
	if agencyID == "" {
		return nil, ErrNotFound
	}
	query := `SELECT ` + agencyColumns + ` FROM agencies WHERE id = $1::uuid`
	a, err := scanAgency(r.db.QueryRowContext(ctx, query, agencyID))
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to get agency: %w", err)
	}
	return a, nil
}

func (r *PostgresAgenciesRepository) GetAgencyByEmail(ctx context.Context, email string) (*domain.Agency, error) {
	email = strings.ToLower(strings.TrimSpace(email))
	if email == "" {
		return nil, ErrNotFound
	}
	query := `SELECT ` + agencyColumns + ` FROM agencies WHERE lower(email) = $1`
	a, err := scanAgency(r.db.QueryRowContext(ctx, query, email))
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to get agency by email: %w", err)
	}
	return a, nil
}

func (r *PostgresAgenciesRepository) ListAgencies(ctx context.Context, filters AgencyFilters, page, size int) ([]*domain.Agency, int, error) {
	if page < 1 {
		page = 1
	}
	if size < 1 || size > 200 {
		size = 20
	}

	where := []string{}
	args := []any{}
	if filters.Status != "" {
		args = append(args, filters.Status)
		where = append(where, fmt.Sprintf("status = $%d", len(args)))
	}
	if filters.State != "" {
		args = append(args, filters.State)
		where = append(where, fmt.Sprintf("(state = $%d OR $%d = ANY(states))", len(args), len(args)))
	}
	if filters.Search != "" {
		args = append(args, "%"+strings.ToLower(filters.Search)+"%")
		where = append(where, fmt.Sprintf("(lower(name) LIKE $%d OR lower(email) LIKE $%d)", len(args), len(args)))
	}

	cond := ""
	if len(where) > 0 {
		cond = " WHERE " + strings.Join(where, " AND ")
	}

	var total int
	if err := r.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM agencies`+cond, args...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("failed to count agencies: %w", err)
	}

	args = append(args, size, (page-1)*size)
	query := `SELECT ` + agencyColumns + ` FROM agencies` + cond +
		fmt.Sprintf(` ORDER BY created_at DESC LIMIT $%d OFFSET $%d`, len(args)-1, len(args))

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to list agencies: %w", err)
	}
	defer rows.Close()

	var items []*domain.Agency
	for rows.Next() {
		a, err := scanAgency(rows)
		if err != nil {
			return nil, 0, fmt.Errorf("failed to scan agency: %w", err)
		}
		items = append(items, a)
	}
	return items, total, rows.Err()
}

func (r *PostgresAgenciesRepository) CreateAgency(ctx context.Context, agency *domain.Agency) (string, error) {
	social := agency.Social
	if len(social) == 0 {
		social = json.RawMessage("{}")
	}
	var id string
	err := r.db.QueryRowContext(ctx, `
		INSERT INTO agencies (name, email, password, description, logo_url, state, states,
			rating, review_count, is_premium, is_featured, status, social)
		VALUES ($1, lower($2), $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13)
		RETURNING id::text`,
		agency.Name,
		agency.Email,
		string(agency.PasswordHash), // password column is text
		agency.Description,
		agency.LogoURL,
		agency.State,
		pq.StringArray(agency.States),
		agency.Rating,
		agency.ReviewCount,
		agency.IsPremium,
		agency.IsFeatured,
		agency.Status,
		[]byte(social),
	).Scan(&id)
	if err != nil {
		return "", fmt.Errorf("failed to create agency: %w", err)
	}
	return id, nil
}

func (r *PostgresAgenciesRepository) SetAgencyStatus(ctx context.Context, agencyID, status string) error {
	return r.setAgencyField(ctx, agencyID, "status", status)
}

func (r *PostgresAgenciesRepository) SetAgencyPremium(ctx context.Context, agencyID string, premium bool) error {
	return r.setAgencyField(ctx, agencyID, "is_premium", premium)
}

func (r *PostgresAgenciesRepository) SetAgencyFeatured(ctx context.Context, agencyID string, featured bool) error {
	return r.setAgencyField(ctx, agencyID, "is_featured", featured)
}

func (r *PostgresAgenciesRepository) setAgencyField(ctx context.Context, agencyID, column string, value any) error {
	res, err := r.db.ExecContext(ctx,
		`UPDATE agencies SET `+column+` = $1 WHERE id = $2::uuid`, value, agencyID)
	if err != nil {
		return fmt.Errorf("failed to update agency %s: %w", column, err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return ErrNotFound
	}
	return nil
}
