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

type PostgresExperiencesRepository struct {
	db *sql.DB
}

func NewPostgresExperiencesRepository(db *sql.DB) *PostgresExperiencesRepository {
	return &PostgresExperiencesRepository{db: db}
}

var _ ExperiencesRepository = (*PostgresExperiencesRepository)(nil)

// category names are aggregated in the same query to avoid N+1 lookups
const experienceColumns = `
	e.id::text,
	e.agency_id::text,
	e.title,
	e.description,
	e.origin,
	e.destination,
	e.origin_location,
	e.destination_location,
	e.duration,
	COALESCE(e.difficulty, 'mid') as difficulty,
	e.image_url,
	COALESCE(e.active, true) as active,
	e.created_at,
	COALESCE(
		(SELECT array_agg(c.name ORDER BY c.name)
		 FROM experience_categories ec
		 JOIN categories c ON c.id = ec.category_id
		 WHERE ec.experience_id = e.id),
		'{}'::text[]
	) as categories
`

func scanExperience(row interface{ Scan(...any) error }) (*domain.Experience, error) {
	var e domain.Experience
	var originLoc, destLoc []byte
	var categories pq.StringArray
	err := row.Scan(
		&e.ExperienceID,
		&e.AgencyID,
		&e.Title,
		&e.Description,
		&e.Origin,
		&e.Destination,
		&originLoc,
		&destLoc,
		&e.Duration,
		&e.Difficulty,
		&e.ImageURL,
		&e.Active,
		&e.CreatedAt,
		&categories,
	)
	if err != nil {
		return nil, err
	}
	e.OriginLocation = json.RawMessage(originLoc)
	e.DestinationLocation = json.RawMessage(destLoc)
	e.Categories = categories
	return &e, nil
}

func (r *PostgresExperiencesRepository) GetExperience(ctx context.Context, agencyID, experienceID string) (*domain.Experience, error) {
	if agencyID == "" || experienceID == "" {
		return nil, ErrNotFound
	}
	query := `SELECT ` + experienceColumns + ` FROM experiences e WHERE e.agency_id = $1::uuid AND e.id = $2::uuid`
	e, err := scanExperience(r.db.QueryRowContext(ctx, query, agencyID, experienceID))
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to get experience: %w", err)
	}
	return e, nil
}

func (r *PostgresExperiencesRepository) ListExperiences(ctx context.Context, agencyID string, filters ExperienceFilters) ([]*domain.Experience, error) {
	where := []string{"e.agency_id = $1::uuid"}
	args := []any{agencyID}
	if filters.Active != nil {
		args = append(args, *filters.Active)
		where = append(where, fmt.Sprintf("e.active = $%d", len(args)))
	}
	if filters.Category != "" {
		args = append(args, filters.Category)
		where = append(where, fmt.Sprintf(
			`EXISTS (SELECT 1 FROM experience_categories ec
			 JOIN categories c ON c.id = ec.category_id
			 WHERE ec.experience_id = e.id AND c.name = $%d)`, len(args)))
	}
	if filters.Search != "" {
		args = append(args, "%"+strings.ToLower(filters.Search)+"%")
		where = append(where, fmt.Sprintf("lower(e.title) LIKE $%d", len(args)))
	}

	query := `SELECT ` + experienceColumns + ` FROM experiences e WHERE ` +
		strings.Join(where, " AND ") + ` ORDER BY e.created_at DESC`

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list experiences: %w", err)
	}
	defer rows.Close()

	var items []*domain.Experience
	for rows.Next() {
		e, err := scanExperience(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan experience: %w", err)
		}
		items = append(items, e)
	}
	return items, rows.Err()
}

func (r *PostgresExperiencesRepository) CreateExperience(ctx context.Context, exp *domain.Experience) (string, error) {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return "", fmt.Errorf("failed to begin tx: %w", err)
	}
	defer tx.Rollback()

	var id string
	err = tx.QueryRowContext(ctx, `
		INSERT INTO experiences (agency_id, title, description, origin, destination,
			origin_location, destination_location, duration, difficulty, image_url, active)
		VALUES ($1::uuid, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)
		RETURNING id::text`,
		exp.AgencyID,
		exp.Title,
		exp.Description,
		exp.Origin,
		exp.Destination,
		nullableJSON(exp.OriginLocation),
		nullableJSON(exp.DestinationLocation),
		exp.Duration,
		exp.Difficulty,
		exp.ImageURL,
		exp.Active,
	).Scan(&id)
	if err != nil {
		return "", fmt.Errorf("failed to create experience: %w", err)
	}

	for _, name := range exp.Categories {
		var categoryID string
		err = tx.QueryRowContext(ctx, `
			INSERT INTO categories (name) VALUES ($1)
			ON CONFLICT (name) DO UPDATE SET name = EXCLUDED.name
			RETURNING id::text`, name).Scan(&categoryID)
		if err != nil {
			return "", fmt.Errorf("failed to upsert category %q: %w", name, err)
		}
		if _, err = tx.ExecContext(ctx, `
			INSERT INTO experience_categories (experience_id, category_id)
			VALUES ($1::uuid, $2::uuid)
			ON CONFLICT DO NOTHING`, id, categoryID); err != nil {
			return "", fmt.Errorf("failed to link category %q: %w", name, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return "", fmt.Errorf("failed to commit experience: %w", err)
	}
	return id, nil
}

func (r *PostgresExperiencesRepository) SetExperienceActive(ctx context.Context, agencyID, experienceID string, active bool) error {
	res, err := r.db.ExecContext(ctx,
		`UPDATE experiences SET active = $1 WHERE agency_id = $2::uuid AND id = $3::uuid`,
		active, agencyID, experienceID)
	if err != nil {
		return fmt.Errorf("failed to update experience active flag: %w", err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return ErrNotFound
	}
	return nil
}

func nullableJSON(raw json.RawMessage) any {
	if len(raw) == 0 {
		return nil
	}
	return []byte(raw)
}
