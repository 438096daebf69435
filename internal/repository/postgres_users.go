package repository

import (
	"context"
	"database/sql"
	"fmt"
	"strings"

	"travia-admin/internal/domain"
)

// PostgresUsersRepository traveler accounts data access.
// reservations_count is derived from the reservations table on read.
type PostgresUsersRepository struct {
	db *sql.DB
}

func NewPostgresUsersRepository(db *sql.DB) *PostgresUsersRepository {
	return &PostgresUsersRepository{db: db}
}

var _ UsersRepository = (*PostgresUsersRepository)(nil)

const userColumns = `
	u.id::text,
	u.email,
	COALESCE(u.full_name, '') as full_name,
	u.avatar_url,
	u.state,
	u.age,
	COALESCE(u.role, 'usuario') as role,
	COALESCE(u.status, 'active') as status,
	(SELECT COUNT(*) FROM reservations res WHERE res.user_id = u.id) as reservations_count,
	u.created_at
`

func scanUser(row interface{ Scan(...any) error }) (*domain.User, error) {
	var u domain.User
	err := row.Scan(
		&u.UserID,
		&u.Email,
		&u.FullName,
		&u.AvatarURL,
		&u.State,
		&u.Age,
		&u.Role,
		&u.Status,
		&u.ReservationsCount,
		&u.CreatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &u, nil
}

func (r *PostgresUsersRepository) GetUser(ctx context.Context, userID string) (*domain.User, error) {
	if userID == "" {
		return nil, ErrNotFound
	}
	query := `SELECT ` + userColumns + ` FROM users u WHERE u.id = $1::uuid`
	u, err := scanUser(r.db.QueryRowContext(ctx, query, userID))
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to get user: %w", err)
	}
	return u, nil
}

func (r *PostgresUsersRepository) ListUsers(ctx context.Context, filters UserFilters, page, size int) ([]*domain.User, int, error) {
	if page < 1 {
		page = 1
	}
	if size < 1 || size > 200 {
		size = 20
	}

	where := []string{}
	args := []any{}
	if filters.Role != "" {
		args = append(args, filters.Role)
		where = append(where, fmt.Sprintf("u.role = $%d", len(args)))
	}
	if filters.Status != "" {
		args = append(args, filters.Status)
		where = append(where, fmt.Sprintf("u.status = $%d", len(args)))
	}
	if filters.State != "" {
		args = append(args, filters.State)
		where = append(where, fmt.Sprintf("u.state = $%d", len(args)))
	}
	if filters.Search != "" {
		args = append(args, "%"+strings.ToLower(filters.Search)+"%")
		where = append(where, fmt.Sprintf("(lower(u.full_name) LIKE $%d OR lower(u.email) LIKE $%d)", len(args), len(args)))
	}

	cond := ""
	if len(where) > 0 {
		cond = " WHERE " + strings.Join(where, " AND ")
	}

	var total int
	if err := r.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM users u`+cond, args...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("failed to count users: %w", err)
	}

	args = append(args, size, (page-1)*size)
	query := `SELECT ` + userColumns + ` FROM users u` + cond +
		fmt.Sprintf(` ORDER BY u.created_at DESC LIMIT $%d OFFSET $%d`, len(args)-1, len(args))

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to list users: %w", err)
	}
	defer rows.Close()

	var items []*domain.User
	for rows.Next() {
		u, err := scanUser(rows)
		if err != nil {
			return nil, 0, fmt.Errorf("failed to scan user: %w", err)
		}
		items = append(items, u)
	}
	return items, total, rows.Err()
}

func (r *PostgresUsersRepository) SetUserStatus(ctx context.Context, userID, status string) error {
	res, err := r.db.ExecContext(ctx,
		`UPDATE users SET status = $1 WHERE id = $2::uuid`, status, userID)
	if err != nil {
		return fmt.Errorf("failed to update user status: %w", err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return ErrNotFound
	}
	return nil
}
