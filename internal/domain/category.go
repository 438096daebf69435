package domain

import "database/sql"

// Category experience category (categories table).
type Category struct {
	CategoryID string       `db:"id"`
	Name       string       `db:"name"`
	CreatedAt  sql.NullTime `db:"created_at"`
}
