package domain

import "database/sql"

// User traveler account (users table).
// These are marketplace customers; they never log into the dashboard,
// the admin only lists and moderates them.
type User struct {
	UserID   string `db:"id"`
	Email    string `db:"email"`
	FullName string `db:"full_name"`

	AvatarURL sql.NullString `db:"avatar_url"`
	State     sql.NullString `db:"state"`
	Age       sql.NullString `db:"age"`

	Role   string `db:"role"`   // usuario / agencia / admin
	Status string `db:"status"` // active / inactive

	ReservationsCount int `db:"reservations_count"`

	CreatedAt sql.NullTime `db:"created_at"`
}
