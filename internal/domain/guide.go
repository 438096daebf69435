package domain

import "database/sql"

// Guide trip guide employed by an agency (guides table).
type Guide struct {
	GuideID  string `db:"id"`
	AgencyID string `db:"agency_id"`

	FirstName string         `db:"first_name"`
	LastName  sql.NullString `db:"last_name"`
	VAT       sql.NullString `db:"vat"`
	Email     sql.NullString `db:"email"`

	PasswordHash []byte `db:"password"` // bcrypt

	Status string `db:"status"` // available / on_trip / unavailable

	CreatedAt sql.NullTime `db:"created_at"`
}

const (
	GuideStatusAvailable   = "available"
	GuideStatusOnTrip      = "on_trip"
	GuideStatusUnavailable = "unavailable"
)
