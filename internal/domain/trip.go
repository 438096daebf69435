package domain

import "database/sql"

// Trip scheduled departure of an experience (trips table).
type Trip struct {
	TripID   string `db:"id"`
	AgencyID string `db:"agency_id"`

	ExperienceID sql.NullString `db:"experience_id"`
	GuideID      sql.NullString `db:"guide_id"`

	StartDate sql.NullTime `db:"start_date"`
	EndDate   sql.NullTime `db:"end_date"`

	Price          sql.NullFloat64 `db:"price"`
	SeatsAvailable sql.NullInt64   `db:"seats_available"`
	ImageURL       sql.NullString  `db:"image_url"`
	IsFeatured     bool            `db:"is_featured"`
	AgencyRating   sql.NullFloat64 `db:"agency_rating"`

	CreatedAt sql.NullTime `db:"created_at"`

	// joined rows, populated by the repository on detail reads
	Experience *Experience `db:"-"`
	Guide      *Guide      `db:"-"`
}
