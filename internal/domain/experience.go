package domain

import (
	"database/sql"
	"encoding/json"
)

// Experience catalog entry owned by an agency (experiences table).
// Trips are scheduled departures of an experience.
type Experience struct {
	ExperienceID string `db:"id"`
	AgencyID     string `db:"agency_id"`

	Title       string         `db:"title"`
	Description sql.NullString `db:"description"`

	// route endpoints; *_location hold GeoJSON Point payloads
	Origin              sql.NullString  `db:"origin"`
	Destination         sql.NullString  `db:"destination"`
	OriginLocation      json.RawMessage `db:"origin_location"`
	DestinationLocation json.RawMessage `db:"destination_location"`

	Duration   sql.NullString `db:"duration"`
	Difficulty string         `db:"difficulty"` // low / mid / high
	ImageURL   sql.NullString `db:"image_url"`
	Active     bool           `db:"active"`

	// category names resolved through experience_categories
	Categories []string `db:"-"`

	CreatedAt sql.NullTime `db:"created_at"`
}

const (
	DifficultyLow  = "low"
	DifficultyMid  = "mid"
	DifficultyHigh = "high"
)
