package domain

import (
	"database/sql"
	"encoding/json"
)

// MeetingPoint pickup request by a traveller on a trip (meeting_points table).
// Location holds the GeoJSON Point payload as stored ([lng, lat]).
type MeetingPoint struct {
	MeetingPointID string `db:"id"`
	TripID         string `db:"trip_id"`
	TravellerID    string `db:"traveller_id"`

	Location   json.RawMessage `db:"location"`
	PickupTime sql.NullTime    `db:"pickup_time"`

	// 1-based position on the optimized route; NULL until optimized
	StopOrder sql.NullInt64 `db:"stop_order"`

	Status string `db:"status"` // pending / confirmed / rejected

	CreatedAt sql.NullTime `db:"created_at"`

	// joined traveller account, populated on list reads
	Traveller *User `db:"-"`
}

const (
	MeetingPointPending   = "pending"
	MeetingPointConfirmed = "confirmed"
	MeetingPointRejected  = "rejected"
)
