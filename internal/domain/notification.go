package domain

import "time"

// Notification row surfaced to an agency in realtime (notifications table).
// The insert trigger publishes the row as JSON on the listen channel, so
// the JSON tags here double as the wire format of the change feed.
type Notification struct {
	NotificationID string    `json:"id" db:"id"`
	AgencyID       string    `json:"agency_id" db:"agency_id"`
	Title          string    `json:"title" db:"title"`
	Body           string    `json:"body" db:"body"`
	CreatedAt      time.Time `json:"created_at" db:"created_at"`
}
