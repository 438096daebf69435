package domain

import (
	"database/sql"
	"encoding/json"

	"github.com/lib/pq"
)

// Agency business tenant (agencies table).
// Supplies experiences/trips and authenticates with email + password.
// Only active agencies may log in.
type Agency struct {
	// identity
	AgencyID string `db:"id"`
	Name     string `db:"name"`
	Email    string `db:"email"` // unique, matched case-insensitively at login

	// credentials
	PasswordHash []byte `db:"password"` // bcrypt

	// profile
	Description sql.NullString `db:"description"`
	LogoURL     sql.NullString `db:"logo_url"`
	State       sql.NullString `db:"state"`
	States      pq.StringArray `db:"states"` // operating states

	// marketplace standing
	Rating      sql.NullFloat64 `db:"rating"`
	ReviewCount sql.NullInt64   `db:"review_count"`
	IsPremium   bool            `db:"is_premium"`
	IsFeatured  bool            `db:"is_featured"`

	// status: active / inactive
	Status string `db:"status"`

	// social links, free-form JSON object
	Social json.RawMessage `db:"social"`

	CreatedAt sql.NullTime `db:"created_at"`
}

const (
	AgencyStatusActive   = "active"
	AgencyStatusInactive = "inactive"
)
