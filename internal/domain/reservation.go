package domain

import "database/sql"

// Reservation traveler booking on a trip (reservations table).
type Reservation struct {
	ReservationID string `db:"id"`
	TripID        string `db:"trip_id"`
	UserID        string `db:"user_id"`

	TotalPrice float64 `db:"total_price"`

	PaymentMethod    sql.NullString `db:"payment_method"`    // card / cash / transfer / paypal
	PaymentReference sql.NullString `db:"payment_reference"`
	PaymentStatus    string         `db:"payment_status"` // paid / pending / failed / refunded

	PartialPayment    bool            `db:"partial_payment"`
	PartialPaidAmount sql.NullFloat64 `db:"partial_paid_amount"`

	CreatedAt sql.NullTime `db:"created_at"`

	// joined traveler row, populated on detail reads
	User *User `db:"-"`
}

const (
	PaymentStatusPaid     = "paid"
	PaymentStatusPending  = "pending"
	PaymentStatusFailed   = "failed"
	PaymentStatusRefunded = "refunded"
)
