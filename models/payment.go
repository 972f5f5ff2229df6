package models

import "time"

type PaymentPurpose string

const (
	PaymentPurposeBooking PaymentPurpose = "booking"
	PaymentPurposeTeamFee PaymentPurpose = "team_fee"
)

// Payment is one credited gateway callback. PaymentID carries a unique
// constraint: a retried callback for the same gateway payment inserts zero
// rows, which is how at-most-once crediting is enforced.
type Payment struct {
	ID        int            `json:"id" db:"id"`
	PaymentID string         `json:"payment_id" db:"payment_id"`
	OrderID   string         `json:"order_id" db:"order_id"`
	Amount    int64          `json:"amount" db:"amount"`
	Purpose   PaymentPurpose `json:"purpose" db:"purpose"`
	BookingID *int           `json:"booking_id,omitempty" db:"booking_id"`
	TeamID    *int           `json:"team_id,omitempty" db:"team_id"`
	CreatedAt time.Time      `json:"created_at" db:"created_at"`
}
