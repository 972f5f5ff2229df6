package models

import (
	"time"

	"github.com/devakhil7/plyr-sub003/status"
)

// Booking stores only the sub-state a host can set (pending/approved/
// rejected) plus its timestamps; services resolve the effective status
// against the clock before returning a booking, so Status may come back as
// "lapsed" even though the row still says pending.
type Booking struct {
	ID              int                  `json:"id" db:"id"`
	VenueID         int                  `json:"venue_id" db:"venue_id"`
	UserID          int                  `json:"user_id" db:"user_id"`
	Date            time.Time            `json:"date" db:"date"`
	StartTime       string               `json:"start_time" db:"start_time"`
	DurationMinutes int                  `json:"duration_minutes" db:"duration_minutes"`
	TotalPrice      int64                `json:"total_price" db:"total_price"`
	AmountPaid      int64                `json:"amount_paid" db:"amount_paid"`
	Status          status.BookingStatus `json:"status" db:"status"`
	PaymentOrderID  *string              `json:"payment_order_id,omitempty" db:"payment_order_id"`
	CreatedAt       time.Time            `json:"created_at" db:"created_at"`

	Venue      *Venue `json:"venue,omitempty" db:"-"`
	Actionable bool   `json:"actionable" db:"-"`
}

// RemainingBalance is what is still payable on an advance-paid booking.
func (b Booking) RemainingBalance() int64 {
	if b.AmountPaid >= b.TotalPrice {
		return 0
	}
	return b.TotalPrice - b.AmountPaid
}
