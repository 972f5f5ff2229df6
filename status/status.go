// Package status derives the lifecycle state of matches and bookings from
// their stored timestamps and the current time. A stored status field is
// never trusted where a live computation is possible; storage only holds the
// sub-states a human decided (booking approval/rejection).
package status

import (
	"time"

	"github.com/devakhil7/plyr-sub003/timeutil"
)

type MatchStatus string

const (
	MatchUpcoming   MatchStatus = "upcoming"
	MatchInProgress MatchStatus = "in_progress"
	MatchCompleted  MatchStatus = "completed"
)

type BookingStatus string

const (
	BookingPendingApproval BookingStatus = "pending_approval"
	BookingApproved        BookingStatus = "approved"
	BookingRejected        BookingStatus = "rejected"
	BookingLapsed          BookingStatus = "lapsed"
)

// ComputeMatchStatus resolves a match's state at the given instant. Both
// boundaries are inclusive: a match is in progress at its exact start and at
// its exact end.
func ComputeMatchStatus(date time.Time, startTime string, durationMinutes int, now time.Time) (MatchStatus, error) {
	start, err := timeutil.At(date, startTime)
	if err != nil {
		return "", err
	}
	end := start.Add(time.Duration(durationMinutes) * time.Minute)

	switch {
	case now.Before(start):
		return MatchUpcoming, nil
	case !now.After(end):
		return MatchInProgress, nil
	default:
		return MatchCompleted, nil
	}
}

// MatchDisplayLabel maps a resolved match status to its listing label.
// Upcoming matches are shown as joinable.
func MatchDisplayLabel(s MatchStatus) string {
	if s == MatchUpcoming {
		return "open"
	}
	return string(s)
}

// ComputeBookingStatus resolves a booking's state at the given instant.
// Approved and rejected are terminal human decisions and pass through
// verbatim. A pending pay-at-venue booking lapses once its start time passes
// without a host decision. Any other stored value also passes through.
func ComputeBookingStatus(date time.Time, startTime string, stored BookingStatus, now time.Time) (BookingStatus, error) {
	if stored != BookingPendingApproval {
		return stored, nil
	}
	start, err := timeutil.At(date, startTime)
	if err != nil {
		return "", err
	}
	if now.After(start) {
		return BookingLapsed, nil
	}
	return BookingPendingApproval, nil
}

// IsBookingActionable reports whether a host can still approve or reject the
// booking: exactly when its resolved status is still pending.
func IsBookingActionable(resolved BookingStatus) bool {
	return resolved == BookingPendingApproval
}
