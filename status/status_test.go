package status

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

var day = time.Date(2026, 8, 24, 0, 0, 0, 0, time.UTC)

func at(clock string) time.Time {
	t, err := time.Parse("2006-01-02 15:04:05", "2026-08-24 "+clock)
	if err != nil {
		panic(err)
	}
	return t.UTC()
}

// TestComputeMatchStatus_Boundaries tests inclusive start/end instants
func TestComputeMatchStatus_Boundaries(t *testing.T) {
	// Match 18:00-19:00.
	cases := []struct {
		now  time.Time
		want MatchStatus
	}{
		{at("17:59:59"), MatchUpcoming},
		{at("18:00:00"), MatchInProgress},
		{at("18:30:00"), MatchInProgress},
		{at("19:00:00"), MatchInProgress},
		{at("19:00:01"), MatchCompleted},
	}
	for _, tc := range cases {
		got, err := ComputeMatchStatus(day, "18:00", 60, tc.now)
		assert.NoError(t, err)
		assert.Equal(t, tc.want, got, "now=%s", tc.now)
	}
}

// TestComputeMatchStatus_InvalidTime tests malformed start times are rejected
func TestComputeMatchStatus_InvalidTime(t *testing.T) {
	_, err := ComputeMatchStatus(day, "26:00", 60, at("12:00:00"))
	assert.Error(t, err)
}

// TestMatchDisplayLabel tests upcoming maps to "open", the rest pass through
func TestMatchDisplayLabel(t *testing.T) {
	assert.Equal(t, "open", MatchDisplayLabel(MatchUpcoming))
	assert.Equal(t, "in_progress", MatchDisplayLabel(MatchInProgress))
	assert.Equal(t, "completed", MatchDisplayLabel(MatchCompleted))
}

// TestComputeBookingStatus_PendingLapses tests pending bookings lapse once
// the slot starts
func TestComputeBookingStatus_PendingLapses(t *testing.T) {
	// Slot starts 18:00.
	got, err := ComputeBookingStatus(day, "18:00", BookingPendingApproval, at("17:59:00"))
	assert.NoError(t, err)
	assert.Equal(t, BookingPendingApproval, got)

	got, err = ComputeBookingStatus(day, "18:00", BookingPendingApproval, at("18:01:00"))
	assert.NoError(t, err)
	assert.Equal(t, BookingLapsed, got)
}

// TestComputeBookingStatus_TerminalPassThrough tests human decisions are verbatim
func TestComputeBookingStatus_TerminalPassThrough(t *testing.T) {
	for _, stored := range []BookingStatus{BookingApproved, BookingRejected} {
		got, err := ComputeBookingStatus(day, "18:00", stored, at("23:00:00"))
		assert.NoError(t, err)
		assert.Equal(t, stored, got)
	}
}

// TestIsBookingActionable tests actionability tracks the pending state only
func TestIsBookingActionable(t *testing.T) {
	assert.True(t, IsBookingActionable(BookingPendingApproval))
	assert.False(t, IsBookingActionable(BookingApproved))
	assert.False(t, IsBookingActionable(BookingRejected))
	assert.False(t, IsBookingActionable(BookingLapsed))
}
