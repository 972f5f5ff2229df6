package services

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/devakhil7/plyr-sub003/models"
)

// TestValidateTournamentDates_Ordering tests that registration must close on
// or before the start date, and the start must precede the end.
func TestValidateTournamentDates_Ordering(t *testing.T) {
	reg := time.Date(2026, 9, 1, 0, 0, 0, 0, time.UTC)
	start := time.Date(2026, 9, 5, 0, 0, 0, 0, time.UTC)
	end := time.Date(2026, 9, 7, 0, 0, 0, 0, time.UTC)

	assert.NoError(t, validateTournamentDates(reg, start, end))
	assert.NoError(t, validateTournamentDates(start, start, end), "registration may close exactly at the start")

	assert.ErrorIs(t, validateTournamentDates(start.Add(time.Hour), start, end), ErrTournamentInvalidRegDate)
	assert.ErrorIs(t, validateTournamentDates(reg, end, end), ErrTournamentInvalidDateRange)
	assert.ErrorIs(t, validateTournamentDates(time.Time{}, start, end), ErrTournamentDatesRequired)
}

// TestValidatePricingRule_Windows tests the stored-rule shape checks: day
// set, parseable times, forward window, positive price.
func TestValidatePricingRule_Windows(t *testing.T) {
	valid := models.VenuePricingRule{
		Days:         []string{"Monday", "Friday"},
		StartTime:    "18:00",
		EndTime:      "20:00",
		PricePerHour: 800,
	}
	assert.NoError(t, validatePricingRule(valid))

	noDays := valid
	noDays.Days = nil
	assert.ErrorIs(t, validatePricingRule(noDays), ErrValidationFailed)

	badClock := valid
	badClock.StartTime = "25:00"
	assert.ErrorIs(t, validatePricingRule(badClock), ErrValidationFailed)

	inverted := valid
	inverted.StartTime, inverted.EndTime = "20:00", "18:00"
	assert.ErrorIs(t, validatePricingRule(inverted), ErrValidationFailed)

	freeRule := valid
	freeRule.PricePerHour = 0
	assert.ErrorIs(t, validatePricingRule(freeRule), ErrValidationFailed)
}

// TestTournamentStatusTransitions tests the allowed lifecycle moves and that
// terminal states stay terminal.
func TestTournamentStatusTransitions(t *testing.T) {
	assert.True(t, isValidTournamentTransition(models.TournamentStatusSoon, models.TournamentStatusRegistration))
	assert.True(t, isValidTournamentTransition(models.TournamentStatusRegistration, models.TournamentStatusActive))
	assert.True(t, isValidTournamentTransition(models.TournamentStatusActive, models.TournamentStatusCompleted))
	assert.True(t, isValidTournamentTransition(models.TournamentStatusRegistration, models.TournamentStatusCanceled))
	assert.True(t, isValidTournamentTransition(models.TournamentStatusActive, models.TournamentStatusActive), "no-op transition is allowed")

	assert.False(t, isValidTournamentTransition(models.TournamentStatusCompleted, models.TournamentStatusActive))
	assert.False(t, isValidTournamentTransition(models.TournamentStatusCanceled, models.TournamentStatusRegistration))
	assert.False(t, isValidTournamentTransition(models.TournamentStatusSoon, models.TournamentStatusCompleted))
	assert.False(t, isValidTournamentTransition(models.TournamentStatusActive, models.TournamentStatusRegistration))
}
