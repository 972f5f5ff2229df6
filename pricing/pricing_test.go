package pricing

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

// 2026-08-24 is a Monday.
var monday = time.Date(2026, 8, 24, 0, 0, 0, 0, time.UTC)

var eveningPeak = Rule{
	Days:         []string{"Monday", "Tuesday", "Wednesday", "Thursday", "Friday"},
	StartTime:    "18:00",
	EndTime:      "20:00",
	PricePerHour: 800,
}

// TestEffectiveHourlyRate_NoRules tests the base price fallback
func TestEffectiveHourlyRate_NoRules(t *testing.T) {
	rate, err := EffectiveHourlyRate(500, nil, monday, "10:00")
	assert.NoError(t, err)
	assert.Equal(t, 500.0, rate)
}

// TestEffectiveHourlyRate_InsideWindow tests rule day and window matching
func TestEffectiveHourlyRate_InsideWindow(t *testing.T) {
	rules := []Rule{eveningPeak}

	rate, err := EffectiveHourlyRate(500, rules, monday, "18:00")
	assert.NoError(t, err)
	assert.Equal(t, 800.0, rate)

	// End of window is exclusive.
	rate, err = EffectiveHourlyRate(500, rules, monday, "20:00")
	assert.NoError(t, err)
	assert.Equal(t, 500.0, rate)

	// Saturday is not in the rule's day set.
	saturday := monday.AddDate(0, 0, 5)
	rate, err = EffectiveHourlyRate(500, rules, saturday, "18:30")
	assert.NoError(t, err)
	assert.Equal(t, 500.0, rate)
}

// TestEffectiveHourlyRate_FirstMatchWins tests list order beats specificity
func TestEffectiveHourlyRate_FirstMatchWins(t *testing.T) {
	rules := []Rule{
		{Days: []string{"Monday"}, StartTime: "00:00", EndTime: "23:59", PricePerHour: 600},
		eveningPeak,
	}

	rate, err := EffectiveHourlyRate(500, rules, monday, "19:00")
	assert.NoError(t, err)
	assert.Equal(t, 600.0, rate, "the earlier rule wins even though the peak rule also matches")
}

// TestBookingPrice_NoRules tests rule-free pricing is base*duration/60
func TestBookingPrice_NoRules(t *testing.T) {
	price, err := BookingPrice(500, nil, monday, "10:00", 90)
	assert.NoError(t, err)
	assert.Equal(t, int64(750), price)
}

// TestBookingPrice_FullyInsideWindow tests a booking entirely within one rule
func TestBookingPrice_FullyInsideWindow(t *testing.T) {
	price, err := BookingPrice(500, []Rule{eveningPeak}, monday, "18:00", 120)
	assert.NoError(t, err)
	assert.Equal(t, int64(1600), price)
}

// TestBookingPrice_StraddlesBoundary tests the worked example: base 500/h,
// peak 800/h for 18:00-20:00, booking 19:30-20:30.
func TestBookingPrice_StraddlesBoundary(t *testing.T) {
	price, err := BookingPrice(500, []Rule{eveningPeak}, monday, "19:30", 60)
	assert.NoError(t, err)
	// 30 min at 800 + 30 min at 500 = 400 + 250.
	assert.Equal(t, int64(650), price)
}

// TestBookingPrice_ChunkStartDecidesRate tests that a rule boundary inside a
// chunk does not split the chunk
func TestBookingPrice_ChunkStartDecidesRate(t *testing.T) {
	// Booking 17:45-18:45: chunks start at 17:45, 18:15. The first chunk's
	// start is off-peak even though the peak window begins inside it.
	price, err := BookingPrice(500, []Rule{eveningPeak}, monday, "17:45", 60)
	assert.NoError(t, err)
	assert.Equal(t, int64(650), price)
}

// TestBookingPrice_InvalidInput tests validation of duration and clock
func TestBookingPrice_InvalidInput(t *testing.T) {
	_, err := BookingPrice(500, nil, monday, "10:00", 0)
	assert.Error(t, err)

	_, err = BookingPrice(500, nil, monday, "25:00", 60)
	assert.Error(t, err)
}

// TestPriceRange tests min/max over base and rule prices
func TestPriceRange(t *testing.T) {
	display := PriceRange(500, []Rule{
		eveningPeak,
		{Days: []string{"Sunday"}, StartTime: "06:00", EndTime: "09:00", PricePerHour: 400},
	})
	assert.Equal(t, 400.0, display.Min)
	assert.Equal(t, 800.0, display.Max)
	assert.True(t, display.HasPeakPricing)
}

// TestPriceRange_NoRules tests the flat-price display
func TestPriceRange_NoRules(t *testing.T) {
	display := PriceRange(500, nil)
	assert.Equal(t, 500.0, display.Min)
	assert.Equal(t, 500.0, display.Max)
	assert.False(t, display.HasPeakPricing)
}
