package timeutil

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

// TestWeekdayName tests weekday names match pricing rule day names
func TestWeekdayName(t *testing.T) {
	// 2026-08-24 is a Monday
	monday := time.Date(2026, 8, 24, 0, 0, 0, 0, time.UTC)
	assert.Equal(t, "Monday", WeekdayName(monday))
	assert.Equal(t, "Sunday", WeekdayName(monday.AddDate(0, 0, 6)))
}

// TestParseMinuteOfDay tests valid clock strings
func TestParseMinuteOfDay(t *testing.T) {
	cases := map[string]int{
		"00:00": 0,
		"06:30": 390,
		"18:00": 1080,
		"23:59": 1439,
	}
	for clock, want := range cases {
		got, err := ParseMinuteOfDay(clock)
		assert.NoError(t, err)
		assert.Equal(t, want, got, "clock %s", clock)
	}
}

// TestParseMinuteOfDay_Invalid tests malformed input is rejected
func TestParseMinuteOfDay_Invalid(t *testing.T) {
	for _, clock := range []string{"", "18", "24:00", "12:60", "ab:cd", "-1:30"} {
		_, err := ParseMinuteOfDay(clock)
		assert.Error(t, err, "clock %q", clock)
	}
}

// TestAt tests combining a date with a clock string
func TestAt(t *testing.T) {
	date := time.Date(2026, 8, 24, 15, 44, 12, 0, time.UTC)
	got, err := At(date, "19:30")
	assert.NoError(t, err)
	assert.Equal(t, time.Date(2026, 8, 24, 19, 30, 0, 0, time.UTC), got)
}

// TestAt_Invalid tests malformed clock strings surface an error
func TestAt_Invalid(t *testing.T) {
	_, err := At(time.Now(), "25:99")
	assert.Error(t, err)
}
