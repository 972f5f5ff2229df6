// Package timeutil holds the small wall-clock helpers shared by the pricing
// and status packages: weekday naming, minute-of-day arithmetic and combining
// a calendar date with a "HH:MM" clock string into a comparable instant.
package timeutil

import (
	"fmt"
	"strconv"
	"strings"
	"time"
)

const MinutesPerDay = 24 * 60

// WeekdayName returns the English weekday name for the given date, matching
// the day names used in pricing rules ("Monday".."Sunday").
func WeekdayName(date time.Time) string {
	return date.Weekday().String()
}

// ParseMinuteOfDay converts a "HH:MM" clock string to minutes since midnight.
// Input is validated strictly: both fields are required, hours 0-23,
// minutes 0-59.
func ParseMinuteOfDay(clock string) (int, error) {
	parts := strings.SplitN(clock, ":", 2)
	if len(parts) != 2 {
		return 0, fmt.Errorf("invalid time %q: expected HH:MM", clock)
	}
	hour, err := strconv.Atoi(parts[0])
	if err != nil {
		return 0, fmt.Errorf("invalid time %q: bad hour: %w", clock, err)
	}
	minute, err := strconv.Atoi(parts[1])
	if err != nil {
		return 0, fmt.Errorf("invalid time %q: bad minute: %w", clock, err)
	}
	if hour < 0 || hour > 23 {
		return 0, fmt.Errorf("invalid time %q: hour out of range", clock)
	}
	if minute < 0 || minute > 59 {
		return 0, fmt.Errorf("invalid time %q: minute out of range", clock)
	}
	return hour*60 + minute, nil
}

// At combines a calendar date with a "HH:MM" clock string, keeping the
// date's location. The date's own clock component is discarded.
func At(date time.Time, clock string) (time.Time, error) {
	minutes, err := ParseMinuteOfDay(clock)
	if err != nil {
		return time.Time{}, err
	}
	return time.Date(date.Year(), date.Month(), date.Day(), minutes/60, minutes%60, 0, 0, date.Location()), nil
}
