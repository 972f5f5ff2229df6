// Package pricing resolves the effective hourly rate and total price of a
// venue booking against day/time-windowed pricing rules.
//
// Rules are consulted in list order and the first rule whose day set and time
// window match wins. That first-match policy is deliberate: the stored order
// of a venue's rules is a semantically meaningful part of the rule schema,
// not an accident of retrieval.
package pricing

import (
	"fmt"
	"math"
	"strings"
	"time"

	"github.com/devakhil7/plyr-sub003/timeutil"
)

// Bookings are priced in consecutive chunks of at most this many minutes so
// that a booking straddling a peak/off-peak boundary is split across rates.
// A chunk is never subdivided, which bounds pricing precision to 30 minutes.
const chunkMinutes = 30

// Rule is one day/time-windowed override of a venue's base hourly rate.
// StartTime/EndTime are "HH:MM" strings forming a half-open [start, end)
// window within the day.
type Rule struct {
	Days         []string `json:"days"`
	StartTime    string   `json:"start_time"`
	EndTime      string   `json:"end_time"`
	PricePerHour float64  `json:"price_per_hour"`
}

// appliesAt reports whether the rule covers the given weekday and minute of
// day.
func (r Rule) appliesAt(weekday string, minute int) (bool, error) {
	dayMatch := false
	for _, day := range r.Days {
		if strings.EqualFold(day, weekday) {
			dayMatch = true
			break
		}
	}
	if !dayMatch {
		return false, nil
	}
	start, err := timeutil.ParseMinuteOfDay(r.StartTime)
	if err != nil {
		return false, fmt.Errorf("pricing rule start: %w", err)
	}
	end, err := timeutil.ParseMinuteOfDay(r.EndTime)
	if err != nil {
		return false, fmt.Errorf("pricing rule end: %w", err)
	}
	return minute >= start && minute < end, nil
}

func rateAt(basePrice float64, rules []Rule, weekday string, minute int) (float64, error) {
	for _, rule := range rules {
		ok, err := rule.appliesAt(weekday, minute)
		if err != nil {
			return 0, err
		}
		if ok {
			return rule.PricePerHour, nil
		}
	}
	return basePrice, nil
}

// EffectiveHourlyRate returns the hourly rate in force at the given date and
// "HH:MM" clock: the first matching rule's price, or basePrice when no rule
// matches.
func EffectiveHourlyRate(basePrice float64, rules []Rule, date time.Time, clock string) (float64, error) {
	minute, err := timeutil.ParseMinuteOfDay(clock)
	if err != nil {
		return 0, err
	}
	return rateAt(basePrice, rules, timeutil.WeekdayName(date), minute)
}

// BookingPrice prices the half-open interval [startTime, startTime+duration)
// by walking it in chunks of at most 30 minutes, resolving the applicable
// rate at each chunk's start minute, and rounding the accumulated sum to the
// nearest whole currency unit.
//
// Chunks running past midnight wrap the minute of day but keep the booking
// date's weekday for rule matching.
func BookingPrice(basePrice float64, rules []Rule, date time.Time, startTime string, durationMinutes int) (int64, error) {
	if durationMinutes <= 0 {
		return 0, fmt.Errorf("booking duration must be positive, got %d minutes", durationMinutes)
	}
	startMinute, err := timeutil.ParseMinuteOfDay(startTime)
	if err != nil {
		return 0, err
	}

	weekday := timeutil.WeekdayName(date)
	total := 0.0
	for offset := 0; offset < durationMinutes; offset += chunkMinutes {
		chunk := durationMinutes - offset
		if chunk > chunkMinutes {
			chunk = chunkMinutes
		}
		minute := (startMinute + offset) % timeutil.MinutesPerDay
		rate, err := rateAt(basePrice, rules, weekday, minute)
		if err != nil {
			return 0, err
		}
		total += rate * float64(chunk) / 60
	}

	return int64(math.Round(total)), nil
}

// RangeDisplay summarises a venue's price spread for listings.
type RangeDisplay struct {
	Min            float64 `json:"min"`
	Max            float64 `json:"max"`
	HasPeakPricing bool    `json:"has_peak_pricing"`
}

// PriceRange computes the min/max hourly rate over the base price and every
// rule price. HasPeakPricing is set when at least one rule moves the rate
// away from a flat price.
func PriceRange(basePrice float64, rules []Rule) RangeDisplay {
	display := RangeDisplay{Min: basePrice, Max: basePrice}
	for _, rule := range rules {
		if rule.PricePerHour < display.Min {
			display.Min = rule.PricePerHour
		}
		if rule.PricePerHour > display.Max {
			display.Max = rule.PricePerHour
		}
	}
	display.HasPeakPricing = len(rules) > 0 && display.Max > display.Min
	return display
}
