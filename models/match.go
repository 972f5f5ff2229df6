package models

import (
	"time"

	"github.com/devakhil7/plyr-sub003/status"
)

// Match is a social pickup game hosted at a venue. There is no stored status
// column: the lifecycle state is derived from Date/StartTime/DurationMinutes
// and the clock every time a match is read.
type Match struct {
	ID              int       `json:"id" db:"id"`
	HostID          int       `json:"host_id" db:"host_id"`
	VenueID         *int      `json:"venue_id,omitempty" db:"venue_id"`
	Sport           string    `json:"sport" db:"sport"`
	Date            time.Time `json:"date" db:"date"`
	StartTime       string    `json:"start_time" db:"start_time"`
	DurationMinutes int       `json:"duration_minutes" db:"duration_minutes"`
	MaxPlayers      int       `json:"max_players" db:"max_players"`
	ScoreA          *int      `json:"score_a,omitempty" db:"score_a"`
	ScoreB          *int      `json:"score_b,omitempty" db:"score_b"`
	CreatedAt       time.Time `json:"created_at" db:"created_at"`

	Status       status.MatchStatus `json:"status" db:"-"`
	DisplayLabel string             `json:"display_label" db:"-"`
	Venue        *Venue             `json:"venue,omitempty" db:"-"`
}
