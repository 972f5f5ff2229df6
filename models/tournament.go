package models

import "time"

type TournamentFormat string

const (
	FormatKnockout      TournamentFormat = "knockout"
	FormatGroupKnockout TournamentFormat = "group_knockout"
)

type TournamentStatus string

const (
	TournamentStatusSoon         TournamentStatus = "soon"
	TournamentStatusRegistration TournamentStatus = "registration"
	TournamentStatusActive       TournamentStatus = "active"
	TournamentStatusCompleted    TournamentStatus = "completed"
	TournamentStatusCanceled     TournamentStatus = "canceled"
)

type Tournament struct {
	ID          int              `json:"id" db:"id"`
	Name        string           `json:"name" db:"name"`
	Description *string          `json:"description,omitempty" db:"description"`
	Sport       string           `json:"sport" db:"sport"`
	OrganizerID int              `json:"organizer_id" db:"organizer_id"`
	VenueID     *int             `json:"venue_id,omitempty" db:"venue_id"`
	Format      TournamentFormat `json:"format" db:"format"`
	MaxTeams    int              `json:"max_teams" db:"max_teams"`
	EntryFee    int64            `json:"entry_fee" db:"entry_fee"`
	RegDate     time.Time        `json:"reg_date" db:"reg_date"`
	StartDate   time.Time        `json:"start_date" db:"start_date"`
	EndDate     time.Time        `json:"end_date" db:"end_date"`
	Status      TournamentStatus `json:"status" db:"status"`
	CreatedAt   time.Time        `json:"created_at" db:"created_at"`
	LogoKey     *string          `json:"-" db:"logo_key"`
	LogoURL     *string          `json:"logo_url,omitempty" db:"-"`

	Teams       []Team           `json:"teams,omitempty" db:"-"`
	Schedule    []ScheduleEntry  `json:"schedule,omitempty" db:"-"`
	Assignments []SlotAssignment `json:"assignments,omitempty" db:"-"`
}

// ScheduleEntry is one persisted bracket fixture. MatchOrder is the only
// sequencing signal: unique and contiguous from 1 within a tournament.
type ScheduleEntry struct {
	ID           int     `json:"id" db:"id"`
	TournamentID int     `json:"tournament_id" db:"tournament_id"`
	Round        string  `json:"round" db:"round"`
	MatchOrder   int     `json:"match_order" db:"match_order"`
	SlotA        string  `json:"slot_a" db:"slot_a"`
	SlotB        string  `json:"slot_b" db:"slot_b"`
	GroupName    *string `json:"group_name,omitempty" db:"group_name"`
	ScoreA       *int    `json:"score_a,omitempty" db:"score_a"`
	ScoreB       *int    `json:"score_b,omitempty" db:"score_b"`
}

// SlotAssignment maps one bracket slot label to a registered team. Slots
// beyond the number of registered teams persist with a null team.
type SlotAssignment struct {
	ID           int     `json:"id" db:"id"`
	TournamentID int     `json:"tournament_id" db:"tournament_id"`
	Slot         string  `json:"slot" db:"slot"`
	TeamID       *int    `json:"team_id,omitempty" db:"team_id"`
	TeamName     *string `json:"team_name,omitempty" db:"team_name"`
}
