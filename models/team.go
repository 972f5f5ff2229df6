package models

import "time"

type Team struct {
	ID           int       `json:"id" db:"id"`
	TournamentID int       `json:"tournament_id" db:"tournament_id"`
	Name         string    `json:"name" db:"name"`
	CaptainID    int       `json:"captain_id" db:"captain_id"`
	AmountPaid   int64     `json:"amount_paid" db:"amount_paid"`
	CreatedAt    time.Time `json:"created_at" db:"created_at"`
	LogoKey      *string   `json:"-" db:"logo_key"`
	LogoURL      *string   `json:"logo_url,omitempty" db:"-"`
}
