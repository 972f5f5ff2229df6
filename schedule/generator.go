package schedule

import (
	"context"
	"errors"
)

// Round tags carried on generated entries. Knockout rounds larger than a
// quarter-final use the computed "round-of-N" form.
const (
	RoundGroup        = "group"
	RoundQuarterFinal = "quarter-final"
	RoundSemiFinal    = "semi-final"
	RoundThirdPlace   = "third-place"
	RoundFinal        = "final"
)

var (
	ErrInvalidTeamCount = errors.New("knockout schedule requires a power-of-two team count (minimum 2)")
	ErrTooManyGroups    = errors.New("group stage supports at most 16 groups (64 teams)")
)

// Entry is one generated fixture. SlotA/SlotB hold either a concrete slot
// label ("Team A") or a forward reference to an earlier fixture's outcome
// ("Winner quarter-final M1", "Loser Semi 1"). MatchOrder is 1-based and
// contiguous within one generated schedule; it is the only persisted
// sequencing signal.
type Entry struct {
	Round      string  `json:"round"`
	MatchOrder int     `json:"match_order"`
	SlotA      string  `json:"slot_a"`
	SlotB      string  `json:"slot_b"`
	GroupName  *string `json:"group_name,omitempty"`
}

type GenerateScheduleParams struct {
	NumTeams int
}

type ScheduleGenerator interface {
	GenerateSchedule(ctx context.Context, params GenerateScheduleParams) ([]*Entry, error)

	GetName() string
}
