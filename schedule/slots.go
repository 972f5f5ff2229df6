package schedule

import (
	"math/rand"
	"time"
)

// SlotLabel derives the bracket slot label for a zero-based index:
// 0..25 -> "Team A".."Team Z", 26 -> "Team AA" and bijective two-letter
// combinations onward.
func SlotLabel(index int) string {
	letters := ""
	for n := index; n >= 0; n = n/26 - 1 {
		letters = string(rune('A'+n%26)) + letters
	}
	return "Team " + letters
}

// TeamSeed identifies a registered team going into slot assignment.
type TeamSeed struct {
	ID   int
	Name string
}

// Assignment maps one slot label to a team, or to nil when fewer teams
// registered than the bracket has slots.
type Assignment struct {
	Slot string    `json:"slot"`
	Team *TeamSeed `json:"team,omitempty"`
}

// AssignTeamsToSlots fills the ordered slot label space 0..numSlots-1 with
// teams. With shuffle set, the team list is permuted with a Fisher-Yates pass
// over a copy; rng may be nil, in which case a time-seeded source is used.
// Teams beyond numSlots are dropped, slots beyond the team count stay
// unassigned.
func AssignTeamsToSlots(teams []TeamSeed, numSlots int, shuffle bool, rng *rand.Rand) []Assignment {
	ordered := make([]TeamSeed, len(teams))
	copy(ordered, teams)

	if shuffle && len(ordered) > 1 {
		if rng == nil {
			rng = rand.New(rand.NewSource(time.Now().UnixNano()))
		}
		for i := len(ordered) - 1; i >= 1; i-- {
			j := rng.Intn(i + 1)
			ordered[i], ordered[j] = ordered[j], ordered[i]
		}
	}

	assignments := make([]Assignment, numSlots)
	for i := 0; i < numSlots; i++ {
		assignments[i] = Assignment{Slot: SlotLabel(i)}
		if i < len(ordered) {
			team := ordered[i]
			assignments[i].Team = &team
		}
	}
	return assignments
}
