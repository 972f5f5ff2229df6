package schedule

import (
	"context"
	"fmt"
)

type KnockoutGenerator struct {
}

func NewKnockoutGenerator() ScheduleGenerator {
	return &KnockoutGenerator{}
}

func (g *KnockoutGenerator) GetName() string {
	return "Knockout"
}

// roundNameForSize names a knockout round by the number of teams entering it.
func roundNameForSize(size int) string {
	switch size {
	case 2:
		return RoundFinal
	case 4:
		return RoundSemiFinal
	case 8:
		return RoundQuarterFinal
	default:
		return fmt.Sprintf("round-of-%d", size)
	}
}

func isPowerOfTwo(n int) bool {
	return n > 0 && n&(n-1) == 0
}

// GenerateSchedule builds a single-elimination bracket over abstract slots.
// The first round pairs consecutive slot labels; every later round pairs
// forward references to the previous round's winners. When more than two
// teams enter, a third-place fixture referencing the semi-final losers is
// appended after the final.
func (g *KnockoutGenerator) GenerateSchedule(ctx context.Context, params GenerateScheduleParams) ([]*Entry, error) {
	numTeams := params.NumTeams
	if numTeams < 2 || !isPowerOfTwo(numTeams) {
		return nil, fmt.Errorf("%w: got %d", ErrInvalidTeamCount, numTeams)
	}

	entries := make([]*Entry, 0, numTeams)
	matchOrder := 0

	firstRound := roundNameForSize(numTeams)
	for i := 0; i < numTeams; i += 2 {
		matchOrder++
		entries = append(entries, &Entry{
			Round:      firstRound,
			MatchOrder: matchOrder,
			SlotA:      SlotLabel(i),
			SlotB:      SlotLabel(i + 1),
		})
	}

	prevRound := firstRound
	for size := numTeams / 2; size >= 2; size /= 2 {
		round := roundNameForSize(size)
		matchesInRound := size / 2
		for k := 0; k < matchesInRound; k++ {
			matchOrder++
			entries = append(entries, &Entry{
				Round:      round,
				MatchOrder: matchOrder,
				SlotA:      fmt.Sprintf("Winner %s M%d", prevRound, 2*k+1),
				SlotB:      fmt.Sprintf("Winner %s M%d", prevRound, 2*k+2),
			})
		}
		prevRound = round
	}

	// Appended unconditionally for fields above 2; the loser references only
	// resolve once a semi-final round exists (numTeams >= 4).
	if numTeams > 2 {
		matchOrder++
		entries = append(entries, &Entry{
			Round:      RoundThirdPlace,
			MatchOrder: matchOrder,
			SlotA:      "Loser Semi 1",
			SlotB:      "Loser Semi 2",
		})
	}

	return entries, nil
}
