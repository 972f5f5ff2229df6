package schedule

import (
	"context"
	"fmt"
)

const (
	groupSize = 4
	maxGroups = 16 // group letters A..P
)

type GroupKnockoutGenerator struct {
}

func NewGroupKnockoutGenerator() ScheduleGenerator {
	return &GroupKnockoutGenerator{}
}

func (g *GroupKnockoutGenerator) GetName() string {
	return "GroupKnockout"
}

// GenerateSchedule partitions the field into groups of four (the last group
// may be short), plays a full round-robin inside each group, then a knockout
// stage sized at two qualifiers per group. Quarter-finals are emitted only
// when at least 8 teams qualify and their pairing keeps the documented
// four-group formula (Winner A vs Runner-up B and so on) regardless of the
// actual group count. The third-place fixture and the final are always
// appended last, referencing semi-final positions.
func (g *GroupKnockoutGenerator) GenerateSchedule(ctx context.Context, params GenerateScheduleParams) ([]*Entry, error) {
	numTeams := params.NumTeams
	if numTeams < 2 {
		return nil, fmt.Errorf("group stage requires at least 2 teams, got %d", numTeams)
	}

	numGroups := (numTeams + groupSize - 1) / groupSize
	if numGroups > maxGroups {
		return nil, fmt.Errorf("%w: %d teams imply %d groups", ErrTooManyGroups, numTeams, numGroups)
	}

	entries := make([]*Entry, 0, numTeams*2)
	matchOrder := 0

	for grp := 0; grp < numGroups; grp++ {
		base := grp * groupSize
		size := groupSize
		if remaining := numTeams - base; remaining < size {
			size = remaining
		}
		groupName := fmt.Sprintf("Group %c", rune('A'+grp))

		for i := 0; i < size; i++ {
			for j := i + 1; j < size; j++ {
				matchOrder++
				name := groupName
				entries = append(entries, &Entry{
					Round:      RoundGroup,
					MatchOrder: matchOrder,
					SlotA:      SlotLabel(base + i),
					SlotB:      SlotLabel(base + j),
					GroupName:  &name,
				})
			}
		}
	}

	knockoutTeams := numGroups * 2

	if knockoutTeams >= 8 {
		qfPairs := [4][2]string{
			{"Winner Group A", "Runner-up Group B"},
			{"Winner Group B", "Runner-up Group A"},
			{"Winner Group C", "Runner-up Group D"},
			{"Winner Group D", "Runner-up Group C"},
		}
		for _, pair := range qfPairs {
			matchOrder++
			entries = append(entries, &Entry{
				Round:      RoundQuarterFinal,
				MatchOrder: matchOrder,
				SlotA:      pair[0],
				SlotB:      pair[1],
			})
		}
		for k := 0; k < 2; k++ {
			matchOrder++
			entries = append(entries, &Entry{
				Round:      RoundSemiFinal,
				MatchOrder: matchOrder,
				SlotA:      fmt.Sprintf("Winner QF %d", 2*k+1),
				SlotB:      fmt.Sprintf("Winner QF %d", 2*k+2),
			})
		}
	} else if knockoutTeams >= 4 {
		sfPairs := [2][2]string{
			{"Winner Group A", "Runner-up Group B"},
			{"Winner Group B", "Runner-up Group A"},
		}
		for _, pair := range sfPairs {
			matchOrder++
			entries = append(entries, &Entry{
				Round:      RoundSemiFinal,
				MatchOrder: matchOrder,
				SlotA:      pair[0],
				SlotB:      pair[1],
			})
		}
	}

	// Always appended, even for fields too small to have produced semi-finals.
	matchOrder++
	entries = append(entries, &Entry{
		Round:      RoundThirdPlace,
		MatchOrder: matchOrder,
		SlotA:      "Loser SF 1",
		SlotB:      "Loser SF 2",
	})
	matchOrder++
	entries = append(entries, &Entry{
		Round:      RoundFinal,
		MatchOrder: matchOrder,
		SlotA:      "Winner SF 1",
		SlotB:      "Winner SF 2",
	})

	return entries, nil
}
