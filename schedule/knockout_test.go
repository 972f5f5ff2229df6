package schedule

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
)

// TestGenerateKnockout_EightTeams tests the full shape of an 8-team bracket
func TestGenerateKnockout_EightTeams(t *testing.T) {
	gen := NewKnockoutGenerator()
	entries, err := gen.GenerateSchedule(context.Background(), GenerateScheduleParams{NumTeams: 8})

	assert.NoError(t, err)
	assert.Len(t, entries, 8) // 4 QF + 2 SF + 1 final + 1 third-place

	for i, e := range entries {
		assert.Equal(t, i+1, e.MatchOrder, "match order must be contiguous from 1")
	}

	assert.Equal(t, RoundQuarterFinal, entries[0].Round)
	assert.Equal(t, "Team A", entries[0].SlotA)
	assert.Equal(t, "Team B", entries[0].SlotB)
	assert.Equal(t, "Team G", entries[3].SlotA)
	assert.Equal(t, "Team H", entries[3].SlotB)

	assert.Equal(t, RoundSemiFinal, entries[4].Round)
	assert.Equal(t, "Winner quarter-final M1", entries[4].SlotA)
	assert.Equal(t, "Winner quarter-final M2", entries[4].SlotB)
	assert.Equal(t, "Winner quarter-final M3", entries[5].SlotA)
	assert.Equal(t, "Winner quarter-final M4", entries[5].SlotB)

	assert.Equal(t, RoundFinal, entries[6].Round)
	assert.Equal(t, "Winner semi-final M1", entries[6].SlotA)
	assert.Equal(t, "Winner semi-final M2", entries[6].SlotB)

	assert.Equal(t, RoundThirdPlace, entries[7].Round)
	assert.Equal(t, "Loser Semi 1", entries[7].SlotA)
	assert.Equal(t, "Loser Semi 2", entries[7].SlotB)
}

// TestGenerateKnockout_TwoTeams tests the minimal bracket has no third-place fixture
func TestGenerateKnockout_TwoTeams(t *testing.T) {
	gen := NewKnockoutGenerator()
	entries, err := gen.GenerateSchedule(context.Background(), GenerateScheduleParams{NumTeams: 2})

	assert.NoError(t, err)
	assert.Len(t, entries, 1)
	assert.Equal(t, RoundFinal, entries[0].Round)
	assert.Equal(t, 1, entries[0].MatchOrder)
	assert.Equal(t, "Team A", entries[0].SlotA)
	assert.Equal(t, "Team B", entries[0].SlotB)
}

// TestGenerateKnockout_SixteenTeams tests round naming for larger fields
func TestGenerateKnockout_SixteenTeams(t *testing.T) {
	gen := NewKnockoutGenerator()
	entries, err := gen.GenerateSchedule(context.Background(), GenerateScheduleParams{NumTeams: 16})

	assert.NoError(t, err)
	assert.Len(t, entries, 16) // 15 knockout fixtures + third place

	assert.Equal(t, "round-of-16", entries[0].Round)
	assert.Equal(t, RoundQuarterFinal, entries[8].Round)
	assert.Equal(t, "Winner round-of-16 M1", entries[8].SlotA)
	assert.Equal(t, RoundSemiFinal, entries[12].Round)
	assert.Equal(t, RoundFinal, entries[14].Round)
	assert.Equal(t, RoundThirdPlace, entries[15].Round)
}

// TestGenerateKnockout_RejectsNonPowerOfTwo tests fail-fast validation
func TestGenerateKnockout_RejectsNonPowerOfTwo(t *testing.T) {
	gen := NewKnockoutGenerator()
	for _, n := range []int{0, 1, 3, 6, 12, 100} {
		_, err := gen.GenerateSchedule(context.Background(), GenerateScheduleParams{NumTeams: n})
		assert.ErrorIs(t, err, ErrInvalidTeamCount, "numTeams=%d", n)
	}
}
