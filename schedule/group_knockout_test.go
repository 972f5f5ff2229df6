package schedule

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
)

// TestGenerateGroupKnockout_SixteenTeams pins the current output for the
// common case: 16 teams, 4 groups, quarter-finals present.
func TestGenerateGroupKnockout_SixteenTeams(t *testing.T) {
	gen := NewGroupKnockoutGenerator()
	entries, err := gen.GenerateSchedule(context.Background(), GenerateScheduleParams{NumTeams: 16})

	assert.NoError(t, err)
	// 4 groups * C(4,2)=6 group fixtures, then 4 QF + 2 SF + third place + final.
	assert.Len(t, entries, 32)

	for i, e := range entries {
		assert.Equal(t, i+1, e.MatchOrder)
	}

	for _, e := range entries[:24] {
		assert.Equal(t, RoundGroup, e.Round)
		assert.NotNil(t, e.GroupName)
	}
	assert.Equal(t, "Group A", *entries[0].GroupName)
	assert.Equal(t, "Team A", entries[0].SlotA)
	assert.Equal(t, "Team B", entries[0].SlotB)
	assert.Equal(t, "Group D", *entries[23].GroupName)
	assert.Equal(t, "Team O", entries[23].SlotA)
	assert.Equal(t, "Team P", entries[23].SlotB)

	qf := entries[24:28]
	assert.Equal(t, RoundQuarterFinal, qf[0].Round)
	assert.Equal(t, "Winner Group A", qf[0].SlotA)
	assert.Equal(t, "Runner-up Group B", qf[0].SlotB)
	assert.Equal(t, "Winner Group B", qf[1].SlotA)
	assert.Equal(t, "Runner-up Group A", qf[1].SlotB)
	assert.Equal(t, "Winner Group C", qf[2].SlotA)
	assert.Equal(t, "Runner-up Group D", qf[2].SlotB)
	assert.Equal(t, "Winner Group D", qf[3].SlotA)
	assert.Equal(t, "Runner-up Group C", qf[3].SlotB)

	sf := entries[28:30]
	assert.Equal(t, RoundSemiFinal, sf[0].Round)
	assert.Equal(t, "Winner QF 1", sf[0].SlotA)
	assert.Equal(t, "Winner QF 2", sf[0].SlotB)
	assert.Equal(t, "Winner QF 3", sf[1].SlotA)
	assert.Equal(t, "Winner QF 4", sf[1].SlotB)

	assert.Equal(t, RoundThirdPlace, entries[30].Round)
	assert.Equal(t, "Loser SF 1", entries[30].SlotA)
	assert.Equal(t, "Loser SF 2", entries[30].SlotB)
	assert.Equal(t, RoundFinal, entries[31].Round)
	assert.Equal(t, "Winner SF 1", entries[31].SlotA)
	assert.Equal(t, "Winner SF 2", entries[31].SlotB)
}

// TestGenerateGroupKnockout_ShortLastGroup tests a field that does not divide by four
func TestGenerateGroupKnockout_ShortLastGroup(t *testing.T) {
	gen := NewGroupKnockoutGenerator()
	entries, err := gen.GenerateSchedule(context.Background(), GenerateScheduleParams{NumTeams: 10})

	assert.NoError(t, err)

	// Groups A and B with 4 teams (6 fixtures each), group C with 2 (1 fixture).
	groupFixtures := 0
	groupCFixtures := 0
	for _, e := range entries {
		if e.Round == RoundGroup {
			groupFixtures++
			if *e.GroupName == "Group C" {
				groupCFixtures++
			}
		}
	}
	assert.Equal(t, 13, groupFixtures)
	assert.Equal(t, 1, groupCFixtures)
}

// TestGenerateGroupKnockout_TwoGroups tests semi-finals without quarter-finals
func TestGenerateGroupKnockout_TwoGroups(t *testing.T) {
	gen := NewGroupKnockoutGenerator()
	entries, err := gen.GenerateSchedule(context.Background(), GenerateScheduleParams{NumTeams: 8})

	assert.NoError(t, err)
	// 2 groups * 6 group fixtures, 2 SF, third place, final; 4 qualifiers means no QFs.
	assert.Len(t, entries, 16)

	sf := entries[12:14]
	assert.Equal(t, RoundSemiFinal, sf[0].Round)
	assert.Equal(t, "Winner Group A", sf[0].SlotA)
	assert.Equal(t, "Runner-up Group B", sf[0].SlotB)
	assert.Equal(t, "Winner Group B", sf[1].SlotA)
	assert.Equal(t, "Runner-up Group A", sf[1].SlotB)
	assert.Equal(t, RoundThirdPlace, entries[14].Round)
	assert.Equal(t, RoundFinal, entries[15].Round)
}

// TestGenerateGroupKnockout_SingleGroup tests the finale fixtures are still
// appended even when the field is too small to produce semi-finals.
func TestGenerateGroupKnockout_SingleGroup(t *testing.T) {
	gen := NewGroupKnockoutGenerator()
	entries, err := gen.GenerateSchedule(context.Background(), GenerateScheduleParams{NumTeams: 4})

	assert.NoError(t, err)
	assert.Len(t, entries, 8) // 6 group fixtures + third place + final
	assert.Equal(t, RoundThirdPlace, entries[6].Round)
	assert.Equal(t, RoundFinal, entries[7].Round)
}

// TestGenerateGroupKnockout_TooManyTeams tests the group letter ceiling
func TestGenerateGroupKnockout_TooManyTeams(t *testing.T) {
	gen := NewGroupKnockoutGenerator()
	_, err := gen.GenerateSchedule(context.Background(), GenerateScheduleParams{NumTeams: 65})
	assert.ErrorIs(t, err, ErrTooManyGroups)
}
