package schedule

import (
	"fmt"
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
)

// TestSlotLabel tests label derivation across the single/double letter boundary
func TestSlotLabel(t *testing.T) {
	assert.Equal(t, "Team A", SlotLabel(0))
	assert.Equal(t, "Team B", SlotLabel(1))
	assert.Equal(t, "Team Z", SlotLabel(25))
	assert.Equal(t, "Team AA", SlotLabel(26))
	assert.Equal(t, "Team AB", SlotLabel(27))
	assert.Equal(t, "Team AZ", SlotLabel(51))
	assert.Equal(t, "Team BA", SlotLabel(52))
}

// TestAssignTeamsToSlots_NoShuffle tests input order is preserved exactly
func TestAssignTeamsToSlots_NoShuffle(t *testing.T) {
	teams := []TeamSeed{
		{ID: 1, Name: "Strikers"},
		{ID: 2, Name: "Rovers"},
		{ID: 3, Name: "United"},
	}

	assignments := AssignTeamsToSlots(teams, 4, false, nil)

	assert.Len(t, assignments, 4)
	assert.Equal(t, "Team A", assignments[0].Slot)
	assert.Equal(t, "Strikers", assignments[0].Team.Name)
	assert.Equal(t, "Rovers", assignments[1].Team.Name)
	assert.Equal(t, "United", assignments[2].Team.Name)
	assert.Nil(t, assignments[3].Team, "slot beyond registered teams stays unassigned")
}

// TestAssignTeamsToSlots_Truncates tests teams beyond the slot count are dropped
func TestAssignTeamsToSlots_Truncates(t *testing.T) {
	teams := []TeamSeed{{ID: 1}, {ID: 2}, {ID: 3}}

	assignments := AssignTeamsToSlots(teams, 2, false, nil)

	assert.Len(t, assignments, 2)
	assert.Equal(t, 1, assignments[0].Team.ID)
	assert.Equal(t, 2, assignments[1].Team.ID)
}

// TestAssignTeamsToSlots_ShuffleDoesNotMutateInput tests the caller's slice is untouched
func TestAssignTeamsToSlots_ShuffleDoesNotMutateInput(t *testing.T) {
	teams := []TeamSeed{{ID: 1}, {ID: 2}, {ID: 3}, {ID: 4}}
	AssignTeamsToSlots(teams, 4, true, rand.New(rand.NewSource(7)))

	for i, team := range teams {
		assert.Equal(t, i+1, team.ID)
	}
}

// TestAssignTeamsToSlots_ShuffleCoversPermutations tests the Fisher-Yates pass
// reaches every ordering of a small field with roughly even frequency
func TestAssignTeamsToSlots_ShuffleCoversPermutations(t *testing.T) {
	teams := []TeamSeed{{ID: 1}, {ID: 2}, {ID: 3}}
	rng := rand.New(rand.NewSource(42))

	const trials = 6000
	counts := make(map[string]int)
	for i := 0; i < trials; i++ {
		assignments := AssignTeamsToSlots(teams, 3, true, rng)
		key := fmt.Sprintf("%d%d%d", assignments[0].Team.ID, assignments[1].Team.ID, assignments[2].Team.ID)
		counts[key]++
	}

	assert.Len(t, counts, 6, "all 3! orderings should occur")
	for perm, n := range counts {
		// Expected 1000 per permutation; allow a generous band.
		assert.Greater(t, n, 700, "permutation %s underrepresented", perm)
		assert.Less(t, n, 1300, "permutation %s overrepresented", perm)
	}
}
