package brackets

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSimulateFourEntrants(t *testing.T) {
	state, err := CreateBracket(testGuildID, "main", testRegistrations("A", "B", "C", "D"))
	require.NoError(t, err)

	final, snapshots, err := Simulate(state)
	require.NoError(t, err)

	require.Len(t, snapshots, 3)
	assert.Equal(t, "Initial Bracket", snapshots[0].Label)
	assert.Equal(t, "After Semifinals", snapshots[1].Label)
	assert.Equal(t, "After Final", snapshots[2].Label)

	finalMatch := final.FinalMatch()
	require.NotNil(t, finalMatch)
	require.True(t, finalMatch.Decided())
	// Меньший сид выигрывает каждый матч, так что чемпион — сид 1.
	require.NotNil(t, finalMatch.WinnerSlot().Seed)
	assert.Equal(t, 1, *finalMatch.WinnerSlot().Seed)
}

func TestSimulateDoesNotMutateInput(t *testing.T) {
	state, err := CreateBracket(testGuildID, "main", testRegistrations("A", "B", "C", "D", "E"))
	require.NoError(t, err)
	before := Render(state.Clone(), false)

	_, _, err = Simulate(state)
	require.NoError(t, err)
	assert.Equal(t, before, Render(state, false))
}

func TestSimulateSnapshotCountMatchesRounds(t *testing.T) {
	for _, n := range []int{2, 3, 5, 8, 13, 16} {
		names := make([]string, n)
		for i := range names {
			names[i] = fmt.Sprintf("Team %02d", i+1)
		}
		state, err := CreateBracket(testGuildID, "main", testRegistrations(names...))
		require.NoError(t, err, "entrants=%d", n)

		_, snapshots, err := Simulate(state)
		require.NoError(t, err)
		assert.Len(t, snapshots, len(state.Rounds)+1, "entrants=%d", n)
	}
}

func TestSimulateSnapshotsAreIndependentCopies(t *testing.T) {
	state, err := CreateBracket(testGuildID, "main", testRegistrations("A", "B", "C", "D"))
	require.NoError(t, err)

	final, snapshots, err := Simulate(state)
	require.NoError(t, err)

	// Начальный снимок не должен содержать решений, принятых позже.
	initial := snapshots[0].State
	assert.False(t, initial.FindMatch("R1M1").Decided())
	assert.True(t, final.FindMatch("R1M1").Decided())
}

func TestSimulateRespectsPriorManualDecisions(t *testing.T) {
	state, err := CreateBracket(testGuildID, "main", testRegistrations("A", "B", "C", "D"))
	require.NoError(t, err)
	// Вручную записанный андердог должен пережить симуляцию.
	require.NoError(t, SetMatchWinner(state, "R1M1", 1)) // D

	final, _, err := Simulate(state)
	require.NoError(t, err)

	r1m1 := final.FindMatch("R1M1")
	require.NotNil(t, r1m1.WinnerIndex)
	assert.Equal(t, 1, *r1m1.WinnerIndex)
	// В финале D (#4) против B (#2): меньший сид побеждает.
	champion := final.FinalMatch().WinnerSlot()
	require.NotNil(t, champion)
	assert.Equal(t, "#2 B", champion.Display())
}

func TestSeedRankFallback(t *testing.T) {
	state, err := CreateBracket(testGuildID, "main", testRegistrations("A", "B", "C", "D"))
	require.NoError(t, err)

	final := state.FindMatch("R2M1")
	// Негидратированный слот без сида сравнивается как 999.
	assert.Equal(t, missingSeedRank, seedRank(&final.CompetitorOne))
	r1m1 := state.FindMatch("R1M1")
	assert.Equal(t, 1, seedRank(&r1m1.CompetitorOne))
}
