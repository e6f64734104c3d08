package brackets

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Dosada05/bracket-service/models"
)

func TestSetMatchWinnerValidation(t *testing.T) {
	state, err := CreateBracket(testGuildID, "main", testRegistrations("A", "B", "C", "D"))
	require.NoError(t, err)

	assert.ErrorIs(t, SetMatchWinner(state, "R9M9", 0), ErrMatchNotFound)
	assert.ErrorIs(t, SetMatchWinner(state, "R1M1", 2), ErrInvalidSlot)
	assert.ErrorIs(t, SetMatchWinner(state, "R1M1", -1), ErrInvalidSlot)
	// Финальные слоты ещё не гидратированы.
	assert.ErrorIs(t, SetMatchWinner(state, "R2M1", 0), ErrCompetitorNotReady)
}

func TestSetMatchWinnerRejectedCallLeavesStateUntouched(t *testing.T) {
	state, err := CreateBracket(testGuildID, "main", testRegistrations("A", "B", "C", "D"))
	require.NoError(t, err)

	before := Render(state.Clone(), false)
	assert.Error(t, SetMatchWinner(state, "R2M1", 1))
	assert.Equal(t, before, Render(state, false))
}

func TestSetMatchWinnerIdempotentReconfirmation(t *testing.T) {
	state, err := CreateBracket(testGuildID, "main", testRegistrations("A", "B", "C", "D"))
	require.NoError(t, err)

	require.NoError(t, SetMatchWinner(state, "R1M1", 0))
	snapshot := Render(state.Clone(), false)

	// Повтор того же решения — успешный no-op (ретраи at-least-once).
	require.NoError(t, SetMatchWinner(state, "R1M1", 0))
	assert.Equal(t, snapshot, Render(state, false))

	// Смена победителя отклоняется, а не перезаписывается молча.
	assert.ErrorIs(t, SetMatchWinner(state, "R1M1", 1), ErrWinnerConflict)
	assert.Equal(t, snapshot, Render(state, false))
}

func TestWinnerPropagationScenario(t *testing.T) {
	state, err := CreateBracket(testGuildID, "main", testRegistrations("A", "B", "C", "D"))
	require.NoError(t, err)

	require.NoError(t, SetMatchWinner(state, "R1M1", 0)) // A
	require.NoError(t, SetMatchWinner(state, "R1M2", 1)) // C

	final := state.FindMatch("R2M1")
	require.NotNil(t, final)
	assert.Equal(t, "#1 A", final.CompetitorOne.Display())
	assert.Equal(t, "#3 C", final.CompetitorTwo.Display())
	assert.False(t, final.Decided())

	require.NoError(t, SetMatchWinner(state, "R2M1", 0))
	rendered := Render(state, false)
	assert.Contains(t, rendered, "Champion: #1 A")
}

func TestWinnerTransitiveByeChain(t *testing.T) {
	// 9 команд в сетке на 16: у сида 1 BYE в первом раунде, и после победы
	// сидов 8/9 цепочка из гидратаций решается за один вызов.
	names := []string{"A", "B", "C", "D", "E", "F", "G", "H", "I"}
	state, err := CreateBracket(testGuildID, "main", testRegistrations(names...))
	require.NoError(t, err)

	// Единственный настоящий матч первого раунда — сид 8 против сида 9.
	var realFirstRound *models.BracketMatch
	for i := range state.Rounds[0].Matches {
		match := &state.Rounds[0].Matches[i]
		if !match.Decided() {
			require.Nil(t, realFirstRound, "expected exactly one undecided first-round match")
			realFirstRound = match
		}
	}
	require.NotNil(t, realFirstRound)

	require.NoError(t, SetMatchWinner(state, realFirstRound.MatchID, 0))

	// Все слоты второго раунда должны быть гидратированы.
	for _, match := range state.Rounds[1].Matches {
		assert.True(t, match.CompetitorOne.Resolved(), "%s slot one", match.MatchID)
		assert.True(t, match.CompetitorTwo.Resolved(), "%s slot two", match.MatchID)
	}
}
