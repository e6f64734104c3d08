package brackets

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Dosada05/bracket-service/models"
)

func TestCaptainLinesOrderedBySeed(t *testing.T) {
	regs := testRegistrations("Delta", "Alpha", "Charlie", "Bravo")
	state, err := CreateBracket(testGuildID, "main", regs)
	require.NoError(t, err)

	lines := CaptainLines(state, regs)
	require.Len(t, lines, 4)
	// Порядок по сиду, а не по алфавиту.
	assert.Equal(t, "#1 Delta — Captain: Captain Delta", lines[0])
	assert.Equal(t, "#2 Alpha — Captain: Captain Alpha", lines[1])
	assert.Equal(t, "#3 Charlie — Captain: Captain Charlie", lines[2])
	assert.Equal(t, "#4 Bravo — Captain: Captain Bravo", lines[3])
}

func TestCaptainLinesDistinctAfterHydration(t *testing.T) {
	regs := testRegistrations("A", "B", "C", "D")
	state, err := CreateBracket(testGuildID, "main", regs)
	require.NoError(t, err)
	require.NoError(t, SetMatchWinner(state, "R1M1", 0))

	// Команда A теперь встречается в двух слотах; строка всё равно одна.
	lines := CaptainLines(state, regs)
	assert.Len(t, lines, 4)
}

func TestCaptainLinesUnknownCaptainFallback(t *testing.T) {
	regs := testRegistrations("A", "B")
	state, err := CreateBracket(testGuildID, "main", regs)
	require.NoError(t, err)

	lines := CaptainLines(state, regs[:1])
	require.Len(t, lines, 2)
	assert.Contains(t, lines[1], "Captain: Unknown captain")
}

func TestCaptainLinesDoNotMutateState(t *testing.T) {
	regs := testRegistrations("A", "B", "C")
	state, err := CreateBracket(testGuildID, "main", regs)
	require.NoError(t, err)
	before := Render(state.Clone(), false)

	_ = CaptainLines(state, regs)
	assert.Equal(t, before, Render(state, false))
}

func TestCaptainLinesSkipPendingSlots(t *testing.T) {
	regs := testRegistrations("A", "B", "C", "D")
	state, err := CreateBracket(testGuildID, "main", regs)
	require.NoError(t, err)

	var pending []*models.BracketSlot
	state.EachMatch(func(match *models.BracketMatch) {
		for _, slot := range []*models.BracketSlot{&match.CompetitorOne, &match.CompetitorTwo} {
			if !slot.Resolved() {
				pending = append(pending, slot)
			}
		}
	})
	require.NotEmpty(t, pending)
	assert.Len(t, CaptainLines(state, regs), 4)
}
