package validation

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNormalizePlayerTag(t *testing.T) {
	got, err := NormalizePlayerTag(" 2pp0yy ")
	require.NoError(t, err)
	assert.Equal(t, "#2PP0YY", got)

	got, err = NormalizePlayerTag("#ABC123")
	require.NoError(t, err)
	assert.Equal(t, "#ABC123", got)

	_, err = NormalizePlayerTag("")
	assert.ErrorIs(t, err, ErrEmptyPlayerTag)
	_, err = NormalizePlayerTag("#AB C")
	assert.Error(t, err)
	_, err = NormalizePlayerTag("#ab-12")
	assert.Error(t, err)
}

func TestParsePlayerTags(t *testing.T) {
	tags, err := ParsePlayerTags("#AAA, bbb  ccc")
	require.NoError(t, err)
	assert.Equal(t, []string{"#AAA", "#BBB", "#CCC"}, tags)

	_, err = ParsePlayerTags("   ")
	assert.ErrorIs(t, err, ErrNoPlayerTags)

	_, err = ParsePlayerTags("#AAA aaa")
	assert.ErrorIs(t, err, ErrDuplicatePlayerTag, "duplicates after normalization must be rejected")
}

func TestParseTownHallLevels(t *testing.T) {
	levels, err := ParseTownHallLevels("17, 15 16 15")
	require.NoError(t, err)
	assert.Equal(t, []int{15, 16, 17}, levels)

	_, err = ParseTownHallLevels("")
	assert.ErrorIs(t, err, ErrNoTownHallLevels)
	_, err = ParseTownHallLevels("abc")
	assert.Error(t, err)
	_, err = ParseTownHallLevels("0")
	assert.Error(t, err)
	_, err = ParseTownHallLevels("26")
	assert.Error(t, err)
}

func TestValidateTeamSize(t *testing.T) {
	assert.NoError(t, ValidateTeamSize(5))
	assert.NoError(t, ValidateTeamSize(50))
	assert.ErrorIs(t, ValidateTeamSize(4), ErrTeamSizeTooSmall)
	assert.ErrorIs(t, ValidateTeamSize(7), ErrTeamSizeIncrement)
	assert.ErrorIs(t, ValidateTeamSize(55), ErrTeamSizeTooLarge)
}

func TestValidateMaxTeams(t *testing.T) {
	assert.NoError(t, ValidateMaxTeams(2))
	assert.NoError(t, ValidateMaxTeams(200))
	assert.ErrorIs(t, ValidateMaxTeams(1), ErrMaxTeamsTooSmall)
	assert.ErrorIs(t, ValidateMaxTeams(3), ErrMaxTeamsIncrement)
	assert.ErrorIs(t, ValidateMaxTeams(202), ErrMaxTeamsTooLarge)
}
