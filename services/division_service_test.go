package services

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Dosada05/bracket-service/validation"
)

func validDivisionInput() DivisionConfigInput {
	return DivisionConfigInput{
		GuildID:              42,
		DivisionID:           "gold",
		DivisionName:         "Gold League",
		TeamSize:             15,
		AllowedTownHalls:     "17, 16 15",
		MaxTeams:             16,
		RegistrationOpensAt:  time.Date(2025, 3, 1, 0, 0, 0, 0, time.UTC),
		RegistrationClosesAt: time.Date(2025, 3, 8, 0, 0, 0, 0, time.UTC),
	}
}

func TestConfigureDivision(t *testing.T) {
	divisionRepo := newFakeDivisionRepo()
	service := NewDivisionService(divisionRepo)

	config, err := service.ConfigureDivision(context.Background(), validDivisionInput(), 99)
	require.NoError(t, err)

	assert.Equal(t, []int{15, 16, 17}, config.AllowedTownHalls)
	assert.Equal(t, int64(99), config.UpdatedBy)

	stored, err := service.GetDivision(context.Background(), 42, "gold")
	require.NoError(t, err)
	assert.Equal(t, "Gold League", stored.DivisionName)
}

func TestConfigureDivisionValidation(t *testing.T) {
	service := NewDivisionService(newFakeDivisionRepo())

	tests := []struct {
		name    string
		mutate  func(*DivisionConfigInput)
		wantErr error
	}{
		{"team size not multiple of five", func(in *DivisionConfigInput) { in.TeamSize = 12 }, validation.ErrTeamSizeIncrement},
		{"team size too small", func(in *DivisionConfigInput) { in.TeamSize = 0 }, validation.ErrTeamSizeTooSmall},
		{"max teams odd", func(in *DivisionConfigInput) { in.MaxTeams = 7 }, validation.ErrMaxTeamsIncrement},
		{"no town halls", func(in *DivisionConfigInput) { in.AllowedTownHalls = "  " }, validation.ErrNoTownHallLevels},
		{"window inverted", func(in *DivisionConfigInput) {
			in.RegistrationClosesAt = in.RegistrationOpensAt.Add(-time.Hour)
		}, ErrRegistrationWindowInvalid},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			input := validDivisionInput()
			tc.mutate(&input)
			_, err := service.ConfigureDivision(context.Background(), input, 99)
			assert.ErrorIs(t, err, tc.wantErr)
		})
	}
}

func TestGetDivisionNotFound(t *testing.T) {
	service := NewDivisionService(newFakeDivisionRepo())

	_, err := service.GetDivision(context.Background(), 42, "missing")
	assert.ErrorIs(t, err, ErrDivisionNotFound)
}
