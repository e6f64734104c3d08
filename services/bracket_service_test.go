package services

import (
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Dosada05/bracket-service/brackets"
)

func newBracketServiceFixture() (BracketService, *fakeBracketRepo, *fakeRegistrationRepo, *fakeHub) {
	divisionRepo := newFakeDivisionRepo()
	registrationRepo := &fakeRegistrationRepo{}
	bracketRepo := newFakeBracketRepo()
	hub := &fakeHub{}

	seedDivision(divisionRepo, 42, "gold")
	service := NewBracketService(divisionRepo, registrationRepo, bracketRepo, hub)
	return service, bracketRepo, registrationRepo, hub
}

func TestGenerateAndSaveBracket(t *testing.T) {
	service, bracketRepo, registrationRepo, hub := newBracketServiceFixture()
	seedRegistrations(registrationRepo, 42, "gold", "Alpha", "Bravo", "Charlie", "Delta")

	state, err := service.GenerateAndSaveBracket(context.Background(), 42, "gold")
	require.NoError(t, err)
	require.Len(t, state.Rounds, 2)

	saved, err := bracketRepo.Get(context.Background(), 42, "gold")
	require.NoError(t, err)
	assert.Equal(t, brackets.Render(state, false), brackets.Render(saved, false))

	assert.Equal(t, []string{brackets.EventBracketCreated}, hub.eventTypes())
}

func TestGenerateAndSaveBracketUnknownDivision(t *testing.T) {
	service, _, _, _ := newBracketServiceFixture()

	_, err := service.GenerateAndSaveBracket(context.Background(), 42, "missing")
	assert.ErrorIs(t, err, ErrDivisionNotFound)
}

func TestGenerateAndSaveBracketTooFewTeams(t *testing.T) {
	service, bracketRepo, registrationRepo, _ := newBracketServiceFixture()
	seedRegistrations(registrationRepo, 42, "gold", "Alpha")

	_, err := service.GenerateAndSaveBracket(context.Background(), 42, "gold")
	assert.ErrorIs(t, err, brackets.ErrInsufficientEntrants)
	assert.Zero(t, bracketRepo.saves)
}

func TestGenerateAndSaveBracketReplacesExisting(t *testing.T) {
	service, _, registrationRepo, _ := newBracketServiceFixture()
	seedRegistrations(registrationRepo, 42, "gold", "Alpha", "Bravo")

	first, err := service.GenerateAndSaveBracket(context.Background(), 42, "gold")
	require.NoError(t, err)
	require.Len(t, first.Rounds, 1)

	seedRegistrations(registrationRepo, 42, "gold-extra", "ignored", "teams")
	registrationRepo.registrations = append(registrationRepo.registrations,
		testRegistrationFor(42, "gold", 77, "Echo"),
		testRegistrationFor(42, "gold", 78, "Foxtrot"),
	)

	second, err := service.GenerateAndSaveBracket(context.Background(), 42, "gold")
	require.NoError(t, err)
	assert.Len(t, second.Rounds, 2)

	current, err := service.GetBracket(context.Background(), 42, "gold")
	require.NoError(t, err)
	assert.Len(t, current.Rounds, 2)
}

func TestReportMatchWinnerBroadcasts(t *testing.T) {
	service, _, registrationRepo, hub := newBracketServiceFixture()
	seedRegistrations(registrationRepo, 42, "gold", "Alpha", "Bravo")

	_, err := service.GenerateAndSaveBracket(context.Background(), 42, "gold")
	require.NoError(t, err)

	state, err := service.ReportMatchWinner(context.Background(), 42, "gold", "R1M1", 0)
	require.NoError(t, err)
	require.NotNil(t, state.FinalMatch().WinnerIndex)

	// Финал решён, значит после MATCH_UPDATED идёт CHAMPION_DECIDED.
	assert.Equal(t, []string{
		brackets.EventBracketCreated,
		brackets.EventMatchUpdated,
		brackets.EventChampionDecided,
	}, hub.eventTypes())
}

func TestReportMatchWinnerRejectedNotSaved(t *testing.T) {
	service, bracketRepo, registrationRepo, _ := newBracketServiceFixture()
	seedRegistrations(registrationRepo, 42, "gold", "Alpha", "Bravo", "Charlie", "Delta")

	_, err := service.GenerateAndSaveBracket(context.Background(), 42, "gold")
	require.NoError(t, err)
	savesBefore := bracketRepo.saves

	_, err = service.ReportMatchWinner(context.Background(), 42, "gold", "R2M1", 0)
	assert.ErrorIs(t, err, brackets.ErrCompetitorNotReady)

	_, err = service.ReportMatchWinner(context.Background(), 42, "gold", "R9M9", 0)
	assert.ErrorIs(t, err, brackets.ErrMatchNotFound)

	assert.Equal(t, savesBefore, bracketRepo.saves)
}

func TestSimulateBracketLeavesSavedStateIntact(t *testing.T) {
	service, _, registrationRepo, _ := newBracketServiceFixture()
	seedRegistrations(registrationRepo, 42, "gold", "Alpha", "Bravo", "Charlie")

	_, err := service.GenerateAndSaveBracket(context.Background(), 42, "gold")
	require.NoError(t, err)

	final, snapshots, err := service.SimulateBracket(context.Background(), 42, "gold")
	require.NoError(t, err)
	require.NotNil(t, final.FinalMatch().WinnerIndex)
	assert.Len(t, snapshots, 3)

	saved, err := service.GetBracket(context.Background(), 42, "gold")
	require.NoError(t, err)
	assert.Nil(t, saved.FinalMatch().WinnerIndex)
}

func TestCaptainSummary(t *testing.T) {
	service, _, registrationRepo, _ := newBracketServiceFixture()
	seedRegistrations(registrationRepo, 42, "gold", "Alpha", "Bravo")

	_, err := service.GenerateAndSaveBracket(context.Background(), 42, "gold")
	require.NoError(t, err)

	lines, err := service.CaptainSummary(context.Background(), 42, "gold")
	require.NoError(t, err)
	require.Len(t, lines, 2)
	assert.True(t, strings.HasPrefix(lines[0], "#1 Alpha — Captain: Captain Alpha"), lines[0])
}

func TestCaptainSummaryNoBracket(t *testing.T) {
	service, _, _, _ := newBracketServiceFixture()

	_, err := service.CaptainSummary(context.Background(), 42, "gold")
	assert.ErrorIs(t, err, ErrBracketNotFound)
}
