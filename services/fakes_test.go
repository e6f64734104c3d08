package services

import (
	"bytes"
	"context"
	"io"
	"sync"
	"time"

	"github.com/Dosada05/bracket-service/brackets"
	"github.com/Dosada05/bracket-service/models"
	"github.com/Dosada05/bracket-service/repositories"
	"github.com/Dosada05/bracket-service/storage"
)

type fakeDivisionRepo struct {
	configs map[string]*models.DivisionConfig
}

func newFakeDivisionRepo() *fakeDivisionRepo {
	return &fakeDivisionRepo{configs: make(map[string]*models.DivisionConfig)}
}

func divisionKey(guildID int64, divisionID string) string {
	return brackets.DivisionRoom(guildID, divisionID)
}

func (f *fakeDivisionRepo) Upsert(_ context.Context, config *models.DivisionConfig) error {
	copied := *config
	f.configs[divisionKey(config.GuildID, config.DivisionID)] = &copied
	return nil
}

func (f *fakeDivisionRepo) Get(_ context.Context, guildID int64, divisionID string) (*models.DivisionConfig, error) {
	config, ok := f.configs[divisionKey(guildID, divisionID)]
	if !ok {
		return nil, repositories.ErrDivisionNotFound
	}
	copied := *config
	return &copied, nil
}

func (f *fakeDivisionRepo) ListByGuild(_ context.Context, guildID int64) ([]models.DivisionConfig, error) {
	out := make([]models.DivisionConfig, 0)
	for _, config := range f.configs {
		if config.GuildID == guildID {
			out = append(out, *config)
		}
	}
	return out, nil
}

type fakeRegistrationRepo struct {
	registrations []models.TeamRegistration
}

func (f *fakeRegistrationRepo) Create(_ context.Context, _ repositories.SQLExecutor, registration *models.TeamRegistration) error {
	for _, existing := range f.registrations {
		if existing.GuildID == registration.GuildID &&
			existing.DivisionID == registration.DivisionID &&
			existing.UserID == registration.UserID {
			return repositories.ErrRegistrationConflict
		}
	}
	f.registrations = append(f.registrations, *registration)
	return nil
}

func (f *fakeRegistrationRepo) Get(_ context.Context, guildID int64, divisionID string, userID int64) (*models.TeamRegistration, error) {
	for i := range f.registrations {
		r := &f.registrations[i]
		if r.GuildID == guildID && r.DivisionID == divisionID && r.UserID == userID {
			copied := *r
			return &copied, nil
		}
	}
	return nil, repositories.ErrRegistrationNotFound
}

func (f *fakeRegistrationRepo) ListByDivision(_ context.Context, guildID int64, divisionID string) ([]models.TeamRegistration, error) {
	out := make([]models.TeamRegistration, 0)
	for _, r := range f.registrations {
		if r.GuildID == guildID && r.DivisionID == divisionID {
			out = append(out, r)
		}
	}
	return out, nil
}

func (f *fakeRegistrationRepo) CountByDivision(ctx context.Context, guildID int64, divisionID string) (int, error) {
	list, _ := f.ListByDivision(ctx, guildID, divisionID)
	return len(list), nil
}

func (f *fakeRegistrationRepo) Delete(_ context.Context, _ repositories.SQLExecutor, guildID int64, divisionID string, userID int64) error {
	for i := range f.registrations {
		r := &f.registrations[i]
		if r.GuildID == guildID && r.DivisionID == divisionID && r.UserID == userID {
			f.registrations = append(f.registrations[:i], f.registrations[i+1:]...)
			return nil
		}
	}
	return repositories.ErrRegistrationNotFound
}

type fakeBracketRepo struct {
	brackets map[string]*models.BracketState
	saves    int
}

func newFakeBracketRepo() *fakeBracketRepo {
	return &fakeBracketRepo{brackets: make(map[string]*models.BracketState)}
}

func (f *fakeBracketRepo) Save(_ context.Context, _ repositories.SQLExecutor, state *models.BracketState) error {
	f.brackets[divisionKey(state.GuildID, state.DivisionID)] = state.Clone()
	f.saves++
	return nil
}

func (f *fakeBracketRepo) Get(_ context.Context, guildID int64, divisionID string) (*models.BracketState, error) {
	state, ok := f.brackets[divisionKey(guildID, divisionID)]
	if !ok {
		return nil, repositories.ErrBracketNotFound
	}
	return state.Clone(), nil
}

func (f *fakeBracketRepo) Delete(_ context.Context, _ repositories.SQLExecutor, guildID int64, divisionID string) error {
	key := divisionKey(guildID, divisionID)
	if _, ok := f.brackets[key]; !ok {
		return repositories.ErrBracketNotFound
	}
	delete(f.brackets, key)
	return nil
}

type fakeHub struct {
	mu     sync.Mutex
	events []brackets.Event
}

func (f *fakeHub) BroadcastToRoom(roomID string, event brackets.Event) {
	f.mu.Lock()
	defer f.mu.Unlock()
	event.RoomID = roomID
	f.events = append(f.events, event)
}

func (f *fakeHub) eventTypes() []string {
	f.mu.Lock()
	defer f.mu.Unlock()
	types := make([]string, 0, len(f.events))
	for _, event := range f.events {
		types = append(types, event.Type)
	}
	return types
}

type fakeUploader struct {
	objects map[string][]byte
}

func newFakeUploader() *fakeUploader {
	return &fakeUploader{objects: make(map[string][]byte)}
}

func (f *fakeUploader) Upload(_ context.Context, key string, _ string, reader io.Reader) (*storage.UploadResult, error) {
	var buf bytes.Buffer
	if _, err := buf.ReadFrom(reader); err != nil {
		return nil, err
	}
	f.objects[key] = buf.Bytes()
	return &storage.UploadResult{Key: key, Location: "https://cdn.example/" + key}, nil
}

func (f *fakeUploader) Delete(_ context.Context, key string) error {
	delete(f.objects, key)
	return nil
}

func (f *fakeUploader) GetPublicURL(key string) string {
	return "https://cdn.example/" + key
}

func seedDivision(divisionRepo *fakeDivisionRepo, guildID int64, divisionID string) {
	divisionRepo.configs[divisionKey(guildID, divisionID)] = &models.DivisionConfig{
		GuildID:              guildID,
		DivisionID:           divisionID,
		DivisionName:         "Main Division",
		TeamSize:             5,
		AllowedTownHalls:     []int{15, 16, 17},
		MaxTeams:             8,
		RegistrationOpensAt:  time.Now().UTC().Add(-time.Hour),
		RegistrationClosesAt: time.Now().UTC().Add(time.Hour),
	}
}

func testRegistrationFor(guildID int64, divisionID string, userID int64, name string) models.TeamRegistration {
	teamName := name
	return models.TeamRegistration{
		GuildID:      guildID,
		DivisionID:   divisionID,
		UserID:       userID,
		UserName:     "Captain " + name,
		TeamName:     &teamName,
		RegisteredAt: time.Date(2025, 2, 1, 10, 0, 0, 0, time.UTC).Add(time.Duration(userID) * time.Second),
	}
}

func seedRegistrations(repo *fakeRegistrationRepo, guildID int64, divisionID string, names ...string) {
	base := time.Date(2025, 2, 1, 9, 0, 0, 0, time.UTC)
	for i, name := range names {
		teamName := name
		repo.registrations = append(repo.registrations, models.TeamRegistration{
			GuildID:      guildID,
			DivisionID:   divisionID,
			UserID:       int64(i + 1),
			UserName:     "Captain " + name,
			TeamName:     &teamName,
			RegisteredAt: base.Add(time.Duration(i) * time.Minute),
		})
	}
}
