package services

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/Dosada05/bracket-service/models"
	"github.com/Dosada05/bracket-service/repositories"
	"github.com/Dosada05/bracket-service/validation"
)

type RegisterTeamInput struct {
	GuildID    int64                `json:"guild_id"`
	DivisionID string               `json:"division_id"`
	UserID     int64                `json:"user_id"`
	UserName   string               `json:"user_name"`
	TeamName   *string              `json:"team_name,omitempty"`
	Players    []models.PlayerEntry `json:"players"`
}

type RegistrationService interface {
	RegisterTeam(ctx context.Context, input RegisterTeamInput) (*models.TeamRegistration, error)
	WithdrawTeam(ctx context.Context, guildID int64, divisionID string, userID int64) error
	ListRegistrations(ctx context.Context, guildID int64, divisionID string) ([]models.TeamRegistration, error)
}

type registrationService struct {
	registrationRepo repositories.RegistrationRepository
	divisionRepo     repositories.DivisionRepository
	now              func() time.Time
}

func NewRegistrationService(
	registrationRepo repositories.RegistrationRepository,
	divisionRepo repositories.DivisionRepository,
) RegistrationService {
	return &registrationService{
		registrationRepo: registrationRepo,
		divisionRepo:     divisionRepo,
		now:              time.Now,
	}
}

// RegisterTeam проверяет заявку против конфигурации дивизиона (окно
// регистрации, вместимость, размер состава, уровни ратуш, грамматика
// тегов) и сохраняет её. Время регистрации фиксируется сервером: оно
// определяет порядок посева.
func (s *registrationService) RegisterTeam(ctx context.Context, input RegisterTeamInput) (*models.TeamRegistration, error) {
	config, err := s.divisionRepo.Get(ctx, input.GuildID, input.DivisionID)
	if err != nil {
		if errors.Is(err, repositories.ErrDivisionNotFound) {
			return nil, ErrDivisionNotFound
		}
		return nil, fmt.Errorf("failed to load division %s: %w", input.DivisionID, err)
	}

	if !config.RegistrationOpen(s.now().UTC()) {
		return nil, ErrRegistrationNotOpen
	}

	if len(input.Players) != config.TeamSize {
		return nil, fmt.Errorf("%w: expected %d players, got %d", ErrRosterSizeMismatch, config.TeamSize, len(input.Players))
	}

	seenTags := make(map[string]struct{}, len(input.Players))
	players := make([]models.PlayerEntry, 0, len(input.Players))
	for _, player := range input.Players {
		tag, err := validation.NormalizePlayerTag(player.Tag)
		if err != nil {
			return nil, err
		}
		if _, dup := seenTags[tag]; dup {
			return nil, fmt.Errorf("%w: %s", validation.ErrDuplicatePlayerTag, tag)
		}
		seenTags[tag] = struct{}{}
		if !config.TownHallAllowed(player.TownHall) {
			return nil, fmt.Errorf("%w: %s is TH%d", ErrTownHallNotAllowed, tag, player.TownHall)
		}
		player.Tag = tag
		players = append(players, player)
	}

	count, err := s.registrationRepo.CountByDivision(ctx, input.GuildID, input.DivisionID)
	if err != nil {
		return nil, fmt.Errorf("failed to count registrations for division %s: %w", input.DivisionID, err)
	}
	if count >= config.MaxTeams {
		return nil, ErrDivisionFull
	}

	registration := &models.TeamRegistration{
		GuildID:      input.GuildID,
		DivisionID:   input.DivisionID,
		UserID:       input.UserID,
		UserName:     input.UserName,
		TeamName:     input.TeamName,
		Players:      players,
		RegisteredAt: s.now().UTC(),
	}

	if err := s.registrationRepo.Create(ctx, nil, registration); err != nil {
		if errors.Is(err, repositories.ErrRegistrationConflict) {
			return nil, ErrRegistrationConflict
		}
		return nil, fmt.Errorf("failed to save registration for user %d: %w", input.UserID, err)
	}
	return registration, nil
}

func (s *registrationService) WithdrawTeam(ctx context.Context, guildID int64, divisionID string, userID int64) error {
	err := s.registrationRepo.Delete(ctx, nil, guildID, divisionID, userID)
	if err != nil {
		if errors.Is(err, repositories.ErrRegistrationNotFound) {
			return ErrRegistrationNotFound
		}
		return fmt.Errorf("failed to withdraw registration for user %d: %w", userID, err)
	}
	return nil
}

func (s *registrationService) ListRegistrations(ctx context.Context, guildID int64, divisionID string) ([]models.TeamRegistration, error) {
	registrations, err := s.registrationRepo.ListByDivision(ctx, guildID, divisionID)
	if err != nil {
		return nil, fmt.Errorf("failed to list registrations for division %s: %w", divisionID, err)
	}
	return registrations, nil
}
