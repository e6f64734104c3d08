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

type DivisionConfigInput struct {
	GuildID              int64     `json:"guild_id"`
	DivisionID           string    `json:"division_id"`
	DivisionName         string    `json:"division_name"`
	TeamSize             int       `json:"team_size"`
	AllowedTownHalls     string    `json:"allowed_town_halls"`
	MaxTeams             int       `json:"max_teams"`
	RegistrationOpensAt  time.Time `json:"registration_opens_at"`
	RegistrationClosesAt time.Time `json:"registration_closes_at"`
}

var ErrRegistrationWindowInvalid = errors.New("registration close time must be after open time")

type DivisionService interface {
	ConfigureDivision(ctx context.Context, input DivisionConfigInput, updatedBy int64) (*models.DivisionConfig, error)
	GetDivision(ctx context.Context, guildID int64, divisionID string) (*models.DivisionConfig, error)
	ListDivisions(ctx context.Context, guildID int64) ([]models.DivisionConfig, error)
}

type divisionService struct {
	divisionRepo repositories.DivisionRepository
}

func NewDivisionService(divisionRepo repositories.DivisionRepository) DivisionService {
	return &divisionService{divisionRepo: divisionRepo}
}

func (s *divisionService) ConfigureDivision(ctx context.Context, input DivisionConfigInput, updatedBy int64) (*models.DivisionConfig, error) {
	if err := validation.ValidateTeamSize(input.TeamSize); err != nil {
		return nil, err
	}
	if err := validation.ValidateMaxTeams(input.MaxTeams); err != nil {
		return nil, err
	}
	townHalls, err := validation.ParseTownHallLevels(input.AllowedTownHalls)
	if err != nil {
		return nil, err
	}
	if !input.RegistrationClosesAt.After(input.RegistrationOpensAt) {
		return nil, ErrRegistrationWindowInvalid
	}

	config := &models.DivisionConfig{
		GuildID:              input.GuildID,
		DivisionID:           input.DivisionID,
		DivisionName:         input.DivisionName,
		TeamSize:             input.TeamSize,
		AllowedTownHalls:     townHalls,
		MaxTeams:             input.MaxTeams,
		RegistrationOpensAt:  input.RegistrationOpensAt.UTC(),
		RegistrationClosesAt: input.RegistrationClosesAt.UTC(),
		UpdatedBy:            updatedBy,
		UpdatedAt:            time.Now().UTC(),
	}
	if err := s.divisionRepo.Upsert(ctx, config); err != nil {
		return nil, fmt.Errorf("failed to save division %s: %w", input.DivisionID, err)
	}
	return config, nil
}

func (s *divisionService) GetDivision(ctx context.Context, guildID int64, divisionID string) (*models.DivisionConfig, error) {
	config, err := s.divisionRepo.Get(ctx, guildID, divisionID)
	if err != nil {
		if errors.Is(err, repositories.ErrDivisionNotFound) {
			return nil, ErrDivisionNotFound
		}
		return nil, fmt.Errorf("failed to load division %s: %w", divisionID, err)
	}
	return config, nil
}

func (s *divisionService) ListDivisions(ctx context.Context, guildID int64) ([]models.DivisionConfig, error) {
	configs, err := s.divisionRepo.ListByGuild(ctx, guildID)
	if err != nil {
		return nil, fmt.Errorf("failed to list divisions for guild %d: %w", guildID, err)
	}
	return configs, nil
}
