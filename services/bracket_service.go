package services

import (
	"context"
	"errors"
	"fmt"

	"golang.org/x/sync/errgroup"

	"github.com/Dosada05/bracket-service/brackets"
	"github.com/Dosada05/bracket-service/models"
	"github.com/Dosada05/bracket-service/repositories"
)

// BracketBroadcaster рассылает события сетки подписчикам дивизиона.
// Реализуется brackets.Hub; в тестах подменяется фейком.
type BracketBroadcaster interface {
	BroadcastToRoom(roomID string, event brackets.Event)
}

type BracketService interface {
	GenerateAndSaveBracket(ctx context.Context, guildID int64, divisionID string) (*models.BracketState, error)
	GetBracket(ctx context.Context, guildID int64, divisionID string) (*models.BracketState, error)
	ReportMatchWinner(ctx context.Context, guildID int64, divisionID, matchID string, winnerSlot int) (*models.BracketState, error)
	RenderBracket(ctx context.Context, guildID int64, divisionID string, shrinkToActive bool) (string, error)
	SimulateBracket(ctx context.Context, guildID int64, divisionID string) (*models.BracketState, []brackets.Snapshot, error)
	CaptainSummary(ctx context.Context, guildID int64, divisionID string) ([]string, error)
}

type bracketService struct {
	divisionRepo     repositories.DivisionRepository
	registrationRepo repositories.RegistrationRepository
	bracketRepo      repositories.BracketRepository
	hub              BracketBroadcaster
}

func NewBracketService(
	divisionRepo repositories.DivisionRepository,
	registrationRepo repositories.RegistrationRepository,
	bracketRepo repositories.BracketRepository,
	hub BracketBroadcaster,
) BracketService {
	return &bracketService{
		divisionRepo:     divisionRepo,
		registrationRepo: registrationRepo,
		bracketRepo:      bracketRepo,
		hub:              hub,
	}
}

// GenerateAndSaveBracket строит сетку из текущих регистраций дивизиона и
// сохраняет её. Повторный вызов заменяет прежнюю сетку целиком: пересев —
// это замена, не слияние.
func (s *bracketService) GenerateAndSaveBracket(ctx context.Context, guildID int64, divisionID string) (*models.BracketState, error) {
	if _, err := s.divisionRepo.Get(ctx, guildID, divisionID); err != nil {
		if errors.Is(err, repositories.ErrDivisionNotFound) {
			return nil, ErrDivisionNotFound
		}
		return nil, fmt.Errorf("failed to load division %s: %w", divisionID, err)
	}

	registrations, err := s.registrationRepo.ListByDivision(ctx, guildID, divisionID)
	if err != nil {
		return nil, fmt.Errorf("failed to list registrations for division %s: %w", divisionID, err)
	}

	state, err := brackets.CreateBracket(guildID, divisionID, registrations)
	if err != nil {
		return nil, err
	}

	if err := s.bracketRepo.Save(ctx, nil, state); err != nil {
		return nil, fmt.Errorf("failed to save bracket for division %s: %w", divisionID, err)
	}

	s.hub.BroadcastToRoom(brackets.DivisionRoom(guildID, divisionID), brackets.Event{
		Type:    brackets.EventBracketCreated,
		Payload: state,
	})
	return state, nil
}

func (s *bracketService) GetBracket(ctx context.Context, guildID int64, divisionID string) (*models.BracketState, error) {
	state, err := s.bracketRepo.Get(ctx, guildID, divisionID)
	if err != nil {
		if errors.Is(err, repositories.ErrBracketNotFound) {
			return nil, ErrBracketNotFound
		}
		return nil, fmt.Errorf("failed to load bracket for division %s: %w", divisionID, err)
	}
	return state, nil
}

// ReportMatchWinner записывает решение по матчу и сохраняет обновлённую
// сетку. Ошибки движка (ErrMatchNotFound, ErrCompetitorNotReady,
// ErrWinnerConflict) возвращаются как есть: отклонённый вызов ничего не
// сохраняет.
func (s *bracketService) ReportMatchWinner(ctx context.Context, guildID int64, divisionID, matchID string, winnerSlot int) (*models.BracketState, error) {
	state, err := s.GetBracket(ctx, guildID, divisionID)
	if err != nil {
		return nil, err
	}

	if err := brackets.SetMatchWinner(state, matchID, winnerSlot); err != nil {
		return nil, err
	}

	if err := s.bracketRepo.Save(ctx, nil, state); err != nil {
		return nil, fmt.Errorf("failed to save bracket for division %s: %w", divisionID, err)
	}

	room := brackets.DivisionRoom(guildID, divisionID)
	s.hub.BroadcastToRoom(room, brackets.Event{
		Type:    brackets.EventMatchUpdated,
		Payload: state.FindMatch(matchID),
	})
	if final := state.FinalMatch(); final != nil {
		if winner := final.WinnerSlot(); winner != nil && winner.Resolved() {
			s.hub.BroadcastToRoom(room, brackets.Event{
				Type:    brackets.EventChampionDecided,
				Payload: winner.Display(),
			})
		}
	}
	return state, nil
}

func (s *bracketService) RenderBracket(ctx context.Context, guildID int64, divisionID string, shrinkToActive bool) (string, error) {
	state, err := s.GetBracket(ctx, guildID, divisionID)
	if err != nil {
		return "", err
	}
	return brackets.Render(state, shrinkToActive), nil
}

func (s *bracketService) SimulateBracket(ctx context.Context, guildID int64, divisionID string) (*models.BracketState, []brackets.Snapshot, error) {
	state, err := s.GetBracket(ctx, guildID, divisionID)
	if err != nil {
		return nil, nil, err
	}
	// Симуляция работает на копии; сохранённая сетка не меняется.
	return brackets.Simulate(state)
}

// CaptainSummary собирает строки "команда — капитан". Сетка и регистрации
// загружаются параллельно.
func (s *bracketService) CaptainSummary(ctx context.Context, guildID int64, divisionID string) ([]string, error) {
	var (
		state         *models.BracketState
		registrations []models.TeamRegistration
	)

	g, gCtx := errgroup.WithContext(ctx)
	g.Go(func() error {
		loaded, err := s.GetBracket(gCtx, guildID, divisionID)
		if err != nil {
			return err
		}
		state = loaded
		return nil
	})
	g.Go(func() error {
		loaded, err := s.registrationRepo.ListByDivision(gCtx, guildID, divisionID)
		if err != nil {
			return fmt.Errorf("failed to list registrations for division %s: %w", divisionID, err)
		}
		registrations = loaded
		return nil
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}

	return brackets.CaptainLines(state, registrations), nil
}
