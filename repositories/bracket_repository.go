package repositories

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/Dosada05/bracket-service/models"
)

var ErrBracketNotFound = errors.New("bracket not found")

// BracketRepository хранит сетку дивизиона целиком: раунды сериализуются в
// JSONB, так что состояние сохраняется поле-в-поле и дивизион всегда имеет
// не больше одной сетки (повторное сохранение — замена, не слияние).
type BracketRepository interface {
	Save(ctx context.Context, exec SQLExecutor, state *models.BracketState) error
	Get(ctx context.Context, guildID int64, divisionID string) (*models.BracketState, error)
	Delete(ctx context.Context, exec SQLExecutor, guildID int64, divisionID string) error
}

type postgresBracketRepository struct {
	db *sql.DB
}

func NewPostgresBracketRepository(db *sql.DB) BracketRepository {
	return &postgresBracketRepository{db: db}
}

func (r *postgresBracketRepository) Save(ctx context.Context, exec SQLExecutor, state *models.BracketState) error {
	if exec == nil {
		exec = r.db
	}
	roundsJSON, err := json.Marshal(state.Rounds)
	if err != nil {
		return fmt.Errorf("failed to marshal bracket rounds: %w", err)
	}

	query := `
		INSERT INTO brackets (guild_id, division_id, created_at, rounds)
		VALUES ($1, $2, $3, $4)
		ON CONFLICT (guild_id, division_id)
		DO UPDATE SET created_at = EXCLUDED.created_at, rounds = EXCLUDED.rounds`

	if _, err := exec.ExecContext(ctx, query, state.GuildID, state.DivisionID, state.CreatedAt, roundsJSON); err != nil {
		return fmt.Errorf("failed to save bracket for guild %d division %s: %w", state.GuildID, state.DivisionID, err)
	}
	return nil
}

func (r *postgresBracketRepository) Get(ctx context.Context, guildID int64, divisionID string) (*models.BracketState, error) {
	query := `
		SELECT guild_id, division_id, created_at, rounds
		FROM brackets
		WHERE guild_id = $1 AND division_id = $2`

	state := &models.BracketState{}
	var roundsJSON []byte
	err := r.db.QueryRowContext(ctx, query, guildID, divisionID).Scan(
		&state.GuildID,
		&state.DivisionID,
		&state.CreatedAt,
		&roundsJSON,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrBracketNotFound
		}
		return nil, fmt.Errorf("failed to scan bracket for guild %d division %s: %w", guildID, divisionID, err)
	}
	if err := json.Unmarshal(roundsJSON, &state.Rounds); err != nil {
		return nil, fmt.Errorf("failed to unmarshal bracket rounds for guild %d division %s: %w", guildID, divisionID, err)
	}
	return state, nil
}

func (r *postgresBracketRepository) Delete(ctx context.Context, exec SQLExecutor, guildID int64, divisionID string) error {
	if exec == nil {
		exec = r.db
	}
	query := `DELETE FROM brackets WHERE guild_id = $1 AND division_id = $2`
	result, err := exec.ExecContext(ctx, query, guildID, divisionID)
	if err != nil {
		return fmt.Errorf("failed to delete bracket for guild %d division %s: %w", guildID, divisionID, err)
	}
	return checkAffectedRows(result, ErrBracketNotFound)
}
