package repositories

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/lib/pq"

	"github.com/Dosada05/bracket-service/models"
)

var ErrDivisionNotFound = errors.New("division not found")

// DivisionRepository хранит конфигурации дивизионов гильдии.
type DivisionRepository interface {
	Upsert(ctx context.Context, config *models.DivisionConfig) error
	Get(ctx context.Context, guildID int64, divisionID string) (*models.DivisionConfig, error)
	ListByGuild(ctx context.Context, guildID int64) ([]models.DivisionConfig, error)
}

type postgresDivisionRepository struct {
	db *sql.DB
}

func NewPostgresDivisionRepository(db *sql.DB) DivisionRepository {
	return &postgresDivisionRepository{db: db}
}

func (r *postgresDivisionRepository) Upsert(ctx context.Context, config *models.DivisionConfig) error {
	query := `
		INSERT INTO divisions
			(guild_id, division_id, division_name, team_size, allowed_town_halls, max_teams,
			 registration_opens_at, registration_closes_at, updated_by, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
		ON CONFLICT (guild_id, division_id) DO UPDATE SET
			division_name = EXCLUDED.division_name,
			team_size = EXCLUDED.team_size,
			allowed_town_halls = EXCLUDED.allowed_town_halls,
			max_teams = EXCLUDED.max_teams,
			registration_opens_at = EXCLUDED.registration_opens_at,
			registration_closes_at = EXCLUDED.registration_closes_at,
			updated_by = EXCLUDED.updated_by,
			updated_at = EXCLUDED.updated_at`

	_, err := r.db.ExecContext(ctx, query,
		config.GuildID,
		config.DivisionID,
		config.DivisionName,
		config.TeamSize,
		pq.Array(config.AllowedTownHalls),
		config.MaxTeams,
		config.RegistrationOpensAt,
		config.RegistrationClosesAt,
		config.UpdatedBy,
		config.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to upsert division %s for guild %d: %w", config.DivisionID, config.GuildID, err)
	}
	return nil
}

func (r *postgresDivisionRepository) Get(ctx context.Context, guildID int64, divisionID string) (*models.DivisionConfig, error) {
	query := `
		SELECT guild_id, division_id, division_name, team_size, allowed_town_halls, max_teams,
		       registration_opens_at, registration_closes_at, updated_by, updated_at
		FROM divisions
		WHERE guild_id = $1 AND division_id = $2`

	config := &models.DivisionConfig{}
	var townHalls pq.Int64Array
	err := r.db.QueryRowContext(ctx, query, guildID, divisionID).Scan(
		&config.GuildID,
		&config.DivisionID,
		&config.DivisionName,
		&config.TeamSize,
		&townHalls,
		&config.MaxTeams,
		&config.RegistrationOpensAt,
		&config.RegistrationClosesAt,
		&config.UpdatedBy,
		&config.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrDivisionNotFound
		}
		return nil, fmt.Errorf("failed to scan division %s for guild %d: %w", divisionID, guildID, err)
	}
	config.AllowedTownHalls = int64sToInts(townHalls)
	return config, nil
}

func (r *postgresDivisionRepository) ListByGuild(ctx context.Context, guildID int64) ([]models.DivisionConfig, error) {
	query := `
		SELECT guild_id, division_id, division_name, team_size, allowed_town_halls, max_teams,
		       registration_opens_at, registration_closes_at, updated_by, updated_at
		FROM divisions
		WHERE guild_id = $1
		ORDER BY LOWER(division_name), division_id`

	rows, err := r.db.QueryContext(ctx, query, guildID)
	if err != nil {
		return nil, fmt.Errorf("failed to list divisions for guild %d: %w", guildID, err)
	}
	defer rows.Close()

	configs := make([]models.DivisionConfig, 0)
	for rows.Next() {
		config := models.DivisionConfig{}
		var townHalls pq.Int64Array
		err := rows.Scan(
			&config.GuildID,
			&config.DivisionID,
			&config.DivisionName,
			&config.TeamSize,
			&townHalls,
			&config.MaxTeams,
			&config.RegistrationOpensAt,
			&config.RegistrationClosesAt,
			&config.UpdatedBy,
			&config.UpdatedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan division row: %w", err)
		}
		config.AllowedTownHalls = int64sToInts(townHalls)
		configs = append(configs, config)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating division rows: %w", err)
	}
	return configs, nil
}

func int64sToInts(values pq.Int64Array) []int {
	out := make([]int, 0, len(values))
	for _, v := range values {
		out = append(out, int(v))
	}
	return out
}
