package repositories

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/lib/pq"

	"github.com/Dosada05/bracket-service/models"
)

var (
	ErrRegistrationNotFound = errors.New("team registration not found")
	ErrRegistrationConflict = errors.New("captain is already registered in this division")
)

// RegistrationRepository хранит заявки команд. Состав команды (players)
// сериализуется в JSONB; листинг возвращает канонический порядок посева:
// время регистрации, затем id капитана.
type RegistrationRepository interface {
	Create(ctx context.Context, exec SQLExecutor, registration *models.TeamRegistration) error
	Get(ctx context.Context, guildID int64, divisionID string, userID int64) (*models.TeamRegistration, error)
	ListByDivision(ctx context.Context, guildID int64, divisionID string) ([]models.TeamRegistration, error)
	CountByDivision(ctx context.Context, guildID int64, divisionID string) (int, error)
	Delete(ctx context.Context, exec SQLExecutor, guildID int64, divisionID string, userID int64) error
}

type postgresRegistrationRepository struct {
	db *sql.DB
}

func NewPostgresRegistrationRepository(db *sql.DB) RegistrationRepository {
	return &postgresRegistrationRepository{db: db}
}

func (r *postgresRegistrationRepository) Create(ctx context.Context, exec SQLExecutor, registration *models.TeamRegistration) error {
	if exec == nil {
		exec = r.db
	}
	playersJSON, err := json.Marshal(registration.Players)
	if err != nil {
		return fmt.Errorf("failed to marshal roster: %w", err)
	}

	query := `
		INSERT INTO team_registrations (guild_id, division_id, user_id, user_name, team_name, players, registered_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)`

	_, err = exec.ExecContext(ctx, query,
		registration.GuildID,
		registration.DivisionID,
		registration.UserID,
		registration.UserName,
		registration.TeamName,
		playersJSON,
		registration.RegisteredAt,
	)
	if err != nil {
		var pqErr *pq.Error
		if errors.As(err, &pqErr) && pqErr.Code == "23505" {
			return ErrRegistrationConflict
		}
		return fmt.Errorf("failed to create registration for user %d: %w", registration.UserID, err)
	}
	return nil
}

func (r *postgresRegistrationRepository) Get(ctx context.Context, guildID int64, divisionID string, userID int64) (*models.TeamRegistration, error) {
	query := `
		SELECT guild_id, division_id, user_id, user_name, team_name, players, registered_at
		FROM team_registrations
		WHERE guild_id = $1 AND division_id = $2 AND user_id = $3`

	row := r.db.QueryRowContext(ctx, query, guildID, divisionID, userID)
	registration, err := scanRegistration(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrRegistrationNotFound
		}
		return nil, fmt.Errorf("failed to scan registration for user %d: %w", userID, err)
	}
	return registration, nil
}

func (r *postgresRegistrationRepository) ListByDivision(ctx context.Context, guildID int64, divisionID string) ([]models.TeamRegistration, error) {
	query := `
		SELECT guild_id, division_id, user_id, user_name, team_name, players, registered_at
		FROM team_registrations
		WHERE guild_id = $1 AND division_id = $2
		ORDER BY registered_at, user_id`

	rows, err := r.db.QueryContext(ctx, query, guildID, divisionID)
	if err != nil {
		return nil, fmt.Errorf("failed to list registrations for guild %d division %s: %w", guildID, divisionID, err)
	}
	defer rows.Close()

	registrations := make([]models.TeamRegistration, 0)
	for rows.Next() {
		registration, err := scanRegistration(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan registration row: %w", err)
		}
		registrations = append(registrations, *registration)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating registration rows: %w", err)
	}
	return registrations, nil
}

func (r *postgresRegistrationRepository) CountByDivision(ctx context.Context, guildID int64, divisionID string) (int, error) {
	query := `SELECT COUNT(*) FROM team_registrations WHERE guild_id = $1 AND division_id = $2`
	var count int
	if err := r.db.QueryRowContext(ctx, query, guildID, divisionID).Scan(&count); err != nil {
		return 0, fmt.Errorf("failed to count registrations for guild %d division %s: %w", guildID, divisionID, err)
	}
	return count, nil
}

func (r *postgresRegistrationRepository) Delete(ctx context.Context, exec SQLExecutor, guildID int64, divisionID string, userID int64) error {
	if exec == nil {
		exec = r.db
	}
	query := `DELETE FROM team_registrations WHERE guild_id = $1 AND division_id = $2 AND user_id = $3`
	result, err := exec.ExecContext(ctx, query, guildID, divisionID, userID)
	if err != nil {
		return fmt.Errorf("failed to delete registration for user %d: %w", userID, err)
	}
	return checkAffectedRows(result, ErrRegistrationNotFound)
}

type rowScanner interface {
	Scan(dest ...interface{}) error
}

func scanRegistration(row rowScanner) (*models.TeamRegistration, error) {
	registration := &models.TeamRegistration{}
	var playersJSON []byte
	err := row.Scan(
		&registration.GuildID,
		&registration.DivisionID,
		&registration.UserID,
		&registration.UserName,
		&registration.TeamName,
		&playersJSON,
		&registration.RegisteredAt,
	)
	if err != nil {
		return nil, err
	}
	if len(playersJSON) > 0 {
		if err := json.Unmarshal(playersJSON, &registration.Players); err != nil {
			return nil, fmt.Errorf("failed to unmarshal roster: %w", err)
		}
	}
	return registration, nil
}
