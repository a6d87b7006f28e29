package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/aliskhannn/guess-the-flag-bot/internal/domain/entities"
	"github.com/aliskhannn/guess-the-flag-bot/internal/infra/postgres"
)

var ErrResultNotFound = errors.New("game result not found")

// ResultRepository provides access to finished games in the database.
type ResultRepository struct {
	db postgres.DBTX
}

// NewResultRepository creates a new ResultRepository over a pool or a transaction.
func NewResultRepository(db postgres.DBTX) *ResultRepository {
	return &ResultRepository{db: db}
}

// Create stores a finished game. Storing the same session twice is a no-op.
func (r *ResultRepository) Create(ctx context.Context, result *entities.GameResult) error {
	query := `
		INSERT INTO game_results (
			id, user_id, chat_id, score, correct_answers,
			wrong_answers, rounds, started_at, finished_at
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
		ON CONFLICT (id) DO NOTHING
	`

	_, err := r.db.Exec(
		ctx,
		query,
		result.ID,
		result.UserID,
		result.ChatID,
		result.Score,
		result.CorrectAnswers,
		result.WrongAnswers,
		result.Rounds,
		result.StartedAt,
		result.FinishedAt,
	)
	if err != nil {
		return fmt.Errorf("create game result: %w", err)
	}

	return nil
}

// GetByID retrieves a finished game by its session ID.
func (r *ResultRepository) GetByID(ctx context.Context, id uuid.UUID) (*entities.GameResult, error) {
	query := `
		SELECT id, user_id, chat_id, score, correct_answers,
		       wrong_answers, rounds, started_at, finished_at
		FROM game_results
		WHERE id = $1
	`

	var result entities.GameResult
	err := r.db.QueryRow(ctx, query, id).Scan(
		&result.ID,
		&result.UserID,
		&result.ChatID,
		&result.Score,
		&result.CorrectAnswers,
		&result.WrongAnswers,
		&result.Rounds,
		&result.StartedAt,
		&result.FinishedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrResultNotFound
		}
		return nil, fmt.Errorf("get game result: %w", err)
	}

	return &result, nil
}

// GetStats aggregates all finished games of a user.
func (r *ResultRepository) GetStats(ctx context.Context, userID int64) (*entities.PlayerStats, error) {
	query := `
		SELECT COUNT(*),
		       COALESCE(MAX(score), 0),
		       COALESCE(AVG(score), 0)::float8,
		       COALESCE(SUM(correct_answers), 0),
		       COALESCE(SUM(correct_answers + wrong_answers), 0),
		       MAX(finished_at)
		FROM game_results
		WHERE user_id = $1
	`

	var (
		stats    entities.PlayerStats
		lastPlay *time.Time
	)
	err := r.db.QueryRow(ctx, query, userID).Scan(
		&stats.GamesPlayed,
		&stats.BestScore,
		&stats.AverageScore,
		&stats.CorrectAnswers,
		&stats.TotalAnswers,
		&lastPlay,
	)
	if err != nil {
		return nil, fmt.Errorf("get player stats: %w", err)
	}
	stats.LastPlayedAt = lastPlay

	return &stats, nil
}
