package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/aliskhannn/guess-the-flag-bot/internal/domain/entities"
	"github.com/aliskhannn/guess-the-flag-bot/internal/infra/postgres"
)

var ErrStatsDisabled = errors.New("results log is not configured")

// ResultService writes finished games to the results log.
type ResultService struct {
	transactor Transactor
	users      UserRepositoryFactory
	results    ResultRepositoryFactory
}

func NewResultService(transactor Transactor, users UserRepositoryFactory, results ResultRepositoryFactory) *ResultService {
	return &ResultService{
		transactor: transactor,
		users:      users,
		results:    results,
	}
}

// RecordResult upserts the player and stores the result in one transaction.
func (s *ResultService) RecordResult(ctx context.Context, result *entities.GameResult) error {
	return s.transactor.WithinTx(ctx, func(ctx context.Context, tx pgx.Tx) error {
		var db postgres.DBTX = tx

		if _, err := s.users(db).Save(ctx, entities.NewUser(result.UserID, result.ChatID)); err != nil {
			return fmt.Errorf("save user: %w", err)
		}

		if err := s.results(db).Create(ctx, result); err != nil {
			return fmt.Errorf("create result: %w", err)
		}

		return nil
	})
}

// NopRecorder drops results when no database is configured.
type NopRecorder struct{}

func (NopRecorder) RecordResult(context.Context, *entities.GameResult) error { return nil }

// StatsService reads per-player aggregates from the results log.
type StatsService struct {
	repository StatsRepository
}

// NewStatsService creates a StatsService. A nil repository disables stats.
func NewStatsService(repository StatsRepository) *StatsService {
	return &StatsService{repository: repository}
}

func (s *StatsService) GetStats(ctx context.Context, userID int64) (*entities.PlayerStats, error) {
	if s.repository == nil {
		return nil, ErrStatsDisabled
	}

	stats, err := s.repository.GetStats(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("get stats: %w", err)
	}
	return stats, nil
}
