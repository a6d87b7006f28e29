//go:build integration

package repository

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/aliskhannn/guess-the-flag-bot/internal/domain/entities"
	"github.com/aliskhannn/guess-the-flag-bot/internal/infra/postgres"
)

func newResult(userID int64, score, correct int) *entities.GameResult {
	started := time.Now().UTC().Truncate(time.Millisecond)
	return &entities.GameResult{
		ID:             uuid.New(),
		UserID:         userID,
		ChatID:         userID,
		Score:          score,
		CorrectAnswers: correct,
		WrongAnswers:   entities.RoundsPerGame - correct,
		Rounds:         entities.RoundsPerGame,
		StartedAt:      started,
		FinishedAt:     started.Add(time.Minute),
	}
}

func TestUserRepository_SaveAndExists(t *testing.T) {
	db := setupTestDB(t)
	ctx := context.Background()
	repo := NewUserRepository(db)

	exists, err := repo.Exists(ctx, 42)
	require.NoError(t, err)
	assert.False(t, exists)

	created, err := repo.Save(ctx, entities.NewUser(42, 100))
	require.NoError(t, err)
	assert.True(t, created)

	created, err = repo.Save(ctx, entities.NewUser(42, 200))
	require.NoError(t, err)
	assert.False(t, created)

	user, err := repo.GetByID(ctx, 42)
	require.NoError(t, err)
	assert.Equal(t, int64(200), user.ChatID)

	_, err = repo.GetByID(ctx, 43)
	assert.ErrorIs(t, err, ErrUserNotFound)
}

func TestResultRepository_CreateIsIdempotent(t *testing.T) {
	db := setupTestDB(t)
	ctx := context.Background()

	_, err := NewUserRepository(db).Save(ctx, entities.NewUser(7, 7))
	require.NoError(t, err)

	repo := NewResultRepository(db)
	result := newResult(7, 5, 6)

	require.NoError(t, repo.Create(ctx, result))
	require.NoError(t, repo.Create(ctx, result))

	got, err := repo.GetByID(ctx, result.ID)
	require.NoError(t, err)
	assert.Equal(t, result.Score, got.Score)
	assert.Equal(t, result.CorrectAnswers, got.CorrectAnswers)

	_, err = repo.GetByID(ctx, uuid.New())
	assert.ErrorIs(t, err, ErrResultNotFound)
}

func TestResultRepository_GetStats(t *testing.T) {
	db := setupTestDB(t)
	ctx := context.Background()

	_, err := NewUserRepository(db).Save(ctx, entities.NewUser(9, 9))
	require.NoError(t, err)

	repo := NewResultRepository(db)

	empty, err := repo.GetStats(ctx, 9)
	require.NoError(t, err)
	assert.Equal(t, 0, empty.GamesPlayed)
	assert.Nil(t, empty.LastPlayedAt)

	require.NoError(t, repo.Create(ctx, newResult(9, 8, 8)))
	require.NoError(t, repo.Create(ctx, newResult(9, 2, 4)))

	stats, err := repo.GetStats(ctx, 9)
	require.NoError(t, err)
	assert.Equal(t, 2, stats.GamesPlayed)
	assert.Equal(t, 8, stats.BestScore)
	assert.InDelta(t, 5.0, stats.AverageScore, 0.001)
	assert.Equal(t, 12, stats.CorrectAnswers)
	assert.Equal(t, 16, stats.TotalAnswers)
	assert.NotNil(t, stats.LastPlayedAt)
}

func TestTransactor_RollsBackOnError(t *testing.T) {
	db := setupTestDB(t)
	ctx := context.Background()
	transactor := postgres.NewTransactor(db)
	boom := errors.New("boom")

	err := transactor.WithinTx(ctx, func(ctx context.Context, tx pgx.Tx) error {
		if _, err := NewUserRepository(tx).Save(ctx, entities.NewUser(11, 11)); err != nil {
			return err
		}
		return boom
	})
	require.ErrorIs(t, err, boom)

	exists, err := NewUserRepository(db).Exists(ctx, 11)
	require.NoError(t, err)
	assert.False(t, exists)
}
