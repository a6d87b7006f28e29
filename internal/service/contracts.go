package service

import (
	"context"
	"time"

	"github.com/jackc/pgx/v5"

	"github.com/aliskhannn/guess-the-flag-bot/internal/domain/entities"
	"github.com/aliskhannn/guess-the-flag-bot/internal/infra/postgres"
)

// SessionStore keeps the in-memory session of every chat.
type SessionStore interface {
	Get(chatID int64) (entities.GameSession, bool)
	Save(session entities.GameSession) entities.GameSession
	Delete(chatID int64)
	EvictIdle(ttl time.Duration) int
	Len() int
}

// ResultRecorder stores the summary of a finished game.
type ResultRecorder interface {
	RecordResult(ctx context.Context, result *entities.GameResult) error
}

// Transactor runs fn inside a database transaction.
type Transactor interface {
	WithinTx(ctx context.Context, fn func(ctx context.Context, tx pgx.Tx) error) error
}

type UserRepository interface {
	Save(ctx context.Context, user *entities.User) (bool, error)
	Exists(ctx context.Context, userID int64) (bool, error)
}

type ResultRepository interface {
	Create(ctx context.Context, result *entities.GameResult) error
}

type StatsRepository interface {
	GetStats(ctx context.Context, userID int64) (*entities.PlayerStats, error)
}

// UserRepositoryFactory and ResultRepositoryFactory bind repositories to a transaction.
type (
	UserRepositoryFactory   func(db postgres.DBTX) UserRepository
	ResultRepositoryFactory func(db postgres.DBTX) ResultRepository
)
