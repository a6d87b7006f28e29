package telegram

import (
	"context"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"

	"github.com/aliskhannn/guess-the-flag-bot/internal/domain/entities"
)

// Bot is the subset of *tgbotapi.BotAPI the handler uses.
type Bot interface {
	Send(c tgbotapi.Chattable) (tgbotapi.Message, error)
	Request(c tgbotapi.Chattable) (*tgbotapi.APIResponse, error)
	GetUpdatesChan(config tgbotapi.UpdateConfig) tgbotapi.UpdatesChannel
	StopReceivingUpdates()
}

type UserService interface {
	EnsureUser(ctx context.Context, userID, chatID int64) error
}

type GameService interface {
	Start(ctx context.Context, chatID, userID int64) (entities.GameSession, error)
	Current(ctx context.Context, chatID int64) (entities.GameSession, error)
	Answer(ctx context.Context, chatID int64, ref entities.SessionRef, choice int) (entities.GameSession, error)
	Continue(ctx context.Context, chatID int64, ref entities.SessionRef) (entities.GameSession, error)
	Restart(ctx context.Context, chatID, userID int64, ref entities.SessionRef) (entities.GameSession, error)
	RestartCurrent(ctx context.Context, chatID, userID int64) (entities.GameSession, error)
}

type StatsService interface {
	GetStats(ctx context.Context, userID int64) (*entities.PlayerStats, error)
}
