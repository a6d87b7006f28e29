package logger

import (
	"go.uber.org/zap"

	"github.com/aliskhannn/guess-the-flag-bot/internal/config"
)

func New(cfg *config.Config) (*zap.Logger, error) {
	if cfg.IsProduction() {
		return zap.NewProduction()
	}

	return zap.NewDevelopment()
}

// WithChat returns a logger annotated with the chat and user of an update.
func WithChat(l *zap.Logger, chatID, userID int64) *zap.Logger {
	return l.With(zap.Int64("chat_id", chatID), zap.Int64("user_id", userID))
}
