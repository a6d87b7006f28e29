package telegram

import (
	"context"
	"errors"
	"fmt"

	"github.com/aliskhannn/guess-the-flag-bot/internal/domain/entities"
	"github.com/aliskhannn/guess-the-flag-bot/internal/service"
)

// handleStart greets the player and offers to start a game.
func (h *Handler) handleStart() HandlerFunc {
	return func(ctx context.Context, chatID int64) error {
		msg := newHTMLMessage(chatID, msgWelcome)
		msg.ReplyMarkup = buildWelcomeKeyboard()
		return h.send(msg)
	}
}

// handlePlay starts a new game and sends its first question.
func (h *Handler) handlePlay(userID int64) HandlerFunc {
	return func(ctx context.Context, chatID int64) error {
		session, err := h.gameService.Start(ctx, chatID, userID)
		if err != nil {
			return fmt.Errorf("start game: %w", err)
		}
		return h.sendSession(chatID, session)
	}
}

// handleRestart resets the game in progress, or starts one.
func (h *Handler) handleRestart(userID int64) HandlerFunc {
	return func(ctx context.Context, chatID int64) error {
		session, err := h.gameService.RestartCurrent(ctx, chatID, userID)
		if err != nil {
			return fmt.Errorf("restart game: %w", err)
		}
		return h.sendSession(chatID, session)
	}
}

// handleScore reports the score of the game in progress.
func (h *Handler) handleScore() HandlerFunc {
	return func(ctx context.Context, chatID int64) error {
		session, err := h.gameService.Current(ctx, chatID)
		if errors.Is(err, service.ErrNoSession) {
			return h.send(newHTMLMessage(chatID, msgNoGame))
		}
		if err != nil {
			return fmt.Errorf("current game: %w", err)
		}

		return h.send(newHTMLMessage(chatID, formatScore(session)))
	}
}

// handleStats reports aggregates of the player's finished games.
func (h *Handler) handleStats(userID int64) HandlerFunc {
	return func(ctx context.Context, chatID int64) error {
		stats, err := h.statsService.GetStats(ctx, userID)
		if errors.Is(err, service.ErrStatsDisabled) {
			return h.send(newHTMLMessage(chatID, msgStatsDisabled))
		}
		if err != nil {
			return fmt.Errorf("get stats: %w", err)
		}

		if stats.GamesPlayed == 0 {
			return h.send(newHTMLMessage(chatID, msgNoStats))
		}

		return h.send(newHTMLMessage(chatID, formatStats(stats)))
	}
}

// sendSession sends the screen of the session as a new message.
func (h *Handler) sendSession(chatID int64, session entities.GameSession) error {
	text, kb := h.renderSession(session)
	msg := newHTMLMessage(chatID, text)
	msg.ReplyMarkup = kb
	return h.send(msg)
}

func formatScore(s entities.GameSession) string {
	if s.IsOver() {
		return esc(fmt.Sprintf("The game is over. Your final score is %d. Send /play to start a new one.", s.Score))
	}
	return esc(fmt.Sprintf("%s. Rounds left: %d of %d.", scoreLine(s.Score), s.RoundsRemaining, entities.RoundsPerGame))
}
