package telegram

import (
	"context"
	"errors"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"go.uber.org/zap"

	"github.com/aliskhannn/guess-the-flag-bot/internal/domain/entities"
	"github.com/aliskhannn/guess-the-flag-bot/internal/domain/game"
	"github.com/aliskhannn/guess-the-flag-bot/internal/logger"
	"github.com/aliskhannn/guess-the-flag-bot/internal/service"
)

func (h *Handler) handleCallback(ctx context.Context, cb *tgbotapi.CallbackQuery) {
	if cb.Message == nil || cb.From == nil {
		h.answerCallback(cb, "")
		return
	}

	chatID := cb.Message.Chat.ID
	log := logger.WithChat(h.logger, chatID, cb.From.ID)

	data := decodeCallback(cb.Data)

	var (
		session entities.GameSession
		err     error
	)

	switch data.Action {
	case actionPlay:
		session, err = h.gameService.Start(ctx, chatID, cb.From.ID)

	case actionFlag:
		session, err = h.handleFlagCallback(ctx, chatID, data)

	case actionNext:
		var ref entities.SessionRef
		if ref, err = data.ref(); err == nil {
			session, err = h.gameService.Continue(ctx, chatID, ref)
		}

	case actionReset:
		var ref entities.SessionRef
		if ref, err = data.ref(); err == nil {
			session, err = h.gameService.Restart(ctx, chatID, cb.From.ID, ref)
		}

	default:
		log.Warn("unknown callback action", zap.String("data", cb.Data))
		h.answerCallback(cb, "")
		return
	}

	if err != nil {
		h.answerCallback(cb, h.callbackErrorText(log, cb, err))
		return
	}

	h.answerCallback(cb, toastFor(session))

	text, kb := h.renderSession(session)
	_ = h.send(newHTMLEdit(chatID, cb.Message.MessageID, text, &kb))
}

func (h *Handler) handleFlagCallback(ctx context.Context, chatID int64, data callbackData) (entities.GameSession, error) {
	ref, err := data.ref()
	if err != nil {
		return entities.GameSession{}, err
	}

	choice, err := data.choice()
	if err != nil {
		return entities.GameSession{}, err
	}

	return h.gameService.Answer(ctx, chatID, ref, choice)
}

// callbackErrorText maps a failed tap to the toast shown to the player.
func (h *Handler) callbackErrorText(log *zap.Logger, cb *tgbotapi.CallbackQuery, err error) string {
	switch {
	case errors.Is(err, service.ErrStaleSession):
		log.Debug("stale tap", zap.String("data", cb.Data))
		return msgStaleButton
	case errors.Is(err, service.ErrNoSession):
		return msgNoGame
	case errors.Is(err, errMalformedCallback), errors.Is(err, game.ErrInvalidChoice):
		log.Warn("invalid callback", zap.String("data", cb.Data), zap.Error(err))
		return msgStaleButton
	default:
		log.Error("callback error", zap.String("data", cb.Data), zap.Error(err))
		return msgInternalError
	}
}

// toastFor returns the round feedback shown on top of the chat after a tap.
func toastFor(s entities.GameSession) string {
	if s.Phase == entities.PhaseAwaitingAnswer {
		return ""
	}
	return feedbackMessage(s)
}
