package telegram

import (
	"context"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"go.uber.org/zap"

	"github.com/aliskhannn/guess-the-flag-bot/internal/logger"
	"github.com/aliskhannn/guess-the-flag-bot/internal/metrics"
)

// Options tweak rendering.
type Options struct {
	DescribeFlags bool // list accessibility descriptions under each question
}

type Handler struct {
	bot          Bot
	logger       *zap.Logger
	gameService  GameService
	statsService StatsService
	userService  UserService
	opts         Options
}

func NewHandler(
	bot Bot,
	logger *zap.Logger,
	gameService GameService,
	statsService StatsService,
	userService UserService,
	opts Options,
) *Handler {
	return &Handler{
		bot:          bot,
		logger:       logger,
		gameService:  gameService,
		statsService: statsService,
		userService:  userService,
		opts:         opts,
	}
}

func (h *Handler) Run(ctx context.Context) error {
	h.logger.Info("telegram handler started")
	defer h.logger.Info("telegram handler stopped")

	u := tgbotapi.NewUpdate(0)
	u.Timeout = 60

	updates := h.bot.GetUpdatesChan(u)
	defer h.bot.StopReceivingUpdates()

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case update, ok := <-updates:
			if !ok {
				return nil
			}
			h.handleUpdate(ctx, update)
		}
	}
}

func (h *Handler) handleUpdate(ctx context.Context, update tgbotapi.Update) {
	if update.CallbackQuery != nil {
		metrics.UpdatesTotal.WithLabelValues("callback").Inc()
		h.logger.Debug("callback received",
			zap.Int64("user_id", update.CallbackQuery.From.ID),
			zap.String("data", update.CallbackQuery.Data),
		)
		h.handleCallback(ctx, update.CallbackQuery)
		return
	}

	if update.Message == nil {
		h.logger.Debug("update without message and callback")
		return
	}

	from := update.Message.From
	chatID := update.Message.Chat.ID
	if from == nil {
		h.logger.Debug("message without sender", zap.Int64("chat_id", chatID))
		return
	}

	log := logger.WithChat(h.logger, chatID, from.ID)
	log.Debug("update received", zap.String("text", update.Message.Text))

	if err := h.userService.EnsureUser(ctx, from.ID, chatID); err != nil {
		log.Error("failed to ensure user", zap.Error(err))
	}

	if !update.Message.IsCommand() {
		metrics.UpdatesTotal.WithLabelValues("message").Inc()
		_ = h.send(newHTMLMessage(chatID, msgUseButtons))
		return
	}

	metrics.UpdatesTotal.WithLabelValues("command").Inc()

	switch update.Message.Command() {
	case cmdStart:
		_ = h.withErrorHandling(h.handleStart())(ctx, chatID)

	case cmdPlay:
		_ = h.withErrorHandling(h.handlePlay(from.ID))(ctx, chatID)

	case cmdRestart:
		_ = h.withErrorHandling(h.handleRestart(from.ID))(ctx, chatID)

	case cmdScore:
		_ = h.withErrorHandling(h.handleScore())(ctx, chatID)

	case cmdStats:
		_ = h.withErrorHandling(h.handleStats(from.ID))(ctx, chatID)

	case cmdHelp:
		_ = h.send(newHTMLMessage(chatID, msgHelp))

	default:
		_ = h.send(newHTMLMessage(chatID, msgUnknownCommand))
	}
}

func (h *Handler) sendError(chatID int64, text string) {
	_ = h.send(newHTMLMessage(chatID, text))
}

func (h *Handler) send(c tgbotapi.Chattable) error {
	if _, err := h.bot.Send(c); err != nil {
		metrics.SendErrorsTotal.Inc()
		h.logger.Error("failed to send telegram message",
			zap.Error(err),
		)
		return err
	}
	return nil
}

// answerCallback removes the loading indicator, optionally showing a toast.
func (h *Handler) answerCallback(cb *tgbotapi.CallbackQuery, text string) {
	answer := tgbotapi.NewCallback(cb.ID, text)
	if _, err := h.bot.Request(answer); err != nil {
		metrics.SendErrorsTotal.Inc()
		h.logger.Error("callback answer error", zap.Error(err))
	}
}
