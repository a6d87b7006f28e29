package telegram

import (
	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"

	"github.com/aliskhannn/guess-the-flag-bot/internal/domain/entities"
)

// buildWelcomeKeyboard builds keyboard for the welcome screen.
func buildWelcomeKeyboard() tgbotapi.InlineKeyboardMarkup {
	return tgbotapi.NewInlineKeyboardMarkup(
		tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonData(btnPlay, buildPlayCallback()),
		),
	)
}

// buildFlagKeyboard builds one row per flag of the current round.
func buildFlagKeyboard(s entities.GameSession) tgbotapi.InlineKeyboardMarkup {
	ref := s.Ref()

	var rows [][]tgbotapi.InlineKeyboardButton
	for i, c := range s.ActiveChoices() {
		button := tgbotapi.NewInlineKeyboardButtonData(c.Emoji, buildFlagCallback(ref, i))
		rows = append(rows, tgbotapi.NewInlineKeyboardRow(button))
	}
	return tgbotapi.NewInlineKeyboardMarkup(rows...)
}

// buildRoundResultKeyboard builds keyboard for the round result notice.
func buildRoundResultKeyboard(s entities.GameSession) tgbotapi.InlineKeyboardMarkup {
	ref := s.Ref()
	return tgbotapi.NewInlineKeyboardMarkup(
		tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonData(btnContinue, buildNextCallback(ref)),
			tgbotapi.NewInlineKeyboardButtonData(btnReset, buildResetCallback(ref)),
		),
	)
}

// buildGameOverKeyboard builds keyboard for the final notice.
func buildGameOverKeyboard(s entities.GameSession) tgbotapi.InlineKeyboardMarkup {
	return tgbotapi.NewInlineKeyboardMarkup(
		tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonData(btnRestart, buildResetCallback(s.Ref())),
		),
	)
}
