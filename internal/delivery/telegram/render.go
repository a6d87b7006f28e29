package telegram

import (
	"fmt"
	"strings"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"

	"github.com/aliskhannn/guess-the-flag-bot/internal/domain/entities"
	"github.com/aliskhannn/guess-the-flag-bot/internal/domain/game"
)

// renderSession renders the screen matching the session phase.
func (h *Handler) renderSession(s entities.GameSession) (string, tgbotapi.InlineKeyboardMarkup) {
	switch s.Phase {
	case entities.PhaseRoundResult:
		return renderRoundResult(s)
	case entities.PhaseGameOver:
		return renderGameOver(s)
	default:
		return renderQuestion(s, h.opts.DescribeFlags)
	}
}

// renderQuestion renders the prompt of the current round.
func renderQuestion(s entities.GameSession, describe bool) (string, tgbotapi.InlineKeyboardMarkup) {
	var sb strings.Builder

	sb.WriteString(bold(titleGame))
	sb.WriteString("\n\n")
	sb.WriteString(esc("Tap the flag of"))
	sb.WriteString("\n")
	sb.WriteString(bold(s.Target().Name))

	if describe {
		sb.WriteString("\n")
		for _, v := range game.Flags(s) {
			sb.WriteString("\n")
			sb.WriteString(esc(fmt.Sprintf("%d. %s", v.Index+1, v.Label)))
		}
	}

	sb.WriteString("\n\n")
	sb.WriteString(esc(scoreLine(s.Score)))
	sb.WriteString("\n")
	sb.WriteString(esc(roundLine(s)))

	return sb.String(), buildFlagKeyboard(s)
}

// renderRoundResult renders the notice shown after an answer.
func renderRoundResult(s entities.GameSession) (string, tgbotapi.InlineKeyboardMarkup) {
	var sb strings.Builder

	sb.WriteString(bold(feedbackMessage(s)))
	sb.WriteString("\n\n")
	writeFlags(&sb, s)
	sb.WriteString("\n")
	sb.WriteString(esc(scoreLine(s.Score)))

	return sb.String(), buildRoundResultKeyboard(s)
}

// renderGameOver renders the final notice.
func renderGameOver(s entities.GameSession) (string, tgbotapi.InlineKeyboardMarkup) {
	var sb strings.Builder

	sb.WriteString(bold(titleGameOver))
	sb.WriteString("\n\n")
	sb.WriteString(esc(feedbackMessage(s)))
	sb.WriteString("\n\n")
	writeFlags(&sb, s)
	sb.WriteString("\n")
	sb.WriteString(esc(fmt.Sprintf("Your final score is %d", s.Score)))
	sb.WriteString("\n")
	sb.WriteString(esc(fmt.Sprintf("✅ Correct: %d  ❌ Wrong: %d", s.CorrectAnswers, s.WrongAnswers)))

	return sb.String(), buildGameOverKeyboard(s)
}

func writeFlags(sb *strings.Builder, s entities.GameSession) {
	for _, v := range game.Flags(s) {
		sb.WriteString(esc(fmt.Sprintf("%s %s %s", effectMarker(v), v.Country.Emoji, v.Country.Name)))
		sb.WriteString("\n")
	}
}

func feedbackMessage(s entities.GameSession) string {
	if s.Feedback == nil {
		return ""
	}
	return s.Feedback.Message
}
