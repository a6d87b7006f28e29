// messages.go contains message templates for Telegram.

package telegram

import (
	"fmt"
	"strings"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"

	"github.com/aliskhannn/guess-the-flag-bot/internal/domain/entities"
)

// Commands.
const (
	cmdStart   = "start"
	cmdPlay    = "play"
	cmdRestart = "restart"
	cmdScore   = "score"
	cmdStats   = "stats"
	cmdHelp    = "help"
)

// BotCommands is the command menu registered with Telegram.
var BotCommands = []tgbotapi.BotCommand{
	{Command: cmdPlay, Description: "Start a new game"},
	{Command: cmdRestart, Description: "Restart the current game"},
	{Command: cmdScore, Description: "Show the current score"},
	{Command: cmdStats, Description: "Show your finished games"},
	{Command: cmdHelp, Description: "How to play"},
}

// Error and status messages.
const (
	msgInternalError  = "Something went wrong. Please try again later."
	msgNoGame         = "There is no game in progress. Send /play to start one."
	msgStaleButton    = "This round is over. Use the latest message."
	msgStatsDisabled  = "Statistics are not available on this bot."
	msgNoStats        = "You have not finished a game yet. Send /play to start one."
	msgUseButtons     = "Tap the flags on the game message, or send /play to start a new game."
	msgUnknownCommand = "Unknown command. Available commands:\n\n/play - start a new game\n/restart - restart the current game\n/score - show the current score\n/stats - show your finished games\n/help - how to play"
)

const (
	msgWelcome = "<b>Guess the Flag</b>\n\n" +
		"You will see three flags and the name of a country. Tap the flag of that country.\n\n" +
		"A game has 8 rounds. A right answer earns a point, a wrong one costs a point (the score never drops below zero)."
	msgHelp = "<b>How to play</b>\n\n" +
		"1. Send /play to start a game of 8 rounds.\n" +
		"2. Tap the flag of the named country.\n" +
		"3. Press <b>Continue</b> for the next round or <b>Reset</b> to start over.\n" +
		"4. After the last round press <b>Restart</b> to play again.\n\n" +
		"/score shows the current game, /stats your finished games."
)

// Button labels.
const (
	btnPlay     = "🎮 Play"
	btnContinue = "▶️ Continue"
	btnReset    = "🔁 Reset"
	btnRestart  = "🔁 Restart"
)

const (
	titleGame     = "Guess the Flag"
	titleGameOver = "The game is over!"
)

func scoreLine(score int) string {
	return fmt.Sprintf("Your score is %d", score)
}

func roundLine(s entities.GameSession) string {
	return fmt.Sprintf("Round %d of %d", s.Round(), entities.RoundsPerGame)
}

func effectMarker(v entities.FlagView) string {
	switch v.Effect {
	case entities.EffectSpin:
		return "🔄"
	case entities.EffectFaded:
		return "▫️"
	}
	if v.Tapped {
		return "👉"
	}
	return "•"
}

func formatStats(stats *entities.PlayerStats) string {
	var sb strings.Builder

	sb.WriteString(bold("📊 Your games"))
	sb.WriteString("\n\n")
	sb.WriteString(esc(fmt.Sprintf("🎮 Games played: %d", stats.GamesPlayed)))
	sb.WriteString("\n")
	sb.WriteString(esc(fmt.Sprintf("🏆 Best score: %d of %d", stats.BestScore, entities.RoundsPerGame)))
	sb.WriteString("\n")
	sb.WriteString(esc(fmt.Sprintf("📈 Average score: %.1f", stats.AverageScore)))
	sb.WriteString("\n")
	sb.WriteString(esc(fmt.Sprintf("🎯 Accuracy: %.1f%%", stats.Accuracy())))

	if stats.LastPlayedAt != nil {
		sb.WriteString("\n")
		sb.WriteString(esc("🕒 Last game: " + stats.LastPlayedAt.UTC().Format("2006-01-02 15:04 MST")))
	}

	return sb.String()
}
