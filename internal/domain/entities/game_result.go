package entities

import (
	"time"

	"github.com/google/uuid"
)

// GameResult is the summary of a finished game.
type GameResult struct {
	ID             uuid.UUID // session ID of the finished game
	UserID         int64
	ChatID         int64
	Score          int
	CorrectAnswers int
	WrongAnswers   int
	Rounds         int
	StartedAt      time.Time
	FinishedAt     time.Time
}

// NewGameResult builds the result of a session that reached game over.
func NewGameResult(s GameSession, finishedAt time.Time) *GameResult {
	return &GameResult{
		ID:             s.ID,
		UserID:         s.UserID,
		ChatID:         s.ChatID,
		Score:          s.Score,
		CorrectAnswers: s.CorrectAnswers,
		WrongAnswers:   s.WrongAnswers,
		Rounds:         s.CorrectAnswers + s.WrongAnswers,
		StartedAt:      s.StartedAt,
		FinishedAt:     finishedAt,
	}
}

// PlayerStats aggregates the finished games of one user.
type PlayerStats struct {
	GamesPlayed    int
	BestScore      int
	AverageScore   float64
	CorrectAnswers int
	TotalAnswers   int
	LastPlayedAt   *time.Time
}

// Accuracy returns the share of correct answers in percent.
func (s PlayerStats) Accuracy() float64 {
	if s.TotalAnswers == 0 {
		return 0
	}
	return float64(s.CorrectAnswers) / float64(s.TotalAnswers) * 100
}
