package entities

import (
	"time"

	"github.com/google/uuid"
)

const (
	// RoundsPerGame is the number of answers a session takes before game over.
	RoundsPerGame = 8
	// ChoicesPerRound is the number of flags shown in a round.
	ChoicesPerRound = 3
)

// Phase is the state of a game session.
type Phase string

const (
	PhaseAwaitingAnswer Phase = "awaiting_answer"
	PhaseRoundResult    Phase = "round_result"
	PhaseGameOver       Phase = "game_over"
)

// Feedback describes the outcome of the last answer until the next round starts.
type Feedback struct {
	Message     string // "Correct" or "Wrong! That's the flag of ..."
	Correct     bool   // whether the tapped flag was the right one
	TappedIndex int    // index of the tapped flag within the active choices
}

// GameSession is the complete state of one player's game.
// It is a value: transitions return a new session instead of mutating shared state.
type GameSession struct {
	ID              uuid.UUID // changes on every restart
	ChatID          int64
	UserID          int64
	Countries       []Country // shuffled catalog, the first ChoicesPerRound entries are on screen
	CorrectIndex    int       // index of the right answer within the active choices
	RoundsRemaining int
	Score           int
	CorrectAnswers  int
	WrongAnswers    int
	Phase           Phase
	Feedback        *Feedback // nil when no result is showing
	StartedAt       time.Time
	UpdatedAt       time.Time
}

// ActiveChoices returns the countries shown in the current round.
func (s GameSession) ActiveChoices() []Country {
	n := ChoicesPerRound
	if len(s.Countries) < n {
		n = len(s.Countries)
	}
	return s.Countries[:n]
}

// Target returns the country the player has to find.
func (s GameSession) Target() Country {
	return s.Countries[s.CorrectIndex]
}

// Round returns the 1-based number of the round currently on screen.
// While a result is showing it is the number of the round just answered.
func (s GameSession) Round() int {
	answered := RoundsPerGame - s.RoundsRemaining
	if s.Phase == PhaseAwaitingAnswer {
		return answered + 1
	}
	return answered
}

// IsOver reports whether the session reached game over.
func (s GameSession) IsOver() bool {
	return s.Phase == PhaseGameOver
}

// Clone returns a copy that shares no mutable memory with s.
func (s GameSession) Clone() GameSession {
	c := s
	c.Countries = append([]Country(nil), s.Countries...)
	if s.Feedback != nil {
		fb := *s.Feedback
		c.Feedback = &fb
	}
	return c
}

// SessionRef identifies the session and round a button was rendered for.
type SessionRef struct {
	SessionID uuid.UUID
	Round     int
}

// Ref returns the reference of the screen currently shown for s.
func (s GameSession) Ref() SessionRef {
	return SessionRef{SessionID: s.ID, Round: s.Round()}
}
