// Package game implements the round, scoring and reset rules of a flag quiz.
//
// Every transition takes a session value and returns the next one; nothing here
// keeps state, reads the clock or touches I/O. Randomness comes from the caller.
package game

import (
	"errors"
	"fmt"

	"github.com/google/uuid"

	"github.com/aliskhannn/guess-the-flag-bot/internal/domain/entities"
)

var (
	ErrCatalogTooSmall   = errors.New("catalog must contain at least 3 countries")
	ErrInvalidChoice     = errors.New("choice index out of range")
	ErrInvalidTransition = errors.New("operation not allowed in current phase")
)

const msgCorrect = "Correct"

// Rand is the source of randomness used by the transitions.
// *math/rand/v2.Rand satisfies it.
type Rand interface {
	IntN(n int) int
	Shuffle(n int, swap func(i, j int))
}

// Options tweak how rounds are drawn.
type Options struct {
	// RedrawEachRound reshuffles the whole catalog between rounds instead of
	// only permuting the three flags already on screen.
	RedrawEachRound bool
}

// NewSession starts a game over the given catalog.
func NewSession(catalog []entities.Country, rnd Rand) (entities.GameSession, error) {
	if len(catalog) < entities.ChoicesPerRound {
		return entities.GameSession{}, fmt.Errorf("%w: got %d", ErrCatalogTooSmall, len(catalog))
	}

	s := entities.GameSession{
		ID:        uuid.New(),
		Countries: append([]entities.Country(nil), catalog...),
	}
	return reset(s, rnd), nil
}

// SubmitAnswer scores the flag at choice and moves to the round result, or to
// game over when it was the last round.
func SubmitAnswer(s entities.GameSession, choice int) (entities.GameSession, error) {
	if s.Phase != entities.PhaseAwaitingAnswer {
		return s, fmt.Errorf("submit answer in %s: %w", s.Phase, ErrInvalidTransition)
	}
	if choice < 0 || choice >= entities.ChoicesPerRound || choice >= len(s.Countries) {
		return s, fmt.Errorf("%w: %d", ErrInvalidChoice, choice)
	}

	next := s.Clone()
	fb := &entities.Feedback{TappedIndex: choice}

	if choice == s.CorrectIndex {
		next.Score++
		next.CorrectAnswers++
		fb.Correct = true
		fb.Message = msgCorrect
	} else {
		fb.Message = "Wrong! That's the flag of " + s.Countries[choice].Name
		if next.Score > 0 {
			next.Score--
		}
		next.WrongAnswers++
	}

	next.Feedback = fb
	next.RoundsRemaining--

	if next.RoundsRemaining == 0 {
		next.Phase = entities.PhaseGameOver
	} else {
		next.Phase = entities.PhaseRoundResult
	}

	return next, nil
}

// AdvanceRound starts the next round after a round result was acknowledged.
// The three flags on screen are permuted in place; the rest of the catalog is
// left untouched unless opts.RedrawEachRound is set.
func AdvanceRound(s entities.GameSession, rnd Rand, opts Options) (entities.GameSession, error) {
	if s.Phase != entities.PhaseRoundResult {
		return s, fmt.Errorf("advance round in %s: %w", s.Phase, ErrInvalidTransition)
	}

	next := s.Clone()
	if opts.RedrawEachRound {
		shuffle(next.Countries, rnd)
	} else {
		shuffle(next.Countries[:entities.ChoicesPerRound], rnd)
	}

	next.CorrectIndex = rnd.IntN(entities.ChoicesPerRound)
	next.Feedback = nil
	next.Phase = entities.PhaseAwaitingAnswer

	return next, nil
}

// Restart begins a fresh session from any phase.
func Restart(s entities.GameSession, rnd Rand) entities.GameSession {
	next := s.Clone()
	next.ID = uuid.New()
	return reset(next, rnd)
}

func reset(s entities.GameSession, rnd Rand) entities.GameSession {
	shuffle(s.Countries, rnd)
	s.CorrectIndex = rnd.IntN(entities.ChoicesPerRound)
	s.RoundsRemaining = entities.RoundsPerGame
	s.Score = 0
	s.CorrectAnswers = 0
	s.WrongAnswers = 0
	s.Feedback = nil
	s.Phase = entities.PhaseAwaitingAnswer
	return s
}

func shuffle(countries []entities.Country, rnd Rand) {
	rnd.Shuffle(len(countries), func(i, j int) {
		countries[i], countries[j] = countries[j], countries[i]
	})
}
