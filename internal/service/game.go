package service

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"github.com/jonboulle/clockwork"
	"go.uber.org/zap"

	"github.com/aliskhannn/guess-the-flag-bot/internal/domain/entities"
	"github.com/aliskhannn/guess-the-flag-bot/internal/domain/game"
	"github.com/aliskhannn/guess-the-flag-bot/internal/metrics"
)

var (
	ErrNoSession    = errors.New("no game in progress")
	ErrStaleSession = errors.New("button belongs to a finished round or session")
)

const (
	triggerPlay    = "play"
	triggerRestart = "restart"
)

// GameService runs one game session per chat on top of the pure game rules.
type GameService struct {
	catalog  []entities.Country
	store    SessionStore
	recorder ResultRecorder
	clock    clockwork.Clock
	logger   *zap.Logger
	opts     game.Options

	// rnd is not safe for concurrent use.
	mu  sync.Mutex
	rnd game.Rand
}

func NewGameService(
	catalog []entities.Country,
	store SessionStore,
	recorder ResultRecorder,
	rnd game.Rand,
	clock clockwork.Clock,
	logger *zap.Logger,
	opts game.Options,
) *GameService {
	return &GameService{
		catalog:  catalog,
		store:    store,
		recorder: recorder,
		rnd:      rnd,
		clock:    clock,
		logger:   logger,
		opts:     opts,
	}
}

// Start begins a new game in the chat, replacing any game in progress.
func (s *GameService) Start(ctx context.Context, chatID, userID int64) (entities.GameSession, error) {
	s.mu.Lock()
	session, err := game.NewSession(s.catalog, s.rnd)
	s.mu.Unlock()
	if err != nil {
		return entities.GameSession{}, fmt.Errorf("new session: %w", err)
	}

	session.ChatID = chatID
	session.UserID = userID
	session.StartedAt = s.clock.Now()

	saved := s.save(session)
	metrics.GamesStartedTotal.WithLabelValues(triggerPlay).Inc()

	s.logger.Debug("game started",
		zap.Int64("chat_id", chatID),
		zap.Int64("user_id", userID),
		zap.String("session_id", saved.ID.String()),
	)

	return saved, nil
}

// Current returns the game in progress in the chat.
func (s *GameService) Current(_ context.Context, chatID int64) (entities.GameSession, error) {
	session, ok := s.store.Get(chatID)
	if !ok {
		return entities.GameSession{}, ErrNoSession
	}
	return session, nil
}

// Answer submits the flag tapped on the screen identified by ref.
func (s *GameService) Answer(ctx context.Context, chatID int64, ref entities.SessionRef, choice int) (entities.GameSession, error) {
	session, err := s.lookup(chatID, ref)
	if err != nil {
		return entities.GameSession{}, err
	}

	next, err := game.SubmitAnswer(session, choice)
	if err != nil {
		return entities.GameSession{}, s.mapRuleError(err)
	}

	saved := s.save(next)

	result := "wrong"
	if saved.Feedback.Correct {
		result = "correct"
	}
	metrics.AnswersTotal.WithLabelValues(result).Inc()

	s.logger.Debug("answer submitted",
		zap.Int64("chat_id", chatID),
		zap.String("session_id", saved.ID.String()),
		zap.Int("choice", choice),
		zap.Bool("correct", saved.Feedback.Correct),
		zap.Int("score", saved.Score),
		zap.Int("rounds_remaining", saved.RoundsRemaining),
	)

	if saved.IsOver() {
		s.finish(ctx, saved)
	}

	return saved, nil
}

// Continue moves from a round result to the next round.
func (s *GameService) Continue(_ context.Context, chatID int64, ref entities.SessionRef) (entities.GameSession, error) {
	session, err := s.lookup(chatID, ref)
	if err != nil {
		return entities.GameSession{}, err
	}

	s.mu.Lock()
	next, err := game.AdvanceRound(session, s.rnd, s.opts)
	s.mu.Unlock()
	if err != nil {
		return entities.GameSession{}, s.mapRuleError(err)
	}

	return s.save(next), nil
}

// Restart resets the game shown on the screen identified by ref.
// When the session is gone (evicted or never started) a new game is started.
func (s *GameService) Restart(ctx context.Context, chatID, userID int64, ref entities.SessionRef) (entities.GameSession, error) {
	session, err := s.lookup(chatID, ref)
	if errors.Is(err, ErrNoSession) {
		return s.Start(ctx, chatID, userID)
	}
	if err != nil {
		return entities.GameSession{}, err
	}

	return s.restart(session), nil
}

// RestartCurrent resets whatever game is in progress in the chat, or starts one.
func (s *GameService) RestartCurrent(ctx context.Context, chatID, userID int64) (entities.GameSession, error) {
	session, ok := s.store.Get(chatID)
	if !ok {
		return s.Start(ctx, chatID, userID)
	}
	return s.restart(session), nil
}

// Abandon drops the game in progress in the chat.
func (s *GameService) Abandon(_ context.Context, chatID int64) {
	s.store.Delete(chatID)
	metrics.ActiveSessions.Set(float64(s.store.Len()))
}

func (s *GameService) restart(session entities.GameSession) entities.GameSession {
	s.mu.Lock()
	next := game.Restart(session, s.rnd)
	s.mu.Unlock()

	next.StartedAt = s.clock.Now()
	saved := s.save(next)
	metrics.GamesStartedTotal.WithLabelValues(triggerRestart).Inc()

	s.logger.Debug("game restarted",
		zap.Int64("chat_id", saved.ChatID),
		zap.String("previous_session_id", session.ID.String()),
		zap.String("session_id", saved.ID.String()),
	)

	return saved
}

func (s *GameService) lookup(chatID int64, ref entities.SessionRef) (entities.GameSession, error) {
	session, ok := s.store.Get(chatID)
	if !ok {
		return entities.GameSession{}, ErrNoSession
	}

	if session.Ref() != ref {
		metrics.StaleTapsTotal.Inc()
		return entities.GameSession{}, ErrStaleSession
	}

	return session, nil
}

func (s *GameService) mapRuleError(err error) error {
	if errors.Is(err, game.ErrInvalidTransition) {
		metrics.StaleTapsTotal.Inc()
		return fmt.Errorf("%w: %w", ErrStaleSession, err)
	}
	return err
}

func (s *GameService) save(session entities.GameSession) entities.GameSession {
	saved := s.store.Save(session)
	metrics.ActiveSessions.Set(float64(s.store.Len()))
	return saved
}

func (s *GameService) finish(ctx context.Context, session entities.GameSession) {
	metrics.GamesCompletedTotal.Inc()
	metrics.FinalScore.Observe(float64(session.Score))

	result := entities.NewGameResult(session, s.clock.Now())
	if err := s.recorder.RecordResult(ctx, result); err != nil {
		metrics.ResultWritesTotal.WithLabelValues("error").Inc()
		s.logger.Error("failed to record game result",
			zap.Int64("chat_id", session.ChatID),
			zap.String("session_id", session.ID.String()),
			zap.Error(err),
		)
		return
	}
	metrics.ResultWritesTotal.WithLabelValues("ok").Inc()

	s.logger.Info("game finished",
		zap.Int64("chat_id", session.ChatID),
		zap.Int64("user_id", session.UserID),
		zap.String("session_id", session.ID.String()),
		zap.Int("score", session.Score),
	)
}
