package storage

import (
	"sync"
	"time"

	"github.com/jonboulle/clockwork"

	"github.com/aliskhannn/guess-the-flag-bot/internal/domain/entities"
)

// SessionStorage provides in-memory storage for game sessions by chat ID.
// Sessions live only for the lifetime of the process.
type SessionStorage struct {
	mu       sync.RWMutex
	clock    clockwork.Clock
	sessions map[int64]entities.GameSession
}

// NewSessionStorage creates a new SessionStorage.
func NewSessionStorage(clock clockwork.Clock) *SessionStorage {
	return &SessionStorage{
		clock:    clock,
		sessions: make(map[int64]entities.GameSession),
	}
}

// Get returns the session of a chat.
func (s *SessionStorage) Get(chatID int64) (entities.GameSession, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	session, ok := s.sessions[chatID]
	if !ok {
		return entities.GameSession{}, false
	}
	return session.Clone(), true
}

// Save stores the session under its chat ID and stamps UpdatedAt.
func (s *SessionStorage) Save(session entities.GameSession) entities.GameSession {
	session = session.Clone()
	session.UpdatedAt = s.clock.Now()

	s.mu.Lock()
	defer s.mu.Unlock()
	s.sessions[session.ChatID] = session

	return session.Clone()
}

// Delete removes the session of a chat.
func (s *SessionStorage) Delete(chatID int64) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.sessions, chatID)
}

// EvictIdle removes sessions not updated for longer than ttl and returns how many were removed.
func (s *SessionStorage) EvictIdle(ttl time.Duration) int {
	cutoff := s.clock.Now().Add(-ttl)

	s.mu.Lock()
	defer s.mu.Unlock()

	evicted := 0
	for chatID, session := range s.sessions {
		if session.UpdatedAt.Before(cutoff) {
			delete(s.sessions, chatID)
			evicted++
		}
	}
	return evicted
}

// Len returns the number of stored sessions.
func (s *SessionStorage) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.sessions)
}
