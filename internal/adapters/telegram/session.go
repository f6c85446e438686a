package telegram

import (
	"context"
	"sync"
	"time"

	"tokenguard/internal/metrics"
	"tokenguard/pkg/logger"
)

// Option is the menu action a user has selected for their next address
// submission.
type Option int

const (
	OptionNone Option = iota
	OptionAnalyzeToken
	OptionRugPullScan
)

// Session holds the conversation state for one Telegram user: the
// selected menu option and the last token address they submitted.
// Each session is owned by its user; the store guards the map, the
// session guards its own fields.
type Session struct {
	mu sync.RWMutex

	telegramID       int64
	selected         Option
	lastTokenAddress string
	createdAt        time.Time
	updatedAt        time.Time
}

// TelegramID returns the owning user's Telegram ID
func (s *Session) TelegramID() int64 {
	return s.telegramID
}

// Selected returns the currently selected menu option
func (s *Session) Selected() Option {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.selected
}

// SetSelected records the menu option for the next address submission
func (s *Session) SetSelected(option Option) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.selected = option
	s.updatedAt = time.Now()
}

// LastTokenAddress returns the most recently submitted token address
func (s *Session) LastTokenAddress() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.lastTokenAddress
}

// SetLastTokenAddress records the most recently submitted token address
func (s *Session) SetLastTokenAddress(address string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.lastTokenAddress = address
	s.updatedAt = time.Now()
}

// UpdatedAt returns the last time the session changed
func (s *Session) UpdatedAt() time.Time {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.updatedAt
}

// SessionStore keeps conversation sessions in memory, keyed by Telegram
// user ID. Sessions are created on first contact and evicted after
// sitting idle for the configured TTL.
type SessionStore struct {
	mu       sync.RWMutex
	sessions map[int64]*Session
	ttl      time.Duration
	log      *logger.Logger
}

// NewSessionStore creates a new session store
func NewSessionStore(ttl time.Duration, log *logger.Logger) *SessionStore {
	if ttl == 0 {
		ttl = 30 * time.Minute
	}

	return &SessionStore{
		sessions: make(map[int64]*Session),
		ttl:      ttl,
		log:      log.With("component", "session_store"),
	}
}

// Get returns the session for a user, creating it on first contact.
func (s *SessionStore) Get(telegramID int64) *Session {
	s.mu.RLock()
	session, ok := s.sessions[telegramID]
	s.mu.RUnlock()
	if ok {
		return session
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	// Re-check: another goroutine may have created it meanwhile.
	if session, ok := s.sessions[telegramID]; ok {
		return session
	}

	now := time.Now()
	session = &Session{
		telegramID: telegramID,
		selected:   OptionNone,
		createdAt:  now,
		updatedAt:  now,
	}
	s.sessions[telegramID] = session
	metrics.ActiveSessions.Set(float64(len(s.sessions)))

	return session
}

// Delete removes a user's session
func (s *SessionStore) Delete(telegramID int64) {
	s.mu.Lock()
	defer s.mu.Unlock()

	delete(s.sessions, telegramID)
	metrics.ActiveSessions.Set(float64(len(s.sessions)))
}

// Count returns the number of live sessions
func (s *SessionStore) Count() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.sessions)
}

// Cleanup evicts sessions idle longer than maxAge. Returns how many
// were removed.
func (s *SessionStore) Cleanup(maxAge time.Duration) int {
	s.mu.Lock()
	defer s.mu.Unlock()

	cutoff := time.Now().Add(-maxAge)
	removed := 0

	for telegramID, session := range s.sessions {
		if session.UpdatedAt().Before(cutoff) {
			delete(s.sessions, telegramID)
			removed++
		}
	}

	metrics.ActiveSessions.Set(float64(len(s.sessions)))

	return removed
}

// StartCleanup runs the eviction loop until ctx is cancelled.
func (s *SessionStore) StartCleanup(ctx context.Context, interval time.Duration) {
	if interval == 0 {
		interval = 5 * time.Minute
	}

	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			if removed := s.Cleanup(s.ttl); removed > 0 {
				s.log.Debugw("Evicted idle sessions", "count", removed)
			}
		}
	}
}
