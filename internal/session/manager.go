package session

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// Manager owns every live session, keyed by an opaque bearer token.
// There is no persistence; restarting the process logs everyone out.
type Manager struct {
	mu       sync.Mutex
	sessions map[string]*Session
	ttl      time.Duration

	// now is injectable for tests.
	now func() time.Time
}

// NewManager creates a Manager whose sessions expire after ttl of
// inactivity.
func NewManager(ttl time.Duration) *Manager {
	return &Manager{
		sessions: make(map[string]*Session),
		ttl:      ttl,
		now:      time.Now,
	}
}

// Create makes a fresh anonymous session and returns its token.
func (m *Manager) Create() (string, *Session) {
	token := uuid.NewString()
	s := &Session{Stage: StageAnonymous, LastSeen: m.now()}

	m.mu.Lock()
	m.sessions[token] = s
	m.mu.Unlock()
	return token, s
}

// Get returns the session for token, refreshing its idle timer.
func (m *Manager) Get(token string) (*Session, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()

	s, ok := m.sessions[token]
	if !ok {
		return nil, false
	}
	s.LastSeen = m.now()
	return s, true
}

// Delete removes the session for token, if any.
func (m *Manager) Delete(token string) {
	m.mu.Lock()
	delete(m.sessions, token)
	m.mu.Unlock()
}

// Len returns the number of live sessions.
func (m *Manager) Len() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.sessions)
}

// StartSweeper removes idle sessions with interval until ctx is done.
func (m *Manager) StartSweeper(ctx context.Context, interval time.Duration, log *zap.Logger) {
	ticker := time.NewTicker(interval)
	go func() {
		defer ticker.Stop()
		for {
			select {
			case <-ctx.Done():
				return
			case <-ticker.C:
				if removed := m.sweep(); removed > 0 {
					log.Info("expired idle sessions", zap.Int("removed", removed))
				}
			}
		}
	}()
}

// sweep deletes every session idle past the TTL and returns the count.
func (m *Manager) sweep() int {
	cutoff := m.now().Add(-m.ttl)

	m.mu.Lock()
	defer m.mu.Unlock()

	removed := 0
	for token, s := range m.sessions {
		if s.LastSeen.Before(cutoff) {
			delete(m.sessions, token)
			removed++
		}
	}
	return removed
}
