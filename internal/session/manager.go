// ABOUTME: Manager tracks chat sessions, each owning its own history
// ABOUTME: The default session persists history to disk; extras are in-memory
package session

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/vangipuraputarunsailesh/Docuchat-AI-project/internal/history"
)

// DefaultSessionID is the session used when the caller does not supply one
const DefaultSessionID = "default"

var ErrNotFound = errors.New("session not found")

type Status string

const (
	StatusActive Status = "active"
	StatusEnded  Status = "ended"
)

// Session is one user's chat context
type Session struct {
	ID             string    `json:"session_id"`
	Status         Status    `json:"status"`
	StartedAt      time.Time `json:"started_at"`
	LastActivityAt time.Time `json:"last_activity_at"`

	History *history.History `json:"-"`
}

// Manager is the in-process session registry
type Manager struct {
	mu                 sync.RWMutex
	sessions           map[string]*Session
	historyBound       int
	defaultHistoryPath string
	inactivityTimeout  time.Duration
}

// NewManager creates a session registry. The default session mirrors its
// history to defaultHistoryPath; sessions created per client are in-memory.
func NewManager(historyBound int, defaultHistoryPath string, inactivityTimeout time.Duration) *Manager {
	if inactivityTimeout <= 0 {
		inactivityTimeout = 30 * time.Minute
	}
	return &Manager{
		sessions:           make(map[string]*Session),
		historyBound:       historyBound,
		defaultHistoryPath: defaultHistoryPath,
		inactivityTimeout:  inactivityTimeout,
	}
}

// Default returns the shared default session, creating it on first use
func (m *Manager) Default() *Session {
	m.mu.Lock()
	defer m.mu.Unlock()
	if s, ok := m.sessions[DefaultSessionID]; ok {
		s.LastActivityAt = time.Now().UTC()
		return s
	}
	now := time.Now().UTC()
	s := &Session{
		ID:             DefaultSessionID,
		Status:         StatusActive,
		StartedAt:      now,
		LastActivityAt: now,
		History:        history.New(m.historyBound, m.defaultHistoryPath),
	}
	m.sessions[s.ID] = s
	return s
}

// Create starts a new session with in-memory history
func (m *Manager) Create() *Session {
	now := time.Now().UTC()
	s := &Session{
		ID:             uuid.NewString(),
		Status:         StatusActive,
		StartedAt:      now,
		LastActivityAt: now,
		History:        history.New(m.historyBound, ""),
	}

	m.mu.Lock()
	defer m.mu.Unlock()
	m.sessions[s.ID] = s
	return s
}

// Get returns the session with the given id, or the default session when
// id is empty.
func (m *Manager) Get(id string) (*Session, error) {
	if id == "" || id == DefaultSessionID {
		return m.Default(), nil
	}

	m.mu.Lock()
	defer m.mu.Unlock()
	s, ok := m.sessions[id]
	if !ok || s.Status != StatusActive {
		return nil, ErrNotFound
	}
	s.LastActivityAt = time.Now().UTC()
	return s, nil
}

// End marks a session ended and drops it from the active set
func (m *Manager) End(id string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	s, ok := m.sessions[id]
	if !ok {
		return ErrNotFound
	}
	s.Status = StatusEnded
	delete(m.sessions, id)
	return nil
}

// ActiveCount returns the number of active sessions
func (m *Manager) ActiveCount() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.sessions)
}

// StartJanitor expires inactive sessions in the background. The default
// session is never expired.
func (m *Manager) StartJanitor(ctx context.Context, interval time.Duration) {
	if interval <= 0 {
		interval = time.Minute
	}
	ticker := time.NewTicker(interval)
	go func() {
		defer ticker.Stop()
		for {
			select {
			case <-ctx.Done():
				return
			case <-ticker.C:
				m.expireInactive()
			}
		}
	}()
}

func (m *Manager) expireInactive() {
	now := time.Now().UTC()
	m.mu.Lock()
	defer m.mu.Unlock()
	for id, s := range m.sessions {
		if id == DefaultSessionID {
			continue
		}
		if now.Sub(s.LastActivityAt) >= m.inactivityTimeout {
			s.Status = StatusEnded
			delete(m.sessions, id)
		}
	}
}
