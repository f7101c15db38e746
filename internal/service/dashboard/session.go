package dashboard

import (
	"sync"
	"time"

	"github.com/google/uuid"
)

type session struct {
	dashboard *Dashboard
	lastSeen  time.Time
}

// SessionManager keeps one mounted dashboard per browser session.
type SessionManager struct {
	factory  func() *Dashboard
	now      func() time.Time
	sessions map[string]*session
	mu       sync.RWMutex
}

// NewSessionManager creates a new session manager that mounts dashboards built by factory.
func NewSessionManager(factory func() *Dashboard) *SessionManager {
	return &SessionManager{
		factory:  factory,
		now:      time.Now,
		sessions: make(map[string]*session),
	}
}

// GetSession returns the dashboard for id and marks the session as seen.
func (sm *SessionManager) GetSession(id string) (*Dashboard, bool) {
	sm.mu.Lock()
	defer sm.mu.Unlock()
	s, exists := sm.sessions[id]
	if !exists {
		return nil, false
	}
	s.lastSeen = sm.now()
	return s.dashboard, true
}

// CreateSession mounts a fresh dashboard under a new session id.
func (sm *SessionManager) CreateSession() (string, *Dashboard) {
	id := uuid.NewString()
	d := sm.factory()

	sm.mu.Lock()
	defer sm.mu.Unlock()
	sm.sessions[id] = &session{dashboard: d, lastSeen: sm.now()}
	return id, d
}

// Sweep tears down sessions not seen since cutoff and returns how many went.
func (sm *SessionManager) Sweep(cutoff time.Time) int {
	sm.mu.Lock()
	defer sm.mu.Unlock()

	removed := 0
	for id, s := range sm.sessions {
		if s.lastSeen.Before(cutoff) {
			delete(sm.sessions, id)
			removed++
		}
	}
	return removed
}

// Len reports the number of mounted dashboards.
func (sm *SessionManager) Len() int {
	sm.mu.RLock()
	defer sm.mu.RUnlock()
	return len(sm.sessions)
}
