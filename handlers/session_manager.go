package handlers

import "sync"

// SessionManager tracks the active environment sessions. Sessions share
// nothing but this registry; each one owns its own environment instance.
type SessionManager struct {
	sessions map[string]*SessionHandler
	mutex    sync.RWMutex
}

// NewSessionManager creates a new session manager
func NewSessionManager() *SessionManager {
	return &SessionManager{
		sessions: make(map[string]*SessionHandler),
	}
}

// AddSession registers a session
func (sm *SessionManager) AddSession(sessionID string, handler *SessionHandler) {
	sm.mutex.Lock()
	defer sm.mutex.Unlock()
	sm.sessions[sessionID] = handler
}

// RemoveSession removes a session from the manager
func (sm *SessionManager) RemoveSession(sessionID string) {
	sm.mutex.Lock()
	defer sm.mutex.Unlock()
	delete(sm.sessions, sessionID)
}

// Count returns the number of active sessions
func (sm *SessionManager) Count() int {
	sm.mutex.RLock()
	defer sm.mutex.RUnlock()
	return len(sm.sessions)
}
