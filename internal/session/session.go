// Package session tracks transient per-chat conversation state: whether the
// next free-text message should be treated as a city name or as a move in an
// active mini-game. The state lives only in process memory and is cleared on
// a return to the main menu or when a game ends.
package session

import "sync"

// Session holds the conversation flags for one chat.
// At most one of AwaitingCity / AwaitingGame is meaningful at a time; the
// message router checks the city flag first, which is the normative tie-break.
type Session struct {
	AwaitingCity bool
	AwaitingGame string
}

// Manager stores sessions keyed by chat ID.
type Manager struct {
	mu       sync.RWMutex
	sessions map[int64]*Session
}

// NewManager creates an empty session manager.
func NewManager() *Manager {
	return &Manager{sessions: make(map[int64]*Session)}
}

// Get returns a copy of the chat's session, or a zero session if none exists.
func (m *Manager) Get(chatID int64) Session {
	m.mu.RLock()
	defer m.mu.RUnlock()

	if s, ok := m.sessions[chatID]; ok {
		return *s
	}
	return Session{}
}

// AwaitCity marks the chat as waiting for a city name.
// Any pending game flag is dropped.
func (m *Manager) AwaitCity(chatID int64) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.sessions[chatID] = &Session{AwaitingCity: true}
}

// AwaitGame marks the chat as waiting for a move in the named game.
// Any pending city flag is dropped.
func (m *Manager) AwaitGame(chatID int64, gameName string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.sessions[chatID] = &Session{AwaitingGame: gameName}
}

// ClearCity drops the city flag, leaving any game flag alone.
func (m *Manager) ClearCity(chatID int64) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if s, ok := m.sessions[chatID]; ok {
		s.AwaitingCity = false
	}
}

// ClearGame drops the game flag, leaving any city flag alone.
func (m *Manager) ClearGame(chatID int64) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if s, ok := m.sessions[chatID]; ok {
		s.AwaitingGame = ""
	}
}

// Clear drops the whole session, as on a return to the main menu.
func (m *Manager) Clear(chatID int64) {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.sessions, chatID)
}
