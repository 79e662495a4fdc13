package cart

import "sync"

// Manager owns the live cart sessions, one per visitor session id.
// Sessions are created lazily on first use and torn down explicitly at
// session end.
type Manager struct {
	mu       sync.Mutex
	sessions map[string]*Session

	storage DeviceStorage
	server  ServerCartStore
	agg     *Aggregator
}

// NewManager creates a Manager wiring new sessions to the given stores
// and aggregator
func NewManager(storage DeviceStorage, server ServerCartStore, agg *Aggregator) *Manager {
	return &Manager{
		sessions: make(map[string]*Session),
		storage:  storage,
		server:   server,
		agg:      agg,
	}
}

// Session returns the session for the given visitor session id, creating
// it in the Anonymous state if it does not exist yet
func (m *Manager) Session(sessionID string) *Session {
	m.mu.Lock()
	defer m.mu.Unlock()

	if s, ok := m.sessions[sessionID]; ok {
		return s
	}
	s := NewSession(sessionID, NewLocalStore(m.storage, sessionID), m.server, m.agg)
	m.sessions[sessionID] = s
	return s
}

// End tears down the session for the given id. The next request with the
// same id starts a fresh Anonymous session with an empty local cart view.
func (m *Manager) End(sessionID string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.sessions, sessionID)
}
