package admin

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/hashicorp/golang-lru/v2/expirable"
)

// Manager maps opaque session tokens to logged-in Sessions.
// Entries expire after the configured TTL; the oldest session is evicted
// when the limit is reached. Eviction logs the session out.
type Manager struct {
	store    PackageStore
	opts     Options
	sessions *expirable.LRU[string, *Session]
}

// NewManager returns a Manager holding at most limit sessions for ttl each.
func NewManager(store PackageStore, opts Options, limit int, ttl time.Duration) *Manager {
	onEvict := func(_ string, s *Session) { s.Logout() }
	return &Manager{
		store:    store,
		opts:     opts,
		sessions: expirable.NewLRU[string, *Session](limit, onEvict, ttl),
	}
}

// Login creates a session, checks code, and loads the package list.
// It returns the token under which the session is registered.
func (m *Manager) Login(ctx context.Context, code string) (string, *Session, error) {
	s := NewSession(m.store, m.opts)
	if err := s.Login(ctx, code); err != nil {
		return "", nil, err
	}
	token := uuid.NewString()
	m.sessions.Add(token, s)
	return token, s, nil
}

// Get returns the live session for token.
func (m *Manager) Get(token string) (*Session, bool) {
	if token == "" {
		return nil, false
	}
	s, ok := m.sessions.Get(token)
	if !ok || s.State() == StateLoggedOut {
		return nil, false
	}
	return s, true
}

// Logout ends the session for token. Unknown tokens are ignored.
func (m *Manager) Logout(token string) {
	if s, ok := m.sessions.Peek(token); ok {
		s.Logout()
		m.sessions.Remove(token)
	}
}

// Len returns the number of registered sessions.
func (m *Manager) Len() int {
	return m.sessions.Len()
}
