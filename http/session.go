package http

import (
	"net/http"
	"sync"
	"time"

	"github.com/fwojciec/menuboard"
	"github.com/google/uuid"
)

// SessionCookie is the name of the cookie holding the session ID.
const SessionCookie = "menuboard_session"

// DefaultIdleTimeout is how long an unused session is kept.
const DefaultIdleTimeout = 30 * time.Minute

// SessionStore keeps kiosk sessions in memory, keyed by the session cookie.
// Each session has its own lock so one request at a time works on it.
type SessionStore struct {
	mu       sync.Mutex
	sessions map[string]*sessionEntry

	// NewSession builds the initial state for a new visitor.
	NewSession func(id string) *menuboard.Session

	// IdleTimeout is how long a session survives without requests.
	// Expired sessions are dropped on the next Acquire.
	IdleTimeout time.Duration

	// Now returns the current time. Replaced in tests.
	Now func() time.Time
}

type sessionEntry struct {
	mu      sync.Mutex
	session *menuboard.Session

	// Guarded by SessionStore.mu.
	lastUsed time.Time
	inUse    int
}

// NewSessionStore creates an empty SessionStore.
func NewSessionStore(newSession func(id string) *menuboard.Session) *SessionStore {
	return &SessionStore{
		sessions:    make(map[string]*sessionEntry),
		NewSession:  newSession,
		IdleTimeout: DefaultIdleTimeout,
		Now:         time.Now,
	}
}

// Acquire returns the caller's session, locked, creating it and setting the
// cookie when the request carries no known session. The returned function
// must be called to release the session.
func (s *SessionStore) Acquire(w http.ResponseWriter, r *http.Request) (*menuboard.Session, func()) {
	var id string
	if c, err := r.Cookie(SessionCookie); err == nil {
		id = c.Value
	}

	s.mu.Lock()
	now := s.Now()
	s.expire(now)
	entry, ok := s.sessions[id]
	if !ok {
		id = uuid.NewString()
		entry = &sessionEntry{session: s.NewSession(id)}
		s.sessions[id] = entry
		http.SetCookie(w, &http.Cookie{
			Name:     SessionCookie,
			Value:    id,
			Path:     "/",
			HttpOnly: true,
			SameSite: http.SameSiteLaxMode,
		})
	}
	entry.inUse++
	entry.lastUsed = now
	s.mu.Unlock()

	entry.mu.Lock()
	return entry.session, func() {
		entry.mu.Unlock()
		s.mu.Lock()
		entry.inUse--
		entry.lastUsed = s.Now()
		s.mu.Unlock()
	}
}

// expire drops sessions idle for longer than IdleTimeout. Sessions held by a
// request are kept. Must be called with s.mu held.
func (s *SessionStore) expire(now time.Time) {
	if s.IdleTimeout <= 0 {
		return
	}
	for id, e := range s.sessions {
		if e.inUse == 0 && now.Sub(e.lastUsed) > s.IdleTimeout {
			delete(s.sessions, id)
		}
	}
}

// Len returns the number of live sessions.
func (s *SessionStore) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.sessions)
}
