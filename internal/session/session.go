// Package session holds the authenticated identity of the running process.
package session

import (
	"sync"
	"time"

	"github.com/google/uuid"
)

// Session is one successful login. Username carries the casing stored in the
// credential file, not what the user typed.
type Session struct {
	ID        uuid.UUID
	Username  string
	StartedAt time.Time
}

// New starts a session for username at now.
func New(username string, now time.Time) *Session {
	return &Session{ID: uuid.New(), Username: username, StartedAt: now}
}

// Holder stores the current session, if any.
type Holder struct {
	mu  sync.RWMutex
	cur *Session
}

func (h *Holder) Set(s *Session) {
	h.mu.Lock()
	h.cur = s
	h.mu.Unlock()
}

// Clear ends the current session and returns it, or nil if nobody was
// logged in.
func (h *Holder) Clear() *Session {
	h.mu.Lock()
	defer h.mu.Unlock()
	s := h.cur
	h.cur = nil
	return s
}

func (h *Holder) Current() (*Session, bool) {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return h.cur, h.cur != nil
}

func (h *Holder) LoggedIn() bool {
	_, ok := h.Current()
	return ok
}
