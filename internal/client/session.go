package client

import (
	"sync"
	"time"

	"github.com/yungbote/cablehouse-backend/internal/domain"
)

// Session is the signed-in identity. It is passed explicitly to services,
// views and the access guard. A nil *Session is an anonymous visitor.
type Session struct {
	mu        sync.RWMutex
	Token     string
	Username  string
	Role      domain.Role
	ExpiresAt time.Time
}

// Logout clears the session in place; everything holding it sees the change.
func (s *Session) Logout() {
	if s == nil {
		return
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.Token = ""
	s.Username = ""
	s.Role = ""
	s.ExpiresAt = time.Time{}
}

// Active reports whether the session still holds a token that has not
// expired locally.
func (s *Session) Active() bool {
	if s == nil {
		return false
	}
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.Token == "" {
		return false
	}
	return s.ExpiresAt.IsZero() || time.Now().Before(s.ExpiresAt)
}

// CurrentRole returns the held role, or "" when signed out.
func (s *Session) CurrentRole() domain.Role {
	if !s.Active() {
		return ""
	}
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.Role
}

func (s *Session) token() string {
	if !s.Active() {
		return ""
	}
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.Token
}
