package mem

import (
	"sync"
	"time"
)

// RevokedTokenStore remembers logged-out bearer tokens until they would have
// expired anyway.
type RevokedTokenStore interface {
	Revoke(token string, until time.Time)

	// IsRevoked reports whether token was revoked and has not yet expired.
	IsRevoked(token string) bool

	// Purge drops expired entries and returns how many were removed.
	Purge() int
}

type entry struct {
	expiresAt time.Time
}

type RevokedTokens struct {
	mu   sync.RWMutex
	data map[string]entry
	now  func() time.Time
}

func NewRevokedTokens() *RevokedTokens {
	return &RevokedTokens{
		data: make(map[string]entry),
		now:  time.Now,
	}
}

func (s *RevokedTokens) Revoke(token string, until time.Time) {
	if token == "" {
		return
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.data[token] = entry{expiresAt: until}
}

func (s *RevokedTokens) IsRevoked(token string) bool {
	s.mu.RLock()
	e, ok := s.data[token]
	s.mu.RUnlock()
	if !ok {
		return false
	}
	if s.now().After(e.expiresAt) {
		s.mu.Lock()
		delete(s.data, token)
		s.mu.Unlock()
		return false
	}
	return true
}

func (s *RevokedTokens) Purge() int {
	s.mu.Lock()
	defer s.mu.Unlock()

	now := s.now()
	removed := 0
	for token, e := range s.data {
		if now.After(e.expiresAt) {
			delete(s.data, token)
			removed++
		}
	}
	return removed
}
