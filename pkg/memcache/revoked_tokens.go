package memcache

import (
	"sync"
	"time"
)

type RevokedTokenStore interface {
	// Revoke marks the token id as unusable until ttl elapses.
	Revoke(tokenID string, ttl time.Duration)

	IsRevoked(tokenID string) bool
}

type RevokedTokens struct {
	mu   sync.RWMutex
	data map[string]time.Time
	now  func() time.Time
}

func NewRevokedTokens() *RevokedTokens {
	return &RevokedTokens{
		data: make(map[string]time.Time),
		now:  time.Now,
	}
}

func (s *RevokedTokens) Revoke(tokenID string, ttl time.Duration) {
	if tokenID == "" || ttl <= 0 {
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	s.data[tokenID] = s.now().Add(ttl)
	s.sweepLocked()
}

func (s *RevokedTokens) IsRevoked(tokenID string) bool {
	s.mu.RLock()
	defer s.mu.RUnlock()

	expiresAt, ok := s.data[tokenID]
	if !ok {
		return false
	}
	return s.now().Before(expiresAt)
}

// sweepLocked drops entries whose token has expired anyway.
func (s *RevokedTokens) sweepLocked() {
	now := s.now()
	for id, expiresAt := range s.data {
		if !now.Before(expiresAt) {
			delete(s.data, id)
		}
	}
}
