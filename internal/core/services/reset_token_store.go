package services

import (
	"fmt"
	"sync"
	"time"

	"clinicdesk/internal/pkg/password"
)

// DefaultResetTokenTTL is how long a password reset link stays valid
const DefaultResetTokenTTL = time.Hour

// resetTokenBytes is the random payload size of a reset token
const resetTokenBytes = 32

// resetEntry represents a single reset token held in memory
type resetEntry struct {
	UserID    uint
	ExpiresAt time.Time
}

// ResetTokenStore keeps password reset tokens in memory
type ResetTokenStore struct {
	mu      sync.Mutex
	ttl     time.Duration
	clock   Clock
	entries map[string]resetEntry // key = token
}

// NewResetTokenStore creates a store whose tokens live for ttl
func NewResetTokenStore(ttl time.Duration) *ResetTokenStore {
	if ttl <= 0 {
		ttl = DefaultResetTokenTTL
	}
	return &ResetTokenStore{
		ttl:     ttl,
		entries: make(map[string]resetEntry),
	}
}

// SetClock replaces the time source
func (s *ResetTokenStore) SetClock(clock Clock) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.clock = clock
}

// Issue creates a new token for userID
func (s *ResetTokenStore) Issue(userID uint) (string, error) {
	token, err := password.RandomToken(resetTokenBytes)
	if err != nil {
		return "", fmt.Errorf("generate reset token: %w", err)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	s.entries[token] = resetEntry{
		UserID:    userID,
		ExpiresAt: s.clock.now().Add(s.ttl),
	}
	return token, nil
}

// Lookup returns the user a token was issued for.
// Expired tokens are removed and reported as missing.
func (s *ResetTokenStore) Lookup(token string) (uint, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	entry, ok := s.entries[token]
	if !ok {
		return 0, false
	}
	if !s.clock.now().Before(entry.ExpiresAt) {
		delete(s.entries, token)
		return 0, false
	}
	return entry.UserID, true
}

// Consume removes a token
func (s *ResetTokenStore) Consume(token string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.entries, token)
}

// PurgeExpired drops every expired token and returns how many were removed
func (s *ResetTokenStore) PurgeExpired() int {
	s.mu.Lock()
	defer s.mu.Unlock()

	now := s.clock.now()
	removed := 0
	for token, entry := range s.entries {
		if !now.Before(entry.ExpiresAt) {
			delete(s.entries, token)
			removed++
		}
	}
	return removed
}

// Len returns the number of tokens held
func (s *ResetTokenStore) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.entries)
}
