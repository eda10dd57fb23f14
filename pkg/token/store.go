// Package token implements the in-memory admin session store. Tokens are
// opaque random strings mapped to an expiry instant; there is no account or
// claim data behind them, a present unexpired entry is the whole credential.
package token

import (
	"crypto/rand"
	"encoding/hex"
	"sync"
	"time"
)

// Store issues and validates opaque bearer tokens. A Store is owned by the
// process that created it and is safe for concurrent use.
type Store struct {
	mu      sync.RWMutex
	entries map[string]time.Time
	ttl     time.Duration

	// now is replaceable in tests to simulate expiry.
	now func() time.Time
}

// NewStore creates a store whose tokens expire ttl after issuance.
func NewStore(ttl time.Duration) *Store {
	return &Store{
		entries: make(map[string]time.Time),
		ttl:     ttl,
		now:     time.Now,
	}
}

// Issue generates a 256-bit random token, records its expiry and returns the
// hex-encoded token string.
func (s *Store) Issue() (string, error) {
	buf := make([]byte, 32)
	if _, err := rand.Read(buf); err != nil {
		return "", err
	}
	tok := hex.EncodeToString(buf)

	s.mu.Lock()
	s.entries[tok] = s.now().Add(s.ttl)
	s.mu.Unlock()

	return tok, nil
}

// Validate reports whether tok is a known, unexpired token. Expired entries
// are deleted on the way out so repeated probes do not hold memory.
func (s *Store) Validate(tok string) bool {
	s.mu.RLock()
	expiry, ok := s.entries[tok]
	s.mu.RUnlock()

	if !ok {
		return false
	}
	if !s.now().Before(expiry) {
		s.mu.Lock()
		delete(s.entries, tok)
		s.mu.Unlock()
		return false
	}
	return true
}

// Revoke removes tok immediately. Revoking an unknown token is a no-op.
func (s *Store) Revoke(tok string) {
	s.mu.Lock()
	delete(s.entries, tok)
	s.mu.Unlock()
}

// PurgeExpired drops every expired entry and returns how many were removed.
// Called periodically so tokens that are never presented again still get
// evicted.
func (s *Store) PurgeExpired() int {
	now := s.now()

	s.mu.Lock()
	defer s.mu.Unlock()

	removed := 0
	for tok, expiry := range s.entries {
		if !now.Before(expiry) {
			delete(s.entries, tok)
			removed++
		}
	}
	return removed
}

// Len returns the number of live entries, expired or not.
func (s *Store) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.entries)
}
