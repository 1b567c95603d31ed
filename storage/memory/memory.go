// Package memory provides a TokenStore held entirely in process memory. It is
// suitable for tests and single-instance deployments; revocations are lost on
// restart, so restarted servers accept previously revoked tokens until they
// expire.
package memory

import (
	"context"
	"sync"
	"time"
)

// RevocationStore tracks consumed authorization codes and revoked tokens in a
// map. Expired entries are pruned lazily on access.
type RevocationStore struct {
	mu      sync.RWMutex
	entries map[string]time.Time
}

// New returns an empty store.
func New() *RevocationStore {
	return &RevocationStore{entries: map[string]time.Time{}}
}

// IsRevoked reports whether tokenID was previously revoked and the revocation
// has not lapsed.
func (s *RevocationStore) IsRevoked(_ context.Context, tokenID string) (bool, error) {
	s.mu.RLock()
	expiresAt, ok := s.entries[tokenID]
	s.mu.RUnlock()

	if !ok {
		return false, nil
	}

	if !expiresAt.After(time.Now()) {
		s.mu.Lock()
		delete(s.entries, tokenID)
		s.mu.Unlock()

		return false, nil
	}

	return true, nil
}

// Revoke marks tokenID as revoked until lifetime has passed. Repeated
// revocations extend the entry, they are never an error.
func (s *RevocationStore) Revoke(_ context.Context, tokenID string, lifetime time.Duration) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	expiresAt := time.Now().Add(lifetime)
	if current, ok := s.entries[tokenID]; !ok || expiresAt.After(current) {
		s.entries[tokenID] = expiresAt
	}

	return nil
}

// Len returns the number of live entries, pruning lapsed ones first.
func (s *RevocationStore) Len() int {
	now := time.Now()

	s.mu.Lock()
	defer s.mu.Unlock()

	for tokenID, expiresAt := range s.entries {
		if !expiresAt.After(now) {
			delete(s.entries, tokenID)
		}
	}

	return len(s.entries)
}
