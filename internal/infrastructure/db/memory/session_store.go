// Package memory holds an in-process session store for local runs and tests.
// Sessions do not survive a restart and are not shared between processes.
package memory

import (
	"context"
	"sync"
	"time"

	"github.com/inkpad/webapps/internal/core/ports"
)

type entry struct {
	userID  string
	expires time.Time // zero means no expiry
}

type SessionStore struct {
	mu      sync.Mutex
	entries map[string]entry
	now     func() time.Time
}

var _ ports.SessionStore = (*SessionStore)(nil)

func NewSessionStore() *SessionStore {
	return &SessionStore{
		entries: make(map[string]entry),
		now:     time.Now,
	}
}

func (s *SessionStore) Save(_ context.Context, key, userID string, ttl time.Duration) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	e := entry{userID: userID}
	if ttl > 0 {
		e.expires = s.now().Add(ttl)
	}
	s.entries[key] = e
	return nil
}

// Lookup returns the user id stored under key. Expired entries are dropped
// on access.
func (s *SessionStore) Lookup(_ context.Context, key string) (string, bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	e, ok := s.entries[key]
	if !ok {
		return "", false, nil
	}
	if !e.expires.IsZero() && !s.now().Before(e.expires) {
		delete(s.entries, key)
		return "", false, nil
	}
	return e.userID, true, nil
}

func (s *SessionStore) Delete(_ context.Context, key string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.entries, key)
	return nil
}

// Len reports the number of stored entries, expired ones included.
func (s *SessionStore) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.entries)
}
