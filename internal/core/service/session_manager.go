package service

import (
	"context"
	"crypto/rand"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"time"

	"github.com/rs/zerolog"

	"github.com/inkpad/webapps/internal/core/domain"
	"github.com/inkpad/webapps/internal/core/ports"
	"github.com/inkpad/webapps/internal/pkg/metrics"
)

const sessionTokenBytes = 32

// SessionManager issues, resolves and ends login sessions. Tokens are handed
// to the client; only their SHA-256 is kept in the store.
type SessionManager struct {
	store ports.SessionStore
	ttl   time.Duration
	log   zerolog.Logger
}

// NewSessionManager returns a SessionManager. A zero ttl keeps sessions until
// they are ended explicitly.
func NewSessionManager(store ports.SessionStore, ttl time.Duration, log zerolog.Logger) *SessionManager {
	if ttl < 0 {
		ttl = 0
	}
	return &SessionManager{store: store, ttl: ttl, log: log}
}

// Start opens a new session bound to user.ID. Existing sessions of the same
// user are left untouched.
func (m *SessionManager) Start(ctx context.Context, user *domain.User) (string, error) {
	if user == nil || user.ID == "" {
		return "", fmt.Errorf("start session: %w", domain.ErrInvalidInput)
	}

	raw := make([]byte, sessionTokenBytes)
	if _, err := rand.Read(raw); err != nil {
		return "", fmt.Errorf("start session: generate token: %w", err)
	}
	token := hex.EncodeToString(raw)

	if err := m.store.Save(ctx, sessionKey(token), user.ID, m.ttl); err != nil {
		return "", fmt.Errorf("start session: %w", err)
	}

	metrics.SessionsTotal.WithLabelValues("started").Inc()
	m.log.Debug().Str("user_id", user.ID).Msg("session started")
	return token, nil
}

// Resolve returns the user id bound to token, or "" when the token is empty,
// unknown, expired or already ended.
func (m *SessionManager) Resolve(ctx context.Context, token string) (string, error) {
	if token == "" {
		return "", nil
	}

	userID, found, err := m.store.Lookup(ctx, sessionKey(token))
	if err != nil {
		return "", fmt.Errorf("resolve session: %w", err)
	}
	if !found {
		return "", nil
	}
	return userID, nil
}

// End clears the binding for token. Ending an unknown or already ended
// session is not an error.
func (m *SessionManager) End(ctx context.Context, token string) error {
	if token == "" {
		return nil
	}
	if err := m.store.Delete(ctx, sessionKey(token)); err != nil {
		return fmt.Errorf("end session: %w", err)
	}

	metrics.SessionsTotal.WithLabelValues("ended").Inc()
	return nil
}

func sessionKey(token string) string {
	sum := sha256.Sum256([]byte(token))
	return hex.EncodeToString(sum[:])
}
