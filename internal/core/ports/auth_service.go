package ports

import (
	"context"
	"time"

	"github.com/inkpad/webapps/internal/core/domain"
)

// PasswordHasher produces salted one-way digests and checks passwords against them.
type PasswordHasher interface {
	Hash(password string) (string, error)
	// Verify reports whether password produced hash. A malformed hash is a mismatch.
	Verify(password, hash string) bool
}

// SessionStore maps hashed session tokens to user ids.
type SessionStore interface {
	// Save binds key to userID. A zero ttl means the entry never expires.
	Save(ctx context.Context, key, userID string, ttl time.Duration) error
	// Lookup returns found=false for unknown or expired keys.
	Lookup(ctx context.Context, key string) (userID string, found bool, err error)
	// Delete is a no-op for unknown keys.
	Delete(ctx context.Context, key string) error
}

// AuthService covers registration, login and session resolution.
type AuthService interface {
	Register(ctx context.Context, username, password string) (*domain.User, error)
	Authenticate(ctx context.Context, username, password string) (*domain.User, error)
	Login(ctx context.Context, username, password string) (string, *domain.User, error)
	Logout(ctx context.Context, token string) error
	// CurrentUser returns nil without error when the token resolves to nobody.
	CurrentUser(ctx context.Context, token string) (*domain.User, error)
}
