package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/rs/zerolog"

	"github.com/inkpad/webapps/internal/core/domain"
	"github.com/inkpad/webapps/internal/core/ports"
	"github.com/inkpad/webapps/internal/pkg/metrics"
)

// AuthService implements registration, login and per-request session
// resolution on top of a user repository, a hasher and a SessionManager.
type AuthService struct {
	users    ports.UserRepository
	hasher   ports.PasswordHasher
	sessions *SessionManager
	log      zerolog.Logger

	// dummyHash is compared against when the username is unknown, so a
	// missing user costs the same bcrypt round as a wrong password.
	dummyHash string
}

var _ ports.AuthService = (*AuthService)(nil)

func NewAuthService(users ports.UserRepository, hasher ports.PasswordHasher, sessions *SessionManager, log zerolog.Logger) *AuthService {
	dummy, err := hasher.Hash("inkpad-dummy-password")
	if err != nil {
		log.Warn().Err(err).Msg("could not prepare dummy password hash")
	}
	return &AuthService{
		users:     users,
		hasher:    hasher,
		sessions:  sessions,
		log:       log,
		dummyHash: dummy,
	}
}

// Register stores a new user. Username uniqueness is enforced by the
// repository; a clash comes back as domain.ErrUserExists.
func (s *AuthService) Register(ctx context.Context, username, password string) (*domain.User, error) {
	if username == "" || password == "" {
		return nil, domain.ErrInvalidInput
	}

	hash, err := s.hasher.Hash(password)
	if err != nil {
		return nil, fmt.Errorf("register: hash password: %w", err)
	}

	created, err := s.users.Create(ctx, &domain.User{
		Username:     username,
		PasswordHash: hash,
		CreatedAt:    time.Now().UTC(),
	})
	if err != nil {
		if errors.Is(err, domain.ErrUserExists) {
			metrics.AuthAttemptsTotal.WithLabelValues("register", "conflict").Inc()
			return nil, domain.ErrUserExists
		}
		return nil, fmt.Errorf("register: %w", err)
	}

	metrics.AuthAttemptsTotal.WithLabelValues("register", "success").Inc()
	s.log.Info().Str("user_id", created.ID).Str("username", created.Username).Msg("user registered")
	return created, nil
}

// Authenticate checks a username/password pair. Unknown users and wrong
// passwords are both reported as domain.ErrInvalidCredentials.
func (s *AuthService) Authenticate(ctx context.Context, username, password string) (*domain.User, error) {
	if username == "" || password == "" {
		metrics.AuthAttemptsTotal.WithLabelValues("login", "failure").Inc()
		return nil, domain.ErrInvalidCredentials
	}

	user, err := s.users.FindByUsername(ctx, username)
	if err != nil && !errors.Is(err, domain.ErrUserNotFound) {
		return nil, fmt.Errorf("authenticate: %w", err)
	}

	target := s.dummyHash
	if user != nil {
		target = user.PasswordHash
	}

	if !s.hasher.Verify(password, target) || user == nil {
		metrics.AuthAttemptsTotal.WithLabelValues("login", "failure").Inc()
		s.log.Info().Str("username", username).Msg("login rejected")
		return nil, domain.ErrInvalidCredentials
	}

	metrics.AuthAttemptsTotal.WithLabelValues("login", "success").Inc()
	return user, nil
}

// Login authenticates and opens a session, returning its token.
func (s *AuthService) Login(ctx context.Context, username, password string) (string, *domain.User, error) {
	user, err := s.Authenticate(ctx, username, password)
	if err != nil {
		return "", nil, err
	}

	token, err := s.sessions.Start(ctx, user)
	if err != nil {
		return "", nil, fmt.Errorf("login: %w", err)
	}

	s.log.Info().Str("user_id", user.ID).Msg("user logged in")
	return token, user, nil
}

// Logout ends the session behind token. It is idempotent.
func (s *AuthService) Logout(ctx context.Context, token string) error {
	return s.sessions.End(ctx, token)
}

// CurrentUser re-resolves token against the session store and the user
// repository. A session pointing at a user that no longer exists resolves
// to nobody.
func (s *AuthService) CurrentUser(ctx context.Context, token string) (*domain.User, error) {
	userID, err := s.sessions.Resolve(ctx, token)
	if err != nil {
		return nil, err
	}
	if userID == "" {
		return nil, nil
	}

	user, err := s.users.FindByID(ctx, userID)
	if err != nil {
		if errors.Is(err, domain.ErrUserNotFound) {
			s.log.Warn().Str("user_id", userID).Msg("session references unknown user")
			return nil, nil
		}
		return nil, fmt.Errorf("current user: %w", err)
	}
	return user, nil
}
