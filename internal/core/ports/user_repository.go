package ports

import (
	"context"

	"github.com/inkpad/webapps/internal/core/domain"
)

// UserRepository defines persistence for registered users.
// Create must enforce username uniqueness atomically and report a clash as
// domain.ErrUserExists.
type UserRepository interface {
	Create(ctx context.Context, user *domain.User) (*domain.User, error)
	FindByUsername(ctx context.Context, username string) (*domain.User, error)
	FindByID(ctx context.Context, id string) (*domain.User, error)
}
