package ports

import (
	"context"

	"github.com/inkpad/webapps/internal/core/domain"
)

// PostRepository stores blog posts.
//
// Update and Delete take the owner id as part of the match so that the
// ownership decision and the write happen in one storage operation; when
// nothing matches they return domain.ErrNotFound.
type PostRepository interface {
	Create(ctx context.Context, p *domain.Post) error
	FindByID(ctx context.Context, id string) (*domain.Post, error)
	// ListAll returns every post, newest first.
	ListAll(ctx context.Context) ([]*domain.Post, error)
	ListByOwner(ctx context.Context, ownerID string) ([]*domain.Post, error)
	Update(ctx context.Context, id, ownerID string, payload domain.PostPayload) error
	Delete(ctx context.Context, id, ownerID string) error
}

// NoteRepository stores private notes. Same matching rules as PostRepository.
type NoteRepository interface {
	Create(ctx context.Context, n *domain.Note) error
	FindByID(ctx context.Context, id string) (*domain.Note, error)
	ListAll(ctx context.Context) ([]*domain.Note, error)
	ListByOwner(ctx context.Context, ownerID string) ([]*domain.Note, error)
	Update(ctx context.Context, id, ownerID, text string) error
	Delete(ctx context.Context, id, ownerID string) error
}

// TaskRepository stores to-do items. Same matching rules as PostRepository.
type TaskRepository interface {
	Create(ctx context.Context, t *domain.Task) error
	FindByID(ctx context.Context, id string) (*domain.Task, error)
	ListAll(ctx context.Context) ([]*domain.Task, error)
	ListByOwner(ctx context.Context, ownerID string) ([]*domain.Task, error)
	Update(ctx context.Context, id, ownerID, text string) error
	SetCompleted(ctx context.Context, id, ownerID string, completed bool) error
	Delete(ctx context.Context, id, ownerID string) error
}
