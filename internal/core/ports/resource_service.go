package ports

import (
	"context"

	"github.com/inkpad/webapps/internal/core/domain"
)

// Actor identifies who issues a request. A zero Actor is anonymous.
type Actor struct {
	UserID   string
	Username string
}

// Anonymous reports whether no session identity was resolved.
func (a Actor) Anonymous() bool { return a.UserID == "" }

// PostService defines the blog use cases.
type PostService interface {
	CreatePost(ctx context.Context, actor Actor, payload domain.PostPayload) (*domain.Post, error)
	GetPost(ctx context.Context, id string) (*domain.Post, error)
	ListPosts(ctx context.Context) ([]*domain.Post, error)
	ListPostsByAuthor(ctx context.Context, ownerID string) ([]*domain.Post, error)
	// EditablePost loads a post for its edit form, applying the mutation guard.
	EditablePost(ctx context.Context, actor Actor, id string) (*domain.Post, error)
	UpdatePost(ctx context.Context, actor Actor, id string, payload domain.PostPayload) error
	DeletePost(ctx context.Context, actor Actor, id string) error
}

// NoteService defines the notes use cases. Notes are private, so reads are
// guarded as well.
type NoteService interface {
	CreateNote(ctx context.Context, actor Actor, text string) (*domain.Note, error)
	ListNotes(ctx context.Context, actor Actor) ([]*domain.Note, error)
	GetNote(ctx context.Context, actor Actor, id string) (*domain.Note, error)
	UpdateNote(ctx context.Context, actor Actor, id, text string) error
	DeleteNote(ctx context.Context, actor Actor, id string) error
}

// TaskService defines the to-do use cases.
type TaskService interface {
	AddTask(ctx context.Context, actor Actor, text string) (*domain.Task, error)
	ListTasks(ctx context.Context, actor Actor) ([]*domain.Task, error)
	CompleteTask(ctx context.Context, actor Actor, id string) error
	ReopenTask(ctx context.Context, actor Actor, id string) error
	RenameTask(ctx context.Context, actor Actor, id, text string) error
	DeleteTask(ctx context.Context, actor Actor, id string) error
}
