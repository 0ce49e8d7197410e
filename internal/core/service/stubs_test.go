package service

import (
	"context"
	"fmt"
	"sort"
	"sync"
	"time"

	"github.com/inkpad/webapps/internal/core/domain"
)

// ---------------------------------------------------------------------------
// In-memory stub repositories. They mirror the Mongo implementations: unique
// usernames, owner-matched updates and deletes, newest-first listings.
// ---------------------------------------------------------------------------

type stubUserRepo struct {
	mu      sync.Mutex
	byName  map[string]*domain.User
	byID    map[string]*domain.User
	seq     int
	findErr error
}

func newStubUserRepo() *stubUserRepo {
	return &stubUserRepo{
		byName: make(map[string]*domain.User),
		byID:   make(map[string]*domain.User),
	}
}

func cloneUser(u *domain.User) *domain.User {
	if u == nil {
		return nil
	}
	clone := *u
	return &clone
}

func (r *stubUserRepo) Create(_ context.Context, user *domain.User) (*domain.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.byName[user.Username]; exists {
		return nil, domain.ErrUserExists
	}
	r.seq++
	stored := cloneUser(user)
	stored.ID = fmt.Sprintf("u%d", r.seq)
	r.byName[stored.Username] = stored
	r.byID[stored.ID] = stored
	return cloneUser(stored), nil
}

func (r *stubUserRepo) FindByUsername(_ context.Context, username string) (*domain.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.findErr != nil {
		return nil, r.findErr
	}
	u, ok := r.byName[username]
	if !ok {
		return nil, domain.ErrUserNotFound
	}
	return cloneUser(u), nil
}

func (r *stubUserRepo) FindByID(_ context.Context, id string) (*domain.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.findErr != nil {
		return nil, r.findErr
	}
	u, ok := r.byID[id]
	if !ok {
		return nil, domain.ErrUserNotFound
	}
	return cloneUser(u), nil
}

func (r *stubUserRepo) remove(id string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if u, ok := r.byID[id]; ok {
		delete(r.byName, u.Username)
		delete(r.byID, id)
	}
}

type stubSessionStore struct {
	mu      sync.Mutex
	entries map[string]string
	ttls    map[string]time.Duration
	err     error
}

func newStubSessionStore() *stubSessionStore {
	return &stubSessionStore{
		entries: make(map[string]string),
		ttls:    make(map[string]time.Duration),
	}
}

func (s *stubSessionStore) Save(_ context.Context, key, userID string, ttl time.Duration) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.err != nil {
		return s.err
	}
	s.entries[key] = userID
	s.ttls[key] = ttl
	return nil
}

func (s *stubSessionStore) Lookup(_ context.Context, key string) (string, bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.err != nil {
		return "", false, s.err
	}
	id, ok := s.entries[key]
	return id, ok, nil
}

func (s *stubSessionStore) Delete(_ context.Context, key string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.err != nil {
		return s.err
	}
	delete(s.entries, key)
	delete(s.ttls, key)
	return nil
}

type stubPostRepo struct {
	posts     map[string]*domain.Post
	seq       int
	createErr error
	updates   int
	deletes   int
}

func newStubPostRepo() *stubPostRepo {
	return &stubPostRepo{posts: make(map[string]*domain.Post)}
}

func (r *stubPostRepo) Create(_ context.Context, p *domain.Post) error {
	if r.createErr != nil {
		return r.createErr
	}
	r.seq++
	p.ID = fmt.Sprintf("p%d", r.seq)
	clone := *p
	r.posts[p.ID] = &clone
	return nil
}

func (r *stubPostRepo) FindByID(_ context.Context, id string) (*domain.Post, error) {
	p, ok := r.posts[id]
	if !ok {
		return nil, domain.ErrNotFound
	}
	clone := *p
	return &clone, nil
}

func (r *stubPostRepo) ListAll(_ context.Context) ([]*domain.Post, error) {
	out := make([]*domain.Post, 0, len(r.posts))
	for _, p := range r.posts {
		clone := *p
		out = append(out, &clone)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.After(out[j].CreatedAt) })
	return out, nil
}

func (r *stubPostRepo) ListByOwner(ctx context.Context, ownerID string) ([]*domain.Post, error) {
	all, _ := r.ListAll(ctx)
	out := make([]*domain.Post, 0, len(all))
	for _, p := range all {
		if p.OwnerID == ownerID {
			out = append(out, p)
		}
	}
	return out, nil
}

func (r *stubPostRepo) Update(_ context.Context, id, ownerID string, payload domain.PostPayload) error {
	p, ok := r.posts[id]
	if !ok || p.OwnerID != ownerID {
		return domain.ErrNotFound
	}
	r.updates++
	p.Title = payload.Title
	p.Content = payload.Content
	return nil
}

func (r *stubPostRepo) Delete(_ context.Context, id, ownerID string) error {
	p, ok := r.posts[id]
	if !ok || p.OwnerID != ownerID {
		return domain.ErrNotFound
	}
	r.deletes++
	delete(r.posts, id)
	return nil
}

type stubNoteRepo struct {
	notes   map[string]*domain.Note
	seq     int
	updates int
	deletes int
}

func newStubNoteRepo() *stubNoteRepo {
	return &stubNoteRepo{notes: make(map[string]*domain.Note)}
}

func (r *stubNoteRepo) Create(_ context.Context, n *domain.Note) error {
	r.seq++
	n.ID = fmt.Sprintf("n%d", r.seq)
	clone := *n
	r.notes[n.ID] = &clone
	return nil
}

func (r *stubNoteRepo) FindByID(_ context.Context, id string) (*domain.Note, error) {
	n, ok := r.notes[id]
	if !ok {
		return nil, domain.ErrNotFound
	}
	clone := *n
	return &clone, nil
}

func (r *stubNoteRepo) ListAll(_ context.Context) ([]*domain.Note, error) {
	out := make([]*domain.Note, 0, len(r.notes))
	for _, n := range r.notes {
		clone := *n
		out = append(out, &clone)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.After(out[j].CreatedAt) })
	return out, nil
}

func (r *stubNoteRepo) ListByOwner(ctx context.Context, ownerID string) ([]*domain.Note, error) {
	all, _ := r.ListAll(ctx)
	out := make([]*domain.Note, 0, len(all))
	for _, n := range all {
		if n.OwnerID == ownerID {
			out = append(out, n)
		}
	}
	return out, nil
}

func (r *stubNoteRepo) Update(_ context.Context, id, ownerID, text string) error {
	n, ok := r.notes[id]
	if !ok || n.OwnerID != ownerID {
		return domain.ErrNotFound
	}
	r.updates++
	n.Text = text
	return nil
}

func (r *stubNoteRepo) Delete(_ context.Context, id, ownerID string) error {
	n, ok := r.notes[id]
	if !ok || n.OwnerID != ownerID {
		return domain.ErrNotFound
	}
	r.deletes++
	delete(r.notes, id)
	return nil
}

type stubTaskRepo struct {
	tasks  map[string]*domain.Task
	seq    int
	writes int
}

func newStubTaskRepo() *stubTaskRepo {
	return &stubTaskRepo{tasks: make(map[string]*domain.Task)}
}

func (r *stubTaskRepo) Create(_ context.Context, t *domain.Task) error {
	r.seq++
	t.ID = fmt.Sprintf("t%d", r.seq)
	clone := *t
	r.tasks[t.ID] = &clone
	return nil
}

func (r *stubTaskRepo) FindByID(_ context.Context, id string) (*domain.Task, error) {
	t, ok := r.tasks[id]
	if !ok {
		return nil, domain.ErrNotFound
	}
	clone := *t
	return &clone, nil
}

func (r *stubTaskRepo) ListAll(_ context.Context) ([]*domain.Task, error) {
	out := make([]*domain.Task, 0, len(r.tasks))
	for _, t := range r.tasks {
		clone := *t
		out = append(out, &clone)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.After(out[j].CreatedAt) })
	return out, nil
}

func (r *stubTaskRepo) ListByOwner(ctx context.Context, ownerID string) ([]*domain.Task, error) {
	all, _ := r.ListAll(ctx)
	out := make([]*domain.Task, 0, len(all))
	for _, t := range all {
		if t.OwnerID == ownerID {
			out = append(out, t)
		}
	}
	return out, nil
}

func (r *stubTaskRepo) Update(_ context.Context, id, ownerID, text string) error {
	t, ok := r.tasks[id]
	if !ok || t.OwnerID != ownerID {
		return domain.ErrNotFound
	}
	r.writes++
	t.Text = text
	return nil
}

func (r *stubTaskRepo) SetCompleted(_ context.Context, id, ownerID string, completed bool) error {
	t, ok := r.tasks[id]
	if !ok || t.OwnerID != ownerID {
		return domain.ErrNotFound
	}
	r.writes++
	t.Completed = completed
	return nil
}

func (r *stubTaskRepo) Delete(_ context.Context, id, ownerID string) error {
	t, ok := r.tasks[id]
	if !ok || t.OwnerID != ownerID {
		return domain.ErrNotFound
	}
	r.writes++
	delete(r.tasks, id)
	return nil
}
