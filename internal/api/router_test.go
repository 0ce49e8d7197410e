package api

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"net/url"
	"sort"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"
	"golang.org/x/crypto/bcrypt"

	"github.com/inkpad/webapps/internal/api/middleware"
	"github.com/inkpad/webapps/internal/core/domain"
	"github.com/inkpad/webapps/internal/core/service"
	"github.com/inkpad/webapps/internal/infrastructure/db/memory"
	"github.com/inkpad/webapps/internal/pkg/config"
)

type memUsers struct {
	mu     sync.Mutex
	byName map[string]*domain.User
	seq    int
}

func (r *memUsers) Create(_ context.Context, u *domain.User) (*domain.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.byName[u.Username]; ok {
		return nil, domain.ErrUserExists
	}
	r.seq++
	stored := *u
	stored.ID = fmt.Sprintf("u%d", r.seq)
	r.byName[u.Username] = &stored
	out := stored
	return &out, nil
}

func (r *memUsers) FindByUsername(_ context.Context, username string) (*domain.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	u, ok := r.byName[username]
	if !ok {
		return nil, domain.ErrUserNotFound
	}
	out := *u
	return &out, nil
}

func (r *memUsers) FindByID(_ context.Context, id string) (*domain.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, u := range r.byName {
		if u.ID == id {
			out := *u
			return &out, nil
		}
	}
	return nil, domain.ErrUserNotFound
}

type memPosts struct {
	mu    sync.Mutex
	posts map[string]*domain.Post
	seq   int
}

func (r *memPosts) Create(_ context.Context, p *domain.Post) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.seq++
	p.ID = fmt.Sprintf("p%d", r.seq)
	stored := *p
	r.posts[p.ID] = &stored
	return nil
}

func (r *memPosts) FindByID(_ context.Context, id string) (*domain.Post, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	p, ok := r.posts[id]
	if !ok {
		return nil, domain.ErrNotFound
	}
	out := *p
	return &out, nil
}

func (r *memPosts) ListAll(_ context.Context) ([]*domain.Post, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]*domain.Post, 0, len(r.posts))
	for _, p := range r.posts {
		cp := *p
		out = append(out, &cp)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.After(out[j].CreatedAt) })
	return out, nil
}

func (r *memPosts) ListByOwner(ctx context.Context, ownerID string) ([]*domain.Post, error) {
	all, _ := r.ListAll(ctx)
	out := all[:0]
	for _, p := range all {
		if p.OwnerID == ownerID {
			out = append(out, p)
		}
	}
	return out, nil
}

func (r *memPosts) Update(_ context.Context, id, ownerID string, payload domain.PostPayload) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	p, ok := r.posts[id]
	if !ok || p.OwnerID != ownerID {
		return domain.ErrNotFound
	}
	p.Title, p.Content = payload.Title, payload.Content
	return nil
}

func (r *memPosts) Delete(_ context.Context, id, ownerID string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	p, ok := r.posts[id]
	if !ok || p.OwnerID != ownerID {
		return domain.ErrNotFound
	}
	delete(r.posts, id)
	return nil
}

type blogServer struct {
	e     *echo.Echo
	posts *memPosts
}

func newBlogServer(t *testing.T) *blogServer {
	t.Helper()
	log := zerolog.Nop()

	users := &memUsers{byName: make(map[string]*domain.User)}
	posts := &memPosts{posts: make(map[string]*domain.Post)}
	sessions := service.NewSessionManager(memory.NewSessionStore(), time.Hour, log)
	auth := service.NewAuthService(users, service.NewBcryptHasher(bcrypt.MinCost), sessions, log)

	e, err := NewRouter(Dependencies{
		App:     config.AppBlog,
		Log:     log,
		Cookies: middleware.NewSessionCookie("test-secret", false, time.Hour),
		Auth:    auth,
		Posts:   service.NewPostService(posts, log),
	})
	if err != nil {
		t.Fatalf("NewRouter: %v", err)
	}
	return &blogServer{e: e, posts: posts}
}

func (s *blogServer) do(method, target string, form url.Values, session *http.Cookie) *httptest.ResponseRecorder {
	var req *http.Request
	if form != nil {
		req = httptest.NewRequest(method, target, strings.NewReader(form.Encode()))
		req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationForm)
	} else {
		req = httptest.NewRequest(method, target, nil)
	}
	if session != nil {
		req.AddCookie(session)
	}
	rec := httptest.NewRecorder()
	s.e.ServeHTTP(rec, req)
	return rec
}

func (s *blogServer) login(t *testing.T, username, password string) *http.Cookie {
	t.Helper()
	creds := url.Values{"username": {username}, "password": {password}}
	if rec := s.do(http.MethodPost, "/register", creds, nil); rec.Code != http.StatusSeeOther {
		t.Fatalf("register %s: expected 303, got %d %s", username, rec.Code, rec.Body.String())
	}
	rec := s.do(http.MethodPost, "/login", creds, nil)
	if rec.Code != http.StatusSeeOther || rec.Header().Get(echo.HeaderLocation) != "/dashboard" {
		t.Fatalf("login %s: expected redirect to dashboard, got %d %q", username, rec.Code, rec.Header().Get(echo.HeaderLocation))
	}
	for _, ck := range rec.Result().Cookies() {
		if ck.Name == middleware.CookieName {
			return ck
		}
	}
	t.Fatalf("login %s: no session cookie", username)
	return nil
}

func (s *blogServer) onlyPostID(t *testing.T) string {
	t.Helper()
	s.posts.mu.Lock()
	defer s.posts.mu.Unlock()
	if len(s.posts.posts) != 1 {
		t.Fatalf("expected exactly one post, got %d", len(s.posts.posts))
	}
	for id := range s.posts.posts {
		return id
	}
	return ""
}

func TestRouter_BlogOwnershipFlow(t *testing.T) {
	s := newBlogServer(t)

	rec := s.do(http.MethodGet, "/dashboard", nil, nil)
	if rec.Code != http.StatusSeeOther || rec.Header().Get(echo.HeaderLocation) != "/login" {
		t.Fatalf("anonymous dashboard: expected redirect to /login, got %d", rec.Code)
	}

	aliceSession := s.login(t, "alice", "pw1")

	rec = s.do(http.MethodPost, "/create", url.Values{"title": {"T"}, "content": {"C"}}, aliceSession)
	if rec.Code != http.StatusSeeOther {
		t.Fatalf("create: expected 303, got %d %s", rec.Code, rec.Body.String())
	}
	id := s.onlyPostID(t)

	rec = s.do(http.MethodGet, "/dashboard", nil, aliceSession)
	if rec.Code != http.StatusOK || !strings.Contains(rec.Body.String(), "/edit/"+id) {
		t.Fatalf("dashboard: expected owner controls, got %d", rec.Code)
	}

	bobSession := s.login(t, "bob", "pw2")

	rec = s.do(http.MethodPost, "/edit/"+id, url.Values{"title": {"hacked"}}, bobSession)
	if rec.Code != http.StatusForbidden || rec.Body.String() != "not your resource" {
		t.Fatalf("bob edit: expected 403, got %d %q", rec.Code, rec.Body.String())
	}
	rec = s.do(http.MethodPost, "/delete/"+id, nil, bobSession)
	if rec.Code != http.StatusForbidden {
		t.Fatalf("bob delete: expected 403, got %d", rec.Code)
	}

	rec = s.do(http.MethodPost, "/delete/"+id, nil, nil)
	if rec.Code != http.StatusSeeOther || rec.Header().Get(echo.HeaderLocation) != "/login" {
		t.Fatalf("anonymous delete: expected redirect to /login, got %d", rec.Code)
	}

	rec = s.do(http.MethodPost, "/delete/missing", nil, aliceSession)
	if rec.Code != http.StatusNotFound {
		t.Fatalf("missing delete: expected 404, got %d", rec.Code)
	}

	rec = s.do(http.MethodPost, "/delete/"+id, nil, aliceSession)
	if rec.Code != http.StatusSeeOther {
		t.Fatalf("alice delete: expected 303, got %d", rec.Code)
	}
	rec = s.do(http.MethodGet, "/post/"+id, nil, nil)
	if rec.Code != http.StatusNotFound {
		t.Fatalf("deleted post: expected 404, got %d", rec.Code)
	}
}

func TestRouter_RegisterAndLoginFailures(t *testing.T) {
	s := newBlogServer(t)
	s.login(t, "alice", "pw1")

	rec := s.do(http.MethodPost, "/register", url.Values{"username": {"alice"}, "password": {"other"}}, nil)
	if rec.Code != http.StatusConflict {
		t.Fatalf("duplicate register: expected 409, got %d", rec.Code)
	}

	wrong := s.do(http.MethodPost, "/login", url.Values{"username": {"alice"}, "password": {"nope"}}, nil)
	unknown := s.do(http.MethodPost, "/login", url.Values{"username": {"mallory"}, "password": {"nope"}}, nil)
	if wrong.Code != http.StatusUnauthorized || unknown.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401 for both, got %d and %d", wrong.Code, unknown.Code)
	}
	if wrong.Body.String() != unknown.Body.String() {
		t.Fatalf("unknown user and wrong password must look the same: %q vs %q", wrong.Body.String(), unknown.Body.String())
	}

	rec = s.do(http.MethodPost, "/register", url.Values{"username": {"carol"}}, nil)
	if rec.Code != http.StatusUnprocessableEntity {
		t.Fatalf("missing password: expected 422, got %d", rec.Code)
	}
}

func TestRouter_LogoutEndsSession(t *testing.T) {
	s := newBlogServer(t)
	session := s.login(t, "alice", "pw1")

	if rec := s.do(http.MethodGet, "/dashboard", nil, session); rec.Code != http.StatusOK {
		t.Fatalf("expected 200 while logged in, got %d", rec.Code)
	}

	rec := s.do(http.MethodPost, "/logout", nil, session)
	if rec.Code != http.StatusSeeOther || rec.Header().Get(echo.HeaderLocation) != "/login" {
		t.Fatalf("logout: expected redirect to /login, got %d", rec.Code)
	}

	// a replayed cookie no longer resolves
	rec = s.do(http.MethodGet, "/dashboard", nil, session)
	if rec.Code != http.StatusSeeOther {
		t.Fatalf("replayed cookie: expected redirect, got %d", rec.Code)
	}

	// logging out twice is harmless
	if rec := s.do(http.MethodPost, "/logout", nil, session); rec.Code != http.StatusSeeOther {
		t.Fatalf("second logout: expected 303, got %d", rec.Code)
	}
}

func TestRouter_ForgedCookieIsAnonymous(t *testing.T) {
	s := newBlogServer(t)
	s.login(t, "alice", "pw1")

	forged := &http.Cookie{Name: middleware.CookieName, Value: "not-a-signed-token"}
	rec := s.do(http.MethodGet, "/dashboard", nil, forged)
	if rec.Code != http.StatusSeeOther {
		t.Fatalf("forged cookie: expected redirect, got %d", rec.Code)
	}
}

func TestRouter_OperationalRoutes(t *testing.T) {
	s := newBlogServer(t)

	if rec := s.do(http.MethodGet, "/health", nil, nil); rec.Code != http.StatusOK {
		t.Fatalf("/health: expected 200, got %d", rec.Code)
	}
	if rec := s.do(http.MethodGet, "/health/ready", nil, nil); rec.Code != http.StatusOK {
		t.Fatalf("/health/ready: expected 200, got %d", rec.Code)
	}

	s.login(t, "alice", "pw1")
	rec := s.do(http.MethodGet, "/metrics", nil, nil)
	if rec.Code != http.StatusOK || !strings.Contains(rec.Body.String(), "inkpad_auth_attempts_total") {
		t.Fatalf("/metrics: expected auth counters, got %d", rec.Code)
	}
}

func TestNewRouter_Apps(t *testing.T) {
	log := zerolog.Nop()
	cookies := middleware.NewSessionCookie("s", false, time.Hour)

	if _, err := NewRouter(Dependencies{App: config.App("wiki"), Log: log, Cookies: cookies}); err == nil {
		t.Fatal("expected error for unknown app")
	}
	if _, err := NewRouter(Dependencies{App: config.AppNotes, Log: log, Cookies: cookies}); err == nil {
		t.Fatal("expected error for notes without a note service")
	}

	tasks := service.NewTaskService(nil, log)
	e, err := NewRouter(Dependencies{App: config.AppTodo, Log: log, Cookies: cookies, Tasks: tasks})
	if err != nil {
		t.Fatalf("NewRouter: %v", err)
	}
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))
	if rec.Code != http.StatusSeeOther || rec.Header().Get(echo.HeaderLocation) != "/login" {
		t.Fatalf("todo index: expected redirect to /login, got %d", rec.Code)
	}
}
