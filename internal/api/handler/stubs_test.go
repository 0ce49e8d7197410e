package handler

import (
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/inkpad/webapps/internal/api/view"
	"github.com/inkpad/webapps/internal/core/domain"
	"github.com/inkpad/webapps/internal/core/ports"
)

type stubAuthService struct {
	registerFn func(ctx context.Context, username, password string) (*domain.User, error)
	loginFn    func(ctx context.Context, username, password string) (string, *domain.User, error)
	logoutFn   func(ctx context.Context, token string) error
}

func (s *stubAuthService) Register(ctx context.Context, username, password string) (*domain.User, error) {
	return s.registerFn(ctx, username, password)
}

func (s *stubAuthService) Authenticate(context.Context, string, string) (*domain.User, error) {
	panic("not used by handlers")
}

func (s *stubAuthService) Login(ctx context.Context, username, password string) (string, *domain.User, error) {
	return s.loginFn(ctx, username, password)
}

func (s *stubAuthService) Logout(ctx context.Context, token string) error {
	return s.logoutFn(ctx, token)
}

func (s *stubAuthService) CurrentUser(context.Context, string) (*domain.User, error) {
	panic("not used by handlers")
}

type stubCookies struct {
	issued  []string
	cleared int
}

func (s *stubCookies) Issue(_ echo.Context, token string) error {
	s.issued = append(s.issued, token)
	return nil
}

func (s *stubCookies) Clear(echo.Context) { s.cleared++ }

type stubPostService struct {
	ports.PostService
	listFn   func(ctx context.Context) ([]*domain.Post, error)
	createFn func(ctx context.Context, actor ports.Actor, payload domain.PostPayload) (*domain.Post, error)
	getFn    func(ctx context.Context, id string) (*domain.Post, error)
	editFn   func(ctx context.Context, actor ports.Actor, id string) (*domain.Post, error)
	updateFn func(ctx context.Context, actor ports.Actor, id string, payload domain.PostPayload) error
	deleteFn func(ctx context.Context, actor ports.Actor, id string) error
}

func (s *stubPostService) ListPosts(ctx context.Context) ([]*domain.Post, error) {
	return s.listFn(ctx)
}

func (s *stubPostService) CreatePost(ctx context.Context, actor ports.Actor, payload domain.PostPayload) (*domain.Post, error) {
	return s.createFn(ctx, actor, payload)
}

func (s *stubPostService) GetPost(ctx context.Context, id string) (*domain.Post, error) {
	return s.getFn(ctx, id)
}

func (s *stubPostService) EditablePost(ctx context.Context, actor ports.Actor, id string) (*domain.Post, error) {
	return s.editFn(ctx, actor, id)
}

func (s *stubPostService) UpdatePost(ctx context.Context, actor ports.Actor, id string, payload domain.PostPayload) error {
	return s.updateFn(ctx, actor, id, payload)
}

func (s *stubPostService) DeletePost(ctx context.Context, actor ports.Actor, id string) error {
	return s.deleteFn(ctx, actor, id)
}

type stubNoteService struct {
	ports.NoteService
	listFn   func(ctx context.Context, actor ports.Actor) ([]*domain.Note, error)
	createFn func(ctx context.Context, actor ports.Actor, text string) (*domain.Note, error)
	getFn    func(ctx context.Context, actor ports.Actor, id string) (*domain.Note, error)
	updateFn func(ctx context.Context, actor ports.Actor, id, text string) error
	deleteFn func(ctx context.Context, actor ports.Actor, id string) error
}

func (s *stubNoteService) ListNotes(ctx context.Context, actor ports.Actor) ([]*domain.Note, error) {
	return s.listFn(ctx, actor)
}

func (s *stubNoteService) CreateNote(ctx context.Context, actor ports.Actor, text string) (*domain.Note, error) {
	return s.createFn(ctx, actor, text)
}

func (s *stubNoteService) GetNote(ctx context.Context, actor ports.Actor, id string) (*domain.Note, error) {
	return s.getFn(ctx, actor, id)
}

func (s *stubNoteService) UpdateNote(ctx context.Context, actor ports.Actor, id, text string) error {
	return s.updateFn(ctx, actor, id, text)
}

func (s *stubNoteService) DeleteNote(ctx context.Context, actor ports.Actor, id string) error {
	return s.deleteFn(ctx, actor, id)
}

// stubTaskService records every call as "<op> <id> <text>".
type stubTaskService struct {
	ports.TaskService
	calls []string
	err   error
	tasks []*domain.Task
}

func (s *stubTaskService) record(call string) error {
	s.calls = append(s.calls, call)
	return s.err
}

func (s *stubTaskService) ListTasks(context.Context, ports.Actor) ([]*domain.Task, error) {
	return s.tasks, s.err
}

func (s *stubTaskService) AddTask(_ context.Context, actor ports.Actor, text string) (*domain.Task, error) {
	if err := s.record("add " + actor.UserID + " " + text); err != nil {
		return nil, err
	}
	return &domain.Task{ID: "t1", OwnerID: actor.UserID, Text: text}, nil
}

func (s *stubTaskService) CompleteTask(_ context.Context, _ ports.Actor, id string) error {
	return s.record("complete " + id)
}

func (s *stubTaskService) ReopenTask(_ context.Context, _ ports.Actor, id string) error {
	return s.record("reopen " + id)
}

func (s *stubTaskService) RenameTask(_ context.Context, _ ports.Actor, id, text string) error {
	return s.record("rename " + id + " " + text)
}

func (s *stubTaskService) DeleteTask(_ context.Context, _ ports.Actor, id string) error {
	return s.record("delete " + id)
}

// recordingRenderer keeps the last page rendered instead of producing HTML.
type recordingRenderer struct {
	name string
	page view.Page
}

func (r *recordingRenderer) Render(_ io.Writer, name string, data interface{}, _ echo.Context) error {
	r.name = name
	r.page = data.(view.Page)
	return nil
}

func newTestEcho() (*echo.Echo, *recordingRenderer) {
	e := echo.New()
	e.Validator = NewValidator()
	r := &recordingRenderer{}
	e.Renderer = r
	return e, r
}

// formContext builds a context for a form POST, optionally logged in as actor
// and with a single :id path parameter.
func formContext(e *echo.Echo, method, target string, form url.Values, actor ports.Actor, id string) (echo.Context, *httptest.ResponseRecorder) {
	var body io.Reader
	if form != nil {
		body = strings.NewReader(form.Encode())
	}
	req := httptest.NewRequest(method, target, body)
	if form != nil {
		req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationForm)
	}
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	if !actor.Anonymous() {
		c.Set("user_id", actor.UserID)
		c.Set("username", actor.Username)
	}
	if id != "" {
		c.SetParamNames("id")
		c.SetParamValues(id)
	}
	return c, rec
}

var (
	alice = ports.Actor{UserID: "u1", Username: "alice"}
	bob   = ports.Actor{UserID: "u2", Username: "bob"}
)

func expectRedirect(rec *httptest.ResponseRecorder, to string) (bool, string) {
	if rec.Code != http.StatusSeeOther {
		return false, "status " + http.StatusText(rec.Code)
	}
	if got := rec.Header().Get(echo.HeaderLocation); got != to {
		return false, "location " + got
	}
	return true, ""
}
