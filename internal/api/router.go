package api

import (
	"fmt"
	"net/http"
	"strings"

	"github.com/labstack/echo-contrib/echoprometheus"
	"github.com/labstack/echo/v4"
	echomiddleware "github.com/labstack/echo/v4/middleware"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/rs/zerolog"
	echoSwagger "github.com/swaggo/echo-swagger"

	_ "github.com/inkpad/webapps/docs"
	"github.com/inkpad/webapps/internal/api/handler"
	"github.com/inkpad/webapps/internal/api/middleware"
	"github.com/inkpad/webapps/internal/api/view"
	"github.com/inkpad/webapps/internal/core/ports"
	"github.com/inkpad/webapps/internal/pkg/config"
)

// Dependencies is everything the router needs to serve one app. Only the
// service matching App has to be set.
type Dependencies struct {
	App     config.App
	Log     zerolog.Logger
	Cookies *middleware.SessionCookie

	Auth  ports.AuthService
	Posts ports.PostService
	Notes ports.NoteService
	Tasks ports.TaskService

	// Checks are run by the readiness probe, keyed by dependency name.
	Checks map[string]handler.CheckFunc
}

// homes is where each app sends a freshly logged-in user.
var homes = map[config.App]string{
	config.AppBlog:  "/dashboard",
	config.AppNotes: "/notes",
	config.AppTodo:  "/",
}

// NewRouter builds and returns the Echo instance with all routes registered.
func NewRouter(deps Dependencies) (*echo.Echo, error) {
	home, ok := homes[deps.App]
	if !ok {
		return nil, fmt.Errorf("router: unknown app %q", deps.App)
	}

	renderer, err := view.NewRenderer()
	if err != nil {
		return nil, fmt.Errorf("router: %w", err)
	}

	e := echo.New()
	e.HideBanner = true
	e.HidePort = true
	e.Renderer = renderer
	e.Validator = handler.NewValidator()
	e.HTTPErrorHandler = NewHTTPErrorHandler(deps.Log)

	// A registry per router keeps repeated construction (tests, several apps
	// in one process) from tripping duplicate registration.
	reg := prometheus.NewRegistry()

	// --- Global middleware ---
	e.Use(echomiddleware.Recover())
	e.Use(echomiddleware.RequestID())
	e.Use(echoprometheus.NewMiddlewareWithConfig(echoprometheus.MiddlewareConfig{
		Subsystem:  string(deps.App),
		Registerer: reg,
		Skipper:    skipOperational,
	}))
	// Inside the metrics middleware so errors are rendered before their
	// status is observed.
	e.Use(requestLogger(deps.Log))
	e.Use(middleware.Session(deps.Cookies, deps.Auth, deps.Log))

	// --- Operational routes (no auth required) ---
	healthHandler := handler.NewHealthHandler()
	healthDepsHandler := handler.NewHealthDependenciesHandler(deps.Checks)

	e.GET("/health", healthHandler.Liveness)            // liveness  – is the process alive?
	e.GET("/health/ready", healthDepsHandler.Readiness) // readiness – are dependencies up?
	e.GET("/metrics", echoprometheus.NewHandlerWithConfig(echoprometheus.HandlerConfig{
		Gatherer: prometheus.Gatherers{reg, prometheus.DefaultGatherer},
	}))
	e.GET("/swagger/*", echoSwagger.WrapHandler)

	// --- Account routes ---
	authHandler := handler.NewAuthHandler(deps.Auth, deps.Cookies, home)
	e.GET("/register", authHandler.RegisterForm)
	e.POST("/register", authHandler.Register)
	e.GET("/login", authHandler.LoginForm)
	e.POST("/login", authHandler.Login)
	e.GET("/logout", authHandler.Logout)
	e.POST("/logout", authHandler.Logout)

	login := middleware.RequireLogin()

	switch deps.App {
	case config.AppBlog:
		if deps.Posts == nil {
			return nil, fmt.Errorf("router: blog needs a post service")
		}
		h := handler.NewPostHandler(deps.Posts)
		e.GET("/", h.Home)
		e.GET("/dashboard", h.Dashboard, login)
		e.GET("/create", h.NewForm, login)
		e.POST("/create", h.Create, login)
		e.GET("/post/:id", h.Show)
		e.GET("/edit/:id", h.EditForm, login)
		e.POST("/edit/:id", h.Update, login)
		e.POST("/delete/:id", h.Delete, login)

	case config.AppNotes:
		if deps.Notes == nil {
			return nil, fmt.Errorf("router: notes needs a note service")
		}
		h := handler.NewNoteHandler(deps.Notes)
		e.GET("/", h.Home)
		e.GET("/notes", h.List, login)
		e.POST("/notes", h.Create, login)
		e.GET("/notes/:id/edit", h.EditForm, login)
		e.POST("/notes/:id/edit", h.Update, login)
		e.POST("/delete/:id", h.Delete, login)

	case config.AppTodo:
		if deps.Tasks == nil {
			return nil, fmt.Errorf("router: todo needs a task service")
		}
		h := handler.NewTaskHandler(deps.Tasks)
		e.GET("/", h.List, login)
		e.POST("/add", h.Add, login)
		e.POST("/complete/:id", h.Complete, login)
		e.POST("/reopen/:id", h.Reopen, login)
		e.POST("/edit/:id", h.Rename, login)
		e.POST("/delete/:id", h.Delete, login)
	}

	return e, nil
}

func skipOperational(c echo.Context) bool {
	p := c.Request().URL.Path
	return p == "/metrics" || strings.HasPrefix(p, "/health") || strings.HasPrefix(p, "/swagger")
}

// requestLogger writes one zerolog event per request.
func requestLogger(log zerolog.Logger) echo.MiddlewareFunc {
	return echomiddleware.RequestLoggerWithConfig(echomiddleware.RequestLoggerConfig{
		LogMethod:    true,
		LogURI:       true,
		LogStatus:    true,
		LogLatency:   true,
		LogRequestID: true,
		LogError:     true,
		HandleError:  true,
		LogValuesFunc: func(c echo.Context, v echomiddleware.RequestLoggerValues) error {
			evt := log.Info()
			if v.Status >= http.StatusInternalServerError {
				evt = log.Error()
			}
			if v.Error != nil {
				evt = evt.Err(v.Error)
			}
			evt.Str("method", v.Method).
				Str("uri", v.URI).
				Int("status", v.Status).
				Dur("latency", v.Latency).
				Str("request_id", v.RequestID).
				Msg("request")
			return nil
		},
	})
}
