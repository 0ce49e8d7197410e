// Package app wires one web application together and owns its lifecycle:
// connections are opened in New and released in Shutdown.
package app

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/labstack/echo/v4"
	goredis "github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/inkpad/webapps/internal/api"
	"github.com/inkpad/webapps/internal/api/handler"
	"github.com/inkpad/webapps/internal/api/middleware"
	"github.com/inkpad/webapps/internal/core/ports"
	"github.com/inkpad/webapps/internal/core/service"
	"github.com/inkpad/webapps/internal/infrastructure/db/memory"
	mongostore "github.com/inkpad/webapps/internal/infrastructure/db/mongo"
	redisstore "github.com/inkpad/webapps/internal/infrastructure/db/redis"
	"github.com/inkpad/webapps/internal/pkg/config"
	"github.com/inkpad/webapps/pkg/logger"
)

const shutdownTimeout = 10 * time.Second

type App struct {
	cfg   *config.Config
	log   zerolog.Logger
	echo  *echo.Echo
	mongo *mongo.Client
	redis *goredis.Client
}

// New connects to the backing stores, ensures indexes and builds the router
// for cfg.App.
func New(ctx context.Context, cfg *config.Config, log zerolog.Logger) (*App, error) {
	a := &App{cfg: cfg, log: log}

	client, db, err := mongostore.Connect(ctx, mongostore.Config{
		URI:      cfg.Mongo.URI,
		Database: cfg.Mongo.Database,
	})
	if err != nil {
		return nil, err
	}
	a.mongo = client

	checks := map[string]handler.CheckFunc{
		"mongodb": func(ctx context.Context) error { return mongostore.Ping(ctx, client) },
	}

	var store ports.SessionStore
	switch cfg.Session.Store {
	case config.SessionStoreRedis:
		rdb, err := redisstore.Connect(ctx, redisstore.Config{
			Addr:     cfg.Redis.Addr,
			Password: cfg.Redis.Password,
			DB:       cfg.Redis.DB,
		})
		if err != nil {
			a.close(ctx)
			return nil, err
		}
		a.redis = rdb
		redisSessions := redisstore.NewSessionStore(rdb)
		checks["redis"] = redisSessions.Ping
		store = redisSessions
	default:
		log.Warn().Msg("using in-process session store; sessions are lost on restart")
		store = memory.NewSessionStore()
	}

	users := mongostore.NewUserRepository(db)
	indexed := []mongostore.IndexEnsurer{users}

	sessions := service.NewSessionManager(store, cfg.Session.TTL, component(log, "session"))
	auth := service.NewAuthService(users, service.NewBcryptHasher(cfg.BcryptCost), sessions, component(log, "auth"))

	deps := api.Dependencies{
		App:     cfg.App,
		Log:     log,
		Cookies: middleware.NewSessionCookie(cfg.SecretKey, cfg.Session.CookieSecure, cfg.Session.TTL),
		Auth:    auth,
		Checks:  checks,
	}

	switch cfg.App {
	case config.AppBlog:
		posts := mongostore.NewPostRepository(db)
		indexed = append(indexed, posts)
		deps.Posts = service.NewPostService(posts, component(log, "posts"))
	case config.AppNotes:
		notes := mongostore.NewNoteRepository(db)
		indexed = append(indexed, notes)
		deps.Notes = service.NewNoteService(notes, component(log, "notes"))
	case config.AppTodo:
		tasks := mongostore.NewTaskRepository(db)
		indexed = append(indexed, tasks)
		deps.Tasks = service.NewTaskService(tasks, component(log, "tasks"))
	}

	if err := mongostore.EnsureIndexes(ctx, indexed...); err != nil {
		a.close(ctx)
		return nil, err
	}

	e, err := api.NewRouter(deps)
	if err != nil {
		a.close(ctx)
		return nil, err
	}
	a.echo = e

	return a, nil
}

// Run serves HTTP until ctx is cancelled, then shuts down gracefully.
func (a *App) Run(ctx context.Context) error {
	addr := net.JoinHostPort("", a.cfg.Port)
	errCh := make(chan error, 1)

	go func() {
		a.log.Info().Str("addr", addr).Str("env", a.cfg.Env).Msg("http server listening")
		if err := a.echo.Start(addr); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		if err != nil {
			a.close(context.Background())
			return fmt.Errorf("http server: %w", err)
		}
		return nil
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	return a.Shutdown(shutdownCtx)
}

// Shutdown stops the HTTP server and releases the store connections.
func (a *App) Shutdown(ctx context.Context) error {
	a.log.Info().Msg("shutting down")

	var errs []error
	if a.echo != nil {
		if err := a.echo.Shutdown(ctx); err != nil {
			errs = append(errs, fmt.Errorf("http shutdown: %w", err))
		}
	}
	if err := a.close(ctx); err != nil {
		errs = append(errs, err)
	}
	return errors.Join(errs...)
}

func (a *App) close(ctx context.Context) error {
	var errs []error
	if a.redis != nil {
		if err := a.redis.Close(); err != nil {
			errs = append(errs, fmt.Errorf("redis close: %w", err))
		}
		a.redis = nil
	}
	if a.mongo != nil {
		if err := a.mongo.Disconnect(ctx); err != nil {
			errs = append(errs, fmt.Errorf("mongo disconnect: %w", err))
		}
		a.mongo = nil
	}
	return errors.Join(errs...)
}

// Main is the body of every cmd entry point. It returns the process exit code.
func Main(kind config.App) int {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	cfg, err := config.Load(ctx, kind)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return 1
	}

	log := logger.Init(logger.Options{
		Level:  cfg.LogLevel,
		Pretty: cfg.Development(),
		App:    string(kind),
	})

	a, err := New(ctx, cfg, log)
	if err != nil {
		log.Error().Err(err).Msg("startup failed")
		return 1
	}

	if err := a.Run(ctx); err != nil {
		log.Error().Err(err).Msg("server stopped with error")
		return 1
	}
	return 0
}

func component(log zerolog.Logger, name string) zerolog.Logger {
	return log.With().Str("component", name).Logger()
}
