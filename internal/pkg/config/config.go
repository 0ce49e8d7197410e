package config

import (
	"context"
	"fmt"
	"time"

	"github.com/sethvargo/go-envconfig"
)

// App names one of the three web applications served from this module.
type App string

const (
	AppBlog  App = "blog"
	AppNotes App = "notes"
	AppTodo  App = "todo"
)

const (
	SessionStoreRedis  = "redis"
	SessionStoreMemory = "memory"
)

type appDefaults struct {
	port     string
	database string
}

var defaults = map[App]appDefaults{
	AppBlog:  {port: "5002", database: "blog_db"},
	AppNotes: {port: "5001", database: "notes_db"},
	AppTodo:  {port: "5003", database: "todo_db"},
}

type Config struct {
	App App

	Port       string `env:"PORT"`
	Env        string `env:"ENV,         default=development"`
	LogLevel   string `env:"LOG_LEVEL,   default=info"`
	SecretKey  string `env:"SECRET_KEY,  required"`
	BcryptCost int    `env:"BCRYPT_COST, default=10"`

	Session SessionConfig
	Mongo   MongoConfig
	Redis   RedisConfig
}

type SessionConfig struct {
	TTL          time.Duration `env:"SESSION_TTL,   default=24h"`
	Store        string        `env:"SESSION_STORE, default=redis"`
	CookieSecure bool          `env:"COOKIE_SECURE, default=false"`
}

type MongoConfig struct {
	URI      string `env:"MONGO_URI, default=mongodb://localhost:27017"`
	Database string `env:"MONGO_DB"`
}

type RedisConfig struct {
	Addr     string `env:"REDIS_ADDR,     default=localhost:6379"`
	Password string `env:"REDIS_PASSWORD"`
	DB       int    `env:"REDIS_DB,       default=0"`
}

// Load reads configuration for app from environment variables using go-envconfig.
func Load(ctx context.Context, app App) (*Config, error) {
	return LoadWith(ctx, app, envconfig.OsLookuper())
}

// LoadWith is Load with an explicit source of variables.
func LoadWith(ctx context.Context, app App, lookuper envconfig.Lookuper) (*Config, error) {
	d, ok := defaults[app]
	if !ok {
		return nil, fmt.Errorf("config: unknown app %q", app)
	}

	cfg := Config{App: app}
	if err := envconfig.ProcessWith(ctx, &envconfig.Config{Target: &cfg, Lookuper: lookuper}); err != nil {
		return nil, fmt.Errorf("config: failed to load configuration: %w", err)
	}

	if cfg.Port == "" {
		cfg.Port = d.port
	}
	if cfg.Mongo.Database == "" {
		cfg.Mongo.Database = d.database
	}

	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Development reports whether the process runs in a local environment.
func (c *Config) Development() bool {
	return c.Env == "development"
}

func (c *Config) validate() error {
	switch c.Session.Store {
	case SessionStoreRedis, SessionStoreMemory:
	default:
		return fmt.Errorf("config: SESSION_STORE must be %q or %q, got %q",
			SessionStoreRedis, SessionStoreMemory, c.Session.Store)
	}
	if c.Session.TTL < 0 {
		return fmt.Errorf("config: SESSION_TTL must not be negative")
	}
	return nil
}
