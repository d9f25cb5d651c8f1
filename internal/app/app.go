package app

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/charmbracelet/log"
	"github.com/gofrs/flock"
	"github.com/labstack/echo/v4"
	"github.com/shouta256/todo-next-spring/internal/api"
	"github.com/shouta256/todo-next-spring/internal/auth"
	"github.com/shouta256/todo-next-spring/internal/config"
	"github.com/shouta256/todo-next-spring/internal/db"
	"github.com/shouta256/todo-next-spring/internal/folder"
	"github.com/shouta256/todo-next-spring/internal/todo"
	"github.com/shouta256/todo-next-spring/internal/validate"
)

// App holds the application state and dependencies
type App struct {
	Config    *config.Config
	Logger    *log.Logger
	DB        *db.DB
	Auth      *auth.Service
	Folders   *folder.Service
	Todos     *todo.Service
	Validator *validate.Validator
	lockFile  *flock.Flock
}

// Options control how New prepares the application.
type Options struct {
	// Lock takes an exclusive lock beside the sqlite file so only one
	// server uses it. Ignored for mysql.
	Lock bool
}

// New creates a new application instance
func New(cfg *config.Config, logger *log.Logger, opts Options) (*App, error) {
	if cfg == nil {
		cfg = config.Default()
	}

	dsn := cfg.Database.DSN
	if cfg.Database.Driver == db.DriverSQLite {
		if dsn == "" {
			dsn = db.DefaultDBPath()
		}
		// Ensure data directory exists
		if err := os.MkdirAll(filepath.Dir(dsn), 0755); err != nil {
			return nil, fmt.Errorf("failed to create data directory: %w", err)
		}
	}

	app := &App{
		Config: cfg,
		Logger: logger,
	}

	// Acquire lock to ensure single instance
	if opts.Lock && cfg.Database.Driver == db.DriverSQLite {
		if err := app.acquireLock(dsn + ".lock"); err != nil {
			return nil, err
		}
	}

	// Open database
	database, err := db.Open(cfg.Database.Driver, dsn)
	if err != nil {
		app.releaseLock()
		return nil, fmt.Errorf("failed to open database: %w", err)
	}
	app.DB = database

	validator, err := validate.New()
	if err != nil {
		app.Close()
		return nil, fmt.Errorf("failed to compile request schemas: %w", err)
	}
	tokens, err := auth.NewTokens()
	if err != nil {
		app.Close()
		return nil, err
	}

	app.Validator = validator
	app.Auth = auth.NewService(database, auth.NewBcryptHasher(cfg.Auth.BcryptCost), tokens, logger)
	app.Folders = folder.NewService(database, logger)
	app.Todos = todo.NewService(database, database, logger)

	logger.Debug("Opened database", "driver", cfg.Database.Driver)
	return app, nil
}

// Handler returns the HTTP surface over the app's services.
func (a *App) Handler() *echo.Echo {
	return api.New(api.Services{
		Auth:      a.Auth,
		Folders:   a.Folders,
		Todos:     a.Todos,
		Validator: a.Validator,
	}, api.Options{
		AllowedOrigins: a.Config.Server.AllowedOrigins,
		RequireToken:   a.Config.Server.RequireToken,
		DistinctErrors: a.Config.Server.DistinctErrors,
	}, a.Logger)
}

// NewLogger builds the process logger from the [log] section.
func NewLogger(cfg config.Log, w io.Writer) (*log.Logger, error) {
	level, err := log.ParseLevel(cfg.Level)
	if err != nil {
		return nil, fmt.Errorf("invalid log level %q: %w", cfg.Level, err)
	}

	var formatter log.Formatter
	switch strings.ToLower(cfg.Format) {
	case "", "text":
		formatter = log.TextFormatter
	case "json":
		formatter = log.JSONFormatter
	case "logfmt":
		formatter = log.LogfmtFormatter
	default:
		return nil, fmt.Errorf("invalid log format %q", cfg.Format)
	}

	return log.NewWithOptions(w, log.Options{
		Prefix:          "todo",
		Level:           level,
		Formatter:       formatter,
		ReportTimestamp: true,
		TimeFormat:      time.DateTime,
	}), nil
}

// acquireLock acquires an exclusive file lock to prevent multiple instances
func (a *App) acquireLock(lockPath string) error {
	a.lockFile = flock.New(lockPath)

	locked, err := a.lockFile.TryLock()
	if err != nil {
		return fmt.Errorf("failed to acquire lock: %w", err)
	}

	if !locked {
		return fmt.Errorf("another todo-server is already using %s", strings.TrimSuffix(lockPath, ".lock"))
	}

	return nil
}

// releaseLock releases the file lock
func (a *App) releaseLock() {
	if a.lockFile != nil {
		a.lockFile.Unlock()
	}
}

// Close cleans up application resources
func (a *App) Close() error {
	var errs []error

	if a.DB != nil {
		if err := a.DB.Close(); err != nil {
			errs = append(errs, fmt.Errorf("failed to close database: %w", err))
		}
	}

	a.releaseLock()

	if len(errs) > 0 {
		return errs[0]
	}
	return nil
}
