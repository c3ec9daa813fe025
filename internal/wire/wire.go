// Package wire provides dependency injection for the ghnf application.
// It creates singleton services with lazy initialization.
package wire

import (
	"database/sql"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"
	"sync"

	"github.com/example/ghnf/internal/adapters/browser"
	cliadapter "github.com/example/ghnf/internal/adapters/cli"
	"github.com/example/ghnf/internal/adapters/github"
	"github.com/example/ghnf/internal/adapters/sqlite"
	"github.com/example/ghnf/internal/adapters/terminal"
	"github.com/example/ghnf/internal/app"
	"github.com/example/ghnf/internal/config"
	"github.com/example/ghnf/internal/db"
	"github.com/example/ghnf/internal/ports/primary"
	"github.com/example/ghnf/internal/ports/secondary"
)

// EnvLogLevel selects the diagnostic log level (debug, info, warn, error).
const EnvLogLevel = "GHNF_LOG_LEVEL"

var (
	cfg                 *config.Config
	database            *sql.DB
	notificationService primary.NotificationService
	initErr             error
	once                sync.Once
)

// Config returns the loaded configuration.
func Config() (*config.Config, error) {
	once.Do(initServices)
	return cfg, initErr
}

// NotificationService returns the singleton NotificationService instance.
func NotificationService() (primary.NotificationService, error) {
	once.Do(initServices)
	return notificationService, initErr
}

// initServices loads the configuration and builds every service.
// This is called once via sync.Once.
func initServices() {
	logger := NewLogger(os.Stderr, os.Getenv(EnvLogLevel))

	dir, err := config.Dir()
	if err != nil {
		initErr = err
		return
	}
	cfg, err = config.Load(dir)
	if err != nil {
		initErr = fmt.Errorf("failed to load configuration from %s: %w", dir, err)
		return
	}

	// The history is optional; without it mutations are simply not recorded
	var history secondary.MutationHistoryRepository
	if path := cfg.HistoryPath(); path != "" {
		database, err = db.Open(path)
		if err != nil {
			initErr = fmt.Errorf("failed to initialize history database: %w", err)
			return
		}
		history = sqlite.NewMutationHistoryRepository(database)
	}

	gateway := github.NewClient(
		github.NewHTTPClient(cfg.Token, cfg.Timeout()),
		logger,
		github.WithBaseURL(cfg.APIURL),
	)

	notificationService = app.NewNotificationService(
		gateway,
		history,
		terminal.NewPrompter(os.Stdin, os.Stdout),
		browser.NewOpener(),
		cliadapter.NewProgressPrinter(os.Stdout),
		app.NotificationServiceConfig{
			ChunkSize: cfg.ChunkSize,
			Logger:    logger,
		},
	)
}

// Close releases the history database, if it was opened.
func Close() error {
	if database != nil {
		return database.Close()
	}
	return nil
}

// NotificationAdapter returns a new NotificationAdapter writing to stdout and stderr.
// Each call creates a new adapter (adapters are stateless translators).
func NotificationAdapter() (*cliadapter.NotificationAdapter, error) {
	return NotificationAdapterWithOutput(os.Stdout, os.Stderr)
}

// NotificationAdapterWithOutput returns a new NotificationAdapter writing to the given outputs.
func NotificationAdapterWithOutput(out, errOut io.Writer) (*cliadapter.NotificationAdapter, error) {
	svc, err := NotificationService()
	if err != nil {
		return nil, err
	}
	return cliadapter.NewNotificationAdapter(svc, out, errOut), nil
}

// NewLogger returns a text logger on w at the named level.
// Unknown or empty names mean warn.
func NewLogger(w io.Writer, level string) *slog.Logger {
	return slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{Level: parseLevel(level)}))
}

func parseLevel(s string) slog.Level {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "debug":
		return slog.LevelDebug
	case "info":
		return slog.LevelInfo
	case "error":
		return slog.LevelError
	default:
		return slog.LevelWarn
	}
}
