package app

import (
	"fmt"
	"os"

	"exprune/internal/config"
	"exprune/internal/database"
	"exprune/internal/fs"
	"exprune/internal/prune"

	"github.com/google/uuid"
)

// App is the application layer between the CLI and the prune service.
// It constructs all dependencies from config and manages their lifecycle
// on Close.
type App struct {
	cfg     *config.Config
	fsmgr   *fs.OSFilesystemManager
	history prune.HistoryStore
	service *prune.Service
	logger  prune.Logger
	logFile *os.File
}

// New creates a fully wired App. operation identifies the CLI command
// being run (e.g. "Prune", "History", "Schedule") and tags the log lines.
// The caller must call Close when done.
func New(operation string) (*App, error) {
	defaults, err := GetDefaults()
	if err != nil {
		return nil, fmt.Errorf("getting defaults: %w", err)
	}

	cfg, err := config.LoadOrDefault(defaults["config_path"], defaults["base_dir"])
	if err != nil {
		return nil, fmt.Errorf("reading config: %w", err)
	}

	fsmgr := fs.NewOSFilesystemManager(cfg.Filesystem.Ignore)

	history, err := database.NewHistoryStoreFromConfig(cfg.History)
	if err != nil {
		return nil, fmt.Errorf("creating history store: %w", err)
	}

	runID := uuid.New().String()
	slogger, logFile, err := newLogger(cfg.LogDir, runID)
	if err != nil {
		history.Close()
		return nil, fmt.Errorf("creating logger: %w", err)
	}
	logger := &slogAdapter{l: slogger.With("op", operation)}

	prompter := NewTerminalPrompter(os.Stdin, os.Stdout, logger)
	svc := prune.NewService(fsmgr, prune.RealClock{}, prune.UUIDGenerator{}, logger, history, prompter)

	return &App{
		cfg:     cfg,
		fsmgr:   fsmgr,
		history: history,
		service: svc,
		logger:  logger,
		logFile: logFile,
	}, nil
}

// Service returns the wired prune service.
func (a *App) Service() *prune.Service {
	return a.service
}

// Config returns the effective configuration.
func (a *App) Config() *config.Config {
	return a.cfg
}

// History returns the run-history store.
func (a *App) History() prune.HistoryStore {
	return a.history
}

// Logger returns the run-scoped logger.
func (a *App) Logger() prune.Logger {
	return a.logger
}

// Close releases the history store and the log file.
func (a *App) Close() error {
	var firstErr error

	if err := a.history.Close(); err != nil {
		firstErr = fmt.Errorf("closing history store: %w", err)
	}

	if a.logFile != nil {
		if err := a.logFile.Close(); err != nil && firstErr == nil {
			firstErr = fmt.Errorf("closing log file: %w", err)
		}
	}

	return firstErr
}
