package main

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/ganot/dx-portfolio/internal/config"
	"github.com/ganot/dx-portfolio/internal/datastore"
	"github.com/ganot/dx-portfolio/internal/domain/activity"
	"github.com/ganot/dx-portfolio/internal/fsstore"
	"github.com/ganot/dx-portfolio/internal/pipeline"
	"github.com/ganot/dx-portfolio/internal/sqlite"
)

// app holds the wired components shared by the subcommands.
type app struct {
	cfg      config.Config
	logger   *slog.Logger
	db       *sqlite.DB
	storage  *fsstore.Store
	store    *datastore.Store
	journal  *activity.Service
	pipeline *pipeline.Orchestrator

	closers []io.Closer
}

func newApp(cfg config.Config) (*app, error) {
	a := &app{cfg: cfg}

	logger, logFile := newLogger(cfg)
	a.logger = logger
	if logFile != nil {
		a.closers = append(a.closers, logFile)
	}

	storage, err := fsstore.New(cfg.Data.Root)
	if err != nil {
		a.Close()
		return nil, fmt.Errorf("opening data root: %w", err)
	}
	a.storage = storage

	if err := ensureDBDir(cfg.Journal.Path); err != nil {
		a.Close()
		return nil, fmt.Errorf("preparing journal path: %w", err)
	}
	db, err := sqlite.Open(cfg.Journal.Path)
	if err != nil {
		a.Close()
		return nil, fmt.Errorf("opening journal: %w", err)
	}
	a.db = db
	a.closers = append(a.closers, db)

	a.store = datastore.New(storage, logger)
	a.journal = activity.NewService(sqlite.NewActivityRepository(db), logger)
	a.pipeline = pipeline.New(storage, pipeline.Options{
		Concurrency: cfg.Pipeline.Concurrency,
		Journal:     a.journal,
		Store:       a.store,
		Logger:      logger,
	})
	return a, nil
}

func (a *app) Close() {
	for i := len(a.closers) - 1; i >= 0; i-- {
		_ = a.closers[i].Close()
	}
}

func newLogger(cfg config.Config) (*slog.Logger, *os.File) {
	// Use stderr for logs in stdio mode to keep stdout clean for JSON-RPC.
	logWriter := io.Writer(os.Stdout)
	if cfg.Transport.Mode == config.TransportStdio {
		logWriter = os.Stderr
	}
	var file *os.File
	if logPath := os.Getenv("PORTFOLIO_LOG_PATH"); logPath != "" {
		fileWriter, f, err := newLogFileWriter(logPath)
		if err != nil {
			fmt.Fprintf(os.Stderr, "log file error: %v\n", err)
		} else {
			file = f
			logWriter = fileWriter
		}
	}
	logger := slog.New(slog.NewTextHandler(logWriter, &slog.HandlerOptions{
		Level: parseLogLevel(cfg.Log.Level),
	}))
	return logger, file
}

func ensureDBDir(path string) error {
	if path == ":memory:" || path == "" {
		return nil
	}
	dir := filepath.Dir(path)
	if dir == "." {
		return nil
	}
	return os.MkdirAll(dir, 0o755)
}

func parseLogLevel(level string) slog.Level {
	switch level {
	case "debug":
		return slog.LevelDebug
	case "warn":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}
