package app

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"time"

	"github.com/five82/stateful/internal/catalog"
	"github.com/five82/stateful/internal/config"
	"github.com/five82/stateful/internal/logging"
	"github.com/five82/stateful/internal/prefs"
	"github.com/five82/stateful/internal/server"
	"github.com/five82/stateful/internal/state"
	"github.com/five82/stateful/internal/store"
	"github.com/five82/stateful/internal/ui"
)

// Options configure the stateful application.
type Options struct {
	ConfigPath string
	PrefsPath  string // empty uses default ~/.config/stateful/prefs.toml
	Debug      bool   // forces the debug log level
}

// Run boots the TUI until the user quits or the context is cancelled.
func Run(ctx context.Context, opts Options) error {
	cfg, err := LoadConfig(opts)
	if err != nil {
		return err
	}

	logger, logCloser, err := logging.New(cfg.LogPath(), cfg.LogLevel)
	if err != nil {
		return fmt.Errorf("init logging: %w", err)
	}
	defer func() { _ = logCloser.Close() }()

	source, closeSource, err := OpenSource(ctx, cfg, logger)
	if err != nil {
		return err
	}
	defer func() { _ = closeSource.Close() }()

	probe(ctx, source, logger)

	prefsPath := opts.PrefsPath
	if prefsPath == "" {
		prefsPath = prefs.DefaultPath()
	}
	userPrefs, err := prefs.Load(prefsPath)
	if err != nil {
		logger.Warn("loading preferences failed", "path", prefsPath, "error", err)
	}

	logger.Info("tui starting", "source", cfg.Source, "page_size", cfg.PageSize, "theme", userPrefs.Theme)
	return ui.Run(ui.Options{
		Context:   ctx,
		Source:    source,
		Store:     &state.Store{},
		Config:    cfg,
		Prefs:     userPrefs,
		PrefsPath: prefsPath,
		Logger:    logger,
	})
}

// LoadConfig reads the config file and applies command-line overrides.
func LoadConfig(opts Options) (config.Config, error) {
	cfg, err := config.Load(opts.ConfigPath)
	if err != nil {
		return config.Config{}, fmt.Errorf("load config: %w", err)
	}
	if opts.Debug {
		cfg.LogLevel = "debug"
	}
	return cfg, nil
}

// OpenSource opens the catalog named by cfg.Source. An empty SQLite catalog
// is seeded with cfg.TotalItems generated items so a first run has data.
func OpenSource(ctx context.Context, cfg config.Config, logger *slog.Logger) (catalog.Source, io.Closer, error) {
	switch cfg.Source {
	case config.SourceHTTP:
		client, err := catalog.NewClient(cfg.APIBind)
		if err != nil {
			return nil, nil, fmt.Errorf("init catalog client: %w", err)
		}
		return client, nopCloser{}, nil

	case config.SourceSQLite, "":
		repo, err := OpenStore(ctx, cfg, logger)
		if err != nil {
			return nil, nil, err
		}
		return repo, repo, nil

	default:
		return nil, nil, fmt.Errorf("unknown source %q", cfg.Source)
	}
}

// OpenStore opens the SQLite catalog, seeding it when empty.
func OpenStore(ctx context.Context, cfg config.Config, logger *slog.Logger) (*store.SQLite, error) {
	repo, err := store.New(cfg.DBPath)
	if err != nil {
		return nil, fmt.Errorf("open catalog: %w", err)
	}
	count, err := repo.Count(ctx)
	if err != nil {
		_ = repo.Close()
		return nil, fmt.Errorf("count catalog items: %w", err)
	}
	if count == 0 && cfg.TotalItems > 0 {
		if err := repo.Seed(ctx, cfg.TotalItems, time.Now()); err != nil {
			_ = repo.Close()
			return nil, fmt.Errorf("seed catalog: %w", err)
		}
		logger.Info("catalog seeded", "path", cfg.DBPath, "items", cfg.TotalItems)
	}
	return repo, nil
}

// Seed replaces the SQLite catalog with n generated items.
func Seed(ctx context.Context, opts Options, n int) error {
	cfg, err := LoadConfig(opts)
	if err != nil {
		return err
	}
	if n <= 0 {
		n = cfg.TotalItems
	}
	repo, err := store.New(cfg.DBPath)
	if err != nil {
		return fmt.Errorf("open catalog: %w", err)
	}
	defer func() { _ = repo.Close() }()

	if err := repo.Seed(ctx, n, time.Now()); err != nil {
		return fmt.Errorf("seed catalog: %w", err)
	}
	return nil
}

// Serve exposes the SQLite catalog over HTTP until ctx is cancelled. An
// empty bind uses the configured api_bind.
func Serve(ctx context.Context, opts Options, bind string) error {
	cfg, err := LoadConfig(opts)
	if err != nil {
		return err
	}
	if bind == "" {
		bind = cfg.APIBind
	}

	logger, logCloser, err := logging.New(cfg.LogPath(), cfg.LogLevel)
	if err != nil {
		return fmt.Errorf("init logging: %w", err)
	}
	defer func() { _ = logCloser.Close() }()

	repo, err := OpenStore(ctx, cfg, logger)
	if err != nil {
		return err
	}
	defer func() { _ = repo.Close() }()

	logger.Info("serving catalog", "bind", bind, "db", cfg.DBPath)
	return server.Serve(ctx, bind, repo, logger)
}

// probe logs whether the source answers before the UI takes the terminal.
// Failures are not fatal: the list view shows them with a retry.
func probe(ctx context.Context, source catalog.Source, logger *slog.Logger) {
	ctx, cancel := context.WithTimeout(ctx, 2*time.Second)
	defer cancel()

	status, err := source.Status(ctx)
	if err != nil {
		logger.Warn("catalog not reachable", "error", err)
		return
	}
	logger.Info("catalog reachable", "source", status.Source, "total", status.Total)
}

type nopCloser struct{}

func (nopCloser) Close() error { return nil }
