package config

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	toml "github.com/pelletier/go-toml/v2"
)

// Source selects where the catalog is read from.
type Source string

const (
	SourceSQLite Source = "sqlite"
	SourceHTTP   Source = "http"
)

// Config holds the settings of the stateful host application.
type Config struct {
	Source  Source
	DBPath  string
	APIBind string

	PageSize   int
	TotalItems int

	LoadMoreThreshold    int
	PullToRefresh        bool
	ItemNoun             string
	ShowListWhileLoading bool

	RefreshEvery time.Duration
	LoadTimeout  time.Duration

	LogDir   string
	LogLevel string
}

const (
	defaultConfigPath        = "~/.config/stateful/config.toml"
	defaultDBPath            = "~/.local/share/stateful/catalog.db"
	defaultLogDir            = "~/.local/share/stateful/logs"
	defaultAPIBind           = "127.0.0.1:7488"
	defaultPageSize          = 25
	defaultTotalItems        = 120
	defaultLoadMoreThreshold = 4
	defaultItemNoun          = "items"
	defaultLoadTimeout       = 10 * time.Second
	defaultLogLevel          = "info"
	logFileName              = "stateful.log"
)

// Default returns the configuration used when no file exists.
func Default() Config {
	return Config{
		Source:            SourceSQLite,
		DBPath:            mustExpand(defaultDBPath),
		APIBind:           defaultAPIBind,
		PageSize:          defaultPageSize,
		TotalItems:        defaultTotalItems,
		LoadMoreThreshold: defaultLoadMoreThreshold,
		PullToRefresh:     true,
		ItemNoun:          defaultItemNoun,
		LoadTimeout:       defaultLoadTimeout,
		LogDir:            mustExpand(defaultLogDir),
		LogLevel:          defaultLogLevel,
	}
}

// Load locates and parses the config, falling back to defaults when missing.
func Load(path string) (Config, error) {
	resolved, err := resolvePath(path)
	if err != nil {
		return Config{}, err
	}

	cfg := Default()

	file, err := os.Open(resolved)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return cfg, nil
		}
		return Config{}, fmt.Errorf("open config: %w", err)
	}
	defer file.Close()

	bytes, err := io.ReadAll(file)
	if err != nil {
		return Config{}, fmt.Errorf("read config: %w", err)
	}

	var raw struct {
		Source               string `toml:"source"`
		DBPath               string `toml:"db_path"`
		APIBind              string `toml:"api_bind"`
		PageSize             int    `toml:"page_size"`
		TotalItems           int    `toml:"total_items"`
		LoadMoreThreshold    *int   `toml:"load_more_threshold"`
		PullToRefresh        *bool  `toml:"pull_to_refresh"`
		ItemNoun             string `toml:"item_noun"`
		ShowListWhileLoading bool   `toml:"show_list_while_loading"`
		RefreshEvery         string `toml:"refresh_every"`
		LoadTimeout          string `toml:"load_timeout"`
		LogDir               string `toml:"log_dir"`
		LogLevel             string `toml:"log_level"`
	}
	if err := toml.Unmarshal(bytes, &raw); err != nil {
		return Config{}, fmt.Errorf("parse config: %w", err)
	}

	if s := strings.ToLower(strings.TrimSpace(raw.Source)); s != "" {
		cfg.Source = Source(s)
	}
	if p := strings.TrimSpace(raw.DBPath); p != "" {
		cfg.DBPath = mustExpand(p)
	}
	if bind := strings.TrimSpace(raw.APIBind); bind != "" {
		cfg.APIBind = bind
	}
	if raw.PageSize != 0 {
		cfg.PageSize = raw.PageSize
	}
	if raw.TotalItems != 0 {
		cfg.TotalItems = raw.TotalItems
	}
	if raw.LoadMoreThreshold != nil {
		cfg.LoadMoreThreshold = *raw.LoadMoreThreshold
	}
	if raw.PullToRefresh != nil {
		cfg.PullToRefresh = *raw.PullToRefresh
	}
	if noun := strings.TrimSpace(raw.ItemNoun); noun != "" {
		cfg.ItemNoun = noun
	}
	cfg.ShowListWhileLoading = raw.ShowListWhileLoading
	if d := strings.TrimSpace(raw.RefreshEvery); d != "" {
		cfg.RefreshEvery, err = time.ParseDuration(d)
		if err != nil {
			return Config{}, fmt.Errorf("parse refresh_every: %w", err)
		}
	}
	if d := strings.TrimSpace(raw.LoadTimeout); d != "" {
		cfg.LoadTimeout, err = time.ParseDuration(d)
		if err != nil {
			return Config{}, fmt.Errorf("parse load_timeout: %w", err)
		}
	}
	if dir := strings.TrimSpace(raw.LogDir); dir != "" {
		cfg.LogDir = mustExpand(dir)
	}
	if level := strings.ToLower(strings.TrimSpace(raw.LogLevel)); level != "" {
		cfg.LogLevel = level
	}

	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Validate reports the first setting that cannot work.
func (c Config) Validate() error {
	switch c.Source {
	case SourceSQLite, SourceHTTP:
	default:
		return fmt.Errorf("invalid source %q: want sqlite or http", c.Source)
	}
	if c.PageSize <= 0 {
		return fmt.Errorf("page_size must be positive, got %d", c.PageSize)
	}
	if c.TotalItems < 0 {
		return fmt.Errorf("total_items must not be negative, got %d", c.TotalItems)
	}
	if c.LoadMoreThreshold < 0 {
		return fmt.Errorf("load_more_threshold must not be negative, got %d", c.LoadMoreThreshold)
	}
	if c.RefreshEvery < 0 || c.LoadTimeout < 0 {
		return fmt.Errorf("durations must not be negative")
	}
	switch c.LogLevel {
	case "debug", "info", "warn", "error":
	default:
		return fmt.Errorf("invalid log_level %q", c.LogLevel)
	}
	return nil
}

// LogPath returns the path of the application log file.
func (c Config) LogPath() string {
	if strings.TrimSpace(c.LogDir) == "" {
		return mustExpand(defaultLogDir + "/" + logFileName)
	}
	return filepath.Join(c.LogDir, logFileName)
}

func resolvePath(path string) (string, error) {
	if strings.TrimSpace(path) == "" {
		return expandPath(defaultConfigPath)
	}
	return expandPath(path)
}

func mustExpand(path string) string {
	expanded, err := expandPath(path)
	if err != nil {
		return path
	}
	return expanded
}

func expandPath(path string) (string, error) {
	trimmed := strings.TrimSpace(path)
	if trimmed == "" {
		return "", fmt.Errorf("path is empty")
	}
	if strings.HasPrefix(trimmed, "~") {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("resolve home dir: %w", err)
		}
		trimmed = filepath.Join(home, strings.TrimPrefix(trimmed, "~"))
	}
	return filepath.Abs(trimmed)
}
