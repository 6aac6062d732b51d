package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"
)

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.toml")
	if err := os.WriteFile(path, []byte(body), 0o600); err != nil {
		t.Fatalf("WriteFile: %v", err)
	}
	return path
}

func TestLoad_MissingConfigFallsBackToDefaults(t *testing.T) {
	home := t.TempDir()
	t.Setenv("HOME", home)

	cfg, err := Load(filepath.Join(home, "does-not-exist.toml"))
	if err != nil {
		t.Fatalf("Load returned error: %v", err)
	}
	if cfg.APIBind != defaultAPIBind {
		t.Fatalf("APIBind = %q, want %q", cfg.APIBind, defaultAPIBind)
	}
	if cfg.Source != SourceSQLite || cfg.PageSize != defaultPageSize || !cfg.PullToRefresh {
		t.Fatalf("defaults = %+v", cfg)
	}

	wantLogDir, err := expandPath(defaultLogDir)
	if err != nil {
		t.Fatalf("expandPath(defaultLogDir) returned error: %v", err)
	}
	if cfg.LogDir != wantLogDir {
		t.Fatalf("LogDir = %q, want %q", cfg.LogDir, wantLogDir)
	}
	if !strings.HasPrefix(cfg.DBPath, home) {
		t.Fatalf("DBPath = %q, want it under HOME %q", cfg.DBPath, home)
	}
}

func TestLoad_ParsesAndTrimsConfig(t *testing.T) {
	home := t.TempDir()
	t.Setenv("HOME", home)

	path := writeConfig(t, `
source = " HTTP "
api_bind = "  10.0.0.5:9999  "
db_path = " ~/data/items.db "
log_dir = "  ~/.stateful/logs  "
page_size = 10
total_items = 55
load_more_threshold = 0
pull_to_refresh = false
item_noun = " songs "
show_list_while_loading = true
refresh_every = "45s"
load_timeout = "2s"
log_level = "DEBUG"
`)

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load returned error: %v", err)
	}
	if cfg.Source != SourceHTTP {
		t.Fatalf("Source = %q, want http", cfg.Source)
	}
	if cfg.APIBind != "10.0.0.5:9999" {
		t.Fatalf("APIBind = %q, want %q", cfg.APIBind, "10.0.0.5:9999")
	}
	if cfg.DBPath != filepath.Join(home, "data/items.db") {
		t.Fatalf("DBPath = %q", cfg.DBPath)
	}
	if !strings.HasPrefix(cfg.LogDir, home) {
		t.Fatalf("LogDir = %q, want it under HOME %q", cfg.LogDir, home)
	}
	if cfg.PageSize != 10 || cfg.TotalItems != 55 {
		t.Fatalf("PageSize=%d TotalItems=%d", cfg.PageSize, cfg.TotalItems)
	}
	if cfg.LoadMoreThreshold != 0 {
		t.Fatalf("LoadMoreThreshold = %d, want explicit 0", cfg.LoadMoreThreshold)
	}
	if cfg.PullToRefresh || !cfg.ShowListWhileLoading {
		t.Fatalf("PullToRefresh=%v ShowListWhileLoading=%v", cfg.PullToRefresh, cfg.ShowListWhileLoading)
	}
	if cfg.ItemNoun != "songs" {
		t.Fatalf("ItemNoun = %q, want songs", cfg.ItemNoun)
	}
	if cfg.RefreshEvery != 45*time.Second || cfg.LoadTimeout != 2*time.Second {
		t.Fatalf("RefreshEvery=%v LoadTimeout=%v", cfg.RefreshEvery, cfg.LoadTimeout)
	}
	if cfg.LogLevel != "debug" {
		t.Fatalf("LogLevel = %q, want debug", cfg.LogLevel)
	}
}

func TestLoad_EmptyValuesUseDefaults(t *testing.T) {
	t.Setenv("HOME", t.TempDir())

	cfg, err := Load(writeConfig(t, `
api_bind = "   "
log_dir = ""
item_noun = "  "
`))
	if err != nil {
		t.Fatalf("Load returned error: %v", err)
	}
	if cfg.APIBind != defaultAPIBind {
		t.Fatalf("APIBind = %q, want %q", cfg.APIBind, defaultAPIBind)
	}
	if cfg.ItemNoun != defaultItemNoun {
		t.Fatalf("ItemNoun = %q, want %q", cfg.ItemNoun, defaultItemNoun)
	}
	if cfg.LoadMoreThreshold != defaultLoadMoreThreshold {
		t.Fatalf("LoadMoreThreshold = %d, want %d", cfg.LoadMoreThreshold, defaultLoadMoreThreshold)
	}
	wantLogDir, err := expandPath(defaultLogDir)
	if err != nil {
		t.Fatalf("expandPath(defaultLogDir) returned error: %v", err)
	}
	if cfg.LogDir != wantLogDir {
		t.Fatalf("LogDir = %q, want %q", cfg.LogDir, wantLogDir)
	}
}

func TestLoad_InvalidTOMLFails(t *testing.T) {
	_, err := Load(writeConfig(t, `api_bind = [`))
	if err == nil {
		t.Fatalf("Load returned nil error, want parse error")
	}
	if !strings.Contains(err.Error(), "parse config") {
		t.Fatalf("Load error = %q, want it to mention parse config", err.Error())
	}
}

func TestLoad_RejectsInvalidValues(t *testing.T) {
	cases := []struct {
		name string
		body string
		want string
	}{
		{"source", `source = "ftp"`, "invalid source"},
		{"page_size", `page_size = -1`, "page_size"},
		{"threshold", `load_more_threshold = -3`, "load_more_threshold"},
		{"duration", `refresh_every = "soon"`, "refresh_every"},
		{"log_level", `log_level = "loud"`, "log_level"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			t.Setenv("HOME", t.TempDir())
			_, err := Load(writeConfig(t, tc.body))
			if err == nil {
				t.Fatalf("Load returned nil error, want %q", tc.want)
			}
			if !strings.Contains(err.Error(), tc.want) {
				t.Fatalf("Load error = %q, want it to mention %q", err.Error(), tc.want)
			}
		})
	}
}

func TestExpandPath_ExpandsTildeAndReturnsAbs(t *testing.T) {
	home := t.TempDir()
	t.Setenv("HOME", home)

	got, err := expandPath("~/a/b")
	if err != nil {
		t.Fatalf("expandPath returned error: %v", err)
	}
	want := filepath.Join(home, "a/b")
	if got != want {
		t.Fatalf("expandPath = %q, want %q", got, want)
	}
}

func TestExpandPath_EmptyErrors(t *testing.T) {
	if _, err := expandPath("   "); err == nil {
		t.Fatalf("expandPath returned nil error, want error")
	}
}

func TestLogPath_DefaultsWhenLogDirEmpty(t *testing.T) {
	home := t.TempDir()
	t.Setenv("HOME", home)

	var cfg Config
	got := cfg.LogPath()
	if !strings.HasPrefix(got, home) {
		t.Fatalf("LogPath = %q, want it under HOME %q", got, home)
	}
	if !strings.HasSuffix(got, filepath.FromSlash("/stateful.log")) {
		t.Fatalf("LogPath = %q, want it to end with /stateful.log", got)
	}
}
