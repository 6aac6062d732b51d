package app

import (
	"context"
	"net"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/five82/stateful/internal/catalog"
	"github.com/five82/stateful/internal/config"
	"github.com/five82/stateful/internal/logging"
	"github.com/five82/stateful/internal/server"
	"github.com/five82/stateful/internal/store"
)

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.toml")
	if err := os.WriteFile(path, []byte(body), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}
	return path
}

func TestLoadConfig_DebugOverridesLevel(t *testing.T) {
	path := writeConfig(t, "log_level = \"warn\"\n")

	cfg, err := LoadConfig(Options{ConfigPath: path})
	if err != nil {
		t.Fatalf("LoadConfig: %v", err)
	}
	if cfg.LogLevel != "warn" {
		t.Fatalf("LogLevel = %q, want warn", cfg.LogLevel)
	}

	cfg, err = LoadConfig(Options{ConfigPath: path, Debug: true})
	if err != nil {
		t.Fatalf("LoadConfig: %v", err)
	}
	if cfg.LogLevel != "debug" {
		t.Fatalf("LogLevel = %q, want debug", cfg.LogLevel)
	}
}

func TestOpenSource_SeedsEmptySQLiteCatalog(t *testing.T) {
	cfg := config.Default()
	cfg.DBPath = filepath.Join(t.TempDir(), "catalog.db")
	cfg.TotalItems = 42

	source, closer, err := OpenSource(context.Background(), cfg, logging.Discard())
	if err != nil {
		t.Fatalf("OpenSource: %v", err)
	}
	t.Cleanup(func() { _ = closer.Close() })

	page, err := source.Page(context.Background(), 40, 10)
	if err != nil {
		t.Fatalf("Page: %v", err)
	}
	if page.Total != 42 || len(page.Items) != 2 {
		t.Fatalf("page = total %d len %d, want 42 and 2", page.Total, len(page.Items))
	}
}

func TestOpenStore_KeepsExistingItems(t *testing.T) {
	cfg := config.Default()
	cfg.DBPath = filepath.Join(t.TempDir(), "catalog.db")
	cfg.TotalItems = 5

	repo, err := store.New(cfg.DBPath)
	if err != nil {
		t.Fatalf("store.New: %v", err)
	}
	if err := repo.Seed(context.Background(), 3, time.Now()); err != nil {
		t.Fatalf("Seed: %v", err)
	}
	_ = repo.Close()

	repo, err = OpenStore(context.Background(), cfg, logging.Discard())
	if err != nil {
		t.Fatalf("OpenStore: %v", err)
	}
	defer repo.Close()
	if n, _ := repo.Count(context.Background()); n != 3 {
		t.Fatalf("Count() = %d, want existing 3 items", n)
	}
}

func TestOpenSource_HTTP(t *testing.T) {
	repo, err := store.New(":memory:")
	if err != nil {
		t.Fatalf("store.New: %v", err)
	}
	defer repo.Close()
	if err := repo.Seed(context.Background(), 7, time.Now()); err != nil {
		t.Fatalf("Seed: %v", err)
	}

	ln, err := net.Listen("tcp", "127.0.0.1:0")
	if err != nil {
		t.Fatalf("listen: %v", err)
	}
	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- server.ServeListener(ctx, ln, repo, logging.Discard()) }()
	defer func() {
		cancel()
		<-done
	}()

	cfg := config.Default()
	cfg.Source = config.SourceHTTP
	cfg.APIBind = ln.Addr().String()

	source, closer, err := OpenSource(ctx, cfg, logging.Discard())
	if err != nil {
		t.Fatalf("OpenSource: %v", err)
	}
	defer closer.Close()

	if _, ok := source.(*catalog.Client); !ok {
		t.Fatalf("source = %T, want *catalog.Client", source)
	}
	page, err := source.Page(ctx, 0, 5)
	if err != nil {
		t.Fatalf("Page: %v", err)
	}
	if page.Total != 7 || len(page.Items) != 5 {
		t.Fatalf("page = total %d len %d", page.Total, len(page.Items))
	}
}

func TestOpenSource_UnknownSource(t *testing.T) {
	cfg := config.Default()
	cfg.Source = "ftp"
	if _, _, err := OpenSource(context.Background(), cfg, logging.Discard()); err == nil {
		t.Fatal("expected error for unknown source")
	}
}

func TestSeed_ReplacesCatalog(t *testing.T) {
	dbPath := filepath.Join(t.TempDir(), "catalog.db")
	path := writeConfig(t, "db_path = \""+filepath.ToSlash(dbPath)+"\"\n")

	if err := Seed(context.Background(), Options{ConfigPath: path}, 9); err != nil {
		t.Fatalf("Seed: %v", err)
	}
	repo, err := store.New(dbPath)
	if err != nil {
		t.Fatalf("store.New: %v", err)
	}
	defer repo.Close()
	if n, _ := repo.Count(context.Background()); n != 9 {
		t.Fatalf("Count() = %d, want 9", n)
	}
}
