// Package store provides the SQLite catalog repository.
package store

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"time"

	_ "modernc.org/sqlite" // SQLite driver

	"github.com/five82/stateful/internal/catalog"
)

// Ensure SQLite implements catalog.Source at compile time.
var _ catalog.Source = (*SQLite)(nil)

// SQLite implements catalog.Source using SQLite.
type SQLite struct {
	db *sql.DB
}

// New opens the database at path, creating it and its directory if needed,
// and runs migrations.
func New(path string) (*SQLite, error) {
	if path != ":memory:" {
		if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
			return nil, fmt.Errorf("creating database dir: %w", err)
		}
	}

	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("opening database: %w", err)
	}
	if path == ":memory:" {
		// Every connection would get its own empty database.
		db.SetMaxOpenConns(1)
	}

	if err := db.Ping(); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("connecting to database: %w", err)
	}

	s := &SQLite{db: db}
	if err := s.migrate(); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("running migrations: %w", err)
	}

	return s, nil
}

// Close closes the database.
func (s *SQLite) Close() error {
	return s.db.Close()
}

// Page returns limit items ordered by id, starting at offset.
func (s *SQLite) Page(ctx context.Context, offset, limit int) (catalog.Page, error) {
	if err := catalog.ValidatePage(offset, limit); err != nil {
		return catalog.Page{}, err
	}

	total, err := s.Count(ctx)
	if err != nil {
		return catalog.Page{}, err
	}

	query := `
		SELECT id, title, summary, created_at
		FROM items
		ORDER BY id
		LIMIT ? OFFSET ?
	`

	rows, err := s.db.QueryContext(ctx, query, limit, offset)
	if err != nil {
		return catalog.Page{}, fmt.Errorf("querying items: %w", err)
	}
	defer func() { _ = rows.Close() }()

	page := catalog.Page{Offset: offset, Total: total, Items: make([]catalog.Item, 0, limit)}
	for rows.Next() {
		var it catalog.Item
		if err := rows.Scan(&it.ID, &it.Title, &it.Summary, &it.CreatedAt); err != nil {
			return catalog.Page{}, fmt.Errorf("scanning item: %w", err)
		}
		page.Items = append(page.Items, it)
	}
	if err := rows.Err(); err != nil {
		return catalog.Page{}, fmt.Errorf("iterating items: %w", err)
	}

	return page, nil
}

// Status summarizes the catalog.
func (s *SQLite) Status(ctx context.Context) (catalog.Status, error) {
	total, err := s.Count(ctx)
	if err != nil {
		return catalog.Status{}, err
	}

	var updated sql.NullString
	err = s.db.QueryRowContext(ctx, `SELECT MAX(created_at) FROM items`).Scan(&updated)
	if err != nil {
		return catalog.Status{}, fmt.Errorf("querying last update: %w", err)
	}

	return catalog.Status{Source: "sqlite", Total: total, UpdatedAt: updated.String}, nil
}

// Count returns the number of items.
func (s *SQLite) Count(ctx context.Context) (int, error) {
	var n int
	if err := s.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM items`).Scan(&n); err != nil {
		return 0, fmt.Errorf("counting items: %w", err)
	}
	return n, nil
}

// Seed replaces the catalog with n generated items in one transaction.
func (s *SQLite) Seed(ctx context.Context, n int, now time.Time) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("beginning transaction: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	if _, err := tx.ExecContext(ctx, `DELETE FROM items`); err != nil {
		return fmt.Errorf("deleting items: %w", err)
	}

	stmt, err := tx.PrepareContext(ctx, `INSERT INTO items (title, summary, created_at) VALUES (?, ?, ?)`)
	if err != nil {
		return fmt.Errorf("preparing insert: %w", err)
	}
	defer func() { _ = stmt.Close() }()

	for i := range n {
		it := Generate(i, now)
		if _, err := stmt.ExecContext(ctx, it.Title, it.Summary, it.CreatedAt); err != nil {
			return fmt.Errorf("inserting item %d: %w", i+1, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("committing seed: %w", err)
	}
	return nil
}
