package catalog

import (
	"context"
	"errors"
	"fmt"
	"time"
)

const timestampLayout = "2006-01-02 15:04:05"

// MaxPageLimit caps the number of items a single page request may ask for.
const MaxPageLimit = 100

// ErrInvalidPage reports an offset or limit outside the accepted range.
var ErrInvalidPage = errors.New("invalid page request")

// Item is one catalog entry.
type Item struct {
	ID        int64  `json:"id"`
	Title     string `json:"title"`
	Summary   string `json:"summary"`
	CreatedAt string `json:"created_at"`
}

// ParsedCreatedAt returns the parsed CreatedAt timestamp.
func (i Item) ParsedCreatedAt() time.Time {
	return parseTime(i.CreatedAt)
}

// Page is a window of the catalog starting at Offset.
type Page struct {
	Items  []Item `json:"items"`
	Offset int    `json:"offset"`
	Total  int    `json:"total"`
}

// Next is the offset of the item after this page.
func (p Page) Next() int {
	return p.Offset + len(p.Items)
}

// HasMore reports whether items remain after this page.
func (p Page) HasMore() bool {
	return p.Next() < p.Total
}

// Status mirrors the payload returned by /api/status.
type Status struct {
	Source    string `json:"source"`
	Total     int    `json:"total"`
	UpdatedAt string `json:"updated_at"`
}

// ParsedUpdatedAt returns the parsed UpdatedAt timestamp.
func (s Status) ParsedUpdatedAt() time.Time {
	return parseTime(s.UpdatedAt)
}

// Source reads the catalog one page at a time.
type Source interface {
	Page(ctx context.Context, offset, limit int) (Page, error)
	Status(ctx context.Context) (Status, error)
}

// ValidatePage checks an offset/limit pair.
func ValidatePage(offset, limit int) error {
	if offset < 0 {
		return fmt.Errorf("%w: offset %d is negative", ErrInvalidPage, offset)
	}
	if limit <= 0 || limit > MaxPageLimit {
		return fmt.Errorf("%w: limit %d outside 1..%d", ErrInvalidPage, limit, MaxPageLimit)
	}
	return nil
}

// FormatTime renders t the way the catalog stores timestamps.
func FormatTime(t time.Time) string {
	return t.UTC().Format(time.RFC3339)
}

func parseTime(value string) time.Time {
	if value == "" {
		return time.Time{}
	}
	for _, layout := range []string{time.RFC3339Nano, time.RFC3339} {
		if t, err := time.Parse(layout, value); err == nil {
			return t
		}
	}
	if t, err := time.ParseInLocation(timestampLayout, value, time.Local); err == nil {
		return t
	}
	return time.Time{}
}
