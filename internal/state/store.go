package state

import (
	"fmt"
	"sync"
	"time"

	"github.com/five82/stateful/internal/catalog"
)

// Snapshot represents the items loaded so far.
type Snapshot struct {
	Items               []catalog.Item
	Total               int
	LastUpdated         time.Time
	LastError           error
	ConsecutiveFailures int // Number of consecutive failed loads
}

// IsOffline returns true when the source has failed several loads in a row.
func (s Snapshot) IsOffline() bool {
	return s.ConsecutiveFailures >= 2
}

// CanLoadMore reports whether the source holds items not loaded yet.
func (s Snapshot) CanLoadMore() bool {
	return len(s.Items) < s.Total
}

// Store coordinates the loader goroutines that write pages with the renderer
// that reads rows.
type Store struct {
	mu       sync.RWMutex
	snapshot Snapshot
}

// Replace discards the loaded items and keeps page as the first page.
func (s *Store) Replace(page catalog.Page) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.snapshot.Items = cloneItems(page.Items)
	s.succeeded(page.Total)
}

// Append adds page after the items loaded so far. A page starting before
// the end overwrites the overlapping tail.
func (s *Store) Append(page catalog.Page) {
	s.mu.Lock()
	defer s.mu.Unlock()

	keep := min(max(page.Offset, 0), len(s.snapshot.Items))
	items := make([]catalog.Item, 0, keep+len(page.Items))
	items = append(items, s.snapshot.Items[:keep]...)
	items = append(items, page.Items...)
	s.snapshot.Items = items
	s.succeeded(page.Total)
}

// Fail records err and keeps the loaded items.
func (s *Store) Fail(err error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.snapshot.LastError = err
	s.snapshot.LastUpdated = time.Now()
	s.snapshot.ConsecutiveFailures++
}

func (s *Store) succeeded(total int) {
	s.snapshot.Total = max(total, len(s.snapshot.Items))
	s.snapshot.LastError = nil
	s.snapshot.LastUpdated = time.Now()
	s.snapshot.ConsecutiveFailures = 0
}

// Len returns the number of loaded items.
func (s *Store) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.snapshot.Items)
}

// At returns the item at index i.
func (s *Store) At(i int) (catalog.Item, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if i < 0 || i >= len(s.snapshot.Items) {
		return catalog.Item{}, false
	}
	return s.snapshot.Items[i], true
}

// Snapshot returns a copy of the current snapshot.
func (s *Store) Snapshot() Snapshot {
	s.mu.RLock()
	defer s.mu.RUnlock()

	snap := s.snapshot
	snap.Items = cloneItems(s.snapshot.Items)
	if s.snapshot.LastError != nil {
		snap.LastError = fmt.Errorf("%w", s.snapshot.LastError)
	}
	return snap
}

func cloneItems(items []catalog.Item) []catalog.Item {
	if len(items) == 0 {
		return nil
	}
	dup := make([]catalog.Item, len(items))
	copy(dup, items)
	return dup
}
