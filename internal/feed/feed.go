// Package feed implements the list view loading protocol on top of a paged
// catalog.Source. It owns the pagination cursor; the list view never sees
// offsets.
package feed

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/five82/stateful/internal/catalog"
	"github.com/five82/stateful/internal/state"
	"github.com/five82/stateful/listview"
)

// Ensure Loader implements listview.Loader at compile time.
var _ listview.Loader = (*Loader)(nil)

// DefaultPageSize is used when New is given a non-positive page size.
const DefaultPageSize = 25

// Loader fetches pages into a state.Store.
type Loader struct {
	source   catalog.Source
	store    *state.Store
	pageSize int
	log      *slog.Logger
}

// New returns a Loader reading pageSize items per call.
func New(source catalog.Source, store *state.Store, pageSize int, logger *slog.Logger) *Loader {
	if pageSize <= 0 {
		pageSize = DefaultPageSize
	}
	if pageSize > catalog.MaxPageLimit {
		pageSize = catalog.MaxPageLimit
	}
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	return &Loader{source: source, store: store, pageSize: pageSize, log: logger}
}

// InitialLoad fetches the first page.
func (l *Loader) InitialLoad(ctx context.Context) listview.LoadResult {
	return l.reload(ctx, "initial load")
}

// Refresh fetches the first page again and drops everything after it.
func (l *Loader) Refresh(ctx context.Context) listview.LoadResult {
	return l.reload(ctx, "refresh")
}

// LoadMore fetches the page after the loaded items. Failures ask the list
// view to show the error in its footer.
func (l *Loader) LoadMore(ctx context.Context) listview.LoadMoreResult {
	snap := l.store.Snapshot()
	if !snap.CanLoadMore() {
		return listview.LoadMoreResult{CanLoadMore: false}
	}

	offset := len(snap.Items)
	page, err := l.source.Page(ctx, offset, l.pageSize)
	if err != nil {
		l.store.Fail(err)
		l.log.Warn("load more failed", "offset", offset, "error", err)
		return listview.LoadMoreResult{
			CanLoadMore: true,
			Err:         fmt.Errorf("load items from %d: %w", offset, err),
			ShowError:   true,
		}
	}

	l.store.Append(page)
	snap = l.store.Snapshot()
	l.log.Debug("page loaded", "offset", offset, "count", len(page.Items), "loaded", len(snap.Items), "total", snap.Total)
	return listview.LoadMoreResult{CanLoadMore: snap.CanLoadMore()}
}

func (l *Loader) reload(ctx context.Context, op string) listview.LoadResult {
	page, err := l.source.Page(ctx, 0, l.pageSize)
	if err != nil {
		l.store.Fail(err)
		l.log.Warn(op+" failed", "error", err)
		return listview.LoadResult{
			Empty: l.store.Len() == 0,
			Err:   fmt.Errorf("%s: %w", op, err),
		}
	}

	l.store.Replace(page)
	l.log.Debug(op+" finished", "count", len(page.Items), "total", page.Total)
	return listview.LoadResult{Empty: len(page.Items) == 0}
}
