// Package state provides the thread-safe item store shared by the feed
// loader and the TUI.
//
// # Overview
//
// The list view runs loader calls on tea.Cmd goroutines while the Bubble Tea
// loop renders rows. The Store sits between them:
//
//	Loader goroutine:              Update loop:
//	┌────────────────┐            ┌──────────────────┐
//	│ source.Page()  │            │ NumberOfRows()   │
//	│      ↓         │            │ RenderRow(i)     │
//	│ store.Replace()│───────────→│   store.Len()    │
//	│ store.Append() │  (mutex)   │   store.At(i)    │
//	│ store.Fail()   │            │ store.Snapshot() │
//	└────────────────┘            └──────────────────┘
//
// # Update Semantics
//
//	store.Replace(page)   initial load and refresh: page becomes the list
//	store.Append(page)    load-more: page is added at page.Offset
//	store.Fail(err)       items unchanged, error and failure count recorded
//
// A page whose Offset is before the end of the loaded items overwrites the
// overlap, so a load-more racing a catalog change never duplicates rows.
//
// # Defensive Copying
//
// Snapshot clones the item slice and the error. Len and At read under the
// read lock without copying.
//
// The Store is safe to use as a zero value.
package state
