// Package listview is a Bubble Tea list component that manages its own
// loading lifecycle.
//
// # Overview
//
// A list view shows rows from a host DataSource and fetches data through a
// host Loader. It handles four loading behaviors:
//
//   - Initial load, covered by a loading overlay or with the list visible
//   - Pull-to-refresh, started by pressing up at the top of the list
//   - Load-more, started automatically near the bottom of the content
//   - Empty/error display, an overlay with an optional retry button
//
// At most one load runs at a time. Requests made while a load is running are
// rejected and report false.
//
// # Architecture
//
//	             ┌──────────────┐
//	 Trigger*() ─→│   dispatch   │──→ Transition(Machine, Event)
//	 key/mouse  ─→│              │          │
//	 done msgs  ─→│              │←── (Machine, Effect, ok)
//	             └──────┬───────┘
//	                    │ apply(Effect)
//	       ┌────────────┼──────────────┐
//	       ↓            ↓              ↓
//	   overlays      footer      tea.Cmd → Loader (goroutine)
//	                                   │
//	                                   └─→ *DoneMsg → Update
//
// Transition is a pure function: it never renders and never calls the
// loader. The Model turns its effects into view changes and commands. Loader
// calls run inside tea.Cmd goroutines and their results come back to Update
// as messages, so every state change happens on the Bubble Tea event loop.
//
// # States
//
//	Idle                              no load running
//	InitialLoading                    overlay shows a spinner
//	InitialLoadingWithSurfaceVisible  list stays visible
//	EmptyOrInitialLoadError           overlay shows empty or error message
//	RefreshLoading                    refresh indicator above the list
//	LoadMoreLoading                   footer spinner below the rows
//
// Entering Idle starts watching for load-more (only if CanLoadMore);
// entering EmptyOrInitialLoadError stops it. A load-more result with
// ShowError parks the footer on the error until the next load-more, which
// the retry key or an explicit TriggerLoadMore starts.
//
// # Stale Results
//
// Each loader call carries the component ID and a sequence number. Update
// drops results from another component or from a call that has since been
// superseded.
//
// # Usage
//
//	lv := listview.New(listview.Options{
//	    Loader:           loader,
//	    DataSource:       rows,
//	    CanPullToRefresh: true,
//	    CanLoadMore:      true,
//	})
//	_, cmd := lv.TriggerInitialLoad(false)
//
// The host forwards messages to Update and calls SetSize on resize.
package listview
