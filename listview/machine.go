package listview

// Effect is a set of side effects a transition asks the dispatcher to carry
// out. The machine itself never renders or calls loaders.
type Effect uint16

const (
	StartInitialLoad Effect = 1 << iota
	StartRefresh
	StartLoadMore
	BeginRefreshing
	EndRefreshing
	ShowLoadingOverlay
	ShowEmptyOverlay
	RebuildFooter
	CheckScroll
)

// Has reports whether every effect in f is set.
func (e Effect) Has(f Effect) bool {
	return e&f == f
}

// Event is an input to Transition.
type Event interface {
	event()
}

// InitialLoadRequested asks for an initial load. ShowSurface keeps the list
// visible instead of covering it with the loading overlay.
type InitialLoadRequested struct {
	ShowSurface bool
}

// RefreshRequested asks for a pull-to-refresh load.
type RefreshRequested struct{}

// LoadMoreRequested asks for the next page.
type LoadMoreRequested struct{}

// ScrollChanged reports a new scroll position of the list surface.
type ScrollChanged struct {
	Metrics Metrics
}

// InitialLoadFinished carries the initial loader's result.
type InitialLoadFinished struct {
	Empty bool
	Err   error
}

// RefreshFinished carries the refresh loader's result.
type RefreshFinished struct {
	Empty bool
	Err   error
}

// LoadMoreFinished carries the load-more loader's result.
type LoadMoreFinished struct {
	CanLoadMore bool
	Err         error
	ShowError   bool
}

func (InitialLoadRequested) event() {}
func (RefreshRequested) event()     {}
func (LoadMoreRequested) event()    {}
func (ScrollChanged) event()        {}
func (InitialLoadFinished) event()  {}
func (RefreshFinished) event()      {}
func (LoadMoreFinished) event()     {}

// Machine is the control core of a list view: the loading state, the view
// mode and the load-more bookkeeping. The zero value is not ready for use;
// call NewMachine.
type Machine struct {
	state    State
	viewMode ViewMode

	canPullToRefresh bool
	canLoadMore      bool
	threshold        int

	watching        bool
	footerError     bool
	lastLoadMoreErr error
	overlayErr      error
}

// NewMachine returns an idle machine showing content.
func NewMachine(canPullToRefresh, canLoadMore bool, threshold int) Machine {
	return Machine{
		state:            Idle,
		viewMode:         Content,
		canPullToRefresh: canPullToRefresh,
		canLoadMore:      canLoadMore,
		threshold:        threshold,
	}
}

func (m Machine) State() State                { return m.state }
func (m Machine) ViewMode() ViewMode          { return m.viewMode }
func (m Machine) CanPullToRefresh() bool      { return m.canPullToRefresh }
func (m Machine) CanLoadMore() bool           { return m.canLoadMore }
func (m Machine) Threshold() int              { return m.threshold }
func (m Machine) IsWatchingForLoadMore() bool { return m.watching }
func (m Machine) IsFooterShowingError() bool  { return m.footerError }
func (m Machine) LastLoadMoreError() error    { return m.lastLoadMoreErr }

// OverlayError is the error shown by the empty/error overlay, if any.
func (m Machine) OverlayError() error { return m.overlayErr }

// FooterVisible reports whether the footer has content. When false the
// footer is an empty placeholder.
func (m Machine) FooterVisible() bool {
	return m.watching || m.lastLoadMoreErr != nil
}

// FooterError is the error the footer displays, or nil for the spinner.
func (m Machine) FooterError() error {
	if m.footerError {
		return m.lastLoadMoreErr
	}
	return nil
}

func (m Machine) WithCanPullToRefresh(v bool) Machine {
	m.canPullToRefresh = v
	return m
}

func (m Machine) WithCanLoadMore(v bool) Machine {
	m.canLoadMore = v
	return m
}

func (m Machine) WithThreshold(v int) Machine {
	m.threshold = v
	return m
}

// Transition applies ev to m. It returns the next machine, the effects to
// carry out and whether the event was accepted. A rejected event leaves the
// machine unchanged and returns no effects.
func Transition(m Machine, ev Event) (Machine, Effect, bool) {
	switch ev := ev.(type) {
	case InitialLoadRequested:
		if m.state.IsLoading() {
			return m, 0, false
		}
		next := InitialLoading
		if ev.ShowSurface {
			next = InitialLoadingWithSurfaceVisible
		}
		m, eff := m.enter(next, true, nil)
		return m, eff | StartInitialLoad, true

	case RefreshRequested:
		if m.state.IsLoading() || !m.canPullToRefresh {
			return m, 0, false
		}
		m, eff := m.enter(RefreshLoading, false, nil)
		return m, eff | BeginRefreshing | StartRefresh, true

	case LoadMoreRequested:
		return m.loadMore()

	case ScrollChanged:
		if !m.watching || m.footerError {
			return m, 0, false
		}
		metrics := ev.Metrics
		if !ShouldTrigger(metrics.Offset, metrics.ViewportHeight, metrics.ContentHeight, m.threshold) {
			return m, 0, false
		}
		return m.loadMore()

	case InitialLoadFinished:
		if !m.state.IsInitialLoading() {
			return m, 0, false
		}
		m, eff := m.finishLoad(ev.Empty, ev.Err)
		return m, eff, true

	case RefreshFinished:
		if m.state != RefreshLoading {
			return m, 0, false
		}
		m, eff := m.finishLoad(ev.Empty, ev.Err)
		return m, eff | EndRefreshing, true

	case LoadMoreFinished:
		if m.state != LoadMoreLoading {
			return m, 0, false
		}
		m.canLoadMore = ev.CanLoadMore
		m.footerError = ev.Err != nil && ev.ShowError
		m.lastLoadMoreErr = ev.Err
		m, eff := m.enter(Idle, true, nil)
		return m, eff | RebuildFooter, true
	}
	return m, 0, false
}

func (m Machine) loadMore() (Machine, Effect, bool) {
	if m.state.IsLoading() {
		return m, 0, false
	}
	m.footerError = false
	m.lastLoadMoreErr = nil
	m, eff := m.enter(LoadMoreLoading, true, nil)
	return m, eff | RebuildFooter | StartLoadMore, true
}

func (m Machine) finishLoad(empty bool, err error) (Machine, Effect) {
	if empty {
		return m.enter(EmptyOrInitialLoadError, true, err)
	}
	return m.enter(Idle, true, nil)
}

// enter is the single state setter.
func (m Machine) enter(next State, updateView bool, err error) (Machine, Effect) {
	var eff Effect
	m.state = next

	switch next {
	case InitialLoading:
		eff |= ShowLoadingOverlay
	case EmptyOrInitialLoadError:
		m.overlayErr = err
		eff |= ShowEmptyOverlay
	}

	switch next {
	case Idle:
		m.overlayErr = nil
		m, eff = m.watch(true, eff)
	case EmptyOrInitialLoadError:
		m, eff = m.watch(false, eff)
	}

	if updateView {
		m.viewMode = overlayModeFor(next)
	}
	return m, eff
}

// watch gates load-more watching on canLoadMore.
func (m Machine) watch(want bool, eff Effect) (Machine, Effect) {
	if want && !m.canLoadMore {
		want = false
	}
	m.watching = want
	return m, eff | RebuildFooter | CheckScroll
}
