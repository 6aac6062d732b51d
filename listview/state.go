package listview

// State is the loading state of a list view. Exactly one state is active at
// any time.
type State int

const (
	Idle State = iota
	InitialLoading
	InitialLoadingWithSurfaceVisible
	EmptyOrInitialLoadError
	RefreshLoading
	LoadMoreLoading
)

// IsLoading reports whether a loader call is in flight.
func (s State) IsLoading() bool {
	switch s {
	case InitialLoading, InitialLoadingWithSurfaceVisible, RefreshLoading, LoadMoreLoading:
		return true
	default:
		return false
	}
}

// IsInitialLoading reports whether the in-flight call is an initial load.
func (s State) IsInitialLoading() bool {
	return s == InitialLoading || s == InitialLoadingWithSurfaceVisible
}

func (s State) String() string {
	switch s {
	case Idle:
		return "idle"
	case InitialLoading:
		return "initial_loading"
	case InitialLoadingWithSurfaceVisible:
		return "initial_loading_surface"
	case EmptyOrInitialLoadError:
		return "empty_or_error"
	case RefreshLoading:
		return "refreshing"
	case LoadMoreLoading:
		return "loading_more"
	default:
		return "unknown"
	}
}

// ViewMode selects what the component draws: the list surface or a
// transient overlay covering it.
type ViewMode int

const (
	Content ViewMode = iota
	Overlay
)

func (v ViewMode) String() string {
	if v == Overlay {
		return "overlay"
	}
	return "content"
}

// overlayModeFor returns the view mode a state forces when a transition asks
// for a view update.
func overlayModeFor(s State) ViewMode {
	switch s {
	case InitialLoading, EmptyOrInitialLoadError:
		return Overlay
	default:
		return Content
	}
}
