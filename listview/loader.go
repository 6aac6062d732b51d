package listview

import "context"

// LoadResult is the outcome of an initial load or a refresh. Empty decides
// which view is shown; Err only supplies the message of the empty/error view.
type LoadResult struct {
	Empty bool
	Err   error
}

// LoadMoreResult is the outcome of a load-more call.
type LoadMoreResult struct {
	CanLoadMore bool
	Err         error
	// ShowError asks the footer to display Err. Without it the error is kept
	// but not shown.
	ShowError bool
}

// Loader supplies data to a list view. Each method is called from a
// goroutine, returns exactly once, and must not touch the Model.
type Loader interface {
	InitialLoad(ctx context.Context) LoadResult
	Refresh(ctx context.Context) LoadResult
	LoadMore(ctx context.Context) LoadMoreResult
}

// LoaderFuncs adapts plain functions to Loader. A nil function reports an
// empty result (or no more data for LoadMore).
type LoaderFuncs struct {
	InitialLoadFunc func(ctx context.Context) LoadResult
	RefreshFunc     func(ctx context.Context) LoadResult
	LoadMoreFunc    func(ctx context.Context) LoadMoreResult
}

var _ Loader = LoaderFuncs{}

func (f LoaderFuncs) InitialLoad(ctx context.Context) LoadResult {
	if f.InitialLoadFunc == nil {
		return LoadResult{Empty: true}
	}
	return f.InitialLoadFunc(ctx)
}

func (f LoaderFuncs) Refresh(ctx context.Context) LoadResult {
	if f.RefreshFunc == nil {
		return LoadResult{Empty: true}
	}
	return f.RefreshFunc(ctx)
}

func (f LoaderFuncs) LoadMore(ctx context.Context) LoadMoreResult {
	if f.LoadMoreFunc == nil {
		return LoadMoreResult{}
	}
	return f.LoadMoreFunc(ctx)
}

// ViewHooks lets the host replace the transient views. Each hook receives
// the default view; returning nil (or leaving the hook unset) keeps it.
// LoadMoreError only runs while the footer shows an error.
type ViewHooks struct {
	InitialLoad      func(def View) View
	InitialLoadError func(err error, def *ErrorPanel) View
	LoadMoreError    func(err error, def *FooterView) View
}
