package listview

import (
	"context"
	"log/slog"
	"strings"
	"sync/atomic"
	"time"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
)

// Options configure a list view.
type Options struct {
	Context    context.Context
	Loader     Loader
	DataSource DataSource
	Hooks      ViewHooks

	CanPullToRefresh  bool
	CanLoadMore       bool
	LoadMoreThreshold int // zero uses DefaultLoadMoreThreshold
	ItemNoun          string

	// LoadTimeout bounds each loader call; zero means no deadline.
	LoadTimeout time.Duration

	Styles *Styles
	KeyMap *KeyMap
	Logger *slog.Logger
}

var lastID int64

func nextID() int {
	return int(atomic.AddInt64(&lastID, 1))
}

// Model is a Bubble Tea list view with initial load, pull-to-refresh,
// load-more and empty/error display. All state changes go through the
// Machine; Update is the only place loader results are applied.
type Model struct {
	id  int
	seq int

	ctx         context.Context
	loader      Loader
	hooks       ViewHooks
	itemNoun    string
	loadTimeout time.Duration
	styles      Styles
	keys        KeyMap
	log         *slog.Logger

	machine Machine
	surface Surface
	spinner spinner.Model

	refreshing   bool
	overlay      View
	overlayRetry bool

	width  int
	height int
}

// New creates an idle list view.
func New(opts Options) Model {
	ctx := opts.Context
	if ctx == nil {
		ctx = context.Background()
	}
	loader := opts.Loader
	if loader == nil {
		loader = LoaderFuncs{}
	}
	threshold := opts.LoadMoreThreshold
	if threshold == 0 {
		threshold = DefaultLoadMoreThreshold
	}
	styles := DefaultStyles()
	if opts.Styles != nil {
		styles = *opts.Styles
	}
	keys := DefaultKeyMap()
	if opts.KeyMap != nil {
		keys = *opts.KeyMap
	}
	logger := opts.Logger
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}

	sp := spinner.New(spinner.WithSpinner(spinner.Dot), spinner.WithStyle(styles.Spinner))

	m := Model{
		id:          nextID(),
		ctx:         ctx,
		loader:      loader,
		hooks:       opts.Hooks,
		itemNoun:    opts.ItemNoun,
		loadTimeout: opts.LoadTimeout,
		styles:      styles,
		keys:        keys,
		log:         logger,
		machine:     NewMachine(opts.CanPullToRefresh, opts.CanLoadMore, threshold),
		surface:     NewSurface(opts.DataSource),
		spinner:     sp,
	}
	m.surface.SetFrame(m.spinner.View())
	return m
}

// ID is the unique identifier of this list view.
func (m Model) ID() int { return m.id }

func (m Model) State() State                { return m.machine.State() }
func (m Model) ViewMode() ViewMode          { return m.machine.ViewMode() }
func (m Model) Machine() Machine            { return m.machine }
func (m Model) IsWatchingForLoadMore() bool { return m.machine.IsWatchingForLoadMore() }
func (m Model) IsFooterShowingError() bool  { return m.machine.IsFooterShowingError() }
func (m Model) LastLoadMoreError() error    { return m.machine.LastLoadMoreError() }
func (m Model) IsRefreshing() bool          { return m.refreshing }
func (m Model) CanPullToRefresh() bool      { return m.machine.CanPullToRefresh() }
func (m Model) CanLoadMore() bool           { return m.machine.CanLoadMore() }
func (m Model) LoadMoreThreshold() int      { return m.machine.Threshold() }
func (m Model) KeyMap() KeyMap              { return m.keys }

// Overlay is the transient view drawn in Overlay mode.
func (m Model) Overlay() View { return m.overlay }

// CanRetry reports whether the empty/error overlay offers a retry.
func (m Model) CanRetry() bool {
	return m.machine.State() == EmptyOrInitialLoadError && m.overlayRetry
}

// Surface gives the host access to the list surface.
func (m *Model) Surface() *Surface { return &m.surface }

func (m *Model) SetCanPullToRefresh(v bool) {
	m.machine = m.machine.WithCanPullToRefresh(v)
}

func (m *Model) SetCanLoadMore(v bool) {
	m.machine = m.machine.WithCanLoadMore(v)
}

func (m *Model) SetLoadMoreThreshold(v int) {
	m.machine = m.machine.WithThreshold(v)
}

func (m *Model) SetItemNoun(noun string) { m.itemNoun = noun }

func (m *Model) SetLoader(l Loader) {
	if l == nil {
		l = LoaderFuncs{}
	}
	m.loader = l
}

func (m *Model) SetHooks(h ViewHooks) { m.hooks = h }

// SetStyles restyles the default views, including the one on screen.
func (m *Model) SetStyles(s Styles) {
	m.styles = s
	m.spinner.Style = s.Spinner
	switch m.machine.State() {
	case InitialLoading:
		if m.machine.ViewMode() == Overlay {
			m.overlay = m.loadingOverlay()
		}
	case EmptyOrInitialLoadError:
		m.overlay = m.emptyOverlay(m.machine.OverlayError())
	}
	m.rebuildFooter()
}

func (m *Model) SetDataSource(ds DataSource) { m.surface.SetDataSource(ds) }

// SetSize resizes the component. The scroll position is re-checked since a
// taller viewport may cross the load-more threshold.
func (m *Model) SetSize(width, height int) tea.Cmd {
	m.width, m.height = width, height
	m.syncSurfaceSize()
	return m.checkScroll()
}

// TriggerInitialLoad starts an initial load unless one is already running.
// With showSurface the list stays visible instead of the loading overlay.
func (m *Model) TriggerInitialLoad(showSurface bool) (bool, tea.Cmd) {
	return m.dispatch(InitialLoadRequested{ShowSurface: showSurface})
}

// TriggerPullToRefresh starts a refresh unless a load is running or
// pull-to-refresh is disabled.
func (m *Model) TriggerPullToRefresh() (bool, tea.Cmd) {
	ok, cmd := m.dispatch(RefreshRequested{})
	if !ok && m.refreshing {
		m.endRefreshing()
	}
	return ok, cmd
}

// TriggerLoadMore loads the next page unless a load is running.
func (m *Model) TriggerLoadMore() tea.Cmd {
	_, cmd := m.dispatch(LoadMoreRequested{})
	return cmd
}

// NotifyScrollPositionChanged checks the load-more threshold for the given
// scroll position.
func (m *Model) NotifyScrollPositionChanged(offsetY, viewportHeight, contentHeight int) tea.Cmd {
	_, cmd := m.dispatch(ScrollChanged{Metrics: Metrics{
		Offset:         offsetY,
		ViewportHeight: viewportHeight,
		ContentHeight:  contentHeight,
	}})
	return cmd
}

// Messages

type initialLoadDoneMsg struct {
	id, seq int
	result  LoadResult
}

type refreshDoneMsg struct {
	id, seq int
	result  LoadResult
}

type loadMoreDoneMsg struct {
	id, seq int
	result  LoadMoreResult
}

// Init implements tea.Model. The host triggers the initial load.
func (m Model) Init() tea.Cmd {
	return nil
}

// Update handles loader results, spinner ticks and input.
func (m Model) Update(msg tea.Msg) (Model, tea.Cmd) {
	switch msg := msg.(type) {
	case initialLoadDoneMsg:
		if !m.current(msg.id, msg.seq) {
			return m, nil
		}
		m.warnDiscardedError("initial load", msg.result)
		m.surface.ReloadData()
		_, cmd := m.dispatch(InitialLoadFinished{Empty: msg.result.Empty, Err: msg.result.Err})
		return m, cmd

	case refreshDoneMsg:
		if !m.current(msg.id, msg.seq) {
			return m, nil
		}
		m.warnDiscardedError("refresh", msg.result)
		m.surface.ReloadData()
		_, cmd := m.dispatch(RefreshFinished{Empty: msg.result.Empty, Err: msg.result.Err})
		return m, cmd

	case loadMoreDoneMsg:
		if !m.current(msg.id, msg.seq) {
			return m, nil
		}
		if msg.result.Err != nil {
			m.log.Warn("load more failed", "error", msg.result.Err, "show_error", msg.result.ShowError)
		}
		m.surface.ReloadData()
		_, cmd := m.dispatch(LoadMoreFinished{
			CanLoadMore: msg.result.CanLoadMore,
			Err:         msg.result.Err,
			ShowError:   msg.result.ShowError,
		})
		return m, cmd

	case spinner.TickMsg:
		if msg.ID != m.spinner.ID() || !m.needsSpinner() {
			return m, nil
		}
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		m.surface.SetFrame(m.spinner.View())
		return m, cmd

	case tea.KeyMsg:
		return m.handleKey(msg)

	case tea.MouseMsg:
		return m.handleMouse(msg)
	}
	return m, nil
}

// View renders the overlay in Overlay mode, otherwise the refresh indicator
// and the list surface.
func (m Model) View() string {
	if m.width <= 0 || m.height <= 0 {
		return ""
	}
	if m.machine.ViewMode() == Overlay {
		if m.overlay == nil {
			return Pin("", m.width, m.height)
		}
		f := Frame{Width: m.width, Height: m.height, Spinner: m.spinner.View()}
		return Pin(m.overlay.Render(f), m.width, m.height)
	}
	var b strings.Builder
	if m.refreshing {
		line := m.styles.Spinner.Render(m.spinner.View()) + " " + m.styles.Refresh.Render(refreshingMessage)
		b.WriteString(Center(line, m.width, 1))
		if m.height > 1 {
			b.WriteString("\n")
		}
	}
	b.WriteString(m.surface.View())
	return b.String()
}

func (m Model) handleKey(msg tea.KeyMsg) (Model, tea.Cmd) {
	if key.Matches(msg, m.keys.Retry) {
		return m, m.retry()
	}
	// The refresh indicator lives above the list, which the overlay hides.
	if m.machine.ViewMode() == Overlay {
		return m, nil
	}
	if key.Matches(msg, m.keys.Refresh) {
		return m, m.pull()
	}

	page := max(1, m.surface.ViewportHeight())
	switch {
	case key.Matches(msg, m.keys.Up):
		if m.atTop() {
			return m, m.pull()
		}
		m.surface.MoveSelection(-1)
	case key.Matches(msg, m.keys.Down):
		m.surface.MoveSelection(1)
	case key.Matches(msg, m.keys.PageUp):
		m.surface.MoveSelection(-page)
	case key.Matches(msg, m.keys.PageDown):
		m.surface.MoveSelection(page)
	case key.Matches(msg, m.keys.HalfPageUp):
		m.surface.MoveSelection(-max(1, page/2))
	case key.Matches(msg, m.keys.HalfPageDown):
		m.surface.MoveSelection(max(1, page/2))
	case key.Matches(msg, m.keys.Top):
		m.surface.SelectRow(0, ScrollTop)
		m.surface.SetContentOffset(0)
	case key.Matches(msg, m.keys.Bottom):
		if n := m.surface.NumberOfRows(); n > 0 {
			m.surface.SelectRow(n-1, ScrollBottom)
		}
		m.surface.SetContentOffset(m.surface.ContentHeight())
	default:
		return m, nil
	}
	return m, m.checkScroll()
}

func (m Model) handleMouse(msg tea.MouseMsg) (Model, tea.Cmd) {
	if m.machine.ViewMode() == Overlay || msg.Action != tea.MouseActionPress {
		return m, nil
	}
	switch msg.Button {
	case tea.MouseButtonWheelUp:
		if m.atTop() {
			return m, m.pull()
		}
		m.surface.ScrollBy(-mouseWheelDelta)
	case tea.MouseButtonWheelDown:
		m.surface.ScrollBy(mouseWheelDelta)
	default:
		return m, nil
	}
	return m, m.checkScroll()
}

const mouseWheelDelta = 3

func (m *Model) atTop() bool {
	row, ok := m.surface.SelectedRow()
	return m.surface.AtTop() && (!ok || row == 0)
}

// pull is the pull-to-refresh gesture: the indicator starts right away and
// stops again if no refresh can begin.
func (m *Model) pull() tea.Cmd {
	if m.machine.State().IsLoading() {
		return nil
	}
	m.beginRefreshing()
	_, cmd := m.TriggerPullToRefresh()
	return cmd
}

// retry re-runs the load behind the error on screen.
func (m *Model) retry() tea.Cmd {
	if m.CanRetry() {
		_, cmd := m.TriggerInitialLoad(false)
		return cmd
	}
	if m.machine.State() == Idle && m.machine.IsFooterShowingError() {
		return m.TriggerLoadMore()
	}
	return nil
}

func (m *Model) checkScroll() tea.Cmd {
	_, cmd := m.dispatch(ScrollChanged{Metrics: m.surface.Metrics()})
	return cmd
}

// dispatch is the single entry point for state changes.
func (m *Model) dispatch(ev Event) (bool, tea.Cmd) {
	prev := m.machine
	next, eff, ok := Transition(prev, ev)
	if !ok {
		return false, nil
	}
	m.machine = next
	m.log.Debug("list transition",
		"list_id", m.id,
		"event", eventName(ev),
		"from", prev.State().String(),
		"to", next.State().String(),
		"view_mode", next.ViewMode().String(),
		"watching", next.IsWatchingForLoadMore(),
	)
	return true, m.apply(eff)
}

func (m *Model) apply(eff Effect) tea.Cmd {
	var cmds []tea.Cmd

	if eff.Has(BeginRefreshing) {
		m.beginRefreshing()
	}
	if eff.Has(EndRefreshing) {
		m.endRefreshing()
	}
	if eff.Has(ShowLoadingOverlay) {
		m.overlay = m.loadingOverlay()
		m.overlayRetry = false
	}
	if eff.Has(ShowEmptyOverlay) {
		err := m.machine.OverlayError()
		m.overlay = m.emptyOverlay(err)
		m.overlayRetry = err != nil
	}
	if eff.Has(RebuildFooter) {
		m.rebuildFooter()
	}

	switch {
	case eff.Has(StartInitialLoad):
		cmds = append(cmds, m.startLoad(StartInitialLoad))
	case eff.Has(StartRefresh):
		cmds = append(cmds, m.startLoad(StartRefresh))
	case eff.Has(StartLoadMore):
		cmds = append(cmds, m.startLoad(StartLoadMore))
	}

	if eff.Has(CheckScroll) {
		cmds = append(cmds, m.checkScroll())
	}
	if m.needsSpinner() {
		cmds = append(cmds, m.spinner.Tick)
	}
	return tea.Batch(cmds...)
}

func (m *Model) startLoad(kind Effect) tea.Cmd {
	m.seq++
	id, seq := m.id, m.seq
	ctx, loader, timeout := m.ctx, m.loader, m.loadTimeout

	return func() tea.Msg {
		if timeout > 0 {
			var cancel context.CancelFunc
			ctx, cancel = context.WithTimeout(ctx, timeout)
			defer cancel()
		}
		switch kind {
		case StartRefresh:
			return refreshDoneMsg{id: id, seq: seq, result: loader.Refresh(ctx)}
		case StartLoadMore:
			return loadMoreDoneMsg{id: id, seq: seq, result: loader.LoadMore(ctx)}
		default:
			return initialLoadDoneMsg{id: id, seq: seq, result: loader.InitialLoad(ctx)}
		}
	}
}

func (m *Model) current(id, seq int) bool {
	return id == m.id && seq == m.seq
}

func (m *Model) warnDiscardedError(op string, r LoadResult) {
	if r.Err != nil && !r.Empty {
		m.log.Warn("load returned data and an error; error not shown", "op", op, "error", r.Err)
	}
}

func (m *Model) beginRefreshing() {
	if m.refreshing {
		return
	}
	m.refreshing = true
	m.syncSurfaceSize()
}

func (m *Model) endRefreshing() {
	if !m.refreshing {
		return
	}
	m.refreshing = false
	m.syncSurfaceSize()
}

func (m *Model) syncSurfaceSize() {
	height := m.height
	if m.refreshing && height > 0 {
		height--
	}
	m.surface.SetSize(m.width, height)
}

func (m *Model) needsSpinner() bool {
	switch {
	case m.refreshing:
		return true
	case m.machine.State() == InitialLoading && m.machine.ViewMode() == Overlay:
		return true
	case m.machine.FooterVisible() && m.machine.FooterError() == nil:
		return true
	}
	return false
}

func (m *Model) loadingOverlay() View {
	def := &LoadingView{SpinnerStyle: m.styles.Spinner, MessageStyle: m.styles.Message}
	if m.hooks.InitialLoad != nil {
		if v := m.hooks.InitialLoad(def); v != nil {
			return v
		}
	}
	return def
}

func (m *Model) emptyOverlay(err error) View {
	def := &ErrorPanel{
		Err:          err,
		EmptyMessage: emptyMessage(m.itemNoun),
		RetryLabel:   defaultRetryLabel,
		MessageStyle: m.styles.Message,
		ErrorStyle:   m.styles.Error,
		ButtonStyle:  m.styles.Button,
	}
	if m.hooks.InitialLoadError != nil {
		if v := m.hooks.InitialLoadError(err, def); v != nil {
			return v
		}
	}
	return def
}

func (m *Model) rebuildFooter() {
	if !m.machine.FooterVisible() {
		m.surface.SetFooterView(nil, 0)
		return
	}
	err := m.machine.FooterError()
	var view View = &FooterView{
		Err:          err,
		Message:      loadingMoreMessage,
		SpinnerStyle: m.styles.Spinner,
		Style:        m.styles.Footer,
		ErrorStyle:   m.styles.FooterError,
	}
	if err != nil && m.hooks.LoadMoreError != nil {
		if v := m.hooks.LoadMoreError(err, view.(*FooterView)); v != nil {
			view = v
		}
	}
	m.surface.SetFooterView(view, FooterHeight)
}

func eventName(ev Event) string {
	switch ev.(type) {
	case InitialLoadRequested:
		return "initial_load_requested"
	case RefreshRequested:
		return "refresh_requested"
	case LoadMoreRequested:
		return "load_more_requested"
	case ScrollChanged:
		return "scroll_changed"
	case InitialLoadFinished:
		return "initial_load_finished"
	case RefreshFinished:
		return "refresh_finished"
	case LoadMoreFinished:
		return "load_more_finished"
	default:
		return "unknown"
	}
}
