package ui

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/atotto/clipboard"
	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/five82/stateful/internal/catalog"
	"github.com/five82/stateful/internal/config"
	"github.com/five82/stateful/internal/feed"
	"github.com/five82/stateful/internal/prefs"
	"github.com/five82/stateful/internal/state"
	"github.com/five82/stateful/listview"
)

const statusTimeout = 3 * time.Second

// Messages
type (
	autoRefreshMsg time.Time
	clearStatusMsg struct{ seq int }
)

// Model is the root Bubble Tea model: a header, the catalog list view and
// a help footer.
type Model struct {
	cfg    config.Config
	store  *state.Store
	list   listview.Model
	rows   *itemRows
	help   help.Model
	keys   keyMap
	theme  Theme
	styles *Styles

	prefs     prefs.Prefs
	prefsPath string
	log       *slog.Logger

	// copyText writes to the system clipboard. Tests replace it.
	copyText func(string) error

	status    string
	statusSeq int
	initCmd   tea.Cmd

	width  int
	height int
}

// New builds the root model and starts the initial load. The load runs
// once the program executes the command returned by Init.
func New(ctx context.Context, source catalog.Source, store *state.Store, cfg config.Config, p prefs.Prefs, prefsPath string, logger *slog.Logger) Model {
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	if store == nil {
		store = &state.Store{}
	}

	theme := GetTheme(p.Theme)
	styles := theme.Styles()
	rows := &itemRows{store: store, styles: &styles}
	listStyles := theme.ListStyles()

	list := listview.New(listview.Options{
		Context:           ctx,
		Loader:            feed.New(source, store, cfg.PageSize, logger),
		DataSource:        rows,
		CanPullToRefresh:  cfg.PullToRefresh,
		CanLoadMore:       true,
		LoadMoreThreshold: cfg.LoadMoreThreshold,
		ItemNoun:          cfg.ItemNoun,
		LoadTimeout:       cfg.LoadTimeout,
		Styles:            &listStyles,
		Logger:            logger,
	})

	h := help.New()
	h.ShowAll = p.FullHelp

	m := Model{
		cfg:       cfg,
		store:     store,
		list:      list,
		rows:      rows,
		help:      h,
		keys:      DefaultKeyMap(),
		theme:     theme,
		styles:    &styles,
		prefs:     p,
		prefsPath: prefsPath,
		log:       logger,
		copyText:  clipboard.WriteAll,
	}
	m.applyHelpStyles()
	_, m.initCmd = m.list.TriggerInitialLoad(cfg.ShowListWhileLoading)
	return m
}

// Init implements tea.Model.
func (m Model) Init() tea.Cmd {
	return tea.Batch(m.initCmd, m.scheduleAutoRefresh())
}

// Update implements tea.Model.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width, m.height = msg.Width, msg.Height
		m.help.Width = msg.Width
		return m, m.resize()

	case tea.KeyMsg:
		return m.handleKey(msg)

	case autoRefreshMsg:
		var cmd tea.Cmd
		if m.list.State() == listview.Idle {
			if ok, c := m.list.TriggerPullToRefresh(); ok {
				m.log.Debug("auto refresh started")
				cmd = c
			}
		}
		return m, tea.Batch(cmd, m.scheduleAutoRefresh())

	case clearStatusMsg:
		if msg.seq == m.statusSeq {
			m.status = ""
			return m, m.resize()
		}
		return m, nil
	}

	var cmd tea.Cmd
	m.list, cmd = m.list.Update(msg)
	return m, cmd
}

// View implements tea.Model.
func (m Model) View() string {
	if m.width <= 0 || m.height <= 0 {
		return ""
	}
	return m.renderHeader() + "\n" + m.list.View() + "\n" + m.renderFooter()
}

func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Quit):
		return m, tea.Quit

	case key.Matches(msg, m.keys.Help):
		m.help.ShowAll = !m.help.ShowAll
		m.prefs.FullHelp = m.help.ShowAll
		m.savePrefs()
		return m, m.resize()

	case key.Matches(msg, m.keys.CycleTheme):
		m.setTheme(NextTheme(m.theme.Name))
		m.prefs.Theme = m.theme.Name
		m.savePrefs()
		return m, m.flash("Theme: " + m.theme.Name)

	case key.Matches(msg, m.keys.Copy):
		return m, m.copySelected()

	case key.Matches(msg, m.keys.Reload):
		ok, cmd := m.list.TriggerInitialLoad(true)
		if !ok {
			return m, m.flash("Busy loading")
		}
		return m, cmd
	}

	var cmd tea.Cmd
	m.list, cmd = m.list.Update(msg)
	return m, cmd
}

func (m *Model) copySelected() tea.Cmd {
	row, ok := m.list.Surface().SelectedRow()
	if !ok {
		return m.flash("Nothing selected")
	}
	item, ok := m.store.At(row)
	if !ok {
		return m.flash("Nothing selected")
	}
	if err := m.copyText(item.Title); err != nil {
		m.log.Warn("clipboard write failed", "error", err)
		return m.flash(fmt.Sprintf("Copy failed: %v", err))
	}
	return m.flash("Copied: " + item.Title)
}

// flash shows msg in the footer until statusTimeout passes.
func (m *Model) flash(msg string) tea.Cmd {
	m.statusSeq++
	m.status = msg
	seq := m.statusSeq
	return tea.Batch(m.resize(), tea.Tick(statusTimeout, func(time.Time) tea.Msg {
		return clearStatusMsg{seq: seq}
	}))
}

func (m *Model) setTheme(name string) {
	m.theme = GetTheme(name)
	*m.styles = m.theme.Styles()
	m.list.SetStyles(m.theme.ListStyles())
	m.applyHelpStyles()
	m.list.Surface().ReloadData()
}

func (m *Model) applyHelpStyles() {
	m.help.Styles.ShortKey = m.styles.AccentText
	m.help.Styles.FullKey = m.styles.AccentText
	m.help.Styles.ShortDesc = m.styles.MutedText
	m.help.Styles.FullDesc = m.styles.MutedText
	m.help.Styles.ShortSeparator = m.styles.FaintText
	m.help.Styles.FullSeparator = m.styles.FaintText
}

// resize gives the list view the rows left between header and footer.
func (m *Model) resize() tea.Cmd {
	if m.width <= 0 || m.height <= 0 {
		return nil
	}
	height := max(m.height-1-m.footerHeight(), 1)
	return m.list.SetSize(m.width, height)
}

func (m Model) scheduleAutoRefresh() tea.Cmd {
	if m.cfg.RefreshEvery <= 0 {
		return nil
	}
	return tea.Tick(m.cfg.RefreshEvery, func(t time.Time) tea.Msg {
		return autoRefreshMsg(t)
	})
}

func (m *Model) savePrefs() {
	if m.prefsPath == "" {
		return
	}
	if err := prefs.Save(m.prefsPath, m.prefs); err != nil {
		m.log.Warn("saving preferences failed", "path", m.prefsPath, "error", err)
	}
}
