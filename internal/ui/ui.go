package ui

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/five82/stateful/internal/catalog"
	"github.com/five82/stateful/internal/config"
	"github.com/five82/stateful/internal/prefs"
	"github.com/five82/stateful/internal/state"
)

// Options configure the UI runtime.
type Options struct {
	Context   context.Context
	Source    catalog.Source
	Store     *state.Store
	Config    config.Config
	Prefs     prefs.Prefs
	PrefsPath string
	Logger    *slog.Logger
}

// Run starts the TUI and blocks until the user quits or the context is
// cancelled.
func Run(opts Options) error {
	ctx := opts.Context
	if ctx == nil {
		ctx = context.Background()
	}
	if opts.Source == nil {
		return errors.New("ui: no catalog source")
	}

	model := New(ctx, opts.Source, opts.Store, opts.Config, opts.Prefs, opts.PrefsPath, opts.Logger)
	p := tea.NewProgram(model,
		tea.WithContext(ctx),
		tea.WithAltScreen(),
		tea.WithMouseCellMotion(),
	)
	if _, err := p.Run(); err != nil {
		if errors.Is(err, tea.ErrProgramKilled) && ctx.Err() != nil {
			return nil
		}
		return fmt.Errorf("run tui: %w", err)
	}
	return nil
}
