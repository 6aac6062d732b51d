// Package cli defines the stateful command line.
package cli

import (
	"context"
	"fmt"
	"io"
	"os"

	"github.com/fatih/color"
	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/five82/stateful/internal/app"
	"github.com/five82/stateful/internal/logtail"
)

var (
	// Version is set at build time
	Version = "dev"
	// Commit is set at build time
	Commit = "none"
)

// App holds the CLI application state.
type App struct {
	opts app.Options
	root *cobra.Command

	// Replaced in tests.
	run   func(context.Context, app.Options) error
	serve func(context.Context, app.Options, string) error
	seed  func(context.Context, app.Options, int) error
}

// NewApp creates the command tree.
func NewApp() *App {
	a := &App{run: app.Run, serve: app.Serve, seed: app.Seed}

	a.root = &cobra.Command{
		Use:   "stateful",
		Short: "A paged catalog browser with pull-to-refresh and infinite scroll",
		Long: `stateful browses a paged catalog in the terminal.

The list loads its first page on start, refreshes with ctrl+r or by pulling
past the top, and loads the next page as you scroll near the bottom. Empty
catalogs and failed loads are shown in place of the list with a retry.`,
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return a.run(cmd.Context(), a.opts)
		},
	}

	flags := a.root.PersistentFlags()
	flags.StringVar(&a.opts.ConfigPath, "config", "", "config file (default ~/.config/stateful/config.toml)")
	flags.StringVar(&a.opts.PrefsPath, "prefs", "", "preferences file (default ~/.config/stateful/prefs.toml)")
	flags.BoolVar(&a.opts.Debug, "debug", false, "Enable debug logging")

	a.root.AddCommand(a.versionCmd())
	a.root.AddCommand(a.serveCmd())
	a.root.AddCommand(a.seedCmd())
	a.root.AddCommand(a.logsCmd())

	return a
}

func (a *App) versionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print the version number",
		Run: func(cmd *cobra.Command, _ []string) {
			fmt.Fprintf(cmd.OutOrStdout(), "stateful %s (commit: %s)\n", Version, Commit)
		},
	}
}

func (a *App) serveCmd() *cobra.Command {
	var bind string
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve the SQLite catalog over HTTP",
		Long: `Serve exposes the SQLite catalog as a JSON API:

  GET /api/items?offset=N&limit=N
  GET /api/status

Point another instance at it with source = "http" and the same api_bind.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return a.serve(cmd.Context(), a.opts, bind)
		},
	}
	cmd.Flags().StringVar(&bind, "bind", "", "listen address (default api_bind from config)")
	return cmd
}

func (a *App) seedCmd() *cobra.Command {
	var count int
	cmd := &cobra.Command{
		Use:   "seed",
		Short: "Replace the SQLite catalog with generated items",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if count < 0 {
				return fmt.Errorf("count must not be negative, got %d", count)
			}
			if err := a.seed(cmd.Context(), a.opts, count); err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), "catalog seeded")
			return nil
		},
	}
	cmd.Flags().IntVarP(&count, "count", "n", 0, "number of items (default total_items from config)")
	return cmd
}

func (a *App) logsCmd() *cobra.Command {
	var (
		lines   int
		noColor bool
		raw     bool
	)
	cmd := &cobra.Command{
		Use:   "logs",
		Short: "Print the end of the application log",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := app.LoadConfig(a.opts)
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			if noColor || !isTerminal(out) {
				color.NoColor = true
			}

			entries, err := logtail.Read(cfg.LogPath(), lines)
			if err != nil {
				return err
			}
			if len(entries) == 0 {
				fmt.Fprintf(cmd.ErrOrStderr(), "no log entries in %s\n", cfg.LogPath())
				return nil
			}
			if !raw {
				entries = logtail.FormatLines(entries, termWidth(out))
			}
			for _, line := range entries {
				fmt.Fprintln(out, line)
			}
			return nil
		},
	}
	cmd.Flags().IntVarP(&lines, "lines", "n", 50, "number of lines (0 prints the whole log)")
	cmd.Flags().BoolVar(&noColor, "no-color", false, "disable colors")
	cmd.Flags().BoolVar(&raw, "raw", false, "print JSON records unformatted")
	return cmd
}

// Execute runs the CLI application.
func (a *App) Execute(ctx context.Context) error {
	return a.root.ExecuteContext(ctx)
}

func isTerminal(w io.Writer) bool {
	f, ok := w.(*os.File)
	return ok && term.IsTerminal(int(f.Fd()))
}

// termWidth returns the terminal width, or 0 (no truncation) when w is not a
// terminal.
func termWidth(w io.Writer) int {
	f, ok := w.(*os.File)
	if !ok {
		return 0
	}
	width, _, err := term.GetSize(int(f.Fd()))
	if err != nil || width <= 0 {
		return 0
	}
	return width
}
