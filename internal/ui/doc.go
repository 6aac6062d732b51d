// Package ui is the stateful terminal interface: a status header, the
// catalog list and a help footer, built with Bubble Tea.
//
// # Layout
//
//	┌──────────────────────────────────────────────────────────┐
//	│ stateful  sqlite  idle  items: 40/120  OFFLINE  09:14:03 │  header
//	├──────────────────────────────────────────────────────────┤
//	│ listview.Model                                           │
//	│   loading overlay / empty-error overlay / rows + footer  │
//	├──────────────────────────────────────────────────────────┤
//	│ ctrl+r Refresh • y Copy title • ? Toggle help • q Quit   │  footer
//	└──────────────────────────────────────────────────────────┘
//
// The list view owns loading. The UI only supplies a feed.Loader over the
// configured catalog.Source and renders rows out of the shared state.Store.
// New triggers the initial load; Init hands its command to the program.
//
// # Keys
//
// Navigation, ctrl+r refresh and r retry are handled by the list view. The
// UI adds q quit, ? help, T theme, y copy the selected title and R reload
// from the first page with the list kept on screen.
//
// # Themes and Preferences
//
// Three palettes are available (Nightfox, Kanagawa, Slate). The theme and
// the help mode are saved to the prefs file whenever they change.
//
// # Auto Refresh
//
// With refresh_every set, a tea.Tick issues a pull-to-refresh on every
// interval while the list is idle. Ticks during a load are skipped.
package ui
