// Package app is the composition root of stateful.
//
// # Overview
//
// The package wires configuration, logging, the catalog source and the
// UI together. The cli package calls one entry point per command:
//
//	Run    the TUI over the configured source
//	Serve  the SQLite catalog over HTTP
//	Seed   replace the SQLite catalog with generated items
//
// # Startup
//
//  1. Load ~/.config/stateful/config.toml (defaults when missing)
//  2. Open the JSON log file at <log_dir>/stateful.log
//  3. Open the source: SQLite (seeded on first use) or the HTTP client
//  4. Probe the source once and log the result
//  5. Load preferences and block in ui.Run
//
// A source that cannot be reached is not a startup error. The list view
// shows the failure with a retry, which is the behavior under test.
package app
