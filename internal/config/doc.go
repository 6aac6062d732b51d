// Package config loads the stateful TOML configuration.
//
// # Configuration Discovery
//
// The Load function follows this resolution order:
//
//  1. If a path is explicitly provided, use it
//  2. Otherwise, use ~/.config/stateful/config.toml (default)
//  3. If the config file doesn't exist, fall back to Default()
//  4. If the file exists but fields are missing/empty, use defaults
//
// # TOML Format
//
//	source = "sqlite"                # or "http"
//	db_path = "~/.local/share/stateful/catalog.db"
//	api_bind = "127.0.0.1:7488"
//	page_size = 25
//	total_items = 120                # rows written by `stateful seed`
//	load_more_threshold = 4          # lines from the bottom
//	pull_to_refresh = true
//	item_noun = "items"
//	show_list_while_loading = false
//	refresh_every = "1m"             # empty disables auto-refresh
//	load_timeout = "10s"
//	log_dir = "~/.local/share/stateful/logs"
//	log_level = "info"
//
// Every field is optional. Tilde expansion is performed for paths and
// durations use time.ParseDuration syntax.
//
// # Error Handling
//
// Load returns errors for path expansion failures, read errors other than
// os.ErrNotExist, TOML parse errors and values rejected by Validate. A
// missing file is not an error.
package config
