// Package logtail reads the tail of the application log and renders its
// JSON records for a terminal.
//
// Read keeps a ring buffer of maxLines entries, so only the last lines of a
// large file are held in memory. A missing file yields no lines and no
// error, which is the normal state before the first run.
//
// Format turns a slog JSON record into one colored line:
//
//	{"time":"2026-10-15T09:14:03Z","level":"WARN","msg":"refresh failed","error":"timeout"}
//	09:14:03 WARN  refresh failed error=timeout
//
// Attributes other than time, level and msg are printed sorted by key.
// Colors come from fatih/color and follow its NoColor switch, so piping
// the output strips them.
package logtail
