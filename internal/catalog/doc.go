// Package catalog defines the items the stateful TUI browses and the paged
// Source interface it reads them through.
//
// # Sources
//
// Two implementations exist:
//
//   - store.SQLite reads a local database directly
//   - Client reads the HTTP API exposed by `stateful serve`
//
// Both return the same Page shape, so the feed loader does not care which
// one is configured.
//
// # API Endpoints
//
//	GET /api/items?offset=N&limit=M   → Page
//	GET /api/status                   → Status
//
// Errors are reported as a non-2xx status with a JSON body {"error": "..."}.
//
// # Paging
//
// A Page carries its Offset and the catalog Total, so callers derive the
// next offset with Page.Next and whether to keep going with Page.HasMore.
// Limits are capped at MaxPageLimit; ValidatePage rejects anything else
// with ErrInvalidPage.
package catalog
