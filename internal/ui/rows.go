package ui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/x/ansi"

	"github.com/five82/stateful/internal/catalog"
	"github.com/five82/stateful/internal/state"
	"github.com/five82/stateful/listview"
)

var _ listview.DataSource = (*itemRows)(nil)

// itemRows renders the loaded catalog items as list rows.
type itemRows struct {
	store  *state.Store
	styles *Styles
}

func (r *itemRows) NumberOfRows() int {
	return r.store.Len()
}

func (r *itemRows) RenderRow(row, width int, selected bool) string {
	item, ok := r.store.At(row)
	if !ok {
		return ""
	}
	if selected {
		return r.styles.Selected.Width(width).Render(ansi.Truncate(plainRow(item), width, "…"))
	}
	return r.styledRow(item)
}

func (r *itemRows) styledRow(item catalog.Item) string {
	var b strings.Builder
	b.WriteString(r.styles.FaintText.Render(fmt.Sprintf("%5d", item.ID)))
	b.WriteString("  ")
	b.WriteString(r.styles.Text.Render(item.Title))
	if item.Summary != "" {
		b.WriteString("  ")
		b.WriteString(r.styles.MutedText.Render(item.Summary))
	}
	if created := item.ParsedCreatedAt(); !created.IsZero() {
		b.WriteString("  ")
		b.WriteString(r.styles.FaintText.Render(created.Local().Format("Jan 02 15:04")))
	}
	return b.String()
}

// plainRow is the unstyled row text. The selection style colors the whole
// line, so nested styles would break its background.
func plainRow(item catalog.Item) string {
	parts := []string{fmt.Sprintf("%5d", item.ID), item.Title}
	if item.Summary != "" {
		parts = append(parts, item.Summary)
	}
	if created := item.ParsedCreatedAt(); !created.IsZero() {
		parts = append(parts, created.Local().Format("Jan 02 15:04"))
	}
	return strings.Join(parts, "  ")
}
