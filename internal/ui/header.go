package ui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// renderHeader renders the one-line status bar.
func (m Model) renderHeader() string {
	snap := m.store.Snapshot()
	sep := "  "

	parts := []string{
		m.styles.Logo.Render("stateful"),
		m.styles.MutedText.Render(string(m.cfg.Source)),
		m.styles.StateStyle(m.list.State()).Render(m.list.State().String()),
	}

	loaded := fmt.Sprintf("%d", len(snap.Items))
	if snap.Total > 0 {
		loaded = fmt.Sprintf("%d/%d", len(snap.Items), snap.Total)
	}
	parts = append(parts,
		m.styles.MutedText.Render(m.noun()+":")+" "+m.styles.Text.Render(loaded))

	switch {
	case snap.IsOffline():
		parts = append(parts, m.styles.DangerText.Render("OFFLINE"))
	case snap.LastError != nil:
		parts = append(parts, m.styles.WarningText.Render("last load failed"))
	}

	if !snap.LastUpdated.IsZero() {
		parts = append(parts, m.styles.FaintText.Render(snap.LastUpdated.Format("15:04:05")))
	}

	return m.styles.Header.Width(m.width).MaxHeight(1).Render(strings.Join(parts, sep))
}

// renderFooter renders the status message or the help view.
func (m Model) renderFooter() string {
	if m.status != "" && !m.help.ShowAll {
		return m.styles.Footer.Render(m.status)
	}
	return m.styles.Footer.Render(m.help.View(m.keys))
}

func (m Model) footerHeight() int {
	return lipgloss.Height(m.renderFooter())
}

func (m Model) noun() string {
	if noun := strings.TrimSpace(m.cfg.ItemNoun); noun != "" {
		return noun
	}
	return "items"
}
