package listview

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/ansi"
)

// Pin fits content into exactly width×height cells, clipping lines that are
// too long or too many and padding the rest with blanks.
func Pin(content string, width, height int) string {
	if width <= 0 || height <= 0 {
		return ""
	}
	lines := strings.Split(content, "\n")
	if len(lines) > height {
		lines = lines[:height]
	}
	out := make([]string, height)
	for i := range out {
		var line string
		if i < len(lines) {
			line = ansi.Truncate(lines[i], width, "")
		}
		if pad := width - ansi.StringWidth(line); pad > 0 {
			line += strings.Repeat(" ", pad)
		}
		out[i] = line
	}
	return strings.Join(out, "\n")
}

// Center places content in the middle of a width×height box.
func Center(content string, width, height int) string {
	if width <= 0 || height <= 0 {
		return ""
	}
	placed := lipgloss.Place(width, height, lipgloss.Center, lipgloss.Center, content)
	return Pin(placed, width, height)
}
