package logtail

import (
	"encoding/json"
	"fmt"
	"slices"
	"strings"
	"time"

	"github.com/charmbracelet/x/ansi"
	"github.com/fatih/color"
)

var (
	colorTime  = color.New(color.FgWhite, color.Faint)
	colorKey   = color.New(color.FgBlue)
	colorDebug = color.New(color.FgCyan)
	colorInfo  = color.New(color.FgGreen)
	colorWarn  = color.New(color.FgYellow, color.Bold)
	colorError = color.New(color.FgRed, color.Bold)
)

// Format renders one JSON log record as
//
//	15:04:05 INFO  list transition list_id=1 event=load_more_done
//
// Lines that are not JSON objects pass through unchanged. When width is
// positive the result is truncated to that many terminal cells.
func Format(line string, width int) string {
	out := formatRecord(line)
	if width > 0 {
		out = ansi.Truncate(out, width, "…")
	}
	return out
}

// FormatLines applies Format to every line.
func FormatLines(lines []string, width int) []string {
	out := make([]string, len(lines))
	for i, line := range lines {
		out[i] = Format(line, width)
	}
	return out
}

func formatRecord(line string) string {
	var rec map[string]any
	if err := json.Unmarshal([]byte(line), &rec); err != nil {
		return line
	}

	var b strings.Builder
	if ts, ok := rec["time"].(string); ok {
		b.WriteString(colorTime.Sprint(shortTime(ts)))
		b.WriteByte(' ')
	}
	if level, ok := rec["level"].(string); ok {
		b.WriteString(levelColor(level).Sprintf("%-5s", level))
		b.WriteByte(' ')
	}
	if msg, ok := rec["msg"].(string); ok {
		b.WriteString(msg)
	}

	keys := make([]string, 0, len(rec))
	for k := range rec {
		switch k {
		case "time", "level", "msg":
		default:
			keys = append(keys, k)
		}
	}
	slices.Sort(keys)
	for _, k := range keys {
		b.WriteByte(' ')
		b.WriteString(colorKey.Sprint(k))
		b.WriteByte('=')
		b.WriteString(formatValue(rec[k]))
	}
	return b.String()
}

func shortTime(ts string) string {
	t, err := time.Parse(time.RFC3339Nano, ts)
	if err != nil {
		return ts
	}
	return t.Local().Format("15:04:05")
}

func levelColor(level string) *color.Color {
	switch strings.ToUpper(level) {
	case "DEBUG":
		return colorDebug
	case "WARN":
		return colorWarn
	case "ERROR":
		return colorError
	default:
		return colorInfo
	}
}

func formatValue(v any) string {
	switch val := v.(type) {
	case string:
		if strings.ContainsAny(val, " =\"") {
			return fmt.Sprintf("%q", val)
		}
		return val
	case float64:
		if val == float64(int64(val)) {
			return fmt.Sprintf("%d", int64(val))
		}
		return fmt.Sprintf("%g", val)
	case nil:
		return "null"
	default:
		raw, err := json.Marshal(val)
		if err != nil {
			return fmt.Sprint(val)
		}
		return string(raw)
	}
}
