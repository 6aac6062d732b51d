package listview

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// FooterHeight is the height of the load-more footer when it has content.
const FooterHeight = 1

// Frame is the box a transient view renders into. Spinner holds the current
// frame of the component's spinner so views can animate without owning one.
type Frame struct {
	Width   int
	Height  int
	Spinner string
}

// View is a transient view: the loading overlay, the empty/error overlay or
// the load-more footer.
type View interface {
	Render(f Frame) string
}

// ViewFunc adapts a function to View.
type ViewFunc func(f Frame) string

func (fn ViewFunc) Render(f Frame) string { return fn(f) }

// Styles holds the lipgloss styles of the default views.
type Styles struct {
	Spinner     lipgloss.Style
	Message     lipgloss.Style
	Error       lipgloss.Style
	Button      lipgloss.Style
	Footer      lipgloss.Style
	FooterError lipgloss.Style
	Refresh     lipgloss.Style
}

// DefaultStyles returns styles that read on dark and light terminals.
func DefaultStyles() Styles {
	return Styles{
		Spinner: lipgloss.NewStyle().
			Foreground(lipgloss.AdaptiveColor{Light: "#6C6C6C", Dark: "#BD93F9"}),
		Message: lipgloss.NewStyle().
			Foreground(lipgloss.AdaptiveColor{Light: "#3C3C3C", Dark: "#F8F8F2"}),
		Error: lipgloss.NewStyle().
			Foreground(lipgloss.AdaptiveColor{Light: "#C0392B", Dark: "#FF5555"}),
		Button: lipgloss.NewStyle().
			Foreground(lipgloss.AdaptiveColor{Light: "#FFFFFF", Dark: "#282A36"}).
			Background(lipgloss.AdaptiveColor{Light: "#2C7BE5", Dark: "#8BE9FD"}).
			Padding(0, 2),
		Footer: lipgloss.NewStyle().
			Foreground(lipgloss.AdaptiveColor{Light: "#6C6C6C", Dark: "#6272A4"}),
		FooterError: lipgloss.NewStyle().
			Foreground(lipgloss.AdaptiveColor{Light: "#C0392B", Dark: "#FF5555"}),
		Refresh: lipgloss.NewStyle().
			Foreground(lipgloss.AdaptiveColor{Light: "#6C6C6C", Dark: "#6272A4"}),
	}
}

// LoadingView is the default initial-load overlay: a centered spinner.
type LoadingView struct {
	Message      string
	SpinnerStyle lipgloss.Style
	MessageStyle lipgloss.Style
}

func (v *LoadingView) Render(f Frame) string {
	line := v.SpinnerStyle.Render(f.Spinner)
	if msg := strings.TrimSpace(v.Message); msg != "" {
		line += " " + v.MessageStyle.Render(msg)
	}
	return Center(line, f.Width, f.Height)
}

// ErrorPanel is the default empty/error overlay. It shows the error message,
// or the empty message when there is no error. A retry button is drawn only
// for errors.
type ErrorPanel struct {
	Err          error
	EmptyMessage string
	RetryLabel   string
	MessageStyle lipgloss.Style
	ErrorStyle   lipgloss.Style
	ButtonStyle  lipgloss.Style
}

// Message is the text the panel shows.
func (p *ErrorPanel) Message() string {
	if p.Err != nil {
		return p.Err.Error()
	}
	return p.EmptyMessage
}

// HasRetry reports whether the panel shows a retry button.
func (p *ErrorPanel) HasRetry() bool {
	return p.Err != nil
}

func (p *ErrorPanel) Render(f Frame) string {
	if p.Err == nil {
		return Center(p.MessageStyle.Render(p.EmptyMessage), f.Width, f.Height)
	}
	label := p.RetryLabel
	if label == "" {
		label = defaultRetryLabel
	}
	block := lipgloss.JoinVertical(lipgloss.Center,
		p.ErrorStyle.Render(p.Message()),
		"",
		p.ButtonStyle.Render(label),
	)
	return Center(block, f.Width, f.Height)
}

// FooterView is the default load-more footer: a spinner while watching, or
// the load-more error when the footer shows one.
type FooterView struct {
	Err          error
	Message      string
	SpinnerStyle lipgloss.Style
	Style        lipgloss.Style
	ErrorStyle   lipgloss.Style
}

func (v *FooterView) Render(f Frame) string {
	if v.Err != nil {
		return Center(v.ErrorStyle.Render(v.Err.Error()), f.Width, FooterHeight)
	}
	line := v.SpinnerStyle.Render(f.Spinner)
	if v.Message != "" {
		line += " " + v.Style.Render(v.Message)
	}
	return Center(line, f.Width, FooterHeight)
}

const (
	defaultRetryLabel  = "Try Again"
	defaultItemNoun    = "items"
	loadingMoreMessage = "Loading more…"
	refreshingMessage  = "Refreshing…"
)

func emptyMessage(noun string) string {
	noun = strings.TrimSpace(noun)
	if noun == "" {
		noun = defaultItemNoun
	}
	return fmt.Sprintf("No %s found", noun)
}
