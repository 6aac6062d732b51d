package listview

import (
	"errors"
	"strings"
	"testing"
)

func TestErrorPanel(t *testing.T) {
	frame := Frame{Width: 40, Height: 7}

	empty := &ErrorPanel{EmptyMessage: emptyMessage("")}
	if empty.Message() != "No items found" || empty.HasRetry() {
		t.Fatalf("empty panel message=%q retry=%v", empty.Message(), empty.HasRetry())
	}
	out := empty.Render(frame)
	if !strings.Contains(out, "No items found") || strings.Contains(out, defaultRetryLabel) {
		t.Fatalf("empty panel render = %q", out)
	}

	failed := &ErrorPanel{Err: errors.New("Unknown error"), EmptyMessage: emptyMessage("")}
	if failed.Message() != "Unknown error" || !failed.HasRetry() {
		t.Fatalf("error panel message=%q retry=%v", failed.Message(), failed.HasRetry())
	}
	out = failed.Render(frame)
	if !strings.Contains(out, "Unknown error") || !strings.Contains(out, "Try Again") {
		t.Fatalf("error panel render = %q", out)
	}
	if len(strings.Split(out, "\n")) != frame.Height {
		t.Fatalf("error panel is not pinned to the frame height")
	}
}

func TestEmptyMessage(t *testing.T) {
	cases := map[string]string{
		"":        "No items found",
		"  ":      "No items found",
		"songs":   "No songs found",
		" posts ": "No posts found",
	}
	for noun, want := range cases {
		if got := emptyMessage(noun); got != want {
			t.Fatalf("emptyMessage(%q) = %q, want %q", noun, got, want)
		}
	}
}

func TestLoadingViewUsesFrameSpinner(t *testing.T) {
	v := &LoadingView{Message: "Loading"}
	out := v.Render(Frame{Width: 20, Height: 3, Spinner: "*"})
	if !strings.Contains(out, "* Loading") {
		t.Fatalf("loading view = %q, want spinner frame and message", out)
	}
}

func TestFooterView(t *testing.T) {
	f := Frame{Width: 30, Height: FooterHeight, Spinner: "*"}

	spin := (&FooterView{Message: loadingMoreMessage}).Render(f)
	if !strings.Contains(spin, "*") || strings.Contains(spin, "\n") {
		t.Fatalf("spinner footer = %q", spin)
	}

	failed := (&FooterView{Err: errors.New("offline")}).Render(f)
	if !strings.Contains(failed, "offline") || strings.Contains(failed, "*") {
		t.Fatalf("error footer = %q", failed)
	}
}

func TestViewFunc(t *testing.T) {
	var v View = ViewFunc(func(f Frame) string { return strings.Repeat("x", f.Width) })
	if got := v.Render(Frame{Width: 3}); got != "xxx" {
		t.Fatalf("ViewFunc render = %q, want xxx", got)
	}
}
