package listview

import (
	"fmt"
	"reflect"
	"strings"
	"testing"

	"github.com/charmbracelet/lipgloss"
)

type rowList struct {
	rows []string
}

func newRowList(n int) *rowList {
	l := &rowList{}
	for i := range n {
		l.rows = append(l.rows, fmt.Sprintf("row %d", i))
	}
	return l
}

func (l *rowList) NumberOfRows() int { return len(l.rows) }

func (l *rowList) RenderRow(row, width int, selected bool) string {
	if selected {
		return "> " + l.rows[row]
	}
	return "  " + l.rows[row]
}

func newTestSurface(rows, width, height int) (Surface, *rowList) {
	src := newRowList(rows)
	s := NewSurface(src)
	s.SetSize(width, height)
	return s, src
}

func TestSurface_ContentHeightIncludesFooter(t *testing.T) {
	s, _ := newTestSurface(10, 20, 5)
	if got := s.ContentHeight(); got != 10 {
		t.Fatalf("ContentHeight() = %d, want 10", got)
	}
	s.SetFooterView(ViewFunc(func(Frame) string { return "footer" }), FooterHeight)
	if got := s.ContentHeight(); got != 11 {
		t.Fatalf("ContentHeight() with footer = %d, want 11", got)
	}
	s.SetFooterView(nil, FooterHeight)
	if got := s.ContentHeight(); got != 10 {
		t.Fatalf("ContentHeight() after clearing footer = %d, want 10", got)
	}
}

func TestSurface_SetContentOffsetClamps(t *testing.T) {
	s, _ := newTestSurface(10, 20, 4)
	s.SetContentOffset(100)
	if got := s.ContentOffset(); got != 6 {
		t.Fatalf("ContentOffset() = %d, want 6", got)
	}
	s.SetContentOffset(-3)
	if got := s.ContentOffset(); got != 0 || !s.AtTop() {
		t.Fatalf("ContentOffset() = %d, want 0", got)
	}

	want := Metrics{Offset: 0, ViewportHeight: 4, ContentHeight: 10}
	if got := s.Metrics(); got != want {
		t.Fatalf("Metrics() = %+v, want %+v", got, want)
	}
}

func TestSurface_VisibleRowsAndScrollToRow(t *testing.T) {
	s, _ := newTestSurface(10, 20, 3)
	if got := s.VisibleRows(); !reflect.DeepEqual(got, []int{0, 1, 2}) {
		t.Fatalf("VisibleRows() = %v, want [0 1 2]", got)
	}

	s.ScrollToRow(7, ScrollNone)
	if got := s.VisibleRows(); !reflect.DeepEqual(got, []int{5, 6, 7}) {
		t.Fatalf("VisibleRows() after ScrollToRow = %v, want [5 6 7]", got)
	}

	s.ScrollToRow(4, ScrollTop)
	if got := s.ContentOffset(); got != 4 {
		t.Fatalf("ContentOffset() after ScrollTop = %d, want 4", got)
	}
}

func TestSurface_SelectionFollowsRowChanges(t *testing.T) {
	s, src := newTestSurface(5, 20, 5)
	s.SelectRow(2, ScrollNone)

	src.rows = append([]string{"new"}, src.rows...)
	s.InsertRows(0)
	if row, ok := s.SelectedRow(); !ok || row != 3 {
		t.Fatalf("SelectedRow() after insert = %d,%v, want 3", row, ok)
	}

	src.rows = src.rows[1:]
	s.DeleteRows(0)
	if row, _ := s.SelectedRow(); row != 2 {
		t.Fatalf("SelectedRow() after delete = %d, want 2", row)
	}

	s.MoveRow(2, 4)
	if row, _ := s.SelectedRow(); row != 4 {
		t.Fatalf("SelectedRow() after move = %d, want 4", row)
	}

	src.rows = src.rows[:4]
	s.DeleteRows(4)
	if _, ok := s.SelectedRow(); ok {
		t.Fatal("deleting the selected row kept a selection")
	}
}

func TestSurface_RendersSelection(t *testing.T) {
	s, _ := newTestSurface(3, 12, 3)
	s.SelectRow(1, ScrollNone)
	lines := strings.Split(s.View(), "\n")
	if len(lines) != 3 {
		t.Fatalf("View() has %d lines, want 3", len(lines))
	}
	if !strings.Contains(lines[1], "> row 1") || !strings.Contains(lines[0], "row 0") || strings.Contains(lines[0], ">") {
		t.Fatalf("View() = %q", s.View())
	}

	s.DeselectRow(1)
	if _, ok := s.SelectedRow(); ok {
		t.Fatal("DeselectRow kept the selection")
	}
}

func TestSurface_MoveSelectionClamps(t *testing.T) {
	s, _ := newTestSurface(4, 12, 2)
	s.MoveSelection(1)
	if row, _ := s.SelectedRow(); row != 0 {
		t.Fatalf("first MoveSelection selected %d, want 0", row)
	}
	s.MoveSelection(10)
	if row, _ := s.SelectedRow(); row != 3 {
		t.Fatalf("MoveSelection(10) selected %d, want 3", row)
	}
	if got := s.ContentOffset(); got != 2 {
		t.Fatalf("ContentOffset() = %d, want 2", got)
	}
	s.MoveSelection(-10)
	if row, _ := s.SelectedRow(); row != 0 || !s.AtTop() {
		t.Fatalf("MoveSelection(-10) selected %d offset %d", row, s.ContentOffset())
	}
}

func TestSurface_DisablingSelectionClearsIt(t *testing.T) {
	s, _ := newTestSurface(3, 12, 3)
	s.SelectRow(2, ScrollNone)
	s.SetAllowsSelection(false)
	if _, ok := s.SelectedRow(); ok {
		t.Fatal("selection kept after disabling it")
	}
	s.SelectRow(1, ScrollNone)
	if _, ok := s.SelectedRow(); ok {
		t.Fatal("SelectRow worked with selection disabled")
	}
}

func TestSurface_TruncatesRows(t *testing.T) {
	src := &rowList{rows: []string{strings.Repeat("x", 30)}}
	s := NewSurface(src)
	s.SetSize(10, 1)
	got := s.View()
	if !strings.HasSuffix(got, "xxx…") || lipgloss.Width(got) != 10 {
		t.Fatalf("View() = %q, want a truncated 10-cell row", got)
	}
}

func TestSurface_HeaderShiftsRows(t *testing.T) {
	s, _ := newTestSurface(3, 12, 4)
	s.SetHeaderView(ViewFunc(func(Frame) string { return "header" }), 1)
	lines := strings.Split(s.View(), "\n")
	if !strings.Contains(lines[0], "header") || !strings.Contains(lines[1], "row 0") {
		t.Fatalf("View() = %q", s.View())
	}
	if got := s.ContentHeight(); got != 4 {
		t.Fatalf("ContentHeight() = %d, want 4", got)
	}
}

type countingRows struct {
	rowList
	renders int
}

func (c *countingRows) RenderRow(row, width int, selected bool) string {
	c.renders++
	return c.rowList.RenderRow(row, width, selected)
}

func TestSurface_FrameChangeOnlyRedrawsFooter(t *testing.T) {
	src := &countingRows{rowList: *newRowList(200)}
	s := NewSurface(src)
	s.SetSize(20, 5)

	var footerRenders int
	s.SetFooterView(ViewFunc(func(f Frame) string {
		footerRenders++
		return f.Spinner + " more"
	}), FooterHeight)
	rowRenders := src.renders

	// Footer out of view: nothing is drawn.
	s.SetFrame("a")
	_ = s.View()
	if footerRenders != 0 {
		t.Fatalf("footer rendered %d times while scrolled out of view", footerRenders)
	}

	s.SetContentOffset(s.ContentHeight())
	s.SetFrame("b")
	lines := strings.Split(s.View(), "\n")
	if last := lines[len(lines)-1]; !strings.HasPrefix(last, "b more") {
		t.Fatalf("last line = %q, want the footer with frame b", last)
	}
	if !strings.Contains(lines[len(lines)-2], "row 199") {
		t.Fatalf("View() = %q, want the last row above the footer", s.View())
	}

	s.SetFrame("c")
	if last := strings.Split(s.View(), "\n")[4]; !strings.HasPrefix(last, "c more") {
		t.Fatalf("last line = %q, want the footer with frame c", last)
	}
	if src.renders != rowRenders {
		t.Fatalf("rows re-rendered %d times on frame changes", src.renders-rowRenders)
	}
	if got := s.ContentHeight(); got != 201 {
		t.Fatalf("ContentHeight() = %d, want 201", got)
	}
}
