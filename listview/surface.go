package listview

import (
	"sort"
	"strings"

	"github.com/charmbracelet/bubbles/viewport"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/ansi"
)

// DataSource supplies the rows of the list surface. Row content is entirely
// the host's business.
type DataSource interface {
	NumberOfRows() int
	RenderRow(row, width int, selected bool) string
}

// ScrollPosition says where ScrollToRow places a row in the viewport.
type ScrollPosition int

const (
	ScrollNone ScrollPosition = iota
	ScrollTop
	ScrollMiddle
	ScrollBottom
)

// Surface is the scrollable list the component drives. It renders rows from a
// DataSource into a bubbles viewport, keeps a selection and carries an
// optional header and footer inside the scrolled content.
type Surface struct {
	source   DataSource
	viewport viewport.Model

	header       View
	headerHeight int
	footer       View
	footerHeight int
	frame        string

	rows     []string
	starts   []int
	rowLines int

	selected        int
	allowsSelection bool
}

// NewSurface returns an empty surface with selection enabled.
func NewSurface(source DataSource) Surface {
	s := Surface{
		source:          source,
		viewport:        viewport.New(0, 0),
		selected:        -1,
		allowsSelection: true,
	}
	s.ReloadData()
	return s
}

// SetDataSource replaces the data source and reloads every row.
func (s *Surface) SetDataSource(source DataSource) {
	s.source = source
	s.ReloadData()
}

func (s *Surface) DataSource() DataSource { return s.source }

// NumberOfRows is the row count as of the last reload.
func (s *Surface) NumberOfRows() int { return len(s.rows) }

// SetSize resizes the viewport and re-renders rows for the new width.
func (s *Surface) SetSize(width, height int) {
	if width < 0 {
		width = 0
	}
	if height < 0 {
		height = 0
	}
	widthChanged := width != s.viewport.Width
	s.viewport.Width = width
	s.viewport.Height = height
	if widthChanged {
		s.ReloadData()
		return
	}
	s.layout()
}

func (s *Surface) Width() int { return s.viewport.Width }

// ReloadData re-reads the row count and renders every row.
func (s *Surface) ReloadData() {
	n := 0
	if s.source != nil {
		n = s.source.NumberOfRows()
	}
	if n < 0 {
		n = 0
	}
	s.rows = make([]string, n)
	for i := range s.rows {
		s.rows[i] = s.renderRow(i)
	}
	if s.selected >= n {
		s.selected = n - 1
	}
	s.layout()
}

// ReloadRows re-renders the given rows only.
func (s *Surface) ReloadRows(rows ...int) {
	for _, row := range rows {
		if row >= 0 && row < len(s.rows) {
			s.rows[row] = s.renderRow(row)
		}
	}
	s.layout()
}

// InsertRows tells the surface the data source gained rows at the given
// indexes. The selection keeps pointing at the same row.
func (s *Surface) InsertRows(rows ...int) {
	sorted := append([]int(nil), rows...)
	sort.Ints(sorted)
	for _, row := range sorted {
		if s.selected >= 0 && row <= s.selected {
			s.selected++
		}
	}
	s.ReloadData()
}

// DeleteRows tells the surface the data source lost the rows at the given
// indexes. Deleting the selected row clears the selection.
func (s *Surface) DeleteRows(rows ...int) {
	sorted := append([]int(nil), rows...)
	sort.Sort(sort.Reverse(sort.IntSlice(sorted)))
	for _, row := range sorted {
		switch {
		case row == s.selected:
			s.selected = -1
		case s.selected >= 0 && row < s.selected:
			s.selected--
		}
	}
	s.ReloadData()
}

// MoveRow tells the surface a row moved from one index to another.
func (s *Surface) MoveRow(from, to int) {
	switch {
	case s.selected == from:
		s.selected = to
	case from < s.selected && to >= s.selected:
		s.selected--
	case from > s.selected && to <= s.selected && s.selected >= 0:
		s.selected++
	}
	s.ReloadData()
}

// AllowsSelection reports whether rows can be selected.
func (s *Surface) AllowsSelection() bool { return s.allowsSelection }

// SetAllowsSelection enables or disables selection. Disabling clears it.
func (s *Surface) SetAllowsSelection(v bool) {
	s.allowsSelection = v
	if !v && s.selected >= 0 {
		prev := s.selected
		s.selected = -1
		s.ReloadRows(prev)
	}
}

// SelectedRow returns the selected row, if any.
func (s *Surface) SelectedRow() (int, bool) {
	if s.selected < 0 || s.selected >= len(s.rows) {
		return 0, false
	}
	return s.selected, true
}

// SelectRow selects row and scrolls it into view using pos.
func (s *Surface) SelectRow(row int, pos ScrollPosition) {
	if !s.allowsSelection || row < 0 || row >= len(s.rows) {
		return
	}
	prev := s.selected
	s.selected = row
	if prev >= 0 && prev < len(s.rows) && prev != row {
		s.rows[prev] = s.renderRow(prev)
	}
	s.rows[row] = s.renderRow(row)
	s.layout()
	s.ScrollToRow(row, pos)
}

// DeselectRow clears the selection if row is selected.
func (s *Surface) DeselectRow(row int) {
	if s.selected != row || row < 0 {
		return
	}
	s.selected = -1
	s.ReloadRows(row)
}

// MoveSelection moves the selection by delta rows, keeping it visible. With
// no selectable rows it scrolls by delta lines instead.
func (s *Surface) MoveSelection(delta int) {
	if !s.allowsSelection || len(s.rows) == 0 {
		s.ScrollBy(delta)
		return
	}
	row := s.selected + delta
	if s.selected < 0 {
		row = s.firstVisibleRow()
		if delta < 0 {
			row = 0
		}
	}
	row = max(0, min(row, len(s.rows)-1))
	s.SelectRow(row, ScrollNone)
}

// VisibleRows returns the rows that intersect the viewport.
func (s *Surface) VisibleRows() []int {
	top := s.viewport.YOffset
	bottom := top + s.viewport.Height
	var out []int
	for i, start := range s.starts {
		end := start + lipgloss.Height(s.rows[i])
		if end > top && start < bottom {
			out = append(out, i)
		}
	}
	return out
}

// ScrollToRow scrolls so that row is visible at pos. ScrollNone scrolls the
// minimum amount.
func (s *Surface) ScrollToRow(row int, pos ScrollPosition) {
	if row < 0 || row >= len(s.starts) {
		return
	}
	start := s.starts[row]
	end := start + lipgloss.Height(s.rows[row])
	height := s.viewport.Height
	switch pos {
	case ScrollTop:
		s.SetContentOffset(start)
	case ScrollMiddle:
		s.SetContentOffset(start - (height-(end-start))/2)
	case ScrollBottom:
		s.SetContentOffset(end - height)
	default:
		if start < s.viewport.YOffset {
			s.SetContentOffset(start)
		} else if end > s.viewport.YOffset+height {
			s.SetContentOffset(end - height)
		}
	}
}

// ScrollBy moves the content offset by delta lines.
func (s *Surface) ScrollBy(delta int) {
	s.SetContentOffset(s.viewport.YOffset + delta)
}

// ContentOffset is the first visible content line.
func (s *Surface) ContentOffset() int { return s.viewport.YOffset }

// SetContentOffset scrolls to offset, clamped to the content.
func (s *Surface) SetContentOffset(offset int) {
	maxOffset := max(0, s.ContentHeight()-s.viewport.Height)
	s.viewport.SetYOffset(max(0, min(offset, maxOffset)))
}

// ContentHeight is the number of content lines including header and footer.
func (s *Surface) ContentHeight() int {
	return s.headerHeight + s.rowLines + s.footerHeight
}

func (s *Surface) ViewportHeight() int { return s.viewport.Height }

// Metrics returns the current scroll measurements.
func (s *Surface) Metrics() Metrics {
	return Metrics{
		Offset:         s.viewport.YOffset,
		ViewportHeight: s.viewport.Height,
		ContentHeight:  s.ContentHeight(),
	}
}

// AtTop reports whether the first content line is visible.
func (s *Surface) AtTop() bool { return s.viewport.YOffset <= 0 }

func (s *Surface) HeaderView() View { return s.header }

// SetHeaderView sets the view drawn above the rows. A nil view or a
// non-positive height removes it.
func (s *Surface) SetHeaderView(v View, height int) {
	if v == nil || height <= 0 {
		v, height = nil, 0
	}
	relayout := height != s.headerHeight
	s.header, s.headerHeight = v, height
	if relayout {
		s.layout()
	}
}

func (s *Surface) FooterView() View { return s.footer }

// SetFooterView sets the view drawn below the rows. A nil view or a
// non-positive height leaves a zero-height placeholder.
func (s *Surface) SetFooterView(v View, height int) {
	if v == nil || height <= 0 {
		v, height = nil, 0
	}
	relayout := height != s.footerHeight
	s.footer, s.footerHeight = v, height
	if relayout {
		s.layout()
	}
}

// SetFrame updates the spinner frame used by header and footer views. Rows
// are not touched.
func (s *Surface) SetFrame(frame string) { s.frame = frame }

// View renders the visible part of the content. Header and footer are drawn
// over their blank placeholder lines, and only when they are in view.
func (s Surface) View() string {
	width, height := s.viewport.Width, s.viewport.Height
	if width <= 0 || height <= 0 {
		return ""
	}
	lines := strings.Split(Pin(s.viewport.View(), width, height), "\n")
	top := s.viewport.YOffset
	if s.header != nil {
		s.drawOver(lines, s.header, 0, s.headerHeight, top)
	}
	if s.footer != nil {
		s.drawOver(lines, s.footer, s.headerHeight+s.rowLines, s.footerHeight, top)
	}
	return strings.Join(lines, "\n")
}

// drawOver renders v into the visible lines it covers. start is v's first
// content line and top the first visible one.
func (s Surface) drawOver(lines []string, v View, start, height, top int) {
	if start+height <= top || start >= top+len(lines) {
		return
	}
	width := s.viewport.Width
	out := strings.Split(Pin(v.Render(Frame{Width: width, Height: height, Spinner: s.frame}), width, height), "\n")
	for i, line := range out {
		if at := start + i - top; at >= 0 && at < len(lines) {
			lines[at] = line
		}
	}
}

func (s *Surface) renderRow(row int) string {
	if s.source == nil {
		return ""
	}
	selected := s.allowsSelection && row == s.selected
	out := s.source.RenderRow(row, s.viewport.Width, selected)
	if s.viewport.Width <= 0 {
		return out
	}
	lines := strings.Split(out, "\n")
	for i, line := range lines {
		lines[i] = ansi.Truncate(line, s.viewport.Width, "…")
	}
	return strings.Join(lines, "\n")
}

func (s *Surface) firstVisibleRow() int {
	for i, start := range s.starts {
		if start+lipgloss.Height(s.rows[i]) > s.viewport.YOffset {
			return i
		}
	}
	return 0
}

// layout joins the rows into the viewport content between blank lines
// reserved for the header and footer.
func (s *Surface) layout() {
	parts := make([]string, 0, len(s.rows)+2)
	line := s.headerHeight
	if s.headerHeight > 0 {
		parts = append(parts, strings.Repeat("\n", s.headerHeight-1))
	}
	s.starts = make([]int, len(s.rows))
	for i, row := range s.rows {
		s.starts[i] = line
		parts = append(parts, row)
		line += lipgloss.Height(row)
	}
	s.rowLines = line - s.headerHeight
	if s.footerHeight > 0 {
		parts = append(parts, strings.Repeat("\n", s.footerHeight-1))
	}
	offset := s.viewport.YOffset
	s.viewport.SetContent(strings.Join(parts, "\n"))
	s.SetContentOffset(offset)
}
