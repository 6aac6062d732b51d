package listview

// DefaultLoadMoreThreshold is the distance from the bottom, in lines, below
// which load-more fires.
const DefaultLoadMoreThreshold = 64

// Metrics describes the scroll position of the list surface in lines.
type Metrics struct {
	Offset         int
	ViewportHeight int
	ContentHeight  int
}

// DistanceFromBottom is the number of content lines below the viewport. It is
// negative when the content is shorter than the viewport.
func (m Metrics) DistanceFromBottom() int {
	return m.ContentHeight - m.ViewportHeight - m.Offset
}

// ShouldTrigger reports whether the viewport is closer to the end of the
// content than threshold.
func ShouldTrigger(offsetY, viewportHeight, contentHeight, threshold int) bool {
	return contentHeight-viewportHeight-offsetY < threshold
}
