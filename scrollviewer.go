package tui

import "math"

// ScrollViewer shows a window onto a single content component that may be
// larger than the viewer along the scrolling direction. The content is
// measured without a limit along that axis; its desired size is the scroll
// extent. After each arrange the visible part of the content is reported to
// content implementing ViewportListener, which is how a Presenter learns
// what to realize.
type ScrollViewer struct {
	BaseContainer
	content   Component
	direction Direction
	host      LayoutHost

	offset   float64 // scroll position along direction
	extent   float64 // content size along direction
	viewport float64 // visible size along direction
	cross    float64 // visible size across direction

	scrollbar    bool
	pageOverlap  int
	lastViewport Rect

	trackStyle Style
	thumbStyle Style
}

// NewScrollViewer creates a viewer around content.
func NewScrollViewer(content Component, cfg Config) *ScrollViewer {
	sv := &ScrollViewer{
		direction:    cfg.Orientation(),
		scrollbar:    cfg.Scrollbar,
		pageOverlap:  cfg.PageOverlap,
		lastViewport: invalidViewport,
		trackStyle:   DefaultStyle().Foreground(BrightBlack),
		thumbStyle:   DefaultStyle().Foreground(White),
	}
	sv.style = DefaultStyle()
	if content != nil {
		sv.SetContent(content)
	}
	return sv
}

// SetContent replaces the scrolled component.
func (sv *ScrollViewer) SetContent(c Component) {
	if sv.content != nil {
		sv.BaseContainer.Remove(sv.content)
	}
	sv.content = c
	sv.offset = 0
	sv.lastViewport = invalidViewport
	if c != nil {
		c.SetParent(sv)
		sv.AddChild(c)
	}
	sv.invalidateMeasure()
}

// Content returns the scrolled component.
func (sv *ScrollViewer) Content() Component {
	return sv.content
}

// Add implements Container. The last component given becomes the content.
func (sv *ScrollViewer) Add(children ...Component) Container {
	if n := len(children); n > 0 {
		sv.SetContent(children[n-1])
	}
	return sv
}

// Remove implements Container.
func (sv *ScrollViewer) Remove(child Component) {
	if child == sv.content {
		sv.SetContent(nil)
	}
}

// Clear implements Container.
func (sv *ScrollViewer) Clear() {
	sv.SetContent(nil)
}

// SetLayoutHost implements hostAware.
func (sv *ScrollViewer) SetLayoutHost(h LayoutHost) {
	sv.host = h
}

// SetScrollbarStyle sets the track and thumb styles.
func (sv *ScrollViewer) SetScrollbarStyle(track, thumb Style) {
	sv.trackStyle = track
	sv.thumbStyle = thumb
}

func (sv *ScrollViewer) invalidateMeasure() {
	sv.InvalidateMeasure()
	if sv.host != nil {
		sv.host.InvalidateMeasure(sv)
	}
}

// MinSize implements Component.
func (sv *ScrollViewer) MinSize() (int, int) {
	return 1, 1
}

// SetConstraints implements Component. The viewer takes all the space it is
// given; the content is measured unconstrained along the scrolling axis.
func (sv *ScrollViewer) SetConstraints(width, height int) {
	sv.Base.SetConstraints(width, height)
	sv.width, sv.height = width, height
	if sv.content == nil {
		sv.extent = 0
		return
	}

	if sv.direction == Vertical {
		cw := width
		if sv.scrollbar && cw > 1 {
			cw--
		}
		sv.content.SetConstraints(cw, 0)
	} else {
		ch := height
		if sv.scrollbar && ch > 1 {
			ch--
		}
		sv.content.SetConstraints(0, ch)
	}

	w, h := sv.content.Size()
	sv.extent, _ = sv.direction.uv(float64(w), float64(h))
	if width == 0 {
		sv.width = w
	}
	if height == 0 {
		sv.height = h
	}
}

// Arrange implements Component.
func (sv *ScrollViewer) Arrange(r Rect) {
	sv.Base.Arrange(r)
	sv.viewport, sv.cross = sv.direction.uv(r.Width, r.Height)
	if sv.scrollbar && sv.cross > 1 {
		sv.cross--
	}
	sv.offset = sv.clamp(sv.offset)

	if sv.content == nil {
		return
	}
	w, h := sv.content.Size()
	contentU, contentV := sv.direction.uv(float64(w), float64(h))
	sv.content.Arrange(sv.direction.rect(0, 0, max(contentU, sv.viewport), max(contentV, sv.cross)))

	vp := sv.direction.rect(sv.offset, 0, sv.viewport, sv.cross)
	if vp != sv.lastViewport {
		sv.lastViewport = vp
		if l, ok := sv.content.(ViewportListener); ok {
			l.OnViewportChanged(vp)
		}
	}
}

// Render implements Component.
func (sv *ScrollViewer) Render(buf *Buffer, x, y int) {
	if sv.content == nil {
		return
	}
	vw, vh := sv.direction.wh(sv.viewport, sv.cross)
	ox, oy := sv.direction.wh(sv.offset, 0)

	buf.PushClip(x, y, cells(vw), cells(vh))
	sv.content.Render(buf, x-cells(ox), y-cells(oy))
	buf.PopClip()

	if sv.scrollbar {
		sv.renderScrollbar(buf, x, y)
	}
}

// renderScrollbar draws a track with a thumb sized to the visible fraction
// of the extent.
func (sv *ScrollViewer) renderScrollbar(buf *Buffer, x, y int) {
	track := cells(sv.viewport)
	if track < 1 || sv.extent <= sv.viewport {
		return
	}
	thumb := max(1, int(float64(track)*sv.viewport/sv.extent))
	pos := 0
	if maxScroll := sv.MaxScroll(); maxScroll > 0 {
		pos = int(math.Round(float64(track-thumb) * sv.offset / maxScroll))
	}

	edge := cells(sv.cross)
	for i := 0; i < track; i++ {
		cell := NewCell('│', sv.trackStyle)
		if i >= pos && i < pos+thumb {
			cell = NewCell('┃', sv.thumbStyle)
		}
		if sv.direction == Vertical {
			buf.Set(x+edge, y+i, cell)
		} else {
			if cell.Rune == '│' {
				cell.Rune = '─'
			} else {
				cell.Rune = '━'
			}
			buf.Set(x+i, y+edge, cell)
		}
	}
}

func (sv *ScrollViewer) clamp(off float64) float64 {
	return max(0, min(off, sv.MaxScroll()))
}

// Offset returns the current scroll position.
func (sv *ScrollViewer) Offset() float64 {
	return sv.offset
}

// Extent returns the content size along the scrolling direction.
func (sv *ScrollViewer) Extent() float64 {
	return sv.extent
}

// ViewportSize returns the visible size along the scrolling direction.
func (sv *ScrollViewer) ViewportSize() float64 {
	return sv.viewport
}

// MaxScroll returns the maximum scroll position.
func (sv *ScrollViewer) MaxScroll() float64 {
	return max(0, sv.extent-sv.viewport)
}

// ScrollTo sets the scroll position, clamping to valid range.
func (sv *ScrollViewer) ScrollTo(off float64) {
	off = sv.clamp(off)
	if off == sv.offset {
		return
	}
	sv.offset = off
	if sv.host != nil {
		sv.host.InvalidateArrange(sv)
	}
}

// ScrollDown scrolls down (or right) by n cells.
func (sv *ScrollViewer) ScrollDown(n int) {
	sv.ScrollTo(sv.offset + float64(n))
}

// ScrollUp scrolls up (or left) by n cells.
func (sv *ScrollViewer) ScrollUp(n int) {
	sv.ScrollTo(sv.offset - float64(n))
}

// ScrollToTop scrolls to the start.
func (sv *ScrollViewer) ScrollToTop() {
	sv.ScrollTo(0)
}

// ScrollToEnd scrolls to the end.
func (sv *ScrollViewer) ScrollToEnd() {
	sv.ScrollTo(sv.MaxScroll())
}

func (sv *ScrollViewer) page() int {
	return max(1, cells(sv.viewport)-sv.pageOverlap)
}

// PageDown scrolls down by one viewport, less the configured overlap.
func (sv *ScrollViewer) PageDown() {
	sv.ScrollDown(sv.page())
}

// PageUp scrolls up by one viewport, less the configured overlap.
func (sv *ScrollViewer) PageUp() {
	sv.ScrollUp(sv.page())
}

// HalfPageDown scrolls down by half a viewport.
func (sv *ScrollViewer) HalfPageDown() {
	sv.ScrollDown(max(1, cells(sv.viewport)/2))
}

// HalfPageUp scrolls up by half a viewport.
func (sv *ScrollViewer) HalfPageUp() {
	sv.ScrollUp(max(1, cells(sv.viewport)/2))
}

// BringIntoView scrolls the least distance that makes r visible. r is given
// in the coordinates of target, which must be inside the content.
func (sv *ScrollViewer) BringIntoView(target Component, r Rect) bool {
	if sv.content == nil {
		return false
	}
	x, y, ok := offsetWithin(target, sv.content)
	if !ok {
		return false
	}
	start, end := sv.direction.span(r.Translate(x, y))

	off := sv.offset
	if end > off+sv.viewport {
		off = end - sv.viewport
	}
	if start < off {
		off = start
	}
	sv.ScrollTo(off)
	return true
}
