package tui

import "math"

// measureViewport is the plan for one measure pass: the range of items the
// viewport needs and where the first of them starts.
type measureViewport struct {
	firstIndex         int
	estimatedLastIndex int
	viewportUStart     float64
	viewportUEnd       float64
	startU             float64
	measuredV          float64
}

// calculateMeasureViewport resolves the viewport to item indices. The first
// index comes from the position lookup when there is one, then from the
// realized window, and finally from the uniform size estimate.
func (p *Presenter[T]) calculateMeasureViewport(count int) measureViewport {
	vp := p.viewport
	if !vp.Valid() {
		vp = p.estimateViewport()
	}
	start, end := p.orientation.span(vp)
	estimate := p.estimateElementSize()

	first, firstU := -1, 0.0
	if p.lookup != nil {
		first, firstU = p.lookup.ElementAt(start)
	}
	if first < 0 || first >= count {
		if i, u, ok := p.realized.ElementAt(start); ok && i < count {
			first, firstU = i, u
		} else {
			first = clampIndex(start/estimate, count)
			firstU = float64(first) * estimate
		}
	}

	last := -1
	if p.lookup != nil {
		last, _ = p.lookup.ElementAt(end)
	}
	if last < 0 || last >= count {
		last = clampIndex(end/estimate, count)
	}

	return measureViewport{
		firstIndex:         first,
		estimatedLastIndex: max(first, last),
		viewportUStart:     start,
		viewportUEnd:       end,
		startU:             firstU,
	}
}

// estimateViewport guesses the visible rectangle before the host has
// reported one, using the nearest ancestor that has been arranged. Without
// such an ancestor the result is an empty rectangle at the origin.
func (p *Presenter[T]) estimateViewport() Rect {
	for a := p.Parent(); a != nil; a = a.Parent() {
		b := a.Bounds()
		if b.Empty() {
			continue
		}
		x, y, ok := offsetWithin(p, a)
		if !ok {
			break
		}
		return Rect{X: -x, Y: -y, Width: b.Width, Height: b.Height}
	}
	return Rect{}
}

func clampIndex(f float64, count int) int {
	if math.IsNaN(f) || f < 0 {
		return 0
	}
	if f >= float64(count-1) {
		return count - 1
	}
	return int(math.Floor(f))
}
