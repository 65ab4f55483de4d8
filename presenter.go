package tui

import (
	"fmt"
	"math"
)

// Presenter displays an ItemSource as a virtualized stack. Only the items
// that cover the current viewport are realized as child components; the
// rest exist only as an estimated extent along the scrolling axis.
//
// A Presenter is driven by a LayoutHost: SetConstraints measures and
// generates the realized window, Arrange positions it, and
// OnViewportChanged tells it which part of itself is visible. All calls must
// come from the goroutine that owns the component tree.
type Presenter[T any] struct {
	BaseContainer

	source      ItemSource[T]
	unsubscribe func()
	factory     ElementFactory[T]
	binder      Binder[T]
	lookup      PositionLookup
	host        LayoutHost
	orientation Direction

	// realized is the window the host currently sees. measureElems
	// accumulates the next window during a measure pass; the two are
	// swapped once generation completes.
	realized     *realizedElements
	measureElems *realizedElements

	viewport     Rect
	lastEstimate float64
	extentU      float64
	measuredV    float64

	anchorIndex              int
	anchorElement            Component
	anchorRect               Rect
	waitingForViewportUpdate bool
}

// NewPresenter creates a presenter configured by cfg.
func NewPresenter[T any](cfg Config) *Presenter[T] {
	estimate := cfg.EstimatedItemSize
	if estimate <= 0 {
		estimate = DefaultEstimatedItemSize
	}
	p := &Presenter[T]{
		binder:       BinderFuncs[T]{},
		orientation:  cfg.Orientation(),
		realized:     newRealizedElements(),
		measureElems: newRealizedElements(),
		viewport:     invalidViewport,
		lastEstimate: estimate,
		anchorIndex:  -1,
	}
	p.style = DefaultStyle()
	return p
}

// SetSource replaces the item source. Realized elements are recycled and
// the presenter subscribes to the new source if it reports changes.
func (p *Presenter[T]) SetSource(src ItemSource[T]) *Presenter[T] {
	if p.unsubscribe != nil {
		p.unsubscribe()
		p.unsubscribe = nil
	}
	p.realized.RecycleAllElements(p.recycleElement)
	p.source = src
	p.lookup = nil
	if src != nil {
		if n, ok := src.(Notifier[T]); ok {
			p.unsubscribe = n.Subscribe(p.onItemsChanged)
		}
		if l, ok := src.(PositionLookup); ok {
			p.lookup = l
		}
	}
	p.invalidateMeasure()
	return p
}

// Source returns the item source.
func (p *Presenter[T]) Source() ItemSource[T] {
	return p.source
}

// SetFactory sets the element factory. It must be set before the first
// measure with a non-empty source.
func (p *Presenter[T]) SetFactory(f ElementFactory[T]) *Presenter[T] {
	p.factory = f
	return p
}

// SetBinder sets the hooks that bind elements to items.
func (p *Presenter[T]) SetBinder(b Binder[T]) *Presenter[T] {
	if b == nil {
		b = BinderFuncs[T]{}
	}
	p.binder = b
	return p
}

// SetPositionLookup overrides the position lookup. A nil lookup falls back
// to the uniform size estimate.
func (p *Presenter[T]) SetPositionLookup(l PositionLookup) *Presenter[T] {
	p.lookup = l
	return p
}

// SetLayoutHost implements hostAware.
func (p *Presenter[T]) SetLayoutHost(h LayoutHost) {
	p.host = h
}

// Orientation returns the scrolling direction.
func (p *Presenter[T]) Orientation() Direction {
	return p.orientation
}

// Close unsubscribes from the item source.
func (p *Presenter[T]) Close() {
	if p.unsubscribe != nil {
		p.unsubscribe()
		p.unsubscribe = nil
	}
}

// RealizedRange returns the first and last realized item indices, or -1, -1.
func (p *Presenter[T]) RealizedRange() (first, last int) {
	return p.realized.FirstIndex(), p.realized.LastIndex()
}

// ElementAt returns the element realized for index, or nil.
func (p *Presenter[T]) ElementAt(index int) Component {
	if p.anchorElement != nil && index == p.anchorIndex {
		return p.anchorElement
	}
	return p.realized.Element(index)
}

// IndexOf returns the item index an element is realized for, or -1.
func (p *Presenter[T]) IndexOf(c Component) int {
	if c != nil && c == p.anchorElement {
		return p.anchorIndex
	}
	return p.realized.IndexOf(c)
}

// Realized calls fn for every realized element in index order.
// Placeholders are skipped.
func (p *Presenter[T]) Realized(fn func(index int, c Component)) {
	for i, s := range p.realized.slots {
		if !s.placeholder() {
			fn(p.realized.firstIndex+i, s.element)
		}
	}
}

// Extent returns the estimated size of all items along the scrolling axis.
func (p *Presenter[T]) Extent() float64 {
	return p.extentU
}

// Add attaches elements as children. Factories call this through the parent
// they are given; the presenter also calls it for elements that come back
// from GetElement without a parent.
func (p *Presenter[T]) Add(children ...Component) Container {
	for _, child := range children {
		if child.Parent() == Container(p) {
			continue
		}
		child.SetParent(p)
		p.AddChild(child)
	}
	return p
}

// Clear is not supported: a presenter's children are owned by its realized
// window and element factory and are never reset from outside.
func (p *Presenter[T]) Clear() {
	panic(fmt.Errorf("%w: resetting the children of a presenter", ErrNotSupported))
}

func (p *Presenter[T]) itemCount() int {
	if p.source == nil {
		return 0
	}
	return p.source.Len()
}

func (p *Presenter[T]) invalidateMeasure() {
	p.InvalidateMeasure()
	if p.host != nil {
		p.host.InvalidateMeasure(p)
	}
}

// SetConstraints implements Component. This is the measure pass: it works
// out which items the viewport needs, realizes them into a new window and
// reports the estimated extent as the desired size.
func (p *Presenter[T]) SetConstraints(width, height int) {
	p.Base.SetConstraints(width, height)

	// A scroll-into-view is waiting for the host to move the viewport.
	// Measuring now would use the stale viewport and throw the anchor away.
	if p.waitingForViewportUpdate {
		return
	}

	count := p.itemCount()
	if count == 0 {
		p.realized.RecycleAllElements(p.recycleElement)
		p.extentU, p.measuredV = 0, 0
		p.SetSize(0, 0)
		return
	}
	if p.factory == nil {
		panic(fmt.Errorf("%w: presenter has %d items to realize", ErrNoElementFactory, count))
	}

	vp := p.calculateMeasureViewport(count)

	// A new window that does not touch the old one shares no elements with
	// it, so recycle everything instead of walking the boundaries.
	if p.realized.Count() > 0 &&
		(vp.estimatedLastIndex < p.realized.FirstIndex() || vp.firstIndex > p.realized.LastIndex()) {
		p.realized.RecycleAllElements(p.recycleElement)
	} else {
		p.realized.RecycleElementsBefore(vp.firstIndex, p.recycleElement)
	}

	availV := width
	if p.orientation == Horizontal {
		availV = height
	}
	p.generateElements(availV, &vp, count)

	// Drop whatever the old window held past the end of the new one, then
	// swap.
	p.realized.RecycleElementsAfter(p.measureElems.LastIndex(), p.recycleElement)
	p.realized, p.measureElems = p.measureElems, p.realized
	p.measureElems.ResetForReuse()

	p.measuredV = vp.measuredV
	p.extentU = p.calculateExtent(count)
	w, h := p.orientation.wh(p.extentU, p.measuredV)
	p.SetSize(int(math.Ceil(w)), int(math.Ceil(h)))

	logger.Debug("presenter measure",
		"first", p.realized.FirstIndex(),
		"last", p.realized.LastIndex(),
		"viewport_start", vp.viewportUStart,
		"viewport_end", vp.viewportUEnd,
		"extent", p.extentU)
}

// generateElements realizes items from vp.firstIndex into measureElems
// until the viewport end is covered or the items run out. At least one
// element is generated.
func (p *Presenter[T]) generateElements(availV int, vp *measureViewport, count int) {
	u := vp.startU
	index := vp.firstIndex
	for {
		el := p.getOrCreateElement(index)
		p.measureElement(el, availV)

		w, h := el.Size()
		sizeU, sizeV := p.orientation.uv(float64(w), float64(h))
		vp.measuredV = max(vp.measuredV, sizeV)

		p.measureElems.Add(index, el, u, sizeU)
		u += sizeU
		index++
		if u >= vp.viewportUEnd || index >= count {
			break
		}
	}
}

// getOrCreateElement returns the anchor or the element already realized
// for index, realizing a new one only when neither exists.
func (p *Presenter[T]) getOrCreateElement(index int) Component {
	if p.anchorElement != nil && index == p.anchorIndex {
		return p.anchorElement
	}
	if el := p.realized.Element(index); el != nil {
		return el
	}
	return p.realizeElement(index)
}

func (p *Presenter[T]) realizeElement(index int) Component {
	if p.factory == nil {
		panic(fmt.Errorf("%w: realizing item %d", ErrNoElementFactory, index))
	}
	item := p.source.At(index)
	el := p.factory.GetElement(item, index, p)
	if el.Parent() != Container(p) {
		p.Add(el)
	}
	el.SetHidden(false)
	p.binder.Realize(el, item, index)
	return el
}

// measureElement measures el along the cross axis, reusing its last measure
// when nothing below it changed and the constraint is the same.
func (p *Presenter[T]) measureElement(el Component, availV int) {
	w, h := availV, 0
	if p.orientation == Horizontal {
		w, h = 0, availV
	}
	if el.IsMeasureValid() && !hasInvalidDescendant(el) {
		if c, ok := el.(interface{ Constraints() (int, int) }); ok {
			if cw, ch := c.Constraints(); cw == w && ch == h {
				return
			}
		}
	}
	el.SetConstraints(w, h)
}

// recycleElement unbinds an element, hides it and returns it to the
// factory.
func (p *Presenter[T]) recycleElement(el Component, index int) {
	if el == p.anchorElement {
		p.anchorElement = nil
		p.anchorIndex = -1
	}
	p.binder.Unrealize(el)
	el.SetHidden(true)
	if p.factory != nil {
		p.factory.RecycleElement(el, p)
	}
	logger.Debug("presenter recycle", "index", index)
}

func (p *Presenter[T]) updateElementIndex(el Component, oldIndex, newIndex int) {
	p.binder.UpdateIndex(el, newIndex)
}

// estimateElementSize returns the average realized size, remembering it so
// that an empty window keeps the last known estimate.
func (p *Presenter[T]) estimateElementSize() float64 {
	if size, ok := p.realized.EstimateElementSize(); ok && size > 0 {
		p.lastEstimate = size
	}
	return p.lastEstimate
}

// calculateExtent estimates the size of all items along the scrolling axis.
func (p *Presenter[T]) calculateExtent(count int) float64 {
	extent := p.estimateElementSize() * float64(count)
	if p.realized.LastIndex() == count-1 {
		extent = max(extent, p.realized.EndU())
	}
	return extent
}

// Arrange implements Component. Realized elements are stacked from the
// window's start position; placeholders take no space.
func (p *Presenter[T]) Arrange(r Rect) {
	p.Base.Arrange(r)
	_, finalV := p.orientation.uv(r.Width, r.Height)

	u := p.realized.StartU()
	for _, s := range p.realized.slots {
		if !s.placeholder() {
			w, h := s.element.Size()
			_, sizeV := p.orientation.uv(float64(w), float64(h))
			s.element.Arrange(p.orientation.rect(u, 0, s.size, max(finalV, sizeV)))
		}
		u += s.size
	}

	if p.anchorElement != nil && p.realized.Element(p.anchorIndex) != p.anchorElement {
		p.anchorElement.Arrange(p.anchorRect)
	}
}

// Render implements Component.
func (p *Presenter[T]) Render(buf *Buffer, x, y int) {
	for _, child := range p.children {
		if child.Hidden() {
			continue
		}
		b := child.Bounds()
		child.Render(buf, x+cells(b.X), y+cells(b.Y))
	}
}

// OnViewportChanged implements ViewportListener. A new measure is requested
// when either end of the viewport or its cross size moves, so the window
// follows the viewport in both directions, or while a scroll-into-view waits
// for this notification.
func (p *Presenter[T]) OnViewportChanged(vp Rect) {
	old := p.viewport
	p.viewport = vp

	if p.waitingForViewportUpdate {
		p.waitingForViewportUpdate = false
		p.invalidateMeasure()
		return
	}

	oldStart, oldEnd := p.orientation.span(old)
	start, end := p.orientation.span(vp)
	_, oldV := p.orientation.uv(old.Width, old.Height)
	_, newV := p.orientation.uv(vp.Width, vp.Height)
	if start != oldStart || end != oldEnd || newV != oldV {
		p.invalidateMeasure()
	}
}
