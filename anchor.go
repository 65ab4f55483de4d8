package tui

// BringIntoView scrolls the item at index into view and returns the element
// showing it, or nil when the item could not be realized.
//
// A realized item is handed straight to the host. Otherwise the item is
// realized outside the window as an anchor, placed at its known or
// estimated position, scrolled to, and one layout pass is forced. Until the
// host reports the new viewport, measure keeps the previous result so the
// anchor survives the pass. The anchor is cleared afterwards; if the new
// window did not take it over it is recycled.
func (p *Presenter[T]) BringIntoView(index int) Component {
	if index < 0 || index >= p.itemCount() {
		return nil
	}
	// A scroll-into-view is already pending.
	if p.anchorElement != nil {
		return nil
	}

	if el := p.realized.Element(index); el != nil {
		if p.host != nil {
			b := el.Bounds()
			p.host.BringIntoView(el, Rect{Width: b.Width, Height: b.Height})
		}
		return el
	}
	if p.host == nil {
		return nil
	}

	el := p.realizeElement(index)
	el.SetConstraints(0, 0)
	w, h := el.Size()
	sizeU, sizeV := p.orientation.uv(float64(w), float64(h))

	u, ok := 0.0, false
	if p.lookup != nil {
		u, ok = p.lookup.ElementPosition(index)
	}
	if !ok {
		estimate := p.estimateElementSize()
		if u, ok = p.realized.GetOrEstimateElementU(index, estimate); !ok {
			u = float64(index) * estimate
		}
	}

	p.anchorIndex = index
	p.anchorElement = el
	p.anchorRect = p.orientation.rect(u, 0, sizeU, sizeV)
	el.Arrange(p.anchorRect)
	p.waitingForViewportUpdate = true

	logger.Debug("presenter bring into view", "index", index, "u", u)

	p.host.BringIntoView(el, Rect{Width: p.anchorRect.Width, Height: p.anchorRect.Height})
	p.host.ExecuteLayoutPass()

	result := p.realized.Element(index)
	if p.anchorElement != nil {
		p.recycleAnchor()
	}
	if p.waitingForViewportUpdate {
		// The viewport never moved, so the skipped measure is still owed.
		p.waitingForViewportUpdate = false
		p.invalidateMeasure()
	}
	return result
}

// recycleAnchor clears the anchor, recycling its element unless the realized
// window has taken it over.
func (p *Presenter[T]) recycleAnchor() {
	el, index := p.anchorElement, p.anchorIndex
	p.anchorElement = nil
	p.anchorIndex = -1
	p.anchorRect = Rect{}
	if p.realized.Element(index) != el {
		p.recycleElement(el, index)
	}
}
