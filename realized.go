package tui

import "fmt"

// slot is one entry of the realized window. A nil element is a placeholder:
// an index reserved by an insert that the next measure pass will fill.
type slot struct {
	element Component
	size    float64
}

func (s slot) placeholder() bool { return s.element == nil }

// realizedElements is a contiguous run of realized items. Slot i holds item
// firstIndex+i and starts at startU plus the sizes of the slots before it.
//
// Generation only ever grows the run at either end. Inserting or removing
// slots in the middle is reserved for collection change patching.
//
// Items inserted or removed ahead of the run shift its indices but not its
// position, so startU no longer says where firstIndex lives. Position
// queries then report nothing until the next generation rebuilds the run.
type realizedElements struct {
	firstIndex int // -1 when empty
	startU     float64
	slots      []slot
	stale      bool
}

func newRealizedElements() *realizedElements {
	return &realizedElements{firstIndex: -1}
}

// Count returns the number of slots, placeholders included.
func (r *realizedElements) Count() int { return len(r.slots) }

// FirstIndex returns the item index of the first slot, or -1.
func (r *realizedElements) FirstIndex() int { return r.firstIndex }

// LastIndex returns the item index of the last slot, or -1.
func (r *realizedElements) LastIndex() int {
	if r.firstIndex < 0 {
		return -1
	}
	return r.firstIndex + len(r.slots) - 1
}

// StartU returns the position of the first slot along the scrolling axis.
func (r *realizedElements) StartU() float64 { return r.startU }

// EndU returns the position just past the last slot.
func (r *realizedElements) EndU() float64 {
	u := r.startU
	for _, s := range r.slots {
		u += s.size
	}
	return u
}

func (r *realizedElements) contains(index int) bool {
	return r.firstIndex >= 0 && index >= r.firstIndex && index <= r.LastIndex()
}

// Add places an element for index at position u. The index must extend the
// run at either end.
func (r *realizedElements) Add(index int, element Component, u, size float64) {
	if index < 0 {
		panic(fmt.Errorf("%w: realized index %d", ErrArgumentRange, index))
	}
	switch {
	case len(r.slots) == 0:
		r.firstIndex = index
		r.startU = u
		r.stale = false
		r.slots = append(r.slots, slot{element, size})
	case index == r.LastIndex()+1:
		r.slots = append(r.slots, slot{element, size})
	case index == r.firstIndex-1:
		r.slots = append(r.slots, slot{})
		copy(r.slots[1:], r.slots)
		r.slots[0] = slot{element, size}
		r.firstIndex = index
		r.startU = u
	default:
		panic(fmt.Errorf("%w: index %d is not adjacent to realized range [%d, %d]",
			ErrNotSupported, index, r.firstIndex, r.LastIndex()))
	}
}

// Element returns the element realized for index, or nil when the index is
// outside the run or holds a placeholder.
func (r *realizedElements) Element(index int) Component {
	if !r.contains(index) {
		return nil
	}
	return r.slots[index-r.firstIndex].element
}

// IndexOf returns the item index of element, or -1.
func (r *realizedElements) IndexOf(element Component) int {
	for i, s := range r.slots {
		if s.element == element {
			return r.firstIndex + i
		}
	}
	return -1
}

// EstimateElementSize returns the average size of the realized elements.
// Placeholders are not sampled. ok is false when nothing is realized.
func (r *realizedElements) EstimateElementSize() (size float64, ok bool) {
	var total float64
	n := 0
	for _, s := range r.slots {
		if s.placeholder() {
			continue
		}
		total += s.size
		n++
	}
	if n == 0 {
		return 0, false
	}
	return total / float64(n), true
}

// ElementAt finds the slot covering position u. It reports the slot's item
// index and start position; ok is false when u is outside the run or lands
// on a placeholder.
func (r *realizedElements) ElementAt(u float64) (index int, start float64, ok bool) {
	if len(r.slots) == 0 || r.stale || u < r.startU {
		return -1, 0, false
	}
	pos := r.startU
	for i, s := range r.slots {
		if u < pos+s.size {
			if s.placeholder() {
				return -1, 0, false
			}
			return r.firstIndex + i, pos, true
		}
		pos += s.size
	}
	return -1, 0, false
}

// GetOrEstimateElementU returns the position of index along the scrolling
// axis. Inside the run the position is exact; outside it is extrapolated
// from the run's edges using estimate as the size of each unrealized item.
// ok is false when the run is empty or its position is stale.
func (r *realizedElements) GetOrEstimateElementU(index int, estimate float64) (u float64, ok bool) {
	if len(r.slots) == 0 || r.stale {
		return 0, false
	}
	if index < r.firstIndex {
		return r.startU - float64(r.firstIndex-index)*estimate, true
	}
	u = r.startU
	for i, s := range r.slots {
		if r.firstIndex+i == index {
			return u, true
		}
		u += s.size
	}
	return u + float64(index-r.LastIndex()-1)*estimate, true
}

// RecycleElementsBefore drops every slot whose index is below index.
func (r *realizedElements) RecycleElementsBefore(index int, recycle func(Component, int)) {
	if len(r.slots) == 0 || index <= r.firstIndex {
		return
	}
	if index > r.LastIndex() {
		r.RecycleAllElements(recycle)
		return
	}
	n := index - r.firstIndex
	for i := 0; i < n; i++ {
		s := r.slots[i]
		r.startU += s.size
		if !s.placeholder() {
			recycle(s.element, r.firstIndex+i)
		}
	}
	total := len(r.slots)
	r.slots = append(r.slots[:0], r.slots[n:]...)
	clear(r.slots[len(r.slots):total])
	r.firstIndex = index
}

// RecycleElementsAfter drops every slot whose index is above index.
func (r *realizedElements) RecycleElementsAfter(index int, recycle func(Component, int)) {
	if len(r.slots) == 0 || index >= r.LastIndex() {
		return
	}
	if index < r.firstIndex {
		r.RecycleAllElements(recycle)
		return
	}
	keep := index - r.firstIndex + 1
	for i := keep; i < len(r.slots); i++ {
		if s := r.slots[i]; !s.placeholder() {
			recycle(s.element, r.firstIndex+i)
		}
	}
	clear(r.slots[keep:])
	r.slots = r.slots[:keep]
}

// RecycleAllElements recycles every realized element and empties the run.
func (r *realizedElements) RecycleAllElements(recycle func(Component, int)) {
	for i, s := range r.slots {
		if !s.placeholder() {
			recycle(s.element, r.firstIndex+i)
		}
	}
	r.ResetForReuse()
}

// ResetForReuse empties the run without recycling, keeping capacity.
func (r *realizedElements) ResetForReuse() {
	clear(r.slots)
	r.slots = r.slots[:0]
	r.firstIndex = -1
	r.startU = 0
	r.stale = false
}

// ItemsInserted patches the run for count items inserted at index.
// Realized elements that move are re-pointed with updateIndex; inserting
// inside the run opens placeholders at the insertion point.
func (r *realizedElements) ItemsInserted(index, count int, updateIndex func(Component, int, int)) {
	if index < 0 {
		panic(fmt.Errorf("%w: insert index %d", ErrArgumentRange, index))
	}
	if len(r.slots) == 0 || count <= 0 || index > r.LastIndex() {
		return
	}

	if index <= r.firstIndex {
		r.firstIndex += count
		r.stale = true
		r.reindex(0, count, updateIndex)
		return
	}

	at := index - r.firstIndex
	r.slots = append(r.slots, make([]slot, count)...)
	copy(r.slots[at+count:], r.slots[at:])
	clear(r.slots[at : at+count])
	r.reindex(at+count, count, updateIndex)
}

// ItemsRemoved patches the run for count items removed at index. Realized
// elements inside the removed range are recycled once; later elements are
// re-pointed with updateIndex.
func (r *realizedElements) ItemsRemoved(index, count int, updateIndex func(Component, int, int), recycle func(Component, int)) {
	if index < 0 {
		panic(fmt.Errorf("%w: remove index %d", ErrArgumentRange, index))
	}
	if len(r.slots) == 0 || count <= 0 || index > r.LastIndex() {
		return
	}

	end := index + count // exclusive
	if end <= r.firstIndex {
		r.firstIndex -= count
		r.stale = true
		r.reindex(0, -count, updateIndex)
		return
	}

	from := max(index, r.firstIndex) - r.firstIndex
	to := min(end, r.LastIndex()+1) - r.firstIndex // exclusive
	for i := from; i < to; i++ {
		if s := r.slots[i]; !s.placeholder() {
			recycle(s.element, r.firstIndex+i)
		}
	}
	n := len(r.slots)
	r.slots = append(r.slots[:from], r.slots[to:]...)
	clear(r.slots[len(r.slots):n])

	if len(r.slots) == 0 {
		r.ResetForReuse()
		return
	}

	// Slots before the removal keep their indices. The survivors after it
	// move down; if the removal started before the run, those survivors now
	// begin at index.
	if index < r.firstIndex {
		r.firstIndex = index
		r.stale = true
		r.reindex(0, -count, updateIndex)
		return
	}
	r.reindex(from, -count, updateIndex)
}

// ItemsReplaced patches the run for count items replaced at index. Realized
// elements for replaced items are recycled and their slots become
// placeholders that keep the old size; no index moves.
func (r *realizedElements) ItemsReplaced(index, count int, recycle func(Component, int)) {
	if index < 0 {
		panic(fmt.Errorf("%w: replace index %d", ErrArgumentRange, index))
	}
	if len(r.slots) == 0 || count <= 0 {
		return
	}
	from := max(index, r.firstIndex)
	to := min(index+count, r.LastIndex()+1) // exclusive
	for i := from; i < to; i++ {
		s := &r.slots[i-r.firstIndex]
		if s.placeholder() {
			continue
		}
		recycle(s.element, i)
		s.element = nil
	}
}

// reindex reports the new index of every realized element from slot start
// onward, given that items moved by delta.
func (r *realizedElements) reindex(start, delta int, updateIndex func(Component, int, int)) {
	for i := start; i < len(r.slots); i++ {
		if s := r.slots[i]; !s.placeholder() {
			newIndex := r.firstIndex + i
			updateIndex(s.element, newIndex-delta, newIndex)
		}
	}
}
