package tui

import "sync"

// Buffer pool - keyed by capacity to avoid reallocating cells
var bufferPool = sync.Pool{
	New: func() any { return &Buffer{} },
}

// GetBuffer gets a cleared buffer from the pool, resizing if needed.
func GetBuffer(width, height int) *Buffer {
	b := bufferPool.Get().(*Buffer)
	b.reset(width, height)
	return b
}

// PutBuffer returns a buffer to the pool.
func PutBuffer(b *Buffer) {
	if b == nil {
		return
	}
	bufferPool.Put(b)
}

// ReleaseTree recursively releases all components in a tree back to their pools.
func ReleaseTree(c Component) {
	if c == nil {
		return
	}

	// Release children first (depth-first)
	if cont, ok := c.(Container); ok {
		for _, child := range cont.Children() {
			ReleaseTree(child)
		}
	}

	switch v := c.(type) {
	case *TextComponent:
		textPool.Put(v)
	case *StackComponent:
		stackPool.Put(v)
	}
}

// PoolingFactory is an ElementFactory that keeps recycled elements on a free
// list and hands them out again before creating new ones. Pooled elements
// stay attached to their parent, hidden, so reuse needs no re-parenting.
type PoolingFactory[T any] struct {
	create func(item T, index int) Component
	free   []Component

	created int
	reused  int
}

// NewPoolingFactory creates a factory that builds new elements with create.
func NewPoolingFactory[T any](create func(item T, index int) Component) *PoolingFactory[T] {
	return &PoolingFactory[T]{create: create}
}

// GetElement implements ElementFactory.
func (f *PoolingFactory[T]) GetElement(item T, index int, parent Container) Component {
	if n := len(f.free); n > 0 {
		el := f.free[n-1]
		f.free[n-1] = nil
		f.free = f.free[:n-1]
		f.reused++
		return el
	}
	el := f.create(item, index)
	f.created++
	if parent != nil {
		parent.Add(el)
	}
	return el
}

// RecycleElement implements ElementFactory.
func (f *PoolingFactory[T]) RecycleElement(c Component, parent Container) {
	f.free = append(f.free, c)
}

// Stats reports how many elements were created, how many requests were
// served from the pool, and how many elements are pooled now.
func (f *PoolingFactory[T]) Stats() (created, reused, pooled int) {
	return f.created, f.reused, len(f.free)
}

// Release detaches every pooled element from its parent and returns its
// components to their sync pools.
func (f *PoolingFactory[T]) Release() {
	for _, el := range f.free {
		if p := el.Parent(); p != nil {
			p.Remove(el)
		}
		ReleaseTree(el)
	}
	clear(f.free)
	f.free = f.free[:0]
}
