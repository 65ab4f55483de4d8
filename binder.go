package tui

// ElementFactory produces the components that display items. GetElement may
// return a pooled component; RecycleElement hands one back once the presenter
// no longer shows it. How elements are pooled is up to the factory.
type ElementFactory[T any] interface {
	GetElement(item T, index int, parent Container) Component
	RecycleElement(c Component, parent Container)
}

// Binder connects elements to items. The presenter calls exactly one hook
// per event: Realize when an element starts showing an item, UpdateIndex
// when the item it shows moved to another index, Unrealize before the
// element is recycled.
type Binder[T any] interface {
	Realize(c Component, item T, index int)
	UpdateIndex(c Component, index int)
	Unrealize(c Component)
}

// PositionLookup is optionally implemented by sources that know where their
// items are along the scrolling axis. ElementAt returns the index of the item
// covering u and the position where that item starts, or -1 when unknown.
// ElementPosition returns the start of index, if known.
type PositionLookup interface {
	ElementAt(u float64) (index int, start float64)
	ElementPosition(index int) (u float64, ok bool)
}

// Selection answers whether an item is selected.
type Selection interface {
	IsSelected(index int) bool
}

// LayoutHost is the layout engine a presenter lives in.
type LayoutHost interface {
	// InvalidateMeasure schedules a measure pass that includes c.
	InvalidateMeasure(c Component)
	// InvalidateArrange schedules an arrange pass that includes c.
	InvalidateArrange(c Component)
	// ExecuteLayoutPass runs pending layout work immediately.
	ExecuteLayoutPass()
	// BringIntoView scrolls the nearest scrollable ancestor of c so that r,
	// given in c's coordinates, becomes visible.
	BringIntoView(c Component, r Rect) bool
}

// ViewportListener receives the visible part of a component, in the
// component's own coordinates, after each arrange of its scroll viewer.
type ViewportListener interface {
	OnViewportChanged(viewport Rect)
}

// hostAware is implemented by components that talk to the layout host.
type hostAware interface {
	SetLayoutHost(LayoutHost)
}

// BinderFuncs adapts plain functions to Binder. Nil fields are skipped.
type BinderFuncs[T any] struct {
	OnRealize     func(c Component, item T, index int)
	OnUpdateIndex func(c Component, index int)
	OnUnrealize   func(c Component)
}

// Realize implements Binder.
func (b BinderFuncs[T]) Realize(c Component, item T, index int) {
	if b.OnRealize != nil {
		b.OnRealize(c, item, index)
	}
}

// UpdateIndex implements Binder.
func (b BinderFuncs[T]) UpdateIndex(c Component, index int) {
	if b.OnUpdateIndex != nil {
		b.OnUpdateIndex(c, index)
	}
}

// Unrealize implements Binder.
func (b BinderFuncs[T]) Unrealize(c Component) {
	if b.OnUnrealize != nil {
		b.OnUnrealize(c)
	}
}
