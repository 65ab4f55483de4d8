package tui

// ItemSource is an ordered, indexable collection that a Presenter displays.
type ItemSource[T any] interface {
	Len() int
	At(i int) T
}

// Notifier is implemented by item sources that report their changes.
// Subscribe returns a function that removes the listener.
type Notifier[T any] interface {
	Subscribe(fn func(Change[T])) (unsubscribe func())
}

// Slice adapts a plain slice to ItemSource. It never notifies.
type Slice[T any] []T

// Len implements ItemSource.
func (s Slice[T]) Len() int { return len(s) }

// At implements ItemSource.
func (s Slice[T]) At(i int) T { return s[i] }

// Change describes a modification to an observable.
// Index and Count give the affected range; Reset ignores both.
type Change[T any] struct {
	Type  ChangeType
	Index int
	Count int
	Items []T // For Insert/Replace, the new values
}

type ChangeType int

const (
	ChangeInsert ChangeType = iota
	ChangeRemove
	ChangeReplace
	ChangeReset
)

func (t ChangeType) String() string {
	switch t {
	case ChangeInsert:
		return "insert"
	case ChangeRemove:
		return "remove"
	case ChangeReplace:
		return "replace"
	case ChangeReset:
		return "reset"
	}
	return "unknown"
}

// Observable is a generic list that notifies listeners on changes.
// It separates data management from UI representation.
type Observable[T any] struct {
	items     []T
	listeners []func(Change[T])
}

// NewObservable creates a new observable list.
func NewObservable[T any](items ...T) *Observable[T] {
	return &Observable[T]{items: items}
}

// Items returns all items.
func (o *Observable[T]) Items() []T {
	return o.items
}

// Len returns the number of items.
func (o *Observable[T]) Len() int {
	return len(o.items)
}

// At returns the item at index i, or zero value if out of bounds.
func (o *Observable[T]) At(i int) T {
	if i < 0 || i >= len(o.items) {
		var zero T
		return zero
	}
	return o.items[i]
}

// Set replaces all items.
func (o *Observable[T]) Set(items []T) *Observable[T] {
	o.items = items
	o.notify(Change[T]{Type: ChangeReset})
	return o
}

// Add appends items.
func (o *Observable[T]) Add(items ...T) *Observable[T] {
	return o.InsertRange(len(o.items), items...)
}

// Insert inserts an item at index i.
func (o *Observable[T]) Insert(i int, item T) *Observable[T] {
	return o.InsertRange(i, item)
}

// InsertRange inserts items starting at index i. The index is clamped to
// the list bounds.
func (o *Observable[T]) InsertRange(i int, items ...T) *Observable[T] {
	if len(items) == 0 {
		return o
	}
	i = max(0, min(i, len(o.items)))
	tail := append([]T(nil), o.items[i:]...)
	o.items = append(append(o.items[:i], items...), tail...)
	o.notify(Change[T]{Type: ChangeInsert, Index: i, Count: len(items), Items: items})
	return o
}

// RemoveAt removes the item at index i.
func (o *Observable[T]) RemoveAt(i int) *Observable[T] {
	return o.RemoveRange(i, 1)
}

// RemoveRange removes count items starting at index i. Out of range
// requests are clipped; an empty result is a no-op.
func (o *Observable[T]) RemoveRange(i, count int) *Observable[T] {
	if i < 0 {
		count += i
		i = 0
	}
	count = min(count, len(o.items)-i)
	if count <= 0 {
		return o
	}
	o.items = append(o.items[:i], o.items[i+count:]...)
	o.notify(Change[T]{Type: ChangeRemove, Index: i, Count: count})
	return o
}

// Update modifies the item at index i.
func (o *Observable[T]) Update(i int, fn func(*T)) *Observable[T] {
	if i < 0 || i >= len(o.items) {
		return o
	}
	fn(&o.items[i])
	o.notify(Change[T]{Type: ChangeReplace, Index: i, Count: 1, Items: o.items[i : i+1]})
	return o
}

// Clear removes all items.
func (o *Observable[T]) Clear() *Observable[T] {
	o.items = o.items[:0]
	o.notify(Change[T]{Type: ChangeReset})
	return o
}

// Subscribe adds a change listener and returns an unsubscribe function.
func (o *Observable[T]) Subscribe(fn func(Change[T])) func() {
	o.listeners = append(o.listeners, fn)
	idx := len(o.listeners) - 1
	return func() {
		// Zero out to allow GC, don't reorder
		o.listeners[idx] = nil
	}
}

func (o *Observable[T]) notify(c Change[T]) {
	for _, fn := range o.listeners {
		if fn != nil {
			fn(c)
		}
	}
}
