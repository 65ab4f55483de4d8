package tui

// VirtualList renders a large item source as a scrollable list of text
// rows. Only rows near the viewport exist as components; they are pooled
// and rebound as the list scrolls.
type VirtualList[T any] struct {
	BaseContainer

	source    ItemSource[T]
	presenter *Presenter[T]
	viewer    *ScrollViewer
	factory   *PoolingFactory[T]
	rows      *TextRows[T]
	selection *SelectionModel

	cursor      int
	unsubscribe func()

	// Decoration
	border     *BorderStyle
	background *Color
}

// NewVirtualList creates a list over source, formatting each item with
// format.
func NewVirtualList[T any](source ItemSource[T], format func(T) string, cfg Config) *VirtualList[T] {
	v := &VirtualList[T]{
		source:    source,
		selection: NewSelectionModel(true),
		cursor:    -1,
	}
	v.style = DefaultStyle()

	v.rows = NewTextRows(format)
	v.rows.Selection = v.selection
	v.rows.Cursor = func() int { return v.cursor }

	v.factory = NewPoolingFactory(v.rows.NewElement)
	v.presenter = NewPresenter[T](cfg).
		SetFactory(v.factory).
		SetBinder(v.rows)
	v.presenter.SetSource(source)

	// The list's listener runs after the presenter's, so the window is
	// already patched when the selection and cursor move.
	if n, ok := source.(Notifier[T]); ok {
		v.unsubscribe = n.Subscribe(v.onItemsChanged)
	}

	v.viewer = NewScrollViewer(v.presenter, cfg)
	v.viewer.SetParent(v)
	v.AddChild(v.viewer)
	if source != nil && source.Len() > 0 {
		v.cursor = 0
	}
	return v
}

// Add is not supported; the list owns its only child.
func (v *VirtualList[T]) Add(children ...Component) Container {
	return v
}

// Presenter returns the underlying presenter.
func (v *VirtualList[T]) Presenter() *Presenter[T] {
	return v.presenter
}

// Viewer returns the underlying scroll viewer.
func (v *VirtualList[T]) Viewer() *ScrollViewer {
	return v.viewer
}

// Selection returns the selection model.
func (v *VirtualList[T]) Selection() *SelectionModel {
	return v.selection
}

// Factory returns the element factory, mainly for its statistics.
func (v *VirtualList[T]) Factory() *PoolingFactory[T] {
	return v.factory
}

// Len returns total item count.
func (v *VirtualList[T]) Len() int {
	if v.source == nil {
		return 0
	}
	return v.source.Len()
}

// Cursor returns the index of the current row, or -1 for an empty list.
func (v *VirtualList[T]) Cursor() int {
	return v.cursor
}

// SetCursor moves the current row to index, clamped to the item range, and
// scrolls it into view.
func (v *VirtualList[T]) SetCursor(index int) *VirtualList[T] {
	n := v.Len()
	if n == 0 {
		v.cursor = -1
		return v
	}
	index = max(0, min(index, n-1))
	v.cursor = index
	v.refreshRows()
	v.presenter.BringIntoView(index)
	return v
}

// MoveCursor moves the current row by delta.
func (v *VirtualList[T]) MoveCursor(delta int) *VirtualList[T] {
	return v.SetCursor(v.cursor + delta)
}

// PageDown moves the cursor by one page.
func (v *VirtualList[T]) PageDown() *VirtualList[T] {
	return v.MoveCursor(v.viewer.page())
}

// PageUp moves the cursor back by one page.
func (v *VirtualList[T]) PageUp() *VirtualList[T] {
	return v.MoveCursor(-v.viewer.page())
}

// First moves the cursor to the first item.
func (v *VirtualList[T]) First() *VirtualList[T] {
	return v.SetCursor(0)
}

// Last moves the cursor to the last item.
func (v *VirtualList[T]) Last() *VirtualList[T] {
	return v.SetCursor(v.Len() - 1)
}

// ToggleSelected flips the selection of the current row.
func (v *VirtualList[T]) ToggleSelected() *VirtualList[T] {
	if v.cursor >= 0 {
		v.selection.Toggle(v.cursor)
		v.refreshRows()
	}
	return v
}

// Selected returns the selected items in index order.
func (v *VirtualList[T]) Selected() []T {
	idx := v.selection.Indices()
	out := make([]T, 0, len(idx))
	for _, i := range idx {
		if i < v.Len() {
			out = append(out, v.source.At(i))
		}
	}
	return out
}

// VisibleRange returns the first and last realized item indices.
func (v *VirtualList[T]) VisibleRange() (first, last int) {
	return v.presenter.RealizedRange()
}

func (v *VirtualList[T]) refreshRows() {
	v.presenter.Realized(func(_ int, c Component) {
		v.rows.Refresh(c)
	})
}

func (v *VirtualList[T]) onItemsChanged(c Change[T]) {
	switch c.Type {
	case ChangeInsert:
		v.selection.ItemsInserted(c.Index, c.Count)
		if v.cursor >= c.Index {
			v.cursor += c.Count
		}
	case ChangeRemove:
		v.selection.ItemsRemoved(c.Index, c.Count)
		if v.cursor >= c.Index+c.Count {
			v.cursor -= c.Count
		} else if v.cursor >= c.Index {
			v.cursor = c.Index
		}
	case ChangeReset:
		v.selection.Clear()
		v.cursor = 0
	}
	if v.cursor < 0 || v.cursor >= v.Len() {
		v.cursor = min(max(v.cursor, 0), v.Len()-1)
	}
	v.refreshRows()
}

// Close unsubscribes from the source and releases pooled rows.
func (v *VirtualList[T]) Close() {
	if v.unsubscribe != nil {
		v.unsubscribe()
		v.unsubscribe = nil
	}
	v.presenter.Close()
	v.factory.Release()
}

func (v *VirtualList[T]) inset() int {
	if v.border != nil {
		return 1
	}
	return 0
}

// MinSize implements Component.
func (v *VirtualList[T]) MinSize() (int, int) {
	extra := v.inset() * 2
	return 10 + extra, 1 + extra
}

// SetConstraints implements Component.
func (v *VirtualList[T]) SetConstraints(width, height int) {
	v.Base.SetConstraints(width, height)
	extra := v.inset() * 2
	v.viewer.SetConstraints(max(0, width-extra), max(0, height-extra))
	w, h := v.viewer.Size()
	v.width, v.height = w+extra, h+extra
}

// Arrange implements Component.
func (v *VirtualList[T]) Arrange(r Rect) {
	v.Base.Arrange(r)
	in := float64(v.inset())
	v.viewer.Arrange(Rect{
		X:      in,
		Y:      in,
		Width:  max(0, r.Width-2*in),
		Height: max(0, r.Height-2*in),
	})
}

// Render implements Component.
func (v *VirtualList[T]) Render(buf *Buffer, x, y int) {
	w, h := cells(v.bounds.Width), cells(v.bounds.Height)
	if v.background != nil {
		buf.FillRect(x, y, w, h, NewCell(' ', DefaultStyle().Background(*v.background)))
	}
	if v.border != nil {
		buf.DrawBorder(x, y, w, h, *v.border, v.style)
	}
	b := v.viewer.Bounds()
	v.viewer.Render(buf, x+cells(b.X), y+cells(b.Y))
}

// --- Fluent API ---

// Border draws a border around the list.
func (v *VirtualList[T]) Border(b BorderStyle) *VirtualList[T] {
	v.border = &b
	return v
}

// Background fills the list with a background color.
func (v *VirtualList[T]) Background(c Color) *VirtualList[T] {
	v.background = &c
	return v
}

// Gutter shows item indices right-aligned to width cells.
func (v *VirtualList[T]) Gutter(width int) *VirtualList[T] {
	v.rows.Gutter = true
	v.rows.GutterWidth = width
	return v
}

// Grow sets the flex grow factor (1 = take available space).
func (v *VirtualList[T]) Grow(factor float64) *VirtualList[T] {
	v.flexGrow = factor
	return v
}
