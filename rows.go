package tui

import "strconv"

// RowView is the element VirtualList realizes per item: an optional gutter
// with the item's index followed by a label that takes the rest of the row.
type RowView struct {
	StackComponent
	gutter *TextComponent
	label  *TextComponent

	index    int
	selected bool
	current  bool
}

// NewRowView creates an unbound row.
func NewRowView(gutter bool) *RowView {
	r := &RowView{index: -1}
	r.direction = Horizontal
	r.style = DefaultStyle()
	r.gap = 1
	if gutter {
		r.gutter = Text("").Dim()
		r.Add(r.gutter)
	}
	r.label = Text("").Grow(1)
	r.Add(r.label)
	return r
}

// Index returns the item index the row shows, or -1 when unbound.
func (r *RowView) Index() int {
	return r.index
}

// Label returns the row's text.
func (r *RowView) Label() string {
	return r.label.GetText()
}

func (r *RowView) setIndex(index, width int) {
	r.index = index
	if r.gutter != nil {
		s := strconv.Itoa(index)
		for len(s) < width {
			s = " " + s
		}
		r.gutter.SetText(s)
	}
}

func (r *RowView) setState(selected, current bool, normal, sel, cur Style) {
	r.selected, r.current = selected, current
	style := normal
	switch {
	case current:
		style = cur
	case selected:
		style = sel
	}
	r.style = style
	r.label.Style(style)
}

// Render implements Component. The row background is filled with the row
// style so selection highlights span the whole row.
func (r *RowView) Render(buf *Buffer, x, y int) {
	if r.selected || r.current {
		buf.FillRect(x, y, cells(r.bounds.Width), cells(r.bounds.Height), NewCell(' ', r.style))
	}
	r.StackComponent.Render(buf, x, y)
}

// TextRows binds items to RowViews, formatting each item with Format and
// highlighting rows reported by Selection.
type TextRows[T any] struct {
	Format    func(item T) string
	Selection Selection
	// Cursor returns the index of the current row, or -1.
	Cursor func() int

	Gutter        bool
	GutterWidth   int
	Style         Style
	SelectedStyle Style
	CursorStyle   Style
}

// NewTextRows creates a binder with the default styles.
func NewTextRows[T any](format func(item T) string) *TextRows[T] {
	return &TextRows[T]{
		Format:        format,
		Style:         DefaultStyle(),
		SelectedStyle: DefaultStyle().Foreground(Cyan).Bold(),
		CursorStyle:   DefaultStyle().Inverse(),
	}
}

// NewElement builds an unbound row. It is the create function for a
// PoolingFactory.
func (b *TextRows[T]) NewElement(item T, index int) Component {
	return NewRowView(b.Gutter)
}

// Realize implements Binder.
func (b *TextRows[T]) Realize(c Component, item T, index int) {
	row := c.(*RowView)
	row.label.SetText(b.Format(item))
	row.setIndex(index, b.GutterWidth)
	b.refresh(row)
}

// UpdateIndex implements Binder. The label keeps its text; only the gutter
// and highlight follow the new index.
func (b *TextRows[T]) UpdateIndex(c Component, index int) {
	row := c.(*RowView)
	row.setIndex(index, b.GutterWidth)
	b.refresh(row)
}

// Unrealize implements Binder.
func (b *TextRows[T]) Unrealize(c Component) {
	row := c.(*RowView)
	row.index = -1
	row.setState(false, false, b.Style, b.SelectedStyle, b.CursorStyle)
}

// Refresh re-applies highlight state to a realized row.
func (b *TextRows[T]) Refresh(c Component) {
	if row, ok := c.(*RowView); ok {
		b.refresh(row)
	}
}

func (b *TextRows[T]) refresh(row *RowView) {
	selected := b.Selection != nil && b.Selection.IsSelected(row.index)
	current := b.Cursor != nil && b.Cursor() == row.index
	row.setState(selected, current, b.Style, b.SelectedStyle, b.CursorStyle)
}
