package tui

import (
	"fmt"
	"sync"

	"github.com/mattn/go-runewidth"
)

// TextComponent displays a single line of text.
type TextComponent struct {
	Base
	text string
}

// Pool for TextComponent reuse
var textPool = sync.Pool{
	New: func() any { return &TextComponent{} },
}

// Text creates a new text component with the given string.
func Text(s string) *TextComponent {
	t := textPool.Get().(*TextComponent)
	t.Reset()
	t.text = s
	t.style = DefaultStyle()
	t.updateSize()
	return t
}

// Textf creates a new text component with printf-style formatting.
func Textf(format string, args ...any) *TextComponent {
	return Text(fmt.Sprintf(format, args...))
}

// Reset clears the component for reuse.
func (t *TextComponent) Reset() {
	*t = TextComponent{}
}

// updateSize recalculates the minimum size in terminal cells.
func (t *TextComponent) updateSize() {
	t.minW = runewidth.StringWidth(t.text)
	t.minH = 1
	if t.minW == 0 {
		t.minH = 0
	}
}

// SetText updates the text content. The next layout pass re-measures the
// component when the text changes.
func (t *TextComponent) SetText(text string) *TextComponent {
	if text == t.text {
		return t
	}
	t.text = text
	t.updateSize()
	t.InvalidateMeasure()
	return t
}

// GetText returns the text content.
func (t *TextComponent) GetText() string {
	return t.text
}

// SetConstraints implements Component.
func (t *TextComponent) SetConstraints(width, height int) {
	t.Base.SetConstraints(width, height)
	// Text takes its natural size, up to constraints
	t.width = t.minW
	if t.width > width && width > 0 {
		t.width = width
	}
	t.height = t.minH
	if t.height > height && height > 0 {
		t.height = height
	}
}

// Render implements Component.
func (t *TextComponent) Render(buf *Buffer, x, y int) {
	w := cells(t.bounds.Width)
	if w == 0 {
		w = t.width
	}
	if t.height == 0 || w == 0 {
		return
	}
	buf.WriteStringClipped(x, y, t.text, t.style, w)
}

// --- Fluent API for styling ---

// Bold makes the text bold.
func (t *TextComponent) Bold() *TextComponent {
	t.style.Attr = t.style.Attr.With(AttrBold)
	return t
}

// Dim makes the text dim.
func (t *TextComponent) Dim() *TextComponent {
	t.style.Attr = t.style.Attr.With(AttrDim)
	return t
}

// Color sets the foreground color.
func (t *TextComponent) Color(c Color) *TextComponent {
	t.style.FG = c
	return t
}

// Style sets the complete style.
func (t *TextComponent) Style(s Style) *TextComponent {
	t.style = s
	return t
}

// Grow sets the flex grow factor.
func (t *TextComponent) Grow(factor float64) *TextComponent {
	t.flexGrow = factor
	return t
}
