package tui

import (
	"strings"

	"github.com/mattn/go-runewidth"
)

// Buffer is a 2D grid of cells representing a drawable surface.
// Writes can be limited to a clip rectangle with PushClip/PopClip.
type Buffer struct {
	cells  []Cell
	width  int
	height int
	dirty  []bool

	clip  clipRect
	clips []clipRect
}

type clipRect struct {
	x0, y0, x1, y1 int
}

// NewBuffer creates a new buffer with the given dimensions.
func NewBuffer(width, height int) *Buffer {
	b := &Buffer{}
	b.reset(width, height)
	return b
}

func (b *Buffer) reset(width, height int) {
	needed := width * height
	if cap(b.cells) < needed {
		b.cells = make([]Cell, needed)
	} else {
		b.cells = b.cells[:needed]
	}
	if cap(b.dirty) < height {
		b.dirty = make([]bool, height)
	} else {
		b.dirty = b.dirty[:height]
	}
	b.width = width
	b.height = height
	b.clips = b.clips[:0]
	b.clip = clipRect{0, 0, width, height}
	b.Clear()
}

// Width returns the buffer width.
func (b *Buffer) Width() int {
	return b.width
}

// Height returns the buffer height.
func (b *Buffer) Height() int {
	return b.height
}

// InBounds returns true if the given coordinates are writable: inside the
// buffer and inside the current clip rectangle.
func (b *Buffer) InBounds(x, y int) bool {
	return x >= b.clip.x0 && x < b.clip.x1 && y >= b.clip.y0 && y < b.clip.y1
}

// PushClip narrows the writable area to the intersection of the current clip
// and the given rectangle.
func (b *Buffer) PushClip(x, y, width, height int) {
	b.clips = append(b.clips, b.clip)
	b.clip = clipRect{
		x0: max(b.clip.x0, x),
		y0: max(b.clip.y0, y),
		x1: min(b.clip.x1, x+width),
		y1: min(b.clip.y1, y+height),
	}
}

// PopClip restores the clip rectangle saved by the matching PushClip.
func (b *Buffer) PopClip() {
	if n := len(b.clips); n > 0 {
		b.clip = b.clips[n-1]
		b.clips = b.clips[:n-1]
	}
}

// Get returns the cell at the given coordinates.
// Returns an empty cell if out of bounds. Clipping does not apply to reads.
func (b *Buffer) Get(x, y int) Cell {
	if x < 0 || x >= b.width || y < 0 || y >= b.height {
		return EmptyCell()
	}
	return b.cells[y*b.width+x]
}

// Set sets the cell at the given coordinates.
// Does nothing if outside the clip rectangle.
func (b *Buffer) Set(x, y int, c Cell) {
	if !b.InBounds(x, y) {
		return
	}
	b.cells[y*b.width+x] = c
	b.dirty[y] = true
}

// RowDirty reports whether row y was written since the last ClearDirtyFlags.
func (b *Buffer) RowDirty(y int) bool {
	return y >= 0 && y < len(b.dirty) && b.dirty[y]
}

// ClearDirtyFlags resets per-row dirty tracking.
func (b *Buffer) ClearDirtyFlags() {
	for i := range b.dirty {
		b.dirty[i] = false
	}
}

// Fill fills the entire buffer with the given cell.
func (b *Buffer) Fill(c Cell) {
	for i := range b.cells {
		b.cells[i] = c
	}
	for i := range b.dirty {
		b.dirty[i] = true
	}
}

// Clear clears the buffer to empty cells with default style.
func (b *Buffer) Clear() {
	b.Fill(EmptyCell())
}

// FillRect fills a rectangular region with the given cell.
func (b *Buffer) FillRect(x, y, width, height int, c Cell) {
	for dy := 0; dy < height; dy++ {
		for dx := 0; dx < width; dx++ {
			b.Set(x+dx, y+dy, c)
		}
	}
}

// WriteString writes a string at the given coordinates with the given style.
// Returns the number of cells written.
func (b *Buffer) WriteString(x, y int, s string, style Style) int {
	return b.WriteStringClipped(x, y, s, style, b.width-x)
}

// WriteStringClipped writes a string, stopping at maxWidth cells. Wide runes
// occupy two cells, the second holding a zero rune.
// Returns the number of cells written.
func (b *Buffer) WriteStringClipped(x, y int, s string, style Style, maxWidth int) int {
	written := 0
	for _, r := range s {
		w := runewidth.RuneWidth(r)
		if w == 0 {
			continue
		}
		if written+w > maxWidth {
			break
		}
		b.Set(x+written, y, NewCell(r, style))
		if w == 2 {
			b.Set(x+written+1, y, NewCell(0, style))
		}
		written += w
	}
	return written
}

// HLine draws a horizontal line of the given rune.
func (b *Buffer) HLine(x, y, length int, r rune, style Style) {
	for i := 0; i < length; i++ {
		b.Set(x+i, y, NewCell(r, style))
	}
}

// VLine draws a vertical line of the given rune.
func (b *Buffer) VLine(x, y, length int, r rune, style Style) {
	for i := 0; i < length; i++ {
		b.Set(x, y+i, NewCell(r, style))
	}
}

// BorderStyle defines the characters used for drawing borders.
type BorderStyle struct {
	Horizontal  rune
	Vertical    rune
	TopLeft     rune
	TopRight    rune
	BottomLeft  rune
	BottomRight rune
}

var (
	BorderSingle  = BorderStyle{'─', '│', '┌', '┐', '└', '┘'}
	BorderRounded = BorderStyle{'─', '│', '╭', '╮', '╰', '╯'}
	BorderDouble  = BorderStyle{'═', '║', '╔', '╗', '╚', '╝'}
)

// DrawBorder draws a border around the given rectangle.
func (b *Buffer) DrawBorder(x, y, width, height int, border BorderStyle, style Style) {
	if width < 2 || height < 2 {
		return
	}
	b.Set(x, y, NewCell(border.TopLeft, style))
	b.Set(x+width-1, y, NewCell(border.TopRight, style))
	b.Set(x, y+height-1, NewCell(border.BottomLeft, style))
	b.Set(x+width-1, y+height-1, NewCell(border.BottomRight, style))
	b.HLine(x+1, y, width-2, border.Horizontal, style)
	b.HLine(x+1, y+height-1, width-2, border.Horizontal, style)
	b.VLine(x, y+1, height-2, border.Vertical, style)
	b.VLine(x+width-1, y+1, height-2, border.Vertical, style)
}

// GetLine returns row y with trailing spaces removed.
func (b *Buffer) GetLine(y int) string {
	var sb strings.Builder
	for x := 0; x < b.width; x++ {
		r := b.Get(x, y).Rune
		if r == 0 {
			continue
		}
		sb.WriteRune(r)
	}
	return strings.TrimRight(sb.String(), " ")
}

// String returns the buffer contents as a string (for testing/debugging).
// Each row is separated by a newline. Trailing spaces are preserved.
func (b *Buffer) String() string {
	var sb strings.Builder
	for y := 0; y < b.height; y++ {
		for x := 0; x < b.width; x++ {
			if r := b.Get(x, y).Rune; r != 0 {
				sb.WriteRune(r)
			}
		}
		if y < b.height-1 {
			sb.WriteByte('\n')
		}
	}
	return sb.String()
}

// StringTrimmed returns the buffer contents with trailing spaces removed per
// line and trailing empty lines dropped.
func (b *Buffer) StringTrimmed() string {
	lines := make([]string, 0, b.height)
	for y := 0; y < b.height; y++ {
		lines = append(lines, b.GetLine(y))
	}
	for len(lines) > 0 && lines[len(lines)-1] == "" {
		lines = lines[:len(lines)-1]
	}
	return strings.Join(lines, "\n")
}

// Resize resizes the buffer to new dimensions.
// Existing content is preserved where it fits.
func (b *Buffer) Resize(width, height int) {
	if width == b.width && height == b.height {
		return
	}
	old, oldW := b.cells, b.width
	oldH := b.height
	b.cells = nil
	b.reset(width, height)
	for y := 0; y < min(height, oldH); y++ {
		for x := 0; x < min(width, oldW); x++ {
			b.cells[y*width+x] = old[y*oldW+x]
		}
	}
}
