// Package tui is a terminal UI framework built around a two-pass layout
// (measure with SetConstraints, then Arrange) and a virtualizing presenter
// that realizes only the rows of a large collection that are on screen.
package tui

import "strconv"

// Attribute is a bit set of SGR text attributes.
type Attribute uint8

const (
	AttrNone Attribute = 0
	AttrBold Attribute = 1 << iota
	AttrDim
	AttrItalic
	AttrUnderline
	AttrBlink
	AttrInverse
	AttrStrikethrough
)

// sgr pairs each attribute with its SGR parameter, in emit order.
var sgr = [...]struct {
	attr Attribute
	code string
}{
	{AttrBold, "1"},
	{AttrDim, "2"},
	{AttrItalic, "3"},
	{AttrUnderline, "4"},
	{AttrBlink, "5"},
	{AttrInverse, "7"},
	{AttrStrikethrough, "9"},
}

func (a Attribute) Has(attr Attribute) bool { return a&attr != 0 }

func (a Attribute) With(attr Attribute) Attribute { return a | attr }

// ColorMode says how a Color is encoded on the wire.
type ColorMode uint8

const (
	ColorDefault ColorMode = iota
	Color16
	Color256
	ColorRGB
)

// Color is a terminal colour. Index is used by the palette modes, R, G and B
// by ColorRGB. The zero value is the terminal default.
type Color struct {
	Mode    ColorMode
	R, G, B uint8
	Index   uint8
}

// BasicColor returns one of the 16 ANSI colours.
func BasicColor(index uint8) Color { return Color{Mode: Color16, Index: index & 0x0f} }

// PaletteColor returns one of the 256 xterm palette colours.
func PaletteColor(index uint8) Color { return Color{Mode: Color256, Index: index} }

// RGB returns a 24-bit colour.
func RGB(r, g, b uint8) Color { return Color{Mode: ColorRGB, R: r, G: g, B: b} }

var (
	Black       = BasicColor(0)
	Red         = BasicColor(1)
	Green       = BasicColor(2)
	Yellow      = BasicColor(3)
	Blue        = BasicColor(4)
	Magenta     = BasicColor(5)
	Cyan        = BasicColor(6)
	White       = BasicColor(7)
	BrightBlack = BasicColor(8)
)

// Style is the colour and attribute state of a cell. The zero value draws
// with terminal defaults.
type Style struct {
	FG   Color
	BG   Color
	Attr Attribute
}

func DefaultStyle() Style { return Style{} }

func (s Style) Foreground(c Color) Style { s.FG = c; return s }

func (s Style) Background(c Color) Style { s.BG = c; return s }

func (s Style) Bold() Style { s.Attr |= AttrBold; return s }

func (s Style) Dim() Style { s.Attr |= AttrDim; return s }

func (s Style) Inverse() Style { s.Attr |= AttrInverse; return s }

// appendSGR appends the escape sequence that resets the terminal to s.
func (s Style) appendSGR(b []byte) []byte {
	b = append(b, "\x1b[0"...)
	for _, a := range sgr {
		if s.Attr.Has(a.attr) {
			b = append(b, ';')
			b = append(b, a.code...)
		}
	}
	b = s.FG.appendSGR(b, 30)
	b = s.BG.appendSGR(b, 40)
	return append(b, 'm')
}

// appendSGR appends the colour parameters; base is 30 for foreground and 40
// for background.
func (c Color) appendSGR(b []byte, base int) []byte {
	b = append(b, ';')
	switch c.Mode {
	case Color16:
		i := int(c.Index)
		if i >= 8 {
			base, i = base+60, i-8
		}
		return strconv.AppendInt(b, int64(base+i), 10)
	case Color256:
		b = strconv.AppendInt(b, int64(base+8), 10)
		b = append(b, ";5;"...)
		return strconv.AppendInt(b, int64(c.Index), 10)
	case ColorRGB:
		b = strconv.AppendInt(b, int64(base+8), 10)
		b = append(b, ";2;"...)
		b = strconv.AppendInt(b, int64(c.R), 10)
		b = append(b, ';')
		b = strconv.AppendInt(b, int64(c.G), 10)
		b = append(b, ';')
		return strconv.AppendInt(b, int64(c.B), 10)
	}
	return strconv.AppendInt(b, int64(base+9), 10)
}

// Cell is one terminal cell. A zero Rune marks the trailing half of a wide
// character.
type Cell struct {
	Rune  rune
	Style Style
}

// EmptyCell is a blank cell in the default style.
func EmptyCell() Cell { return Cell{Rune: ' '} }

func NewCell(r rune, style Style) Cell { return Cell{Rune: r, Style: style} }
