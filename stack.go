package tui

import (
	"iter"
	"sync"
)

// StackComponent arranges children in a line (vertical or horizontal).
type StackComponent struct {
	BaseContainer
	direction Direction

	// Optional decoration
	border     *BorderStyle
	background *Color
}

// Pool for StackComponent reuse
var stackPool = sync.Pool{
	New: func() any { return &StackComponent{} },
}

// VStack creates a vertical stack from children.
func VStack(children ...Component) *StackComponent {
	return newStack(Vertical, children)
}

// HStack creates a horizontal stack from children.
func HStack(children ...Component) *StackComponent {
	return newStack(Horizontal, children)
}

func newStack(d Direction, children []Component) *StackComponent {
	s := stackPool.Get().(*StackComponent)
	s.Reset()
	s.direction = d
	s.style = DefaultStyle()
	s.Add(children...)
	return s
}

// Reset clears the component for reuse.
func (s *StackComponent) Reset() {
	s.children = s.children[:0] // Keep capacity
	s.Base = Base{}
	s.gap = 0
	s.padding = 0
	s.direction = Vertical
	s.border = nil
	s.background = nil
}

// Add adds children to the stack. Returns self for chaining.
func (s *StackComponent) Add(children ...Component) Container {
	for _, child := range children {
		child.SetParent(s)
		s.AddChild(child)
	}
	return s
}

// AddFrom adds children from an iterator.
func (s *StackComponent) AddFrom(seq iter.Seq[Component]) *StackComponent {
	for child := range seq {
		s.Add(child)
	}
	return s
}

func (s *StackComponent) inset() int {
	extra := s.padding
	if s.border != nil {
		extra++
	}
	return extra
}

// SetConstraints implements Component.
func (s *StackComponent) SetConstraints(width, height int) {
	s.Base.SetConstraints(width, height)

	inset := s.inset()
	innerW := max(0, width-inset*2)
	innerH := max(0, height-inset*2)

	// First pass: children's minimum sizes and total flex
	totalFixed := 0
	totalFlex := 0.0
	mainSizes := make([]int, len(s.children))
	visible := 0
	for i, child := range s.children {
		if child.Hidden() {
			continue
		}
		visible++
		w, h := child.MinSize()
		if s.direction == Vertical {
			mainSizes[i] = h
		} else {
			mainSizes[i] = w
		}
		totalFixed += mainSizes[i]
		if grower, ok := child.(interface{ FlexGrow() float64 }); ok {
			totalFlex += grower.FlexGrow()
		}
	}
	if visible > 1 {
		totalFixed += s.gap * (visible - 1)
	}

	available := innerW
	if s.direction == Vertical {
		available = innerH
	}
	remaining := max(0, available-totalFixed)

	// Second pass: distribute remaining space to flex items
	if totalFlex > 0 && remaining > 0 {
		for i, child := range s.children {
			grower, ok := child.(interface{ FlexGrow() float64 })
			if !ok || child.Hidden() || grower.FlexGrow() <= 0 {
				continue
			}
			mainSizes[i] += int(float64(remaining) * (grower.FlexGrow() / totalFlex))
		}
	}

	// Third pass: measure children with their final main-axis size
	for i, child := range s.children {
		if child.Hidden() {
			continue
		}
		if s.direction == Vertical {
			child.SetConstraints(innerW, mainSizes[i])
		} else {
			child.SetConstraints(mainSizes[i], innerH)
		}
	}

	s.calculateSize(innerW, innerH, totalFlex > 0)
}

// calculateSize determines our size based on children.
func (s *StackComponent) calculateSize(maxW, maxH int, flex bool) {
	var totalMain, maxCross, visible int
	for _, child := range s.children {
		if child.Hidden() {
			continue
		}
		visible++
		w, h := child.Size()
		if s.direction == Vertical {
			totalMain += h
			maxCross = max(maxCross, w)
		} else {
			totalMain += w
			maxCross = max(maxCross, h)
		}
	}
	if visible > 1 {
		totalMain += s.gap * (visible - 1)
	}

	extra := s.inset() * 2
	if s.direction == Vertical {
		s.width = max(maxCross, maxW) + extra
		s.height = totalMain + extra
		if flex && maxH > totalMain {
			s.height = maxH + extra
		}
	} else {
		s.width = totalMain + extra
		s.height = maxCross + extra
		if flex && maxW > totalMain {
			s.width = maxW + extra
		}
	}
	s.minW = s.width
	s.minH = s.height
}

// Arrange implements Component. Children are laid out one after another
// along the stack direction.
func (s *StackComponent) Arrange(r Rect) {
	s.Base.Arrange(r)
	inset := float64(s.inset())
	innerW := max(0, r.Width-inset*2)
	innerH := max(0, r.Height-inset*2)

	pos := inset
	for _, child := range s.children {
		if child.Hidden() {
			continue
		}
		w, h := child.Size()
		if s.direction == Vertical {
			child.Arrange(Rect{X: inset, Y: pos, Width: innerW, Height: float64(h)})
			pos += float64(h + s.gap)
		} else {
			child.Arrange(Rect{X: pos, Y: inset, Width: float64(w), Height: innerH})
			pos += float64(w + s.gap)
		}
	}
}

// Render implements Component.
func (s *StackComponent) Render(buf *Buffer, x, y int) {
	w, h := cells(s.bounds.Width), cells(s.bounds.Height)
	if s.background != nil {
		buf.FillRect(x, y, w, h, NewCell(' ', DefaultStyle().Background(*s.background)))
	}
	if s.border != nil {
		buf.DrawBorder(x, y, w, h, *s.border, s.style)
	}
	for _, child := range s.children {
		if child.Hidden() {
			continue
		}
		b := child.Bounds()
		child.Render(buf, x+cells(b.X), y+cells(b.Y))
	}
}

// --- Fluent API ---

// Gap sets the gap between children.
func (s *StackComponent) Gap(g int) *StackComponent {
	s.gap = g
	return s
}

// Padding sets the padding inside the stack.
func (s *StackComponent) Padding(p int) *StackComponent {
	s.padding = p
	return s
}

// Border adds a border around the stack.
func (s *StackComponent) Border(b BorderStyle) *StackComponent {
	s.border = &b
	return s
}

// Background sets the background color.
func (s *StackComponent) Background(c Color) *StackComponent {
	s.background = &c
	return s
}

// Grow sets the flex grow factor.
func (s *StackComponent) Grow(factor float64) *StackComponent {
	s.flexGrow = factor
	return s
}

// MapIndex transforms a slice into a component iterator with index.
func MapIndex[T any](items []T, fn func(int, T) Component) iter.Seq[Component] {
	return func(yield func(Component) bool) {
		for i, item := range items {
			if !yield(fn(i, item)) {
				return
			}
		}
	}
}
