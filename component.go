package tui

// Component is the interface all UI components implement.
//
// Layout runs in two passes. SetConstraints is the measure pass: the parent
// tells the component how much space is available (0 = unconstrained) and the
// component records its desired size, read back with Size. Arrange is the
// second pass: the parent assigns the final rectangle, relative to itself.
type Component interface {
	// Layout
	SetConstraints(width, height int) // Parent tells us available space
	MinSize() (width, height int)     // Minimum size we need
	Size() (width, height int)        // Desired size after measure
	Arrange(r Rect)                   // Final position within the parent
	Bounds() Rect

	// Measure validity, cleared by InvalidateMeasure and restored by the
	// next SetConstraints.
	IsMeasureValid() bool
	InvalidateMeasure()

	// Hierarchy
	Parent() Container
	SetParent(Container)

	// Visibility. Hidden components are skipped by Render and layout.
	Hidden() bool
	SetHidden(bool)

	// Rendering
	Render(buf *Buffer, x, y int)

	// Styling
	GetStyle() Style
	SetStyle(Style)
}

// Container is a component that can hold children.
type Container interface {
	Component
	Children() []Component
	Add(children ...Component) Container
	Remove(child Component)
	Clear()
}

// Base provides common functionality for all components.
// Embed this in your component structs.
type Base struct {
	parent        Container
	style         Style
	width, height int // Desired size
	minW, minH    int // Minimum size
	constraintW   int // Available width from parent
	constraintH   int // Available height from parent
	bounds        Rect
	hidden        bool
	measured      bool

	flexGrow float64 // How much to grow (0 = don't grow)
}

// Parent returns the parent container.
func (b *Base) Parent() Container {
	return b.parent
}

// SetParent sets the parent container.
func (b *Base) SetParent(p Container) {
	b.parent = p
}

// GetStyle returns the component's style.
func (b *Base) GetStyle() Style {
	return b.style
}

// SetStyle sets the component's style.
func (b *Base) SetStyle(s Style) {
	b.style = s
}

// SetConstraints is called by parent to tell us available space.
func (b *Base) SetConstraints(width, height int) {
	b.constraintW = width
	b.constraintH = height
	b.measured = true
}

// Constraints returns the constraints from the last measure.
func (b *Base) Constraints() (width, height int) {
	return b.constraintW, b.constraintH
}

// IsMeasureValid reports whether the last measure is still current.
func (b *Base) IsMeasureValid() bool {
	return b.measured
}

// InvalidateMeasure marks the component as needing a new measure.
func (b *Base) InvalidateMeasure() {
	b.measured = false
}

// MinSize returns the minimum size needed.
func (b *Base) MinSize() (int, int) {
	return b.minW, b.minH
}

// Size returns the desired size.
func (b *Base) Size() (int, int) {
	return b.width, b.height
}

// SetSize sets the desired size.
func (b *Base) SetSize(w, h int) {
	b.width = w
	b.height = h
}

// Arrange records the final rectangle.
func (b *Base) Arrange(r Rect) {
	b.bounds = r
}

// Bounds returns the rectangle from the last arrange, relative to the parent.
func (b *Base) Bounds() Rect {
	return b.bounds
}

// Hidden reports whether the component is hidden.
func (b *Base) Hidden() bool {
	return b.hidden
}

// SetHidden shows or hides the component.
func (b *Base) SetHidden(h bool) {
	b.hidden = h
}

// FlexGrow returns the flex grow factor.
func (b *Base) FlexGrow() float64 {
	return b.flexGrow
}

// SetFlexGrow sets the flex grow factor.
func (b *Base) SetFlexGrow(f float64) {
	b.flexGrow = f
}

// BaseContainer provides common functionality for containers.
// Embed this in container structs.
type BaseContainer struct {
	Base
	children []Component

	gap     int // Space between children
	padding int // Padding inside container
}

// Children returns the child components.
func (c *BaseContainer) Children() []Component {
	return c.children
}

// AddChild adds a single child to the container.
// Concrete container types should wrap this with their own Add method.
func (c *BaseContainer) AddChild(child Component) {
	c.children = append(c.children, child)
}

// Remove removes a child from the container.
func (c *BaseContainer) Remove(child Component) {
	for i, ch := range c.children {
		if ch == child {
			child.SetParent(nil)
			c.children = append(c.children[:i], c.children[i+1:]...)
			return
		}
	}
}

// Clear removes all children.
func (c *BaseContainer) Clear() {
	for _, child := range c.children {
		child.SetParent(nil)
	}
	c.children = c.children[:0]
}

// Gap returns the gap between children.
func (c *BaseContainer) Gap() int {
	return c.gap
}

// SetGap sets the gap between children.
func (c *BaseContainer) SetGap(g int) {
	c.gap = g
}

// Padding returns the padding.
func (c *BaseContainer) Padding() int {
	return c.padding
}

// SetPadding sets the padding.
func (c *BaseContainer) SetPadding(p int) {
	c.padding = p
}

// hasInvalidDescendant reports whether any visible component below c needs
// a new measure. A valid cached measure of c is only reusable when this is
// false.
func hasInvalidDescendant(c Component) bool {
	cont, ok := c.(Container)
	if !ok {
		return false
	}
	for _, child := range cont.Children() {
		if child.Hidden() {
			continue
		}
		if !child.IsMeasureValid() || hasInvalidDescendant(child) {
			return true
		}
	}
	return false
}

// offsetWithin returns the position of c in the coordinate space of
// ancestor, summing arranged offsets along the way. ok is false when
// ancestor is not above c.
func offsetWithin(c Component, ancestor Component) (x, y float64, ok bool) {
	for cur := c; cur != nil; {
		if cur == ancestor {
			return x, y, true
		}
		b := cur.Bounds()
		x += b.X
		y += b.Y
		p := cur.Parent()
		if p == nil {
			break
		}
		cur = p
	}
	return 0, 0, false
}
