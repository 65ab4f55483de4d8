package tui

// LayoutManager runs measure and arrange passes over a component tree and
// implements LayoutHost for the components in it.
type LayoutManager struct {
	root          Component
	width, height int
	maxPasses     int

	measureDirty bool
	arrangeDirty bool
	inPass       bool
	passes       int
}

// NewLayoutManager creates a manager for root and connects every
// host-aware component below it.
func NewLayoutManager(root Component, cfg Config) *LayoutManager {
	m := &LayoutManager{
		root:         root,
		maxPasses:    max(1, cfg.MaxLayoutPasses),
		measureDirty: true,
	}
	m.Attach(root)
	return m
}

// Attach connects c and its descendants to this manager. Call it again
// after adding host-aware components to the tree.
func (m *LayoutManager) Attach(c Component) {
	if h, ok := c.(hostAware); ok {
		h.SetLayoutHost(m)
	}
	if cont, ok := c.(Container); ok {
		for _, child := range cont.Children() {
			m.Attach(child)
		}
	}
}

// SetSize sets the space available to the root.
func (m *LayoutManager) SetSize(width, height int) {
	if width == m.width && height == m.height {
		return
	}
	m.width, m.height = width, height
	m.measureDirty = true
}

// NeedsLayout reports whether a pass is pending.
func (m *LayoutManager) NeedsLayout() bool {
	return m.measureDirty || m.arrangeDirty
}

// Passes returns the number of measure/arrange rounds run by the last
// ExecuteLayoutPass.
func (m *LayoutManager) Passes() int {
	return m.passes
}

// InvalidateMeasure implements LayoutHost.
func (m *LayoutManager) InvalidateMeasure(c Component) {
	if c != nil {
		c.InvalidateMeasure()
	}
	m.measureDirty = true
}

// InvalidateArrange implements LayoutHost.
func (m *LayoutManager) InvalidateArrange(c Component) {
	m.arrangeDirty = true
}

// ExecuteLayoutPass implements LayoutHost. It measures and arranges the
// root until no component asks for more work, up to the configured number
// of rounds. A call made while a pass is running only marks the tree dirty;
// the running pass picks the work up.
func (m *LayoutManager) ExecuteLayoutPass() {
	if m.inPass {
		m.measureDirty = true
		return
	}
	m.inPass = true
	defer func() { m.inPass = false }()

	m.passes = 0
	for m.passes < m.maxPasses {
		m.passes++
		measure := m.measureDirty || m.passes == 1
		m.measureDirty, m.arrangeDirty = false, false
		if measure {
			m.root.SetConstraints(m.width, m.height)
		}
		m.root.Arrange(Rect{Width: float64(m.width), Height: float64(m.height)})
		if !m.NeedsLayout() {
			return
		}
	}
	logger.Debug("layout did not settle", "passes", m.passes)
}

// BringIntoView implements LayoutHost by asking the nearest scroll viewer
// above c to show r.
func (m *LayoutManager) BringIntoView(c Component, r Rect) bool {
	for p := c.Parent(); p != nil; p = p.Parent() {
		if sv, ok := p.(*ScrollViewer); ok {
			return sv.BringIntoView(c, r)
		}
	}
	return false
}
